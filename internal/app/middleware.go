package app

import (
	"errors"
	"net/http"
	"strings"

	"github.com/RSanjanaS/APP-development-C2G/internal/config"
	"github.com/RSanjanaS/APP-development-C2G/pkg/user"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

// publicPaths can be reached without a session token.
var publicPaths = map[string]bool{
	"/api/user":                              true,
	"/api/user/login":                        true,
	"/api/integrations/google/auth/callback": true,
}

// SetupMiddleware wires all HTTP middlewares for the application.
func SetupMiddleware(r *mux.Router, deps *Dependencies, cfg config.Application) {

	// Resolve the bearer token into the current user for downstream services
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			ctx := req.Context()

			if publicPaths[req.URL.Path] || !strings.HasPrefix(req.URL.Path, "/api/") {
				next.ServeHTTP(w, req)
				return
			}

			authHeader := req.Header.Get("Authorization")
			if !strings.HasPrefix(authHeader, "Bearer ") {
				http.Error(w, "missing bearer token", http.StatusUnauthorized)
				return
			}

			uid, err := deps.TokenIssuer.Validate(strings.TrimPrefix(authHeader, "Bearer "))
			if err != nil {
				log.Debugf("token validation failed: %v", err)
				http.Error(w, "invalid token", http.StatusUnauthorized)
				return
			}

			u, err := deps.UserService.GetUserByUid(ctx, uid)
			if err != nil {
				if errors.Is(err, user.ErrUserNotFound) {
					log.Debugf("user not found: %s", uid)
					http.Error(w, "user not found", http.StatusForbidden)
					return
				}
				log.Errorf("failed to get user: %v", err)
				http.Error(w, err.Error(), http.StatusInternalServerError)
				return
			}

			ctx = user.WithUser(ctx, u)
			next.ServeHTTP(w, req.WithContext(ctx))
		})
	})
}
