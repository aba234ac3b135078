package rest

import (
	"net/http"
	"os"
	"path/filepath"
)

// ErrorResponse is the JSON error envelope returned by all handlers.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// FrontendHandler serves the static frontend bundle, falling back to the
// index document for client-side routes.
type FrontendHandler struct {
	root  string
	index string
}

func NewFrontendHandler(root, index string) *FrontendHandler {
	return &FrontendHandler{root: root, index: index}
}

func (h *FrontendHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	requested := filepath.Join(h.root, filepath.Clean("/"+r.URL.Path))
	if info, err := os.Stat(requested); err != nil || info.IsDir() {
		http.ServeFile(w, r, filepath.Join(h.root, h.index))
		return
	}
	http.ServeFile(w, r, requested)
}
