package google

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/RSanjanaS/APP-development-C2G/internal/rest"
)

type Handler struct {
	exporter Exporter
}

func NewHandler(exporter Exporter) *Handler {
	return &Handler{exporter: exporter}
}

// ExportPayments godoc
// @Summary Export scheduled payments to Google Calendar
// @Tags Google
// @Produce json
// @Param calendarId query string false "Target calendar, defaults to primary"
// @Success 200 {object} map[string]int
// @Failure 401 {object} rest.ErrorResponse "Google authentication required"
// @Router /api/integrations/google/export [post]
func (h *Handler) ExportPayments(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	calendarId := r.URL.Query().Get("calendarId")
	if calendarId == "" {
		calendarId = "primary"
	}

	exported, err := h.exporter.ExportPayments(r.Context(), calendarId)
	if err != nil {
		if errors.Is(err, ErrUnauthenticated) {
			w.WriteHeader(http.StatusUnauthorized)
			encodeErr := json.NewEncoder(w).Encode(rest.ErrorResponse{
				Error: "Google authentication required",
			})
			if encodeErr != nil {
				http.Error(w, encodeErr.Error(), http.StatusInternalServerError)
			}
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	response := struct {
		Exported int `json:"exported"`
	}{Exported: exported}
	if err := json.NewEncoder(w).Encode(response); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
