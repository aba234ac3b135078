package statement

import (
	"encoding/json"
	"net/http"
	"time"
)

type StatementDTO struct {
	From          string            `json:"from"`
	To            string            `json:"to"`
	Lines         []LineDTO         `json:"lines"`
	CategoryTotal map[string]string `json:"categoryTotal"`
	Total         string            `json:"total"`
}

type LineDTO struct {
	Date         string `json:"date"`
	Counterparty string `json:"counterparty"`
	Category     string `json:"category"`
	Amount       string `json:"amount"`
}

type Handler struct {
	service  Service
	renderer Renderer
}

func NewHandler(service Service, renderer Renderer) *Handler {
	return &Handler{service: service, renderer: renderer}
}

// GetStatement godoc
// @Summary Account statement for a date range
// @Tags Statement
// @Produce json
// @Param from query string true "Range start (YYYY-MM-DD)"
// @Param to query string true "Range end exclusive (YYYY-MM-DD)"
// @Success 200 {object} StatementDTO
// @Router /api/statement [get]
func (h *Handler) GetStatement(w http.ResponseWriter, r *http.Request) {
	from, err := time.Parse("2006-01-02", r.URL.Query().Get("from"))
	if err != nil {
		http.Error(w, "invalid from date", http.StatusBadRequest)
		return
	}
	to, err := time.Parse("2006-01-02", r.URL.Query().Get("to"))
	if err != nil {
		http.Error(w, "invalid to date", http.StatusBadRequest)
		return
	}

	statement, err := h.service.Build(r.Context(), from, to)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if r.Header.Get("Accept") == "text/csv" {
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		csvBody, err := h.renderer.Render(statement)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		if _, err := w.Write([]byte(csvBody)); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(statementToDTO(statement)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func statementToDTO(statement Statement) StatementDTO {
	lines := make([]LineDTO, 0, len(statement.Lines))
	for _, line := range statement.Lines {
		lines = append(lines, LineDTO{
			Date:         line.Date.Format("2006-01-02"),
			Counterparty: line.Counterparty,
			Category:     line.Category,
			Amount:       line.Amount.StringFixed(2),
		})
	}
	totals := make(map[string]string, len(statement.CategoryTotal))
	for category, total := range statement.CategoryTotal {
		totals[category] = total.StringFixed(2)
	}
	return StatementDTO{
		From:          statement.From.Format("2006-01-02"),
		To:            statement.To.Format("2006-01-02"),
		Lines:         lines,
		CategoryTotal: totals,
		Total:         statement.Total.StringFixed(2),
	}
}
