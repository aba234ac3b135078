package transfer

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/RSanjanaS/APP-development-C2G/internal/rest"
	"github.com/shopspring/decimal"
)

type TransferDTO struct {
	Id           int    `json:"id,omitempty"`
	Counterparty string `json:"counterparty"`
	Amount       string `json:"amount"`
	Category     string `json:"category,omitempty"`
	CreatedAt    string `json:"createdAt,omitempty"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// CreateTransfer godoc
// @Summary Record a money transfer
// @Tags Transfers
// @Accept json
// @Produce json
// @Success 201 {object} TransferDTO
// @Failure 400 {object} rest.ErrorResponse "Invalid transfer"
// @Router /api/transfers [post]
func (h *Handler) CreateTransfer(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var dto TransferDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		encodeErr := json.NewEncoder(w).Encode(rest.ErrorResponse{
			Error: "Invalid request body format",
		})
		if encodeErr != nil {
			http.Error(w, encodeErr.Error(), http.StatusInternalServerError)
		}
		return
	}

	amount, err := decimal.NewFromString(dto.Amount)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		encodeErr := json.NewEncoder(w).Encode(rest.ErrorResponse{
			Error: "Invalid amount",
		})
		if encodeErr != nil {
			http.Error(w, encodeErr.Error(), http.StatusInternalServerError)
		}
		return
	}

	created, err := h.service.CreateTransfer(r.Context(), Transfer{
		Counterparty: dto.Counterparty,
		Amount:       amount,
		Category:     dto.Category,
	})
	if err != nil {
		if errors.Is(err, ErrTransferInvalid) {
			w.WriteHeader(http.StatusBadRequest)
			encodeErr := json.NewEncoder(w).Encode(rest.ErrorResponse{
				Error:   "Invalid transfer",
				Details: err.Error(),
			})
			if encodeErr != nil {
				http.Error(w, encodeErr.Error(), http.StatusInternalServerError)
			}
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(transferToDTO(created)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// ListTransfers godoc
// @Summary List transfers within a date range
// @Tags Transfers
// @Produce json
// @Param from query string false "Range start (YYYY-MM-DD), default 30 days ago"
// @Param to query string false "Range end exclusive (YYYY-MM-DD), default tomorrow"
// @Success 200 {array} TransferDTO
// @Router /api/transfers [get]
func (h *Handler) ListTransfers(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	now := time.Now().UTC()
	from := now.AddDate(0, 0, -30)
	to := now.AddDate(0, 0, 1)
	if v := r.URL.Query().Get("from"); v != "" {
		parsed, err := time.Parse("2006-01-02", v)
		if err != nil {
			http.Error(w, "invalid from date", http.StatusBadRequest)
			return
		}
		from = parsed
	}
	if v := r.URL.Query().Get("to"); v != "" {
		parsed, err := time.Parse("2006-01-02", v)
		if err != nil {
			http.Error(w, "invalid to date", http.StatusBadRequest)
			return
		}
		to = parsed
	}

	transfers, err := h.service.GetTransfers(r.Context(), from, to)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	dtos := make([]TransferDTO, 0, len(transfers))
	for _, t := range transfers {
		dtos = append(dtos, transferToDTO(t))
	}
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func transferToDTO(t Transfer) TransferDTO {
	return TransferDTO{
		Id:           t.Id,
		Counterparty: t.Counterparty,
		Amount:       t.Amount.String(),
		Category:     t.Category,
		CreatedAt:    t.CreatedAt.Format(time.RFC3339),
	}
}
