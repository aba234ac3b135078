package exchange

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/RSanjanaS/APP-development-C2G/internal/rest"
	"github.com/shopspring/decimal"
)

type ConversionDTO struct {
	Id        int    `json:"id,omitempty"`
	From      string `json:"from"`
	To        string `json:"to"`
	Amount    string `json:"amount"`
	Rate      string `json:"rate,omitempty"`
	Fee       string `json:"fee,omitempty"`
	Converted string `json:"converted,omitempty"`
	CreatedAt string `json:"createdAt,omitempty"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// Convert godoc
// @Summary Convert an amount between currencies
// @Tags Exchange
// @Accept json
// @Produce json
// @Success 200 {object} ConversionDTO
// @Failure 400 {object} rest.ErrorResponse "Invalid conversion request"
// @Failure 502 {object} rest.ErrorResponse "Rate sources unavailable"
// @Router /api/exchange/convert [post]
func (h *Handler) Convert(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var dto ConversionDTO
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

	conversion, err := h.service.Convert(r.Context(), dto.From, dto.To, amount)
	if err != nil {
		switch {
		case errors.Is(err, ErrConversionInvalid):
			w.WriteHeader(http.StatusBadRequest)
			encodeErr := json.NewEncoder(w).Encode(rest.ErrorResponse{
				Error:   "Invalid conversion request",
				Details: err.Error(),
			})
			if encodeErr != nil {
				http.Error(w, encodeErr.Error(), http.StatusInternalServerError)
			}
		case errors.Is(err, ErrRateUnavailable):
			w.WriteHeader(http.StatusBadGateway)
			encodeErr := json.NewEncoder(w).Encode(rest.ErrorResponse{
				Error: "Exchange rate sources are unavailable",
			})
			if encodeErr != nil {
				http.Error(w, encodeErr.Error(), http.StatusInternalServerError)
			}
		default:
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(conversionToDTO(conversion)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	history, err := h.service.History(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	dtos := make([]ConversionDTO, 0, len(history))
	for _, c := range history {
		dtos = append(dtos, conversionToDTO(c))
	}
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func conversionToDTO(c Conversion) ConversionDTO {
	return ConversionDTO{
		Id:        c.Id,
		From:      c.From,
		To:        c.To,
		Amount:    c.Amount.String(),
		Rate:      c.Rate.String(),
		Fee:       c.Fee.String(),
		Converted: c.Converted.String(),
		CreatedAt: c.CreatedAt.Format(time.RFC3339),
	}
}
