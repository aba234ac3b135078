package wallet

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/RSanjanaS/APP-development-C2G/internal/rest"
	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
)

type CardDTO struct {
	Id           int    `json:"id,omitempty"`
	MaskedNumber string `json:"maskedNumber"`
	Brand        string `json:"brand"`
	Balance      string `json:"balance"`
	Color        string `json:"color,omitempty"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) AddCard(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var dto CardDTO
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

	balance := decimal.Zero
	if dto.Balance != "" {
		parsed, err := decimal.NewFromString(dto.Balance)
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			encodeErr := json.NewEncoder(w).Encode(rest.ErrorResponse{
				Error: "Invalid balance",
			})
			if encodeErr != nil {
				http.Error(w, encodeErr.Error(), http.StatusInternalServerError)
			}
			return
		}
		balance = parsed
	}

	created, err := h.service.AddCard(r.Context(), Card{
		MaskedNumber: dto.MaskedNumber,
		Brand:        dto.Brand,
		Balance:      balance,
		Color:        dto.Color,
	})
	if err != nil {
		if errors.Is(err, ErrCardInvalid) {
			w.WriteHeader(http.StatusBadRequest)
			encodeErr := json.NewEncoder(w).Encode(rest.ErrorResponse{
				Error:   "Invalid card",
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
	if err := json.NewEncoder(w).Encode(cardToDTO(created)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *Handler) ListCards(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	cards, err := h.service.GetCards(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	total, err := h.service.TotalBalance(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	dtos := make([]CardDTO, 0, len(cards))
	for _, card := range cards {
		dtos = append(dtos, cardToDTO(card))
	}
	response := struct {
		Cards        []CardDTO `json:"cards"`
		TotalBalance string    `json:"totalBalance"`
	}{Cards: dtos, TotalBalance: total.String()}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *Handler) UpdateBalance(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	cardId, err := strconv.Atoi(mux.Vars(r)["cardId"])
	if err != nil {
		http.Error(w, "invalid card id", http.StatusBadRequest)
		return
	}

	var request struct {
		Balance string `json:"balance"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	balance, err := decimal.NewFromString(request.Balance)
	if err != nil {
		http.Error(w, "invalid balance", http.StatusBadRequest)
		return
	}

	if err := h.service.UpdateBalance(r.Context(), cardId, balance); err != nil {
		if errors.Is(err, ErrCardNotFound) {
			http.Error(w, "card not found", http.StatusNotFound)
			return
		}
		if errors.Is(err, ErrCardInvalid) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func cardToDTO(card Card) CardDTO {
	return CardDTO{
		Id:           card.Id,
		MaskedNumber: card.MaskedNumber,
		Brand:        card.Brand,
		Balance:      card.Balance.String(),
		Color:        card.Color,
	}
}
