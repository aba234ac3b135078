package investment

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/RSanjanaS/APP-development-C2G/internal/rest"
	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
)

type HoldingDTO struct {
	Id       int    `json:"id,omitempty"`
	Symbol   string `json:"symbol"`
	Name     string `json:"name,omitempty"`
	Type     string `json:"type"`
	Quantity string `json:"quantity"`
	BuyPrice string `json:"buyPrice"`
}

type PositionDTO struct {
	HoldingDTO
	Price    string `json:"price"`
	Value    string `json:"value"`
	GainLoss string `json:"gainLoss"`
}

type PortfolioDTO struct {
	Positions     []PositionDTO     `json:"positions"`
	TotalValue    string            `json:"totalValue"`
	TotalInvested string            `json:"totalInvested"`
	GainLoss      string            `json:"gainLoss"`
	Allocation    map[string]string `json:"allocation"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// AddHolding godoc
// @Summary Add an asset holding to the portfolio
// @Tags Investment
// @Accept json
// @Produce json
// @Success 201 {object} HoldingDTO
// @Failure 400 {object} rest.ErrorResponse "Invalid holding"
// @Router /api/investments [post]
func (h *Handler) AddHolding(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var dto HoldingDTO
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

	holding, err := dtoToHolding(dto)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		encodeErr := json.NewEncoder(w).Encode(rest.ErrorResponse{
			Error:   "Invalid holding",
			Details: err.Error(),
		})
		if encodeErr != nil {
			http.Error(w, encodeErr.Error(), http.StatusInternalServerError)
		}
		return
	}

	created, err := h.service.AddHolding(r.Context(), holding)
	if err != nil {
		if errors.Is(err, ErrHoldingInvalid) {
			w.WriteHeader(http.StatusBadRequest)
			encodeErr := json.NewEncoder(w).Encode(rest.ErrorResponse{
				Error:   "Invalid holding",
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
	if err := json.NewEncoder(w).Encode(holdingToDTO(created)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *Handler) ListHoldings(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	holdings, err := h.service.ListHoldings(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	dtos := make([]HoldingDTO, 0, len(holdings))
	for _, holding := range holdings {
		dtos = append(dtos, holdingToDTO(holding))
	}
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *Handler) DeleteHolding(w http.ResponseWriter, r *http.Request) {
	holdingId, err := strconv.Atoi(mux.Vars(r)["holdingId"])
	if err != nil {
		http.Error(w, "Invalid holding id", http.StatusBadRequest)
		return
	}

	if err := h.service.DeleteHolding(r.Context(), holdingId); err != nil {
		if errors.Is(err, ErrHoldingNotFound) {
			http.Error(w, "Holding not found", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Portfolio godoc
// @Summary Value the portfolio at current market prices
// @Tags Investment
// @Produce json
// @Param filter query string false "Asset type filter (stock or crypto)"
// @Param sort query string false "Sort order (price or gain)"
// @Success 200 {object} PortfolioDTO
// @Failure 502 {object} rest.ErrorResponse "Quote sources unavailable"
// @Router /api/investments/portfolio [get]
func (h *Handler) Portfolio(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	filter := AssetType(r.URL.Query().Get("filter"))
	sortBy := r.URL.Query().Get("sort")

	portfolio, err := h.service.Portfolio(r.Context(), filter, sortBy)
	if err != nil {
		if errors.Is(err, ErrQuoteUnavailable) {
			w.WriteHeader(http.StatusBadGateway)
			encodeErr := json.NewEncoder(w).Encode(rest.ErrorResponse{
				Error: "Quote sources are unavailable",
			})
			if encodeErr != nil {
				http.Error(w, encodeErr.Error(), http.StatusInternalServerError)
			}
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	dto := PortfolioDTO{
		Positions:     make([]PositionDTO, 0, len(portfolio.Positions)),
		TotalValue:    portfolio.TotalValue.String(),
		TotalInvested: portfolio.TotalInvested.String(),
		GainLoss:      portfolio.GainLoss.String(),
		Allocation:    make(map[string]string, len(portfolio.Allocation)),
	}
	for _, p := range portfolio.Positions {
		dto.Positions = append(dto.Positions, PositionDTO{
			HoldingDTO: holdingToDTO(p.Holding),
			Price:      p.Price.String(),
			Value:      p.Value.String(),
			GainLoss:   p.GainLoss.String(),
		})
	}
	for assetType, share := range portfolio.Allocation {
		dto.Allocation[string(assetType)] = share.String()
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(dto); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func holdingToDTO(h Holding) HoldingDTO {
	return HoldingDTO{
		Id:       h.Id,
		Symbol:   h.Symbol,
		Name:     h.Name,
		Type:     string(h.Type),
		Quantity: h.Quantity.String(),
		BuyPrice: h.BuyPrice.String(),
	}
}

func dtoToHolding(dto HoldingDTO) (Holding, error) {
	quantity, err := decimal.NewFromString(dto.Quantity)
	if err != nil {
		return Holding{}, errors.New("invalid quantity")
	}
	buyPrice, err := decimal.NewFromString(dto.BuyPrice)
	if err != nil {
		return Holding{}, errors.New("invalid buy price")
	}
	return Holding{
		Symbol:   dto.Symbol,
		Name:     dto.Name,
		Type:     AssetType(dto.Type),
		Quantity: quantity,
		BuyPrice: buyPrice,
	}, nil
}
