package prediction

import (
	"encoding/json"
	"net/http"
)

type ForecastDTO struct {
	AverageMonthlySpend string             `json:"averageMonthlySpend"`
	UpcomingScheduled   string             `json:"upcomingScheduled"`
	ProjectedTotal      string             `json:"projectedTotal"`
	TopCategories       []CategorySpendDTO `json:"topCategories"`
}

type CategorySpendDTO struct {
	Category string `json:"category"`
	Total    string `json:"total"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) GetForecast(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	forecast, err := h.service.Forecast(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	categories := make([]CategorySpendDTO, 0, len(forecast.TopCategories))
	for _, c := range forecast.TopCategories {
		categories = append(categories, CategorySpendDTO{Category: c.Category, Total: c.Total.String()})
	}
	dto := ForecastDTO{
		AverageMonthlySpend: forecast.AverageMonthlySpend.String(),
		UpcomingScheduled:   forecast.UpcomingScheduled.String(),
		ProjectedTotal:      forecast.ProjectedTotal.String(),
		TopCategories:       categories,
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(dto); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
