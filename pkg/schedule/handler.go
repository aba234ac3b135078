package schedule

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/RSanjanaS/APP-development-C2G/internal/rest"
	log "github.com/sirupsen/logrus"
)

type PaymentRecordDTO struct {
	UID       string `json:"uid,omitempty"`
	Title     string `json:"title"`
	Amount    string `json:"amount"`
	Date      string `json:"date"`
	Category  string `json:"category,omitempty"`
	Frequency string `json:"frequency,omitempty"`
	Notes     string `json:"notes,omitempty"`
	Status    string `json:"status,omitempty"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// SchedulePayment godoc
// @Summary Schedule a new payment
// @Tags Payments
// @Accept json
// @Produce json
// @Success 201 {object} PaymentRecordDTO
// @Failure 400 {object} rest.ErrorResponse "Invalid payment record"
// @Router /api/payments [post]
func (h *Handler) SchedulePayment(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	log.Debug("Scheduling payment")

	var dto PaymentRecordDTO
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

	record, err := h.service.Schedule(r.Context(), dtoToRecord(dto))
	if err != nil {
		if errors.Is(err, ErrValidation) {
			w.WriteHeader(http.StatusBadRequest)
			encodeErr := json.NewEncoder(w).Encode(rest.ErrorResponse{
				Error:   "Invalid payment record",
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
	if err := json.NewEncoder(w).Encode(recordToDTO(record)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// ListPayments godoc
// @Summary List scheduled payments
// @Tags Payments
// @Produce json
// @Param date query string false "Filter by exact date (YYYY-MM-DD)"
// @Success 200 {array} PaymentRecordDTO
// @Router /api/payments [get]
func (h *Handler) ListPayments(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	date := r.URL.Query().Get("date")
	var (
		records []PaymentRecord
		err     error
	)
	if date != "" {
		records, err = h.service.ListForDate(r.Context(), date)
	} else {
		records, err = h.service.ListAll(r.Context())
	}
	if err != nil {
		if errors.Is(err, ErrCorruptData) {
			w.WriteHeader(http.StatusInternalServerError)
			encodeErr := json.NewEncoder(w).Encode(rest.ErrorResponse{
				Error: "Stored payment data is corrupt",
			})
			if encodeErr != nil {
				http.Error(w, encodeErr.Error(), http.StatusInternalServerError)
			}
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	dtos := make([]PaymentRecordDTO, 0, len(records))
	for _, record := range records {
		dtos = append(dtos, recordToDTO(record))
	}
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// CalendarIndex godoc
// @Summary Calendar markers for all scheduled payments
// @Tags Payments
// @Produce json
// @Success 200 {object} map[string]DayMarker
// @Router /api/payments/calendar [get]
func (h *Handler) CalendarIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	index, err := h.service.CalendarIndex(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(index); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func dtoToRecord(dto PaymentRecordDTO) PaymentRecord {
	return PaymentRecord{
		UID:       dto.UID,
		Title:     dto.Title,
		Amount:    dto.Amount,
		Date:      dto.Date,
		Category:  Category(dto.Category),
		Frequency: Frequency(dto.Frequency),
		Notes:     dto.Notes,
		Status:    dto.Status,
	}
}

func recordToDTO(record PaymentRecord) PaymentRecordDTO {
	return PaymentRecordDTO{
		UID:       record.UID,
		Title:     record.Title,
		Amount:    record.Amount,
		Date:      record.Date,
		Category:  string(record.Category),
		Frequency: string(record.Frequency),
		Notes:     record.Notes,
		Status:    record.Status,
	}
}
