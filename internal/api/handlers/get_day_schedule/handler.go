package get_day_schedule

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SVM-BookingService/internal/api/handlers"
	getDaySchedule "github.com/m04kA/SVM-BookingService/internal/usecase/get_day_schedule"
)

const (
	msgInvalidVenueID = "некорректный ID площадки"
	msgInvalidDate    = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidParams  = "некорректные параметры запроса"
)

type Handler struct {
	useCase GetDayScheduleUseCase
	logger  Logger
}

func NewHandler(useCase GetDayScheduleUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/venues/{venueId}/day-schedule
// Query params: date (обязательный), forBooking (опционально)
// Публичный endpoint - без авторизации
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем venueId из URL
	vars := mux.Vars(r)
	venueIDStr := vars["venueId"]

	venueID, err := strconv.ParseInt(venueIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /venues/{id}/day-schedule - Invalid venue ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidVenueID)
		return
	}

	// Получаем query параметры
	date := r.URL.Query().Get("date")
	forBookingStr := r.URL.Query().Get("forBooking")

	forBooking := false
	if forBookingStr != "" {
		forBooking, err = strconv.ParseBool(forBookingStr)
		if err != nil {
			h.logger.Warn("GET /venues/{id}/day-schedule - Invalid forBooking value: %v", err)
			handlers.RespondBadRequest(w, msgInvalidParams)
			return
		}
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), &getDaySchedule.Request{
		VenueID:    venueID,
		Date:       date,
		ForBooking: forBooking,
	})
	if err != nil {
		switch {
		case errors.Is(err, getDaySchedule.ErrInvalidDate):
			h.logger.Warn("GET /venues/{id}/day-schedule - Invalid date: venue_id=%d, date=%s", venueID, date)
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, getDaySchedule.ErrInvalidInput):
			h.logger.Warn("GET /venues/{id}/day-schedule - Invalid input: venue_id=%d, error=%v", venueID, err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		default:
			h.logger.Error("GET /venues/{id}/day-schedule - Failed to get day schedule: venue_id=%d, error=%v",
				venueID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /venues/{id}/day-schedule - Day schedule retrieved successfully: venue_id=%d, date=%s, ranges=%d",
		venueID, date, len(result.Ranges))
	handlers.RespondJSON(w, http.StatusOK, result)
}
