package get_schedule_config

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SVM-BookingService/internal/api/handlers"
)

const (
	msgInvalidVenueID = "некорректный ID площадки"
)

type Handler struct {
	service ScheduleService
	logger  Logger
}

func NewHandler(service ScheduleService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/venues/{venueId}/schedule
// Публичный endpoint - без авторизации
// Если расписание не настроено, сервис возвращает дефолтное
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем venueId из URL
	vars := mux.Vars(r)
	venueIDStr := vars["venueId"]

	venueID, err := strconv.ParseInt(venueIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /venues/{id}/schedule - Invalid venue ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidVenueID)
		return
	}

	// Получаем расписание площадки
	result, err := h.service.GetByVenue(r.Context(), venueID)
	if err != nil {
		h.logger.Error("GET /venues/{id}/schedule - Failed to get schedule: venue_id=%d, error=%v",
			venueID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /venues/{id}/schedule - Schedule retrieved successfully: venue_id=%d", venueID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
