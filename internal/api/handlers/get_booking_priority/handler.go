package get_booking_priority

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SVM-BookingService/internal/api/handlers"
	"github.com/m04kA/SVM-BookingService/internal/api/middleware"
	getBookingPriority "github.com/m04kA/SVM-BookingService/internal/usecase/get_booking_priority"
)

const (
	msgInvalidRequestID = "некорректный ID заявки"
	msgMissingUserID    = "отсутствует ID пользователя"
	msgNotFound         = "заявка не найдена"
	msgForbidden        = "доступ запрещен"
)

type Handler struct {
	useCase GetBookingPriorityUseCase
	logger  Logger
}

func NewHandler(useCase GetBookingPriorityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/bookings/requests/{requestId}/priority
// Рекомендательный сигнал: лидирует ли заявка по часам среди конкурентов
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем requestId из URL
	vars := mux.Vars(r)
	requestID := vars["requestId"]

	// Получаем userID из контекста (через middleware Auth)
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /bookings/requests/{id}/priority - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), &getBookingPriority.Request{
		UserID:    userID,
		RequestID: requestID,
	})
	if err != nil {
		switch {
		case errors.Is(err, getBookingPriority.ErrInvalidInput):
			h.logger.Warn("GET /bookings/requests/{id}/priority - Invalid request ID: request_id=%s", requestID)
			handlers.RespondBadRequest(w, msgInvalidRequestID)

		case errors.Is(err, getBookingPriority.ErrRequestNotFound):
			h.logger.Warn("GET /bookings/requests/{id}/priority - Request not found: request_id=%s", requestID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, getBookingPriority.ErrAccessDenied):
			h.logger.Warn("GET /bookings/requests/{id}/priority - Access denied: request_id=%s, user_id=%d",
				requestID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("GET /bookings/requests/{id}/priority - Failed to get priority: request_id=%s, error=%v",
				requestID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /bookings/requests/{id}/priority - Priority retrieved successfully: request_id=%s, highest=%t",
		requestID, result.IsHighestHours)
	handlers.RespondJSON(w, http.StatusOK, result)
}
