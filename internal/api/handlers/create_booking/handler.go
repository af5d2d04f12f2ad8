package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SVM-BookingService/internal/api/handlers"
	"github.com/m04kA/SVM-BookingService/internal/api/middleware"
	createBooking "github.com/m04kA/SVM-BookingService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgInvalidTime        = "некорректный формат времени, ожидается HH:MM"
	msgSlotNotAvailable   = "выбранный временной интервал недоступен"
	msgVenueNotFound      = "площадка не найдена"
	msgVenueInactive      = "площадка не принимает бронирования"
	msgVenueClosed        = "площадка закрыта в выбранную дату"
	msgInvalidBookingDate = "некорректная дата бронирования"
	msgTimeElapsed        = "время начала уже прошло"
	msgInvalidInput       = "некорректные данные заявки"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Получаем userID из контекста (через middleware Auth) - клиентом заявки
	// становится аутентифицированный пользователь, а не поле тела запроса
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Конвертируем HTTP запрос в модель use case (с парсингом времени)
	useCaseReq, err := req.ToUseCaseRequest(userID)
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTime)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrSlotNotAvailable):
			h.logger.Warn("POST /bookings - Slot not available: user_id=%d, venue_id=%d", userID, req.VenueID)
			handlers.RespondError(w, http.StatusConflict, msgSlotNotAvailable)

		case errors.Is(err, createBooking.ErrVenueNotFound):
			h.logger.Warn("POST /bookings - Venue not found: venue_id=%d", req.VenueID)
			handlers.RespondNotFound(w, msgVenueNotFound)

		case errors.Is(err, createBooking.ErrVenueInactive):
			h.logger.Warn("POST /bookings - Venue inactive: venue_id=%d", req.VenueID)
			handlers.RespondBadRequest(w, msgVenueInactive)

		case errors.Is(err, createBooking.ErrVenueClosed):
			h.logger.Warn("POST /bookings - Venue closed: user_id=%d, venue_id=%d", userID, req.VenueID)
			handlers.RespondBadRequest(w, msgVenueClosed)

		case errors.Is(err, createBooking.ErrInvalidDate):
			h.logger.Warn("POST /bookings - Invalid booking date: user_id=%d, venue_id=%d", userID, req.VenueID)
			handlers.RespondBadRequest(w, msgInvalidBookingDate)

		case errors.Is(err, createBooking.ErrTimeElapsed):
			h.logger.Warn("POST /bookings - Start time elapsed: user_id=%d, venue_id=%d", userID, req.VenueID)
			handlers.RespondBadRequest(w, msgTimeElapsed)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: user_id=%d, venue_id=%d, error=%v",
				userID, req.VenueID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /bookings - Failed to create booking request: user_id=%d, venue_id=%d, error=%v",
				userID, req.VenueID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking request created successfully: request_id=%s, user_id=%d, venue_id=%d, slots=%d",
		result.UniqueRequestID, userID, req.VenueID, len(result.Slots))
	handlers.RespondJSON(w, http.StatusCreated, result)
}
