package get_booking_priority

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SVM-BookingService/internal/domain"
	bookingRepo "github.com/m04kA/SVM-BookingService/internal/infra/storage/booking"
	placeClient "github.com/m04kA/SVM-BookingService/internal/integrations/placeservice"
	"github.com/m04kA/SVM-BookingService/internal/scheduling"
)

// UseCase use case получения приоритета заявки
type UseCase struct {
	bookingRepo BookingRepository
	placeClient PlaceServiceClient
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	placeClient PlaceServiceClient,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo: bookingRepo,
		placeClient: placeClient,
		logger:      logger,
	}
}

// Execute выполняет use case получения приоритета заявки
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetBookingPriority: user=%d, request=%s", req.UserID, req.RequestID)

	// 1. Валидация входных данных
	if req.UserID <= 0 {
		return nil, fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}
	if _, err := uuid.Parse(req.RequestID); err != nil {
		uc.logger.Warn("GetBookingPriority: malformed request id %q", req.RequestID)
		return nil, fmt.Errorf("%w: requestId must be a uuid", ErrInvalidInput)
	}

	// 2. Получаем слоты заявки
	slots, err := uc.bookingRepo.GetByRequestID(ctx, req.RequestID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrRequestNotFound) {
			uc.logger.Warn("GetBookingPriority: request %s not found", req.RequestID)
			return nil, ErrRequestNotFound
		}
		uc.logger.Error("GetBookingPriority: repository error for request %s: %v", req.RequestID, err)
		return nil, fmt.Errorf("%w: failed to get request: %v", ErrInternal, err)
	}

	// 3. Проверяем права доступа: владелец заявки, её агент или менеджер
	// площадки
	if err := uc.checkAccess(ctx, slots[0], req.UserID); err != nil {
		uc.logger.Warn("GetBookingPriority: access denied for user=%d to request %s", req.UserID, req.RequestID)
		return nil, err
	}

	// 4. Конкурируют только активные слоты: отменённая заявка часов не набирает
	candidate := make([]*domain.Booking, 0, len(slots))
	dates := make([]time.Time, 0, len(slots))
	seenDates := map[string]bool{}
	for _, slot := range slots {
		if !slot.IsActive() {
			continue
		}
		candidate = append(candidate, slot)
		key := slot.BookingDate.Format(domain.DateFormat)
		if !seenDates[key] {
			seenDates[key] = true
			dates = append(dates, slot.BookingDate)
		}
	}

	venueID := slots[0].VenueID
	if len(candidate) == 0 {
		uc.logger.Info("GetBookingPriority: request %s has no active slots", req.RequestID)
		return &Response{RequestID: req.RequestID, VenueID: venueID}, nil
	}

	// 5. Получаем активные слоты других заявок на те же даты
	competitors, err := uc.bookingRepo.GetCompetingSlots(ctx, venueID, dates, req.RequestID)
	if err != nil {
		uc.logger.Error("GetBookingPriority: failed to get competitors for request %s: %v", req.RequestID, err)
		return nil, fmt.Errorf("%w: failed to get competitors: %v", ErrInternal, err)
	}

	// 6. Ранжируем
	result := scheduling.RankPriority(candidate, competitors)

	uc.logger.Info("GetBookingPriority: request %s - hours=%.1f, competitors=%d, highest=%t",
		req.RequestID, result.CurrentHours, result.CompetitorCount, result.IsHighestHours)

	return &Response{
		RequestID:       req.RequestID,
		VenueID:         venueID,
		CurrentHours:    result.CurrentHours,
		HasCompetitors:  result.HasCompetitors,
		CompetitorCount: result.CompetitorCount,
		IsHighestHours:  result.IsHighestHours,
	}, nil
}

// checkAccess проверяет право пользователя видеть приоритет заявки
func (uc *UseCase) checkAccess(ctx context.Context, slot *domain.Booking, userID int64) error {
	if slot.ClientID == userID {
		return nil
	}
	if slot.AgentID != nil && *slot.AgentID == userID {
		return nil
	}

	venue, err := uc.placeClient.GetVenue(ctx, slot.VenueID)
	if err != nil {
		if errors.Is(err, placeClient.ErrVenueNotFound) {
			return ErrAccessDenied
		}
		return fmt.Errorf("%w: failed to get venue: %v", ErrInternal, err)
	}
	if venue.IsManager(userID) {
		return nil
	}

	return ErrAccessDenied
}
