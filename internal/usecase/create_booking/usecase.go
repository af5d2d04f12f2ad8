package create_booking

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SVM-BookingService/internal/domain"
	scheduleRepo "github.com/m04kA/SVM-BookingService/internal/infra/storage/schedule"
	placeClient "github.com/m04kA/SVM-BookingService/internal/integrations/placeservice"
	"github.com/m04kA/SVM-BookingService/internal/scheduling"
)

// UseCase use case для создания заявки на бронирование
//
// Заявка содержит до MaxSlotsPerRequest интервалов на разные даты, все они
// создаются атомарно со статусом pending и общим uniqueRequestId. Проверка
// доступности выполняется в сериализуемой транзакции с блокировкой строк
// каждой затронутой даты - две конкурирующие заявки на один интервал не
// могут пройти одновременно
type UseCase struct {
	bookingRepo  BookingRepository
	scheduleRepo ScheduleRepository
	placeClient  PlaceServiceClient
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	scheduleRepo ScheduleRepository,
	placeClient PlaceServiceClient,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		scheduleRepo: scheduleRepo,
		placeClient:  placeClient,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case создания заявки
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: user=%d, venue=%d, slots=%d", req.UserID, req.VenueID, len(req.Slots))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Получаем площадку (название и цена денормализуются в заявку)
	venue, err := uc.placeClient.GetVenue(ctx, req.VenueID)
	if err != nil {
		if errors.Is(err, placeClient.ErrVenueNotFound) {
			uc.logger.Warn("CreateBooking: venue id=%d not found", req.VenueID)
			return nil, ErrVenueNotFound
		}
		uc.logger.Error("CreateBooking: failed to get venue id=%d: %v", req.VenueID, err)
		return nil, fmt.Errorf("%w: failed to get venue: %v", ErrInternal, err)
	}
	if !venue.IsActive {
		uc.logger.Warn("CreateBooking: venue id=%d is inactive", req.VenueID)
		return nil, ErrVenueInactive
	}

	// 4. Группируем слоты по датам - каждая дата проверяется и блокируется
	// один раз
	slotsByDate := make(map[string][]Slot)
	for _, slot := range req.Slots {
		slotsByDate[slot.Date] = append(slotsByDate[slot.Date], slot)
	}
	dates := make([]string, 0, len(slotsByDate))
	for date := range slotsByDate {
		dates = append(dates, date)
	}
	// Стабильный порядок дат предотвращает взаимные блокировки между
	// конкурирующими заявками
	sort.Strings(dates)

	requestID := uuid.NewString()
	var created []*domain.Booking

	// 5. Выполняем операции с БД в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 5.1. Получаем расписание площадки (или умолчание)
		schedule, err := uc.scheduleRepo.GetByVenueID(txCtx, req.VenueID)
		if err != nil {
			if !errors.Is(err, scheduleRepo.ErrScheduleNotFound) {
				uc.logger.Error("CreateBooking: failed to get schedule: %v", err)
				return fmt.Errorf("%w: failed to get schedule: %v", ErrInternal, err)
			}
			schedule = domain.DefaultSchedule(req.VenueID)
			uc.logger.Info("CreateBooking: venue=%d has no stored schedule, using defaults", req.VenueID)
		}

		toCreate := make([]*domain.Booking, 0, len(req.Slots))

		for _, date := range dates {
			// 5.2. Разрешаем рабочее окно на дату
			window, open := scheduling.ResolveWindow(schedule, date)
			if !open {
				uc.logger.Warn("CreateBooking: venue=%d is closed on %s", req.VenueID, date)
				return fmt.Errorf("%w: %s", ErrVenueClosed, date)
			}

			// 5.3. Получаем активные бронирования даты с блокировкой (FOR UPDATE)
			day, _ := time.Parse(domain.DateFormat, date)
			filter := domain.VenueBookingsFilter{
				VenueID:   req.VenueID,
				StartDate: &day,
				EndDate:   &day,
			}
			existing, err := uc.bookingRepo.GetByVenueWithFilter(txCtx, filter)
			if err != nil {
				uc.logger.Error("CreateBooking: failed to get bookings for %s: %v", date, err)
				return fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
			}

			for _, slot := range slotsByDate[date] {
				// 5.4. Время начала на сегодня не должно быть в прошлом
				if scheduling.IsStartElapsed(date, slot.StartTime, now) {
					uc.logger.Warn("CreateBooking: start %s on %s has already passed", slot.StartTime, date)
					return fmt.Errorf("%w: %s %s", ErrTimeElapsed, date, slot.StartTime)
				}

				// 5.5. Интервал должен уместиться в окно, выдержать минимальную
				// длительность и кулдауны вокруг существующих бронирований
				if !scheduling.IsValidBookingInterval(slot.StartTime, slot.EndTime, window, existing,
					schedule.MinBookingHours, schedule.CooldownMinutes) {
					uc.logger.Warn("CreateBooking: slot %s-%s on %s is not available",
						slot.StartTime, slot.EndTime, date)
					return fmt.Errorf("%w: %s %s-%s", ErrSlotNotAvailable, date, slot.StartTime, slot.EndTime)
				}

				booking := &domain.Booking{
					UniqueRequestID: requestID,
					VenueID:         req.VenueID,
					ClientID:        req.UserID,
					AgentID:         req.AgentID,
					BookingDate:     day,
					StartTime:       slot.StartTime,
					EndTime:         slot.EndTime,
					Status:          domain.StatusPending,
					VenueName:       venue.Name,
					PricePerHour:    venue.PricePerHour,
					Notes:           req.Notes,
				}
				toCreate = append(toCreate, booking)
				// Принятый слот сам становится препятствием для остальных
				// слотов заявки на эту дату: кулдаун действует и между ними
				existing = append(existing, booking)
			}
		}

		// 5.6. Создаем все слоты заявки одним запросом
		created, err = uc.bookingRepo.CreateRequest(txCtx, toCreate)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to create request: %v", err)
			return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created request %s with %d slots", requestID, len(created))

	resp := &Response{
		UniqueRequestID: requestID,
		VenueID:         req.VenueID,
		ClientID:        req.UserID,
		AgentID:         req.AgentID,
		VenueName:       venue.Name,
		PricePerHour:    venue.PricePerHour,
		Slots:           make([]CreatedSlot, len(created)),
		Notes:           req.Notes,
		CreatedAt:       created[0].CreatedAt,
	}
	for i, b := range created {
		resp.Slots[i] = CreatedSlot{
			ID:        b.ID,
			Date:      b.BookingDate.Format(domain.DateFormat),
			StartTime: b.StartTime,
			EndTime:   b.EndTime,
			Status:    string(b.Status),
		}
	}
	return resp, nil
}
