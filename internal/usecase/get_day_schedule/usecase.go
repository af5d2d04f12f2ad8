package get_day_schedule

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SVM-BookingService/internal/domain"
	scheduleRepo "github.com/m04kA/SVM-BookingService/internal/infra/storage/schedule"
	"github.com/m04kA/SVM-BookingService/internal/scheduling"
)

// UseCase use case получения расписания дня площадки
//
// Возвращает полное разбиение рабочего окна на типизированные диапазоны:
// свободные, занятые, кулдауны после бронирований и промежутки короче
// минимальной длительности. Для сегодняшней даты диапазоны размечаются
// флагами прошедшего времени
type UseCase struct {
	bookingRepo  BookingRepository
	scheduleRepo ScheduleRepository
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	scheduleRepo ScheduleRepository,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		scheduleRepo: scheduleRepo,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case получения расписания дня
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetDaySchedule: venue=%d, date=%s, forBooking=%t",
		req.VenueID, req.Date, req.ForBooking)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetDaySchedule: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Получаем расписание площадки (или умолчание, если не настроено)
	schedule, err := uc.scheduleRepo.GetByVenueID(ctx, req.VenueID)
	if err != nil {
		if !errors.Is(err, scheduleRepo.ErrScheduleNotFound) {
			uc.logger.Error("GetDaySchedule: failed to get schedule for venue=%d: %v", req.VenueID, err)
			return nil, fmt.Errorf("%w: failed to get schedule: %v", ErrInternal, err)
		}
		schedule = domain.DefaultSchedule(req.VenueID)
		uc.logger.Info("GetDaySchedule: venue=%d has no stored schedule, using defaults", req.VenueID)
	}

	// 4. Разрешаем рабочее окно на дату
	window, open := scheduling.ResolveWindow(schedule, req.Date)
	if !open {
		uc.logger.Info("GetDaySchedule: venue=%d is closed on %s", req.VenueID, req.Date)
		return &Response{
			VenueID:         req.VenueID,
			Date:            req.Date,
			Closed:          true,
			MinBookingHours: schedule.MinBookingHours,
			CooldownMinutes: schedule.CooldownMinutes,
			Ranges:          []Range{},
		}, nil
	}

	// 5. Получаем активные бронирования на дату
	date, _ := time.Parse(domain.DateFormat, req.Date)
	filter := domain.VenueBookingsFilter{
		VenueID:   req.VenueID,
		StartDate: &date,
		EndDate:   &date,
	}
	bookings, err := uc.bookingRepo.GetByVenueWithFilter(ctx, filter)
	if err != nil {
		uc.logger.Error("GetDaySchedule: failed to get bookings for venue=%d: %v", req.VenueID, err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	// 6. Разбиваем окно на диапазоны
	ranges := scheduling.Partition(window, bookings, schedule.CooldownMinutes, schedule.MinBookingHours)

	// 7. Размечаем прошедшее время (только для сегодняшней даты)
	ranges = scheduling.AnnotatePast(ranges, req.Date, now)

	// 8. Для букинг-потока прошедшие диапазоны не показываются
	if req.ForBooking {
		ranges = scheduling.FilterPast(ranges)
	}

	uc.logger.Info("GetDaySchedule: venue=%d, date=%s - %d ranges, %d bookings",
		req.VenueID, req.Date, len(ranges), len(bookings))

	return &Response{
		VenueID:         req.VenueID,
		Date:            req.Date,
		OpenTime:        window.Open.String(),
		CloseTime:       window.Close.String(),
		MinBookingHours: schedule.MinBookingHours,
		CooldownMinutes: schedule.CooldownMinutes,
		Ranges:          toRanges(ranges),
	}, nil
}
