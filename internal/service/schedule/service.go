package schedule

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SVM-BookingService/internal/domain"
	scheduleRepo "github.com/m04kA/SVM-BookingService/internal/infra/storage/schedule"
	placeClient "github.com/m04kA/SVM-BookingService/internal/integrations/placeservice"
	"github.com/m04kA/SVM-BookingService/internal/service/schedule/models"
	"github.com/m04kA/SVM-BookingService/pkg/types"
)

// Service сервис для работы с расписаниями площадок
type Service struct {
	scheduleRepo ScheduleRepository
	placeClient  PlaceServiceClient
	txManager    TransactionManager
	logger       Logger
}

// NewService создает новый экземпляр сервиса расписаний
func NewService(
	scheduleRepo ScheduleRepository,
	placeClient PlaceServiceClient,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		scheduleRepo: scheduleRepo,
		placeClient:  placeClient,
		txManager:    txManager,
		logger:       logger,
	}
}

// GetByVenue получает расписание площадки
// Публичный метод - доступен всем. Площадка без сохраненного расписания
// работает по умолчанию: 09:00-18:00 каждый день, минимум 1 час, без кулдауна
func (s *Service) GetByVenue(ctx context.Context, venueID int64) (*models.ScheduleResponse, error) {
	s.logger.Info("GetByVenue: fetching schedule for venue=%d", venueID)

	schedule, err := s.scheduleRepo.GetByVenueID(ctx, venueID)
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrScheduleNotFound) {
			s.logger.Info("GetByVenue: venue=%d has no stored schedule, using defaults", venueID)
			return models.FromDomainSchedule(domain.DefaultSchedule(venueID)), nil
		}
		s.logger.Error("GetByVenue: repository error for venue=%d: %v", venueID, err)
		return nil, fmt.Errorf("%w: GetByVenue - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetByVenue: successfully fetched schedule for venue=%d", venueID)
	return models.FromDomainSchedule(schedule), nil
}

// Update полностью заменяет расписание площадки
// Доступно только менеджерам площадки
func (s *Service) Update(ctx context.Context, req *models.UpdateScheduleRequest) (*models.ScheduleResponse, error) {
	s.logger.Info("Update: updating schedule for venue=%d by user=%d", req.VenueID, req.UserID)

	// 1. Валидируем входные данные
	if err := s.validateScheduleRequest(req); err != nil {
		s.logger.Warn("Update: validation failed for venue=%d: %v", req.VenueID, err)
		return nil, err
	}

	// 2. Получаем площадку и проверяем права доступа
	venue, err := s.placeClient.GetVenue(ctx, req.VenueID)
	if err != nil {
		if errors.Is(err, placeClient.ErrVenueNotFound) {
			s.logger.Warn("Update: venue id=%d not found", req.VenueID)
			return nil, ErrVenueNotFound
		}
		s.logger.Error("Update: failed to get venue id=%d: %v", req.VenueID, err)
		return nil, fmt.Errorf("%w: failed to get venue: %v", ErrInternal, err)
	}
	if !venue.IsManager(req.UserID) {
		s.logger.Warn("Update: user=%d is not a manager of venue=%d", req.UserID, req.VenueID)
		return nil, ErrAccessDenied
	}

	// 3. Сохраняем расписание в транзакции: базовая запись и дочерние
	// таблицы должны обновиться атомарно
	schedule := req.ToDomainSchedule()
	var updated *domain.WeeklySchedule
	err = s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		var txErr error
		updated, txErr = s.scheduleRepo.Upsert(txCtx, schedule)
		return txErr
	})
	if err != nil {
		s.logger.Error("Update: failed to upsert schedule for venue=%d: %v", req.VenueID, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Update: successfully updated schedule for venue=%d", req.VenueID)
	return models.FromDomainSchedule(updated), nil
}

// validateScheduleRequest проверяет все поля запроса на обновление расписания
func (s *Service) validateScheduleRequest(req *models.UpdateScheduleRequest) error {
	if err := validateWindowPair(req.DefaultOpenTime, req.DefaultCloseTime); err != nil {
		return fmt.Errorf("%w: default window: %v", ErrInvalidInput, err)
	}

	seen := map[int]bool{}
	for _, o := range req.WeekdayOverrides {
		if o.Weekday < 0 || o.Weekday > 6 {
			return fmt.Errorf("%w: override weekday must be 0-6, got %d", ErrInvalidInput, o.Weekday)
		}
		if seen[o.Weekday] {
			return fmt.Errorf("%w: duplicate override for weekday %d", ErrInvalidInput, o.Weekday)
		}
		seen[o.Weekday] = true
		if err := validateWindowPair(o.OpenTime, o.CloseTime); err != nil {
			return fmt.Errorf("%w: override for weekday %d: %v", ErrInvalidInput, o.Weekday, err)
		}
	}

	blocked := map[int]bool{}
	for _, wd := range req.BlockedWeekdays {
		if wd < 0 || wd > 6 {
			return fmt.Errorf("%w: blocked weekday must be 0-6, got %d", ErrInvalidInput, wd)
		}
		blocked[wd] = true
	}
	// Расписание, закрывающее все семь дней недели, делает площадку
	// недоступной навсегда - отклоняем при сохранении
	if len(blocked) == 7 {
		return ErrZeroCapacity
	}

	for _, date := range req.BlockedDates {
		if _, err := time.Parse(domain.DateFormat, date); err != nil {
			return fmt.Errorf("%w: blocked date %q must be YYYY-MM-DD", ErrInvalidInput, date)
		}
	}

	if req.MinBookingHours < domain.MinMinBookingHours || req.MinBookingHours > domain.MaxMinBookingHours {
		return fmt.Errorf("%w: minBookingHours must be between %.1f and %.1f",
			ErrInvalidInput, domain.MinMinBookingHours, domain.MaxMinBookingHours)
	}
	if req.CooldownMinutes < domain.MinCooldownMinutes || req.CooldownMinutes > domain.MaxCooldownMinutes {
		return fmt.Errorf("%w: cooldownMinutes must be between %d and %d",
			ErrInvalidInput, domain.MinCooldownMinutes, domain.MaxCooldownMinutes)
	}

	return nil
}

func validateWindowPair(open, close string) error {
	openTS := types.TimeString(open)
	closeTS := types.TimeString(close)

	if err := openTS.Validate(); err != nil {
		return fmt.Errorf("open time %q: %v", open, err)
	}
	if err := closeTS.Validate(); err != nil {
		return fmt.Errorf("close time %q: %v", close, err)
	}
	if !openTS.IsBefore(closeTS) {
		return fmt.Errorf("open time %q must be before close time %q", open, close)
	}
	return nil
}
