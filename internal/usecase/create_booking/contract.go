package create_booking

import (
	"context"
	"time"

	"github.com/m04kA/SVM-BookingService/internal/domain"
	"github.com/m04kA/SVM-BookingService/internal/integrations/placeservice"
	"github.com/m04kA/SVM-BookingService/internal/scheduling"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	CreateRequest(ctx context.Context, slots []*domain.Booking) ([]*domain.Booking, error)
	GetByVenueWithFilter(ctx context.Context, filter domain.VenueBookingsFilter) ([]*domain.Booking, error)
}

// ScheduleRepository интерфейс репозитория расписаний
type ScheduleRepository interface {
	GetByVenueID(ctx context.Context, venueID int64) (*domain.WeeklySchedule, error)
}

// PlaceServiceClient интерфейс клиента для PlaceService
type PlaceServiceClient interface {
	GetVenue(ctx context.Context, venueID int64) (*placeservice.Venue, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
// Отдает время в бизнес-таймзоне
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return scheduling.TashkentClock{}.Now()
}
