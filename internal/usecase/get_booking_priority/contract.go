package get_booking_priority

import (
	"context"
	"time"

	"github.com/m04kA/SVM-BookingService/internal/domain"
	"github.com/m04kA/SVM-BookingService/internal/integrations/placeservice"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByRequestID(ctx context.Context, requestID string) ([]*domain.Booking, error)
	GetCompetingSlots(ctx context.Context, venueID int64, dates []time.Time, excludeRequestID string) ([]*domain.Booking, error)
}

// PlaceServiceClient интерфейс клиента для PlaceService
type PlaceServiceClient interface {
	GetVenue(ctx context.Context, venueID int64) (*placeservice.Venue, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
