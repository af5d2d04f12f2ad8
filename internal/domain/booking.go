package domain

import (
	"time"

	"github.com/m04kA/SVM-BookingService/pkg/types"
)

// BookingStatus represents the status of a booking slot
type BookingStatus string

const (
	StatusPending           BookingStatus = "pending"
	StatusConfirmed         BookingStatus = "confirmed"
	StatusRejected          BookingStatus = "rejected"
	StatusCompleted         BookingStatus = "completed"
	StatusCancelledByClient BookingStatus = "cancelled_by_client"
	StatusCancelledByVenue  BookingStatus = "cancelled_by_venue"
)

// Booking represents one booked time slot of a venue
// A multi-date booking request is stored as several rows sharing UniqueRequestID
type Booking struct {
	ID              int64
	UniqueRequestID string // группирует слоты одной заявки (uuid)
	VenueID         int64
	ClientID        int64
	AgentID         *int64 // агент, сопровождающий заявку (опционально)
	BookingDate     time.Time
	StartTime       types.TimeString
	EndTime         types.TimeString
	Status          BookingStatus

	// Denormalized data for history
	VenueName    string
	PricePerHour float64
	Notes        *string

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the booking still occupies venue time
func (b *Booking) IsActive() bool {
	return b.Status != StatusRejected &&
		b.Status != StatusCancelledByClient &&
		b.Status != StatusCancelledByVenue
}

// CanBeCancelled returns true if the booking can be cancelled
func (b *Booking) CanBeCancelled() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// IsCancelled returns true if the booking has been cancelled or rejected
func (b *Booking) IsCancelled() bool {
	return b.Status == StatusRejected ||
		b.Status == StatusCancelledByClient ||
		b.Status == StatusCancelledByVenue
}

// DurationHours returns the slot length in fractional hours
// Malformed rows (unparseable or inverted times) report zero
func (b *Booking) DurationHours() float64 {
	start, err := b.StartTime.Minutes()
	if err != nil {
		return 0
	}
	end, err := b.EndTime.Minutes()
	if err != nil {
		return 0
	}
	if end <= start {
		return 0
	}
	return float64(end-start) / 60.0
}

// VenueBookingsFilter фильтр для получения бронирований площадки
type VenueBookingsFilter struct {
	VenueID         int64          // Обязательный параметр
	StartDate       *time.Time     // Начало периода (опционально, если nil - без ограничения)
	EndDate         *time.Time     // Конец периода (опционально, если nil - без ограничения)
	Status          *BookingStatus // Фильтр по статусу (опционально)
	IncludeInactive bool           // Включать ли неактивные бронирования (отмененные, отклоненные)
}
