package domain

import "github.com/m04kA/SVM-BookingService/pkg/types"

// Default schedule values (used when a venue has no stored schedule)
const (
	DefaultOpenTime        = types.TimeString("09:00")
	DefaultCloseTime       = types.TimeString("18:00")
	DefaultMinBookingHours = 1.0
	DefaultCooldownMinutes = 0
)

// Business validation constants
const (
	MinMinBookingHours = 0.5
	MaxMinBookingHours = 12.0
	MinCooldownMinutes = 0
	MaxCooldownMinutes = 240 // 4 hours

	MaxSlotsPerRequest          = 7
	MaxNotesLength              = 500
	MaxCancellationReasonLength = 500
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// InactiveStatuses список статусов, не влияющих на доступность слотов
var InactiveStatuses = []BookingStatus{
	StatusRejected,
	StatusCancelledByClient,
	StatusCancelledByVenue,
}

// ActiveStatuses список статусов, занимающих время площадки
// Ожидающие подтверждения заявки тоже блокируют слоты - несколько pending
// заявок на одни и те же часы конкурируют через приоритет, а не через овербукинг
var ActiveStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
	StatusCompleted,
}
