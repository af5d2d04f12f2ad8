package domain

import (
	"time"

	"github.com/m04kA/SVM-BookingService/pkg/types"
)

// DayWindow open/close pair for one day, HH:MM
type DayWindow struct {
	OpenTime  types.TimeString
	CloseTime types.TimeString
}

// IsZero returns true if neither bound is set
func (w DayWindow) IsZero() bool {
	return w.OpenTime.IsZero() && w.CloseTime.IsZero()
}

// WeeklySchedule represents the operating-hours configuration of a venue
//
// Weekday keys use Go's time.Weekday (0 = Sunday .. 6 = Saturday).
// Resolution order for a concrete date: blocked date -> blocked weekday ->
// weekday override -> default window.
type WeeklySchedule struct {
	VenueID int64

	DefaultWindow    DayWindow
	WeekdayOverrides map[time.Weekday]DayWindow
	BlockedWeekdays  map[time.Weekday]bool
	BlockedDates     map[string]bool // ключи в формате YYYY-MM-DD

	MinBookingHours float64 // минимальная длительность бронирования в часах
	CooldownMinutes int     // обязательный перерыв после каждого бронирования

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsBlockedDate returns true if the concrete date is fully closed
func (s *WeeklySchedule) IsBlockedDate(date string) bool {
	return s.BlockedDates[date]
}

// IsBlockedWeekday returns true if the venue is closed every such weekday
func (s *WeeklySchedule) IsBlockedWeekday(weekday time.Weekday) bool {
	return s.BlockedWeekdays[weekday]
}

// HasZeroCapacity returns true if all seven weekdays are blocked
func (s *WeeklySchedule) HasZeroCapacity() bool {
	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		if !s.BlockedWeekdays[wd] {
			return false
		}
	}
	return true
}

// DefaultSchedule returns the schedule used when a venue has no stored configuration
func DefaultSchedule(venueID int64) *WeeklySchedule {
	return &WeeklySchedule{
		VenueID: venueID,
		DefaultWindow: DayWindow{
			OpenTime:  DefaultOpenTime,
			CloseTime: DefaultCloseTime,
		},
		WeekdayOverrides: map[time.Weekday]DayWindow{},
		BlockedWeekdays:  map[time.Weekday]bool{},
		BlockedDates:     map[string]bool{},
		MinBookingHours:  DefaultMinBookingHours,
		CooldownMinutes:  DefaultCooldownMinutes,
	}
}
