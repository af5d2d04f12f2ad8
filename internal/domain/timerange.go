package domain

// RangeStatus type of a partitioned day range
type RangeStatus string

const (
	RangeAvailable   RangeStatus = "available"
	RangeBooked      RangeStatus = "booked"
	RangeCooldown    RangeStatus = "cooldown"
	RangeNotBookable RangeStatus = "not_bookable"
)

// TimeRange one contiguous half-open interval [StartHour, EndHour) of a day
//
// Ranges produced for one date are ordered by StartHour, non-overlapping and
// together cover the whole effective window without gaps.
type TimeRange struct {
	StartHour float64 // дробные часы, 9.5 = 09:30
	EndHour   float64
	Status    RangeStatus

	// Ссылка на бронирование (только для Status == RangeBooked)
	BookingID       *int64
	UniqueRequestID *string

	// Флаги прошедшего времени (выставляются только для сегодняшней даты)
	IsPast          bool
	IsPartiallyPast bool
}

// Duration returns the range length in fractional hours
func (r TimeRange) Duration() float64 {
	return r.EndHour - r.StartHour
}

// PriorityResult advisory signal: does a booking request hold the highest
// requested hours among competing requests on at least one shared date
//
// Never blocks or reorders approval - purely informational.
type PriorityResult struct {
	HasCompetitors  bool
	IsHighestHours  bool
	CurrentHours    float64
	CompetitorCount int
}
