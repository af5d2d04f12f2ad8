package get_day_schedule

import (
	"github.com/m04kA/SVM-BookingService/internal/domain"
	"github.com/m04kA/SVM-BookingService/pkg/types"
)

// Request модель запроса расписания дня площадки
type Request struct {
	VenueID    int64  // ID площадки
	Date       string // Дата YYYY-MM-DD
	ForBooking bool   // true - выкинуть прошедшие диапазоны (букинг-поток)
}

// Response модель ответа с разбиением дня на диапазоны
type Response struct {
	VenueID int64  `json:"venueId"`
	Date    string `json:"date"`
	Closed  bool   `json:"closed"`

	OpenTime  string `json:"openTime,omitempty"`  // "09:00", пусто если closed
	CloseTime string `json:"closeTime,omitempty"` // "18:00", пусто если closed

	MinBookingHours float64 `json:"minBookingHours"`
	CooldownMinutes int     `json:"cooldownMinutes"`

	Ranges []Range `json:"ranges"`
}

// Range один типизированный диапазон дня
type Range struct {
	StartHour float64 `json:"startHour"` // дробные часы: 10.5 = 10:30
	EndHour   float64 `json:"endHour"`
	StartTime string  `json:"startTime"` // то же время в формате HH:MM
	EndTime   string  `json:"endTime"`
	Status    string  `json:"status"` // available | booked | cooldown | not_bookable

	BookingID       *int64  `json:"bookingId,omitempty"`
	UniqueRequestID *string `json:"uniqueRequestId,omitempty"`

	IsPast          bool `json:"isPast,omitempty"`
	IsPartiallyPast bool `json:"isPartiallyPast,omitempty"`
}

func toRanges(ranges []domain.TimeRange) []Range {
	out := make([]Range, len(ranges))
	for i, r := range ranges {
		out[i] = Range{
			StartHour:       r.StartHour,
			EndHour:         r.EndHour,
			StartTime:       hourToTime(r.StartHour),
			EndTime:         hourToTime(r.EndHour),
			Status:          string(r.Status),
			BookingID:       r.BookingID,
			UniqueRequestID: r.UniqueRequestID,
			IsPast:          r.IsPast,
			IsPartiallyPast: r.IsPartiallyPast,
		}
	}
	return out
}

// hourToTime рендерит дробные часы в HH:MM
// Границы диапазонов всегда кратны минуте, округление страхует от
// погрешности float
func hourToTime(hour float64) string {
	ts, err := types.NewTimeStringFromMinutes(int(hour*60 + 0.5))
	if err != nil {
		return ""
	}
	return ts.String()
}
