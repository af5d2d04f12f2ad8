package models

import (
	"sort"
	"time"

	"github.com/m04kA/SVM-BookingService/internal/domain"
	"github.com/m04kA/SVM-BookingService/pkg/types"
)

// Request модели

// WeekdayOverride переопределение окна для дня недели (0 = воскресенье)
type WeekdayOverride struct {
	Weekday   int    `json:"weekday"`
	OpenTime  string `json:"openTime"`
	CloseTime string `json:"closeTime"`
}

// UpdateScheduleRequest запрос на полную замену расписания площадки
type UpdateScheduleRequest struct {
	UserID  int64 `json:"userId"`
	VenueID int64 `json:"venueId"`

	DefaultOpenTime  string `json:"defaultOpenTime"`
	DefaultCloseTime string `json:"defaultCloseTime"`

	WeekdayOverrides []WeekdayOverride `json:"weekdayOverrides,omitempty"`
	BlockedWeekdays  []int             `json:"blockedWeekdays,omitempty"`
	BlockedDates     []string          `json:"blockedDates,omitempty"` // YYYY-MM-DD

	MinBookingHours float64 `json:"minBookingHours"`
	CooldownMinutes int     `json:"cooldownMinutes"`
}

// ToDomainSchedule конвертирует request в domain модель
// Валидация выполняется сервисом до вызова
func (r *UpdateScheduleRequest) ToDomainSchedule() *domain.WeeklySchedule {
	schedule := &domain.WeeklySchedule{
		VenueID: r.VenueID,
		DefaultWindow: domain.DayWindow{
			OpenTime:  types.TimeString(r.DefaultOpenTime),
			CloseTime: types.TimeString(r.DefaultCloseTime),
		},
		WeekdayOverrides: map[time.Weekday]domain.DayWindow{},
		BlockedWeekdays:  map[time.Weekday]bool{},
		BlockedDates:     map[string]bool{},
		MinBookingHours:  r.MinBookingHours,
		CooldownMinutes:  r.CooldownMinutes,
	}

	for _, o := range r.WeekdayOverrides {
		schedule.WeekdayOverrides[time.Weekday(o.Weekday)] = domain.DayWindow{
			OpenTime:  types.TimeString(o.OpenTime),
			CloseTime: types.TimeString(o.CloseTime),
		}
	}
	for _, wd := range r.BlockedWeekdays {
		schedule.BlockedWeekdays[time.Weekday(wd)] = true
	}
	for _, date := range r.BlockedDates {
		schedule.BlockedDates[date] = true
	}

	return schedule
}

// Response модели

// ScheduleResponse ответ с расписанием площадки
type ScheduleResponse struct {
	VenueID int64 `json:"venueId"`

	DefaultOpenTime  string `json:"defaultOpenTime"`
	DefaultCloseTime string `json:"defaultCloseTime"`

	WeekdayOverrides []WeekdayOverride `json:"weekdayOverrides"`
	BlockedWeekdays  []int             `json:"blockedWeekdays"`
	BlockedDates     []string          `json:"blockedDates"`

	MinBookingHours float64 `json:"minBookingHours"`
	CooldownMinutes int     `json:"cooldownMinutes"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// FromDomainSchedule конвертирует domain модель в DTO
// Слайсы отсортированы для стабильного представления
func FromDomainSchedule(s *domain.WeeklySchedule) *ScheduleResponse {
	if s == nil {
		return nil
	}

	resp := &ScheduleResponse{
		VenueID:          s.VenueID,
		DefaultOpenTime:  s.DefaultWindow.OpenTime.String(),
		DefaultCloseTime: s.DefaultWindow.CloseTime.String(),
		WeekdayOverrides: make([]WeekdayOverride, 0, len(s.WeekdayOverrides)),
		BlockedWeekdays:  make([]int, 0, len(s.BlockedWeekdays)),
		BlockedDates:     make([]string, 0, len(s.BlockedDates)),
		MinBookingHours:  s.MinBookingHours,
		CooldownMinutes:  s.CooldownMinutes,
		CreatedAt:        s.CreatedAt,
		UpdatedAt:        s.UpdatedAt,
	}

	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		if window, ok := s.WeekdayOverrides[wd]; ok {
			resp.WeekdayOverrides = append(resp.WeekdayOverrides, WeekdayOverride{
				Weekday:   int(wd),
				OpenTime:  window.OpenTime.String(),
				CloseTime: window.CloseTime.String(),
			})
		}
		if s.BlockedWeekdays[wd] {
			resp.BlockedWeekdays = append(resp.BlockedWeekdays, int(wd))
		}
	}

	for date, blocked := range s.BlockedDates {
		if blocked {
			resp.BlockedDates = append(resp.BlockedDates, date)
		}
	}
	sort.Strings(resp.BlockedDates)

	return resp
}
