package update_schedule_config

import (
	"github.com/m04kA/SVM-BookingService/internal/service/schedule/models"
)

// UpdateScheduleRequest HTTP request model
// Расписание заменяется целиком, а не частично. ID менеджера не принимается
// в теле - он берется из заголовка X-User-ID, проверенного middleware Auth
type UpdateScheduleRequest struct {
	DefaultOpenTime  string `json:"defaultOpenTime"`
	DefaultCloseTime string `json:"defaultCloseTime"`

	WeekdayOverrides []models.WeekdayOverride `json:"weekdayOverrides,omitempty"`
	BlockedWeekdays  []int                    `json:"blockedWeekdays,omitempty"`
	BlockedDates     []string                 `json:"blockedDates,omitempty"` // YYYY-MM-DD

	MinBookingHours float64 `json:"minBookingHours"`
	CooldownMinutes int     `json:"cooldownMinutes"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
// VenueID берётся из URL, UserID - из контекста запроса
func (r *UpdateScheduleRequest) ToServiceRequest(venueID, userID int64) *models.UpdateScheduleRequest {
	return &models.UpdateScheduleRequest{
		UserID:           userID,
		VenueID:          venueID,
		DefaultOpenTime:  r.DefaultOpenTime,
		DefaultCloseTime: r.DefaultCloseTime,
		WeekdayOverrides: r.WeekdayOverrides,
		BlockedWeekdays:  r.BlockedWeekdays,
		BlockedDates:     r.BlockedDates,
		MinBookingHours:  r.MinBookingHours,
		CooldownMinutes:  r.CooldownMinutes,
	}
}
