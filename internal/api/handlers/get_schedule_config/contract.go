package get_schedule_config

import (
	"context"

	"github.com/m04kA/SVM-BookingService/internal/service/schedule/models"
)

type ScheduleService interface {
	GetByVenue(ctx context.Context, venueID int64) (*models.ScheduleResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
