package get_booking_priority

import (
	"context"

	getBookingPriority "github.com/m04kA/SVM-BookingService/internal/usecase/get_booking_priority"
)

type GetBookingPriorityUseCase interface {
	Execute(ctx context.Context, req *getBookingPriority.Request) (*getBookingPriority.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
