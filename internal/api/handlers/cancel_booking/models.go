package cancel_booking

import (
	"github.com/m04kA/SVM-BookingService/internal/service/bookings/models"
)

// CancelBookingRequest HTTP request model
// Инициатор отмены определяется заголовком X-User-ID, в теле передается
// только причина
type CancelBookingRequest struct {
	CancellationReason *string `json:"cancellationReason,omitempty"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *CancelBookingRequest) ToServiceRequest(userID int64) *models.CancelBookingRequest {
	reason := ""
	if r.CancellationReason != nil {
		reason = *r.CancellationReason
	}

	return &models.CancelBookingRequest{
		UserID:             userID,
		CancellationReason: reason,
	}
}
