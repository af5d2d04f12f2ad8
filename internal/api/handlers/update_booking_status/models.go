package update_booking_status

import (
	"github.com/m04kA/SVM-BookingService/internal/service/bookings/models"
)

// UpdateStatusRequest HTTP request model
// Кто меняет статус, определяется заголовком X-User-ID
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *UpdateStatusRequest) ToServiceRequest(userID int64) *models.UpdateStatusRequest {
	return &models.UpdateStatusRequest{
		UserID: userID,
		Status: r.Status,
	}
}
