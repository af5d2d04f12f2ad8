package create_booking

import (
	"github.com/m04kA/SVM-BookingService/pkg/types"

	createBooking "github.com/m04kA/SVM-BookingService/internal/usecase/create_booking"
)

// SlotRequest один запрашиваемый интервал
type SlotRequest struct {
	Date      string `json:"date"`      // "2025-10-15"
	StartTime string `json:"startTime"` // "10:00"
	EndTime   string `json:"endTime"`   // "12:00"
}

// CreateBookingRequest HTTP request model
// ID клиента не принимается в теле - он берется из заголовка X-User-ID,
// проверенного middleware Auth
type CreateBookingRequest struct {
	AgentID *int64        `json:"agentId,omitempty"`
	VenueID int64         `json:"venueId"`
	Slots   []SlotRequest `json:"slots"`
	Notes   *string       `json:"notes,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
// Форматы времени проверяются здесь, чтобы вернуть 400 до вызова use case
func (r *CreateBookingRequest) ToUseCaseRequest(userID int64) (*createBooking.Request, error) {
	slots := make([]createBooking.Slot, 0, len(r.Slots))
	for _, s := range r.Slots {
		start, err := types.NewTimeStringFromString(s.StartTime)
		if err != nil {
			return nil, err
		}
		end, err := types.NewTimeStringFromString(s.EndTime)
		if err != nil {
			return nil, err
		}
		slots = append(slots, createBooking.Slot{
			Date:      s.Date,
			StartTime: start,
			EndTime:   end,
		})
	}

	return &createBooking.Request{
		UserID:  userID,
		AgentID: r.AgentID,
		VenueID: r.VenueID,
		Slots:   slots,
		Notes:   r.Notes,
	}, nil
}
