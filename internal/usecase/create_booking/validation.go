package create_booking

import (
	"fmt"
	"time"

	"github.com/m04kA/SVM-BookingService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}
	if req.AgentID != nil && *req.AgentID <= 0 {
		return fmt.Errorf("%w: agentID must be positive", ErrInvalidInput)
	}
	if req.VenueID <= 0 {
		return fmt.Errorf("%w: venueID must be positive", ErrInvalidInput)
	}

	if len(req.Slots) == 0 {
		return fmt.Errorf("%w: at least one slot is required", ErrInvalidInput)
	}
	if len(req.Slots) > domain.MaxSlotsPerRequest {
		return fmt.Errorf("%w: at most %d slots per request", ErrInvalidInput, domain.MaxSlotsPerRequest)
	}

	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes must not exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	for i, slot := range req.Slots {
		if _, err := time.Parse(domain.DateFormat, slot.Date); err != nil {
			return fmt.Errorf("%w: slot %d: date must be YYYY-MM-DD", ErrInvalidDate, i)
		}
		if err := slot.StartTime.Validate(); err != nil {
			return fmt.Errorf("%w: slot %d: invalid start time %q", ErrInvalidInput, i, slot.StartTime)
		}
		if err := slot.EndTime.Validate(); err != nil {
			return fmt.Errorf("%w: slot %d: invalid end time %q", ErrInvalidInput, i, slot.EndTime)
		}
		if !slot.StartTime.IsBefore(slot.EndTime) {
			return fmt.Errorf("%w: slot %d: start time must be before end time", ErrInvalidInput, i)
		}
	}

	// Интервалы одной заявки не должны пересекаться между собой
	if err := validateNoInternalOverlap(req.Slots); err != nil {
		return err
	}

	return nil
}

// validateNoInternalOverlap проверяет, что слоты заявки на одну дату не
// пересекаются друг с другом
func validateNoInternalOverlap(slots []Slot) error {
	for i := 0; i < len(slots); i++ {
		for j := i + 1; j < len(slots); j++ {
			if slots[i].Date != slots[j].Date {
				continue
			}
			// Полуинтервалы [start, end) пересекаются, если каждый
			// начинается до конца другого
			if slots[i].StartTime.IsBefore(slots[j].EndTime) && slots[j].StartTime.IsBefore(slots[i].EndTime) {
				return fmt.Errorf("%w: slots %d and %d overlap on %s", ErrInvalidInput, i, j, slots[i].Date)
			}
		}
	}
	return nil
}
