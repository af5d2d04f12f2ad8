package create_booking

import (
	"time"

	"github.com/m04kA/SVM-BookingService/pkg/types"
)

// Slot один запрашиваемый интервал заявки
type Slot struct {
	Date      string           // Дата YYYY-MM-DD
	StartTime types.TimeString // Время начала ("10:00")
	EndTime   types.TimeString // Время конца ("12:00")
}

// Request модель запроса на создание заявки на бронирование
// Заявка может содержать несколько интервалов на разные даты, все они
// создаются атомарно и получают общий uniqueRequestId
type Request struct {
	UserID  int64   // ID клиента
	AgentID *int64  // ID агента, оформляющего заявку (опционально)
	VenueID int64   // ID площадки
	Slots   []Slot  // Запрашиваемые интервалы (1..MaxSlotsPerRequest)
	Notes   *string // Дополнительные заметки (опционально)
}

// CreatedSlot один созданный слот заявки
type CreatedSlot struct {
	ID        int64            `json:"id"`
	Date      string           `json:"date"`
	StartTime types.TimeString `json:"startTime"`
	EndTime   types.TimeString `json:"endTime"`
	Status    string           `json:"status"`
}

// Response модель ответа с созданной заявкой
type Response struct {
	UniqueRequestID string        `json:"uniqueRequestId"`
	VenueID         int64         `json:"venueId"`
	ClientID        int64         `json:"clientId"`
	AgentID         *int64        `json:"agentId,omitempty"`
	VenueName       string        `json:"venueName"`
	PricePerHour    float64       `json:"pricePerHour"`
	Slots           []CreatedSlot `json:"slots"`
	Notes           *string       `json:"notes,omitempty"`
	CreatedAt       time.Time     `json:"createdAt"`
}
