package get_booking_priority

// Request модель запроса приоритета заявки
type Request struct {
	UserID    int64  // ID пользователя, запрашивающего приоритет
	RequestID string // uniqueRequestId заявки
}

// Response модель ответа с рекомендательным сигналом приоритета
//
// Сигнал информационный: он сообщает, лидирует ли заявка по суммарным часам
// хотя бы на одной из своих дат среди конкурирующих заявок, но не влияет
// на порядок подтверждения менеджером
type Response struct {
	RequestID       string  `json:"requestId"`
	VenueID         int64   `json:"venueId"`
	CurrentHours    float64 `json:"currentHours"`
	HasCompetitors  bool    `json:"hasCompetitors"`
	CompetitorCount int     `json:"competitorCount"`
	IsHighestHours  bool    `json:"isHighestHours"`
}
