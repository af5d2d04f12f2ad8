package placeservice

// Venue модель площадки из PlaceService
type Venue struct {
	ID           int64   `json:"id"`
	HostID       int64   `json:"host_id"`
	Name         string  `json:"name"`
	City         string  `json:"city"`
	Address      string  `json:"address"`
	PricePerHour float64 `json:"price_per_hour"`
	ManagerIDs   []int64 `json:"manager_ids"`
	IsActive     bool    `json:"is_active"`
}

// IsManager проверяет, что пользователь управляет площадкой
// (владелец или назначенный менеджер)
func (v *Venue) IsManager(userID int64) bool {
	if v.HostID == userID {
		return true
	}
	for _, id := range v.ManagerIDs {
		if id == userID {
			return true
		}
	}
	return false
}

// ErrorResponse модель ошибки от PlaceService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
