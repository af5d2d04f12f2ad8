package scheduling

import (
	"github.com/m04kA/SVM-BookingService/internal/domain"
)

// RankPriority вычисляет рекомендательный сигнал приоритета заявки
//
// candidate - слоты одной заявки (строки с общим UniqueRequestID),
// competitors - слоты других активных заявок той же площадки.
// Конкурентом считается заявка, пересекающаяся с кандидатом хотя бы по одной
// дате. IsHighestHours = true, если хотя бы на одной общей дате часы
// кандидата строго превышают часы каждой конкурирующей заявки на этой дате.
//
// Сигнал чисто информационный ("эта заявка лидирует по объему") и никак не
// влияет на порядок подтверждения
func RankPriority(candidate []*domain.Booking, competitors []*domain.Booking) domain.PriorityResult {
	result := domain.PriorityResult{}

	candidateHoursByDate := make(map[string]float64)
	for _, slot := range candidate {
		hours := slot.DurationHours()
		if hours <= 0 {
			continue
		}
		date := slot.BookingDate.Format(domain.DateFormat)
		candidateHoursByDate[date] += hours
		result.CurrentHours += hours
	}

	if len(candidateHoursByDate) == 0 {
		return result
	}

	// Группируем слоты конкурентов по заявке и дате
	competitorHours := make(map[string]map[string]float64) // requestID -> date -> hours
	for _, slot := range competitors {
		hours := slot.DurationHours()
		if hours <= 0 {
			continue
		}
		date := slot.BookingDate.Format(domain.DateFormat)
		if _, shared := candidateHoursByDate[date]; !shared {
			continue
		}
		if competitorHours[slot.UniqueRequestID] == nil {
			competitorHours[slot.UniqueRequestID] = make(map[string]float64)
		}
		competitorHours[slot.UniqueRequestID][date] += hours
	}

	result.CompetitorCount = len(competitorHours)
	result.HasCompetitors = result.CompetitorCount > 0
	if !result.HasCompetitors {
		return result
	}

	// Максимум часов одной конкурирующей заявки на каждую общую дату
	maxByDate := make(map[string]float64)
	for _, byDate := range competitorHours {
		for date, hours := range byDate {
			if hours > maxByDate[date] {
				maxByDate[date] = hours
			}
		}
	}

	for date, maxHours := range maxByDate {
		if candidateHoursByDate[date] > maxHours {
			result.IsHighestHours = true
			break
		}
	}

	return result
}
