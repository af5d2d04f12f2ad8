package scheduling

import (
	"time"

	"github.com/m04kA/SVM-BookingService/internal/domain"
	"github.com/m04kA/SVM-BookingService/pkg/types"
)

// PastCutoffHour возвращает час, до которого время дня считается прошедшим
// Текущий час считается прошедшим целиком, как только началась любая его
// минута: брони внутри текущего часа не предлагаются, чтобы к моменту
// отправки формы время начала не оказалось в прошлом
func PastCutoffHour(now time.Time) int {
	now = now.In(businessLocation)
	cutoff := now.Hour()
	if now.Minute() > 0 {
		cutoff++
	}
	return cutoff
}

// AnnotatePast выставляет флаги IsPast / IsPartiallyPast для диапазонов
// сегодняшней даты (в бизнес-таймзоне). Диапазоны других дат возвращаются
// без изменений. Список не фильтруется - для букинг-потока см. FilterPast
func AnnotatePast(ranges []domain.TimeRange, date string, now time.Time) []domain.TimeRange {
	now = now.In(businessLocation)
	if date != now.Format(domain.DateFormat) {
		return ranges
	}

	cutoff := float64(PastCutoffHour(now))

	annotated := make([]domain.TimeRange, len(ranges))
	for i, r := range ranges {
		r.IsPast = r.EndHour <= cutoff
		r.IsPartiallyPast = r.StartHour < cutoff && cutoff < r.EndHour
		annotated[i] = r
	}
	return annotated
}

// FilterPast убирает целиком прошедшие диапазоны
// Используется для букинг-потока; календарь хостов/агентов показывает
// полную картину дня и работает с неотфильтрованным списком
func FilterPast(ranges []domain.TimeRange) []domain.TimeRange {
	filtered := make([]domain.TimeRange, 0, len(ranges))
	for _, r := range ranges {
		if r.IsPast {
			continue
		}
		filtered = append(filtered, r)
	}
	return filtered
}

// IsStartElapsed проверяет, что время начала на дату уже прошло
// Для не-сегодняшних дат всегда false (прошедшие даты отсекаются отдельно)
func IsStartElapsed(date string, start types.TimeString, now time.Time) bool {
	now = now.In(businessLocation)
	if date != now.Format(domain.DateFormat) {
		return false
	}
	startMin, err := start.Minutes()
	if err != nil {
		return false
	}
	return startMin < PastCutoffHour(now)*60
}
