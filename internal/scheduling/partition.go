package scheduling

import (
	"math"
	"sort"

	"github.com/m04kA/SVM-BookingService/internal/domain"
	"github.com/m04kA/SVM-BookingService/pkg/types"
)

const minutesPerHour = 60

// slotInterval бронирование, сведенное к минутам с начала суток
type slotInterval struct {
	startMin int
	endMin   int
	booking  *domain.Booking
}

// minutesFromHours конвертирует дробные часы в минуты
// Вся внутренняя арифметика ведется в целых минутах: float-часы вроде 10:20
// (10.333...) непредставимы точно и ломали бы сравнения длительностей
func minutesFromHours(hours float64) int {
	return int(math.Round(hours * minutesPerHour))
}

func hoursFromMinutes(minutes int) float64 {
	return float64(minutes) / minutesPerHour
}

// BookingFitsWindow проверяет, что бронирование корректно сформировано и
// целиком лежит внутри окна. Строки, не прошедшие проверку, Partition
// пропускает - вызывающий слой логирует их как предупреждение
func BookingFitsWindow(window Window, booking *domain.Booking) bool {
	openMin, closeMin, err := window.Bounds()
	if err != nil {
		return false
	}
	iv, ok := toInterval(booking)
	if !ok {
		return false
	}
	return iv.startMin >= openMin && iv.endMin <= closeMin
}

func toInterval(booking *domain.Booking) (slotInterval, bool) {
	startMin, err := booking.StartTime.Minutes()
	if err != nil {
		return slotInterval{}, false
	}
	endMin, err := booking.EndTime.Minutes()
	if err != nil {
		return slotInterval{}, false
	}
	if startMin >= endMin {
		return slotInterval{}, false
	}
	return slotInterval{startMin: startMin, endMin: endMin, booking: booking}, true
}

// validIntervals отбрасывает некорректные и выходящие за окно бронирования
// и сортирует оставшиеся по времени начала
func validIntervals(window Window, bookings []*domain.Booking) []slotInterval {
	openMin, closeMin, err := window.Bounds()
	if err != nil {
		return nil
	}

	intervals := make([]slotInterval, 0, len(bookings))
	for _, booking := range bookings {
		iv, ok := toInterval(booking)
		if !ok {
			continue
		}
		if iv.startMin < openMin || iv.endMin > closeMin {
			continue
		}
		intervals = append(intervals, iv)
	}

	sort.Slice(intervals, func(i, j int) bool {
		return intervals[i].startMin < intervals[j].startMin
	})

	return intervals
}

// Partition разбивает рабочее окно даты на упорядоченную последовательность
// типизированных диапазонов: available / booked / cooldown / not_bookable
//
// Инварианты результата: диапазоны смежны, не пересекаются и полностью
// покрывают [window.Open, window.Close); сортировка по возрастанию начала.
// Свободный промежуток получает статус available, только если в нем может
// легально начаться бронирование минимальной длительности до следующего
// препятствия; иначе not_bookable.
//
// Флаги прошедшего времени НЕ выставляются здесь - см. AnnotatePast
func Partition(window Window, bookings []*domain.Booking, cooldownMinutes int, minBookingHours float64) []domain.TimeRange {
	openMin, closeMin, err := window.Bounds()
	if err != nil || openMin >= closeMin {
		return []domain.TimeRange{}
	}

	minMin := minutesFromHours(minBookingHours)
	intervals := validIntervals(window, bookings)

	ranges := make([]domain.TimeRange, 0, len(intervals)*3+1)
	cursor := openMin

	for i, iv := range intervals {
		// Пересечение с уже размеченной частью дня: данные сверху не
		// валидируются, пропускаем строку вместо поломки разбиения
		if iv.startMin < cursor {
			continue
		}

		if cursor < iv.startMin {
			ranges = append(ranges, gapRange(cursor, iv.startMin, minMin))
		}

		ranges = append(ranges, domain.TimeRange{
			StartHour:       hoursFromMinutes(iv.startMin),
			EndHour:         hoursFromMinutes(iv.endMin),
			Status:          domain.RangeBooked,
			BookingID:       &iv.booking.ID,
			UniqueRequestID: &iv.booking.UniqueRequestID,
		})
		cursor = iv.endMin

		if cooldownMinutes > 0 {
			cooldownEnd := iv.endMin + cooldownMinutes
			if cooldownEnd > closeMin {
				cooldownEnd = closeMin
			}
			// Кулдаун обрезается началом следующего бронирования
			if i+1 < len(intervals) && intervals[i+1].startMin < cooldownEnd {
				cooldownEnd = intervals[i+1].startMin
			}
			if cooldownEnd > cursor {
				ranges = append(ranges, domain.TimeRange{
					StartHour: hoursFromMinutes(cursor),
					EndHour:   hoursFromMinutes(cooldownEnd),
					Status:    domain.RangeCooldown,
				})
				cursor = cooldownEnd
			}
		}
	}

	if cursor < closeMin {
		ranges = append(ranges, gapRange(cursor, closeMin, minMin))
	}

	return ranges
}

// gapRange свободный промежуток: available, если минимальная длительность
// помещается до правой границы, иначе not_bookable
func gapRange(startMin, endMin, minMin int) domain.TimeRange {
	status := domain.RangeAvailable
	if endMin-startMin < minMin {
		status = domain.RangeNotBookable
	}
	return domain.TimeRange{
		StartHour: hoursFromMinutes(startMin),
		EndHour:   hoursFromMinutes(endMin),
		Status:    status,
	}
}

// IsValidStart проверяет, может ли новое бронирование начаться в момент start:
// start внутри окна, минимальная длительность помещается до закрытия, start
// не попадает внутрь существующего бронирования или его кулдауна, и интервал
// [start, start+min) не пересекает существующие бронирования
//
// Кулдаун - полуоткрытый интервал [end, end+cooldown): старт ровно в момент
// окончания кулдауна валиден.
//
// Проверка гарантирует только, что поместится МИНИМАЛЬНАЯ длительность -
// для брони произвольной длины используйте IsValidBookingInterval
func IsValidStart(start types.TimeString, window Window, bookings []*domain.Booking, minBookingHours float64, cooldownMinutes int) bool {
	startMin, err := start.Minutes()
	if err != nil {
		return false
	}
	openMin, closeMin, err := window.Bounds()
	if err != nil {
		return false
	}

	minMin := minutesFromHours(minBookingHours)
	if startMin < openMin || startMin+minMin > closeMin {
		return false
	}

	for _, iv := range validIntervals(window, bookings) {
		// Внутри бронирования или его кулдауна
		if startMin >= iv.startMin && startMin < iv.endMin+cooldownMinutes {
			return false
		}
		// Минимальная длительность упирается в бронирование
		if startMin < iv.endMin && startMin+minMin > iv.startMin {
			return false
		}
	}

	return true
}

// IsValidBookingInterval проверяет допустимость всего запрошенного интервала
// [start, end): длительность не меньше минимальной, интервал внутри окна, и
// между ним и каждым существующим бронированием выдержан кулдаун с
// соответствующей стороны
func IsValidBookingInterval(start, end types.TimeString, window Window, bookings []*domain.Booking, minBookingHours float64, cooldownMinutes int) bool {
	startMin, err := start.Minutes()
	if err != nil {
		return false
	}
	endMin, err := end.Minutes()
	if err != nil {
		return false
	}
	openMin, closeMin, err := window.Bounds()
	if err != nil {
		return false
	}

	if endMin <= startMin {
		return false
	}
	if endMin-startMin < minutesFromHours(minBookingHours) {
		return false
	}
	if startMin < openMin || endMin > closeMin {
		return false
	}

	for _, iv := range validIntervals(window, bookings) {
		existingBefore := iv.endMin+cooldownMinutes <= startMin
		existingAfter := endMin+cooldownMinutes <= iv.startMin
		if !existingBefore && !existingAfter {
			return false
		}
	}

	return true
}
