package scheduling

import (
	"time"

	"github.com/m04kA/SVM-BookingService/internal/domain"
	"github.com/m04kA/SVM-BookingService/pkg/types"
)

// Window эффективное рабочее окно площадки на конкретную дату
type Window struct {
	Open  types.TimeString
	Close types.TimeString
}

// Bounds возвращает границы окна в минутах с начала суток
func (w Window) Bounds() (openMinutes, closeMinutes int, err error) {
	openMinutes, err = w.Open.Minutes()
	if err != nil {
		return 0, 0, err
	}
	closeMinutes, err = w.Close.Minutes()
	if err != nil {
		return 0, 0, err
	}
	return openMinutes, closeMinutes, nil
}

// ResolveWindow вычисляет эффективное рабочее окно площадки на дату
// Возвращает (Window{}, false), если площадка закрыта в этот день
//
// Порядок применения правил:
//  1. дата в списке заблокированных дат - закрыто
//  2. день недели заблокирован - закрыто
//  3. переопределение на день недели (если заданы обе границы), иначе окно по умолчанию
//  4. некорректное окно (open >= close, нечитаемое время) - закрыто
//
// День недели берется из календарной даты как таковой, без конвертации через
// UTC: строка даты - это "плоская" календарная дата, и повторная интерпретация
// в другой таймзоне сдвинула бы день недели
func ResolveWindow(schedule *domain.WeeklySchedule, date string) (Window, bool) {
	if schedule == nil {
		return Window{}, false
	}

	parsed, err := time.Parse(domain.DateFormat, date)
	if err != nil {
		return Window{}, false
	}

	if schedule.IsBlockedDate(date) {
		return Window{}, false
	}

	weekday := parsed.Weekday()
	if schedule.IsBlockedWeekday(weekday) {
		return Window{}, false
	}

	window := schedule.DefaultWindow
	if override, ok := schedule.WeekdayOverrides[weekday]; ok {
		if !override.OpenTime.IsZero() && !override.CloseTime.IsZero() {
			window = override
		}
	}

	openMinutes, err := window.OpenTime.Minutes()
	if err != nil {
		return Window{}, false
	}
	closeMinutes, err := window.CloseTime.Minutes()
	if err != nil {
		return Window{}, false
	}

	// Защита от некорректной конфигурации: закрытый день - безопасный дефолт
	if openMinutes >= closeMinutes {
		return Window{}, false
	}

	return Window{Open: window.OpenTime, Close: window.CloseTime}, true
}
