// Package scheduling содержит вычислительное ядро доступности площадок:
// разрешение рабочего окна на дату, разбиение дня на типизированные диапазоны,
// проверку валидности времени начала, фильтрацию прошедшего времени и
// ранжирование конкурирующих заявок.
//
// Все функции пакета чистые: никакого I/O и разделяемого состояния.
// Единственный внешний вход - системные часы через интерфейс Clock.
package scheduling

import (
	"time"

	"github.com/m04kA/SVM-BookingService/internal/domain"
)

// Все границы суток и проверки "время прошло" считаются в бизнес-таймзоне
// (Asia/Tashkent, UTC+5, без перехода на летнее время) независимо от
// таймзоны сервера и клиента.
var businessLocation = loadBusinessLocation()

func loadBusinessLocation() *time.Location {
	loc, err := time.LoadLocation("Asia/Tashkent")
	if err != nil {
		// На хостах без tzdata: Ташкент - фиксированный UTC+5
		return time.FixedZone("UTC+5", 5*60*60)
	}
	return loc
}

// BusinessLocation возвращает бизнес-таймзону сервиса
func BusinessLocation() *time.Location {
	return businessLocation
}

// Clock интерфейс для получения текущего времени (для тестирования)
type Clock interface {
	Now() time.Time
}

// TashkentClock реальные часы, нормализованные к бизнес-таймзоне
type TashkentClock struct{}

// Now возвращает текущий момент в бизнес-таймзоне
func (TashkentClock) Now() time.Time {
	return time.Now().In(businessLocation)
}

// Today возвращает текущую календарную дату (YYYY-MM-DD) в бизнес-таймзоне
// Для одного физического момента результат одинаков на любом хосте
func Today(clock Clock) string {
	return clock.Now().In(businessLocation).Format(domain.DateFormat)
}
