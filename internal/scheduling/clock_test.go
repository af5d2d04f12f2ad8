package scheduling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time {
	return c.now
}

func TestBusinessLocation_FixedOffset(t *testing.T) {
	// Ташкент - постоянный UTC+5 без перехода на летнее время
	winter := time.Date(2025, 1, 15, 12, 0, 0, 0, time.UTC).In(BusinessLocation())
	summer := time.Date(2025, 7, 15, 12, 0, 0, 0, time.UTC).In(BusinessLocation())

	_, winterOffset := winter.Zone()
	_, summerOffset := summer.Zone()
	assert.Equal(t, 5*60*60, winterOffset)
	assert.Equal(t, 5*60*60, summerOffset)
}

func TestToday_SameMomentSameDate(t *testing.T) {
	// Один физический момент дает одну и ту же дату независимо от того,
	// в какой таймзоне его выражает хост
	moment := time.Date(2025, 7, 31, 20, 30, 0, 0, time.UTC)
	newYork, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skip("tzdata недоступна")
	}

	assert.Equal(t, "2025-08-01", Today(fixedClock{now: moment}))
	assert.Equal(t, "2025-08-01", Today(fixedClock{now: moment.In(newYork)}))
	assert.Equal(t, "2025-08-01", Today(fixedClock{now: moment.In(BusinessLocation())}))
}

func TestTashkentClock_Now(t *testing.T) {
	now := TashkentClock{}.Now()
	_, offset := now.Zone()
	assert.Equal(t, 5*60*60, offset)
}
