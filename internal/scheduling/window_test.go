package scheduling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SVM-BookingService/internal/domain"
)

func testSchedule() *domain.WeeklySchedule {
	schedule := domain.DefaultSchedule(1)
	schedule.DefaultWindow = domain.DayWindow{OpenTime: "09:00", CloseTime: "18:00"}
	return schedule
}

func TestResolveWindow_DefaultWindow(t *testing.T) {
	window, open := ResolveWindow(testSchedule(), "2025-08-06") // среда
	require.True(t, open)
	assert.Equal(t, Window{Open: "09:00", Close: "18:00"}, window)
}

func TestResolveWindow_WeekdayOverride(t *testing.T) {
	schedule := testSchedule()
	schedule.WeekdayOverrides[time.Saturday] = domain.DayWindow{OpenTime: "10:00", CloseTime: "15:00"}

	window, open := ResolveWindow(schedule, "2025-08-09") // суббота
	require.True(t, open)
	assert.Equal(t, Window{Open: "10:00", Close: "15:00"}, window)

	// Остальные дни используют окно по умолчанию
	window, open = ResolveWindow(schedule, "2025-08-08")
	require.True(t, open)
	assert.Equal(t, Window{Open: "09:00", Close: "18:00"}, window)
}

func TestResolveWindow_PartialOverrideFallsBack(t *testing.T) {
	schedule := testSchedule()
	schedule.WeekdayOverrides[time.Monday] = domain.DayWindow{OpenTime: "10:00"}

	window, open := ResolveWindow(schedule, "2025-08-04") // понедельник
	require.True(t, open)
	assert.Equal(t, Window{Open: "09:00", Close: "18:00"}, window)
}

func TestResolveWindow_BlockedWeekday(t *testing.T) {
	schedule := testSchedule()
	schedule.BlockedWeekdays[time.Sunday] = true

	_, open := ResolveWindow(schedule, "2025-08-10") // воскресенье
	assert.False(t, open)
}

func TestResolveWindow_BlockedDateBeatsOverride(t *testing.T) {
	schedule := testSchedule()
	schedule.WeekdayOverrides[time.Friday] = domain.DayWindow{OpenTime: "08:00", CloseTime: "20:00"}
	schedule.BlockedDates["2025-08-08"] = true

	_, open := ResolveWindow(schedule, "2025-08-08") // пятница, заблокирована точечно
	assert.False(t, open)

	_, open = ResolveWindow(schedule, "2025-08-15") // следующая пятница открыта
	assert.True(t, open)
}

func TestResolveWindow_MalformedWindowIsClosed(t *testing.T) {
	schedule := testSchedule()
	schedule.WeekdayOverrides[time.Tuesday] = domain.DayWindow{OpenTime: "18:00", CloseTime: "09:00"}

	_, open := ResolveWindow(schedule, "2025-08-05")
	assert.False(t, open)

	schedule = testSchedule()
	schedule.DefaultWindow = domain.DayWindow{OpenTime: "12:00", CloseTime: "12:00"}
	_, open = ResolveWindow(schedule, "2025-08-05")
	assert.False(t, open)
}

func TestResolveWindow_WeekdayFromPlainCalendarDate(t *testing.T) {
	// 2025-08-03 - воскресенье как календарная дата; повторная интерпретация
	// через таймзону сервера не должна сдвигать день недели
	schedule := testSchedule()
	schedule.BlockedWeekdays[time.Sunday] = true

	_, open := ResolveWindow(schedule, "2025-08-03")
	assert.False(t, open)

	_, open = ResolveWindow(schedule, "2025-08-04")
	assert.True(t, open)
}

func TestResolveWindow_InvalidInput(t *testing.T) {
	_, open := ResolveWindow(nil, "2025-08-04")
	assert.False(t, open)

	_, open = ResolveWindow(testSchedule(), "04.08.2025")
	assert.False(t, open)
}
