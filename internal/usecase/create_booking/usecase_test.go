package create_booking

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SVM-BookingService/internal/domain"
	scheduleRepo "github.com/m04kA/SVM-BookingService/internal/infra/storage/schedule"
	"github.com/m04kA/SVM-BookingService/internal/integrations/placeservice"
	"github.com/m04kA/SVM-BookingService/internal/scheduling"
	"github.com/m04kA/SVM-BookingService/pkg/ptr"
)

type fakeBookingRepo struct {
	existing []*domain.Booking
	created  []*domain.Booking
}

func (f *fakeBookingRepo) GetByVenueWithFilter(_ context.Context, _ domain.VenueBookingsFilter) ([]*domain.Booking, error) {
	return f.existing, nil
}

func (f *fakeBookingRepo) CreateRequest(_ context.Context, slots []*domain.Booking) ([]*domain.Booking, error) {
	for i, slot := range slots {
		slot.ID = int64(i + 1)
		slot.CreatedAt = time.Now()
		slot.UpdatedAt = slot.CreatedAt
	}
	f.created = slots
	return slots, nil
}

type fakeScheduleRepo struct {
	schedule *domain.WeeklySchedule
	err      error
}

func (f *fakeScheduleRepo) GetByVenueID(_ context.Context, _ int64) (*domain.WeeklySchedule, error) {
	return f.schedule, f.err
}

type fakePlaceClient struct {
	venue *placeservice.Venue
	err   error
}

func (f *fakePlaceClient) GetVenue(_ context.Context, _ int64) (*placeservice.Venue, error) {
	return f.venue, f.err
}

type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeTimeProvider struct {
	now time.Time
}

func (f *fakeTimeProvider) Now() time.Time {
	return f.now
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

func testVenue() *placeservice.Venue {
	return &placeservice.Venue{
		ID:           1,
		HostID:       100,
		Name:         "Loft Navoi",
		PricePerHour: 250000,
		IsActive:     true,
	}
}

func testSchedule() *domain.WeeklySchedule {
	schedule := domain.DefaultSchedule(1)
	schedule.DefaultWindow = domain.DayWindow{OpenTime: "09:00", CloseTime: "18:00"}
	schedule.MinBookingHours = 1
	schedule.CooldownMinutes = 30
	return schedule
}

func newTestUseCase(bookings *fakeBookingRepo, schedules *fakeScheduleRepo, place *fakePlaceClient, now time.Time) *UseCase {
	uc := NewUseCase(bookings, schedules, place, fakeTxManager{}, noopLogger{})
	uc.timeProvider = &fakeTimeProvider{now: now}
	return uc
}

func pastNow() time.Time {
	return time.Date(2025, 7, 1, 10, 0, 0, 0, scheduling.BusinessLocation())
}

func TestExecute_CreatesMultiSlotRequest(t *testing.T) {
	bookings := &fakeBookingRepo{}
	uc := newTestUseCase(bookings, &fakeScheduleRepo{schedule: testSchedule()}, &fakePlaceClient{venue: testVenue()}, pastNow())

	resp, err := uc.Execute(context.Background(), &Request{
		UserID:  42,
		VenueID: 1,
		Slots: []Slot{
			{Date: "2025-08-01", StartTime: "10:00", EndTime: "12:00"},
			{Date: "2025-08-02", StartTime: "14:00", EndTime: "17:00"},
		},
		Notes: ptr.Ptr("свадьба"),
	})

	require.NoError(t, err)
	require.Len(t, resp.Slots, 2)

	// Все слоты заявки получают общий корректный uuid и статус pending
	_, parseErr := uuid.Parse(resp.UniqueRequestID)
	assert.NoError(t, parseErr)
	for _, b := range bookings.created {
		assert.Equal(t, resp.UniqueRequestID, b.UniqueRequestID)
		assert.Equal(t, domain.StatusPending, b.Status)
		assert.Equal(t, "Loft Navoi", b.VenueName)
		assert.Equal(t, 250000.0, b.PricePerHour)
	}
	assert.Equal(t, "2025-08-01", resp.Slots[0].Date)
	assert.Equal(t, "pending", resp.Slots[0].Status)
}

func TestExecute_RejectsOverlapWithExistingBooking(t *testing.T) {
	bookings := &fakeBookingRepo{existing: []*domain.Booking{
		{ID: 9, UniqueRequestID: "other", VenueID: 1, StartTime: "11:00", EndTime: "13:00", Status: domain.StatusConfirmed},
	}}
	uc := newTestUseCase(bookings, &fakeScheduleRepo{schedule: testSchedule()}, &fakePlaceClient{venue: testVenue()}, pastNow())

	_, err := uc.Execute(context.Background(), &Request{
		UserID:  42,
		VenueID: 1,
		Slots:   []Slot{{Date: "2025-08-01", StartTime: "12:00", EndTime: "14:00"}},
	})

	assert.ErrorIs(t, err, ErrSlotNotAvailable)
	assert.Nil(t, bookings.created)
}

func TestExecute_RejectsCooldownViolation(t *testing.T) {
	// Существующая бронь заканчивается в 12:00, кулдаун 30 минут -
	// старт в 12:00 недопустим, в 12:30 проходит
	bookings := &fakeBookingRepo{existing: []*domain.Booking{
		{ID: 9, UniqueRequestID: "other", VenueID: 1, StartTime: "10:00", EndTime: "12:00", Status: domain.StatusConfirmed},
	}}
	uc := newTestUseCase(bookings, &fakeScheduleRepo{schedule: testSchedule()}, &fakePlaceClient{venue: testVenue()}, pastNow())

	_, err := uc.Execute(context.Background(), &Request{
		UserID:  42,
		VenueID: 1,
		Slots:   []Slot{{Date: "2025-08-01", StartTime: "12:00", EndTime: "13:00"}},
	})
	assert.ErrorIs(t, err, ErrSlotNotAvailable)

	resp, err := uc.Execute(context.Background(), &Request{
		UserID:  42,
		VenueID: 1,
		Slots:   []Slot{{Date: "2025-08-01", StartTime: "12:30", EndTime: "13:30"}},
	})
	require.NoError(t, err)
	assert.Len(t, resp.Slots, 1)
}

func TestExecute_RejectsCooldownViolationBetweenOwnSlots(t *testing.T) {
	// Кулдаун действует и между слотами одной заявки: при кулдауне 30 минут
	// слоты 10:00-11:00 и 11:00-12:00 на одну дату несовместимы
	bookings := &fakeBookingRepo{}
	uc := newTestUseCase(bookings, &fakeScheduleRepo{schedule: testSchedule()}, &fakePlaceClient{venue: testVenue()}, pastNow())

	_, err := uc.Execute(context.Background(), &Request{
		UserID:  42,
		VenueID: 1,
		Slots: []Slot{
			{Date: "2025-08-01", StartTime: "10:00", EndTime: "11:00"},
			{Date: "2025-08-01", StartTime: "11:00", EndTime: "12:00"},
		},
	})
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
	assert.Nil(t, bookings.created)

	// С зазором ровно в кулдаун оба слота проходят
	resp, err := uc.Execute(context.Background(), &Request{
		UserID:  42,
		VenueID: 1,
		Slots: []Slot{
			{Date: "2025-08-01", StartTime: "10:00", EndTime: "11:00"},
			{Date: "2025-08-01", StartTime: "11:30", EndTime: "12:30"},
		},
	})
	require.NoError(t, err)
	assert.Len(t, resp.Slots, 2)
}

func TestExecute_RejectsClosedDate(t *testing.T) {
	schedule := testSchedule()
	schedule.BlockedDates["2025-08-01"] = true
	uc := newTestUseCase(&fakeBookingRepo{}, &fakeScheduleRepo{schedule: schedule}, &fakePlaceClient{venue: testVenue()}, pastNow())

	_, err := uc.Execute(context.Background(), &Request{
		UserID:  42,
		VenueID: 1,
		Slots:   []Slot{{Date: "2025-08-01", StartTime: "10:00", EndTime: "12:00"}},
	})

	assert.ErrorIs(t, err, ErrVenueClosed)
}

func TestExecute_RejectsElapsedStartToday(t *testing.T) {
	now := time.Date(2025, 8, 1, 14, 20, 0, 0, scheduling.BusinessLocation()) // cutoff = 15
	uc := newTestUseCase(&fakeBookingRepo{}, &fakeScheduleRepo{schedule: testSchedule()}, &fakePlaceClient{venue: testVenue()}, now)

	_, err := uc.Execute(context.Background(), &Request{
		UserID:  42,
		VenueID: 1,
		Slots:   []Slot{{Date: "2025-08-01", StartTime: "14:00", EndTime: "16:00"}},
	})
	assert.ErrorIs(t, err, ErrTimeElapsed)

	resp, err := uc.Execute(context.Background(), &Request{
		UserID:  42,
		VenueID: 1,
		Slots:   []Slot{{Date: "2025-08-01", StartTime: "15:00", EndTime: "17:00"}},
	})
	require.NoError(t, err)
	assert.Len(t, resp.Slots, 1)
}

func TestExecute_RejectsInactiveVenue(t *testing.T) {
	venue := testVenue()
	venue.IsActive = false
	uc := newTestUseCase(&fakeBookingRepo{}, &fakeScheduleRepo{schedule: testSchedule()}, &fakePlaceClient{venue: venue}, pastNow())

	_, err := uc.Execute(context.Background(), &Request{
		UserID:  42,
		VenueID: 1,
		Slots:   []Slot{{Date: "2025-08-01", StartTime: "10:00", EndTime: "12:00"}},
	})

	assert.ErrorIs(t, err, ErrVenueInactive)
}

func TestExecute_VenueNotFound(t *testing.T) {
	uc := newTestUseCase(&fakeBookingRepo{}, &fakeScheduleRepo{schedule: testSchedule()},
		&fakePlaceClient{err: placeservice.ErrVenueNotFound}, pastNow())

	_, err := uc.Execute(context.Background(), &Request{
		UserID:  42,
		VenueID: 99,
		Slots:   []Slot{{Date: "2025-08-01", StartTime: "10:00", EndTime: "12:00"}},
	})

	assert.ErrorIs(t, err, ErrVenueNotFound)
}

func TestExecute_MissingScheduleUsesDefaults(t *testing.T) {
	bookings := &fakeBookingRepo{}
	uc := newTestUseCase(bookings, &fakeScheduleRepo{err: scheduleRepo.ErrScheduleNotFound},
		&fakePlaceClient{venue: testVenue()}, pastNow())

	// 08:00 до открытия по умолчанию (09:00) - отклоняется
	_, err := uc.Execute(context.Background(), &Request{
		UserID:  42,
		VenueID: 1,
		Slots:   []Slot{{Date: "2025-08-01", StartTime: "08:00", EndTime: "10:00"}},
	})
	assert.ErrorIs(t, err, ErrSlotNotAvailable)

	resp, err := uc.Execute(context.Background(), &Request{
		UserID:  42,
		VenueID: 1,
		Slots:   []Slot{{Date: "2025-08-01", StartTime: "09:00", EndTime: "11:00"}},
	})
	require.NoError(t, err)
	assert.Len(t, resp.Slots, 1)
}

func TestExecute_ValidationFailures(t *testing.T) {
	uc := newTestUseCase(&fakeBookingRepo{}, &fakeScheduleRepo{schedule: testSchedule()}, &fakePlaceClient{venue: testVenue()}, pastNow())

	tests := []struct {
		name string
		req  *Request
		want error
	}{
		{
			name: "no slots",
			req:  &Request{UserID: 42, VenueID: 1},
			want: ErrInvalidInput,
		},
		{
			name: "too many slots",
			req: &Request{UserID: 42, VenueID: 1, Slots: []Slot{
				{Date: "2025-08-01", StartTime: "09:00", EndTime: "10:00"},
				{Date: "2025-08-02", StartTime: "09:00", EndTime: "10:00"},
				{Date: "2025-08-03", StartTime: "09:00", EndTime: "10:00"},
				{Date: "2025-08-04", StartTime: "09:00", EndTime: "10:00"},
				{Date: "2025-08-05", StartTime: "09:00", EndTime: "10:00"},
				{Date: "2025-08-06", StartTime: "09:00", EndTime: "10:00"},
				{Date: "2025-08-07", StartTime: "09:00", EndTime: "10:00"},
				{Date: "2025-08-08", StartTime: "09:00", EndTime: "10:00"},
			}},
			want: ErrInvalidInput,
		},
		{
			name: "inverted interval",
			req: &Request{UserID: 42, VenueID: 1, Slots: []Slot{
				{Date: "2025-08-01", StartTime: "12:00", EndTime: "10:00"},
			}},
			want: ErrInvalidInput,
		},
		{
			name: "bad date format",
			req: &Request{UserID: 42, VenueID: 1, Slots: []Slot{
				{Date: "01.08.2025", StartTime: "10:00", EndTime: "12:00"},
			}},
			want: ErrInvalidDate,
		},
		{
			name: "internal overlap",
			req: &Request{UserID: 42, VenueID: 1, Slots: []Slot{
				{Date: "2025-08-01", StartTime: "10:00", EndTime: "12:00"},
				{Date: "2025-08-01", StartTime: "11:00", EndTime: "13:00"},
			}},
			want: ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}
