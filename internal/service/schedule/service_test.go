package schedule

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SVM-BookingService/internal/domain"
	scheduleRepo "github.com/m04kA/SVM-BookingService/internal/infra/storage/schedule"
	"github.com/m04kA/SVM-BookingService/internal/integrations/placeservice"
	"github.com/m04kA/SVM-BookingService/internal/service/schedule/models"
)

type fakeScheduleRepo struct {
	schedule *domain.WeeklySchedule
	getErr   error
	upserted *domain.WeeklySchedule
}

func (f *fakeScheduleRepo) GetByVenueID(_ context.Context, _ int64) (*domain.WeeklySchedule, error) {
	return f.schedule, f.getErr
}

func (f *fakeScheduleRepo) Upsert(_ context.Context, schedule *domain.WeeklySchedule) (*domain.WeeklySchedule, error) {
	f.upserted = schedule
	return schedule, nil
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

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

func managedVenue(managerID int64) *placeservice.Venue {
	return &placeservice.Venue{ID: 1, HostID: managerID, Name: "Loft", IsActive: true}
}

func validUpdateRequest() *models.UpdateScheduleRequest {
	return &models.UpdateScheduleRequest{
		UserID:           10,
		VenueID:          1,
		DefaultOpenTime:  "09:00",
		DefaultCloseTime: "18:00",
		WeekdayOverrides: []models.WeekdayOverride{
			{Weekday: 6, OpenTime: "10:00", CloseTime: "16:00"},
		},
		BlockedWeekdays: []int{0},
		BlockedDates:    []string{"2025-12-31"},
		MinBookingHours: 1.0,
		CooldownMinutes: 30,
	}
}

func TestGetByVenue_MissingScheduleReturnsDefaults(t *testing.T) {
	repo := &fakeScheduleRepo{getErr: scheduleRepo.ErrScheduleNotFound}
	svc := NewService(repo, &fakePlaceClient{}, fakeTxManager{}, noopLogger{})

	resp, err := svc.GetByVenue(context.Background(), 1)

	require.NoError(t, err)
	assert.Equal(t, domain.DefaultOpenTime.String(), resp.DefaultOpenTime)
	assert.Equal(t, domain.DefaultCloseTime.String(), resp.DefaultCloseTime)
	assert.Equal(t, domain.DefaultMinBookingHours, resp.MinBookingHours)
	assert.Equal(t, domain.DefaultCooldownMinutes, resp.CooldownMinutes)
}

func TestUpdate_Success(t *testing.T) {
	repo := &fakeScheduleRepo{}
	svc := NewService(repo, &fakePlaceClient{venue: managedVenue(10)}, fakeTxManager{}, noopLogger{})

	resp, err := svc.Update(context.Background(), validUpdateRequest())

	require.NoError(t, err)
	require.NotNil(t, repo.upserted)
	assert.Equal(t, int64(1), resp.VenueID)
	assert.Equal(t, []int{0}, resp.BlockedWeekdays)
	assert.Equal(t, []string{"2025-12-31"}, resp.BlockedDates)
}

func TestUpdate_NotManager(t *testing.T) {
	svc := NewService(&fakeScheduleRepo{}, &fakePlaceClient{venue: managedVenue(99)}, fakeTxManager{}, noopLogger{})

	_, err := svc.Update(context.Background(), validUpdateRequest())

	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestUpdate_VenueNotFound(t *testing.T) {
	svc := NewService(&fakeScheduleRepo{}, &fakePlaceClient{err: placeservice.ErrVenueNotFound}, fakeTxManager{}, noopLogger{})

	_, err := svc.Update(context.Background(), validUpdateRequest())

	assert.ErrorIs(t, err, ErrVenueNotFound)
}

func TestUpdate_AllWeekdaysBlocked(t *testing.T) {
	req := validUpdateRequest()
	req.BlockedWeekdays = []int{0, 1, 2, 3, 4, 5, 6}

	svc := NewService(&fakeScheduleRepo{}, &fakePlaceClient{venue: managedVenue(10)}, fakeTxManager{}, noopLogger{})

	_, err := svc.Update(context.Background(), req)

	assert.ErrorIs(t, err, ErrZeroCapacity)
}

func TestUpdate_ValidationFailures(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(req *models.UpdateScheduleRequest)
	}{
		{
			name: "inverted default window",
			mutate: func(req *models.UpdateScheduleRequest) {
				req.DefaultOpenTime = "18:00"
				req.DefaultCloseTime = "09:00"
			},
		},
		{
			name: "malformed open time",
			mutate: func(req *models.UpdateScheduleRequest) {
				req.DefaultOpenTime = "9am"
			},
		},
		{
			name: "override weekday out of range",
			mutate: func(req *models.UpdateScheduleRequest) {
				req.WeekdayOverrides = []models.WeekdayOverride{
					{Weekday: 7, OpenTime: "10:00", CloseTime: "16:00"},
				}
			},
		},
		{
			name: "duplicate override weekday",
			mutate: func(req *models.UpdateScheduleRequest) {
				req.WeekdayOverrides = []models.WeekdayOverride{
					{Weekday: 6, OpenTime: "10:00", CloseTime: "16:00"},
					{Weekday: 6, OpenTime: "11:00", CloseTime: "15:00"},
				}
			},
		},
		{
			name: "malformed blocked date",
			mutate: func(req *models.UpdateScheduleRequest) {
				req.BlockedDates = []string{"31-12-2025"}
			},
		},
		{
			name: "min booking hours too small",
			mutate: func(req *models.UpdateScheduleRequest) {
				req.MinBookingHours = 0.25
			},
		},
		{
			name: "cooldown above limit",
			mutate: func(req *models.UpdateScheduleRequest) {
				req.CooldownMinutes = domain.MaxCooldownMinutes + 1
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validUpdateRequest()
			tt.mutate(req)

			svc := NewService(&fakeScheduleRepo{}, &fakePlaceClient{venue: managedVenue(10)}, fakeTxManager{}, noopLogger{})

			_, err := svc.Update(context.Background(), req)

			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}
