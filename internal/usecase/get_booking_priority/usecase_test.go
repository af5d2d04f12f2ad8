package get_booking_priority

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SVM-BookingService/internal/domain"
	bookingRepo "github.com/m04kA/SVM-BookingService/internal/infra/storage/booking"
	"github.com/m04kA/SVM-BookingService/internal/integrations/placeservice"
	"github.com/m04kA/SVM-BookingService/pkg/types"
)

const (
	candidateRequestID = "3f1d3c73-9b5a-4a86-9d52-6a7cf9c2a001"
)

type fakeBookingRepo struct {
	slots       []*domain.Booking
	slotsErr    error
	competitors []*domain.Booking
}

func (f *fakeBookingRepo) GetByRequestID(_ context.Context, _ string) ([]*domain.Booking, error) {
	return f.slots, f.slotsErr
}

func (f *fakeBookingRepo) GetCompetingSlots(_ context.Context, _ int64, _ []time.Time, _ string) ([]*domain.Booking, error) {
	return f.competitors, nil
}

type fakePlaceClient struct {
	venue *placeservice.Venue
	err   error
}

func (f *fakePlaceClient) GetVenue(_ context.Context, _ int64) (*placeservice.Venue, error) {
	return f.venue, f.err
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

func makeSlot(requestID, date string, start, end types.TimeString, clientID int64, status domain.BookingStatus) *domain.Booking {
	day, _ := time.Parse(domain.DateFormat, date)
	return &domain.Booking{
		UniqueRequestID: requestID,
		VenueID:         1,
		ClientID:        clientID,
		BookingDate:     day,
		StartTime:       start,
		EndTime:         end,
		Status:          status,
	}
}

func TestExecute_DominatedThenLeading(t *testing.T) {
	// Кандидат 3 часа; конкурент A 2 часа, конкурент B 4 часа на ту же дату
	repo := &fakeBookingRepo{
		slots: []*domain.Booking{
			makeSlot(candidateRequestID, "2025-08-01", "10:00", "13:00", 42, domain.StatusPending),
		},
		competitors: []*domain.Booking{
			makeSlot("req-a", "2025-08-01", "14:00", "16:00", 50, domain.StatusPending),
			makeSlot("req-b", "2025-08-01", "16:00", "20:00", 51, domain.StatusPending),
		},
	}
	uc := NewUseCase(repo, &fakePlaceClient{}, noopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{UserID: 42, RequestID: candidateRequestID})

	require.NoError(t, err)
	assert.Equal(t, 3.0, resp.CurrentHours)
	assert.True(t, resp.HasCompetitors)
	assert.Equal(t, 2, resp.CompetitorCount)
	assert.False(t, resp.IsHighestHours) // B с 4 часами доминирует

	// Без B кандидат лидирует
	repo.competitors = repo.competitors[:1]
	resp, err = uc.Execute(context.Background(), &Request{UserID: 42, RequestID: candidateRequestID})
	require.NoError(t, err)
	assert.True(t, resp.IsHighestHours)
}

func TestExecute_NoCompetitors(t *testing.T) {
	repo := &fakeBookingRepo{
		slots: []*domain.Booking{
			makeSlot(candidateRequestID, "2025-08-01", "10:00", "12:00", 42, domain.StatusPending),
		},
	}
	uc := NewUseCase(repo, &fakePlaceClient{}, noopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{UserID: 42, RequestID: candidateRequestID})

	require.NoError(t, err)
	assert.False(t, resp.HasCompetitors)
	assert.Equal(t, 0, resp.CompetitorCount)
	assert.False(t, resp.IsHighestHours)
	assert.Equal(t, 2.0, resp.CurrentHours)
}

func TestExecute_CancelledSlotsDoNotCount(t *testing.T) {
	repo := &fakeBookingRepo{
		slots: []*domain.Booking{
			makeSlot(candidateRequestID, "2025-08-01", "10:00", "12:00", 42, domain.StatusCancelledByClient),
		},
	}
	uc := NewUseCase(repo, &fakePlaceClient{}, noopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{UserID: 42, RequestID: candidateRequestID})

	require.NoError(t, err)
	assert.Equal(t, 0.0, resp.CurrentHours)
	assert.False(t, resp.HasCompetitors)
}

func TestExecute_AccessControl(t *testing.T) {
	slots := []*domain.Booking{
		makeSlot(candidateRequestID, "2025-08-01", "10:00", "12:00", 42, domain.StatusPending),
	}

	// Чужой пользователь, площадкой не управляет
	uc := NewUseCase(&fakeBookingRepo{slots: slots},
		&fakePlaceClient{venue: &placeservice.Venue{ID: 1, HostID: 100}}, noopLogger{})
	_, err := uc.Execute(context.Background(), &Request{UserID: 77, RequestID: candidateRequestID})
	assert.ErrorIs(t, err, ErrAccessDenied)

	// Менеджер площадки видит приоритет
	uc = NewUseCase(&fakeBookingRepo{slots: slots},
		&fakePlaceClient{venue: &placeservice.Venue{ID: 1, HostID: 100, ManagerIDs: []int64{77}}}, noopLogger{})
	_, err = uc.Execute(context.Background(), &Request{UserID: 77, RequestID: candidateRequestID})
	assert.NoError(t, err)
}

func TestExecute_RequestNotFound(t *testing.T) {
	uc := NewUseCase(&fakeBookingRepo{slotsErr: bookingRepo.ErrRequestNotFound}, &fakePlaceClient{}, noopLogger{})

	_, err := uc.Execute(context.Background(), &Request{UserID: 42, RequestID: candidateRequestID})

	assert.ErrorIs(t, err, ErrRequestNotFound)
}

func TestExecute_MalformedRequestID(t *testing.T) {
	uc := NewUseCase(&fakeBookingRepo{}, &fakePlaceClient{}, noopLogger{})

	_, err := uc.Execute(context.Background(), &Request{UserID: 42, RequestID: "not-a-uuid"})

	assert.ErrorIs(t, err, ErrInvalidInput)
}
