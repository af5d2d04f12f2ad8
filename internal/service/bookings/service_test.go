package bookings

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SVM-BookingService/internal/domain"
	"github.com/m04kA/SVM-BookingService/internal/integrations/placeservice"
	"github.com/m04kA/SVM-BookingService/internal/service/bookings/models"
	"github.com/m04kA/SVM-BookingService/pkg/types"
)

type fakeBookingRepo struct {
	bookings []*domain.Booking
	getErr   error

	cancelledID     int64
	cancelledStatus domain.BookingStatus
}

func (f *fakeBookingRepo) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	for _, b := range f.bookings {
		if b.ID == id {
			return b, nil
		}
	}
	return nil, errors.New("unexpected booking id")
}

func (f *fakeBookingRepo) GetByRequestID(_ context.Context, _ string) ([]*domain.Booking, error) {
	return f.bookings, f.getErr
}

func (f *fakeBookingRepo) GetByUserID(_ context.Context, _ int64, _ *domain.BookingStatus) ([]*domain.Booking, error) {
	return f.bookings, f.getErr
}

func (f *fakeBookingRepo) GetByVenueWithFilter(_ context.Context, _ domain.VenueBookingsFilter) ([]*domain.Booking, error) {
	return f.bookings, f.getErr
}

func (f *fakeBookingRepo) UpdateStatus(_ context.Context, _ int64, _ domain.BookingStatus) error {
	return nil
}

func (f *fakeBookingRepo) Cancel(_ context.Context, id int64, status domain.BookingStatus, _ string) error {
	f.cancelledID = id
	f.cancelledStatus = status
	return nil
}

type fakePlaceClient struct {
	venue *placeservice.Venue
	err   error
}

func (f *fakePlaceClient) GetVenue(_ context.Context, _ int64) (*placeservice.Venue, error) {
	return f.venue, f.err
}

func (f *fakePlaceClient) GetVenueWithGracefulDegradation(_ context.Context, _ int64) (*placeservice.Venue, error) {
	return f.venue, f.err
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

func mustTime(t *testing.T, s string) types.TimeString {
	t.Helper()
	ts, err := types.NewTimeStringFromString(s)
	require.NoError(t, err)
	return ts
}

func storedBooking(t *testing.T, id int64) *domain.Booking {
	return &domain.Booking{
		ID:              id,
		UniqueRequestID: "c0ffee00-0000-0000-0000-000000000001",
		VenueID:         1,
		ClientID:        42,
		BookingDate:     time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC),
		StartTime:       mustTime(t, "10:00"),
		EndTime:         mustTime(t, "12:00"),
		Status:          domain.StatusConfirmed,
		VenueName:       "Старое название",
		PricePerHour:    1500,
	}
}

func TestGetUserBookings_RefreshesVenueNameFromCatalog(t *testing.T) {
	// Площадку переименовали после создания заявки - список должен
	// показывать актуальное название из каталога
	repo := &fakeBookingRepo{bookings: []*domain.Booking{storedBooking(t, 1)}}
	client := &fakePlaceClient{venue: &placeservice.Venue{ID: 1, HostID: 99, Name: "Новое название", IsActive: true}}
	svc := NewService(repo, client, noopLogger{})

	resp, err := svc.GetUserBookings(context.Background(), &models.GetUserBookingsRequest{UserID: 42})

	require.NoError(t, err)
	require.Len(t, resp.Bookings, 1)
	assert.Equal(t, "Новое название", resp.Bookings[0].VenueName)
}

func TestGetUserBookings_CatalogDownKeepsStoredNames(t *testing.T) {
	// PlaceService недоступен - история бронирований остается доступной
	// с денормализованными названиями
	repo := &fakeBookingRepo{bookings: []*domain.Booking{storedBooking(t, 1)}}
	client := &fakePlaceClient{err: placeservice.ErrServiceDegraded}
	svc := NewService(repo, client, noopLogger{})

	resp, err := svc.GetUserBookings(context.Background(), &models.GetUserBookingsRequest{UserID: 42})

	require.NoError(t, err)
	require.Len(t, resp.Bookings, 1)
	assert.Equal(t, "Старое название", resp.Bookings[0].VenueName)
}

func TestGetUserBookings_InvalidStatus(t *testing.T) {
	bad := "nonsense"
	svc := NewService(&fakeBookingRepo{}, &fakePlaceClient{}, noopLogger{})

	_, err := svc.GetUserBookings(context.Background(), &models.GetUserBookingsRequest{UserID: 42, Status: &bad})

	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGetVenueBookings_NotManager(t *testing.T) {
	client := &fakePlaceClient{venue: &placeservice.Venue{ID: 1, HostID: 99, IsActive: true}}
	svc := NewService(&fakeBookingRepo{}, client, noopLogger{})

	_, err := svc.GetVenueBookings(context.Background(), &models.GetVenueBookingsRequest{UserID: 42, VenueID: 1})

	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestCancel_ByClientSetsClientStatus(t *testing.T) {
	booking := storedBooking(t, 7)
	booking.Status = domain.StatusPending
	repo := &fakeBookingRepo{bookings: []*domain.Booking{booking}}
	svc := NewService(repo, &fakePlaceClient{}, noopLogger{})

	err := svc.Cancel(context.Background(), 7, &models.CancelBookingRequest{UserID: 42})

	require.NoError(t, err)
	assert.Equal(t, int64(7), repo.cancelledID)
	assert.Equal(t, domain.StatusCancelledByClient, repo.cancelledStatus)
}

func TestCancel_StrangerDenied(t *testing.T) {
	// Не владелец и не менеджер площадки - отмена запрещена
	booking := storedBooking(t, 7)
	booking.Status = domain.StatusPending
	repo := &fakeBookingRepo{bookings: []*domain.Booking{booking}}
	client := &fakePlaceClient{venue: &placeservice.Venue{ID: 1, HostID: 99, IsActive: true}}
	svc := NewService(repo, client, noopLogger{})

	err := svc.Cancel(context.Background(), 7, &models.CancelBookingRequest{UserID: 1000})

	assert.ErrorIs(t, err, ErrAccessDenied)
}
