package create_booking

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SVM-BookingService/internal/api/middleware"
	createBooking "github.com/m04kA/SVM-BookingService/internal/usecase/create_booking"
)

type fakeUseCase struct {
	captured *createBooking.Request
	resp     *createBooking.Response
	err      error
}

func (f *fakeUseCase) Execute(_ context.Context, req *createBooking.Request) (*createBooking.Response, error) {
	f.captured = req
	if f.err != nil {
		return nil, f.err
	}
	return f.resp, nil
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

func TestHandle_ClientIDComesFromHeaderNotBody(t *testing.T) {
	// Поле userId в теле игнорируется: клиентом заявки становится
	// пользователь из заголовка X-User-ID
	uc := &fakeUseCase{resp: &createBooking.Response{UniqueRequestID: "req-1"}}
	handler := middleware.Auth(http.HandlerFunc(NewHandler(uc, noopLogger{}).Handle))

	body := `{"userId": 999, "venueId": 1, "slots": [{"date": "2025-08-01", "startTime": "10:00", "endTime": "12:00"}]}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(body))
	req.Header.Set("X-User-ID", "42")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	require.NotNil(t, uc.captured)
	assert.Equal(t, int64(42), uc.captured.UserID)
}

func TestHandle_MissingUserHeaderRejected(t *testing.T) {
	uc := &fakeUseCase{}
	handler := middleware.Auth(http.HandlerFunc(NewHandler(uc, noopLogger{}).Handle))

	body := `{"venueId": 1, "slots": [{"date": "2025-08-01", "startTime": "10:00", "endTime": "12:00"}]}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(body))
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Nil(t, uc.captured)
}

func TestHandle_InvalidTimeFormat(t *testing.T) {
	uc := &fakeUseCase{}
	handler := middleware.Auth(http.HandlerFunc(NewHandler(uc, noopLogger{}).Handle))

	body := `{"venueId": 1, "slots": [{"date": "2025-08-01", "startTime": "10-00", "endTime": "12:00"}]}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(body))
	req.Header.Set("X-User-ID", "42")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Nil(t, uc.captured)
}
