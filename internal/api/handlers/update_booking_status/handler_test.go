package update_booking_status

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SVM-BookingService/internal/api/middleware"
	"github.com/m04kA/SVM-BookingService/internal/service/bookings/models"
)

type fakeBookingService struct {
	capturedID  int64
	capturedReq *models.UpdateStatusRequest
}

func (f *fakeBookingService) UpdateStatus(_ context.Context, bookingID int64, req *models.UpdateStatusRequest) error {
	f.capturedID = bookingID
	f.capturedReq = req
	return nil
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

func newTestRouter(svc BookingService) *mux.Router {
	handler := NewHandler(svc, noopLogger{})
	r := mux.NewRouter()
	r.Handle("/api/v1/bookings/{bookingId}/status", middleware.Auth(http.HandlerFunc(handler.Handle))).Methods(http.MethodPatch)
	return r
}

func TestHandle_ActorComesFromHeaderNotBody(t *testing.T) {
	// Поле userId в теле игнорируется: статус меняет пользователь
	// из заголовка X-User-ID
	svc := &fakeBookingService{}
	router := newTestRouter(svc)

	body := `{"userId": 999, "status": "confirmed"}`
	req := httptest.NewRequest(http.MethodPatch, "/api/v1/bookings/7/status", strings.NewReader(body))
	req.Header.Set("X-User-ID", "42")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, svc.capturedReq)
	assert.Equal(t, int64(7), svc.capturedID)
	assert.Equal(t, int64(42), svc.capturedReq.UserID)
	assert.Equal(t, "confirmed", svc.capturedReq.Status)
}

func TestHandle_InvalidBookingID(t *testing.T) {
	svc := &fakeBookingService{}
	router := newTestRouter(svc)

	req := httptest.NewRequest(http.MethodPatch, "/api/v1/bookings/abc/status", strings.NewReader(`{"status": "confirmed"}`))
	req.Header.Set("X-User-ID", "42")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Nil(t, svc.capturedReq)
}
