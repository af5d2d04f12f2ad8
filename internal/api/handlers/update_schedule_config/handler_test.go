package update_schedule_config

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
	"github.com/m04kA/SVM-BookingService/internal/service/schedule/models"
)

type fakeScheduleService struct {
	captured *models.UpdateScheduleRequest
	resp     *models.ScheduleResponse
}

func (f *fakeScheduleService) Update(_ context.Context, req *models.UpdateScheduleRequest) (*models.ScheduleResponse, error) {
	f.captured = req
	return f.resp, nil
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

func newTestRouter(svc ScheduleService) *mux.Router {
	handler := NewHandler(svc, noopLogger{})
	r := mux.NewRouter()
	r.Handle("/api/v1/venues/{venueId}/schedule", middleware.Auth(http.HandlerFunc(handler.Handle))).Methods(http.MethodPut)
	return r
}

func TestHandle_ManagerComesFromHeaderNotBody(t *testing.T) {
	// Поле userId в теле игнорируется: права менеджера проверяются
	// для пользователя из заголовка X-User-ID
	svc := &fakeScheduleService{resp: &models.ScheduleResponse{VenueID: 1}}
	router := newTestRouter(svc)

	body := `{"userId": 999, "defaultOpenTime": "09:00", "defaultCloseTime": "18:00", "minBookingHours": 1, "cooldownMinutes": 0}`
	req := httptest.NewRequest(http.MethodPut, "/api/v1/venues/1/schedule", strings.NewReader(body))
	req.Header.Set("X-User-ID", "42")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, svc.captured)
	assert.Equal(t, int64(42), svc.captured.UserID)
	assert.Equal(t, int64(1), svc.captured.VenueID)
}

func TestHandle_MissingUserHeaderRejected(t *testing.T) {
	svc := &fakeScheduleService{}
	router := newTestRouter(svc)

	req := httptest.NewRequest(http.MethodPut, "/api/v1/venues/1/schedule", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Nil(t, svc.captured)
}
