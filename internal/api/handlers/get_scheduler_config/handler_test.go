package get_scheduler_config

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TeamsScheduler/internal/service/config/models"
	"github.com/m04kA/SMC-TeamsScheduler/pkg/logger"
)

type fakeService struct {
	resp *models.ConfigResponse
	err  error
}

func (f *fakeService) GetPublicConfig() (*models.ConfigResponse, error) {
	return f.resp, f.err
}

func TestHandler_Handle(t *testing.T) {
	svc := &fakeService{resp: &models.ConfigResponse{
		BusinessHours:       models.TimeRangeResponse{Start: "09:00", End: "17:00"},
		SlotIntervalMinutes: 30,
		AvailableDurations:  []int{30, 60},
		DefaultDuration:     60,
		TimeZone:            "America/Chicago",
		ExcludedDates:       []string{},
		BookableFrom:        "2025-10-14",
		BookableUntil:       "2025-11-13",
	}}

	rec := httptest.NewRecorder()
	NewHandler(svc, logger.Nop{}).Handle(rec, httptest.NewRequest(http.MethodGet, "/api/v1/scheduler/config", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `"businessHours":{"start":"09:00","end":"17:00"}`)
	assert.Contains(t, body, `"availableDurations":[30,60]`)
	assert.Contains(t, body, `"bookableUntil":"2025-11-13"`)
	assert.NotContains(t, body, "lunchBreak")
}

func TestHandler_Handle_Error(t *testing.T) {
	rec := httptest.NewRecorder()
	NewHandler(&fakeService{err: errors.New("bad hours")}, logger.Nop{}).
		Handle(rec, httptest.NewRequest(http.MethodGet, "/api/v1/scheduler/config", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
