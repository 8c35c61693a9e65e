package get_booking

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TeamsScheduler/internal/service/bookings"
	"github.com/m04kA/SMC-TeamsScheduler/internal/service/bookings/models"
	"github.com/m04kA/SMC-TeamsScheduler/pkg/logger"
)

type fakeService struct {
	resp *models.BookingResponse
	err  error
	id   uuid.UUID
}

func (f *fakeService) GetByID(_ context.Context, id uuid.UUID) (*models.BookingResponse, error) {
	f.id = id
	return f.resp, f.err
}

func serve(svc BookingService, target string) *httptest.ResponseRecorder {
	router := mux.NewRouter()
	router.HandleFunc("/api/v1/scheduler/bookings/{bookingId}", NewHandler(svc, logger.Nop{}).Handle)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestHandler_Handle(t *testing.T) {
	id := uuid.New()
	svc := &fakeService{resp: &models.BookingResponse{ID: id.String(), Platform: "Relativity", Status: "scheduled"}}

	rec := serve(svc, "/api/v1/scheduler/bookings/"+id.String())

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, id, svc.id)
	assert.Contains(t, rec.Body.String(), `"platform":"Relativity"`)
}

func TestHandler_Handle_Errors(t *testing.T) {
	tests := []struct {
		name   string
		id     string
		err    error
		status int
	}{
		{name: "not a uuid", id: "42", status: http.StatusBadRequest},
		{name: "not found", id: uuid.NewString(), err: bookings.ErrBookingNotFound, status: http.StatusNotFound},
		{name: "store failure", id: uuid.NewString(), err: errors.New("boom"), status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(&fakeService{err: tt.err}, "/api/v1/scheduler/bookings/"+tt.id)
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}
