package bookings

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TeamsScheduler/internal/domain"
	bookingRepo "github.com/m04kA/SMC-TeamsScheduler/internal/infra/storage/booking"
	"github.com/m04kA/SMC-TeamsScheduler/internal/service/bookings/models"
	"github.com/m04kA/SMC-TeamsScheduler/pkg/logger"
	"github.com/m04kA/SMC-TeamsScheduler/pkg/ptr"
)

type fakeRepo struct {
	booking  *domain.Booking
	stats    *domain.BookingStats
	err      error
	getStats int
}

func (f *fakeRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Booking, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.booking == nil || f.booking.ID != id {
		return nil, bookingRepo.ErrBookingNotFound
	}
	return f.booking, nil
}

func (f *fakeRepo) GetStats(_ context.Context, from, to time.Time) (*domain.BookingStats, error) {
	f.getStats++
	if f.err != nil {
		return nil, f.err
	}
	f.stats.From, f.stats.To = from, to
	return f.stats, nil
}

func TestService_GetByID(t *testing.T) {
	booking := &domain.Booking{
		ID:              uuid.MustParse("7f1c2a5e-3b0d-4c1e-9a3f-2d8b6e4f1a00"),
		Platform:        "Relativity",
		Attendee:        domain.Attendee{Name: "Jane Doe", Email: "jane@example.com", Company: ptr.Ptr("Acme")},
		Date:            time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC),
		StartTime:       "13:30",
		EndTime:         "14:30",
		DurationMinutes: 60,
		TimeZone:        "America/Chicago",
		Status:          domain.StatusScheduled,
		MeetingStatus:   domain.MeetingCreated,
		MeetingJoinURL:  ptr.Ptr("https://teams/join/1"),
	}
	svc := NewService(&fakeRepo{booking: booking}, logger.Nop{})

	resp, err := svc.GetByID(context.Background(), booking.ID)
	require.NoError(t, err)

	assert.Equal(t, "7f1c2a5e-3b0d-4c1e-9a3f-2d8b6e4f1a00", resp.ID)
	assert.Equal(t, "2025-10-15", resp.Date)
	assert.Equal(t, "13:30", resp.StartTime)
	assert.Equal(t, "14:30", resp.EndTime)
	assert.Equal(t, "1:30 PM", resp.DisplayTime)
	assert.Equal(t, "scheduled", resp.Status)
	assert.Equal(t, "created", resp.Meeting.Status)
	assert.Equal(t, "https://teams/join/1", *resp.Meeting.JoinURL)
	assert.Equal(t, "Acme", *resp.Attendee.Company)
}

func TestService_GetByID_Errors(t *testing.T) {
	_, err := NewService(&fakeRepo{}, logger.Nop{}).GetByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrBookingNotFound)

	_, err = NewService(&fakeRepo{err: bookingRepo.ErrExecQuery}, logger.Nop{}).GetByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrInternal)
}

func TestService_GetStats(t *testing.T) {
	repo := &fakeRepo{stats: &domain.BookingStats{
		Total:      5,
		ByPlatform: map[string]int{"Relativity": 3, "Reveal": 2},
		ByStatus:   map[domain.BookingStatus]int{domain.StatusScheduled: 4, domain.StatusCancelled: 1},
	}}
	svc := NewService(repo, logger.Nop{})

	resp, err := svc.GetStats(context.Background(), &models.GetStatsRequest{
		From: time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC),
		To:   time.Date(2025, 10, 31, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	assert.Equal(t, "2025-10-01", resp.From)
	assert.Equal(t, "2025-10-31", resp.To)
	assert.Equal(t, 5, resp.Total)
	assert.Equal(t, map[string]int{"Relativity": 3, "Reveal": 2}, resp.ByPlatform)
	assert.Equal(t, map[string]int{"scheduled": 4, "cancelled": 1}, resp.ByStatus)
}

func TestService_GetStats_InvalidPeriod(t *testing.T) {
	day := time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC)
	tests := []struct {
		name string
		req  models.GetStatsRequest
	}{
		{name: "missing from", req: models.GetStatsRequest{To: day}},
		{name: "reversed", req: models.GetStatsRequest{From: day, To: day.AddDate(0, 0, -1)}},
		{name: "too long", req: models.GetStatsRequest{From: day, To: day.AddDate(2, 0, 0)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeRepo{stats: &domain.BookingStats{}}
			_, err := NewService(repo, logger.Nop{}).GetStats(context.Background(), &tt.req)

			assert.ErrorIs(t, err, ErrInvalidInput)
			assert.Zero(t, repo.getStats)
		})
	}
}
