package get_available_slots

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TeamsScheduler/internal/domain"
	"github.com/m04kA/SMC-TeamsScheduler/pkg/logger"
)

type fakeAvailability struct {
	cfg      domain.SchedulerConfig
	slots    []domain.TimeSlot
	err      error
	calls    int
	duration int
}

func (f *fakeAvailability) GetSlots(_ context.Context, _ time.Time, durationMinutes int) ([]domain.TimeSlot, error) {
	f.calls++
	f.duration = durationMinutes
	return f.slots, f.err
}

func (f *fakeAvailability) Config() domain.SchedulerConfig {
	return f.cfg
}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

func newTestUseCase(t *testing.T, availability *fakeAvailability) *UseCase {
	t.Helper()
	loc, err := time.LoadLocation("America/Chicago")
	require.NoError(t, err)

	availability.cfg = domain.SchedulerConfig{
		MaxBookingDaysAhead: 30,
		AvailableDurations:  []int{30, 60, 90, 120},
		DefaultDuration:     60,
		TimeZone:            "America/Chicago",
		Location:            loc,
	}

	uc := NewUseCase(availability, logger.Nop{})
	// 23:30 в Чикаго - уже следующий день по UTC
	uc.timeProvider = fixedTime{now: time.Date(2025, 10, 14, 23, 30, 0, 0, loc)}
	return uc
}

func TestUseCase_Execute(t *testing.T) {
	availability := &fakeAvailability{slots: []domain.TimeSlot{
		{Time: "09:00", EndTime: "10:30", DisplayTime: "9:00 AM"},
	}}
	uc := newTestUseCase(t, availability)
	date := time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC)

	resp, err := uc.Execute(context.Background(), &Request{Date: date, DurationMinutes: 90})
	require.NoError(t, err)

	assert.Equal(t, date, resp.Date)
	assert.Equal(t, 90, resp.DurationMinutes)
	assert.Equal(t, "America/Chicago", resp.TimeZone)
	assert.Equal(t, availability.slots, resp.Slots)
	assert.Equal(t, 90, availability.duration)
}

func TestUseCase_Execute_DefaultDuration(t *testing.T) {
	availability := &fakeAvailability{}
	uc := newTestUseCase(t, availability)

	req := &Request{Date: time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC)}
	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, 60, resp.DurationMinutes)
	assert.Equal(t, 60, availability.duration)
	assert.Zero(t, req.DurationMinutes, "caller request must stay unchanged")
}

func TestUseCase_Execute_TodayInConfiguredZone(t *testing.T) {
	availability := &fakeAvailability{}
	uc := newTestUseCase(t, availability)

	_, err := uc.Execute(context.Background(), &Request{Date: time.Date(2025, 10, 14, 0, 0, 0, 0, time.UTC), DurationMinutes: 30})
	require.NoError(t, err)
}

func TestUseCase_Execute_ValidationErrors(t *testing.T) {
	tests := []struct {
		name string
		req  Request
		want error
	}{
		{name: "no date", req: Request{DurationMinutes: 60}, want: ErrInvalidInput},
		{name: "duration not offered", req: Request{Date: time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC), DurationMinutes: 45}, want: ErrInvalidDuration},
		{name: "negative duration", req: Request{Date: time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC), DurationMinutes: -30}, want: ErrInvalidDuration},
		{name: "past date", req: Request{Date: time.Date(2025, 10, 13, 0, 0, 0, 0, time.UTC), DurationMinutes: 60}, want: ErrInvalidDate},
		{name: "too far ahead", req: Request{Date: time.Date(2025, 11, 14, 0, 0, 0, 0, time.UTC), DurationMinutes: 60}, want: ErrDateTooFarInFuture},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			availability := &fakeAvailability{}
			uc := newTestUseCase(t, availability)

			_, err := uc.Execute(context.Background(), &tt.req)

			assert.ErrorIs(t, err, tt.want)
			assert.Zero(t, availability.calls)
		})
	}
}

func TestUseCase_Execute_LastBookableDate(t *testing.T) {
	uc := newTestUseCase(t, &fakeAvailability{})

	_, err := uc.Execute(context.Background(), &Request{Date: time.Date(2025, 11, 13, 0, 0, 0, 0, time.UTC), DurationMinutes: 60})
	require.NoError(t, err)
}

func TestUseCase_Execute_StoreUnavailable(t *testing.T) {
	uc := newTestUseCase(t, &fakeAvailability{err: errors.New("timeout")})

	_, err := uc.Execute(context.Background(), &Request{Date: time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC), DurationMinutes: 60})
	assert.ErrorIs(t, err, ErrInternal)
}
