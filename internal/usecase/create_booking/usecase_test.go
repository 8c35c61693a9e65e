package create_booking

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TeamsScheduler/internal/domain"
	bookingRepo "github.com/m04kA/SMC-TeamsScheduler/internal/infra/storage/booking"
	"github.com/m04kA/SMC-TeamsScheduler/pkg/logger"
	"github.com/m04kA/SMC-TeamsScheduler/pkg/ptr"
	"github.com/m04kA/SMC-TeamsScheduler/pkg/txmanager"
)

type fakeRepo struct {
	err     error
	created []*domain.Booking
	inTx    bool
}

func (f *fakeRepo) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	f.inTx = ctx.Value(txKey{}) != nil
	if f.err != nil {
		return nil, f.err
	}
	booking.ID = uuid.New()
	booking.CreatedAt = time.Date(2025, 10, 14, 13, 0, 0, 0, time.UTC)
	booking.UpdatedAt = booking.CreatedAt
	f.created = append(f.created, booking)
	return booking, nil
}

type txKey struct{}

type fakeTx struct {
	commitErr error
	deadline  bool
}

func (f *fakeTx) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	_, f.deadline = ctx.Deadline()
	if err := fn(context.WithValue(ctx, txKey{}, true)); err != nil {
		return err
	}
	return f.commitErr
}

type fakeAvailability struct {
	cfg   domain.SchedulerConfig
	slots []domain.TimeSlot
	err   error
	calls int
}

func (f *fakeAvailability) GetSlots(context.Context, time.Time, int) ([]domain.TimeSlot, error) {
	f.calls++
	return f.slots, f.err
}

func (f *fakeAvailability) Config() domain.SchedulerConfig { return f.cfg }

type fakeView struct {
	upserts []*domain.Booking
}

func (f *fakeView) Upsert(booking *domain.Booking) {
	f.upserts = append(f.upserts, booking)
}

type fakeMeetings struct {
	enabled bool
	err     error
	calls   int
}

func (f *fakeMeetings) Enabled() bool { return f.enabled }

func (f *fakeMeetings) Arrange(_ context.Context, booking *domain.Booking) (*domain.Booking, error) {
	f.calls++
	if f.err != nil {
		return booking, f.err
	}
	withMeeting := *booking
	withMeeting.MeetingStatus = domain.MeetingCreated
	withMeeting.MeetingJoinURL = ptr.Ptr("https://teams/join/1")
	return &withMeeting, nil
}

type fakeMetrics struct {
	results []string
}

func (f *fakeMetrics) IncBooking(result string) {
	f.results = append(f.results, result)
}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type fixture struct {
	repo         *fakeRepo
	tx           *fakeTx
	availability *fakeAvailability
	view         *fakeView
	meetings     *fakeMeetings
	metrics      *fakeMetrics
	uc           *UseCase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	loc, err := time.LoadLocation("America/Chicago")
	require.NoError(t, err)

	f := &fixture{
		repo: &fakeRepo{},
		tx:   &fakeTx{},
		availability: &fakeAvailability{
			cfg: domain.SchedulerConfig{
				MaxBookingDaysAhead: 30,
				AvailableDurations:  []int{30, 60, 90, 120},
				DefaultDuration:     60,
				TimeZone:            "America/Chicago",
				Location:            loc,
			},
			slots: []domain.TimeSlot{
				{Time: "09:00", EndTime: "10:00", DisplayTime: "9:00 AM"},
				{Time: "10:00", EndTime: "11:00", DisplayTime: "10:00 AM"},
			},
		},
		view:     &fakeView{},
		meetings: &fakeMeetings{enabled: true},
		metrics:  &fakeMetrics{},
	}
	f.uc = NewUseCase(f.repo, f.availability, f.view, f.meetings, f.tx, f.metrics,
		"training@example.com", time.Second, logger.Nop{})
	f.uc.timeProvider = fixedTime{now: time.Date(2025, 10, 14, 8, 0, 0, 0, loc)}
	return f
}

func validRequest() *Request {
	return &Request{
		Platform:  "Relativity",
		Name:      "  Jane Doe ",
		Email:     "jane@example.com",
		Company:   ptr.Ptr(" "),
		Date:      time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC),
		StartTime: "10:00",
	}
}

func TestUseCase_Execute(t *testing.T) {
	f := newFixture(t)

	resp, err := f.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	require.Len(t, f.repo.created, 1)
	stored := f.repo.created[0]
	assert.True(t, f.repo.inTx)
	assert.True(t, f.tx.deadline)
	assert.Equal(t, "Jane Doe", stored.Attendee.Name)
	assert.Nil(t, stored.Attendee.Company)
	assert.Equal(t, "10:00", stored.StartTime.String())
	assert.Equal(t, "11:00", stored.EndTime.String())
	assert.Equal(t, 60, stored.DurationMinutes)
	assert.Equal(t, "America/Chicago", stored.TimeZone)
	assert.Equal(t, domain.StatusScheduled, stored.Status)
	assert.Equal(t, domain.MeetingPending, stored.MeetingStatus)
	assert.Equal(t, "training@example.com", *stored.OrganizerEmail)
	assert.Equal(t, "Relativity training session scheduled via Teams Scheduler", *stored.Notes)

	assert.Equal(t, []*domain.Booking{stored}, f.view.upserts)
	assert.Equal(t, 1, f.meetings.calls)
	assert.False(t, resp.MeetingError)
	assert.True(t, resp.Booking.HasMeeting())
	assert.Equal(t, []string{ResultConfirmed}, f.metrics.results)
}

func TestUseCase_Execute_MeetingFailureKeepsBooking(t *testing.T) {
	f := newFixture(t)
	f.meetings.err = errors.New("graph unavailable")

	resp, err := f.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.True(t, resp.MeetingError)
	assert.Equal(t, domain.MeetingPending, resp.Booking.MeetingStatus)
	assert.Len(t, f.view.upserts, 1)
}

func TestUseCase_Execute_MeetingsDisabled(t *testing.T) {
	f := newFixture(t)
	f.meetings.enabled = false

	resp, err := f.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, domain.MeetingNotRequested, resp.Booking.MeetingStatus)
	assert.Zero(t, f.meetings.calls)
}

func TestUseCase_Execute_ValidationFailed(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.Execute(context.Background(), &Request{Platform: "Relativity", Email: "not-an-email"})

	require.ErrorIs(t, err, ErrValidation)
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, []string{
		"Name is required",
		"Please enter a valid email address",
		"Please select a date",
		"Please select a time slot",
	}, validationErr.Messages)

	assert.Zero(t, f.availability.calls)
	assert.Empty(t, f.repo.created)
	assert.Equal(t, []string{ResultValidationFailed}, f.metrics.results)
}

func TestUseCase_Execute_SlotNotOffered(t *testing.T) {
	f := newFixture(t)
	req := validRequest()
	req.StartTime = "09:30"

	_, err := f.uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrSlotNotAvailable)
	assert.Empty(t, f.repo.created)
	assert.Equal(t, []string{ResultConflict}, f.metrics.results)
}

func TestUseCase_Execute_StoreErrors(t *testing.T) {
	tests := []struct {
		name      string
		createErr error
		commitErr error
		want      error
		result    string
	}{
		{
			name:      "duplicate key",
			createErr: fmt.Errorf("%w: Create - execute insert: %v", bookingRepo.ErrSlotConflict, &pq.Error{Code: "23505"}),
			want:      ErrSlotNotAvailable,
			result:    ResultConflict,
		},
		{
			name:      "padded overlap found by probe",
			createErr: fmt.Errorf("%w: Create - 2025-10-15 10:00-11:00", bookingRepo.ErrSlotConflict),
			want:      ErrSlotNotAvailable,
			result:    ResultConflict,
		},
		{
			name:      "serialization failure on commit",
			commitErr: fmt.Errorf("%w: %w", txmanager.ErrCommitTx, &pq.Error{Code: "40001"}),
			want:      ErrSlotNotAvailable,
			result:    ResultConflict,
		},
		{
			name:      "check violation",
			createErr: fmt.Errorf("%w: Create - execute insert: %v", bookingRepo.ErrInvalidData, &pq.Error{Code: "23514"}),
			want:      ErrInvalidData,
			result:    ResultInvalidData,
		},
		{
			name:      "timeout",
			createErr: fmt.Errorf("%w: Create - execute insert: %v", bookingRepo.ErrExecQuery, context.DeadlineExceeded),
			want:      ErrInternal,
			result:    ResultFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.repo.err = tt.createErr
			f.tx.commitErr = tt.commitErr

			resp, err := f.uc.Execute(context.Background(), validRequest())

			assert.Nil(t, resp)
			assert.ErrorIs(t, err, tt.want)
			assert.Empty(t, f.view.upserts, "local view must stay untouched")
			assert.Zero(t, f.meetings.calls)
			assert.Equal(t, []string{tt.result}, f.metrics.results)
		})
	}
}

func TestUseCase_Execute_SlotsUnavailable(t *testing.T) {
	f := newFixture(t)
	f.availability.err = errors.New("store down")

	_, err := f.uc.Execute(context.Background(), validRequest())

	assert.ErrorIs(t, err, ErrInternal)
	assert.Equal(t, []string{ResultFailed}, f.metrics.results)
}

func TestUseCase_Execute_KeepsCustomNotes(t *testing.T) {
	f := newFixture(t)
	req := validRequest()
	req.Notes = ptr.Ptr("Focus on review workflows")

	resp, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "Focus on review workflows", *resp.Booking.Notes)
}

func TestUseCase_Execute_KeepsCallerRequest(t *testing.T) {
	f := newFixture(t)
	req := validRequest()

	resp, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, 60, resp.Booking.DurationMinutes)
	assert.Zero(t, req.DurationMinutes)
}

func TestUseCase_Execute_InfoLogOmitsEmail(t *testing.T) {
	f := newFixture(t)
	var buf bytes.Buffer
	f.uc.logger = logger.NewWithWriter(&buf, logger.LevelInfo)

	_, err := f.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Contains(t, buf.String(), "CreateBooking: platform=")
	assert.NotContains(t, buf.String(), "jane@example.com")
}
