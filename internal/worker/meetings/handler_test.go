package meetings

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TeamsScheduler/internal/domain"
	meetingsService "github.com/m04kA/SMC-TeamsScheduler/internal/service/meetings"
	"github.com/m04kA/SMC-TeamsScheduler/pkg/logger"
)

type fakeCreator struct {
	err   error
	calls []uuid.UUID
}

func (f *fakeCreator) CreateForBooking(_ context.Context, id uuid.UUID) (*domain.Booking, error) {
	f.calls = append(f.calls, id)
	if f.err != nil {
		return nil, f.err
	}
	return &domain.Booking{ID: id, MeetingStatus: domain.MeetingCreated}, nil
}

func newTask(t *testing.T, id uuid.UUID) *asynq.Task {
	t.Helper()
	task, err := meetingsService.NewCreateMeetingTask(id)
	require.NoError(t, err)
	return task
}

func TestHandler_ProcessTask(t *testing.T) {
	id := uuid.New()
	creator := &fakeCreator{}
	h := NewHandler(creator, logger.Nop{})

	err := h.ProcessTask(context.Background(), newTask(t, id))

	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{id}, creator.calls)
}

func TestHandler_ProcessTask_Errors(t *testing.T) {
	tests := []struct {
		name      string
		creator   *fakeCreator
		task      func(t *testing.T) *asynq.Task
		skipRetry bool
	}{
		{
			name:      "bad payload",
			creator:   &fakeCreator{},
			task:      func(*testing.T) *asynq.Task { return asynq.NewTask(meetingsService.TypeCreateMeeting, []byte("{")) },
			skipRetry: true,
		},
		{
			name:      "booking gone",
			creator:   &fakeCreator{err: fmt.Errorf("%w: booking_id=x", meetingsService.ErrBookingNotFound)},
			task:      func(t *testing.T) *asynq.Task { return newTask(t, uuid.New()) },
			skipRetry: true,
		},
		{
			name:      "booking cancelled",
			creator:   &fakeCreator{err: meetingsService.ErrBookingNotScheduled},
			task:      func(t *testing.T) *asynq.Task { return newTask(t, uuid.New()) },
			skipRetry: true,
		},
		{
			name:      "meeting service down",
			creator:   &fakeCreator{err: meetingsService.ErrMeetingFailed},
			task:      func(t *testing.T) *asynq.Task { return newTask(t, uuid.New()) },
			skipRetry: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(tt.creator, logger.Nop{})

			err := h.ProcessTask(context.Background(), tt.task(t))

			require.Error(t, err)
			assert.Equal(t, tt.skipRetry, errors.Is(err, asynq.SkipRetry))
		})
	}
}

func TestHandler_Register(t *testing.T) {
	id := uuid.New()
	creator := &fakeCreator{}
	mux := asynq.NewServeMux()
	NewHandler(creator, logger.Nop{}).Register(mux)

	require.NoError(t, mux.ProcessTask(context.Background(), newTask(t, id)))
	assert.Equal(t, []uuid.UUID{id}, creator.calls)
}

func TestServerConfig_RedisOpt(t *testing.T) {
	opt := ServerConfig{RedisAddr: "redis:6379", RedisPassword: "secret", RedisDB: 2}.RedisOpt()

	assert.Equal(t, "redis:6379", opt.Addr)
	assert.Equal(t, "secret", opt.Password)
	assert.Equal(t, 2, opt.DB)
}
