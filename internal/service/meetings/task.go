package meetings

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

// TypeCreateMeeting тип фоновой задачи создания встречи
const TypeCreateMeeting = "meeting:create"

type createMeetingPayload struct {
	BookingID uuid.UUID `json:"booking_id"`
}

// NewCreateMeetingTask создает задачу создания встречи для бронирования
func NewCreateMeetingTask(bookingID uuid.UUID) (*asynq.Task, error) {
	payload, err := json.Marshal(createMeetingPayload{BookingID: bookingID})
	if err != nil {
		return nil, fmt.Errorf("%w: NewCreateMeetingTask - marshal payload: %v", ErrInternal, err)
	}
	return asynq.NewTask(TypeCreateMeeting, payload), nil
}

// ParseCreateMeetingTask извлекает ID бронирования из задачи
func ParseCreateMeetingTask(task *asynq.Task) (uuid.UUID, error) {
	if task.Type() != TypeCreateMeeting {
		return uuid.Nil, fmt.Errorf("%w: unexpected task type %q", ErrInvalidPayload, task.Type())
	}

	var payload createMeetingPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return uuid.Nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	if payload.BookingID == uuid.Nil {
		return uuid.Nil, fmt.Errorf("%w: empty booking_id", ErrInvalidPayload)
	}

	return payload.BookingID, nil
}
