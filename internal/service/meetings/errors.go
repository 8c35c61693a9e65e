package meetings

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование для встречи не найдено
	ErrBookingNotFound = errors.New("meetings: booking not found")

	// ErrBookingNotScheduled возвращается, когда бронирование уже не занимает слот
	ErrBookingNotScheduled = errors.New("meetings: booking is not scheduled")

	// ErrMeetingFailed возвращается, когда сервис встреч не создал встречу
	ErrMeetingFailed = errors.New("meetings: failed to create remote meeting")

	// ErrEnqueue возвращается, когда задачу не удалось поставить в очередь
	ErrEnqueue = errors.New("meetings: failed to enqueue task")

	// ErrInvalidPayload возвращается при некорректном содержимом задачи
	ErrInvalidPayload = errors.New("meetings: invalid task payload")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("meetings: internal error")
)
