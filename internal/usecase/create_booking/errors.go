package create_booking

import (
	"errors"
	"strings"
)

var (
	// ErrValidation возвращается, когда данные формы не прошли проверку (см. ValidationError)
	ErrValidation = errors.New("create_booking: validation failed")

	// ErrSlotNotAvailable возвращается, когда выбранный слот уже занят или недоступен
	ErrSlotNotAvailable = errors.New("create_booking: slot is not available")

	// ErrInvalidData возвращается, когда хранилище отклонило данные бронирования
	ErrInvalidData = errors.New("create_booking: invalid booking data")

	// ErrInternal возвращается при внутренних ошибках usecase (в том числе таймаут хранилища)
	ErrInternal = errors.New("create_booking: internal error")
)

// Сообщения для пользователя
const (
	MessageSlotNotAvailable = "This time slot is no longer available. Please select a different time."
	MessageInvalidData      = "Invalid booking data. Please check your inputs and try again."
	MessageInternal         = "Failed to schedule meeting. Please try again."
)

// ValidationError содержит все нарушения, найденные в форме
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return ErrValidation.Error() + ": " + strings.Join(e.Messages, "; ")
}

// Unwrap позволяет проверять ошибку через errors.Is(err, ErrValidation)
func (e *ValidationError) Unwrap() error {
	return ErrValidation
}
