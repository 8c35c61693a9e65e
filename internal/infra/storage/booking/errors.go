package booking

import (
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/lib/pq"
)

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking.repository: booking not found")

	// ErrSlotConflict возвращается, когда интервал (с учётом отступа) пересекается с существующим бронированием
	ErrSlotConflict = errors.New("booking.repository: slot conflicts with an existing booking")

	// ErrInvalidData возвращается при нарушении ограничений схемы или некорректных значениях
	ErrInvalidData = errors.New("booking.repository: invalid booking data")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("booking.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("booking.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("booking.repository: failed to scan row")
)

// ClassifyError сопоставляет ошибку PostgreSQL с ошибками репозитория.
// Конфликт слота: нарушение уникальности, exclusion constraint, сбой сериализации.
// Некорректные данные: прочие нарушения целостности (класс 23) и ошибки данных (класс 22).
// Для остальных ошибок возвращает ErrExecQuery.
func ClassifyError(err error) error {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return ErrExecQuery
	}

	code := string(pqErr.Code)
	switch {
	case code == pgerrcode.UniqueViolation,
		code == pgerrcode.ExclusionViolation,
		code == pgerrcode.SerializationFailure:
		return ErrSlotConflict
	case pgerrcode.IsIntegrityConstraintViolation(code), pgerrcode.IsDataException(code):
		return ErrInvalidData
	default:
		return ErrExecQuery
	}
}
