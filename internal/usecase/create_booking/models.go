package create_booking

import (
	"time"

	"github.com/m04kA/SMC-TeamsScheduler/internal/domain"
	"github.com/m04kA/SMC-TeamsScheduler/pkg/types"
)

// Request модель формы бронирования
type Request struct {
	Platform        string           // Платформа обучения
	Name            string           // Имя участника
	Email           string           // Email участника
	Phone           *string          // Телефон (опционально)
	Company         *string          // Компания (опционально)
	Date            time.Time        // Выбранная дата; нулевое значение = дата не выбрана
	StartTime       types.TimeString // Выбранный слот; пусто = слот не выбран
	DurationMinutes int              // Длительность; 0 = длительность по умолчанию
	Notes           *string          // Заметки (опционально)
}

// Response модель ответа с подтвержденным бронированием
type Response struct {
	Booking *domain.Booking
	// MeetingError true, если встречу не удалось организовать; бронирование при этом создано
	MeetingError bool
}
