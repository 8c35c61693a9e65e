package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-TeamsScheduler/internal/domain"
)

// Request модель запроса на получение доступных слотов
type Request struct {
	Date            time.Time // Дата (учитываются только год, месяц и день)
	DurationMinutes int       // Длительность встречи; 0 = длительность по умолчанию
}

// Response модель ответа со списком доступных слотов
type Response struct {
	Date            time.Time         // Дата, на которую запрашивались слоты
	DurationMinutes int               // Длительность, для которой посчитаны слоты
	TimeZone        string            // Зона, в которой указано время слотов
	Slots           []domain.TimeSlot // Доступные слоты по возрастанию времени начала
}
