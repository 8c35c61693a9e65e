package get_scheduler_config

import (
	"github.com/m04kA/SMC-TeamsScheduler/internal/service/config/models"
)

type ConfigService interface {
	GetPublicConfig() (*models.ConfigResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
