package config

import "errors"

var (
	// ErrInvalidConfig возвращается, когда политика расписания не годится для публикации
	ErrInvalidConfig = errors.New("config service: invalid scheduler config")
)
