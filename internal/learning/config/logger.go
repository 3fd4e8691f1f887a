package config

import (
	"langmaster/pkg/logger"
)

// LoggingConfig holds the logging settings.
type LoggingConfig struct {
	Level string `yaml:"level" env:"LM_LOGGER_LEVEL" env-default:"info"`
	Mode  string `yaml:"mode" env:"LM_LOGGER_MODE" env-default:"development"`
}

// GetEnvironment maps the mode string to a logger.Environment.
func (l *LoggingConfig) GetEnvironment() logger.Environment {
	if l.Mode == "production" {
		return logger.Production
	}
	return logger.Development
}
