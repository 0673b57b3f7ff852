package config

import (
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
)

// ConfigureLogging applies the log level and format to the standard logrus logger
func ConfigureLogging(cfg *Config) error {
	return configureLogger(logrus.StandardLogger(), cfg.Log)
}

func configureLogger(logger *logrus.Logger, lc LogConfig) error {
	level := logrus.InfoLevel
	if lc.Level != "" {
		parsed, err := logrus.ParseLevel(lc.Level)
		if err != nil {
			return fmt.Errorf("invalid log level %q: %w", lc.Level, err)
		}
		level = parsed
	}
	logger.SetLevel(level)
	logger.SetOutput(os.Stdout)

	switch lc.Format {
	case "json":
		logger.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: time.RFC3339Nano,
		})
	case "", "text":
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: time.RFC3339,
		})
	default:
		return fmt.Errorf("invalid log format %q: must be text or json", lc.Format)
	}

	return nil
}
