package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"go.alis.build/alog"
)

const DefaultListenAddr = ":8080"

const DefaultDatabaseFilepath = "spreadsheet.db"

type Config struct {
	DatabaseFilepath string
	ListenAddr       string
	LogLevel         string
	LogLocal         bool
	WebhookWorkers   int

	// RecalculateInterval refreshes NOW and TODAY periodically, zero disables it
	RecalculateInterval time.Duration
}

// LoadConfigFromEnv reads DATABASE_FILEPATH, LISTEN_ADDR, LOG_LEVEL, WEBHOOK_WORKERS and
// RECALCULATE_INTERVAL, falling back to defaults for unset or invalid variables
func LoadConfigFromEnv() Config {
	config := Config{
		DatabaseFilepath: getEnv("DATABASE_FILEPATH", DefaultDatabaseFilepath),
		ListenAddr:       getEnv("LISTEN_ADDR", DefaultListenAddr),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		WebhookWorkers:   DefaultWebhookWorkersCount,
	}

	if workers, err := strconv.Atoi(os.Getenv("WEBHOOK_WORKERS")); err == nil && workers > 0 {
		config.WebhookWorkers = workers
	}

	if interval, err := time.ParseDuration(os.Getenv("RECALCULATE_INTERVAL")); err == nil && interval > 0 {
		config.RecalculateInterval = interval
	}

	return config
}

func getEnv(name string, fallback string) string {
	if value, ok := os.LookupEnv(name); ok && value != "" {
		return value
	}
	return fallback
}

var logLevels = map[string]alog.LogLevel{
	"debug":   alog.LevelDebug,
	"info":    alog.LevelInfo,
	"notice":  alog.LevelNotice,
	"warning": alog.LevelWarning,
	"warn":    alog.LevelWarning,
	"error":   alog.LevelError,
}

func ParseLogLevel(level string) (alog.LogLevel, error) {
	if logLevel, ok := logLevels[strings.ToLower(level)]; ok {
		return logLevel, nil
	}
	return alog.LevelInfo, fmt.Errorf("unknown log level %q", level)
}

// ConfigureLogging applies the level and output format to the process wide logger
func ConfigureLogging(config Config) error {
	level, err := ParseLogLevel(config.LogLevel)
	if err != nil {
		return err
	}

	alog.SetLevel(level)
	if config.LogLocal {
		alog.SetLoggingEnvironment(alog.LoggingEnvironment("LOCAL"))
	}

	return nil
}
