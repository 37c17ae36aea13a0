package logging

import (
	"io"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/nansinho/innovtec-v2/internal/config"
)

// Setup configures the global logrus logger from the log config. When a file
// is configured, output goes to both stdout and a size-rotated file.
func Setup(cfg config.LogConfig) {
	level, errParse := log.ParseLevel(strings.TrimSpace(cfg.Level))
	if errParse != nil {
		level = log.InfoLevel
	}
	log.SetLevel(level)
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})

	if strings.TrimSpace(cfg.File) == "" {
		log.SetOutput(os.Stdout)
		return
	}

	rotator := &lumberjack.Logger{
		Filename:   cfg.File,
		MaxSize:    orDefault(cfg.MaxSizeMB, 100),
		MaxBackups: orDefault(cfg.MaxBackups, 3),
		MaxAge:     orDefault(cfg.MaxAgeDays, 28),
		Compress:   true,
	}
	log.SetOutput(io.MultiWriter(os.Stdout, rotator))
}

// orDefault returns fallback when value is not positive.
func orDefault(value, fallback int) int {
	if value <= 0 {
		return fallback
	}
	return value
}
