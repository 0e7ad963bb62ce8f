package common

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/lni/dragonboat/v4/logger"
	"github.com/rs/zerolog"
)

// LoggerNames lists the named loggers used across pmKV.
var LoggerNames = []string{"db", "store", "identity", "workflow", "admin", "app"}

// output is the writer all loggers write to. Tests may swap it.
var output io.Writer = os.Stderr

// --------------------------------------------------------------------------
// Custom Logger (implements dragonboats logger.ILogger)
// --------------------------------------------------------------------------

// pmLogger implements the ILogger interface on top of zerolog
type pmLogger struct {
	name  string
	level logger.LogLevel
	zl    zerolog.Logger
}

func (l *pmLogger) SetLevel(level logger.LogLevel) {
	l.level = level
}

func (l *pmLogger) Debugf(format string, args ...interface{}) {
	if l.level >= logger.DEBUG {
		l.zl.Debug().Msgf(format, args...)
	}
}

func (l *pmLogger) Infof(format string, args ...interface{}) {
	if l.level >= logger.INFO {
		l.zl.Info().Msgf(format, args...)
	}
}

func (l *pmLogger) Warningf(format string, args ...interface{}) {
	if l.level >= logger.WARNING {
		l.zl.Warn().Msgf(format, args...)
	}
}

func (l *pmLogger) Errorf(format string, args ...interface{}) {
	if l.level >= logger.ERROR {
		l.zl.Error().Msgf(format, args...)
	}
}

func (l *pmLogger) Panicf(format string, args ...interface{}) {
	if l.level >= logger.CRITICAL {
		panic(fmt.Sprintf(format, args...))
	}
}

// --------------------------------------------------------------------------
// Logger Factory
// --------------------------------------------------------------------------

// newLoggerFactory returns a logger.Factory writing in the given format ("json" or "pretty")
func newLoggerFactory(format string) logger.Factory {
	var w io.Writer = output
	if format == "pretty" {
		w = zerolog.ConsoleWriter{Out: output, TimeFormat: time.RFC3339}
	}
	base := zerolog.New(w).With().Timestamp().Logger()

	return func(pkgName string) logger.ILogger {
		return &pmLogger{
			name:  pkgName,
			level: logger.INFO,
			zl:    base.With().Str("pkg", pkgName).Logger(),
		}
	}
}

// --------------------------------------------------------------------------
// Helper
// --------------------------------------------------------------------------

// parseLogLevel converts a string level to logger.LogLevel
func parseLogLevel(level string) (logger.LogLevel, error) {
	switch strings.ToLower(level) {
	case "debug":
		return logger.DEBUG, nil
	case "info":
		return logger.INFO, nil
	case "warning", "warn":
		return logger.WARNING, nil
	case "error":
		return logger.ERROR, nil
	default:
		return 0, fmt.Errorf("invalid log level: %s. must be one of debug, info, warn, error", level)
	}
}

// --------------------------------------------------------------------------
// Logger initialization
// --------------------------------------------------------------------------

// InitLoggers installs the zerolog backed factory and sets the level of all pmKV loggers
func InitLoggers(config *Config) error {
	level, err := parseLogLevel(config.LogLevel)
	if err != nil {
		return err
	}

	zerolog.TimeFieldFormat = time.RFC3339
	logger.SetLoggerFactory(newLoggerFactory(config.LogFormat))

	for _, name := range LoggerNames {
		logger.GetLogger(name).SetLevel(level)
	}
	return nil
}
