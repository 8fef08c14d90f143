package x_db

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm/logger"
)

//
// ---------- GORM log adapter (zerolog) ----------

// logAdapter implements gorm's logger.Interface on a zerolog logger.
type logAdapter struct {
	Logger        zerolog.Logger
	LogLevel      logger.LogLevel
	SlowThreshold time.Duration
}

func newLogAdapter(zl zerolog.Logger, level logger.LogLevel) logger.Interface {
	return &logAdapter{
		Logger:        zl,
		LogLevel:      level,
		SlowThreshold: 200 * time.Millisecond,
	}
}

// LogMode sets the logging level for the adapter
func (l *logAdapter) LogMode(level logger.LogLevel) logger.Interface {
	newLogger := *l
	newLogger.LogLevel = level
	return &newLogger
}

func (l *logAdapter) Info(ctx context.Context, msg string, data ...any) {
	if l.LogLevel >= logger.Info {
		l.Logger.Info().Msgf(msg, data...)
	}
}

func (l *logAdapter) Warn(ctx context.Context, msg string, data ...any) {
	if l.LogLevel >= logger.Warn {
		l.Logger.Warn().Msgf(msg, data...)
	}
}

func (l *logAdapter) Error(ctx context.Context, msg string, data ...any) {
	if l.LogLevel >= logger.Error {
		l.Logger.Error().Msgf(msg, data...)
	}
}

// Trace logs SQL queries, highlighting slow or failed ones.
// Record-not-found is a normal lookup outcome and stays quiet.
func (l *logAdapter) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.LogLevel <= logger.Silent {
		return
	}

	elapsed := time.Since(begin)
	sql, rows := fc()

	e := l.Logger.With().
		Str("elapsed", elapsed.String()).
		Int64("rows", rows).
		Logger()

	switch {
	case err != nil && l.LogLevel >= logger.Error && !isNotFound(err):
		e.Error().Err(err).Msg(sql)
	case elapsed > l.SlowThreshold && l.LogLevel >= logger.Warn:
		e.Warn().Msgf("SLOW SQL: %s", sql)
	case l.LogLevel >= logger.Info:
		e.Debug().Msg(sql)
	}
}
