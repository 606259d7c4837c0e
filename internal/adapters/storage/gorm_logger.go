package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/lumina-ai/lumina-console/internal/logging"
)

const slowQueryThreshold = 200 * time.Millisecond

// gormLogger routes GORM output to logging.Logger
type gormLogger struct {
	level logger.LogLevel
}

func newGormLogger(debug bool) logger.Interface {
	if debug {
		return &gormLogger{level: logger.Info}
	}
	return &gormLogger{level: logger.Silent}
}

func (l *gormLogger) LogMode(level logger.LogLevel) logger.Interface {
	return &gormLogger{level: level}
}

func (l *gormLogger) Info(ctx context.Context, msg string, data ...any) {
	if l.level >= logger.Info {
		logging.Logger.InfoContext(ctx, fmt.Sprintf(msg, data...))
	}
}

func (l *gormLogger) Warn(ctx context.Context, msg string, data ...any) {
	if l.level >= logger.Warn {
		logging.Logger.WarnContext(ctx, fmt.Sprintf(msg, data...))
	}
}

func (l *gormLogger) Error(ctx context.Context, msg string, data ...any) {
	if l.level >= logger.Error {
		logging.Logger.ErrorContext(ctx, fmt.Sprintf(msg, data...))
	}
}

// Trace logs every statement at debug, slow ones at warn and failures at error.
// Values are never logged because the kv table holds the bearer credential.
func (l *gormLogger) Trace(ctx context.Context, begin time.Time, fc func() (sql string, rowsAffected int64), err error) {
	if l.level < logger.Info {
		return
	}

	elapsed := time.Since(begin)
	_, rows := fc()

	switch {
	case err != nil && !errors.Is(err, gorm.ErrRecordNotFound):
		logging.Logger.ErrorContext(ctx, "gorm query error", "error", err, "duration", elapsed, "rows", rows)
	case elapsed > slowQueryThreshold:
		logging.Logger.WarnContext(ctx, "slow query", "duration", elapsed, "rows", rows)
	default:
		logging.Logger.DebugContext(ctx, "gorm query", "duration", elapsed, "rows", rows)
	}
}
