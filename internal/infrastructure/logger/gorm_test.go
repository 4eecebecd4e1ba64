package logger

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	gormlogger "gorm.io/gorm/logger"
)

func newObservedGormLogger(level gormlogger.LogLevel, opts ...GormLoggerOption) (*GormLogger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return NewGormLogger(zap.New(core), level, opts...), logs
}

func TestGormLoggerTrace(t *testing.T) {
	ctx := context.Background()
	fc := func() (string, int64) { return "SELECT * FROM products", 3 }

	t.Run("logs queries at info level", func(t *testing.T) {
		gl, logs := newObservedGormLogger(gormlogger.Info)
		gl.Trace(ctx, time.Now(), fc, nil)

		require.Equal(t, 1, logs.Len())
		entry := logs.All()[0]
		assert.Equal(t, "SQL Query", entry.Message)
	})

	t.Run("logs errors", func(t *testing.T) {
		gl, logs := newObservedGormLogger(gormlogger.Error)
		gl.Trace(ctx, time.Now(), fc, errors.New("disk I/O error"))

		require.Equal(t, 1, logs.Len())
		assert.Equal(t, "SQL Error", logs.All()[0].Message)
	})

	t.Run("ignores record not found by default", func(t *testing.T) {
		gl, logs := newObservedGormLogger(gormlogger.Error)
		gl.Trace(ctx, time.Now(), fc, gormlogger.ErrRecordNotFound)

		assert.Equal(t, 0, logs.Len())
	})

	t.Run("silent level logs nothing", func(t *testing.T) {
		gl, logs := newObservedGormLogger(gormlogger.Silent)
		gl.Trace(ctx, time.Now(), fc, errors.New("boom"))

		assert.Equal(t, 0, logs.Len())
	})

	t.Run("flags slow queries", func(t *testing.T) {
		gl, logs := newObservedGormLogger(gormlogger.Warn, WithSlowThreshold(time.Nanosecond))
		gl.Trace(ctx, time.Now().Add(-time.Second), fc, nil)

		require.Equal(t, 1, logs.Len())
		assert.Contains(t, logs.All()[0].Message, "SLOW SQL")
	})
}
