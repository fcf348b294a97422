package logs

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	glogger "gorm.io/gorm/logger"

	"go-tycoon/config"
)

func observe(t *testing.T, level zapcore.Level) *observer.ObservedLogs {
	t.Helper()
	core, logs := observer.New(level)
	SetLogger(zap.New(core))
	t.Cleanup(func() { SetLogger(nil) })
	return logs
}

func TestInit_写文件(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	require.NoError(t, Init("test", config.LogConfig{FileDir: path, Level: "debug"}))
	Info("hello", zap.String("k", "v"))
	Sync()
	assert.FileExists(t, path)
	SetLogger(nil)
}

func TestGormLogger_Trace(t *testing.T) {
	logs := observe(t, zapcore.DebugLevel)
	gl := NewGormLogger(glogger.Warn, 10*time.Millisecond)
	sql := func() (string, int64) { return "SELECT 1", 1 }

	gl.Trace(context.Background(), time.Now(), sql, errors.New("boom"))
	gl.Trace(context.Background(), time.Now().Add(-time.Second), sql, nil)
	gl.Trace(context.Background(), time.Now(), sql, glogger.ErrRecordNotFound)

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, "gorm trace error", entries[0].Message)
	assert.Equal(t, "gorm slow query", entries[1].Message)

	silent := gl.LogMode(glogger.Silent)
	silent.Trace(context.Background(), time.Now(), sql, errors.New("boom"))
	assert.Len(t, logs.All(), 2)
}
