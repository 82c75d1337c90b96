package logger

import (
	"os"
	"path/filepath"
	"testing"

	"homework_status_bot/internal/infra/config"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatter(t *testing.T) {
	assert.IsType(t, &logrus.JSONFormatter{}, Formatter("production"))
	assert.IsType(t, &logrus.JSONFormatter{}, Formatter("Staging"))
	assert.IsType(t, &logrus.TextFormatter{}, Formatter("development"))
	assert.IsType(t, &logrus.TextFormatter{}, Formatter(""))
}

func TestInit_LevelAndFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bot.log")
	closer := Init(&config.AppConfig{LogLevel: "debug", Environment: "production", LogFile: path})
	t.Cleanup(func() {
		Log.SetOutput(os.Stdout)
		Log.SetLevel(logrus.InfoLevel)
	})

	assert.Equal(t, logrus.DebugLevel, Log.GetLevel())
	Component("test").Info("written to file")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"component":"test"`)
	assert.Contains(t, string(data), "written to file")
}

func TestInit_InvalidLevel(t *testing.T) {
	closer := Init(&config.AppConfig{LogLevel: "loud"})
	t.Cleanup(func() { Log.SetOutput(os.Stdout) })

	assert.Equal(t, logrus.InfoLevel, Log.GetLevel())
	assert.NoError(t, closer.Close())
}
