package log

import (
	"bytes"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaultLogger(t *testing.T) {
	logger := NewDefaultLogger()
	require.NotNil(t, logger)
	assert.Equal(t, logrus.InfoLevel, logger.GetLogrus().GetLevel())
}

func TestNewLoggerWithLevel(t *testing.T) {
	tests := []struct {
		name     string
		level    string
		expected logrus.Level
	}{
		{"debug level", "debug", logrus.DebugLevel},
		{"info level", "info", logrus.InfoLevel},
		{"warn level", "warn", logrus.WarnLevel},
		{"error level", "error", logrus.ErrorLevel},
		{"invalid level", "invalid", logrus.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger := NewLoggerWithLevel(tt.level)
			require.NotNil(t, logger)
			assert.Equal(t, tt.expected, logger.GetLogrus().GetLevel())
		})
	}
}

func TestNewLoggerWithOutput(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithOutput(&buf, "warn")

	logger.Info("hidden")
	logger.Warnf("cast of %s failed", "Framed-IP-Address")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "cast of Framed-IP-Address failed")
}

func TestWithFields(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithOutput(&buf, "debug")

	scoped := logger.WithField("path", "site.yaml")
	scoped.Debugf("loaded %d attributes", 3)
	assert.Contains(t, buf.String(), "path=site.yaml")
	assert.Contains(t, buf.String(), "loaded 3 attributes")

	buf.Reset()
	scoped.WithFields(Fields{"from": "string", "to": "ipaddr"}).Warn("cast failed")
	assert.Contains(t, buf.String(), "path=site.yaml")
	assert.Contains(t, buf.String(), "from=string")
	assert.Contains(t, buf.String(), "to=ipaddr")

	buf.Reset()
	logger.SetLevel("error")
	scoped.Warn("hidden")
	assert.Empty(t, buf.String(), "derived loggers follow the parent level")
}

func TestDiscard(t *testing.T) {
	logger := Discard()

	var _ Logger = logger

	assert.NotPanics(t, func() {
		logger.Debug("test debug")
		logger.Debugf("test debug %s", "formatted")
		logger.Info("test info")
		logger.Infof("test info %s", "formatted")
		logger.Warn("test warn")
		logger.Warnf("test warn %s", "formatted")
		logger.Error("test error")
		logger.Errorf("test error %s", "formatted")
	})
}

func TestSetLevel(t *testing.T) {
	logger := NewDefaultLogger()

	logger.SetLevel("debug")
	assert.Equal(t, logrus.DebugLevel, logger.GetLogrus().GetLevel())

	logger.SetLevel("invalid")
	assert.Equal(t, logrus.InfoLevel, logger.GetLogrus().GetLevel())
}
