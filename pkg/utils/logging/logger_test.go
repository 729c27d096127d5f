package logging_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/josoor-ai/capdesk/pkg/utils/logging"
	"github.com/m-mizutani/gt"
)

func TestParseLogLevel(t *testing.T) {
	testCases := []struct {
		input    string
		expected slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"", slog.LevelInfo},
		{"warning", slog.LevelWarn},
		{"ERROR", slog.LevelError},
		{"verbose", slog.LevelInfo},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			gt.Equal(t, logging.ParseLogLevel(tc.input), tc.expected)
		})
	}
}

func TestParseFormat(t *testing.T) {
	f, err := logging.ParseFormat("json")
	gt.NoError(t, err)
	gt.Equal(t, f, logging.FormatJSON)

	f, err = logging.ParseFormat("Console")
	gt.NoError(t, err)
	gt.Equal(t, f, logging.FormatConsole)

	f, err = logging.ParseFormat("")
	gt.NoError(t, err)
	gt.Equal(t, f, logging.FormatAuto)

	_, err = logging.ParseFormat("xml")
	gt.Error(t, err)
}

func TestNewLoggerWithFormat(t *testing.T) {
	t.Run("auto falls back to JSON for buffers", func(t *testing.T) {
		var buf bytes.Buffer
		logger := logging.NewLogger(slog.LevelInfo, &buf)
		logger.Info("matrix loaded", "capabilities", 45)

		gt.S(t, buf.String()).Contains(`"msg":"matrix loaded"`)
		gt.S(t, buf.String()).Contains(`"capabilities":45`)
	})

	t.Run("level filters records", func(t *testing.T) {
		var buf bytes.Buffer
		logger := logging.NewLoggerWithFormat(slog.LevelWarn, &buf, logging.FormatJSON)
		logger.Info("hidden")
		logger.Warn("shown")

		gt.S(t, buf.String()).NotContains("hidden")
		gt.S(t, buf.String()).Contains("shown")
	})

	t.Run("console format", func(t *testing.T) {
		var buf bytes.Buffer
		logger := logging.NewLoggerWithFormat(slog.LevelInfo, &buf, logging.FormatConsole)
		logger.Info("console line")

		gt.S(t, buf.String()).Contains("console line")
	})
}
