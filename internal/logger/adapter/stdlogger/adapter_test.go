package stdlogger_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fieldcms/fieldcms/internal/logger/adapter/stdlogger"
)

type line struct {
	Level     string `json:"level"`
	Component string `json:"component"`
	Message   string `json:"message"`
}

// capture swaps the global logger for one writing JSON into a buffer.
func capture(t *testing.T, level zerolog.Level) *bytes.Buffer {
	t.Helper()

	var buf bytes.Buffer

	prevLogger := log.Logger
	prevLevel := zerolog.GlobalLevel()

	log.Logger = zerolog.New(&buf)
	zerolog.SetGlobalLevel(level)

	t.Cleanup(func() {
		log.Logger = prevLogger
		zerolog.SetGlobalLevel(prevLevel)
	})

	return &buf
}

func lines(t *testing.T, buf *bytes.Buffer) []line {
	t.Helper()

	var out []line

	for _, raw := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if raw == "" {
			continue
		}

		var l line
		require.NoError(t, json.Unmarshal([]byte(raw), &l), raw)
		out = append(out, l)
	}

	return out
}

func TestLevels(t *testing.T) {
	buf := capture(t, zerolog.InfoLevel)

	l := stdlogger.New("gorm")
	l.Debugf("hidden %d", 1)
	l.Infof("info %d", 2)
	l.Warningf("warn %d", 3)
	l.Errorf("error %d", 4)

	got := lines(t, buf)
	require.Len(t, got, 3, "debug is below the global level")

	assert.Equal(t, line{Level: "info", Component: "gorm", Message: "info 2"}, got[0])
	assert.Equal(t, line{Level: "warn", Component: "gorm", Message: "warn 3"}, got[1])
	assert.Equal(t, line{Level: "error", Component: "gorm", Message: "error 4"}, got[2])
}

func TestPrintf_FlattensGormOutput(t *testing.T) {
	buf := capture(t, zerolog.DebugLevel)

	stdlogger.New("gorm", "slow").Printf("%s\n[%.3fms] [rows:%v] %s\n", "content.go:42", 250.5, 1, "SELECT 1")

	got := lines(t, buf)
	require.Len(t, got, 1)
	assert.Equal(t, "warn", got[0].Level)
	assert.Equal(t, "gorm.slow", got[0].Component)
	assert.Equal(t, "content.go:42 [250.500ms] [rows:1] SELECT 1", got[0].Message)
}

func TestNew_WithoutComponent(t *testing.T) {
	buf := capture(t, zerolog.DebugLevel)

	stdlogger.New().Infof("plain")

	got := lines(t, buf)
	require.Len(t, got, 1)
	assert.Empty(t, got[0].Component)
	assert.NotContains(t, buf.String(), "component")
}
