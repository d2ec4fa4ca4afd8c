package logger_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/fieldcms/fieldcms/internal/logger"
)

func TestInit_Errors(t *testing.T) {
	testCases := []struct {
		name string
		cfg  logger.Log
		err  error
	}{
		{
			name: "missing service name",
			cfg:  logger.Log{LogLevel: "info", AppName: "fieldcms"},
			err:  logger.ErrServiceNameIsEmpty,
		},
		{
			name: "missing app name",
			cfg:  logger.Log{LogLevel: "info", ServiceName: "fieldcms"},
			err:  logger.ErrAppNameIsEmpty,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.ErrorIs(t, logger.Init(tc.cfg), tc.err)
		})
	}

	assert.Error(t, logger.Init(logger.Log{LogLevel: "loud", ServiceName: "a", AppName: "b"}))
}

func TestLogger(t *testing.T) {
	testCases := []struct {
		name         string
		cfg          logger.Log
		expectOutput bool
		expectJSON   bool
	}{
		{
			name:         "nothing enabled",
			cfg:          logger.Log{LogLevel: "", ServiceName: "test", AppName: "test"},
			expectOutput: false,
		},
		{
			name: "console info",
			cfg: logger.Log{
				LogLevel: "info", ServiceName: "test", AppName: "test",
				Console: logger.Console{Enabled: true},
			},
			expectOutput: true,
			expectJSON:   true,
		},
		{
			name: "console writer",
			cfg: logger.Log{
				LogLevel: "info", ServiceName: "test", AppName: "test",
				Console: logger.Console{Enabled: true, UseConsoleWriter: true},
			},
			expectOutput: true,
		},
		{
			name: "trace with caller and stack",
			cfg: logger.Log{
				LogLevel: "trace", ServiceName: "test", AppName: "test", ReportCaller: true,
				Console: logger.Console{Enabled: true},
			},
			expectOutput: true,
			expectJSON:   true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			out := captureOutput(t, tc.cfg)

			if !tc.expectOutput {
				assert.Empty(t, out)
				return
			}

			require.NotEmpty(t, out)

			if !tc.expectJSON {
				return
			}

			for _, line := range strings.Split(out, "\n") {
				if line == "" {
					continue
				}

				var decoded map[string]any
				require.NoError(t, json.Unmarshal([]byte(line), &decoded), line)
				assert.Equal(t, "test", decoded["app"])
			}
		})
	}

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
}

func TestLevelWriter(t *testing.T) {
	var info, warn, errs bytes.Buffer

	lw := &logger.LevelWriter{InfoWriter: &info, WarnWriter: &warn, ErrorWriter: &errs}

	_, _ = lw.WriteLevel(zerolog.DebugLevel, []byte("d"))
	_, _ = lw.WriteLevel(zerolog.InfoLevel, []byte("i"))
	_, _ = lw.WriteLevel(zerolog.WarnLevel, []byte("w"))
	_, _ = lw.WriteLevel(zerolog.FatalLevel, []byte("f"))

	n, err := lw.WriteLevel(zerolog.TraceLevel, []byte("t"))
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	assert.Equal(t, "di", info.String())
	assert.Equal(t, "w", warn.String())
	assert.Equal(t, "f", errs.String())
}

func captureOutput(t *testing.T, cfg logger.Log) string {
	t.Helper()

	stdout, stderr := os.Stdout, os.Stderr

	r, w, err := os.Pipe()
	require.NoError(t, err)

	os.Stdout = w
	os.Stderr = w

	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
		cfg.Console.Enabled = false
	}

	require.NoError(t, logger.Init(cfg))

	log.Info().Msg("info message")
	log.Error().Err(errors.New("boom")).Msg("error message") //nolint:goerr113

	outC := make(chan string)

	go func() {
		var buf bytes.Buffer
		_, _ = io.Copy(&buf, r)
		outC <- buf.String()
	}()

	_ = w.Close()
	os.Stdout = stdout
	os.Stderr = stderr

	return <-outC
}

func TestRolling_Writer(t *testing.T) {
	dir := t.TempDir()

	w, ok := logger.Rolling{MaxSize: 10}.Writer(dir, "info.log").(*lumberjack.Logger)
	require.True(t, ok)
	assert.Equal(t, filepath.Join(dir, "info.log"), filepath.FromSlash(w.Filename))
	assert.Equal(t, 10, w.MaxSize)

	w, ok = logger.Rolling{Name: "custom.log"}.Writer(dir, "info.log").(*lumberjack.Logger)
	require.True(t, ok)
	assert.Equal(t, "custom.log", filepath.Base(w.Filename))
}

func TestInit_FileWriters(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "log")

	prev := log.Logger
	t.Cleanup(func() {
		log.Logger = prev
	})

	require.NoError(t, logger.Init(logger.Log{
		LogLevel:    "info",
		AppName:     "test",
		ServiceName: "test",
		File:        logger.LogFile{Enabled: true, Path: dir},
	}))

	log.Info().Msg("to the info file")
	log.Error().Msg("to the error file")

	info, err := os.ReadFile(filepath.Join(dir, "info.log"))
	require.NoError(t, err)
	assert.Contains(t, string(info), "to the info file")
	assert.NotContains(t, string(info), "to the error file")

	errLog, err := os.ReadFile(filepath.Join(dir, "error.log"))
	require.NoError(t, err)
	assert.Contains(t, string(errLog), "to the error file")
}
