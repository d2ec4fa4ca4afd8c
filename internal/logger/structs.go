package logger

import (
	"io"
	"path"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Console configures logging to stdout/stderr.
type Console struct {
	Enabled bool `toml:"enabled"`
	// UseConsoleWriter prints human readable lines instead of JSON.
	UseConsoleWriter bool
}

// Rolling configures one lumberjack file. Sizes are in megabytes, ages in days.
type Rolling struct {
	Name       string `toml:"name"`
	MaxSize    int    `toml:"maxSize"`
	MaxBackups int    `toml:"maxBackups"`
	MaxAge     int    `toml:"maxAge"`
}

// Writer returns the rotating file in dir. fallback names the file when Name is empty.
func (r Rolling) Writer(dir, fallback string) io.Writer {
	name := r.Name
	if name == "" {
		name = fallback
	}

	return &lumberjack.Logger{
		Filename:   path.Join(dir, name),
		MaxSize:    r.MaxSize,
		MaxAge:     r.MaxAge,
		MaxBackups: r.MaxBackups,
	}
}

// LogFile writes one file per level group below Path.
type LogFile struct {
	Enabled bool   `toml:"enabled"`
	Path    string `toml:"path"`

	Access Rolling `toml:"access"`
	Error  Rolling `toml:"error"`
	Warn   Rolling `toml:"warn"`
	Info   Rolling `toml:"info"`
	Trace  Rolling `toml:"trace"`
}

// Log is the [Log] section of the configuration.
type Log struct {
	LogLevel string // trace, debug, info, warn, error

	// EnableAccessLogToConsole adds the HTTP access log to the console output.
	// Console.Enabled still has to be set.
	EnableAccessLogToConsole bool
	ReportCaller             bool
	DisableCheckAlive        bool // skip /checkalive in the access log

	AppName     string
	ServiceName string

	Console Console
	File    LogFile `toml:"file"`
}
