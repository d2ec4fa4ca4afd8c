package logger

import (
	"errors"
	"fmt"
	"os"
)

var (
	// ErrAppNameIsEmpty is returned by Init without Log.AppName.
	ErrAppNameIsEmpty = errors.New("log: AppName is required")

	// ErrServiceNameIsEmpty is returned by Init without Log.ServiceName.
	ErrServiceNameIsEmpty = errors.New("log: ServiceName is required")
)

// ErrorHandler receives the events zerolog failed to write. The writers are
// broken at that point, so it falls back to stderr.
func ErrorHandler(err error) {
	_, _ = fmt.Fprintf(os.Stderr, "fieldcms: dropped log event: %v\n", err)
}
