package field

import "errors"

var (
	// ErrUnknownHandler is returned when no handler is registered under a name.
	ErrUnknownHandler = errors.New("unknown field handler")

	// ErrDuplicateHandler is returned when two handlers share a name.
	ErrDuplicateHandler = errors.New("field handler already registered")
)

// Error rejects the value posted for a field during BeforeSave.
type Error struct {
	Field   string
	Message string
}

// Error implements error.
func (e *Error) Error() string {
	return e.Field + ": " + e.Message
}
