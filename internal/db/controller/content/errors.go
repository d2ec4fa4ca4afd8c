package content

import (
	"errors"
	"strings"

	"github.com/fieldcms/fieldcms/internal/field"
)

var (
	// ErrContentNotFound is returned when content does not exist or is hidden
	// by one of its fields.
	ErrContentNotFound = errors.New("content not found")
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
)

// EntityErrors are the field errors that rejected a save.
type EntityErrors []*field.Error

// Error implements error.
func (e EntityErrors) Error() string {
	msgs := make([]string, 0, len(e))
	for _, fe := range e {
		msgs = append(msgs, fe.Error())
	}

	return strings.Join(msgs, "; ")
}

// Messages groups the messages by field name, for templates.
func (e EntityErrors) Messages() map[string][]string {
	out := make(map[string][]string, len(e))
	for _, fe := range e {
		out[fe.Field] = append(out[fe.Field], fe.Message)
	}

	return out
}

// Messages extracts per field messages from an error returned by Save. It
// returns nil for errors that are not caused by user input.
func Messages(err error) map[string][]string {
	var (
		entityErrs EntityErrors
		vErrs      field.ValidationErrors
	)

	switch {
	case errors.As(err, &entityErrs):
		return entityErrs.Messages()
	case errors.As(err, &vErrs):
		return vErrs.Messages()
	default:
		return nil
	}
}
