package datetoolbox

import "errors"

var (
	// ErrEmptyFormat is returned when an empty pattern is used.
	ErrEmptyFormat = errors.New("date format is empty")

	// ErrUnknownToken is returned when a pattern contains an unrecognised letter.
	ErrUnknownToken = errors.New("unknown date format token")

	// ErrValueMismatch is returned when a value does not follow its pattern.
	ErrValueMismatch = errors.New("value does not match format")

	// ErrOutOfRange is returned when a numeric component is outside its range.
	ErrOutOfRange = errors.New("date component out of range")

	// ErrInvalidDate is returned when the components do not form a real calendar date.
	ErrInvalidDate = errors.New("invalid calendar date")

	// ErrNonexistentTime is returned for a local time inside a DST gap.
	ErrNonexistentTime = errors.New("local time does not exist")
)
