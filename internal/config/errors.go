package config

import (
	"errors"
)

var (
	// ErrEmptyURL error if config webserver.URL is empty.
	ErrEmptyURL = errors.New("toml config webserver.url can not be empty")

	// ErrWebServerPortCanNotBeZero error if config webserver listening port is 0.
	ErrWebServerPortCanNotBeZero = errors.New("toml config webserver.port listening port can not be 0")

	// ErrInvalidAdminPrefix error if config webserver.adminPrefix does not start with a slash.
	ErrInvalidAdminPrefix = errors.New("toml config webserver.adminPrefix must start with /")

	// ErrInvalidDateFormat error if config field.dateFormat is not a date pattern.
	ErrInvalidDateFormat = errors.New("toml config field.dateFormat is not a valid date format")

	// ErrInvalidTimeFormat error if config field.timeFormat is not a time pattern.
	ErrInvalidTimeFormat = errors.New("toml config field.timeFormat is not a valid time format")

	// ErrInvalidTimezone error if config field.timezone is unknown.
	ErrInvalidTimezone = errors.New("toml config field.timezone is unknown")
)
