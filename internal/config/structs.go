package config

import (
	"time"

	"github.com/fieldcms/fieldcms/internal/logger"
)

// Session settings.
type Session struct {
	ExpiryTime time.Duration
}

// Config overall data structure.
type Config struct {
	DevMode   bool // enable dev mode for development
	DB        DB
	Field     Field
	Log       logger.Log
	Title     string
	Webserver Webserver
}

// Webserver implement webserver settings.
type Webserver struct {
	BrowseStatic   bool    // enable static file browsing (for development purposes only)
	DisableRecover bool    // disable recover middleware
	Port           int     // listening port for the webserver
	ShutDownTime   int     // wait time for shutdown
	URL            string  // base url for the webserver
	AdminPrefix    string  // path prefix of the administration area
	Session        Session // session settings
}

// Field holds the site wide defaults of the date field types.
type Field struct {
	DateFormat string // used when an instance leaves its date format empty
	TimeFormat string // used when an instance leaves its time format empty
	Timezone   string // IANA name, date input is interpreted in this zone
}

// Location returns the configured time zone, UTC if unset.
func (f Field) Location() (*time.Location, error) {
	if f.Timezone == "" {
		return time.UTC, nil
	}

	return time.LoadLocation(f.Timezone)
}
