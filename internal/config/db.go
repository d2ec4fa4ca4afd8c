package config

import "time"

// DB is the [DB] section. GormEngine selects the driver: mysql (default),
// postgres or sqlite. For sqlite Name is the database file.
type DB struct {
	GormEngine string
	Host       string
	Port       int
	User       string
	Password   string
	Name       string
	Extras     string // appended to the DSN, e.g. "sslmode=disable"

	// connection pool, zero keeps the database/sql defaults
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}
