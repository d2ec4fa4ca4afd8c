package dsn

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fieldcms/fieldcms/internal/config"
)

func TestCreate(t *testing.T) {
	cfg := &config.Config{
		DB: config.DB{
			Host:     "localhost",
			Port:     3306,
			User:     "fieldcms",
			Password: "secret",
			Name:     "fieldcms",
			Extras:   "parseTime=true",
		},
	}

	assert.Equal(t, "fieldcms:secret@tcp(localhost:3306)/fieldcms?parseTime=true", Create(cfg))
}

func TestPostgres(t *testing.T) {
	cfg := &config.Config{
		DB: config.DB{
			Host:     "db",
			Port:     5432,
			User:     "fieldcms",
			Password: "secret",
			Name:     "cms",
		},
	}

	assert.Equal(t, "host=db port=5432 user=fieldcms password=secret dbname=cms", Postgres(cfg))

	cfg.DB.Extras = "sslmode=disable"
	assert.Equal(t, "host=db port=5432 user=fieldcms password=secret dbname=cms sslmode=disable", Postgres(cfg))
}
