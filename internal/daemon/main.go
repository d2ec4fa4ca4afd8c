// Package daemon assembles the database, the session store and the web service.
package daemon

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	sessionmysql "github.com/gofiber/storage/mysql/v2"
	sessionpostgres "github.com/gofiber/storage/postgres/v3"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/fieldcms/fieldcms/internal/config"
	"github.com/fieldcms/fieldcms/internal/db"
	"github.com/fieldcms/fieldcms/internal/db/controller/content"
	"github.com/fieldcms/fieldcms/internal/db/dsn"
	"github.com/fieldcms/fieldcms/internal/field/builtin"
	"github.com/fieldcms/fieldcms/internal/web"
	"github.com/fieldcms/fieldcms/internal/web/session"
)

const sessionTable = "sessions"

// Daemon represents the main application daemon.
type Daemon struct {
	cfg        *config.Config
	db         *gorm.DB
	storage    fiber.Storage
	webService *web.Service
}

// Start serves until SIGINT or SIGTERM, or until the listener fails.
func (d *Daemon) Start() error {
	addr := fmt.Sprintf(":%d", d.cfg.Webserver.Port)

	listenErr := make(chan error, 1)

	go func() {
		log.Info().Str("addr", addr).Str("url", d.cfg.Webserver.URL).Msg("starting http server")
		listenErr <- d.webService.Start(addr)
	}()

	stopped := make(chan struct{})

	go func() {
		d.webService.WaitShutdown()
		close(stopped)
	}()

	var err error

	select {
	case err = <-listenErr:
	case <-stopped:
		err = <-listenErr
	}

	d.close()

	return err
}

func (d *Daemon) close() {
	if d.storage != nil {
		if err := d.storage.Close(); err != nil {
			log.Error().Err(err).Msg("failed to close session storage")
		}
	}

	if sqlDB, err := d.db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

// New opens the database, seeds it and builds the web service.
func New(cfg *config.Config) (*Daemon, error) {
	if cfg == nil {
		return nil, errors.New("config is nil") //nolint:goerr113
	}

	loc, err := cfg.Field.Location()
	if err != nil {
		return nil, err //nolint:wrapcheck
	}

	database, err := db.Open(cfg)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}

	contents := content.New(database, builtin.Registry(loc), content.WithFieldDefaults(cfg.Field))

	if err = seed(database, contents); err != nil {
		return nil, fmt.Errorf("seed database: %w", err)
	}

	storage := sessionStorage(cfg)
	session.Init(storage)

	webService, err := web.New(cfg, database, contents)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}

	return &Daemon{
		cfg:        cfg,
		db:         database,
		storage:    storage,
		webService: webService,
	}, nil
}

// sessionStorage keeps sessions next to the content. sqlite uses the in-memory store.
func sessionStorage(cfg *config.Config) fiber.Storage {
	switch cfg.DB.GormEngine {
	case "", db.EngineMySQL:
		return sessionmysql.New(sessionmysql.Config{
			ConnectionURI: dsn.Create(cfg),
			Table:         sessionTable,
		})
	case db.EnginePostgres:
		return sessionpostgres.New(sessionpostgres.Config{
			ConnectionURI: dsn.Postgres(cfg),
			Table:         sessionTable,
		})
	default:
		log.Warn().Str("engine", cfg.DB.GormEngine).Msg("sessions are kept in memory and lost on restart")
		return nil
	}
}
