// Package web wires the fiber application: templates, middlewares and handlers.
package web

import (
	"errors"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/filesystem"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/template/html/v2"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/fieldcms/fieldcms/internal/config"
	"github.com/fieldcms/fieldcms/internal/db/controller/content"
	fiberlogger "github.com/fieldcms/fieldcms/internal/logger/adapter/fiber"
	"github.com/fieldcms/fieldcms/internal/web/handler"
	admincontent "github.com/fieldcms/fieldcms/internal/web/handler/admin/content"
	fieldsettings "github.com/fieldcms/fieldcms/internal/web/handler/admin/settings/fields"
	"github.com/fieldcms/fieldcms/internal/web/handler/admin/structure"
	"github.com/fieldcms/fieldcms/internal/web/handler/login"
	"github.com/fieldcms/fieldcms/internal/web/handler/logout"
	"github.com/fieldcms/fieldcms/internal/web/handler/public"
	authmw "github.com/fieldcms/fieldcms/internal/web/middleware/auth"
	"github.com/fieldcms/fieldcms/internal/web/render"
)

const (
	// CheckAlivePath answers 200 while the service accepts traffic and 503 during shutdown.
	CheckAlivePath = "/checkalive"

	// MetricsPath exposes the Prometheus collectors.
	MetricsPath = "/metrics"
)

// Service represents the web service.
type Service struct {
	App          *fiber.App
	cfg          *config.Config
	fastShutDown bool
	alive        atomic.Bool
	db           *gorm.DB
}

// Start listens on addr until the app is shut down.
func (s *Service) Start(addr string) error {
	s.alive.Store(true)

	if err := s.App.Listen(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err //nolint:wrapcheck
	}

	return nil
}

// WaitShutdown blocks until SIGINT or SIGTERM and stops the server gracefully.
func (s *Service) WaitShutdown() {
	irqSig := make(chan os.Signal, 1)
	signal.Notify(irqSig, syscall.SIGINT, syscall.SIGTERM)

	sig := <-irqSig
	log.Info().Msgf("shutdown request (signal: %v)", sig)

	// checkalive fails first so load balancers stop sending traffic
	if !s.fastShutDown {
		log.Info().Msgf(
			"graceful shutdown: return 503 while %d seconds to let LB to remove this pod from active targets",
			s.cfg.Webserver.ShutDownTime,
		)

		s.alive.Store(false)
		time.Sleep(time.Duration(s.cfg.Webserver.ShutDownTime) * time.Second)
	}

	log.Info().Msg("stopping http server ...")

	if err := s.App.Shutdown(); err != nil {
		log.Error().Err(err).Msg("http server shutdown failed")
	}

	log.Info().Msg("http server was stopped ... good bye...")
}

// CheckAlive reports the liveness of the service.
func (s *Service) CheckAlive(c *fiber.Ctx) error {
	if !s.alive.Load() {
		return c.SendStatus(fiber.StatusServiceUnavailable)
	}

	return c.SendString("OK")
}

// newViews builds the template engine. Dev mode reads templates from disk on every render.
func newViews(cfg *config.Config) (*html.Engine, error) {
	loc, err := cfg.Field.Location()
	if err != nil {
		return nil, err //nolint:wrapcheck
	}

	engine := html.NewFileSystem(http.FS(templateEmbedFS{embeddedTemplates}), ".gohtml")

	if cfg.DevMode {
		engine = html.New("./internal/web/templates", ".gohtml")
		engine.ShouldReload = true

		log.Warn().Msg("debug mode enabled: using local filesystem for templates")
	}

	for name, fn := range render.Funcs(loc) {
		engine.AddFunc(name, fn)
	}

	engine.AddFunc("siteTitle", func() string {
		return cfg.Title
	})
	engine.AddFunc("adminPrefix", func() string {
		return cfg.Webserver.AdminPrefix
	})
	engine.AddFunc("add", func(a, b int) int {
		return a + b
	})
	engine.AddFunc("sub", func(a, b int) int {
		return a - b
	})

	return engine, nil
}

// New creates the web service. cfg, db and contents must not be nil.
func New(cfg *config.Config, db *gorm.DB, contents *content.Service) (*Service, error) {
	if cfg == nil || db == nil || contents == nil {
		return nil, errors.New(handler.ErrNilACDFatalLogMsg) //nolint:goerr113
	}

	views, err := newViews(cfg)
	if err != nil {
		return nil, err
	}

	app := fiber.New(
		fiber.Config{
			ReadBufferSize: 8192,
			AppName:        "FieldCMS",
			CaseSensitive:  true,
			Prefork:        false,
			Immutable:      true,
			Views:          views,

			// exposes CurrentUser and Admin to the layouts
			PassLocalsToViews: true,
		},
	)

	if !cfg.Webserver.DisableRecover {
		app.Use(recover.New(recover.Config{EnableStackTrace: cfg.DevMode}))
	}

	// locals are read after the chain ran, so the log line carries the user
	app.Use(fiberlogger.New(fiberlogger.Config{
		Config:        cfg.Log,
		CheckAliveURI: CheckAlivePath,
		Locals:        []string{handler.LocalsAdmin, handler.LocalsCurrentUser},
	}))

	service := &Service{
		cfg: cfg,
		App: app,
		db:  db,
	}

	app.Get(CheckAlivePath, service.CheckAlive)
	app.Get(MetricsPath, adaptor.HTTPHandler(promhttp.Handler()))

	app.Use("/static",
		filesystem.New(
			filesystem.Config{
				Root:       http.FS(embeddedStaticFiles),
				PathPrefix: "static",
				Browse:     cfg.Webserver.BrowseStatic,
			},
		),
	)

	app.Use(handler.AdminContext(cfg.Webserver.AdminPrefix))
	app.Use(authmw.New(cfg.Webserver.AdminPrefix))

	handlers := []handler.Service{
		&login.Handler,
		&logout.Handler,
		&admincontent.Handler,
		&structure.Handler,
		&fieldsettings.Handler,
		&public.Handler,
	}

	for _, h := range handlers {
		h.Init(app, cfg, db, contents)
	}

	return service, nil
}
