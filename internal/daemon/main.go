// Package daemon boots the service: database connection, schema migration,
// seeding, session storage and the web service.
package daemon

import (
	"fmt"

	"github.com/gofiber/storage"
	sessionmysql "github.com/gofiber/storage/mysql/v2"
	sessionpostgres "github.com/gofiber/storage/postgres/v3"
	"github.com/rs/zerolog/log"
	gormmysql "gorm.io/driver/mysql"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/collect5/collect5/internal/config"
	"github.com/collect5/collect5/internal/db/dsn"
	"github.com/collect5/collect5/internal/db/models"
	"github.com/collect5/collect5/internal/web"
	"github.com/collect5/collect5/internal/web/session"
)

// Daemon represents the main application daemon.
type Daemon struct {
	cfg        *config.Config
	webService web.Service
}

// Start starts the Daemon's web service and blocks until shutdown.
func (d *Daemon) Start() error {
	go d.webService.WaitShutdown()

	return d.webService.Start(fmt.Sprintf(":%d", d.cfg.Webserver.Port))
}

// New creates a new Daemon instance with the provided configuration.
func New(cfg *config.Config) *Daemon {
	if cfg == nil {
		log.Fatal().Msg("config is nil")
		return nil
	}

	var (
		dbDriver       gorm.Dialector
		sessionStorage storage.Storage
	)

	switch cfg.DB.GormEngine {
	case "postgres":
		dbDriver = gormpostgres.Open(dsn.CreatePostgres(cfg))
		sessionStorage = sessionpostgres.New(sessionpostgres.Config{
			ConnectionURI: dsn.CreatePostgresURI(cfg),
			Table:         "sessions",
		})
	default:
		dbDriver = gormmysql.Open(dsn.Create(cfg))
		sessionStorage = sessionmysql.New(sessionmysql.Config{
			ConnectionURI: dsn.Create(cfg),
			Table:         "sessions",
		})
	}

	db, err := gorm.Open(dbDriver, &gorm.Config{})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect database")
	}

	if err = db.AutoMigrate(
		&models.User{},
		&models.Project{},
		&models.ProjectRole{},
		&models.Entry{},
		&models.BranchEntry{},
	); err != nil {
		log.Fatal().Err(err).Msg("failed to migrate database")
	}

	seed(cfg, db)

	session.Init(sessionStorage)

	return &Daemon{
		cfg:        cfg,
		webService: *web.New(cfg, db),
	}
}
