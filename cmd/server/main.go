package main

import (
	"github.com/alvaro/align-api/internal/config"
	"github.com/alvaro/align-api/internal/database"
	"github.com/alvaro/align-api/internal/handlers"
	"github.com/alvaro/align-api/internal/localstore"
	"github.com/alvaro/align-api/internal/remotestore"
	"github.com/alvaro/align-api/internal/routes"
	"github.com/alvaro/align-api/internal/session"
	"github.com/alvaro/align-api/internal/store"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	local, err := localstore.New(cfg.DataDir)
	if err != nil {
		log.WithError(err).Fatal("could not open local storage")
	}

	// The remote backend is optional; without it the app runs guest-only.
	var db *gorm.DB
	var remote *remotestore.Store
	if cfg.DatabaseURL != "" {
		db, err = database.Connect(cfg.DatabaseURL)
		if err != nil {
			log.WithError(err).Fatal("could not connect to remote backend")
		}
		if err := database.Migrate(db); err != nil {
			log.WithError(err).Fatal("could not migrate remote backend")
		}
		remote = remotestore.New(db)
	}

	sess := session.NewProvider(db, local, cfg.JWTSecret, log)
	sess.Resume()

	st := store.New(local, remote, sess, log)

	app := fiber.New()
	app.Use(logger.New())
	app.Use(cors.New())

	routes.Setup(app, handlers.New(st, sess, log))

	log.WithField("port", cfg.Port).Info("align api listening")
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.WithError(err).Fatal("server stopped")
	}
}
