package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"kidspace/cache"
	"kidspace/config"
	"kidspace/database"
	"kidspace/logger"
	"kidspace/middleware"
	"kidspace/realtime"
	v1 "kidspace/routes/v1"
	"kidspace/scheduler"
	"kidspace/server"
	"kidspace/services"
	"kidspace/storage"

	"github.com/joho/godotenv"
	"gorm.io/gorm"
)

const serviceName = "kidspace"

// @title Kidspace API
// @version 1.0
// @description Space themed challenges and solutions for kids, moderated by an admin.
// @host localhost:5000
// @BasePath /api/v1
// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the token.
func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "failed to read .env: %v\n", err)
	}

	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "init-db":
			os.Exit(initDB(os.Stdout, os.Stderr))
		case "serve":
		default:
			fmt.Fprintf(os.Stderr, "unknown command %q\nusage: %s [serve|init-db]\n", os.Args[1], os.Args[0])
			os.Exit(2)
		}
	}

	if err := serve(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// initDB drops every table, recreates the schema and seeds it
func initDB(stdout, stderr io.Writer) int {
	cfg := config.LoadWithoutSecret()
	log := logger.New(serviceName, cfg.LogLevel)
	ctx := context.Background()

	db, err := database.Open(cfg.Database, log)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	defer database.Close(db)

	report, err := database.Bootstrap(ctx, db)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	// a cached planet list from the previous database would outlive the reset
	if client, err := cache.NewRedisClient(ctx, cfg.Redis); err != nil {
		log.Entry().WithError(err).Warn("redis unavailable, planet cache not invalidated")
	} else if client != nil {
		planets := services.NewPlanetService(db, cache.NewRedisPlanetCache(client, cache.PlanetsCacheDuration), log.Entry())
		if err := planets.InvalidateCache(ctx); err != nil {
			log.Entry().WithError(err).Warn("failed to invalidate planet cache")
		}
		client.Close()
	}

	fmt.Fprintln(stdout, report.String())
	return 0
}

func serve() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log := logger.New(serviceName, cfg.LogLevel)
	if cfg.InsecureSecret {
		log.Entry().Warn("SECRET_KEY is not set, using the insecure development default")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.Open(cfg.Database, log)
	if err != nil {
		return err
	}
	defer database.Close(db)

	if err := database.Migrate(ctx, db); err != nil {
		return err
	}
	report, err := database.Populate(ctx, db)
	if err != nil {
		return err
	}
	log.Entry().WithField("planets_seeded", report.PlanetsSeeded).WithField("admin_created", report.AdminCreated).Info("database ready")

	var planetCache cache.PlanetCache
	redisClient, err := cache.NewRedisClient(ctx, cfg.Redis)
	if err != nil {
		log.Entry().WithError(err).Warn("redis unavailable, serving planets without cache")
	} else if redisClient != nil {
		defer redisClient.Close()
		planetCache = cache.NewRedisPlanetCache(redisClient, cache.PlanetsCacheDuration)
	}

	store, err := storage.New(ctx, cfg.Storage)
	if err != nil {
		return err
	}

	hub := realtime.NewHub(log.Entry())
	go hub.Run(ctx)

	deps, err := buildDeps(cfg, db, planetCache, store, hub, log)
	if err != nil {
		return err
	}

	sched, err := scheduler.Start(db, log.Entry())
	if err != nil {
		return err
	}
	defer sched.Shutdown()

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           server.New(cfg, log, deps),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Entry().WithField("port", cfg.Port).Info("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Entry().Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func buildDeps(cfg *config.Config, db *gorm.DB, planetCache cache.PlanetCache, store storage.Store, hub *realtime.Hub, log *logger.Logger) (v1.Deps, error) {
	users := services.NewUserService(db)
	if cfg.AdminPassword == "" {
		log.Entry().Warn("ADMIN_PASSWORD is not set, admin login is disabled")
	}
	if err := users.SetAdminPassword(cfg.AdminPassword); err != nil {
		return v1.Deps{}, err
	}

	return v1.Deps{
		Users:         users,
		Challenges:    services.NewChallengeService(db, hub),
		Solutions:     services.NewSolutionService(db, store, hub),
		Planets:       services.NewPlanetService(db, planetCache, log.Entry()),
		Auth:          middleware.NewAuthenticator(cfg.SecretKey),
		Hub:           hub,
		SecureCookies: !cfg.IsDevelopment(),
	}, nil
}
