package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "authgate/docs"
	"authgate/internal/config"
	"authgate/internal/handlers"
	"authgate/internal/logger"
	"authgate/internal/repository"
	"authgate/internal/repository/db"
	"authgate/internal/server"
	"authgate/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	serviceName      = "authgate"
	storeOpenTimeout = 15 * time.Second
)

// @title                       authgate API
// @version                     1.0
// @description                 Username/password registration and login issuing one-hour bearer tokens.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func main() {
	cfg, err := config.Load(os.Args[1:], config.DefaultOptions())
	if err != nil {
		logger.Get(logger.Options{}).Fatalw("error reading config", "err", err)
	}

	// init logger
	log := logger.Get(logger.Options{Level: cfg.LogLevel, Format: cfg.LogFormat, Name: serviceName})
	defer func() { _ = log.Sync() }()

	if cfg.UsesDefaultSecret() {
		log.Warnw("jwt secret not configured; tokens are signed with the built-in default", "env", "JWT_SECRET")
	}

	// open credential store
	store, err := openStore(cfg, log)
	if err != nil {
		log.Fatalw("failed to open credential store", "err", err)
	}
	defer func() {
		if cerr := store.Close(); cerr != nil {
			log.Errorw("failed to close credential store", "err", cerr)
		}
	}()

	// wire dependencies
	gin.SetMode(cfg.GinMode)
	repos := repository.NewRepository(store)
	services := service.NewService(repos, cfg)
	apiHandler := handlers.NewHandler(services, log, handlers.WithCORSOrigins(cfg.CORSAllowedOrigins))

	// start HTTP server
	srv := &server.Server{}
	runHTTPServer(srv, cfg.Port, apiHandler, log)

	// graceful shutdown
	waitForShutdown(srv, cfg.ShutdownTimeout, log)
}

// openStore connects to sqlite or postgres depending on the configured DSN.
func openStore(cfg *config.Config, log *logger.Logger) (*db.Store, error) {
	ctx, cancel := context.WithTimeout(context.Background(), storeOpenTimeout)
	defer cancel()

	store, err := db.Open(ctx, cfg.DatabaseDSN)
	if err != nil {
		return nil, err
	}
	log.Infow("credential store ready", "dialect", store.Dialect)
	return store, nil
}

// runHTTPServer binds the port synchronously and serves in a separate goroutine.
func runHTTPServer(srv *server.Server, port string, handler *handlers.Handler, log *logger.Logger) {
	ln, err := server.Listen(port)
	if err != nil {
		log.Fatalw("error binding port", "port", port, "err", err)
	}
	log.Infow("server started", "addr", ln.Addr().String())

	go func() {
		if err := srv.Serve(ln, handler.InitRoutes()); err != nil {
			log.Fatalw("error running server", "err", err)
		}
	}()
}

// waitForShutdown listens for termination signals and performs graceful shutdown.
func waitForShutdown(srv *server.Server, timeout time.Duration, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down server...")

	// allow in-flight requests to complete
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Errorw("server forced to shutdown", "err", err)
	}
}
