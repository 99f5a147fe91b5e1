package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	httpctx "github.com/blacnova/dashboard-server/internal/api/http/context"
	"github.com/blacnova/dashboard-server/internal/api/http/handler"
	"github.com/blacnova/dashboard-server/internal/api/http/router"
	httpServer "github.com/blacnova/dashboard-server/internal/api/http/server"
	"github.com/blacnova/dashboard-server/internal/config"
	"github.com/blacnova/dashboard-server/internal/logger"
	"github.com/blacnova/dashboard-server/internal/model"
	"github.com/blacnova/dashboard-server/internal/registry"
	"github.com/blacnova/dashboard-server/internal/repository/postgres"
	"github.com/blacnova/dashboard-server/internal/server"
	"github.com/blacnova/dashboard-server/internal/service"
	"github.com/blacnova/dashboard-server/internal/storage/github"
)

var (
	buildVersion = "N/A" // set by ldflags
	buildDate    = "N/A" // set by ldflags
	buildCommit  = "N/A" // set by ldflags
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, os.Interrupt)
	defer stop()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	logger := logger.New(cfg.LogLevel)

	db, err := postgres.NewConnection(ctx, cfg.Database.DSN)
	if err != nil {
		logger.Fatal("failed to initialize storage", "error", err)
	}
	defer db.Close()

	clients, err := registry.Load(cfg.Clients.File)
	if err != nil {
		logger.Fatal("failed to load client registry", "error", err)
	}

	accountRepo := postgres.NewAccountRepository(db)
	sessionRepo := postgres.NewSessionRepository(db)

	contentClient := github.NewClient(cfg.GitHub.Token, cfg.GitHub.APIBase, cfg.GitHub.Timeout)

	sessionService := service.NewSession(sessionRepo, accountRepo, cfg.Session.TTL, cfg.Session.RememberTTL, logger)
	contentService := service.NewContent(clients, contentClient, logger)
	authService := service.NewAuth(accountRepo, sessionService, contentService, cfg.Clients.DirectoryClient, logger)

	cookies := handler.CookieSettings{
		Domain: cfg.HTTP.CookieDomain,
		Secure: cfg.HTTP.CookieSecure,
	}

	r := router.New(authService, sessionService, contentService, clients, httpctx.NewManager(), cookies, logger)
	app := r.Register()
	srv := httpServer.NewHTTPServer(app, fmt.Sprintf(":%s", cfg.HTTP.Port))

	var sl model.SecurityLayer
	if cfg.HTTP.EnableHTTPS {
		sl = server.NewTLSListener(cfg.HTTP.CertFileName, cfg.HTTP.PrivateKeyFileName)
	} else {
		sl = server.NewPlainListener()
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func(s model.Server) {
		defer wg.Done()
		logger.Info("Starting server on", "address", s.Address())
		err := s.Start(sl)
		if err != nil {
			logger.Error("failed to start server", "error", err)
		}
	}(srv)

	logAppVersion()

	<-ctx.Done()
	logger.Info("received interruption signal, shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Stop(shutdownCtx); err != nil {
		logger.Error("error during server shutdown", "error", err, "address", srv.Address())
	}

	wg.Wait()
	logger.Info("shutdown complete")
}

func logAppVersion() {
	tmpl := `
Build version: %s
Build date: %s
Build commit: %s
`

	fmt.Printf(tmpl, buildVersion, buildDate, buildCommit)
}
