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

	"github.com/dtroode/authkeeper/internal/api/http/handler"
	"github.com/dtroode/authkeeper/internal/api/http/httpcontext"
	"github.com/dtroode/authkeeper/internal/api/http/middleware"
	"github.com/dtroode/authkeeper/internal/api/http/router"
	"github.com/dtroode/authkeeper/internal/cleanup"
	"github.com/dtroode/authkeeper/internal/config"
	"github.com/dtroode/authkeeper/internal/logger"
	"github.com/dtroode/authkeeper/internal/model"
	"github.com/dtroode/authkeeper/internal/password"
	"github.com/dtroode/authkeeper/internal/repository/postgres"
	"github.com/dtroode/authkeeper/internal/server"
	"github.com/dtroode/authkeeper/internal/service"
	"github.com/dtroode/authkeeper/internal/token"
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

	userRepo := postgres.NewUserRepository(db)
	sessionRepo := postgres.NewSessionRepository(db)
	tokenManager := token.NewJWT(cfg.JWT.AccessSecret, cfg.JWT.RefreshSecret, cfg.JWT.AccessTTL, cfg.JWT.RefreshTTL)
	hasher := password.NewBcrypt(cfg.Auth.BcryptCost)

	authService := service.NewAuth(userRepo, sessionRepo, tokenManager, hasher, cfg.JWT.RefreshTTL, logger)
	userService := service.NewUser(userRepo, logger)
	ctxMgr := httpcontext.NewManager()

	cookieConfig := handler.CookieConfig{
		MaxAge: int(cfg.JWT.RefreshTTL.Seconds()),
		Secure: cfg.IsProduction(),
	}

	authHandler := handler.NewAuth(authService, cookieConfig, logger)
	userHandler := handler.NewUser(userService, ctxMgr, logger)
	authenticate := middleware.NewAuthenticate(tokenManager, ctxMgr, logger)

	r := router.New(authHandler, userHandler, authenticate, logger)
	httpServer := server.NewHTTPServer(r.Register(), fmt.Sprintf(":%s", cfg.HTTP.Port))

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
	}(httpServer)

	cleanupWorker := cleanup.NewWorker(authService, cfg.Cleanup.Interval, logger)
	wg.Add(1)
	go func() {
		defer wg.Done()
		cleanupWorker.Run(ctx)
	}()

	logAppVersion()

	<-ctx.Done()
	logger.Info("received interruption signal, shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := httpServer.Stop(shutdownCtx); err != nil {
		logger.Error("error during server shutdown", "error", err, "address", httpServer.Address())
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
