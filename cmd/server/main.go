package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/phamchuong05/mangmaytinh/internal/app"
	"github.com/phamchuong05/mangmaytinh/internal/chat"
	httpx "github.com/phamchuong05/mangmaytinh/internal/http"
	"github.com/phamchuong05/mangmaytinh/internal/store"
	"github.com/phamchuong05/mangmaytinh/internal/upload"
	"github.com/phamchuong05/mangmaytinh/internal/ws"
)

func main() {
	// Load local .env (dev only)
	_ = godotenv.Load()

	cfg := app.LoadConfig()
	logger := app.NewLogger(cfg.Env)

	// Cancel on SIGINT/SIGTERM
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Postgres connection + migrations
	pg, err := store.NewPostgres(ctx, cfg, logger)
	if err != nil {
		logger.Error("postgres connect", "err", err)
		log.Fatal(err)
	}
	defer pg.Close()
	if err := store.RunMigrations(ctx, pg, logger); err != nil {
		logger.Error("migrations", "err", err)
		log.Fatal(err)
	}

	// Chat coordinator
	rooms := chat.NewRegistry(cfg.HistoryLimit)
	chatSrv := chat.NewServer(logger, rooms)
	go chatSrv.Run(ctx)

	// Auth gateway + avatar store
	avatars := upload.NewDisk(cfg.UploadDir)
	gateway := chat.NewAuthGateway(logger, pg, avatars, cfg.DefaultAvatar, cfg.BcryptCost)

	// WebSocket handler + HTTP router
	wsh := ws.NewHandler(logger, chatSrv, gateway)
	router := httpx.NewRouter(cfg, wsh)
	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Start server
	go func() {
		logger.Info("server.listening", "addr", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server.crash", "err", err)
			cancel()
		}
	}()

	// Wait for shutdown signal
	<-ctx.Done()
	logger.Info("server.shutdown.start")

	// shutdown
	shutdownCtx, stop := context.WithTimeout(context.Background(), 10*time.Second)
	defer stop()
	_ = srv.Shutdown(shutdownCtx)

	logger.Info("server.shutdown.complete")
	_ = os.Stdout.Sync()
}
