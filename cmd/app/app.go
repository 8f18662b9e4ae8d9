package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/yizeng/gab/gin/gorm/event-manager/internal/api"
	"github.com/yizeng/gab/gin/gorm/event-manager/internal/config"
	"github.com/yizeng/gab/gin/gorm/event-manager/internal/db"
	"github.com/yizeng/gab/gin/gorm/event-manager/internal/logger"
	"github.com/yizeng/gab/gin/gorm/event-manager/internal/pkg/payment"
	"github.com/yizeng/gab/gin/gorm/event-manager/internal/repository/dao"
)

const shutdownTimeout = 15 * time.Second

func Start() error {
	conf, err := config.Load("./cmd/app/config.yml")
	if err != nil {
		return fmt.Errorf("failed to initialize config -> %w", err)
	}

	if err = logger.Init(conf.API.Environment); err != nil {
		return fmt.Errorf("failed to initialize logger -> %w", err)
	}
	defer func() { _ = zap.L().Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	postgresDB, err := db.Open(conf.Postgres)
	if err != nil {
		return fmt.Errorf("failed to initialize database -> %w", err)
	}
	if err = dao.InitTables(postgresDB); err != nil {
		return fmt.Errorf("failed to migrate database -> %w", err)
	}

	rdb, err := db.OpenRedis(ctx, conf.Redis)
	if err != nil {
		zap.L().Warn("redis unavailable, response cache disabled", zap.Error(err))
	}
	if rdb != nil {
		defer rdb.Close()
	}

	gateway := payment.NewSimulatedGateway(conf.Payment.SuccessRate, conf.Payment.Delay)
	s := api.NewServer(ctx, conf, postgresDB, rdb, gateway)

	srv := &http.Server{
		Addr:              ":" + s.Config.API.Port,
		Handler:           s.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		zap.L().Info(fmt.Sprintf("starting server at %v", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err = <-errCh:
		if err != nil {
			return fmt.Errorf("failed to start the server -> %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	zap.L().Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err = srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shutdown the server -> %w", err)
	}

	return nil
}
