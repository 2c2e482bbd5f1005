package services

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/freakmaxi/rdrelay/redirector/routing"
	"go.uber.org/zap"
)

const shutdownTimeout = time.Second * 5

type Proxy struct {
	bindAddr string
	manager  *routing.Manager
	logger   *zap.Logger
}

func NewProxy(bindAddr string, manager *routing.Manager, logger *zap.Logger) *Proxy {
	return &Proxy{
		bindAddr: bindAddr,
		manager:  manager,
		logger:   logger,
	}
}

// Start serves the routes until ctx is cancelled
func (p *Proxy) Start(ctx context.Context) error {
	server := &http.Server{
		Addr:              p.bindAddr,
		Handler:           p.manager.Get(),
		ReadHeaderTimeout: time.Second * 10,
	}

	stop := context.AfterFunc(ctx, func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		_ = server.Shutdown(shutdownCtx)
	})
	defer stop()

	p.logger.Info("Status service is running", zap.String("address", p.bindAddr))
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		p.logger.Error("Status service is failed", zap.Error(err))
		return err
	}

	return nil
}
