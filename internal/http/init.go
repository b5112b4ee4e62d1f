package http

import (
	"context"
	"os/signal"
	"syscall"
	"seo_meta_audit/internal/application/config"
	"seo_meta_audit/internal/pkg/errors"

	"github.com/go-chi/chi/v5"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

type Router struct {
	httpRouter *chi.Mux
	log        *log.Logger
	appCfg     *config.AppConfig
}

func NewRouter(log *log.Logger, appCfg *config.AppConfig) *Router {
	router := &Router{
		httpRouter: chi.NewRouter(),
		log:        log,
		appCfg:     appCfg,
	}
	initRoutes(router)
	return router
}

// Serve runs the audit API and the metrics listener until ctx is done or
// SIGINT/SIGTERM arrives, then shuts both down.
func Serve(ctx context.Context, log *log.Logger, appCfg *config.AppConfig) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := NewHTTPServerConfig()
	if err != nil {
		return errors.Wrap(err, `failed to load http config`)
	}

	router := NewRouter(log, appCfg)
	metricsServer := NewMetricsServer(appCfg.MetricsHost, cfg.Timeouts.ShutdownWait, log)
	httpServer := NewHttpServer(cfg, router.httpRouter, log)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(metricsServer.Start)
	g.Go(httpServer.Start)
	g.Go(func() error {
		<-gctx.Done()
		if err := httpServer.Stop(); err != nil {
			return err
		}
		return metricsServer.Stop()
	})

	return g.Wait()
}
