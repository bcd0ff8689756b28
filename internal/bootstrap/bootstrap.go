// Package bootstrap assembles the service: configuration, logging, the
// dye catalog, the image pipeline, and the HTTP server, with graceful
// shutdown on SIGINT and SIGTERM.
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"dyelens/internal/domain/catalog"
	"dyelens/internal/domain/eventbus"
	domainimage "dyelens/internal/domain/image"
	"dyelens/internal/domain/palette"
	"dyelens/internal/domain/raster"
	platformconfig "dyelens/internal/platform/config"
	platformerrors "dyelens/internal/platform/errors"
	platformlogging "dyelens/internal/platform/logging"
	httptransport "dyelens/internal/transport/http"
	"dyelens/internal/transport/http/swatch"
)

const shutdownGrace = 10 * time.Second

// Options come from the command line.
type Options struct {
	ConfigPath string
}

type appState struct {
	config  *platformconfig.Config
	logger  *platformlogging.Logger
	bus     *eventbus.Bus
	catalog *catalog.Memory
	service *swatch.Service
	router  *httptransport.Router
}

type initStep struct {
	ID      string
	Execute func(*appState) error
}

// Run starts the whole service lifecycle and blocks until shutdown.
func Run(ctx context.Context, opts Options) error {
	state := &appState{}

	for _, step := range initSteps(opts) {
		if err := step.Execute(state); err != nil {
			var typed *platformerrors.Error
			if errors.As(err, &typed) {
				return err
			}
			return platformerrors.Wrap(platformerrors.KindConfig, step.ID, "bootstrap step failed", err)
		}
		if state.logger != nil {
			state.logger.Debug("bootstrap: %s done", step.ID)
		}
	}
	defer state.logger.Close()

	return serve(ctx, state)
}

func initSteps(opts Options) []initStep {
	return []initStep{
		{ID: "config:load", Execute: func(s *appState) error {
			cfg, err := platformconfig.NewLoader(opts.ConfigPath).Load()
			if err != nil {
				return err
			}
			s.config = cfg
			return nil
		}},
		{ID: "logging:init", Execute: func(s *appState) error {
			logger, err := platformlogging.New(platformlogging.Config{
				Level:    s.config.Log.Level,
				Dir:      s.config.Log.Dir,
				Filename: s.config.Log.File,
			})
			if err != nil {
				return err
			}
			s.logger = logger
			return nil
		}},
		{ID: "eventbus:init", Execute: func(s *appState) error {
			s.bus = eventbus.New()
			logger := s.logger
			s.bus.SubscribeImageRejected(func(ev eventbus.ImageRejected) {
				logger.Info("[EVENT] image rejected: kind=%s url=%s", ev.Kind, ev.URL)
			})
			s.bus.SubscribeMatchCompleted(func(ev eventbus.MatchCompleted) {
				logger.Info("[EVENT] match completed in %s: url=%s dyes=%v", ev.Duration, ev.URL, ev.Colors)
			})
			return nil
		}},
		{ID: "catalog:load", Execute: func(s *appState) error {
			cat, err := catalog.LoadFile(s.config.Catalog.Path)
			if err != nil {
				return err
			}
			s.logger.Info("catalog loaded: %d dyes from %s", cat.Len(), s.config.Catalog.Path)
			s.catalog = cat
			return nil
		}},
		{ID: "service:init", Execute: func(s *appState) error {
			guard := domainimage.NewGuard(s.config.Guard.AllowedHosts)
			fetcher := domainimage.NewFetcher(guard, s.config.Fetch, s.config.Limits.MaxFileSize, s.logger)
			processor := domainimage.NewProcessor(domainimage.NewStdDecoder(), s.logger)

			pipeline, err := domainimage.NewPipeline(domainimage.PipelineOptions{
				Validator:    guard,
				Fetcher:      fetcher,
				Processor:    processor,
				Limits:       domainimage.LimitsFromConfig(s.config.Limits),
				MaxDimension: s.config.Processing.MaxDimension,
				Bus:          s.bus,
				Logger:       s.logger,
			})
			if err != nil {
				return err
			}

			service, err := swatch.NewService(swatch.Dependencies{
				Config:     s.config,
				Logger:     s.logger,
				Pipeline:   pipeline,
				Extractor:  palette.NewProminentExtractor(),
				Matcher:    catalog.NewMatcher(s.catalog, s.config.Catalog.ExcludedCategory, s.logger),
				Catalog:    s.catalog,
				Rasterizer: raster.NewSVGRasterizer(s.config.Raster.Timeout, s.logger),
				Bus:        s.bus,
			})
			if err != nil {
				return err
			}
			s.service = service
			return nil
		}},
		{ID: "http:init", Execute: func(s *appState) error {
			router, err := httptransport.Build(httptransport.Options{
				Config: s.config,
				Logger: s.logger,
			})
			if err != nil {
				return err
			}
			s.service.Register(router.API)
			s.router = router
			return nil
		}},
	}
}

func serve(ctx context.Context, state *appState) error {
	signalCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	addr := fmt.Sprintf("%s:%d", state.config.Server.IP, state.config.Server.Port)
	server := &http.Server{
		Addr:    addr,
		Handler: state.router.Engine,
	}

	group, groupCtx := errgroup.WithContext(signalCtx)

	group.Go(func() error {
		state.logger.Info("http server listening on %s", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return platformerrors.Wrap(platformerrors.KindTransport, "http.serve", "http server failed", err)
		}
		return nil
	})

	group.Go(func() error {
		<-groupCtx.Done()
		state.logger.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return platformerrors.Wrap(platformerrors.KindTransport, "http.shutdown", "graceful shutdown failed", err)
		}
		return nil
	})

	err := group.Wait()

	// Let async event subscribers finish before the logger goes away.
	state.bus.Wait()

	if err != nil {
		return err
	}
	state.logger.Info("server stopped")
	return nil
}
