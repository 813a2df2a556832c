package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/jonwraymond/toolcatalog/config"
	"github.com/jonwraymond/toolcatalog/discovery"
	"github.com/jonwraymond/toolcatalog/favorites"
	"github.com/jonwraymond/toolcatalog/registry"
	"github.com/jonwraymond/toolcatalog/search"
	"github.com/jonwraymond/toolcatalog/telemetry"
	"github.com/jonwraymond/toolcatalog/toolconfig"
	"github.com/jonwraymond/toolcatalog/tools"
	"github.com/jonwraymond/toolcatalog/toolstore"
)

// appOptions selects the optional parts a command needs.
type appOptions struct {
	// store opens the tool store even when a remote service is configured.
	store     bool
	favorites bool
	metrics   bool
}

// app is the wired catalog for one command run.
type app struct {
	cfg    config.Config
	logger *zap.Logger

	store     toolstore.Store
	favorites favorites.Store
	metrics   *telemetry.PrometheusMetrics
	gatherer  prometheus.Gatherer
	disc      *discovery.Discovery

	closers []func(context.Context) error
}

func newApp(ctx context.Context, cfg config.Config, logger *zap.Logger, opts appOptions) (*app, error) {
	a := &app{cfg: cfg, logger: logger}

	if opts.metrics && cfg.Observability.Metrics {
		reg := telemetry.NewRegistry()
		a.metrics = telemetry.NewPrometheusMetrics(reg)
		a.gatherer = reg
	}

	if opts.store || cfg.Remote.BaseURL == "" {
		if err := a.openStore(ctx); err != nil {
			_ = a.Close(ctx)
			return nil, err
		}
	}
	if opts.favorites {
		if err := a.openFavorites(); err != nil {
			_ = a.Close(ctx)
			return nil, err
		}
	}

	fetcher, err := a.fetcher()
	if err != nil {
		_ = a.Close(ctx)
		return nil, err
	}

	builderOpts := registry.Options{
		Fetcher: fetcher,
		Modules: tools.Modules(),
		Logger:  logger,
	}
	if a.metrics != nil {
		builderOpts.Metrics = a.metrics
	}
	disc, err := discovery.New(discovery.Options{
		Builder: registry.New(builderOpts),
		BM25Config: search.BM25Config{
			NameBoost:     cfg.Search.NameBoost,
			CategoryBoost: cfg.Search.CategoryBoost,
			MaxDocs:       cfg.Search.MaxDocs,
		},
		Favorites: a.favorites,
		Logger:    logger,
	})
	if err != nil {
		_ = a.Close(ctx)
		return nil, err
	}
	a.disc = disc
	a.closers = append(a.closers, func(context.Context) error { return disc.Close() })
	return a, nil
}

func (a *app) openStore(ctx context.Context) error {
	sc := a.cfg.Store
	switch sc.Driver {
	case config.DriverBolt:
		s, err := toolstore.OpenBoltStore(sc.Path)
		if err != nil {
			return err
		}
		a.store = s
		a.closers = append(a.closers, func(context.Context) error { return s.Close() })
	case config.DriverMongo:
		s, err := toolstore.OpenMongoStore(ctx, toolstore.MongoConfig{
			URI:          sc.Mongo.URI,
			Database:     sc.Mongo.Database,
			Collection:   sc.Mongo.Collection,
			QueryTimeout: sc.Mongo.QueryTimeout,
		})
		if err != nil {
			return err
		}
		a.store = s
		a.closers = append(a.closers, s.Close)
	default:
		a.store = toolstore.NewMemoryStore()
	}

	if sc.Seed != "" {
		records, err := toolstore.LoadSeed(sc.Seed)
		if err != nil {
			return err
		}
		added, err := toolstore.Seed(ctx, a.store, records)
		if err != nil {
			return err
		}
		a.logger.Info("tool store seeded", zap.String("file", sc.Seed), zap.Int("added", added))
	}
	return nil
}

func (a *app) openFavorites() error {
	fc := a.cfg.Favorites
	if fc.Driver == config.DriverBolt {
		s, err := favorites.OpenBoltStore(fc.Path)
		if err != nil {
			return err
		}
		a.favorites = s
		a.closers = append(a.closers, func(context.Context) error { return s.Close() })
		return nil
	}
	a.favorites = favorites.NewMemoryStore()
	return nil
}

// fetcher reads the remote service when one is configured and the local
// store otherwise.
func (a *app) fetcher() (toolconfig.Fetcher, error) {
	var f toolconfig.Fetcher
	rc := a.cfg.Remote
	if rc.BaseURL != "" {
		var cred toolconfig.CredentialSource
		switch {
		case rc.Token != "":
			cred = toolconfig.StaticCredential(rc.Token)
		case rc.TokenEnv != "":
			cred = toolconfig.EnvCredential(rc.TokenEnv)
		}
		client, err := toolconfig.NewClient(toolconfig.Config{
			BaseURL:     rc.BaseURL,
			Credential:  cred,
			Timeout:     rc.Timeout,
			MaxAttempts: rc.MaxAttempts,
			RetryDelay:  rc.RetryDelay,
		})
		if err != nil {
			return nil, err
		}
		f = client
	} else {
		if a.store == nil {
			return nil, errors.New("no remote service and no tool store configured")
		}
		f = toolstore.Fetcher(a.store)
	}
	if a.metrics != nil {
		f = a.metrics.InstrumentFetcher(f)
	}
	return f, nil
}

// Close releases stores and indexes in reverse order of opening.
func (a *app) Close(ctx context.Context) error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](ctx); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	if len(errs) > 0 {
		return fmt.Errorf("close: %w", errors.Join(errs...))
	}
	return nil
}
