package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	graphql "github.com/graph-gophers/graphql-go"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/graph-gophers/gamereviews/internal/config"
	"github.com/graph-gophers/gamereviews/internal/logging"
	"github.com/graph-gophers/gamereviews/internal/metrics"
	"github.com/graph-gophers/gamereviews/internal/resolver"
	"github.com/graph-gophers/gamereviews/internal/server"
	"github.com/graph-gophers/gamereviews/internal/store"
	"github.com/graph-gophers/gamereviews/internal/store/memory"
	"github.com/graph-gophers/gamereviews/internal/store/sqlite"
	"github.com/graph-gophers/gamereviews/internal/tracing"
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if err := applyFlags(cmd, &cfg); err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return serve(ctx, cfg, cmd.ErrOrStderr())
		},
	}

	f := cmd.Flags()
	f.String("addr", "", "listen address (env ADDR)")
	f.String("store", "", "store backend: memory or sqlite (env STORE_BACKEND)")
	f.String("sqlite-path", "", "sqlite database file (env SQLITE_PATH)")
	f.String("log-level", "", "log level (env LOG_LEVEL)")
	f.Bool("seed", true, "load the sample data set into an empty store (env SEED)")
	f.String("tracer", "", "tracer: none, opentracing or otel (env TRACER)")
	return cmd
}

// applyFlags overrides cfg with the flags set on the command line.
func applyFlags(cmd *cobra.Command, cfg *config.Config) error {
	f := cmd.Flags()
	str := func(name string, dst *string) {
		if f.Changed(name) {
			*dst, _ = f.GetString(name)
		}
	}
	str("addr", &cfg.Addr)
	str("store", &cfg.StoreBackend)
	str("sqlite-path", &cfg.SQLitePath)
	str("log-level", &cfg.LogLevel)
	str("tracer", &cfg.Tracer)
	if f.Changed("seed") {
		cfg.Seed, _ = f.GetBool("seed")
	}
	return cfg.Validate()
}

func serve(ctx context.Context, cfg config.Config, logOut io.Writer) error {
	log := logging.New(logOut, cfg.LogLevel).WithField("service", cfg.ServiceName)

	st, closeStore, err := openStore(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeStore()

	traceOpts, shutdownTracing, err := tracing.Setup(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			log.WithError(err).Warn("tracing shutdown")
		}
	}()

	mc := metrics.NewCollector(cfg.ServiceName)
	schemaOpts := append([]graphql.SchemaOpt{
		graphql.MaxParallelism(cfg.MaxParallelism),
		graphql.MaxDepth(cfg.MaxDepth),
		graphql.Logger(&logging.PanicLogger{Log: log}),
	}, traceOpts...)
	schema, err := resolver.NewSchema(
		metrics.InstrumentStore(st, mc),
		[]resolver.Option{resolver.WithLogger(log)},
		schemaOpts...,
	)
	if err != nil {
		return fmt.Errorf("parse schema: %w", err)
	}

	srv, err := server.New(server.Config{
		Addr:            cfg.Addr,
		ServiceName:     cfg.ServiceName,
		ShutdownTimeout: cfg.ShutdownTimeout,
	}, schema, mc, log)
	if err != nil {
		return err
	}
	return srv.Run(ctx)
}

func openStore(ctx context.Context, cfg config.Config, log logrus.FieldLogger) (store.Store, func(), error) {
	switch cfg.StoreBackend {
	case config.BackendSQLite:
		s, err := sqlite.Open(ctx, cfg.SQLitePath, store.NewKSUID)
		if err != nil {
			return nil, nil, err
		}
		if cfg.Seed {
			seeded, err := s.Seed(ctx, store.Sample)
			if err != nil {
				_ = s.Close()
				return nil, nil, fmt.Errorf("seed sqlite store: %w", err)
			}
			log.WithField("seeded", seeded).Info("sqlite store opened")
		}
		return s, func() { _ = s.Close() }, nil
	default:
		opts := []memory.Option{memory.WithIDGenerator(store.NewKSUID)}
		if cfg.Seed {
			opts = append(opts, memory.WithSeed(store.Sample))
		}
		s := memory.New(opts...)
		authors, games, reviews := s.Len()
		log.WithFields(logging.Fields{
			"authors": authors,
			"games":   games,
			"reviews": reviews,
		}).Info("memory store ready")
		return s, func() {}, nil
	}
}
