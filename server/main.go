// server/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/safeharbor/community/forum"
)

var (
	configPath  string
	storageType string
	listenAddr  string

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "safeharbor",
	Short: "SafeHarbor community forum service",
	Long: `SafeHarbor serves the anonymous community forum: thread listing and
creation, replies, and per-session anonymous identities with derived
pseudonyms. Storage is Postgres or in-memory.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		logger, err = zap.NewProduction()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "safeharbor.yaml", "path to config file")
	rootCmd.Flags().StringVar(&storageType, "storage", "", "storage backend (postgres or in-memory), overrides config")
	rootCmd.Flags().StringVar(&listenAddr, "addr", "", "listen address, overrides config")
}

func serve() error {
	cfg, err := forum.LoadConfig(configPath)
	if err != nil {
		return err
	}
	if storageType != "" {
		cfg.Storage = storageType
	}
	if listenAddr != "" {
		cfg.ListenAddr = listenAddr
	}

	logger.Info("starting server",
		zap.String("storage", cfg.Storage),
		zap.String("addr", cfg.ListenAddr),
	)

	var store forum.Store
	if cfg.Storage == "postgres" {
		if cfg.DatabaseURL == "" {
			return errors.New("DATABASE_URL must be set for postgres storage")
		}
		db, err := forum.NewDatabase(cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("could not initialize database: %w", err)
		}
		defer db.Close()
		if err := db.CreateTables(); err != nil {
			return fmt.Errorf("could not create tables: %w", err)
		}
		store = db
	} else {
		store = forum.NewMemStore()
	}

	filter, err := forum.NewContentFilter(cfg.FilterPatterns...)
	if err != nil {
		return err
	}

	lifetime, err := time.ParseDuration(cfg.SessionLifetime)
	if err != nil {
		return fmt.Errorf("bad session_lifetime %q: %w", cfg.SessionLifetime, err)
	}
	session := scs.New()
	session.Lifetime = lifetime
	// Session cookie only: the anonymous id must die with the browsing
	// session.
	session.Cookie.Persist = false

	svc := forum.NewService(store, filter, logger, cfg.PageSize)
	identity := forum.NewIdentityProvider(session)
	handlers := forum.NewHandlers(svc, identity, session, logger, cfg.Throttle)

	srv := &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: session.LoadAndSave(handlers.Routes()),
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("listening", zap.String("addr", cfg.ListenAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
