package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"eventhire/internal/broker"
	"eventhire/internal/config"
	"eventhire/internal/database"
	"eventhire/internal/logging"
	"eventhire/internal/modules/live"
	"eventhire/internal/notification"
)

var (
	configPath string

	cfg    *config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "eventhire",
	Short: "Event rental back office API",
	Long: `eventhire serves the booking calendar, the warehouse availability views,
quotes and monthly statistics for an event rental company.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}
		logger, err = logging.New(cfg.AppEnv, cfg.Logging)
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return serve(ctx)
	},
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := database.Connect(cfg.Database.URL, logger)
		if err != nil {
			return err
		}
		if err := database.Migrate(cmd.Context(), db); err != nil {
			return err
		}
		logger.Info("schema migrated")
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "config.yaml", "Path to the YAML config file")
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func serve(ctx context.Context) error {
	db, err := openDatabase(ctx)
	if err != nil {
		return err
	}

	hub := live.NewHub(logger)
	defer hub.Close()

	publishers := notification.Fanout{hub}
	if cfg.Broker.Enabled() {
		client := broker.NewClient(cfg.Broker, logger)
		if err := client.Connect(); err != nil {
			return fmt.Errorf("broker: %w", err)
		}
		defer func() {
			if err := client.Close(); err != nil {
				logger.Warn("broker close failed", zap.Error(err))
			}
		}()
		publishers = append(publishers,
			broker.NewPublisher(client, cfg.Broker.Exchange, cfg.Broker.RetryCount, cfg.Broker.RetryDelay, logger))
	}

	srv := &http.Server{
		Addr:    cfg.HTTP.Addr,
		Handler: newRouter(cfg, db, hub, publishers, logger),
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", zap.String("addr", cfg.HTTP.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down", zap.Duration("timeout", cfg.HTTP.ShutdownTimeout))
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func openDatabase(ctx context.Context) (*gorm.DB, error) {
	db, err := database.Connect(cfg.Database.URL, logger)
	if err != nil {
		return nil, err
	}
	if cfg.Database.AutoMigrate {
		if err := database.Migrate(ctx, db); err != nil {
			return nil, err
		}
	}
	return db, nil
}
