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

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/diewo77/supplier-demand/internal/db"
	"github.com/diewo77/supplier-demand/internal/server"
)

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		envFile     string
		migrateOnly bool
		seedOnly    bool
	)
	root := &cobra.Command{
		Use:          "supplier-demand",
		Short:        "Supplier demand forecast service",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return loadEnv(envFile, cmd.Flags().Changed("env-file"))
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := bootstrap()
			if err != nil {
				return err
			}
			defer a.close()
			switch {
			case migrateOnly:
				return a.migrate()
			case seedOnly:
				return a.seed()
			}
			return serve(cmd.Context(), a)
		},
	}
	root.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file loaded before reading the environment")
	root.Flags().BoolVar(&migrateOnly, "migrate-only", false, "Run DB migrations and exit")
	root.Flags().BoolVar(&seedOnly, "seed-only", false, "Run DB seed and exit")

	root.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "Run the HTTP server",
			RunE: func(cmd *cobra.Command, _ []string) error {
				a, err := bootstrap()
				if err != nil {
					return err
				}
				defer a.close()
				return serve(cmd.Context(), a)
			},
		},
		newMigrateCmd(),
		newSeedCmd(),
		newCheckCmd(),
	)
	return root
}

// loadEnv reads the dotenv file. A missing default file is fine; a missing
// file named explicitly is an error.
func loadEnv(path string, explicit bool) error {
	if err := godotenv.Load(path); err != nil {
		if explicit || !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("load %s: %w", path, err)
		}
	}
	return nil
}

// serve runs the HTTP server until ctx is cancelled or SIGINT/SIGTERM arrives.
func serve(ctx context.Context, a *app) error {
	cfg := a.cfg
	if cfg.App.Migrations {
		if err := a.migrate(); err != nil {
			return err
		}
	}
	if err := db.CheckReady(ctx, a.db); err != nil {
		a.log.Error("database validation failed", zap.Error(err))
		return err
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      server.New(a.db, server.Options{Logger: a.log, CORSOrigins: cfg.Server.CORSAllowedOrigins}),
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		a.log.Info("server starting", zap.String("port", cfg.Server.Port), zap.Bool("dev", cfg.App.Dev))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}
	a.log.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	a.log.Info("server stopped gracefully")
	return nil
}
