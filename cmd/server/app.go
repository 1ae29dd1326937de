package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/diewo77/supplier-demand/internal/config"
	"github.com/diewo77/supplier-demand/internal/db"
	"github.com/diewo77/supplier-demand/internal/logging"
)

// app bundles what every command needs: configuration, logger and pool.
type app struct {
	cfg *config.Config
	log *zap.Logger
	db  *gorm.DB
}

// bootstrap loads configuration from the environment and connects to the
// database.
func bootstrap() (*app, error) {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	log, err := logging.New(cfg.App.Dev, cfg.App.LogLevel)
	if err != nil {
		return nil, err
	}
	gdb, err := db.Open(cfg.Database, log)
	if err != nil {
		log.Error("failed to connect to database", zap.Error(err))
		_ = log.Sync()
		return nil, err
	}
	return &app{cfg: cfg, log: log, db: gdb}, nil
}

func (a *app) close() {
	if sqlDB, err := a.db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	_ = a.log.Sync()
}

func (a *app) migrate() error {
	if err := db.Migrate(a.db); err != nil {
		a.log.Error("migration failed", zap.Error(err))
		return err
	}
	a.log.Info("migrations completed")
	return nil
}

func (a *app) seed() error {
	if err := db.Seed(a.db); err != nil {
		a.log.Error("seeding failed", zap.Error(err))
		return err
	}
	a.log.Info("seeding completed")
	return nil
}

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database tables and exit",
		RunE: func(*cobra.Command, []string) error {
			a, err := bootstrap()
			if err != nil {
				return err
			}
			defer a.close()
			return a.migrate()
		},
	}
}

func newSeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Insert the demo suppliers, allocations and forecasts and exit",
		RunE: func(*cobra.Command, []string) error {
			a, err := bootstrap()
			if err != nil {
				return err
			}
			defer a.close()
			return a.seed()
		},
	}
}

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Verify the database is reachable and has every required table",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := bootstrap()
			if err != nil {
				return err
			}
			defer a.close()
			if err := db.CheckReady(cmd.Context(), a.db); err != nil {
				a.log.Error("database validation failed", zap.Error(err))
				return err
			}
			a.log.Info("database ready", zap.String("target", a.cfg.Database.Redacted()))
			return nil
		},
	}
}
