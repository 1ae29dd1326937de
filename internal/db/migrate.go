package db

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/diewo77/supplier-demand/internal/config"
	"github.com/diewo77/supplier-demand/internal/models"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// ErrNotReady is returned by CheckReady when the schema is incomplete.
var ErrNotReady = errors.New("database not ready")

// connectAttempts bounds the retry loop that lets postgres finish starting.
const connectAttempts = 5

// Dialector picks the gorm driver for the configured engine.
func Dialector(cfg config.DatabaseConfig) (gorm.Dialector, error) {
	switch cfg.Driver {
	case config.DriverSQLite:
		return sqlite.Open(cfg.Path), nil
	case config.DriverPostgres:
		return postgres.Open(NormalizeDSN(cfg.DSN())), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

// GormConfig is shared by the server and the tests so that driver errors are
// translated (duplicate keys become gorm.ErrDuplicatedKey).
func GormConfig(debug bool) *gorm.Config {
	logLevel := logger.Silent
	if debug {
		logLevel = logger.Info
	}
	return &gorm.Config{
		Logger:         logger.Default.LogMode(logLevel),
		TranslateError: true,
	}
}

// Open connects to the configured database, retrying a few times.
func Open(cfg config.DatabaseConfig, log *zap.Logger) (*gorm.DB, error) {
	dialector, err := Dialector(cfg)
	if err != nil {
		return nil, err
	}
	var gdb *gorm.DB
	for i := 0; i < connectAttempts; i++ {
		gdb, err = gorm.Open(dialector, GormConfig(cfg.Debug))
		if err == nil {
			break
		}
		log.Warn("database connection failed, retrying",
			zap.Int("attempt", i+1), zap.Int("of", connectAttempts), zap.Error(err))
		time.Sleep(2 * time.Second)
	}
	if err != nil {
		return nil, fmt.Errorf("connect %s: %w", cfg.Redacted(), err)
	}
	log.Info("connected to database", zap.String("target", cfg.Redacted()))
	return gdb, nil
}

// Migrate creates or updates every table of the service.
func Migrate(gdb *gorm.DB) error {
	for _, m := range models.All() {
		if err := gdb.AutoMigrate(m); err != nil {
			return fmt.Errorf("automigrate %T: %w", m, err)
		}
	}
	return nil
}

// CheckReady pings the database and verifies the required tables exist. It
// never terminates the process; callers decide what to do with the error.
func CheckReady(ctx context.Context, gdb *gorm.DB) error {
	sqlDB, err := gdb.DB()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNotReady, err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("%w: ping: %v", ErrNotReady, err)
	}
	var missing []string
	m := gdb.WithContext(ctx).Migrator()
	for _, table := range models.RequiredTables {
		if !m.HasTable(table) {
			missing = append(missing, table)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing tables %s", ErrNotReady, strings.Join(missing, ", "))
	}
	return nil
}
