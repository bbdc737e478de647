package database

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sangkips/bebidas-pos/internal/config"
	"github.com/sangkips/bebidas-pos/internal/domain/entity"
	"github.com/sangkips/bebidas-pos/pkg/apperror"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const connectHint = "check DB_HOST, DB_PORT, DB_NAME, DB_USER and DB_PASSWORD"

// NewPostgresDB creates a new PostgreSQL database connection
func NewPostgresDB(cfg *config.DatabaseConfig, log *zap.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DSN(),
		PreferSimpleProtocol: true, // disables implicit prepared statement usage
	}), &gorm.Config{
		Logger: logger.Default.LogMode(gormLogLevel(cfg.LogLevel)),
	})
	if err != nil {
		return nil, apperror.NewPersistenceUnavailableError(connectHint, err)
	}

	// Get underlying SQL DB to set connection pool settings
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(ctx); err != nil {
		return nil, apperror.NewPersistenceUnavailableError(connectHint, err)
	}

	log.Info("connected to postgres", zap.String("host", cfg.Host), zap.String("database", cfg.Name))
	return db, nil
}

// Models lists every persisted entity in dependency order
func Models() []interface{} {
	return []interface{}{
		&entity.Product{},
		&entity.Customer{},
		&entity.Supplier{},
		&entity.Order{},
		&entity.OrderLine{},
		&entity.CashRegisterSession{},
		&entity.FiadoReceipt{},
		&entity.LedgerEntry{},
		&entity.Invoice{},
		&entity.InvoiceLine{},
		&entity.StoreSettings{},
		&entity.IdempotencyKey{},
	}
}

// indexStatements complement the indexes declared in struct tags
var indexStatements = []string{
	`DROP INDEX IF EXISTS idx_cash_sessions_open_day`,
	`CREATE INDEX IF NOT EXISTS idx_ledger_entries_cursor ON ledger_entries (occurred_at DESC, id DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_orders_status_created ON orders (status, created_at)`,
	`CREATE INDEX IF NOT EXISTS idx_fiado_receipts_open ON fiado_receipts (due_date) WHERE paid = false`,
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_ledger_entries_fiado_receipt ON ledger_entries (fiado_receipt_id) WHERE fiado_receipt_id IS NOT NULL`,
}

// AutoMigrate installs the schema: tables, constraints and indexes
func AutoMigrate(db *gorm.DB, log *zap.Logger) error {
	log.Info("running database migrations")

	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	for _, stmt := range indexStatements {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("failed to create index: %w", err)
		}
	}

	log.Info("database migrations completed")
	return nil
}

func gormLogLevel(level string) logger.LogLevel {
	switch strings.ToLower(level) {
	case "silent":
		return logger.Silent
	case "error":
		return logger.Error
	case "info", "debug":
		return logger.Info
	default:
		return logger.Warn
	}
}
