package main

import (
	"context"

	"go.uber.org/zap"

	"github.com/sangkips/bebidas-pos/internal/config"
	domainRepo "github.com/sangkips/bebidas-pos/internal/domain/repository"
	"github.com/sangkips/bebidas-pos/internal/infrastructure/database"
	"github.com/sangkips/bebidas-pos/internal/infrastructure/memory"
	"github.com/sangkips/bebidas-pos/internal/infrastructure/repository"
)

// repositories bundles one storage backend
type repositories struct {
	tx          domainRepo.Transactor
	products    domainRepo.ProductRepository
	orders      domainRepo.OrderRepository
	customers   domainRepo.CustomerRepository
	suppliers   domainRepo.SupplierRepository
	ledger      domainRepo.LedgerRepository
	sessions    domainRepo.CashSessionRepository
	invoices    domainRepo.InvoiceRepository
	fiado       domainRepo.FiadoRepository
	reports     domainRepo.ReportRepository
	settings    domainRepo.SettingsRepository
	idempotency domainRepo.IdempotencyRepository

	ping  func(ctx context.Context) error
	close func() error
}

// openStorage connects the backend selected by STORAGE_DRIVER
func openStorage(cfg *config.Config, log *zap.Logger) (*repositories, error) {
	if cfg.App.Storage == config.StorageMemory {
		log.Warn("using in-memory storage, data is lost on restart")
		store := memory.NewSeeded()
		return &repositories{
			tx:          store,
			products:    memory.NewProductRepository(store),
			orders:      memory.NewOrderRepository(store),
			customers:   memory.NewCustomerRepository(store),
			suppliers:   memory.NewSupplierRepository(store),
			ledger:      memory.NewLedgerRepository(store),
			sessions:    memory.NewCashSessionRepository(store),
			invoices:    memory.NewInvoiceRepository(store),
			fiado:       memory.NewFiadoRepository(store),
			reports:     memory.NewReportRepository(store),
			settings:    memory.NewSettingsRepository(store),
			idempotency: memory.NewIdempotencyRepository(store),
			ping:        func(context.Context) error { return nil },
			close:       func() error { return nil },
		}, nil
	}

	db, err := database.NewPostgresDB(&cfg.Database, log)
	if err != nil {
		return nil, err
	}
	if cfg.Database.AutoMigrate {
		if err := database.AutoMigrate(db, log); err != nil {
			return nil, err
		}
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	return &repositories{
		tx:          database.NewTransactor(db),
		products:    repository.NewProductRepository(db),
		orders:      repository.NewOrderRepository(db),
		customers:   repository.NewCustomerRepository(db),
		suppliers:   repository.NewSupplierRepository(db),
		ledger:      repository.NewLedgerRepository(db),
		sessions:    repository.NewCashSessionRepository(db),
		invoices:    repository.NewInvoiceRepository(db),
		fiado:       repository.NewFiadoRepository(db),
		reports:     repository.NewReportRepository(db),
		settings:    repository.NewSettingsRepository(db),
		idempotency: repository.NewIdempotencyRepository(db),
		ping:        sqlDB.PingContext,
		close:       sqlDB.Close,
	}, nil
}
