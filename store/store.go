// Package store exposes the embedded records store behind a single handle.
// One process opens one Store over one working database file; every
// mutation is made durable before it returns, with the blob holder (not
// the working file) acting as the source of truth across restarts.
package store

import (
	"context"
	"fmt"
	"os"
	"sync"

	catalogapp "github.com/bizbooks/backend/internal/application/catalog"
	invapp "github.com/bizbooks/backend/internal/application/inventory"
	partnerapp "github.com/bizbooks/backend/internal/application/partner"
	settingsapp "github.com/bizbooks/backend/internal/application/settings"
	"github.com/bizbooks/backend/internal/application/snapshot"
	tradeapp "github.com/bizbooks/backend/internal/application/trade"
	"github.com/bizbooks/backend/internal/domain/shared"
	"github.com/bizbooks/backend/internal/infrastructure/blob"
	"github.com/bizbooks/backend/internal/infrastructure/config"
	"github.com/bizbooks/backend/internal/infrastructure/logger"
	"github.com/bizbooks/backend/internal/infrastructure/persistence"
	"go.uber.org/zap"
)

// Store is the single handle over the records database. All operations are
// serialized behind one mutex: the working database has exactly one
// connection, and a mutation is not complete until its snapshot landed in
// the holder.
type Store struct {
	mu     sync.Mutex
	cfg    *config.Config
	logger *zap.Logger
	holder blob.Store

	db   *persistence.Database
	snap *snapshot.Service

	products  *catalogapp.ProductService
	customers *partnerapp.CustomerService
	suppliers *partnerapp.SupplierService
	sales     *tradeapp.SalesInvoiceService
	quotes    *tradeapp.QuotationService
	purchases *tradeapp.PurchaseInvoiceService
	stock     *invapp.StockService
	settings  *settingsapp.SettingsService

	closed bool
}

type options struct {
	logger *zap.Logger
	holder blob.Store
}

// Option configures Open
type Option func(*options)

// WithLogger replaces the logger built from the configuration
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithHolder replaces the snapshot holder built from the configuration
func WithHolder(h blob.Store) Option {
	return func(o *options) {
		o.holder = h
	}
}

// Open builds the store from cfg. When the holder already carries a
// snapshot, the working database is recreated from it, discarding whatever
// the working file contained; otherwise a fresh database is created,
// migrated, and persisted as the first snapshot. A nil cfg uses built-in
// defaults.
func Open(cfg *config.Config, opts ...Option) (*Store, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	config.ApplyDefaults(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var o options
	for _, opt := range opts {
		opt(&o)
	}

	zlog := o.logger
	if zlog == nil {
		var err error
		zlog, err = logger.New(&logger.Config{
			Level:  cfg.Log.Level,
			Format: cfg.Log.Format,
			Output: cfg.Log.Output,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to build logger: %w", err)
		}
	}

	holder := o.holder
	if holder == nil {
		var err error
		holder, err = newHolder(cfg, zlog)
		if err != nil {
			return nil, err
		}
	}

	if err := os.MkdirAll(cfg.Store.DataDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	s := &Store{
		cfg:    cfg,
		logger: zlog,
		holder: holder,
	}

	ctx := context.Background()
	restored, err := holder.Exists(ctx, cfg.Snapshot.Key)
	if err != nil {
		return nil, fmt.Errorf("failed to probe snapshot holder: %w", err)
	}
	if restored {
		data, err := holder.Get(ctx, cfg.Snapshot.Key)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch durable snapshot: %w", err)
		}
		if err := persistence.ValidateSnapshot(data); err != nil {
			return nil, err
		}
		if err := persistence.ReplaceDatabaseFile(cfg.DatabasePath(), data); err != nil {
			return nil, err
		}
	}

	if err := s.openDatabase(); err != nil {
		return nil, err
	}

	if !restored {
		if err := s.snap.Persist(ctx); err != nil {
			_ = s.db.Close()
			return nil, fmt.Errorf("failed to write initial snapshot: %w", err)
		}
	}

	zlog.Info("store opened",
		zap.String("database", cfg.DatabasePath()),
		zap.String("holder", cfg.Snapshot.Holder),
		zap.Bool("restored_from_snapshot", restored),
	)
	return s, nil
}

// Close releases the database. The holder already carries the last
// successful mutation, so there is nothing left to flush.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true

	s.logger.Info("store closed")
	return s.db.Close()
}

// ExportSnapshot serializes the current state into one portable image
func (s *Store) ExportSnapshot(ctx context.Context) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureOpen(); err != nil {
		return nil, err
	}
	return s.snap.Export(ctx)
}

// ImportSnapshot replaces the entire store with data. Nothing is merged:
// records absent from the image are gone afterwards. The image becomes the
// new durable snapshot before the call returns.
func (s *Store) ImportSnapshot(ctx context.Context, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureOpen(); err != nil {
		return err
	}
	if err := persistence.ValidateSnapshot(data); err != nil {
		return err
	}

	if err := s.db.Close(); err != nil {
		return fmt.Errorf("failed to detach working database: %w", err)
	}

	// The rename either fully replaces the working file or leaves the old
	// one in place, so reopening is valid on both paths.
	replaceErr := persistence.ReplaceDatabaseFile(s.cfg.DatabasePath(), data)
	if err := s.openDatabase(); err != nil {
		return err
	}
	if replaceErr != nil {
		return replaceErr
	}

	s.logger.Info("snapshot imported", zap.Int("bytes", len(data)))
	return s.persistLocked(ctx)
}

func newHolder(cfg *config.Config, zlog *zap.Logger) (blob.Store, error) {
	switch cfg.Snapshot.Holder {
	case "file":
		return blob.NewFileStore(cfg.Snapshot.File.Dir)
	case "s3":
		s3store, err := blob.NewS3Store(&cfg.Snapshot.S3, blob.WithLogger(zlog))
		if err != nil {
			return nil, err
		}
		if err := s3store.EnsureBucket(context.Background()); err != nil {
			return nil, err
		}
		return s3store, nil
	default:
		return nil, fmt.Errorf("unknown snapshot holder %q", cfg.Snapshot.Holder)
	}
}

// openDatabase (re)opens the working file and rebuilds every service over
// the new handle. Called at Open, after an import, and after a restore.
func (s *Store) openDatabase() error {
	db, err := persistence.Open(s.cfg.DatabasePath(), s.logger)
	if err != nil {
		return err
	}
	if err := db.Migrate(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	s.db = db
	s.snap = snapshot.NewService(db, s.holder, s.cfg.Snapshot.Key, s.logger)

	scope := persistence.NewGormTransactionScope(db.DB, s.logger)
	s.products = catalogapp.NewProductService(persistence.NewGormProductRepository(db.DB), scope, s.logger)
	s.customers = partnerapp.NewCustomerService(persistence.NewGormCustomerRepository(db.DB, s.logger), scope, s.logger)
	s.suppliers = partnerapp.NewSupplierService(persistence.NewGormSupplierRepository(db.DB, s.logger), scope, s.logger)
	s.sales = tradeapp.NewSalesInvoiceService(persistence.NewGormSalesInvoiceRepository(db.DB, s.logger), scope, s.logger)
	s.quotes = tradeapp.NewQuotationService(persistence.NewGormQuotationRepository(db.DB, s.logger), scope, s.logger)
	s.purchases = tradeapp.NewPurchaseInvoiceService(persistence.NewGormPurchaseInvoiceRepository(db.DB, s.logger), scope, s.logger)
	s.stock = invapp.NewStockService(persistence.NewGormStockAdjustmentRepository(db.DB), scope, s.logger)
	s.settings = settingsapp.NewSettingsService(persistence.NewGormSettingsRepository(db.DB), s.logger)
	return nil
}

func (s *Store) ensureOpen() error {
	if s.closed {
		return shared.NewDomainError("INVALID_STATE", "Store is closed")
	}
	return nil
}

// read runs fn under the store lock without persisting afterwards
func (s *Store) read(fn func() error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureOpen(); err != nil {
		return err
	}
	return fn()
}

// mutate runs fn under the store lock and, when it succeeds, persists the
// new state to the holder before returning.
func (s *Store) mutate(ctx context.Context, fn func() error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureOpen(); err != nil {
		return err
	}
	if err := fn(); err != nil {
		return err
	}
	return s.persistLocked(ctx)
}

// persistLocked pushes the current state to the holder. If that fails the
// working database is rolled back to the holder's last good snapshot, so
// memory never runs ahead of the durable copy.
func (s *Store) persistLocked(ctx context.Context) error {
	err := s.snap.Persist(ctx)
	if err == nil {
		return nil
	}

	s.logger.Error("snapshot persist failed, restoring last durable state", zap.Error(err))
	if restoreErr := s.restoreLocked(ctx); restoreErr != nil {
		s.logger.Error("restore after failed persist also failed", zap.Error(restoreErr))
	}
	return shared.NewDomainError("PERSISTENCE_FAILURE",
		fmt.Sprintf("Durable snapshot write failed: %v", err))
}

func (s *Store) restoreLocked(ctx context.Context) error {
	data, err := s.snap.FetchDurable(ctx)
	if err != nil {
		return err
	}
	if err := s.db.Close(); err != nil {
		return err
	}
	if err := persistence.ReplaceDatabaseFile(s.cfg.DatabasePath(), data); err != nil {
		return err
	}
	return s.openDatabase()
}
