// Package snapshot moves whole-store images between the working database
// and the durable blob holder.
package snapshot

import (
	"context"
	"fmt"

	"github.com/bizbooks/backend/internal/infrastructure/blob"
	"github.com/bizbooks/backend/internal/infrastructure/persistence"
	"go.uber.org/zap"
)

// Service serializes the database and keeps the holder's fixed key current.
// It is rebuilt whenever the working database is reopened, since it holds
// the live handle.
type Service struct {
	db     *persistence.Database
	holder blob.Store
	key    string
	logger *zap.Logger
}

// NewService creates a snapshot service over an open database
func NewService(db *persistence.Database, holder blob.Store, key string, logger *zap.Logger) *Service {
	return &Service{
		db:     db,
		holder: holder,
		key:    key,
		logger: logger,
	}
}

// Export serializes the whole store into one portable image
func (s *Service) Export(ctx context.Context) ([]byte, error) {
	return s.db.Serialize(ctx)
}

// Persist writes the current state to the holder. The holder value is the
// durable copy; until Persist returns, the latest mutation is not safe.
func (s *Service) Persist(ctx context.Context) error {
	data, err := s.db.Serialize(ctx)
	if err != nil {
		return fmt.Errorf("failed to serialize for persist: %w", err)
	}

	if err := s.holder.Put(ctx, s.key, data); err != nil {
		return fmt.Errorf("failed to write snapshot to holder: %w", err)
	}

	s.logger.Debug("snapshot persisted",
		zap.String("key", s.key),
		zap.Int("bytes", len(data)),
	)
	return nil
}

// HasDurable reports whether the holder already carries a snapshot
func (s *Service) HasDurable(ctx context.Context) (bool, error) {
	return s.holder.Exists(ctx, s.key)
}

// FetchDurable returns the holder's current snapshot
func (s *Service) FetchDurable(ctx context.Context) ([]byte, error) {
	data, err := s.holder.Get(ctx, s.key)
	if err != nil {
		return nil, err
	}
	if err := persistence.ValidateSnapshot(data); err != nil {
		return nil, err
	}
	return data, nil
}
