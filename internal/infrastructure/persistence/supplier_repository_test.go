package persistence

import (
	"context"
	"testing"

	"github.com/bizbooks/backend/internal/domain/partner"
	"github.com/bizbooks/backend/internal/domain/shared"
	"github.com/bizbooks/backend/internal/domain/shared/valueobject"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func mustNewSupplier(t *testing.T, name string) *partner.Supplier {
	t.Helper()
	supplier, err := partner.NewSupplier(name)
	require.NoError(t, err)
	return supplier
}

func TestGormSupplierRepository_SaveAndFind(t *testing.T) {
	db := newTestGorm(t)
	repo := NewGormSupplierRepository(db, zap.NewNop())
	ctx := context.Background()

	supplier := mustNewSupplier(t, "Mehta Metals")
	supplier.SetContact("sales@mehta.example", "022123456")
	supplier.GSTIN = "27AABCM1234A1Z5"
	supplier.SetAddress(valueobject.Address{Line1: "Plot 3, MIDC", State: "Maharashtra"})
	require.NoError(t, repo.Save(ctx, supplier))

	found, err := repo.FindByID(ctx, supplier.ID)
	require.NoError(t, err)
	assert.Equal(t, "Mehta Metals", found.Name)
	assert.Equal(t, "sales@mehta.example", found.Email)
	assert.Equal(t, "Plot 3, MIDC", found.Address.Line1)

	_, err = repo.FindByID(ctx, "supp_missing")
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestGormSupplierRepository_MalformedAddress(t *testing.T) {
	db := newTestGorm(t)
	zlog, logs := newObservedLogger()
	repo := NewGormSupplierRepository(db, zlog)
	ctx := context.Background()

	supplier := mustNewSupplier(t, "Iyer Imports")
	supplier.SetAddress(valueobject.Address{Line1: "Dock 12"})
	require.NoError(t, repo.Save(ctx, supplier))

	require.NoError(t, db.Exec(
		`UPDATE suppliers SET address = ? WHERE id = ?`,
		`[1,2`, supplier.ID,
	).Error)

	found, err := repo.FindByID(ctx, supplier.ID)
	require.NoError(t, err)
	assert.True(t, found.Address.IsEmpty())

	entries := logs.FilterMessage("malformed stored field, using zero value").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "address", entries[0].ContextMap()["field"])
}

func TestGormSupplierRepository_DeleteAndFindAll(t *testing.T) {
	db := newTestGorm(t)
	repo := NewGormSupplierRepository(db, zap.NewNop())
	ctx := context.Background()

	first := mustNewSupplier(t, "First Supplies")
	second := mustNewSupplier(t, "Second Supplies")
	require.NoError(t, repo.Save(ctx, first))
	require.NoError(t, repo.Save(ctx, second))

	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Second Supplies", all[0].Name)

	require.NoError(t, repo.Delete(ctx, first.ID))
	assert.ErrorIs(t, repo.Delete(ctx, first.ID), shared.ErrNotFound)

	all, err = repo.FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}
