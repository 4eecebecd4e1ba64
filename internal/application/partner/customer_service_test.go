package partner

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/bizbooks/backend/internal/domain/partner"
	"github.com/bizbooks/backend/internal/domain/shared"
	"github.com/bizbooks/backend/internal/domain/shared/valueobject"
	"github.com/bizbooks/backend/internal/domain/trade"
	"github.com/bizbooks/backend/internal/infrastructure/persistence"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type partnerServiceDeps struct {
	customers  *CustomerService
	suppliers  *SupplierService
	sales      trade.SalesInvoiceRepository
	quotations trade.QuotationRepository
	purchases  trade.PurchaseInvoiceRepository
}

func newPartnerServiceDeps(t *testing.T) partnerServiceDeps {
	t.Helper()

	zlog := zap.NewNop()
	db, err := persistence.Open(filepath.Join(t.TempDir(), "books.db"), zlog)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, db.Migrate())

	scope := persistence.NewGormTransactionScope(db.DB, zlog)

	return partnerServiceDeps{
		customers:  NewCustomerService(persistence.NewGormCustomerRepository(db.DB, zlog), scope, zlog),
		suppliers:  NewSupplierService(persistence.NewGormSupplierRepository(db.DB, zlog), scope, zlog),
		sales:      persistence.NewGormSalesInvoiceRepository(db.DB, zlog),
		quotations: persistence.NewGormQuotationRepository(db.DB, zlog),
		purchases:  persistence.NewGormPurchaseInvoiceRepository(db.DB, zlog),
	}
}

func strPtr(v string) *string {
	return &v
}

func customLine(name string, amount int64) trade.InvoiceItem {
	return trade.InvoiceItem{
		CustomItemName: name,
		Quantity:       decimal.NewFromInt(1),
		Rate:           decimal.NewFromInt(amount),
	}
}

func TestCustomerService_Create(t *testing.T) {
	deps := newPartnerServiceDeps(t)
	ctx := context.Background()

	t.Run("creates with full contact details", func(t *testing.T) {
		customer, err := deps.customers.Create(ctx, CreateCustomerRequest{
			Name:  "Acme Traders",
			Email: "accounts@acme.example",
			Phone: "+91 98765 43210",
			GSTIN: "27AAPFU0939F1ZV",
			BillingAddress: &valueobject.Address{
				Line1:    "14 Market Road",
				District: "Pune",
				State:    "MH",
			},
		})
		require.NoError(t, err)

		found, err := deps.customers.GetByID(ctx, customer.ID)
		require.NoError(t, err)
		assert.Equal(t, "Acme Traders", found.Name)
		assert.Equal(t, "27AAPFU0939F1ZV", found.GSTIN)
		assert.Equal(t, "Pune", found.BillingAddress.District)
		assert.True(t, found.ShippingAddress.IsEmpty())
	})

	t.Run("rejects bad email", func(t *testing.T) {
		_, err := deps.customers.Create(ctx, CreateCustomerRequest{
			Name:  "Bad Mail",
			Email: "not-an-address",
		})
		require.Error(t, err)
		assert.True(t, errors.Is(err, shared.ErrValidation))
	})

	t.Run("rejects empty name", func(t *testing.T) {
		_, err := deps.customers.Create(ctx, CreateCustomerRequest{})
		require.Error(t, err)
		assert.True(t, errors.Is(err, shared.ErrValidation))
	})
}

func TestCustomerService_Update(t *testing.T) {
	deps := newPartnerServiceDeps(t)
	ctx := context.Background()

	customer, err := deps.customers.Create(ctx, CreateCustomerRequest{
		Name:  "Acme Traders",
		Email: "accounts@acme.example",
		Phone: "123",
	})
	require.NoError(t, err)

	t.Run("merges only provided fields", func(t *testing.T) {
		updated, err := deps.customers.Update(ctx, customer.ID, UpdateCustomerRequest{
			Email: strPtr("billing@acme.example"),
		})
		require.NoError(t, err)
		assert.Equal(t, "billing@acme.example", updated.Email)
		assert.Equal(t, "123", updated.Phone)
		assert.Equal(t, "Acme Traders", updated.Name)
	})

	t.Run("replaces one address, keeps the other", func(t *testing.T) {
		_, err := deps.customers.Update(ctx, customer.ID, UpdateCustomerRequest{
			BillingAddress: &valueobject.Address{Line1: "1 New Street", District: "Mumbai"},
		})
		require.NoError(t, err)

		updated, err := deps.customers.Update(ctx, customer.ID, UpdateCustomerRequest{
			ShippingAddress: &valueobject.Address{Line1: "Warehouse 9", District: "Nashik"},
		})
		require.NoError(t, err)
		assert.Equal(t, "Mumbai", updated.BillingAddress.District)
		assert.Equal(t, "Nashik", updated.ShippingAddress.District)
	})

	t.Run("empty request is a no-op", func(t *testing.T) {
		updated, err := deps.customers.Update(ctx, customer.ID, UpdateCustomerRequest{})
		require.NoError(t, err)
		assert.Equal(t, "billing@acme.example", updated.Email)
	})

	t.Run("unknown customer", func(t *testing.T) {
		_, err := deps.customers.Update(ctx, "cust_missing", UpdateCustomerRequest{Name: strPtr("X")})
		assert.True(t, errors.Is(err, shared.ErrNotFound))
	})
}

func TestCustomerService_Delete(t *testing.T) {
	deps := newPartnerServiceDeps(t)
	ctx := context.Background()
	now := time.Now()

	t.Run("deletes an unreferenced customer", func(t *testing.T) {
		customer, err := deps.customers.Create(ctx, CreateCustomerRequest{Name: "Free Agent"})
		require.NoError(t, err)

		require.NoError(t, deps.customers.Delete(ctx, customer.ID))

		_, err = deps.customers.GetByID(ctx, customer.ID)
		assert.True(t, errors.Is(err, shared.ErrNotFound))
	})

	t.Run("blocked while an invoice references it", func(t *testing.T) {
		customer, err := deps.customers.Create(ctx, CreateCustomerRequest{Name: "Invoiced Co"})
		require.NoError(t, err)

		invoice, err := trade.NewSalesInvoice(customer.ID, now, now.AddDate(0, 0, 30),
			[]trade.InvoiceItem{customLine("Consulting", 5000)})
		require.NoError(t, err)
		require.NoError(t, invoice.SetNumber("INV-2001"))
		require.NoError(t, deps.sales.Save(ctx, invoice))

		err = deps.customers.Delete(ctx, customer.ID)
		require.Error(t, err)
		assert.True(t, errors.Is(err, shared.ErrReferentialConflict))
		assert.Contains(t, err.Error(), "1 invoice(s)")
		assert.Contains(t, err.Error(), "0 quotation(s)")

		_, err = deps.customers.GetByID(ctx, customer.ID)
		require.NoError(t, err, "customer must survive a blocked delete")
	})

	t.Run("blocked while a quotation references it", func(t *testing.T) {
		customer, err := deps.customers.Create(ctx, CreateCustomerRequest{Name: "Quoted Co"})
		require.NoError(t, err)

		quotation, err := trade.NewQuotation(customer.ID, now, now.AddDate(0, 0, 15),
			[]trade.InvoiceItem{customLine("Site survey", 1500)})
		require.NoError(t, err)
		require.NoError(t, quotation.SetNumber("QUO-2001"))
		require.NoError(t, deps.quotations.Save(ctx, quotation))

		err = deps.customers.Delete(ctx, customer.ID)
		require.Error(t, err)
		assert.True(t, errors.Is(err, shared.ErrReferentialConflict))
	})

	t.Run("unknown customer", func(t *testing.T) {
		err := deps.customers.Delete(ctx, "cust_missing")
		assert.True(t, errors.Is(err, shared.ErrNotFound))
	})
}
