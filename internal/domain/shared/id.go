package shared

import (
	"strings"

	"github.com/oklog/ulid/v2"
)

// IDPrefix marks the entity type inside a store-assigned identifier.
type IDPrefix string

// Identifier prefixes, one per entity type. Part of the persisted format.
const (
	PrefixProduct         IDPrefix = "prod"
	PrefixCustomer        IDPrefix = "cust"
	PrefixSupplier        IDPrefix = "supp"
	PrefixSalesInvoice    IDPrefix = "sinv"
	PrefixQuotation       IDPrefix = "quot"
	PrefixPurchaseInvoice IDPrefix = "pinv"
	PrefixStockAdjustment IDPrefix = "stka"
)

// NewID returns a store-assigned identifier: the entity-type prefix joined to
// a ULID. Identifiers are opaque to callers, unique for the store lifetime,
// and order lexicographically by creation time. A collision would surface as
// a primary key violation on insert and never touches other rows.
func NewID(prefix IDPrefix) string {
	return string(prefix) + "_" + ulid.Make().String()
}

// HasPrefix reports whether id carries the given entity-type prefix.
func HasPrefix(id string, prefix IDPrefix) bool {
	return strings.HasPrefix(id, string(prefix)+"_")
}
