package shared

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewID(t *testing.T) {
	id := NewID(PrefixProduct)

	assert.True(t, strings.HasPrefix(id, "prod_"))
	assert.Len(t, id, len("prod_")+26)
	assert.True(t, HasPrefix(id, PrefixProduct))
	assert.False(t, HasPrefix(id, PrefixCustomer))
}

func TestNewIDUnique(t *testing.T) {
	seen := make(map[string]struct{})
	for range 1000 {
		id := NewID(PrefixSalesInvoice)
		_, dup := seen[id]
		require.False(t, dup)
		seen[id] = struct{}{}
	}
}
