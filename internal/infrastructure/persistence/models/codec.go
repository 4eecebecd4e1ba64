package models

import (
	"encoding/json"

	"github.com/bizbooks/backend/internal/domain/shared/valueobject"
	"github.com/bizbooks/backend/internal/domain/trade"
)

// FieldError reports a stored JSON column that could not be decoded. The
// owning record is still returned, with the field reset to its zero value.
type FieldError struct {
	Field string
	Err   error
}

func encodeAddress(a valueobject.Address) string {
	b, _ := json.Marshal(a)
	return string(b)
}

func decodeAddress(raw string) (valueobject.Address, error) {
	if raw == "" {
		return valueobject.EmptyAddress(), nil
	}
	var a valueobject.Address
	if err := json.Unmarshal([]byte(raw), &a); err != nil {
		return valueobject.EmptyAddress(), err
	}
	return a, nil
}

func encodeItems(items []trade.InvoiceItem) string {
	if items == nil {
		items = []trade.InvoiceItem{}
	}
	b, _ := json.Marshal(items)
	return string(b)
}

func decodeItems(raw string) ([]trade.InvoiceItem, error) {
	if raw == "" {
		return []trade.InvoiceItem{}, nil
	}
	var items []trade.InvoiceItem
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return []trade.InvoiceItem{}, err
	}
	if items == nil {
		items = []trade.InvoiceItem{}
	}
	return items, nil
}
