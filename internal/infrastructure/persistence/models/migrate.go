package models

// All returns every persistence model, in migration order.
func All() []any {
	return []any{
		&ProductModel{},
		&CustomerModel{},
		&SupplierModel{},
		&SalesInvoiceModel{},
		&QuotationModel{},
		&PurchaseInvoiceModel{},
		&StockAdjustmentModel{},
		&SettingModel{},
	}
}
