package entity

// Supplier proveedor de una tienda (catálogo externo, solo lectura para este motor).
type Supplier struct {
	ID      string
	StoreID string
	Name    string
	TaxID   string
	Email   string
}
