package restock

import (
	"context"
	"errors"

	"github.com/jhoicas/Inventario-ledger/internal/application/inventory"
	"github.com/jhoicas/Inventario-ledger/internal/domain/entity"
)

// ErrDocumentsDisabled no hay generador de documentos configurado.
var ErrDocumentsDisabled = errors.New("generación de documentos no configurada")

// OrderDocument datos de la orden para su representación impresa.
type OrderDocument struct {
	Order        *entity.RestockOrder
	Supplier     *entity.Supplier // nil si el proveedor ya no existe
	ProductNames map[string]string
	Receipts     []*entity.Movement // RESTOCK_RECEIVED con reference_id = orden
}

// OrderDocumentGenerator genera el PDF de una orden de reposición.
type OrderDocumentGenerator interface {
	GenerateRestockOrderPDF(ctx context.Context, doc OrderDocument) ([]byte, error)
}

// RestockOrderPDF genera el documento de la orden con el detalle de recepciones.
func (uc *UseCase) RestockOrderPDF(ctx context.Context, storeID, orderID string) ([]byte, error) {
	if uc.docs == nil {
		return nil, ErrDocumentsDisabled
	}
	doc := OrderDocument{ProductNames: map[string]string{}}
	err := uc.tx.Do(ctx, func(tx *inventory.Tx) error {
		order, err := findOrder(ctx, tx, storeID, orderID)
		if err != nil {
			return err
		}
		doc.Order = order
		if doc.Supplier, err = tx.Suppliers().GetByID(ctx, order.SupplierID); err != nil {
			return err
		}
		for _, it := range order.Items {
			if _, ok := doc.ProductNames[it.ProductID]; ok {
				continue
			}
			p, err := tx.Products().GetByID(ctx, it.ProductID)
			if err != nil {
				return err
			}
			if p != nil {
				doc.ProductNames[it.ProductID] = p.Name
			}
		}
		doc.Receipts, err = tx.Movements().ListByReference(ctx, order.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return uc.docs.GenerateRestockOrderPDF(ctx, doc)
}
