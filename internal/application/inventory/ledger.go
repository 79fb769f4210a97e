package inventory

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Inventario-ledger/internal/domain"
	"github.com/jhoicas/Inventario-ledger/internal/domain/entity"
	domaininv "github.com/jhoicas/Inventario-ledger/internal/domain/inventory"
	"github.com/jhoicas/Inventario-ledger/pkg/logger"
)

// MovementParams entrada del Ledger Writer.
// Quantity es la magnitud del caller; el tipo decide el signo (ver domain/inventory.NormalizeQuantity).
type MovementParams struct {
	StoreID     string
	ProductID   string
	Type        entity.MovementType
	Quantity    int64
	Reason      string
	Description *string
	Cost        *decimal.Decimal
	ReferenceID *string
	CreatedBy   string
}

// Ledger es el único camino de mutación del stock de un producto.
// Cada movimiento: bloquea la fila del producto, lee previousStock, inserta el movimiento con ambas fotos
// y escribe newStock. Los movimientos nunca se fusionan en un solo delta.
type Ledger struct {
	tx  *Transactor
	log *logger.Logger
	now func() time.Time
}

// LedgerOption configura el Ledger.
type LedgerOption func(*Ledger)

// WithClock reemplaza el reloj (tests).
func WithClock(now func() time.Time) LedgerOption {
	return func(l *Ledger) { l.now = now }
}

// NewLedger construye el Ledger Writer.
func NewLedger(tx *Transactor, log *logger.Logger, opts ...LedgerOption) *Ledger {
	l := &Ledger{tx: tx, log: log.Component("ledger"), now: time.Now}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// CreateMovement aplica un movimiento dentro de la transacción del caller.
func (l *Ledger) CreateMovement(ctx context.Context, tx *Tx, params MovementParams) (*entity.Movement, error) {
	p, err := prepare(params)
	if err != nil {
		return nil, err
	}
	return l.apply(ctx, tx, p)
}

// CreateMovementBatch aplica todos los movimientos o ninguno. Valida el lote completo antes de escribir;
// un error a mitad de lote se devuelve y el TxRunner del caller hace Rollback.
func (l *Ledger) CreateMovementBatch(ctx context.Context, tx *Tx, params []MovementParams) ([]*entity.Movement, error) {
	if len(params) == 0 {
		return nil, domain.NewValidationError("movements", "el lote está vacío")
	}
	prepared := make([]MovementParams, 0, len(params))
	for i, raw := range params {
		p, err := prepare(raw)
		if err != nil {
			return nil, fmt.Errorf("línea %d: %w", i, err)
		}
		prepared = append(prepared, p)
	}
	out := make([]*entity.Movement, 0, len(prepared))
	for i, p := range prepared {
		mov, err := l.apply(ctx, tx, p)
		if err != nil {
			return nil, fmt.Errorf("línea %d: %w", i, err)
		}
		out = append(out, mov)
	}
	return out, nil
}

// Apply abre su propia transacción para un único movimiento.
func (l *Ledger) Apply(ctx context.Context, params MovementParams) (*entity.Movement, error) {
	var mov *entity.Movement
	err := l.tx.Do(ctx, func(tx *Tx) error {
		var err error
		mov, err = l.CreateMovement(ctx, tx, params)
		return err
	})
	if err != nil {
		return nil, err
	}
	return mov, nil
}

// ApplyBatch abre su propia transacción para un lote.
func (l *Ledger) ApplyBatch(ctx context.Context, params []MovementParams) ([]*entity.Movement, error) {
	var movs []*entity.Movement
	err := l.tx.Do(ctx, func(tx *Tx) error {
		var err error
		movs, err = l.CreateMovementBatch(ctx, tx, params)
		return err
	})
	if err != nil {
		l.log.Warn().Err(err).Int("lines", len(params)).Msg("lote de movimientos revertido")
		return nil, err
	}
	return movs, nil
}

// ProductHistory lista los movimientos de un producto (más recientes primero).
func (l *Ledger) ProductHistory(ctx context.Context, storeID, productID string, limit, offset int) ([]*entity.Movement, error) {
	var list []*entity.Movement
	err := l.tx.Do(ctx, func(tx *Tx) error {
		if _, err := storeProduct(ctx, tx, storeID, productID); err != nil {
			return err
		}
		var err error
		list, err = tx.Movements().ListByProduct(ctx, productID, limit, offset)
		return err
	})
	return list, err
}

// StockAt reconstruye el stock de un producto en un instante reproduciendo el ledger en orden de createdAt.
func (l *Ledger) StockAt(ctx context.Context, storeID, productID string, at time.Time) (int64, error) {
	var stock int64
	err := l.tx.Do(ctx, func(tx *Tx) error {
		if _, err := storeProduct(ctx, tx, storeID, productID); err != nil {
			return err
		}
		movs, err := tx.Movements().ListByProductUntil(ctx, productID, at)
		if err != nil {
			return err
		}
		stock = Replay(movs)
		return nil
	})
	return stock, err
}

// Replay suma los movimientos partiendo de la foto previa del primero.
func Replay(movs []*entity.Movement) int64 {
	if len(movs) == 0 {
		return 0
	}
	stock := movs[0].PreviousStock
	for _, m := range movs {
		stock += m.Quantity
	}
	return stock
}

func (l *Ledger) apply(ctx context.Context, tx *Tx, p MovementParams) (*entity.Movement, error) {
	product, err := tx.uow.Products().GetForUpdate(ctx, p.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil || product.StoreID != p.StoreID {
		return nil, fmt.Errorf("producto %s: %w", p.ProductID, domain.ErrNotFound)
	}
	newStock, ok := addStock(product.Stock, p.Quantity)
	if !ok {
		return nil, domain.NewValidationError("quantity", fmt.Sprintf("el stock de %s excede el rango permitido", p.ProductID))
	}

	mov := &entity.Movement{
		ID:            uuid.New().String(),
		StoreID:       p.StoreID,
		ProductID:     p.ProductID,
		Type:          p.Type,
		Quantity:      p.Quantity,
		PreviousStock: product.Stock,
		NewStock:      newStock,
		Reason:        p.Reason,
		Description:   p.Description,
		Cost:          p.Cost,
		ReferenceID:   p.ReferenceID,
		CreatedBy:     p.CreatedBy,
		CreatedAt:     l.now(),
	}
	if err := tx.uow.Movements().Create(ctx, mov); err != nil {
		return nil, err
	}
	if err := tx.uow.Stock().SetStock(ctx, product.ID, mov.NewStock); err != nil {
		return nil, err
	}

	l.log.Debug().
		Str("store_id", mov.StoreID).
		Str("product_id", mov.ProductID).
		Str("type", mov.Type.String()).
		Int64("quantity", mov.Quantity).
		Int64("previous_stock", mov.PreviousStock).
		Int64("new_stock", mov.NewStock).
		Msg("movimiento aplicado")
	return mov, nil
}

// prepare valida y normaliza el signo antes de cualquier escritura.
func prepare(p MovementParams) (MovementParams, error) {
	if !p.Type.IsValid() {
		return p, domain.NewValidationError("type", fmt.Sprintf("tipo de movimiento no reconocido: %q", string(p.Type)))
	}
	if strings.TrimSpace(p.StoreID) == "" {
		return p, domain.NewValidationError("store_id", "requerido")
	}
	if strings.TrimSpace(p.ProductID) == "" {
		return p, domain.NewValidationError("product_id", "requerido")
	}
	p.Reason = strings.TrimSpace(p.Reason)
	if p.Reason == "" {
		return p, domain.NewValidationError("reason", "requerido")
	}
	if p.Quantity == 0 {
		return p, domain.NewValidationError("quantity", "un movimiento de cantidad cero no está permitido")
	}
	if p.Cost != nil && p.Cost.IsNegative() {
		return p, domain.NewValidationError("cost", "no puede ser negativo")
	}
	q, err := domaininv.NormalizeQuantity(p.Type, p.Quantity)
	if err != nil {
		return p, err
	}
	p.Quantity = q
	return p, nil
}

// addStock suma con detección de desbordamiento de int64.
func addStock(stock, qty int64) (int64, bool) {
	if (qty > 0 && stock > math.MaxInt64-qty) || (qty < 0 && stock < math.MinInt64-qty) {
		return 0, false
	}
	return stock + qty, true
}

func storeProduct(ctx context.Context, tx *Tx, storeID, productID string) (*entity.Product, error) {
	product, err := tx.Products().GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil || product.StoreID != storeID {
		return nil, fmt.Errorf("producto %s: %w", productID, domain.ErrNotFound)
	}
	return product, nil
}
