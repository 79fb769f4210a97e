package http

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Inventario-ledger/internal/application/dto"
	"github.com/jhoicas/Inventario-ledger/internal/application/inventory"
	"github.com/jhoicas/Inventario-ledger/internal/domain/entity"
	domaininv "github.com/jhoicas/Inventario-ledger/internal/domain/inventory"
)

// InventoryHandler maneja ajustes de stock, historial del ledger y migración inicial (protegido).
type InventoryHandler struct {
	ledger    *inventory.Ledger
	migration *inventory.MigrationUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(ledger *inventory.Ledger, migration *inventory.MigrationUseCase) *InventoryHandler {
	return &InventoryHandler{ledger: ledger, migration: migration}
}

// CreateMovement godoc
// @Summary      Registrar un ajuste de inventario
// @Description  Quantity es la magnitud; el tipo decide el signo (MANUAL_ADJUSTMENT respeta el signo enviado).
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateMovementRequest  true  "product_id, type, quantity, reason"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/inventory/movements [post]
func (h *InventoryHandler) CreateMovement(c *fiber.Ctx) error {
	storeID, userID := GetStoreID(c), GetUserID(c)
	if storeID == "" || userID == "" {
		return unauthorized(c)
	}
	var in dto.CreateMovementRequest
	if ok, err := bindJSON(c, &in); !ok {
		return err
	}
	params, err := movementParams(storeID, userID, in)
	if err != nil {
		return badRequest(c, "VALIDATION", "%s", err.Error())
	}
	mov, err := h.ledger.Apply(c.Context(), params)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.FromMovement(mov))
}

// CreateMovementBatch godoc
// @Summary      Registrar varios ajustes en una sola transacción
// @Description  Todo o nada: si una línea falla no se escribe ninguna.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateMovementBatchRequest  true  "movements"
// @Success      201   {array}   dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/inventory/movements/batch [post]
func (h *InventoryHandler) CreateMovementBatch(c *fiber.Ctx) error {
	storeID, userID := GetStoreID(c), GetUserID(c)
	if storeID == "" || userID == "" {
		return unauthorized(c)
	}
	var in dto.CreateMovementBatchRequest
	if ok, err := bindJSON(c, &in); !ok {
		return err
	}
	params := make([]inventory.MovementParams, 0, len(in.Movements))
	for i, m := range in.Movements {
		p, err := movementParams(storeID, userID, m)
		if err != nil {
			return badRequest(c, "VALIDATION", "movements[%d]: %s", i, err.Error())
		}
		params = append(params, p)
	}
	movs, err := h.ledger.ApplyBatch(c.Context(), params)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.FromMovements(movs))
}

// ProductHistory godoc
// @Summary      Historial de movimientos de un producto (más reciente primero)
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id      path   string  true   "ID del producto"
// @Param        limit   query  int     false  "Máximo de registros (1-100, por defecto 20)"
// @Param        offset  query  int     false  "Desplazamiento"
// @Success      200  {object}  dto.MovementListResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/products/{id}/movements [get]
func (h *InventoryHandler) ProductHistory(c *fiber.Ctx) error {
	storeID := GetStoreID(c)
	if storeID == "" {
		return unauthorized(c)
	}
	page := dto.PageRequest{Limit: c.QueryInt("limit"), Offset: c.QueryInt("offset")}
	page.DefaultPage()
	if ok, err := validateStruct(c, &page); !ok {
		return err
	}
	movs, err := h.ledger.ProductHistory(c.Context(), storeID, c.Params("id"), page.Limit, page.Offset)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.MovementListResponse{
		Items: dto.FromMovements(movs),
		Page:  page.Response(),
	})
}

// StockAt godoc
// @Summary      Stock de un producto reconstruido desde el ledger
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id  path   string  true   "ID del producto"
// @Param        at  query  string  false  "Instante RFC3339 (por defecto ahora)"
// @Success      200  {object}  dto.StockAtResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/products/{id}/stock-at [get]
func (h *InventoryHandler) StockAt(c *fiber.Ctx) error {
	storeID := GetStoreID(c)
	if storeID == "" {
		return unauthorized(c)
	}
	at := time.Now().UTC()
	if raw := c.Query("at"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return badRequest(c, "VALIDATION", "at: se espera RFC3339")
		}
		at = t
	}
	productID := c.Params("id")
	stock, err := h.ledger.StockAt(c.Context(), storeID, productID, at)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.StockAtResponse{ProductID: productID, At: at, Stock: stock})
}

// MigrateInitialStock godoc
// @Summary      Abrir el ledger de la tienda con el stock heredado
// @Description  Re-ejecutable: los productos ya migrados se reportan como omitidos.
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  inventory.MigrationResult
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/inventory/migrations/initial-stock [post]
func (h *InventoryHandler) MigrateInitialStock(c *fiber.Ctx) error {
	storeID, userID := GetStoreID(c), GetUserID(c)
	if storeID == "" || userID == "" {
		return unauthorized(c)
	}
	res, err := h.migration.MigrateInitialStock(c.Context(), storeID, userID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(res)
}

// movementParams los tipos del sistema (recepción, migración, venta) no se registran por API.
func movementParams(storeID, userID string, in dto.CreateMovementRequest) (inventory.MovementParams, error) {
	t := entity.MovementType(in.Type)
	if !t.IsValid() {
		return inventory.MovementParams{}, fmt.Errorf("type: tipo de movimiento desconocido %q", in.Type)
	}
	if !domaininv.UserAdjustable(t) {
		return inventory.MovementParams{}, fmt.Errorf("type: %s lo registra el sistema", t)
	}
	return inventory.MovementParams{
		StoreID:     storeID,
		ProductID:   in.ProductID,
		Type:        t,
		Quantity:    in.Quantity,
		Reason:      in.Reason,
		Description: in.Description,
		Cost:        in.Cost,
		ReferenceID: in.ReferenceID,
		CreatedBy:   userID,
	}, nil
}
