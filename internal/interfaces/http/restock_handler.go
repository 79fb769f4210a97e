package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Inventario-ledger/internal/application/dto"
	"github.com/jhoicas/Inventario-ledger/internal/application/restock"
)

// RestockHandler ciclo de vida y recepción de órdenes de reposición (protegido).
type RestockHandler struct {
	uc *restock.UseCase
}

// NewRestockHandler construye el handler.
func NewRestockHandler(uc *restock.UseCase) *RestockHandler {
	return &RestockHandler{uc: uc}
}

// Create godoc
// @Summary      Crear orden de reposición (DRAFT)
// @Tags         restock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateRestockOrderRequest  true  "supplier_id, shipping_cost, items"
// @Success      201   {object}  dto.RestockOrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/restock-orders [post]
func (h *RestockHandler) Create(c *fiber.Ctx) error {
	storeID, userID := GetStoreID(c), GetUserID(c)
	if storeID == "" || userID == "" {
		return unauthorized(c)
	}
	var in dto.CreateRestockOrderRequest
	if ok, err := bindJSON(c, &in); !ok {
		return err
	}
	out, err := h.uc.Create(c.Context(), storeID, userID, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar órdenes de la tienda (más reciente primero)
// @Tags         restock
// @Security     Bearer
// @Produce      json
// @Param        status  query  string  false  "DRAFT | ORDERED | PARTIALLY_RECEIVED | COMPLETED | CANCELLED"
// @Param        limit   query  int     false  "1-100"
// @Param        offset  query  int     false  "Desplazamiento"
// @Success      200  {object}  dto.RestockOrderListResponse
// @Router       /api/restock-orders [get]
func (h *RestockHandler) List(c *fiber.Ctx) error {
	storeID := GetStoreID(c)
	if storeID == "" {
		return unauthorized(c)
	}
	in := dto.RestockOrderListRequest{
		Status:      c.Query("status"),
		PageRequest: dto.PageRequest{Limit: c.QueryInt("limit"), Offset: c.QueryInt("offset")},
	}
	in.DefaultPage()
	if ok, err := validateStruct(c, &in); !ok {
		return err
	}
	out, err := h.uc.List(c.Context(), storeID, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener orden por ID
// @Tags         restock
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la orden"
// @Success      200  {object}  dto.RestockOrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/restock-orders/{id} [get]
func (h *RestockHandler) GetByID(c *fiber.Ctx) error {
	storeID := GetStoreID(c)
	if storeID == "" {
		return unauthorized(c)
	}
	out, err := h.uc.GetByID(c.Context(), storeID, c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Editar orden en DRAFT
// @Tags         restock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                          true  "ID de la orden"
// @Param        body  body  dto.UpdateRestockOrderRequest   true  "campos a cambiar; items reemplaza todas las líneas"
// @Success      200   {object}  dto.RestockOrderResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/restock-orders/{id} [put]
func (h *RestockHandler) Update(c *fiber.Ctx) error {
	storeID := GetStoreID(c)
	if storeID == "" {
		return unauthorized(c)
	}
	var in dto.UpdateRestockOrderRequest
	if ok, err := bindJSON(c, &in); !ok {
		return err
	}
	out, err := h.uc.UpdateDraft(c.Context(), storeID, c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// MarkOrdered godoc
// @Summary      Enviar la orden al proveedor (DRAFT → ORDERED)
// @Tags         restock
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la orden"
// @Success      200  {object}  dto.RestockOrderResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/restock-orders/{id}/order [post]
func (h *RestockHandler) MarkOrdered(c *fiber.Ctx) error {
	storeID := GetStoreID(c)
	if storeID == "" {
		return unauthorized(c)
	}
	out, err := h.uc.MarkOrdered(c.Context(), storeID, c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Cancel godoc
// @Summary      Cancelar orden (DRAFT u ORDERED)
// @Tags         restock
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la orden"
// @Success      200  {object}  dto.RestockOrderResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/restock-orders/{id}/cancel [post]
func (h *RestockHandler) Cancel(c *fiber.Ctx) error {
	storeID := GetStoreID(c)
	if storeID == "" {
		return unauthorized(c)
	}
	out, err := h.uc.Cancel(c.Context(), storeID, c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar orden (DRAFT o CANCELLED)
// @Tags         restock
// @Security     Bearer
// @Param        id  path  string  true  "ID de la orden"
// @Success      204
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/restock-orders/{id} [delete]
func (h *RestockHandler) Delete(c *fiber.Ctx) error {
	storeID := GetStoreID(c)
	if storeID == "" {
		return unauthorized(c)
	}
	if err := h.uc.Delete(c.Context(), storeID, c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Receive godoc
// @Summary      Recibir mercancía de la orden
// @Description  Genera un RESTOCK_RECEIVED por línea con el costo unitario prorrateado con el flete.
// @Description  Las líneas con item_id desconocido o cantidad no positiva se reportan como omitidas.
// @Tags         restock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                          true  "ID de la orden"
// @Param        body  body  dto.ReceiveRestockOrderRequest  true  "items"
// @Success      200   {object}  dto.ReceiveRestockOrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/restock-orders/{id}/receive [post]
func (h *RestockHandler) Receive(c *fiber.Ctx) error {
	storeID, userID := GetStoreID(c), GetUserID(c)
	if storeID == "" || userID == "" {
		return unauthorized(c)
	}
	var in dto.ReceiveRestockOrderRequest
	if ok, err := bindJSON(c, &in); !ok {
		return err
	}
	lines := make([]restock.ReceiveLine, 0, len(in.Items))
	for _, it := range in.Items {
		lines = append(lines, restock.ReceiveLine{ItemID: it.ItemID, Quantity: it.Quantity, CostOverride: it.Cost})
	}
	res, err := h.uc.Receive(c.Context(), storeID, userID, c.Params("id"), lines)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.ReceiveRestockOrderResponse{
		Order:              dto.FromRestockOrder(res.Order),
		Movements:          dto.FromMovements(res.Movements),
		SkippedItemIDs:     res.SkippedItemIDs,
		SkippedNonPositive: res.SkippedNonPositive,
	})
}

// PDF godoc
// @Summary      Documento PDF de la orden con sus recepciones
// @Tags         restock
// @Security     Bearer
// @Produce      application/pdf
// @Param        id  path  string  true  "ID de la orden"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      501  {object}  dto.ErrorResponse
// @Router       /api/restock-orders/{id}/pdf [get]
func (h *RestockHandler) PDF(c *fiber.Ctx) error {
	storeID := GetStoreID(c)
	if storeID == "" {
		return unauthorized(c)
	}
	id := c.Params("id")
	doc, err := h.uc.RestockOrderPDF(c.Context(), storeID, id)
	if errors.Is(err, restock.ErrDocumentsDisabled) {
		return c.Status(fiber.StatusNotImplemented).JSON(dto.ErrorResponse{Code: "PDF_DISABLED", Message: err.Error()})
	}
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="orden-`+id+`.pdf"`)
	return c.Send(doc)
}
