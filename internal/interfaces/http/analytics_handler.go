package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Inventario-ledger/internal/application/analytics"
	"github.com/jhoicas/Inventario-ledger/internal/application/dto"
)

// AnalyticsHandler reclasificación ABC bajo demanda (protegido, solo admin).
type AnalyticsHandler struct {
	abc *analytics.AbcUseCase
}

// NewAnalyticsHandler construye el handler.
func NewAnalyticsHandler(abc *analytics.AbcUseCase) *AnalyticsHandler {
	return &AnalyticsHandler{abc: abc}
}

// RecomputeAbc godoc
// @Summary      Recalcular la clasificación ABC de la tienda
// @Tags         analytics
// @Security     Bearer
// @Produce      json
// @Param        lookback_days  query  int  false  "Ventana en días (por defecto la configurada)"
// @Success      200  {object}  dto.AbcRecomputeResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/analytics/abc/recompute [post]
func (h *AnalyticsHandler) RecomputeAbc(c *fiber.Ctx) error {
	storeID := GetStoreID(c)
	if storeID == "" {
		return unauthorized(c)
	}
	in := dto.AbcRecomputeRequest{LookbackDays: c.QueryInt("lookback_days")}
	if ok, err := validateStruct(c, &in); !ok {
		return err
	}
	out, err := h.abc.Recompute(c.Context(), storeID, in.LookbackDays)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
