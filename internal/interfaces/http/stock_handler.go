package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/stockpilot/stockpilot-api/internal/application/dto"
	"github.com/stockpilot/stockpilot-api/internal/application/usecase"
)

// StockHandler maneja las lecturas de la proyección de saldos.
type StockHandler struct {
	uc *usecase.StockUseCase
}

// NewStockHandler construye el handler.
func NewStockHandler(uc *usecase.StockUseCase) *StockHandler {
	return &StockHandler{uc: uc}
}

// Get godoc
// @Summary      Consultar stock
// @Description  Con product_id y location_id retorna el saldo puntual del par
//
//	(cero si nunca fue tocado). Sin filtros lista los saldos materializados.
//
// @Tags         stock
// @Produce      json
// @Param        product_id   query  string  false  "ID del producto"
// @Param        location_id  query  string  false  "ID de la ubicación"
// @Param        limit        query  int     false  "máximo de resultados"
// @Param        offset       query  int     false  "desplazamiento"
// @Success      200  {object}  dto.StockLevelResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/stock [get]
func (h *StockHandler) Get(c *fiber.Ctx) error {
	productID := c.Query("product_id")
	locationID := c.Query("location_id")

	if productID != "" && locationID != "" {
		level, err := h.uc.Get(c.Context(), productID, locationID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
		}
		return c.JSON(level)
	}

	items, err := h.uc.List(c.Context(), c.QueryInt("limit"), c.QueryInt("offset"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(fiber.Map{"total": len(items), "stock": items})
}
