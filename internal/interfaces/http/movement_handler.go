package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/stockpilot/stockpilot-api/internal/application/dto"
	appledger "github.com/stockpilot/stockpilot-api/internal/application/ledger"
	"github.com/stockpilot/stockpilot-api/internal/domain"
)

// MovementHandler maneja las peticiones HTTP del ledger de movimientos.
type MovementHandler struct {
	applyUC *appledger.ApplyMovementUseCase
	listUC  *appledger.ListMovementsUseCase
}

// NewMovementHandler construye el handler.
func NewMovementHandler(applyUC *appledger.ApplyMovementUseCase, listUC *appledger.ListMovementsUseCase) *MovementHandler {
	return &MovementHandler{applyUC: applyUC, listUC: listUC}
}

// Create godoc
// @Summary      Registrar movimiento de stock
// @Description  Valida y aplica atómicamente un movimiento (IN, OUT, MOVE, ADJUST, COUNT).
//
//	Si movement_uuid ya fue aplicado, retorna el registro original con already_applied=true.
//
// @Tags         movements
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateMovementRequest  true  "type, product_id, quantity, from/to_location_id según tipo"
// @Success      201   {object}  dto.MovementResponse
// @Success      200   {object}  dto.MovementResponse  "duplicado idempotente"
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/movements [post]
func (h *MovementHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}

	mov, alreadyApplied, err := h.applyUC.ApplyFromRequest(c.Context(), in)
	if err != nil {
		return rejectMovement(c, err)
	}
	if alreadyApplied {
		// Idempotente: sin nueva fila, sin cambio en la proyección.
		return c.Status(fiber.StatusOK).JSON(dto.NewMovementResponse(mov, true))
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewMovementResponse(mov, false))
}

// List godoc
// @Summary      Listar movimientos
// @Description  Movimientos más recientes primero, unidos con SKU y códigos de ubicación.
// @Tags         movements
// @Produce      json
// @Param        limit  query  int  false  "máximo de resultados (default y tope 100)"
// @Success      200  {array}  dto.MovementListItem
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/movements [get]
func (h *MovementHandler) List(c *fiber.Ctx) error {
	limit := c.QueryInt("limit")
	list, err := h.listUC.List(c.Context(), limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	items := make([]dto.MovementListItem, 0, len(list))
	for _, m := range list {
		items = append(items, dto.NewMovementListItem(m))
	}
	return c.JSON(fiber.Map{"total": len(items), "movements": items})
}

// rejectMovement mapea la taxonomía de errores del ledger a códigos HTTP:
// errores de entrada 400, registros desconocidos 404, stock insuficiente 409.
// Cualquier otro error es un fallo de almacenamiento reintentable (500); un
// apply fallido no deja estado parcial, así que el retry ciego es seguro.
func rejectMovement(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidType):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_TYPE", Message: err.Error()})
	case errors.Is(err, domain.ErrMissingField):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_FIELD", Message: err.Error()})
	case errors.Is(err, domain.ErrInvalidQuantity):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUANTITY", Message: err.Error()})
	case errors.Is(err, domain.ErrMissingLocation):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_LOCATION", Message: err.Error()})
	case errors.Is(err, domain.ErrUnknownProduct):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "UNKNOWN_PRODUCT", Message: err.Error()})
	case errors.Is(err, domain.ErrUnknownLocation):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "UNKNOWN_LOCATION", Message: err.Error()})
	case errors.Is(err, domain.ErrInsufficientStock):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "STORAGE_FAILURE", Message: err.Error()})
	}
}
