package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/leox-api/internal/application/dto"
)

// cobranzaService lo implementa *cobranza.UseCase.
type cobranzaService interface {
	ListByDeveloper(ctx context.Context, developerID int64, q dto.CobranzaQuery) (*dto.CobranzaDTO, error)
	MarkAsPaid(ctx context.Context, developerID, paymentID int64, in dto.MarkPaidRequest) (*dto.PaymentDTO, error)
}

// CobranzaHandler endpoints de la tabla de cobranza del desarrollador.
type CobranzaHandler struct {
	uc cobranzaService
}

// NewCobranzaHandler construye el handler.
func NewCobranzaHandler(uc cobranzaService) *CobranzaHandler {
	return &CobranzaHandler{uc: uc}
}

// List godoc
// @Summary      Tabla de cobranza
// @Description  Pagos clasificados y numerados por cliente del proyecto seleccionado
// @Description  (project_id) o de todos los proyectos del desarrollador, con KPIs.
// @Tags         cobranza
// @Produce      json
// @Security     BearerAuth
// @Param        project_id  query  int     false  "proyecto seleccionado"
// @Param        client      query  string  false  "nombre del cliente (parcial)"
// @Param        status      query  string  false  "Pagado | Pendiente | Vencido | Parcial"
// @Param        display     query  string  false  "pagado | vencido | por_vencer | proximo"
// @Param        q           query  string  false  "texto libre"
// @Param        from        query  string  false  "YYYY-MM-DD"
// @Param        to          query  string  false  "YYYY-MM-DD"
// @Success      200  {object}  dto.CobranzaDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/cobranza [get]
func (h *CobranzaHandler) List(c *fiber.Ctx) error {
	var q dto.CobranzaQuery
	if err := c.QueryParser(&q); err != nil {
		return badRequest(c, "parámetros de consulta inválidos")
	}
	out, err := h.uc.ListByDeveloper(c.Context(), GetScopeID(c), q)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Portfolio godoc
// @Summary      Cobranza de toda la cartera
// @Description  Igual que /api/cobranza pero siempre sobre todos los proyectos del desarrollador.
// @Tags         cobranza
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.CobranzaDTO
// @Router       /api/cobranza/cartera [get]
func (h *CobranzaHandler) Portfolio(c *fiber.Ctx) error {
	var q dto.CobranzaQuery
	if err := c.QueryParser(&q); err != nil {
		return badRequest(c, "parámetros de consulta inválidos")
	}
	q.ProjectID = 0
	out, err := h.uc.ListByDeveloper(c.Context(), GetScopeID(c), q)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// MarkAsPaid godoc
// @Summary      Marcar pago como pagado
// @Description  Cambia el estatus a Pagado con la fecha de hoy. 409 si ya estaba pagado.
// @Tags         cobranza
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  int                  true   "id_pago"
// @Param        body  body  dto.MarkPaidRequest  false  "método, referencia, notas"
// @Success      200   {object}  dto.PaymentDTO
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/cobranza/pagos/{id}/pagar [patch]
func (h *CobranzaHandler) MarkAsPaid(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return badRequest(c, "id inválido")
	}
	var in dto.MarkPaidRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
		}
	}
	out, err := h.uc.MarkAsPaid(c.Context(), GetScopeID(c), int64(id), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
