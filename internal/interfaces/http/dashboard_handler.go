package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/leox-api/internal/application/dto"
)

// dashboardService lo implementa *dashboard.UseCase.
type dashboardService interface {
	ListProjects(ctx context.Context, developerID int64) ([]dto.ProjectDTO, error)
	GetProject(ctx context.Context, developerID, projectID int64) (*dto.ProjectDashboardDTO, error)
	GetPortfolio(ctx context.Context, developerID int64) (*dto.PortfolioDTO, error)
}

// DashboardHandler maneja los endpoints del dashboard del desarrollador.
type DashboardHandler struct {
	uc dashboardService
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc dashboardService) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// Projects godoc
// @Summary      Proyectos del desarrollador
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  dto.ProjectDTO
// @Router       /api/projects [get]
func (h *DashboardHandler) Projects(c *fiber.Ctx) error {
	out, err := h.uc.ListProjects(c.Context(), GetScopeID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Project godoc
// @Summary      Dashboard de un proyecto
// @Description  Resumen, KPIs de cobranza, serie mensual ventas vs. cobrado, absorción e inventario.
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  int  true  "id_proyecto"
// @Success      200  {object}  dto.ProjectDashboardDTO
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/dashboard/projects/{id} [get]
func (h *DashboardHandler) Project(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return badRequest(c, "id inválido")
	}
	out, err := h.uc.GetProject(c.Context(), GetScopeID(c), int64(id))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Portfolio godoc
// @Summary      Cartera del desarrollador
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.PortfolioDTO
// @Router       /api/dashboard/cartera [get]
func (h *DashboardHandler) Portfolio(c *fiber.Ctx) error {
	out, err := h.uc.GetPortfolio(c.Context(), GetScopeID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
