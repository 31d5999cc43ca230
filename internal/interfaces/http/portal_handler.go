package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/leox-api/internal/application/dto"
)

// portalService lo implementa *portal.UseCase.
type portalService interface {
	GetPanel(ctx context.Context, clientID int64) (*dto.ClientPanelDTO, error)
	Statement(ctx context.Context, clientID int64) ([]byte, string, error)
}

// PortalHandler endpoints del portal del comprador. El cliente siempre es el del token.
type PortalHandler struct {
	uc portalService
}

// NewPortalHandler construye el handler.
func NewPortalHandler(uc portalService) *PortalHandler {
	return &PortalHandler{uc: uc}
}

// Panel godoc
// @Summary      Panel del comprador
// @Tags         portal
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.ClientPanelDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/portal/panel [get]
func (h *PortalHandler) Panel(c *fiber.Ctx) error {
	out, err := h.uc.GetPanel(c.Context(), GetScopeID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Statement godoc
// @Summary      Estado de cuenta en PDF
// @Tags         portal
// @Produce      application/pdf
// @Security     BearerAuth
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/portal/estado-de-cuenta [get]
func (h *PortalHandler) Statement(c *fiber.Ctx) error {
	pdf, filename, err := h.uc.Statement(c.Context(), GetScopeID(c))
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Attachment(filename)
	return c.Send(pdf)
}
