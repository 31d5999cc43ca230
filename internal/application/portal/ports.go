package portal

import (
	"context"
	"time"

	"github.com/jhoicas/leox-api/internal/application/dto"
)

// Statement datos del estado de cuenta que se imprime para el comprador.
type Statement struct {
	Folio    string
	IssuedAt time.Time
	Panel    *dto.ClientPanelDTO
}

// StatementPDFGenerator genera la representación PDF del estado de cuenta.
// Implementado por infrastructure/pdf.MarotoPDFGenerator.
type StatementPDFGenerator interface {
	GenerateStatementPDF(ctx context.Context, st *Statement) ([]byte, error)
}
