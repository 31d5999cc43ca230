// Package portal contiene los casos de uso del portal del comprador: panel con su
// contrato, saldo y pagos, y el estado de cuenta en PDF.
package portal

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	appcobranza "github.com/jhoicas/leox-api/internal/application/cobranza"
	"github.com/jhoicas/leox-api/internal/application/dto"
	core "github.com/jhoicas/leox-api/internal/domain/cobranza"
	"github.com/jhoicas/leox-api/internal/domain/entity"
	"github.com/jhoicas/leox-api/internal/domain/repository"
)

// UseCase casos de uso del portal del comprador.
type UseCase struct {
	reports   repository.ReportRepository
	cobranza  *appcobranza.UseCase
	generator StatementPDFGenerator
	log       zerolog.Logger
	newFolio  func() string
}

// NewUseCase construye el caso de uso inyectando todas sus dependencias.
func NewUseCase(
	reports repository.ReportRepository,
	cobranza *appcobranza.UseCase,
	generator StatementPDFGenerator,
	log zerolog.Logger,
) *UseCase {
	return &UseCase{
		reports:   reports,
		cobranza:  cobranza,
		generator: generator,
		log:       log,
		newFolio:  uuid.NewString,
	}
}

// GetPanel devuelve el contrato del cliente con sus pagos clasificados y numerados.
//
// Retorna domain.ErrNotFound si el cliente no tiene contrato.
func (uc *UseCase) GetPanel(ctx context.Context, clientID int64) (*dto.ClientPanelDTO, error) {
	panel, err := uc.reports.GetClientPanel(ctx, clientID)
	if err != nil {
		return nil, fmt.Errorf("portal: panel del cliente %d: %w", clientID, err)
	}

	res, err := uc.cobranza.Collect(ctx, repository.PaymentFilter{ClientID: clientID, SaleID: panel.SaleID}, "")
	if err != nil {
		return nil, fmt.Errorf("portal: pagos del cliente %d: %w", clientID, err)
	}

	payments := make([]dto.PaymentDTO, 0, len(res.Numbered))
	for _, p := range res.Numbered {
		payments = append(payments, appcobranza.ToPaymentDTO(p))
	}

	out := &dto.ClientPanelDTO{
		ClientID:      panel.ClientID,
		ClientName:    panel.ClientName,
		Email:         panel.Email,
		SaleID:        panel.SaleID,
		ProjectName:   panel.ProjectName,
		UnitNumber:    panel.UnitNumber,
		SaleDate:      core.ParseDate(panel.SaleDate, uc.cobranza.Location()).Label(),
		SalePrice:     panel.SalePrice.Round(2),
		TotalPaid:     panel.TotalPaid.Round(2),
		Balance:       panel.Balance.Round(2),
		ContractState: panel.ContractState,
		Payments:      payments,
		KPIs:          appcobranza.ToKPIsDTO(core.Summarize(res.Classified)),
	}
	if next, ok := NextPayment(res.Numbered); ok {
		p := appcobranza.ToPaymentDTO(next)
		out.NextPayment = &p
	}
	return out, nil
}

// NextPayment devuelve el pago no pagado con la fecha de vencimiento más próxima.
// Los pagos sin fecha utilizable solo se eligen si no hay ninguno fechado.
func NextPayment(payments []entity.NumberedPayment) (entity.NumberedPayment, bool) {
	var (
		best  entity.NumberedPayment
		found bool
	)
	for _, p := range payments {
		if p.Display == entity.DisplayPaid {
			continue
		}
		switch {
		case !found:
			best, found = p, true
		case p.DueDate.Valid && (!best.DueDate.Valid || p.DueDate.Time.Before(best.DueDate.Time)):
			best = p
		}
	}
	return best, found
}

// Statement genera el estado de cuenta del cliente en PDF.
//
// Retorna:
//   - (pdfBytes, filename, nil)  si todo sale bien.
//   - domain.ErrNotFound         si el cliente no tiene contrato.
func (uc *UseCase) Statement(ctx context.Context, clientID int64) (pdfBytes []byte, filename string, err error) {
	panel, err := uc.GetPanel(ctx, clientID)
	if err != nil {
		return nil, "", err
	}

	st := &Statement{
		Folio:    strings.ToUpper(uc.newFolio()),
		IssuedAt: uc.cobranza.Today(),
		Panel:    panel,
	}
	pdfBytes, err = uc.generator.GenerateStatementPDF(ctx, st)
	if err != nil {
		return nil, "", fmt.Errorf("portal: generación del estado de cuenta: %w", err)
	}

	uc.log.Info().
		Int64("cliente", clientID).
		Str("folio", st.Folio).
		Int("pagos", len(panel.Payments)).
		Msg("portal: estado de cuenta generado")

	filename = fmt.Sprintf("estado_de_cuenta_%s_%s.pdf",
		strings.ReplaceAll(panel.UnitNumber, " ", "_"), st.IssuedAt.Format(entity.DateLayout))
	return pdfBytes, filename, nil
}
