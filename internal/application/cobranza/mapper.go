package cobranza

import (
	"github.com/jhoicas/leox-api/internal/application/dto"
	"github.com/jhoicas/leox-api/internal/domain/entity"
)

// ToPaymentDTO convierte un pago numerado en la fila de la tabla de cobranza.
func ToPaymentDTO(p entity.NumberedPayment) dto.PaymentDTO {
	return dto.PaymentDTO{
		ID:            p.ID,
		SaleID:        p.SaleID,
		Project:       p.ProjectName,
		Amount:        p.Amount,
		PaymentDate:   isoOrNil(p.PaymentDate),
		DueDate:       isoOrNil(p.DueDate),
		PaymentLabel:  p.PaymentDate.Label(),
		DueLabel:      p.DueDate.Label(),
		Concept:       p.Concept,
		Status:        string(p.Status),
		Display:       string(p.Display),
		DaysUntilDue:  p.DaysUntilDue,
		Method:        p.Method,
		Reference:     p.Reference,
		Notes:         p.Notes,
		ClientName:    p.ClientName,
		ClientEmail:   p.Sale.Client.Email,
		UnitNumber:    p.Sale.Unit.Number,
		PaymentNumber: p.PaymentNumber,
	}
}

// ToKPIsDTO convierte los KPIs, redondeando montos a centavos.
func ToKPIsDTO(k entity.CollectionKPIs) dto.KPIsDTO {
	return dto.KPIsDTO{
		TotalCollected: k.TotalCollected.Round(2),
		TotalPending:   k.TotalPending.Round(2),
		OverdueAmount:  k.OverdueAmount.Round(2),
		DueSoonAmount:  k.DueSoonAmount.Round(2),
		PaidCount:      k.PaidCount,
		PendingCount:   k.PendingCount,
		OverdueCount:   k.OverdueCount,
		DueSoonCount:   k.DueSoonCount,
		CollectionRate: k.CollectionRate,
	}
}

func isoOrNil(d entity.OptionalDate) *string {
	if !d.Valid {
		return nil
	}
	s := d.Time.Format(entity.DateLayout)
	return &s
}
