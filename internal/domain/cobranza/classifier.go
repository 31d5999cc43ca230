package cobranza

import (
	"math"
	"time"

	"github.com/jhoicas/leox-api/internal/domain/entity"
)

// DueSoonDays ventana (en días) para considerar un pago "por vencer".
const DueSoonDays = 7

// Classifier deriva el estatus de presentación de un pago. El valor cero usa DueSoonDays.
type Classifier struct {
	DueSoonDays int
}

// Classify aplica el clasificador por defecto.
func Classify(rec entity.PaymentRecord, today time.Time) entity.DisplayStatus {
	return Classifier{}.Classify(rec, today)
}

// Classify devuelve el estatus de presentación. Prioridad:
//  1. estatus almacenado Pagado → pagado
//  2. con fecha utilizable (vencimiento, si no fecha de pago):
//     días < 0 → vencido; días <= ventana → por_vencer; si no → proximo
//  3. sin fecha utilizable → proximo
func (c Classifier) Classify(rec entity.PaymentRecord, today time.Time) entity.DisplayStatus {
	if rec.Status == entity.PaymentStatusPaid {
		return entity.DisplayPaid
	}
	days, ok := DaysUntilDue(rec, today)
	if !ok {
		return entity.DisplayUpcoming
	}
	switch {
	case days < 0:
		return entity.DisplayOverdue
	case days <= c.window():
		return entity.DisplayDueSoon
	default:
		return entity.DisplayUpcoming
	}
}

// ClassifyAll devuelve los pagos con estatus de presentación y días restantes.
func (c Classifier) ClassifyAll(records []entity.PaymentRecord, today time.Time) []entity.ClassifiedPayment {
	out := make([]entity.ClassifiedPayment, 0, len(records))
	for _, rec := range records {
		cp := entity.ClassifiedPayment{PaymentRecord: rec, Display: c.Classify(rec, today)}
		if cp.Display != entity.DisplayPaid {
			if days, ok := DaysUntilDue(rec, today); ok {
				d := days
				cp.DaysUntilDue = &d
			}
		}
		out = append(out, cp)
	}
	return out
}

// DaysUntilDue calcula ceil((vencimiento - hoy) / 1 día). ok=false si el pago no
// tiene una fecha utilizable.
func DaysUntilDue(rec entity.PaymentRecord, today time.Time) (int, bool) {
	due := rec.DueDate
	// Solo se cae a fecha_pago si el vencimiento falta; uno ilegible no es utilizable.
	if !due.Valid && due.Raw == "" {
		due = rec.PaymentDate
	}
	if !due.Valid {
		return 0, false
	}
	days := math.Ceil(due.Time.Sub(today).Hours() / 24)
	return int(days), true
}

func (c Classifier) window() int {
	if c.DueSoonDays <= 0 {
		return DueSoonDays
	}
	return c.DueSoonDays
}
