package cobranza

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jhoicas/leox-api/internal/domain/entity"
)

// TieBreak criterio para pagos con el mismo cliente y la misma fecha exacta.
type TieBreak string

const (
	// TieBreakInputOrder conserva el orden relativo de entrada (orden estable).
	TieBreakInputOrder TieBreak = "input"
	// TieBreakID ordena por id de pago ascendente.
	TieBreakID TieBreak = "id"
)

// ParseTieBreak interpreta el valor de configuración; vacío es TieBreakInputOrder.
func ParseTieBreak(s string) (TieBreak, error) {
	switch TieBreak(strings.ToLower(strings.TrimSpace(s))) {
	case "", TieBreakInputOrder:
		return TieBreakInputOrder, nil
	case TieBreakID:
		return TieBreakID, nil
	}
	return "", fmt.Errorf("criterio de desempate desconocido: %q", s)
}

// ClientName devuelve el nombre del cliente o "Cliente {unidad}" si no hay nombre registrado.
func ClientName(rec entity.PaymentRecord) string {
	if name := strings.TrimSpace(rec.Sale.Client.Name); name != "" {
		return name
	}
	return "Cliente " + rec.Sale.Unit.Number
}

// Group ordena por (cliente asc, fecha de pago asc) y asigna a cada pago su número
// consecutivo dentro del cliente, empezando en 1. Los pagos sin fecha van al final
// de su cliente. No modifica el slice de entrada.
func Group(payments []entity.ClassifiedPayment, tieBreak TieBreak) []entity.NumberedPayment {
	out := make([]entity.NumberedPayment, len(payments))
	for i, p := range payments {
		out[i] = entity.NumberedPayment{ClassifiedPayment: p, ClientName: ClientName(p.PaymentRecord)}
	}

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.ClientName != b.ClientName {
			return a.ClientName < b.ClientName
		}
		if c := compareDates(a.PaymentDate, b.PaymentDate); c != 0 {
			return c < 0
		}
		if tieBreak == TieBreakID {
			return a.ID < b.ID
		}
		return false
	})

	seen := make(map[string]int, len(out))
	for i := range out {
		seen[out[i].ClientName]++
		out[i].PaymentNumber = seen[out[i].ClientName]
	}
	return out
}

// compareDates ordena fechas válidas ascendentes y deja las no utilizables al final.
func compareDates(a, b entity.OptionalDate) int {
	switch {
	case a.Valid && b.Valid:
		return a.Time.Compare(b.Time)
	case a.Valid:
		return -1
	case b.Valid:
		return 1
	}
	return 0
}
