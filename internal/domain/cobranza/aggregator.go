package cobranza

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/leox-api/internal/domain/entity"
)

var hundred = decimal.NewFromInt(100)

// Summarize reduce los pagos clasificados a los KPIs de cobranza.
// Cada pago cae en exactamente uno de {pagado, no pagado}, por lo que
// TotalCollected + TotalPending es siempre la suma de todos los montos.
func Summarize(payments []entity.ClassifiedPayment) entity.CollectionKPIs {
	k := entity.CollectionKPIs{
		TotalCollected: decimal.Zero,
		TotalPending:   decimal.Zero,
		OverdueAmount:  decimal.Zero,
		DueSoonAmount:  decimal.Zero,
		CollectionRate: decimal.Zero,
	}
	for _, p := range payments {
		if p.Display == entity.DisplayPaid {
			k.TotalCollected = k.TotalCollected.Add(p.Amount)
			k.PaidCount++
			continue
		}
		k.TotalPending = k.TotalPending.Add(p.Amount)
		k.PendingCount++
		switch p.Display {
		case entity.DisplayOverdue:
			k.OverdueAmount = k.OverdueAmount.Add(p.Amount)
			k.OverdueCount++
		case entity.DisplayDueSoon:
			k.DueSoonAmount = k.DueSoonAmount.Add(p.Amount)
			k.DueSoonCount++
		}
	}
	if total := k.TotalCollected.Add(k.TotalPending); total.IsPositive() {
		k.CollectionRate = k.TotalCollected.Div(total).Mul(hundred).Round(2)
	}
	return k
}

// CollectionEvents devuelve un evento por pago pagado, fechado en su fecha de pago.
func CollectionEvents(records []entity.PaymentRecord) []entity.MoneyEvent {
	out := make([]entity.MoneyEvent, 0, len(records))
	for _, r := range records {
		if r.Status != entity.PaymentStatusPaid {
			continue
		}
		out = append(out, entity.MoneyEvent{Date: r.PaymentDate, Amount: r.Amount})
	}
	return out
}

type monthKey struct {
	year  int
	month int
}

// BucketByMonth agrupa ventas y cobros por (año, mes) de su fecha y los combina en
// una lista cronológica ascendente. Un mes con actividad en una sola serie aparece
// con la otra en cero. Los eventos sin fecha utilizable se omiten.
func BucketByMonth(sales, collections []entity.MoneyEvent) []entity.MonthlyBucket {
	salesByMonth := sumByMonth(sales)
	collectedByMonth := sumByMonth(collections)

	keys := make([]monthKey, 0, len(salesByMonth)+len(collectedByMonth))
	for k := range salesByMonth {
		keys = append(keys, k)
	}
	for k := range collectedByMonth {
		if _, dup := salesByMonth[k]; !dup {
			keys = append(keys, k)
		}
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].year != keys[j].year {
			return keys[i].year < keys[j].year
		}
		return keys[i].month < keys[j].month
	})

	out := make([]entity.MonthlyBucket, 0, len(keys))
	for _, k := range keys {
		s, ok := salesByMonth[k]
		if !ok {
			s = decimal.Zero
		}
		c, ok := collectedByMonth[k]
		if !ok {
			c = decimal.Zero
		}
		out = append(out, entity.MonthlyBucket{
			Month:          fmt.Sprintf("%04d-%02d", k.year, k.month),
			Label:          MonthLabel(k.year, k.month),
			SalesTotal:     s,
			CollectedTotal: c,
		})
	}
	return out
}

func sumByMonth(events []entity.MoneyEvent) map[monthKey]decimal.Decimal {
	out := make(map[monthKey]decimal.Decimal)
	for _, e := range events {
		if !e.Date.Valid {
			continue
		}
		k := monthKey{year: e.Date.Time.Year(), month: int(e.Date.Time.Month())}
		out[k] = out[k].Add(e.Amount)
	}
	return out
}

// Absorption ventas por mes (absorción) sobre el rango de meses entre la primera y
// la última venta, ambos inclusive. Cero si no hay ventas con fecha.
func Absorption(sales []entity.MoneyEvent) decimal.Decimal {
	var first, last monthKey
	count := 0
	for _, e := range sales {
		if !e.Date.Valid {
			continue
		}
		k := monthKey{year: e.Date.Time.Year(), month: int(e.Date.Time.Month())}
		if count == 0 || k.year*12+k.month < first.year*12+first.month {
			first = k
		}
		if count == 0 || k.year*12+k.month > last.year*12+last.month {
			last = k
		}
		count++
	}
	if count == 0 {
		return decimal.Zero
	}
	months := (last.year*12 + last.month) - (first.year*12 + first.month) + 1
	return decimal.NewFromInt(int64(count)).Div(decimal.NewFromInt(int64(months))).Round(2)
}

// MonthLabel devuelve una etiqueta legible del mes, ej: "Febrero 2026".
func MonthLabel(year, month int) string {
	months := [...]string{
		"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
		"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
	}
	if month < 1 || month > 12 {
		return fmt.Sprintf("%d-%02d", year, month)
	}
	return fmt.Sprintf("%s %d", months[month-1], year)
}
