// Package cobranza contiene la lógica pura de cobranza: normalización de filas de la
// vista vw_historial_pagos, clasificación de estatus, numeración por cliente y
// agregados (KPIs y series mensuales). No hace I/O ni lee estado global.
package cobranza

import (
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/leox-api/internal/domain"
	"github.com/jhoicas/leox-api/internal/domain/entity"
)

// Formatos de fecha que pueden llegar desde la vista (date::text, timestamptz::text, ISO).
var dateLayouts = []string{
	entity.DateLayout,
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05-07",
	"2006-01-02 15:04:05.999999-07",
	"2006-01-02 15:04:05",
}

// RowError fila rechazada en la frontera del normalizador.
type RowError struct {
	PaymentID int64
	Err       error
}

func (e RowError) Error() string {
	return fmt.Sprintf("pago %d: %v", e.PaymentID, e.Err)
}

func (e RowError) Unwrap() error { return e.Err }

// ParseDate interpreta una fecha de la vista en loc. Nunca falla: un texto vacío
// produce una fecha ausente y uno ilegible una fecha inválida con Raw conservado.
func ParseDate(raw *string, loc *time.Location) entity.OptionalDate {
	if raw == nil {
		return entity.OptionalDate{}
	}
	s := strings.TrimSpace(*raw)
	if s == "" {
		return entity.OptionalDate{}
	}
	if loc == nil {
		loc = time.UTC
	}
	for _, layout := range dateLayouts {
		t, err := time.ParseInLocation(layout, s, loc)
		if err == nil {
			if layout != entity.DateLayout {
				t = t.In(loc)
			}
			return entity.OptionalDate{Time: t, Valid: true, Raw: s}
		}
	}
	return entity.OptionalDate{Raw: s}
}

// Normalize convierte una fila plana de la vista en el registro anidado
// {escalares, venta: {cliente, unidad}} que consumen las pantallas.
// Rechaza filas sin id, con monto negativo o con estatus desconocido.
func Normalize(row entity.PaymentHistoryRow, loc *time.Location) (entity.PaymentRecord, error) {
	if row.IDPago <= 0 {
		return entity.PaymentRecord{}, fmt.Errorf("%w: id_pago %d", domain.ErrInvalidRow, row.IDPago)
	}
	if row.Monto.IsNegative() {
		return entity.PaymentRecord{}, fmt.Errorf("%w: monto negativo %s", domain.ErrInvalidRow, row.Monto)
	}
	status, ok := entity.ParsePaymentStatus(row.EstatusPago)
	if !ok {
		return entity.PaymentRecord{}, fmt.Errorf("%w: estatus_pago %q", domain.ErrInvalidRow, row.EstatusPago)
	}

	clientName := ""
	if row.NombreCliente != nil {
		clientName = strings.TrimSpace(*row.NombreCliente)
	}

	return entity.PaymentRecord{
		ID:          row.IDPago,
		SaleID:      row.IDVenta,
		ProjectName: row.Proyecto,
		Amount:      row.Monto,
		PaymentDate: ParseDate(row.FechaPago, loc),
		DueDate:     ParseDate(row.FechaVencimiento, loc),
		Concept:     row.ConceptoPago,
		Status:      status,
		Method:      row.MetodoPago,
		Reference:   row.Referencia,
		Notes:       row.Notas,
		Sale: entity.SaleRef{
			Client: entity.ClientRef{Name: clientName, Email: row.EmailCliente},
			Unit:   entity.UnitRef{Number: row.NumUnidad, ProjectID: row.IDProyecto},
		},
	}, nil
}

// NormalizeAll normaliza un lote conservando el orden; las filas rechazadas se
// devuelven aparte para que el caller las registre.
func NormalizeAll(rows []entity.PaymentHistoryRow, loc *time.Location) ([]entity.PaymentRecord, []RowError) {
	out := make([]entity.PaymentRecord, 0, len(rows))
	var rejected []RowError
	for _, r := range rows {
		rec, err := Normalize(r, loc)
		if err != nil {
			rejected = append(rejected, RowError{PaymentID: r.IDPago, Err: err})
			continue
		}
		out = append(out, rec)
	}
	return out, rejected
}
