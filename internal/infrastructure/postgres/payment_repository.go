package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/leox-api/internal/domain"
	"github.com/jhoicas/leox-api/internal/domain/entity"
	"github.com/jhoicas/leox-api/internal/domain/repository"
)

var _ repository.PaymentRepository = (*PaymentRepo)(nil)

// PaymentRepo lectura de vw_historial_pagos y actualización de venta_pagos.
type PaymentRepo struct {
	q Querier
}

// NewPaymentRepository construye el adaptador de pagos. Pasar pool o tx (Querier).
func NewPaymentRepository(q Querier) *PaymentRepo {
	return &PaymentRepo{q: q}
}

// Las fechas se leen como texto: el normalizador decide qué es una fecha utilizable.
// La vista no expone el email del cliente.
const paymentColumns = `
	h.id_pago,
	h.id_venta,
	h.id_proyecto,
	h.proyecto,
	COALESCE(h.monto, 0),
	h.fecha_pago::text,
	h.fecha_vencimiento::text,
	COALESCE(h.concepto_pago, ''),
	COALESCE(h.estatus_pago, ''),
	h.metodo_pago,
	h.referencia,
	h.notas,
	h.nombre_cliente,
	NULL::text,
	COALESCE(h.num_unidad, '')`

// FetchPage devuelve las filas [from, to] del historial ordenadas por fecha de pago
// descendente (id_pago como desempate para que las páginas no se solapen).
func (r *PaymentRepo) FetchPage(ctx context.Context, f repository.PaymentFilter, from, to int) ([]entity.PaymentHistoryRow, error) {
	limit, offset, err := pageBounds(from, to)
	if err != nil {
		return nil, fmt.Errorf("payments.FetchPage: %w", err)
	}

	var w whereBuilder
	if len(f.ProjectNames) > 0 {
		w.add("h.proyecto = ANY(?)", f.ProjectNames)
	}
	if f.ClientID != 0 {
		w.add("h.id_venta IN (SELECT v.id_venta FROM ventas_contratos v WHERE v.id_cliente = ?)", f.ClientID)
	}
	if f.SaleID != 0 {
		w.add("h.id_venta = ?", f.SaleID)
	}
	if f.ClientName != "" {
		w.add("h.nombre_cliente ILIKE ?", likePattern(f.ClientName))
	}
	if f.Status != "" {
		w.add("h.estatus_pago = ?", string(f.Status))
	}
	if f.Search != "" {
		p := likePattern(f.Search)
		w.add("(h.concepto_pago ILIKE ? OR h.nombre_cliente ILIKE ? OR h.num_unidad ILIKE ?)", p, p, p)
	}
	if f.From != nil {
		w.add("h.fecha_pago >= ?::date", f.From.Format(entity.DateLayout))
	}
	if f.To != nil {
		w.add("h.fecha_pago <= ?::date", f.To.Format(entity.DateLayout))
	}

	query := fmt.Sprintf(`
	SELECT %s
	FROM vw_historial_pagos h
	%s
	ORDER BY h.fecha_pago DESC NULLS LAST, h.id_pago DESC
	LIMIT %s OFFSET %s`, paymentColumns, w.sql(), w.arg(limit), w.arg(offset))

	rows, err := r.q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, fmt.Errorf("payments.FetchPage: %w", err)
	}
	defer rows.Close()

	out := make([]entity.PaymentHistoryRow, 0, limit)
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("payments.FetchPage scan: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// GetByID devuelve la fila del historial del pago o domain.ErrNotFound.
func (r *PaymentRepo) GetByID(ctx context.Context, id int64) (*entity.PaymentHistoryRow, error) {
	query := `SELECT ` + paymentColumns + ` FROM vw_historial_pagos h WHERE h.id_pago = $1`
	p, err := scanPayment(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("payments.GetByID: %w", err)
	}
	return &p, nil
}

// MarkAsPaid cambia el estatus a Pagado con fecha_pago = paidAt. Los campos nil del
// patch conservan el valor actual. Un pago ya pagado no se toca (domain.ErrConflict).
func (r *PaymentRepo) MarkAsPaid(ctx context.Context, id int64, patch entity.MarkPaidPatch, paidAt time.Time) (*entity.PaymentHistoryRow, error) {
	const query = `
	UPDATE venta_pagos
	SET estatus_pago = $2,
	    fecha_pago   = $3::date,
	    metodo_pago  = COALESCE($4, metodo_pago),
	    referencia   = COALESCE($5, referencia),
	    notas        = COALESCE($6, notas),
	    updated_at   = now()
	WHERE id_pago = $1
	  AND estatus_pago IS DISTINCT FROM $2
	RETURNING id_pago`

	var updated int64
	err := r.q.QueryRow(ctx, query,
		id, string(entity.PaymentStatusPaid), paidAt.Format(entity.DateLayout),
		patch.Method, patch.Reference, patch.Notes,
	).Scan(&updated)
	if err != nil {
		if !errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("payments.MarkAsPaid: %w", err)
		}
		// Sin fila actualizada: o no existe o ya estaba pagado.
		if _, gerr := r.GetByID(ctx, id); gerr != nil {
			return nil, gerr
		}
		return nil, domain.ErrConflict
	}
	return r.GetByID(ctx, id)
}

func scanPayment(row pgx.Row) (entity.PaymentHistoryRow, error) {
	var p entity.PaymentHistoryRow
	err := row.Scan(
		&p.IDPago,
		&p.IDVenta,
		&p.IDProyecto,
		&p.Proyecto,
		&p.Monto,
		&p.FechaPago,
		&p.FechaVencimiento,
		&p.ConceptoPago,
		&p.EstatusPago,
		&p.MetodoPago,
		&p.Referencia,
		&p.Notas,
		&p.NombreCliente,
		&p.EmailCliente,
		&p.NumUnidad,
	)
	return p, err
}
