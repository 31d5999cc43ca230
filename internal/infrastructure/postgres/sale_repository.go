package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/leox-api/internal/domain/entity"
	"github.com/jhoicas/leox-api/internal/domain/repository"
)

var (
	_ repository.SaleRepository      = (*SaleRepo)(nil)
	_ repository.InventoryRepository = (*InventoryRepo)(nil)
)

// SaleRepo lectura de ventas_contratos con cliente y unidad.
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador de ventas.
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

// FetchPage devuelve las ventas [from, to] del proyecto, más recientes primero.
func (r *SaleRepo) FetchPage(ctx context.Context, projectID int64, from, to int) ([]entity.SaleRow, error) {
	limit, offset, err := pageBounds(from, to)
	if err != nil {
		return nil, fmt.Errorf("sales.FetchPage: %w", err)
	}
	const query = `
	SELECT
	    v.id_venta,
	    v.id_cliente,
	    v.id_unidad,
	    v.fecha_venta::text,
	    COALESCE(v.precio_lista, 0),
	    COALESCE(v.precio_venta, 0),
	    COALESCE(v.estatus, ''),
	    c.nombre,
	    COALESCE(i.num_unidad, '')
	FROM ventas_contratos v
	JOIN inventario    i ON i.id_unidad  = v.id_unidad
	LEFT JOIN clientes c ON c.id_cliente = v.id_cliente
	WHERE i.id_proyecto = $1
	ORDER BY v.fecha_venta DESC NULLS LAST, v.id_venta DESC
	LIMIT $2 OFFSET $3`

	rows, err := r.q.Query(ctx, query, projectID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("sales.FetchPage: %w", err)
	}
	defer rows.Close()

	out := make([]entity.SaleRow, 0, limit)
	for rows.Next() {
		var s entity.SaleRow
		if err := rows.Scan(
			&s.IDVenta,
			&s.IDCliente,
			&s.IDUnidad,
			&s.FechaVenta,
			&s.PrecioLista,
			&s.PrecioVenta,
			&s.Estatus,
			&s.NombreCliente,
			&s.NumUnidad,
		); err != nil {
			return nil, fmt.Errorf("sales.FetchPage scan: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// InventoryRepo conteos sobre inventario.
type InventoryRepo struct {
	q Querier
}

// NewInventoryRepository construye el adaptador de inventario.
func NewInventoryRepository(q Querier) *InventoryRepo {
	return &InventoryRepo{q: q}
}

// CountByStatus cuenta las unidades del proyecto por estatus. Cero si no hay unidades.
func (r *InventoryRepo) CountByStatus(ctx context.Context, projectID int64) (entity.UnitCounts, error) {
	const query = `
	SELECT
	    COUNT(*),
	    COUNT(*) FILTER (WHERE estatus = $2),
	    COUNT(*) FILTER (WHERE estatus = $3),
	    COUNT(*) FILTER (WHERE estatus = $4)
	FROM inventario
	WHERE id_proyecto = $1`

	var c entity.UnitCounts
	err := r.q.QueryRow(ctx, query, projectID,
		entity.UnitStatusAvailable, entity.UnitStatusReserved, entity.UnitStatusSold,
	).Scan(&c.Total, &c.Available, &c.Reserved, &c.Sold)
	if err != nil {
		return entity.UnitCounts{}, fmt.Errorf("inventory.CountByStatus: %w", err)
	}
	return c, nil
}
