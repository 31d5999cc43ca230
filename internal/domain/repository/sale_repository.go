package repository

import (
	"context"

	"github.com/jhoicas/leox-api/internal/domain/entity"
)

// SaleRepository puerto de lectura sobre ventas_contratos (con clientes e inventario).
type SaleRepository interface {
	// FetchPage devuelve las ventas del proyecto en el rango inclusivo [from, to],
	// ordenadas por fecha_venta descendente.
	FetchPage(ctx context.Context, projectID int64, from, to int) ([]entity.SaleRow, error)
}

// InventoryRepository puerto de lectura sobre inventario.
type InventoryRepository interface {
	CountByStatus(ctx context.Context, projectID int64) (entity.UnitCounts, error)
}
