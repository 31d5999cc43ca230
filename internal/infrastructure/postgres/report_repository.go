package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/leox-api/internal/domain"
	"github.com/jhoicas/leox-api/internal/domain/entity"
	"github.com/jhoicas/leox-api/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo consultas de solo lectura sobre las vistas de reporte.
type ReportRepo struct {
	q Querier
}

// NewReportRepository construye el adaptador de reportes.
func NewReportRepository(q Querier) *ReportRepo {
	return &ReportRepo{q: q}
}

// GetProjectSummary lee la fila del proyecto en vw_dashboard_remodela.
func (r *ReportRepo) GetProjectSummary(ctx context.Context, projectID int64) (*entity.ProjectSummary, error) {
	const query = `
	SELECT
	    id_proyecto,
	    COALESCE(proyecto, ''),
	    COALESCE(total_vendido, 0),
	    COALESCE(total_cobrado, 0),
	    COALESCE(cuentas_por_cobrar, 0),
	    COALESCE(unidades_total, 0),
	    COALESCE(unidades_vendidas, 0),
	    COALESCE(unidades_disponibles, 0),
	    COALESCE(avance_ventas, 0)
	FROM vw_dashboard_remodela
	WHERE id_proyecto = $1`

	var s entity.ProjectSummary
	err := r.q.QueryRow(ctx, query, projectID).Scan(
		&s.ProjectID,
		&s.ProjectName,
		&s.TotalSold,
		&s.TotalCollected,
		&s.Receivable,
		&s.UnitsTotal,
		&s.UnitsSold,
		&s.UnitsAvailable,
		&s.SalesProgressPct,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("reports.GetProjectSummary: %w", err)
	}
	return &s, nil
}

// ListPortfolio lee la cartera por proyecto del desarrollador (vw_developer_cartera).
func (r *ReportRepo) ListPortfolio(ctx context.Context, developerID int64) ([]entity.PortfolioRow, error) {
	const query = `
	SELECT
	    id_desarrollador,
	    id_proyecto,
	    COALESCE(proyecto, ''),
	    COALESCE(contratos, 0),
	    COALESCE(total_contratado, 0),
	    COALESCE(total_cobrado, 0),
	    COALESCE(cuentas_por_cobrar, 0),
	    COALESCE(monto_vencido, 0)
	FROM vw_developer_cartera
	WHERE id_desarrollador = $1
	ORDER BY proyecto`

	rows, err := r.q.Query(ctx, query, developerID)
	if err != nil {
		return nil, fmt.Errorf("reports.ListPortfolio: %w", err)
	}
	defer rows.Close()

	out := make([]entity.PortfolioRow, 0)
	for rows.Next() {
		var p entity.PortfolioRow
		if err := rows.Scan(
			&p.DeveloperID,
			&p.ProjectID,
			&p.ProjectName,
			&p.ContractsCount,
			&p.TotalContract,
			&p.TotalCollected,
			&p.Receivable,
			&p.OverdueAmount,
		); err != nil {
			return nil, fmt.Errorf("reports.ListPortfolio scan: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// GetClientPanel lee el contrato más reciente del cliente en vw_cliente_panel.
func (r *ReportRepo) GetClientPanel(ctx context.Context, clientID int64) (*entity.ClientPanel, error) {
	const query = `
	SELECT
	    id_cliente,
	    COALESCE(nombre_cliente, ''),
	    email,
	    id_venta,
	    COALESCE(proyecto, ''),
	    COALESCE(num_unidad, ''),
	    fecha_venta::text,
	    COALESCE(precio_venta, 0),
	    COALESCE(total_pagado, 0),
	    COALESCE(saldo, 0),
	    COALESCE(estatus_contrato, '')
	FROM vw_cliente_panel
	WHERE id_cliente = $1
	ORDER BY fecha_venta DESC NULLS LAST, id_venta DESC
	LIMIT 1`

	var p entity.ClientPanel
	err := r.q.QueryRow(ctx, query, clientID).Scan(
		&p.ClientID,
		&p.ClientName,
		&p.Email,
		&p.SaleID,
		&p.ProjectName,
		&p.UnitNumber,
		&p.SaleDate,
		&p.SalePrice,
		&p.TotalPaid,
		&p.Balance,
		&p.ContractState,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("reports.GetClientPanel: %w", err)
	}
	return &p, nil
}
