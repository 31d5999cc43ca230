package dto

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/leox-api/internal/domain/entity"
)

// ProjectDashboardDTO respuesta de GET /api/dashboard/projects/:id.
type ProjectDashboardDTO struct {
	ProjectID   int64  `json:"proyecto_id"`
	ProjectName string `json:"proyecto"`

	// Resumen de vw_dashboard_remodela (valores opacos calculados en la base)
	Summary ProjectSummaryDTO `json:"resumen"`

	// KPIs de cobranza calculados sobre los pagos clasificados
	KPIs KPIsDTO `json:"kpis"`

	// Serie mensual ventas vs. cobrado (ascendente)
	Monthly []entity.MonthlyBucket `json:"mensual"`

	Absorption decimal.Decimal `json:"absorcion"` // ventas por mes
	Units      UnitCountsDTO   `json:"unidades"`
	DateLabel  string          `json:"fecha_corte"` // ej: "Febrero 2026"
	Truncated  bool            `json:"truncado"`
}

// ProjectSummaryDTO totales del proyecto.
type ProjectSummaryDTO struct {
	TotalSold        decimal.Decimal `json:"total_vendido"`
	TotalCollected   decimal.Decimal `json:"total_cobrado"`
	Receivable       decimal.Decimal `json:"cuentas_por_cobrar"`
	SalesProgressPct decimal.Decimal `json:"avance_ventas"`
}

// UnitCountsDTO inventario por estatus.
type UnitCountsDTO struct {
	Total     int `json:"total"`
	Available int `json:"disponibles"`
	Reserved  int `json:"apartadas"`
	Sold      int `json:"vendidas"`
}

// PortfolioDTO respuesta de GET /api/dashboard/cartera.
type PortfolioDTO struct {
	DeveloperID    int64                 `json:"desarrollador_id"`
	DeveloperName  string                `json:"desarrollador"`
	Projects       []PortfolioProjectDTO `json:"proyectos"`
	TotalContract  decimal.Decimal       `json:"total_contratado"`
	TotalCollected decimal.Decimal       `json:"total_cobrado"`
	Receivable     decimal.Decimal       `json:"cuentas_por_cobrar"`
	OverdueAmount  decimal.Decimal       `json:"monto_vencido"`
}

// PortfolioProjectDTO cartera de un proyecto.
type PortfolioProjectDTO struct {
	ProjectID      int64           `json:"proyecto_id"`
	ProjectName    string          `json:"proyecto"`
	ContractsCount int             `json:"contratos"`
	TotalContract  decimal.Decimal `json:"total_contratado"`
	TotalCollected decimal.Decimal `json:"total_cobrado"`
	Receivable     decimal.Decimal `json:"cuentas_por_cobrar"`
	OverdueAmount  decimal.Decimal `json:"monto_vencido"`
	CollectionPct  decimal.Decimal `json:"porcentaje_cobrado"`
}
