package entity

import "github.com/shopspring/decimal"

// ProjectSummary fila de vw_dashboard_remodela. Se trata como valor opaco de solo lectura.
type ProjectSummary struct {
	ProjectID        int64
	ProjectName      string
	TotalSold        decimal.Decimal
	TotalCollected   decimal.Decimal
	Receivable       decimal.Decimal
	UnitsTotal       int
	UnitsSold        int
	UnitsAvailable   int
	SalesProgressPct decimal.Decimal
}

// PortfolioRow fila de vw_developer_cartera (cartera por proyecto).
type PortfolioRow struct {
	DeveloperID    int64
	ProjectID      int64
	ProjectName    string
	ContractsCount int
	TotalContract  decimal.Decimal
	TotalCollected decimal.Decimal
	Receivable     decimal.Decimal
	OverdueAmount  decimal.Decimal
}

// ClientPanel fila de vw_cliente_panel: contrato y saldo del comprador.
type ClientPanel struct {
	ClientID      int64
	ClientName    string
	Email         *string
	SaleID        int64
	ProjectName   string
	UnitNumber    string
	SaleDate      *string
	SalePrice     decimal.Decimal
	TotalPaid     decimal.Decimal
	Balance       decimal.Decimal
	ContractState string
}
