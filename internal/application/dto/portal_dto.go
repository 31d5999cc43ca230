package dto

import "github.com/shopspring/decimal"

// ClientPanelDTO respuesta de GET /api/portal/panel (vista del comprador).
type ClientPanelDTO struct {
	ClientID      int64           `json:"cliente_id"`
	ClientName    string          `json:"cliente"`
	Email         *string         `json:"email"`
	SaleID        int64           `json:"venta_id"`
	ProjectName   string          `json:"proyecto"`
	UnitNumber    string          `json:"unidad"`
	SaleDate      string          `json:"fecha_venta"`
	SalePrice     decimal.Decimal `json:"precio_venta"`
	TotalPaid     decimal.Decimal `json:"total_pagado"`
	Balance       decimal.Decimal `json:"saldo"`
	ContractState string          `json:"estatus_contrato"`
	Payments      []PaymentDTO    `json:"pagos"`
	KPIs          KPIsDTO         `json:"kpis"`
	NextPayment   *PaymentDTO     `json:"proximo_pago"` // primer pago no pagado por fecha
}
