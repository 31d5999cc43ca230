package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estatus de ventas_contratos que cuentan como venta cerrada.
const (
	SaleStatusActive    = "Activa"
	SaleStatusCancelled = "Cancelada"
)

// SaleRow fila de ventas_contratos con cliente y unidad resueltos.
type SaleRow struct {
	IDVenta       int64
	IDCliente     int64
	IDUnidad      int64
	FechaVenta    *string
	PrecioLista   decimal.Decimal
	PrecioVenta   decimal.Decimal
	Estatus       string
	NombreCliente *string
	NumUnidad     string
}

// MoneyEvent monto fechado que alimenta las series mensuales.
type MoneyEvent struct {
	Date   OptionalDate
	Amount decimal.Decimal
}

// MonthlyBucket totales de un mes calendario para las gráficas.
type MonthlyBucket struct {
	Month          string          `json:"mes"`      // YYYY-MM
	Label          string          `json:"etiqueta"` // ej: "Enero 2024"
	SalesTotal     decimal.Decimal `json:"ventas"`
	CollectedTotal decimal.Decimal `json:"cobrado"`
}

// CollectionKPIs totales de cobranza sobre un conjunto de pagos clasificados.
type CollectionKPIs struct {
	TotalCollected decimal.Decimal
	TotalPending   decimal.Decimal
	OverdueAmount  decimal.Decimal
	DueSoonAmount  decimal.Decimal
	PaidCount      int
	PendingCount   int
	OverdueCount   int
	DueSoonCount   int
	CollectionRate decimal.Decimal // % cobrado sobre el total programado
}

// Project fila de proyectos.
type Project struct {
	ID          int64
	DeveloperID int64
	Name        string
	Location    string
	CreatedAt   time.Time
}

// Developer fila de desarrollador.
type Developer struct {
	ID   int64
	Name string
}

// Estatus de inventario.
const (
	UnitStatusAvailable = "Disponible"
	UnitStatusReserved  = "Apartado"
	UnitStatusSold      = "Vendido"
)

// UnitCounts conteo de unidades del inventario por estatus.
type UnitCounts struct {
	Total     int
	Available int
	Reserved  int
	Sold      int
}
