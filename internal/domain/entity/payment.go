package entity

import (
	"strings"

	"github.com/shopspring/decimal"
)

// PaymentStatus es el estatus almacenado en venta_pagos.estatus_pago (fuente de verdad).
type PaymentStatus string

const (
	PaymentStatusPaid    PaymentStatus = "Pagado"
	PaymentStatusPending PaymentStatus = "Pendiente"
	PaymentStatusOverdue PaymentStatus = "Vencido"
	PaymentStatusPartial PaymentStatus = "Parcial"
)

// ParsePaymentStatus acepta el valor de la base (cualquier capitalización) y los
// nombres en inglés que usa el front heredado. ok=false si no se reconoce.
func ParsePaymentStatus(s string) (PaymentStatus, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pagado", "paid":
		return PaymentStatusPaid, true
	case "pendiente", "pending":
		return PaymentStatusPending, true
	case "vencido", "overdue":
		return PaymentStatusOverdue, true
	case "parcial", "partial":
		return PaymentStatusPartial, true
	}
	return "", false
}

// DisplayStatus es el estatus de presentación derivado por el clasificador.
// Nunca se persiste: se recalcula en cada lectura.
type DisplayStatus string

const (
	DisplayPaid     DisplayStatus = "pagado"
	DisplayOverdue  DisplayStatus = "vencido"
	DisplayDueSoon  DisplayStatus = "por_vencer"
	DisplayUpcoming DisplayStatus = "proximo"
)

// ParseDisplayStatus valida un filtro de estatus de presentación.
func ParseDisplayStatus(s string) (DisplayStatus, bool) {
	switch d := DisplayStatus(strings.ToLower(strings.TrimSpace(s))); d {
	case DisplayPaid, DisplayOverdue, DisplayDueSoon, DisplayUpcoming:
		return d, true
	}
	return "", false
}

// PaymentHistoryRow fila plana de la vista vw_historial_pagos.
// Las fechas llegan como texto; el normalizador es quien las interpreta.
type PaymentHistoryRow struct {
	IDPago           int64
	IDVenta          int64
	IDProyecto       int64
	Proyecto         string
	Monto            decimal.Decimal
	FechaPago        *string
	FechaVencimiento *string
	ConceptoPago     string
	EstatusPago      string
	MetodoPago       *string
	Referencia       *string
	Notas            *string
	NombreCliente    *string
	EmailCliente     *string // la vista no lo expone; siempre nil salvo en venta_pagos directo
	NumUnidad        string
}

// ClientRef cliente embebido en la venta (forma de join relacional heredada).
type ClientRef struct {
	Name  string  `json:"nombre"`
	Email *string `json:"email"`
}

// UnitRef unidad embebida en la venta.
type UnitRef struct {
	Number    string `json:"numero"`
	ProjectID int64  `json:"proyecto_id"`
}

// SaleRef venta relacionada con el pago.
type SaleRef struct {
	Client ClientRef `json:"cliente"`
	Unit   UnitRef   `json:"unidad"`
}

// PaymentRecord pago normalizado (programado o realizado).
type PaymentRecord struct {
	ID          int64
	SaleID      int64
	ProjectName string
	Amount      decimal.Decimal // siempre >= 0
	PaymentDate OptionalDate    // fecha efectiva si está pagado, fecha programada si no
	DueDate     OptionalDate
	Concept     string
	Status      PaymentStatus
	Method      *string
	Reference   *string
	Notes       *string
	Sale        SaleRef
}

// ClassifiedPayment pago con su estatus de presentación.
type ClassifiedPayment struct {
	PaymentRecord
	Display      DisplayStatus
	DaysUntilDue *int // nil si no hay fecha utilizable o ya está pagado
}

// NumberedPayment pago agrupado por cliente con su número consecutivo.
type NumberedPayment struct {
	ClassifiedPayment
	ClientName    string
	PaymentNumber int
}

// MarkPaidPatch cambios que aplica la operación "marcar como pagado".
type MarkPaidPatch struct {
	Method    *string
	Reference *string
	Notes     *string
}
