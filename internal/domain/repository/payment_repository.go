package repository

import (
	"context"
	"time"

	"github.com/jhoicas/leox-api/internal/domain/entity"
)

// MaxPageRows tope de filas por petición del origen de datos hospedado.
const MaxPageRows = 1000

// PaymentFilter filtros que se empujan al origen de datos.
// Los campos vacíos no filtran.
type PaymentFilter struct {
	ProjectNames []string // alcance: uno o varios proyectos (obligatorio)
	ClientName   string   // coincidencia parcial, sin distinguir mayúsculas
	Status       entity.PaymentStatus
	Search       string // texto libre sobre concepto, cliente o unidad
	From         *time.Time
	To           *time.Time // inclusivo
	ClientID     int64      // portal del comprador
	SaleID       int64      // contrato concreto del comprador
}

// PaymentRepository puerto de lectura/escritura sobre vw_historial_pagos y venta_pagos.
type PaymentRepository interface {
	// FetchPage devuelve las filas del rango inclusivo [from, to], ordenadas por
	// fecha_pago descendente. Nunca más de MaxPageRows por llamada.
	FetchPage(ctx context.Context, filter PaymentFilter, from, to int) ([]entity.PaymentHistoryRow, error)

	// GetByID devuelve la fila del historial de un pago o domain.ErrNotFound.
	GetByID(ctx context.Context, paymentID int64) (*entity.PaymentHistoryRow, error)

	// MarkAsPaid actualiza estatus, método, referencia, notas y fecha de pago en una
	// sola sentencia y devuelve el nuevo estado de la fila. Sin control de concurrencia.
	MarkAsPaid(ctx context.Context, paymentID int64, patch entity.MarkPaidPatch, paidAt time.Time) (*entity.PaymentHistoryRow, error)
}
