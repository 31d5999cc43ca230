package dto

import "github.com/shopspring/decimal"

// CobranzaQuery parámetros de GET /api/cobranza.
type CobranzaQuery struct {
	ProjectID int64  `query:"project_id"`
	Client    string `query:"client"`  // nombre del cliente, coincidencia parcial
	Status    string `query:"status"`  // estatus almacenado: Pagado|Pendiente|Vencido|Parcial
	Display   string `query:"display"` // estatus derivado: pagado|vencido|por_vencer|proximo
	Search    string `query:"q"`       // texto libre: concepto, cliente o unidad
	From      string `query:"from"`    // YYYY-MM-DD sobre fecha_pago
	To        string `query:"to"`      // YYYY-MM-DD inclusivo
}

// PaymentDTO fila de la tabla de cobranza.
type PaymentDTO struct {
	ID            int64           `json:"id"`
	SaleID        int64           `json:"venta_id"`
	Project       string          `json:"proyecto"`
	Amount        decimal.Decimal `json:"monto"`
	PaymentDate   *string         `json:"fecha_pago"`
	DueDate       *string         `json:"fecha_vencimiento"`
	PaymentLabel  string          `json:"fecha_pago_texto"`        // ISO, "sin fecha" o "fecha inválida"
	DueLabel      string          `json:"fecha_vencimiento_texto"` // ISO, "sin fecha" o "fecha inválida"
	Concept       string          `json:"concepto"`
	Status        string          `json:"estatus"`
	Display       string          `json:"estatus_visual"`
	DaysUntilDue  *int            `json:"dias_para_vencer"`
	Method        *string         `json:"metodo_pago"`
	Reference     *string         `json:"referencia"`
	Notes         *string         `json:"notas"`
	ClientName    string          `json:"cliente"`
	ClientEmail   *string         `json:"cliente_email"`
	UnitNumber    string          `json:"unidad"`
	PaymentNumber int             `json:"numero_pago"`
}

// KPIsDTO totales de cobranza.
type KPIsDTO struct {
	TotalCollected decimal.Decimal `json:"total_cobrado"`
	TotalPending   decimal.Decimal `json:"total_pendiente"`
	OverdueAmount  decimal.Decimal `json:"monto_vencido"`
	DueSoonAmount  decimal.Decimal `json:"monto_por_vencer"`
	PaidCount      int             `json:"pagados"`
	PendingCount   int             `json:"pendientes"`
	OverdueCount   int             `json:"vencidos"`
	DueSoonCount   int             `json:"por_vencer"`
	CollectionRate decimal.Decimal `json:"porcentaje_cobrado"`
}

// CobranzaDTO respuesta de GET /api/cobranza.
type CobranzaDTO struct {
	Scope     string       `json:"alcance"`   // nombre del proyecto o "desarrollador:{id}"
	Projects  []string     `json:"proyectos"` // proyectos incluidos
	Payments  []PaymentDTO `json:"pagos"`
	KPIs      KPIsDTO      `json:"kpis"`
	Truncated bool         `json:"truncado"`  // se alcanzó el tope de páginas
	Rejected  int          `json:"rechazados"` // filas descartadas por formato inválido
}

// MarkPaidRequest body de PATCH /api/cobranza/pagos/:id/pagar.
type MarkPaidRequest struct {
	Method    string `json:"metodo_pago"`
	Reference string `json:"referencia,omitempty"`
	Notes     string `json:"notas,omitempty"`
}

// ProjectDTO proyecto del desarrollador.
type ProjectDTO struct {
	ID       int64  `json:"id"`
	Name     string `json:"nombre"`
	Location string `json:"ubicacion,omitempty"`
}
