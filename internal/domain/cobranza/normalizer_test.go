package cobranza_test

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/leox-api/internal/domain"
	"github.com/jhoicas/leox-api/internal/domain/cobranza"
	"github.com/jhoicas/leox-api/internal/domain/entity"
)

func strPtr(s string) *string { return &s }

func historyRow(id int64) entity.PaymentHistoryRow {
	return entity.PaymentHistoryRow{
		IDPago:           id,
		IDVenta:          40,
		IDProyecto:       7,
		Proyecto:         "Remodela Norte",
		Monto:            decimal.RequireFromString("15000.50"),
		FechaPago:        strPtr("2024-02-01"),
		FechaVencimiento: strPtr("2024-02-05"),
		ConceptoPago:     "Mensualidad 3",
		EstatusPago:      "Pendiente",
		NombreCliente:    strPtr("Ana López"),
		NumUnidad:        "A-101",
	}
}

func TestNormalize_FormaAnidada(t *testing.T) {
	rec, err := cobranza.Normalize(historyRow(1), time.UTC)
	require.NoError(t, err)

	assert.Equal(t, int64(1), rec.ID)
	assert.Equal(t, int64(40), rec.SaleID)
	assert.Equal(t, "Ana López", rec.Sale.Client.Name)
	assert.Nil(t, rec.Sale.Client.Email, "el email ausente queda como marcador nulo")
	assert.Equal(t, "A-101", rec.Sale.Unit.Number)
	assert.Equal(t, int64(7), rec.Sale.Unit.ProjectID)
	assert.Equal(t, entity.PaymentStatusPending, rec.Status)
	assert.True(t, rec.Amount.Equal(decimal.RequireFromString("15000.50")))
	assert.Equal(t, "2024-02-05", rec.DueDate.Label())
	assert.Equal(t, "2024-02-01", rec.PaymentDate.Label())
}

func TestNormalize_RechazaFilasMalFormadas(t *testing.T) {
	negative := historyRow(2)
	negative.Monto = decimal.NewFromInt(-1)

	unknown := historyRow(3)
	unknown.EstatusPago = "cancelado"

	noID := historyRow(0)

	for _, row := range []entity.PaymentHistoryRow{negative, unknown, noID} {
		_, err := cobranza.Normalize(row, time.UTC)
		assert.True(t, errors.Is(err, domain.ErrInvalidRow), "fila %d debe rechazarse", row.IDPago)
	}
}

func TestNormalize_EstatusEnIngles(t *testing.T) {
	row := historyRow(4)
	row.EstatusPago = "PAID"
	rec, err := cobranza.Normalize(row, time.UTC)
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentStatusPaid, rec.Status)
}

func TestNormalizeAll_SeparaRechazados(t *testing.T) {
	bad := historyRow(5)
	bad.Monto = decimal.NewFromInt(-10)

	recs, rejected := cobranza.NormalizeAll([]entity.PaymentHistoryRow{historyRow(1), bad, historyRow(6)}, time.UTC)
	require.Len(t, recs, 2)
	require.Len(t, rejected, 1)
	assert.Equal(t, int64(5), rejected[0].PaymentID)
	assert.ErrorIs(t, rejected[0], domain.ErrInvalidRow)
	assert.Equal(t, int64(6), recs[1].ID, "se conserva el orden de entrada")
}

func TestParseDate_Formatos(t *testing.T) {
	loc := time.FixedZone("CST", -6*3600)
	tests := []struct {
		name  string
		raw   *string
		valid bool
		label string
	}{
		{"nil", nil, false, entity.DateLabelMissing},
		{"vacío", strPtr("  "), false, entity.DateLabelMissing},
		{"fecha ISO", strPtr("2024-03-09"), true, "2024-03-09"},
		{"timestamptz como texto", strPtr("2024-03-09 18:00:00+00"), true, "2024-03-09"},
		{"RFC3339", strPtr("2024-03-09T12:00:00Z"), true, "2024-03-09"},
		{"ilegible", strPtr("no es fecha"), false, entity.DateLabelInvalid},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := cobranza.ParseDate(tt.raw, loc)
			assert.Equal(t, tt.valid, d.Valid)
			assert.Equal(t, tt.label, d.Label())
		})
	}
}
