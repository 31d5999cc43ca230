package cobranza_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/leox-api/internal/domain/cobranza"
	"github.com/jhoicas/leox-api/internal/domain/entity"
)

func paymentOf(id int64, client, unit string, date entity.OptionalDate) entity.ClassifiedPayment {
	return entity.ClassifiedPayment{
		PaymentRecord: entity.PaymentRecord{
			ID:          id,
			Amount:      decimal.NewFromInt(100),
			Status:      entity.PaymentStatusPending,
			PaymentDate: date,
			Sale: entity.SaleRef{
				Client: entity.ClientRef{Name: client},
				Unit:   entity.UnitRef{Number: unit},
			},
		},
		Display: entity.DisplayUpcoming,
	}
}

func dateOf(y int, m time.Month, d int) entity.OptionalDate {
	return entity.DateOf(time.Date(y, m, d, 0, 0, 0, 0, time.UTC))
}

func TestGroup_NumeraPorClienteSinImportarOrdenDeEntrada(t *testing.T) {
	marzo := paymentOf(2, "Ana", "A-1", dateOf(2024, 3, 1))
	enero := paymentOf(1, "Ana", "A-1", dateOf(2024, 1, 1))

	for _, input := range [][]entity.ClassifiedPayment{
		{enero, marzo},
		{marzo, enero},
	} {
		out := cobranza.Group(input, cobranza.TieBreakInputOrder)
		require.Len(t, out, 2)
		assert.Equal(t, int64(1), out[0].ID)
		assert.Equal(t, 1, out[0].PaymentNumber)
		assert.Equal(t, int64(2), out[1].ID)
		assert.Equal(t, 2, out[1].PaymentNumber)
	}
}

// Para cada cliente con N pagos, los números asignados son exactamente 1..N.
func TestGroup_NumeracionSinHuecosNiRepetidos(t *testing.T) {
	var input []entity.ClassifiedPayment
	clients := []string{"Carlos", "Ana", "Beatriz"}
	id := int64(1)
	for i := 0; i < 12; i++ {
		c := clients[i%len(clients)]
		input = append(input, paymentOf(id, c, "U", dateOf(2024, time.Month(12-i%12), 1+i)))
		id++
	}

	out := cobranza.Group(input, cobranza.TieBreakInputOrder)
	require.Len(t, out, len(input))

	numbers := map[string][]int{}
	for _, p := range out {
		numbers[p.ClientName] = append(numbers[p.ClientName], p.PaymentNumber)
	}
	for client, got := range numbers {
		want := make([]int, len(got))
		for i := range want {
			want[i] = i + 1
		}
		assert.Equal(t, want, got, "cliente %s", client)
	}

	// Orden por nombre de cliente ascendente.
	assert.Equal(t, "Ana", out[0].ClientName)
	assert.Equal(t, "Carlos", out[len(out)-1].ClientName)
}

func TestGroup_ClienteSinNombreUsaUnidad(t *testing.T) {
	out := cobranza.Group([]entity.ClassifiedPayment{
		paymentOf(1, "", "B-204", dateOf(2024, 1, 1)),
		paymentOf(2, "  ", "B-204", dateOf(2024, 2, 1)),
	}, cobranza.TieBreakInputOrder)

	require.Len(t, out, 2)
	assert.Equal(t, "Cliente B-204", out[0].ClientName)
	assert.Equal(t, 2, out[1].PaymentNumber)
}

func TestGroup_SinFechaAlFinalDelCliente(t *testing.T) {
	out := cobranza.Group([]entity.ClassifiedPayment{
		paymentOf(1, "Ana", "A", entity.OptionalDate{}),
		paymentOf(2, "Ana", "A", dateOf(2024, 5, 1)),
	}, cobranza.TieBreakInputOrder)

	assert.Equal(t, int64(2), out[0].ID)
	assert.Equal(t, int64(1), out[1].ID)
}

func TestGroup_Desempate(t *testing.T) {
	same := dateOf(2024, 4, 1)
	input := []entity.ClassifiedPayment{
		paymentOf(9, "Ana", "A", same),
		paymentOf(3, "Ana", "A", same),
	}

	byInput := cobranza.Group(input, cobranza.TieBreakInputOrder)
	assert.Equal(t, int64(9), byInput[0].ID, "orden estable: se conserva el orden de entrada")

	byID := cobranza.Group(input, cobranza.TieBreakID)
	assert.Equal(t, int64(3), byID[0].ID)
	assert.Equal(t, 1, byID[0].PaymentNumber)

	// Idempotente: reagrupar produce la misma numeración.
	again := cobranza.Group(input, cobranza.TieBreakID)
	assert.Equal(t, byID, again)
}

func TestGroup_NoModificaEntrada(t *testing.T) {
	input := []entity.ClassifiedPayment{
		paymentOf(2, "Zoe", "Z", dateOf(2024, 1, 1)),
		paymentOf(1, "Ana", "A", dateOf(2024, 1, 1)),
	}
	_ = cobranza.Group(input, cobranza.TieBreakInputOrder)
	assert.Equal(t, int64(2), input[0].ID)
}

func TestParseTieBreak(t *testing.T) {
	tb, err := cobranza.ParseTieBreak("")
	require.NoError(t, err)
	assert.Equal(t, cobranza.TieBreakInputOrder, tb)

	tb, err = cobranza.ParseTieBreak("ID")
	require.NoError(t, err)
	assert.Equal(t, cobranza.TieBreakID, tb)

	_, err = cobranza.ParseTieBreak("fecha")
	assert.Error(t, err)
}
