package cobranza_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appcobranza "github.com/jhoicas/leox-api/internal/application/cobranza"
	"github.com/jhoicas/leox-api/internal/domain"
)

// pagedSource simula un origen de datos con tope de filas por petición.
type pagedSource struct {
	total   int
	calls   int
	failAt  int // página que falla (-1 = nunca)
	ranges  [][2]int
	onCalls func(call int)
}

func newPagedSource(total int) *pagedSource { return &pagedSource{total: total, failAt: -1} }

func (s *pagedSource) page(_ context.Context, from, to int) ([]int, error) {
	call := s.calls
	s.calls++
	s.ranges = append(s.ranges, [2]int{from, to})
	if s.onCalls != nil {
		s.onCalls(call)
	}
	if call == s.failAt {
		return nil, errors.New("timeout de red")
	}
	var out []int
	for i := from; i <= to && i < s.total; i++ {
		out = append(out, i)
	}
	return out, nil
}

// Dado un origen con K filas, FetchAll devuelve exactamente K filas, sin duplicados
// ni omisiones. Pide floor(K/tamaño)+1 páginas: la última es la página corta que
// confirma el fin de los datos (vacía cuando K es múltiplo exacto).
func TestFetchAll_Completitud(t *testing.T) {
	for _, k := range []int{0, 1, 999, 1000, 1001, 3000, 3250, 9999} {
		src := newPagedSource(k)
		rows, report, err := appcobranza.FetchAll(context.Background(), zerolog.Nop(), src.page, appcobranza.FetchOptions{})
		require.NoError(t, err, "K=%d", k)

		require.Len(t, rows, k, "K=%d", k)
		for i, v := range rows {
			require.Equal(t, i, v, "K=%d: fila %d fuera de orden o duplicada", k, i)
		}
		assert.Equal(t, k/1000+1, src.calls, "K=%d", k)
		assert.Equal(t, src.calls, report.Pages)
		assert.False(t, report.Truncated)
	}
}

func TestFetchAll_RangosInclusivos(t *testing.T) {
	src := newPagedSource(2500)
	_, _, err := appcobranza.FetchAll(context.Background(), zerolog.Nop(), src.page, appcobranza.FetchOptions{})
	require.NoError(t, err)
	assert.Equal(t, [][2]int{{0, 999}, {1000, 1999}, {2000, 2999}}, src.ranges)
}

func TestFetchAll_TopeDePaginasAdvierteYTrunca(t *testing.T) {
	src := newPagedSource(50)
	rows, report, err := appcobranza.FetchAll(context.Background(), zerolog.Nop(), src.page,
		appcobranza.FetchOptions{PageSize: 10, MaxPages: 3})
	require.NoError(t, err)
	assert.Len(t, rows, 30)
	assert.Equal(t, 4, src.calls)
	assert.Equal(t, [2]int{30, 30}, src.ranges[3], "una sola fila pasado el tope")
	assert.Equal(t, 3, report.Pages)
	assert.True(t, report.Truncated, "el truncamiento debe ser visible para el caller")
}

func TestFetchAll_ExactamenteEnElTopeNoTrunca(t *testing.T) {
	for _, strict := range []bool{false, true} {
		src := newPagedSource(30)
		rows, report, err := appcobranza.FetchAll(context.Background(), zerolog.Nop(), src.page,
			appcobranza.FetchOptions{PageSize: 10, MaxPages: 3, StrictCeiling: strict})
		require.NoError(t, err, "strict=%v", strict)
		assert.Len(t, rows, 30)
		assert.False(t, report.Truncated, "strict=%v: no se perdió ninguna fila", strict)
		assert.Equal(t, 3, report.Pages)
		assert.Equal(t, 4, src.calls)
	}
}

func TestFetchAll_ErrorEnComprobacionDelTope(t *testing.T) {
	src := newPagedSource(50)
	src.failAt = 3
	rows, _, err := appcobranza.FetchAll(context.Background(), zerolog.Nop(), src.page,
		appcobranza.FetchOptions{PageSize: 10, MaxPages: 3})
	require.Error(t, err)
	assert.Nil(t, rows)
}

func TestFetchAll_TopeEstrictoEsError(t *testing.T) {
	src := newPagedSource(50)
	rows, _, err := appcobranza.FetchAll(context.Background(), zerolog.Nop(), src.page,
		appcobranza.FetchOptions{PageSize: 10, MaxPages: 3, StrictCeiling: true})
	assert.ErrorIs(t, err, domain.ErrPageCeiling)
	assert.Nil(t, rows)
}

func TestFetchAll_ErrorDescartaParciales(t *testing.T) {
	src := newPagedSource(5000)
	src.failAt = 2
	rows, _, err := appcobranza.FetchAll(context.Background(), zerolog.Nop(), src.page, appcobranza.FetchOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "timeout de red")
	assert.Nil(t, rows, "no hay éxito parcial")
	assert.Equal(t, 3, src.calls, "no se piden más páginas tras el error")
}

func TestFetchAll_CancelacionEntrePaginas(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	src := newPagedSource(5000)
	src.onCalls = func(call int) {
		if call == 1 {
			cancel()
		}
	}
	rows, _, err := appcobranza.FetchAll(ctx, zerolog.Nop(), src.page, appcobranza.FetchOptions{})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, rows)
	assert.Equal(t, 2, src.calls)
}

func TestFetchAll_TimeoutPorPagina(t *testing.T) {
	var deadlines []bool
	page := func(ctx context.Context, from, to int) ([]int, error) {
		_, ok := ctx.Deadline()
		deadlines = append(deadlines, ok)
		return nil, nil
	}
	_, _, err := appcobranza.FetchAll(context.Background(), zerolog.Nop(), page,
		appcobranza.FetchOptions{PageTimeout: time.Second})
	require.NoError(t, err)
	assert.Equal(t, []bool{true}, deadlines)
}

func TestFetchAll_TamañoMayorAlTopeSeAjusta(t *testing.T) {
	src := newPagedSource(1500)
	_, _, err := appcobranza.FetchAll(context.Background(), zerolog.Nop(), src.page,
		appcobranza.FetchOptions{PageSize: 5000})
	require.NoError(t, err)
	assert.Equal(t, [2]int{0, 999}, src.ranges[0])
}
