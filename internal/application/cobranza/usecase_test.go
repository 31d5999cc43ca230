package cobranza_test

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appcobranza "github.com/jhoicas/leox-api/internal/application/cobranza"
	"github.com/jhoicas/leox-api/internal/application/dto"
	"github.com/jhoicas/leox-api/internal/domain"
	"github.com/jhoicas/leox-api/internal/domain/entity"
	"github.com/jhoicas/leox-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakePayments struct {
	rows        []entity.PaymentHistoryRow
	filters     []repository.PaymentFilter
	markedPatch *entity.MarkPaidPatch
	markedAt    time.Time
}

func (f *fakePayments) FetchPage(_ context.Context, filter repository.PaymentFilter, from, to int) ([]entity.PaymentHistoryRow, error) {
	f.filters = append(f.filters, filter)
	if from >= len(f.rows) {
		return nil, nil
	}
	end := to + 1
	if end > len(f.rows) {
		end = len(f.rows)
	}
	return f.rows[from:end], nil
}

func (f *fakePayments) GetByID(_ context.Context, id int64) (*entity.PaymentHistoryRow, error) {
	for i := range f.rows {
		if f.rows[i].IDPago == id {
			r := f.rows[i]
			return &r, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakePayments) MarkAsPaid(_ context.Context, id int64, patch entity.MarkPaidPatch, paidAt time.Time) (*entity.PaymentHistoryRow, error) {
	for i := range f.rows {
		if f.rows[i].IDPago == id {
			f.markedPatch = &patch
			f.markedAt = paidAt
			d := paidAt.Format(entity.DateLayout)
			f.rows[i].EstatusPago = string(entity.PaymentStatusPaid)
			f.rows[i].FechaPago = &d
			f.rows[i].MetodoPago = patch.Method
			f.rows[i].Referencia = patch.Reference
			f.rows[i].Notas = patch.Notes
			r := f.rows[i]
			return &r, nil
		}
	}
	return nil, domain.ErrNotFound
}

type fakeProjects struct {
	projects map[int64]entity.Project
}

func (f *fakeProjects) GetByID(_ context.Context, id int64) (*entity.Project, error) {
	p, ok := f.projects[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &p, nil
}

func (f *fakeProjects) ListByDeveloper(_ context.Context, developerID int64) ([]entity.Project, error) {
	var out []entity.Project
	for id := int64(1); id <= int64(len(f.projects))+10; id++ {
		if p, ok := f.projects[id]; ok && p.DeveloperID == developerID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeProjects) GetDeveloper(_ context.Context, id int64) (*entity.Developer, error) {
	return &entity.Developer{ID: id, Name: "Grupo Leox"}, nil
}

var fixedNow = time.Date(2024, 6, 15, 9, 0, 0, 0, time.UTC)

func sp(s string) *string { return &s }

func row(id int64, client, due, status, amount string) entity.PaymentHistoryRow {
	return entity.PaymentHistoryRow{
		IDPago:           id,
		IDVenta:          100 + id,
		IDProyecto:       1,
		Proyecto:         "Remodela Norte",
		Monto:            decimal.RequireFromString(amount),
		FechaPago:        sp(due),
		FechaVencimiento: sp(due),
		ConceptoPago:     "Mensualidad",
		EstatusPago:      status,
		NombreCliente:    sp(client),
		NumUnidad:        "A-1",
	}
}

func newUseCase(payments *fakePayments) *appcobranza.UseCase {
	projects := &fakeProjects{projects: map[int64]entity.Project{
		1: {ID: 1, DeveloperID: 10, Name: "Remodela Norte"},
		2: {ID: 2, DeveloperID: 10, Name: "Remodela Sur"},
		3: {ID: 3, DeveloperID: 99, Name: "Ajeno"},
	}}
	return appcobranza.NewUseCase(payments, projects, appcobranza.Config{}, zerolog.Nop()).
		WithClock(func() time.Time { return fixedNow })
}

// ──────────────────────────────────────────────────────────────────────────────
// Listado
// ──────────────────────────────────────────────────────────────────────────────

func TestListByProject_PipelineCompleto(t *testing.T) {
	payments := &fakePayments{rows: []entity.PaymentHistoryRow{
		row(1, "Ana", "2024-06-12", "Pendiente", "1000"), // vencido
		row(2, "Ana", "2024-05-01", "Pagado", "500"),     // pagado
		row(3, "Bruno", "2024-06-18", "Pendiente", "200"), // por vencer
		row(4, "Bruno", "2024-09-01", "Pendiente", "300"), // próximo
		row(5, "Bruno", "2024-07-01", "desconocido", "1"), // rechazado
	}}
	uc := newUseCase(payments)

	out, err := uc.ListByProject(context.Background(), 1, dto.CobranzaQuery{})
	require.NoError(t, err)

	assert.Equal(t, "Remodela Norte", out.Scope)
	assert.Equal(t, 1, out.Rejected)
	require.Len(t, out.Payments, 4)

	// Ana: 2024-05-01 (#1), 2024-06-12 (#2); Bruno: 2024-06-18 (#1), 2024-09-01 (#2)
	assert.Equal(t, int64(2), out.Payments[0].ID)
	assert.Equal(t, 1, out.Payments[0].PaymentNumber)
	assert.Equal(t, "pagado", out.Payments[0].Display)
	assert.Equal(t, int64(1), out.Payments[1].ID)
	assert.Equal(t, "vencido", out.Payments[1].Display)
	assert.Equal(t, 2, out.Payments[1].PaymentNumber)
	assert.Equal(t, "Bruno", out.Payments[2].ClientName)
	assert.Equal(t, "por_vencer", out.Payments[2].Display)
	assert.Equal(t, "proximo", out.Payments[3].Display)

	assert.True(t, out.KPIs.TotalCollected.Equal(decimal.NewFromInt(500)))
	assert.True(t, out.KPIs.TotalPending.Equal(decimal.NewFromInt(1500)))
	assert.True(t, out.KPIs.OverdueAmount.Equal(decimal.NewFromInt(1000)))
	assert.Equal(t, 1, out.KPIs.OverdueCount)

	require.NotEmpty(t, payments.filters)
	assert.Equal(t, []string{"Remodela Norte"}, payments.filters[0].ProjectNames)
}

func TestListByProject_FiltrosSeEmpujanAlOrigen(t *testing.T) {
	payments := &fakePayments{}
	uc := newUseCase(payments)

	_, err := uc.ListByProject(context.Background(), 1, dto.CobranzaQuery{
		Client: " Ana ", Status: "pagado", Search: "A-1", From: "2024-01-01", To: "2024-03-31",
	})
	require.NoError(t, err)

	require.Len(t, payments.filters, 1)
	f := payments.filters[0]
	assert.Equal(t, "Ana", f.ClientName)
	assert.Equal(t, entity.PaymentStatusPaid, f.Status)
	assert.Equal(t, "A-1", f.Search)
	require.NotNil(t, f.From)
	require.NotNil(t, f.To)
	assert.Equal(t, "2024-03-31", f.To.Format(entity.DateLayout))
}

func TestListByProject_FiltroVisualConservaNumeracion(t *testing.T) {
	payments := &fakePayments{rows: []entity.PaymentHistoryRow{
		row(1, "Ana", "2024-06-12", "Pendiente", "1000"), // vencido, #2
		row(2, "Ana", "2024-05-01", "Pagado", "500"),     // pagado, #1
		row(3, "Ana", "2024-09-01", "Pendiente", "1000"), // próximo, #3
	}}
	out, err := newUseCase(payments).ListByProject(context.Background(), 1, dto.CobranzaQuery{Display: "vencido"})
	require.NoError(t, err)
	require.Len(t, out.Payments, 1)
	assert.Equal(t, int64(1), out.Payments[0].ID)
	assert.Equal(t, 2, out.Payments[0].PaymentNumber, "el número se calcula sobre todos los pagos del cliente")

	out, err = newUseCase(payments).ListByProject(context.Background(), 1, dto.CobranzaQuery{Display: "proximo"})
	require.NoError(t, err)
	require.Len(t, out.Payments, 1)
	assert.Equal(t, 3, out.Payments[0].PaymentNumber)
	assert.True(t, out.KPIs.TotalPending.Equal(decimal.NewFromInt(1000)), "los KPIs siguen al filtro visual")
}

func TestListByProject_EntradaInvalida(t *testing.T) {
	uc := newUseCase(&fakePayments{})
	for _, q := range []dto.CobranzaQuery{
		{Status: "cancelado"},
		{Display: "rojo"},
		{From: "01/01/2024"},
		{From: "2024-05-01", To: "2024-01-01"},
	} {
		_, err := uc.ListByProject(context.Background(), 1, q)
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "%+v", q)
	}
}

func TestListByProject_ProyectoDesconocido(t *testing.T) {
	_, err := newUseCase(&fakePayments{}).ListByProject(context.Background(), 404, dto.CobranzaQuery{})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestListByDeveloper_TodosSusProyectos(t *testing.T) {
	payments := &fakePayments{}
	out, err := newUseCase(payments).ListByDeveloper(context.Background(), 10, dto.CobranzaQuery{})
	require.NoError(t, err)
	assert.Equal(t, "desarrollador:10", out.Scope)
	assert.Equal(t, []string{"Remodela Norte", "Remodela Sur"}, payments.filters[0].ProjectNames)
	assert.NotNil(t, out.Payments)
}

func TestListByDeveloper_ProyectoAjenoProhibido(t *testing.T) {
	_, err := newUseCase(&fakePayments{}).ListByDeveloper(context.Background(), 10, dto.CobranzaQuery{ProjectID: 3})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestListByDeveloper_SinProyectos(t *testing.T) {
	payments := &fakePayments{}
	out, err := newUseCase(payments).ListByDeveloper(context.Background(), 55, dto.CobranzaQuery{})
	require.NoError(t, err)
	assert.Empty(t, out.Payments)
	assert.Empty(t, payments.filters, "sin proyectos no se consulta el historial")
}

// ──────────────────────────────────────────────────────────────────────────────
// Marcar como pagado
// ──────────────────────────────────────────────────────────────────────────────

func TestMarkAsPaid_ActualizaYDevuelvePagado(t *testing.T) {
	payments := &fakePayments{rows: []entity.PaymentHistoryRow{row(1, "Ana", "2024-06-12", "Pendiente", "1000")}}
	uc := newUseCase(payments)

	out, err := uc.MarkAsPaid(context.Background(), 10, 1, dto.MarkPaidRequest{
		Method: "Transferencia", Reference: " SPEI-123 ",
	})
	require.NoError(t, err)

	assert.Equal(t, "Pagado", out.Status)
	assert.Equal(t, "pagado", out.Display)
	require.NotNil(t, out.PaymentDate)
	assert.Equal(t, "2024-06-15", *out.PaymentDate, "fecha_pago = día del cambio de estatus")
	require.NotNil(t, out.Reference)
	assert.Equal(t, "SPEI-123", *out.Reference)
	assert.Nil(t, out.Notes)

	require.NotNil(t, payments.markedPatch)
	assert.Equal(t, "Transferencia", *payments.markedPatch.Method)
}

func TestMarkAsPaid_YaPagadoEsConflicto(t *testing.T) {
	payments := &fakePayments{rows: []entity.PaymentHistoryRow{row(1, "Ana", "2024-06-12", "Pagado", "1000")}}
	_, err := newUseCase(payments).MarkAsPaid(context.Background(), 10, 1, dto.MarkPaidRequest{})
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Nil(t, payments.markedPatch)
}

func TestMarkAsPaid_Errores(t *testing.T) {
	payments := &fakePayments{rows: []entity.PaymentHistoryRow{row(1, "Ana", "2024-06-12", "Pendiente", "1000")}}
	uc := newUseCase(payments)

	_, err := uc.MarkAsPaid(context.Background(), 10, 0, dto.MarkPaidRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.MarkAsPaid(context.Background(), 10, 77, dto.MarkPaidRequest{})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.MarkAsPaid(context.Background(), 99, 1, dto.MarkPaidRequest{})
	assert.ErrorIs(t, err, domain.ErrForbidden)
	assert.Nil(t, payments.markedPatch, "no se actualiza si el pago es de otro desarrollador")
}


func TestMarkAsPaid_SinAlcanceNoActualizaPagoAjeno(t *testing.T) {
	ajeno := row(1, "Ana", "2024-06-12", "Pendiente", "1000")
	ajeno.IDProyecto = 3 // proyecto del desarrollador 99
	payments := &fakePayments{rows: []entity.PaymentHistoryRow{ajeno}}

	_, err := newUseCase(payments).MarkAsPaid(context.Background(), 0, 1, dto.MarkPaidRequest{})
	assert.ErrorIs(t, err, domain.ErrForbidden)
	assert.Nil(t, payments.markedPatch)
	assert.Equal(t, "Pendiente", payments.rows[0].EstatusPago)
}

func TestListByDeveloper_SinAlcanceProhibido(t *testing.T) {
	payments := &fakePayments{rows: []entity.PaymentHistoryRow{row(1, "Ana", "2024-06-12", "Pendiente", "1000")}}
	_, err := newUseCase(payments).ListByDeveloper(context.Background(), 0, dto.CobranzaQuery{ProjectID: 1})
	assert.ErrorIs(t, err, domain.ErrForbidden)
	assert.Empty(t, payments.filters, "no se consulta el historial")
}
