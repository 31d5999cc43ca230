// Package cobranza orquesta la cobranza: lectura paginada del historial de pagos,
// normalización, clasificación, numeración por cliente, KPIs y "marcar como pagado".
package cobranza

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/leox-api/internal/application/dto"
	"github.com/jhoicas/leox-api/internal/domain"
	core "github.com/jhoicas/leox-api/internal/domain/cobranza"
	"github.com/jhoicas/leox-api/internal/domain/entity"
	"github.com/jhoicas/leox-api/internal/domain/repository"
)

// Config reglas de cobranza configurables.
type Config struct {
	Fetch       FetchOptions
	DueSoonDays int
	TieBreak    core.TieBreak
	Location    *time.Location // zona horaria para interpretar fechas y "hoy"
}

// UseCase casos de uso de cobranza.
type UseCase struct {
	payments repository.PaymentRepository
	projects repository.ProjectRepository
	cfg      Config
	log      zerolog.Logger
	now      func() time.Time
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	payments repository.PaymentRepository,
	projects repository.ProjectRepository,
	cfg Config,
	log zerolog.Logger,
) *UseCase {
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	if cfg.TieBreak == "" {
		cfg.TieBreak = core.TieBreakInputOrder
	}
	return &UseCase{payments: payments, projects: projects, cfg: cfg, log: log, now: time.Now}
}

// WithClock reemplaza el reloj (tests).
func (uc *UseCase) WithClock(now func() time.Time) *UseCase {
	uc.now = now
	return uc
}

// Today devuelve el instante actual en la zona configurada. Se evalúa en cada
// llamada; nunca se guarda.
func (uc *UseCase) Today() time.Time {
	return uc.now().In(uc.cfg.Location)
}

// Location zona horaria configurada.
func (uc *UseCase) Location() *time.Location { return uc.cfg.Location }

// Result pagos de un alcance ya procesados por todo el pipeline.
type Result struct {
	Records    []entity.PaymentRecord
	Classified []entity.ClassifiedPayment
	Numbered   []entity.NumberedPayment
	Report     FetchReport
	Rejected   int
}

// Collect lee todas las filas que cumplen el filtro y las pasa por
// normalizador → clasificador → agrupador. display vacío no filtra; si viene,
// se aplica después de numerar para que cada pago conserve su número.
func (uc *UseCase) Collect(ctx context.Context, filter repository.PaymentFilter, display entity.DisplayStatus) (*Result, error) {
	if len(filter.ProjectNames) == 0 && filter.ClientID == 0 && filter.SaleID == 0 {
		return nil, fmt.Errorf("%w: alcance de proyecto o cliente requerido", domain.ErrInvalidInput)
	}

	rows, report, err := FetchAll(ctx, uc.log, func(ctx context.Context, from, to int) ([]entity.PaymentHistoryRow, error) {
		return uc.payments.FetchPage(ctx, filter, from, to)
	}, uc.cfg.Fetch)
	if err != nil {
		return nil, fmt.Errorf("cobranza: historial de pagos: %w", err)
	}

	records, rejected := core.NormalizeAll(rows, uc.cfg.Location)
	for _, r := range rejected {
		uc.log.Warn().Int64("id_pago", r.PaymentID).Err(r.Err).Msg("cobranza: fila descartada")
	}

	classifier := core.Classifier{DueSoonDays: uc.cfg.DueSoonDays}
	classified := classifier.ClassifyAll(records, uc.Today())
	numbered := core.Group(classified, uc.cfg.TieBreak)
	if display != "" {
		keptC := make([]entity.ClassifiedPayment, 0, len(classified))
		for _, p := range classified {
			if p.Display == display {
				keptC = append(keptC, p)
			}
		}
		keptN := make([]entity.NumberedPayment, 0, len(numbered))
		for _, p := range numbered {
			if p.Display == display {
				keptN = append(keptN, p)
			}
		}
		classified, numbered = keptC, keptN
	}

	return &Result{
		Records:    records,
		Classified: classified,
		Numbered:   numbered,
		Report:     report,
		Rejected:   len(rejected),
	}, nil
}

// ListByProject devuelve la tabla de cobranza de un proyecto.
func (uc *UseCase) ListByProject(ctx context.Context, projectID int64, q dto.CobranzaQuery) (*dto.CobranzaDTO, error) {
	project, err := uc.projects.GetByID(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("cobranza: proyecto %d: %w", projectID, err)
	}
	return uc.list(ctx, project.Name, []string{project.Name}, q)
}

// ListByDeveloper devuelve la cobranza de todos los proyectos del desarrollador o,
// si q.ProjectID viene informado, solo de ese proyecto (que debe pertenecerle).
func (uc *UseCase) ListByDeveloper(ctx context.Context, developerID int64, q dto.CobranzaQuery) (*dto.CobranzaDTO, error) {
	if developerID <= 0 {
		return nil, domain.ErrForbidden
	}
	if q.ProjectID != 0 {
		project, err := uc.projects.GetByID(ctx, q.ProjectID)
		if err != nil {
			return nil, fmt.Errorf("cobranza: proyecto %d: %w", q.ProjectID, err)
		}
		if project.DeveloperID != developerID {
			return nil, domain.ErrForbidden
		}
		return uc.list(ctx, project.Name, []string{project.Name}, q)
	}

	projects, err := uc.projects.ListByDeveloper(ctx, developerID)
	if err != nil {
		return nil, fmt.Errorf("cobranza: proyectos del desarrollador %d: %w", developerID, err)
	}
	scope := fmt.Sprintf("desarrollador:%d", developerID)
	if len(projects) == 0 {
		return &dto.CobranzaDTO{Scope: scope, Projects: []string{}, Payments: []dto.PaymentDTO{}, KPIs: ToKPIsDTO(core.Summarize(nil))}, nil
	}
	names := make([]string, 0, len(projects))
	for _, p := range projects {
		names = append(names, p.Name)
	}
	return uc.list(ctx, scope, names, q)
}

func (uc *UseCase) list(ctx context.Context, scope string, projectNames []string, q dto.CobranzaQuery) (*dto.CobranzaDTO, error) {
	filter, display, err := buildFilter(q, uc.cfg.Location)
	if err != nil {
		return nil, err
	}
	filter.ProjectNames = projectNames

	res, err := uc.Collect(ctx, filter, display)
	if err != nil {
		return nil, err
	}

	payments := make([]dto.PaymentDTO, 0, len(res.Numbered))
	for _, p := range res.Numbered {
		payments = append(payments, ToPaymentDTO(p))
	}
	return &dto.CobranzaDTO{
		Scope:     scope,
		Projects:  projectNames,
		Payments:  payments,
		KPIs:      ToKPIsDTO(core.Summarize(res.Classified)),
		Truncated: res.Report.Truncated,
		Rejected:  res.Rejected,
	}, nil
}

// MarkAsPaid marca un pago como Pagado con la fecha de hoy. El pago debe pertenecer
// a uno de los proyectos del desarrollador. Es una sola actualización
// sin bloqueo optimista; la guarda de estatus va en la propia sentencia, así que de
// dos llamadas simultáneas solo una cambia la fila y la otra recibe domain.ErrConflict.
func (uc *UseCase) MarkAsPaid(ctx context.Context, developerID, paymentID int64, in dto.MarkPaidRequest) (*dto.PaymentDTO, error) {
	if paymentID <= 0 {
		return nil, domain.ErrInvalidInput
	}

	today := uc.Today()
	paidAt := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, uc.cfg.Location)
	patch := entity.MarkPaidPatch{
		Method:    optional(in.Method),
		Reference: optional(in.Reference),
		Notes:     optional(in.Notes),
	}

	current, err := uc.payments.GetByID(ctx, paymentID)
	if err != nil {
		return nil, fmt.Errorf("cobranza: pago %d: %w", paymentID, err)
	}
	project, err := uc.projects.GetByID(ctx, current.IDProyecto)
	if err != nil {
		return nil, fmt.Errorf("cobranza: proyecto del pago %d: %w", paymentID, err)
	}
	if developerID <= 0 || project.DeveloperID != developerID {
		return nil, domain.ErrForbidden
	}
	if status, ok := entity.ParsePaymentStatus(current.EstatusPago); ok && status == entity.PaymentStatusPaid {
		return nil, fmt.Errorf("%w: el pago %d ya está pagado", domain.ErrConflict, paymentID)
	}

	updated, err := uc.payments.MarkAsPaid(ctx, paymentID, patch, paidAt)
	if err != nil {
		return nil, fmt.Errorf("cobranza: marcar pago %d: %w", paymentID, err)
	}

	rec, err := core.Normalize(*updated, uc.cfg.Location)
	if err != nil {
		return nil, fmt.Errorf("cobranza: pago %d actualizado: %w", paymentID, err)
	}
	uc.log.Info().
		Int64("id_pago", paymentID).
		Str("metodo", in.Method).
		Msg("cobranza: pago marcado como pagado")

	classified := core.Classifier{DueSoonDays: uc.cfg.DueSoonDays}.ClassifyAll([]entity.PaymentRecord{rec}, today)
	out := ToPaymentDTO(entity.NumberedPayment{
		ClassifiedPayment: classified[0],
		ClientName:        core.ClientName(rec),
	})
	return &out, nil
}

// buildFilter traduce los parámetros de consulta a filtros del repositorio.
func buildFilter(q dto.CobranzaQuery, loc *time.Location) (repository.PaymentFilter, entity.DisplayStatus, error) {
	f := repository.PaymentFilter{
		ClientName: strings.TrimSpace(q.Client),
		Search:     strings.TrimSpace(q.Search),
	}
	if q.Status != "" {
		status, ok := entity.ParsePaymentStatus(q.Status)
		if !ok {
			return f, "", fmt.Errorf("%w: status %q", domain.ErrInvalidInput, q.Status)
		}
		f.Status = status
	}
	var display entity.DisplayStatus
	if q.Display != "" {
		d, ok := entity.ParseDisplayStatus(q.Display)
		if !ok {
			return f, "", fmt.Errorf("%w: display %q", domain.ErrInvalidInput, q.Display)
		}
		display = d
	}
	var err error
	if f.From, err = parseQueryDate(q.From, "from", loc); err != nil {
		return f, "", err
	}
	if f.To, err = parseQueryDate(q.To, "to", loc); err != nil {
		return f, "", err
	}
	if f.From != nil && f.To != nil && f.From.After(*f.To) {
		return f, "", fmt.Errorf("%w: from no puede ser posterior a to", domain.ErrInvalidInput)
	}
	return f, display, nil
}

func parseQueryDate(s, name string, loc *time.Location) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.ParseInLocation(entity.DateLayout, s, loc)
	if err != nil {
		return nil, fmt.Errorf("%w: %s inválido", domain.ErrInvalidInput, name)
	}
	return &t, nil
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
