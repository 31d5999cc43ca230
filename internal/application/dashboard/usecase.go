// Package dashboard contiene los casos de uso del dashboard del desarrollador:
// resumen por proyecto con series mensuales y la cartera de todos sus proyectos.
package dashboard

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	appcobranza "github.com/jhoicas/leox-api/internal/application/cobranza"
	"github.com/jhoicas/leox-api/internal/application/dto"
	"github.com/jhoicas/leox-api/internal/domain"
	core "github.com/jhoicas/leox-api/internal/domain/cobranza"
	"github.com/jhoicas/leox-api/internal/domain/entity"
	"github.com/jhoicas/leox-api/internal/domain/repository"
)

var hundred = decimal.NewFromInt(100)

// UseCase genera el dashboard de un proyecto y la cartera del desarrollador.
//
// Fuentes de datos: vistas de reporte (solo lectura), ventas_contratos, inventario
// y el historial de pagos a través del caso de uso de cobranza.
type UseCase struct {
	projects  repository.ProjectRepository
	reports   repository.ReportRepository
	sales     repository.SaleRepository
	inventory repository.InventoryRepository
	cobranza  *appcobranza.UseCase
	fetch     appcobranza.FetchOptions
	log       zerolog.Logger
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	projects repository.ProjectRepository,
	reports repository.ReportRepository,
	sales repository.SaleRepository,
	inventory repository.InventoryRepository,
	cobranza *appcobranza.UseCase,
	fetch appcobranza.FetchOptions,
	log zerolog.Logger,
) *UseCase {
	return &UseCase{
		projects:  projects,
		reports:   reports,
		sales:     sales,
		inventory: inventory,
		cobranza:  cobranza,
		fetch:     fetch,
		log:       log,
	}
}

// ListProjects devuelve los proyectos del desarrollador para el selector de proyecto.
func (uc *UseCase) ListProjects(ctx context.Context, developerID int64) ([]dto.ProjectDTO, error) {
	projects, err := uc.projects.ListByDeveloper(ctx, developerID)
	if err != nil {
		return nil, fmt.Errorf("dashboard: proyectos del desarrollador %d: %w", developerID, err)
	}
	out := make([]dto.ProjectDTO, 0, len(projects))
	for _, p := range projects {
		out = append(out, dto.ProjectDTO{ID: p.ID, Name: p.Name, Location: p.Location})
	}
	return out, nil
}

// GetProject construye el ProjectDashboardDTO del proyecto indicado. El proyecto
// debe pertenecer al desarrollador (domain.ErrForbidden).
//
// Cuatro lecturas en paralelo:
//  1. GetProjectSummary   → resumen de vw_dashboard_remodela
//  2. ventas (paginadas)  → serie mensual de ventas + absorción
//  3. cobranza.Collect    → KPIs + serie mensual de cobrado
//  4. CountByStatus       → unidades por estatus
func (uc *UseCase) GetProject(ctx context.Context, developerID, projectID int64) (*dto.ProjectDashboardDTO, error) {
	project, err := uc.projects.GetByID(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("dashboard: proyecto %d: %w", projectID, err)
	}
	if developerID <= 0 || project.DeveloperID != developerID {
		return nil, domain.ErrForbidden
	}

	var (
		summary     *entity.ProjectSummary
		saleRows    []entity.SaleRow
		salesReport appcobranza.FetchReport
		payments    *appcobranza.Result
		units       entity.UnitCounts
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s, err := uc.reports.GetProjectSummary(gctx, projectID)
		if errors.Is(err, domain.ErrNotFound) {
			// proyecto sin ventas: la vista no tiene fila
			s, err = &entity.ProjectSummary{ProjectID: projectID, ProjectName: project.Name}, nil
		}
		if err != nil {
			return fmt.Errorf("dashboard: resumen: %w", err)
		}
		summary = s
		return nil
	})
	g.Go(func() error {
		rows, report, err := appcobranza.FetchAll(gctx, uc.log, func(ctx context.Context, from, to int) ([]entity.SaleRow, error) {
			return uc.sales.FetchPage(ctx, projectID, from, to)
		}, uc.fetch)
		if err != nil {
			return fmt.Errorf("dashboard: ventas: %w", err)
		}
		saleRows, salesReport = rows, report
		return nil
	})
	g.Go(func() error {
		res, err := uc.cobranza.Collect(gctx, repository.PaymentFilter{ProjectNames: []string{project.Name}}, "")
		if err != nil {
			return fmt.Errorf("dashboard: pagos: %w", err)
		}
		payments = res
		return nil
	})
	g.Go(func() error {
		u, err := uc.inventory.CountByStatus(gctx, projectID)
		if err != nil {
			return fmt.Errorf("dashboard: inventario: %w", err)
		}
		units = u
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// ── Series ─────────────────────────────────────────────────────────────────
	salesEvents := SaleEvents(saleRows, uc.cobranza.Location())
	today := uc.cobranza.Today()

	return &dto.ProjectDashboardDTO{
		ProjectID:   project.ID,
		ProjectName: project.Name,
		Summary: dto.ProjectSummaryDTO{
			TotalSold:        summary.TotalSold.Round(2),
			TotalCollected:   summary.TotalCollected.Round(2),
			Receivable:       summary.Receivable.Round(2),
			SalesProgressPct: summary.SalesProgressPct.Round(2),
		},
		KPIs:       appcobranza.ToKPIsDTO(core.Summarize(payments.Classified)),
		Monthly:    core.BucketByMonth(salesEvents, core.CollectionEvents(payments.Records)),
		Absorption: core.Absorption(salesEvents),
		Units: dto.UnitCountsDTO{
			Total:     units.Total,
			Available: units.Available,
			Reserved:  units.Reserved,
			Sold:      units.Sold,
		},
		DateLabel: core.MonthLabel(today.Year(), int(today.Month())),
		Truncated: salesReport.Truncated || payments.Report.Truncated,
	}, nil
}

// SaleEvents convierte ventas no canceladas en eventos fechados por fecha_venta
// con el precio de venta como monto.
func SaleEvents(rows []entity.SaleRow, loc *time.Location) []entity.MoneyEvent {
	out := make([]entity.MoneyEvent, 0, len(rows))
	for _, r := range rows {
		if strings.EqualFold(strings.TrimSpace(r.Estatus), entity.SaleStatusCancelled) {
			continue
		}
		out = append(out, entity.MoneyEvent{
			Date:   core.ParseDate(r.FechaVenta, loc),
			Amount: r.PrecioVenta,
		})
	}
	return out
}

// GetPortfolio devuelve la cartera por proyecto del desarrollador con sus totales.
func (uc *UseCase) GetPortfolio(ctx context.Context, developerID int64) (*dto.PortfolioDTO, error) {
	var (
		developer *entity.Developer
		rows      []entity.PortfolioRow
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		d, err := uc.projects.GetDeveloper(gctx, developerID)
		if err != nil {
			return fmt.Errorf("dashboard: desarrollador %d: %w", developerID, err)
		}
		developer = d
		return nil
	})
	g.Go(func() error {
		r, err := uc.reports.ListPortfolio(gctx, developerID)
		if err != nil {
			return fmt.Errorf("dashboard: cartera: %w", err)
		}
		rows = r
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := &dto.PortfolioDTO{
		DeveloperID:    developer.ID,
		DeveloperName:  developer.Name,
		Projects:       make([]dto.PortfolioProjectDTO, 0, len(rows)),
		TotalContract:  decimal.Zero,
		TotalCollected: decimal.Zero,
		Receivable:     decimal.Zero,
		OverdueAmount:  decimal.Zero,
	}
	for _, r := range rows {
		out.Projects = append(out.Projects, dto.PortfolioProjectDTO{
			ProjectID:      r.ProjectID,
			ProjectName:    r.ProjectName,
			ContractsCount: r.ContractsCount,
			TotalContract:  r.TotalContract.Round(2),
			TotalCollected: r.TotalCollected.Round(2),
			Receivable:     r.Receivable.Round(2),
			OverdueAmount:  r.OverdueAmount.Round(2),
			CollectionPct:  percent(r.TotalCollected, r.TotalContract),
		})
		out.TotalContract = out.TotalContract.Add(r.TotalContract)
		out.TotalCollected = out.TotalCollected.Add(r.TotalCollected)
		out.Receivable = out.Receivable.Add(r.Receivable)
		out.OverdueAmount = out.OverdueAmount.Add(r.OverdueAmount)
	}
	out.TotalContract = out.TotalContract.Round(2)
	out.TotalCollected = out.TotalCollected.Round(2)
	out.Receivable = out.Receivable.Round(2)
	out.OverdueAmount = out.OverdueAmount.Round(2)
	return out, nil
}

func percent(part, total decimal.Decimal) decimal.Decimal {
	if !total.IsPositive() {
		return decimal.Zero
	}
	return part.Div(total).Mul(hundred).Round(2)
}
