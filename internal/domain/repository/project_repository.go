package repository

import (
	"context"

	"github.com/jhoicas/leox-api/internal/domain/entity"
)

// ProjectRepository puerto de lectura sobre proyectos y desarrollador.
type ProjectRepository interface {
	// GetByID busca exactamente un proyecto. Devuelve domain.ErrNotFound si no hay
	// coincidencias y domain.ErrAmbiguous si hay más de una.
	GetByID(ctx context.Context, projectID int64) (*entity.Project, error)
	ListByDeveloper(ctx context.Context, developerID int64) ([]entity.Project, error)
	GetDeveloper(ctx context.Context, developerID int64) (*entity.Developer, error)
}

// ReportRepository consultas de solo lectura sobre las vistas de reporte.
// Las agregaciones pesadas viven en la base; aquí solo se leen.
type ReportRepository interface {
	GetProjectSummary(ctx context.Context, projectID int64) (*entity.ProjectSummary, error)
	ListPortfolio(ctx context.Context, developerID int64) ([]entity.PortfolioRow, error)
	// GetClientPanel devuelve domain.ErrNotFound si el cliente no tiene contrato.
	GetClientPanel(ctx context.Context, clientID int64) (*entity.ClientPanel, error)
}
