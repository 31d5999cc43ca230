package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/leox-api/internal/domain"
	"github.com/jhoicas/leox-api/internal/domain/entity"
	"github.com/jhoicas/leox-api/internal/domain/repository"
)

var _ repository.ProjectRepository = (*ProjectRepo)(nil)

// ProjectRepo lectura de proyectos y desarrollador.
type ProjectRepo struct {
	q Querier
}

// NewProjectRepository construye el adaptador de proyectos.
func NewProjectRepository(q Querier) *ProjectRepo {
	return &ProjectRepo{q: q}
}

const projectColumns = `id_proyecto, id_desarrollador, nombre, COALESCE(ubicacion, ''), created_at`

// GetByID busca exactamente un proyecto; se piden dos filas para detectar duplicados.
func (r *ProjectRepo) GetByID(ctx context.Context, projectID int64) (*entity.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM proyectos WHERE id_proyecto = $1 LIMIT 2`
	rows, err := r.q.Query(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("projects.GetByID: %w", err)
	}
	projects, err := collectProjects(rows)
	if err != nil {
		return nil, fmt.Errorf("projects.GetByID: %w", err)
	}
	switch len(projects) {
	case 0:
		return nil, domain.ErrNotFound
	case 1:
		return &projects[0], nil
	default:
		return nil, fmt.Errorf("projects.GetByID %d: %w", projectID, domain.ErrAmbiguous)
	}
}

// ListByDeveloper devuelve los proyectos del desarrollador ordenados por nombre.
func (r *ProjectRepo) ListByDeveloper(ctx context.Context, developerID int64) ([]entity.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM proyectos WHERE id_desarrollador = $1 ORDER BY nombre, id_proyecto`
	rows, err := r.q.Query(ctx, query, developerID)
	if err != nil {
		return nil, fmt.Errorf("projects.ListByDeveloper: %w", err)
	}
	projects, err := collectProjects(rows)
	if err != nil {
		return nil, fmt.Errorf("projects.ListByDeveloper: %w", err)
	}
	return projects, nil
}

// GetDeveloper devuelve el desarrollador o domain.ErrNotFound.
func (r *ProjectRepo) GetDeveloper(ctx context.Context, developerID int64) (*entity.Developer, error) {
	const query = `SELECT id_desarrollador, COALESCE(nombre, '') FROM desarrollador WHERE id_desarrollador = $1`
	var d entity.Developer
	if err := r.q.QueryRow(ctx, query, developerID).Scan(&d.ID, &d.Name); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("projects.GetDeveloper: %w", err)
	}
	return &d, nil
}

func collectProjects(rows pgx.Rows) ([]entity.Project, error) {
	defer rows.Close()
	out := make([]entity.Project, 0)
	for rows.Next() {
		var (
			p         entity.Project
			createdAt *time.Time
		)
		if err := rows.Scan(&p.ID, &p.DeveloperID, &p.Name, &p.Location, &createdAt); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		if createdAt != nil {
			p.CreatedAt = *createdAt
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
