package repository

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nexora/backend/internal/model"
)

// PgProjectRepository is the PostgreSQL implementation of ProjectRepository.
// Links are stored as jsonb; the tech stack as text[].
type PgProjectRepository struct {
	pool *pgxpool.Pool
}

// NewPgProjectRepository creates a PgProjectRepository backed by the given pool.
func NewPgProjectRepository(pool *pgxpool.Pool) *PgProjectRepository {
	return &PgProjectRepository{pool: pool}
}

var _ ProjectRepository = (*PgProjectRepository)(nil)

func scanProject(scan func(...any) error) (*model.Project, error) {
	var p model.Project
	var links []byte
	if err := scan(&p.ID, &p.Title, &p.Description, &p.TechStack, &links, &p.CreatedAt, &p.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if len(links) > 0 {
		if err := json.Unmarshal(links, &p.Links); err != nil {
			return nil, err
		}
	}
	return &p, nil
}

const projectSelectCols = `id, title, description, tech_stack, links, created_at, updated_at`

func (r *PgProjectRepository) List(ctx context.Context) ([]*model.Project, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+projectSelectCols+` FROM projects ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var projects []*model.Project
	for rows.Next() {
		p, err := scanProject(rows.Scan)
		if err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

func (r *PgProjectRepository) FindByID(ctx context.Context, id string) (*model.Project, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+projectSelectCols+` FROM projects WHERE id = $1`, id)
	return scanProject(row.Scan)
}

func (r *PgProjectRepository) Create(ctx context.Context, p *model.Project) error {
	links, err := json.Marshal(p.Links)
	if err != nil {
		return err
	}
	_, err = r.pool.Exec(ctx,
		`INSERT INTO projects (id, title, description, tech_stack, links, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		p.ID, p.Title, p.Description, p.TechStack, links, p.CreatedAt, p.UpdatedAt)
	return err
}

func (r *PgProjectRepository) Update(ctx context.Context, p *model.Project) error {
	links, err := json.Marshal(p.Links)
	if err != nil {
		return err
	}
	tag, err := r.pool.Exec(ctx,
		`UPDATE projects SET title = $1, description = $2, tech_stack = $3, links = $4, updated_at = $5
		 WHERE id = $6`,
		p.Title, p.Description, p.TechStack, links, p.UpdatedAt, p.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PgProjectRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM projects WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
