package repository

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nexora/backend/internal/model"
)

// PgCollaboratorRepository is the PostgreSQL implementation of
// CollaboratorRepository. Social links are stored as jsonb.
type PgCollaboratorRepository struct {
	pool *pgxpool.Pool
}

// NewPgCollaboratorRepository creates a PgCollaboratorRepository backed by the
// given pool.
func NewPgCollaboratorRepository(pool *pgxpool.Pool) *PgCollaboratorRepository {
	return &PgCollaboratorRepository{pool: pool}
}

var _ CollaboratorRepository = (*PgCollaboratorRepository)(nil)

const collaboratorSelectCols = `id, name, role, COALESCE(bio, ''), social_links, created_at, updated_at`

func scanCollaborator(scan func(...any) error) (*model.Collaborator, error) {
	var c model.Collaborator
	var socialLinks []byte
	if err := scan(&c.ID, &c.Name, &c.Role, &c.Bio, &socialLinks, &c.CreatedAt, &c.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if len(socialLinks) > 0 {
		if err := json.Unmarshal(socialLinks, &c.SocialLinks); err != nil {
			return nil, err
		}
	}
	return &c, nil
}

func (r *PgCollaboratorRepository) List(ctx context.Context) ([]*model.Collaborator, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+collaboratorSelectCols+` FROM collaborators ORDER BY created_at ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var collaborators []*model.Collaborator
	for rows.Next() {
		c, err := scanCollaborator(rows.Scan)
		if err != nil {
			return nil, err
		}
		collaborators = append(collaborators, c)
	}
	return collaborators, rows.Err()
}

func (r *PgCollaboratorRepository) FindByID(ctx context.Context, id string) (*model.Collaborator, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+collaboratorSelectCols+` FROM collaborators WHERE id = $1`, id)
	return scanCollaborator(row.Scan)
}

func (r *PgCollaboratorRepository) Create(ctx context.Context, c *model.Collaborator) error {
	socialLinks, err := json.Marshal(c.SocialLinks)
	if err != nil {
		return err
	}
	_, err = r.pool.Exec(ctx,
		`INSERT INTO collaborators (id, name, role, bio, social_links, created_at, updated_at)
		 VALUES ($1, $2, $3, NULLIF($4, ''), $5, $6, $7)`,
		c.ID, c.Name, c.Role, c.Bio, socialLinks, c.CreatedAt, c.UpdatedAt)
	return err
}

func (r *PgCollaboratorRepository) Update(ctx context.Context, c *model.Collaborator) error {
	socialLinks, err := json.Marshal(c.SocialLinks)
	if err != nil {
		return err
	}
	tag, err := r.pool.Exec(ctx,
		`UPDATE collaborators SET name = $1, role = $2, bio = NULLIF($3, ''), social_links = $4, updated_at = $5
		 WHERE id = $6`,
		c.Name, c.Role, c.Bio, socialLinks, c.UpdatedAt, c.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PgCollaboratorRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM collaborators WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
