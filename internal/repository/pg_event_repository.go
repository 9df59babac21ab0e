package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nexora/backend/internal/model"
)

// PgEventRepository is the PostgreSQL implementation of EventRepository.
type PgEventRepository struct {
	pool *pgxpool.Pool
}

// NewPgEventRepository creates a PgEventRepository backed by the given pool.
func NewPgEventRepository(pool *pgxpool.Pool) *PgEventRepository {
	return &PgEventRepository{pool: pool}
}

var _ EventRepository = (*PgEventRepository)(nil)

const eventSelectCols = `id, title, date, description, type, COALESCE(location, ''), created_at, updated_at`

func scanEvent(scan func(...any) error) (*model.Event, error) {
	var e model.Event
	if err := scan(&e.ID, &e.Title, &e.Date, &e.Description, &e.Type, &e.Location, &e.CreatedAt, &e.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &e, nil
}

// List returns events newest-first by event date.
func (r *PgEventRepository) List(ctx context.Context) ([]*model.Event, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+eventSelectCols+` FROM events ORDER BY date DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []*model.Event
	for rows.Next() {
		e, err := scanEvent(rows.Scan)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

func (r *PgEventRepository) FindByID(ctx context.Context, id string) (*model.Event, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+eventSelectCols+` FROM events WHERE id = $1`, id)
	return scanEvent(row.Scan)
}

func (r *PgEventRepository) Create(ctx context.Context, e *model.Event) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO events (id, title, date, description, type, location, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), $7, $8)`,
		e.ID, e.Title, e.Date, e.Description, e.Type, e.Location, e.CreatedAt, e.UpdatedAt)
	return err
}

func (r *PgEventRepository) Update(ctx context.Context, e *model.Event) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE events SET title = $1, date = $2, description = $3, type = $4, location = NULLIF($5, ''), updated_at = $6
		 WHERE id = $7`,
		e.Title, e.Date, e.Description, e.Type, e.Location, e.UpdatedAt, e.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PgEventRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
