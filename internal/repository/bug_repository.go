package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/bug-tracker/internal/domain"
)

// BugRepository encapsulates bug persistence.
type BugRepository interface {
	Create(ctx context.Context, bug *domain.Bug) error
	Update(ctx context.Context, bug *domain.Bug) error
	GetByID(ctx context.Context, id string) (*domain.Bug, error)
	Delete(ctx context.Context, id string) error
	ListAll(ctx context.Context) ([]domain.Bug, error)
}

type bugRepository struct {
	pool *pgxpool.Pool
}

// NewBugRepository instantiates repository.
func NewBugRepository(pool *pgxpool.Pool) BugRepository {
	return &bugRepository{pool: pool}
}

func (r *bugRepository) Create(ctx context.Context, bug *domain.Bug) error {
	const query = `
        INSERT INTO bugs (title, description, status, priority)
        VALUES ($1,$2,$3,$4)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		bug.Title,
		bug.Description,
		bug.Status,
		bug.Priority,
	).Scan(&bug.ID, &bug.CreatedAt, &bug.UpdatedAt)
}

func (r *bugRepository) Update(ctx context.Context, bug *domain.Bug) error {
	const query = `
        UPDATE bugs SET title=$1, description=$2, status=$3, priority=$4, updated_at=NOW()
        WHERE id=$5
        RETURNING updated_at`
	if err := r.pool.QueryRow(ctx, query,
		bug.Title,
		bug.Description,
		bug.Status,
		bug.Priority,
		bug.ID,
	).Scan(&bug.UpdatedAt); err != nil {
		return err
	}
	return nil
}

func (r *bugRepository) GetByID(ctx context.Context, id string) (*domain.Bug, error) {
	const query = `
        SELECT id, title, description, status, priority, created_at, updated_at
        FROM bugs WHERE id=$1`
	var bug domain.Bug
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&bug.ID,
		&bug.Title,
		&bug.Description,
		&bug.Status,
		&bug.Priority,
		&bug.CreatedAt,
		&bug.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &bug, nil
}

func (r *bugRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM bugs WHERE id=$1`
	cmd, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *bugRepository) ListAll(ctx context.Context) ([]domain.Bug, error) {
	const query = `
        SELECT id, title, description, status, priority, created_at, updated_at
        FROM bugs ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanBugs(rows)
}

func scanBugs(rows pgx.Rows) ([]domain.Bug, error) {
	var result []domain.Bug
	for rows.Next() {
		var bug domain.Bug
		if err := rows.Scan(
			&bug.ID,
			&bug.Title,
			&bug.Description,
			&bug.Status,
			&bug.Priority,
			&bug.CreatedAt,
			&bug.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, bug)
	}
	return result, rows.Err()
}
