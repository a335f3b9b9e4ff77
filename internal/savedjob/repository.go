package savedjob

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository persists bookmarked jobs.
type Repository interface {
	Create(ctx context.Context, s SavedJob) error
	ListByUser(ctx context.Context, userID string) ([]SavedJob, error)
	Delete(ctx context.Context, id string) error
	CountByUser(ctx context.Context, userID string) (int64, error)
}

const uniqueViolation = "23505"

// PostgresRepository implements Repository using PostgreSQL.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository builds a Postgres-backed saved-job repository.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, s SavedJob) error {
	id, err := uuid.Parse(s.ID)
	if err != nil {
		return err
	}
	userID, err := uuid.Parse(s.UserID)
	if err != nil {
		return err
	}
	jobID, err := uuid.Parse(s.JobID)
	if err != nil {
		return err
	}
	_, err = r.db.Exec(ctx, `INSERT INTO saved_jobs (id, user_id, job_id, created_at)
        VALUES ($1, $2, $3, $4)`, id, userID, jobID, s.CreatedAt.UTC())
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return ErrAlreadySaved
	}
	return err
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID string) ([]SavedJob, error) {
	id, err := uuid.Parse(userID)
	if err != nil {
		return nil, nil
	}
	rows, err := r.db.Query(ctx, `SELECT id, user_id, job_id, created_at FROM saved_jobs
        WHERE user_id = $1 ORDER BY created_at DESC`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var saved []SavedJob
	for rows.Next() {
		var (
			entryID uuid.UUID
			uID     uuid.UUID
			jID     uuid.UUID
			s       SavedJob
		)
		if err := rows.Scan(&entryID, &uID, &jID, &s.CreatedAt); err != nil {
			return nil, err
		}
		s.ID = entryID.String()
		s.UserID = uID.String()
		s.JobID = jID.String()
		saved = append(saved, s)
	}
	return saved, rows.Err()
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	entryID, err := uuid.Parse(id)
	if err != nil {
		return ErrNotFound
	}
	cmd, err := r.db.Exec(ctx, `DELETE FROM saved_jobs WHERE id = $1`, entryID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) CountByUser(ctx context.Context, userID string) (int64, error) {
	id, err := uuid.Parse(userID)
	if err != nil {
		return 0, nil
	}
	var count int64
	err = r.db.QueryRow(ctx, `SELECT COUNT(*) FROM saved_jobs WHERE user_id = $1`, id).Scan(&count)
	return count, err
}
