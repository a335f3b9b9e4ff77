package application

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository persists job applications.
type Repository interface {
	Create(ctx context.Context, a Application) error
	FindByID(ctx context.Context, id string) (Application, error)
	ListByJob(ctx context.Context, jobID string, offset, limit int) ([]Application, error)
	ListByUser(ctx context.Context, userID string, offset, limit int) ([]Application, error)
	UpdateStatus(ctx context.Context, id, status string) error
	Delete(ctx context.Context, id string) error
	CountByJob(ctx context.Context, jobID string) (int64, error)
	CountByUser(ctx context.Context, userID string) (int64, error)
}

const applicationColumns = `id, job_id, user_id, status, form_submitted,
    first_answer, second_answer, third_answer, fourth_answer, created_at`

const uniqueViolation = "23505"

// PostgresRepository implements Repository using PostgreSQL.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository builds a Postgres-backed application repository.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, a Application) error {
	id, err := uuid.Parse(a.ID)
	if err != nil {
		return err
	}
	jobID, err := uuid.Parse(a.JobID)
	if err != nil {
		return err
	}
	userID, err := uuid.Parse(a.UserID)
	if err != nil {
		return err
	}
	_, err = r.db.Exec(ctx, `INSERT INTO applications (`+applicationColumns+`)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		id, jobID, userID, a.Status, a.FormSubmitted,
		a.FirstAnswer, a.SecondAnswer, a.ThirdAnswer, a.FourthAnswer, a.CreatedAt.UTC())
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return ErrDuplicate
	}
	return err
}

func (r *PostgresRepository) FindByID(ctx context.Context, id string) (Application, error) {
	appID, err := uuid.Parse(id)
	if err != nil {
		return Application{}, ErrNotFound
	}
	row := r.db.QueryRow(ctx, `SELECT `+applicationColumns+` FROM applications WHERE id = $1`, appID)
	a, err := scanApplication(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Application{}, ErrNotFound
	}
	return a, err
}

func (r *PostgresRepository) ListByJob(ctx context.Context, jobID string, offset, limit int) ([]Application, error) {
	id, err := uuid.Parse(jobID)
	if err != nil {
		return nil, ErrNotFound
	}
	return r.query(ctx, `SELECT `+applicationColumns+` FROM applications
        WHERE job_id = $1 ORDER BY created_at DESC OFFSET $2 LIMIT $3`, id, offset, limit)
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID string, offset, limit int) ([]Application, error) {
	id, err := uuid.Parse(userID)
	if err != nil {
		return nil, ErrNotFound
	}
	return r.query(ctx, `SELECT `+applicationColumns+` FROM applications
        WHERE user_id = $1 ORDER BY created_at DESC OFFSET $2 LIMIT $3`, id, offset, limit)
}

func (r *PostgresRepository) UpdateStatus(ctx context.Context, id, status string) error {
	appID, err := uuid.Parse(id)
	if err != nil {
		return ErrNotFound
	}
	cmd, err := r.db.Exec(ctx, `UPDATE applications SET status = $1 WHERE id = $2`, status, appID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	appID, err := uuid.Parse(id)
	if err != nil {
		return ErrNotFound
	}
	cmd, err := r.db.Exec(ctx, `DELETE FROM applications WHERE id = $1`, appID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) CountByJob(ctx context.Context, jobID string) (int64, error) {
	id, err := uuid.Parse(jobID)
	if err != nil {
		return 0, ErrNotFound
	}
	var count int64
	err = r.db.QueryRow(ctx, `SELECT COUNT(*) FROM applications WHERE job_id = $1`, id).Scan(&count)
	return count, err
}

func (r *PostgresRepository) CountByUser(ctx context.Context, userID string) (int64, error) {
	id, err := uuid.Parse(userID)
	if err != nil {
		return 0, ErrNotFound
	}
	var count int64
	err = r.db.QueryRow(ctx, `SELECT COUNT(*) FROM applications WHERE user_id = $1`, id).Scan(&count)
	return count, err
}

func (r *PostgresRepository) query(ctx context.Context, sql string, args ...any) ([]Application, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var apps []Application
	for rows.Next() {
		a, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		apps = append(apps, a)
	}
	return apps, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanApplication(row rowScanner) (Application, error) {
	var (
		id     uuid.UUID
		jobID  uuid.UUID
		userID uuid.UUID
		a      Application
	)
	err := row.Scan(&id, &jobID, &userID, &a.Status, &a.FormSubmitted,
		&a.FirstAnswer, &a.SecondAnswer, &a.ThirdAnswer, &a.FourthAnswer, &a.CreatedAt)
	if err != nil {
		return Application{}, err
	}
	a.ID = id.String()
	a.JobID = jobID.String()
	a.UserID = userID.String()
	return a, nil
}
