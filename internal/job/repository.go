package job

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository persists job postings.
type Repository interface {
	Create(ctx context.Context, j Job) error
	List(ctx context.Context, offset, limit int) ([]Job, error)
	FindByID(ctx context.Context, id string) (Job, error)
	ListByCompany(ctx context.Context, companyID string) ([]Job, error)
	ListBySalary(ctx context.Context) ([]Job, error)
	ListByState(ctx context.Context, state string) ([]Job, error)
	Update(ctx context.Context, j Job) error
	Delete(ctx context.Context, id string) error
	DeleteAll(ctx context.Context) error
	Count(ctx context.Context) (int64, error)
	CountByState(ctx context.Context, state string) (int64, error)
	CountByCompany(ctx context.Context, companyID string) (int64, error)
	IncrementSeekers(ctx context.Context, id string) error
}

const jobColumns = `id, company_id, title, description, category, job_type, state, city,
    salary_min, salary_max, seekers_count, has_additional_form, created_at`

// PostgresRepository implements Repository using PostgreSQL.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository builds a Postgres-backed job repository.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, j Job) error {
	id, err := uuid.Parse(j.ID)
	if err != nil {
		return err
	}
	companyID, err := uuid.Parse(j.CompanyID)
	if err != nil {
		return err
	}
	_, err = r.db.Exec(ctx, `INSERT INTO jobs (`+jobColumns+`)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		id, companyID, j.Title, j.Description, j.Category, j.Type, j.State, j.City,
		j.SalaryMin, j.SalaryMax, j.SeekersCount, j.HasAdditionalForm, j.CreatedAt.UTC())
	return err
}

func (r *PostgresRepository) List(ctx context.Context, offset, limit int) ([]Job, error) {
	return r.query(ctx, `SELECT `+jobColumns+` FROM jobs ORDER BY created_at DESC OFFSET $1 LIMIT $2`, offset, limit)
}

func (r *PostgresRepository) FindByID(ctx context.Context, id string) (Job, error) {
	jobID, err := uuid.Parse(id)
	if err != nil {
		return Job{}, ErrNotFound
	}
	row := r.db.QueryRow(ctx, `SELECT `+jobColumns+` FROM jobs WHERE id = $1`, jobID)
	j, err := scanJob(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Job{}, ErrNotFound
	}
	return j, err
}

func (r *PostgresRepository) ListByCompany(ctx context.Context, companyID string) ([]Job, error) {
	id, err := uuid.Parse(companyID)
	if err != nil {
		return nil, ErrNotFound
	}
	return r.query(ctx, `SELECT `+jobColumns+` FROM jobs WHERE company_id = $1 ORDER BY created_at DESC`, id)
}

func (r *PostgresRepository) ListBySalary(ctx context.Context) ([]Job, error) {
	return r.query(ctx, `SELECT `+jobColumns+` FROM jobs ORDER BY salary_max DESC`)
}

func (r *PostgresRepository) ListByState(ctx context.Context, state string) ([]Job, error) {
	return r.query(ctx, `SELECT `+jobColumns+` FROM jobs WHERE state = $1 ORDER BY created_at DESC`, state)
}

func (r *PostgresRepository) Update(ctx context.Context, j Job) error {
	id, err := uuid.Parse(j.ID)
	if err != nil {
		return ErrNotFound
	}
	cmd, err := r.db.Exec(ctx, `UPDATE jobs SET title = $1, description = $2, category = $3,
        job_type = $4, state = $5, city = $6, salary_min = $7, salary_max = $8,
        has_additional_form = $9 WHERE id = $10`,
		j.Title, j.Description, j.Category, j.Type, j.State, j.City,
		j.SalaryMin, j.SalaryMax, j.HasAdditionalForm, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	jobID, err := uuid.Parse(id)
	if err != nil {
		return ErrNotFound
	}
	cmd, err := r.db.Exec(ctx, `DELETE FROM jobs WHERE id = $1`, jobID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) DeleteAll(ctx context.Context) error {
	_, err := r.db.Exec(ctx, `DELETE FROM jobs`)
	return err
}

func (r *PostgresRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM jobs`).Scan(&count)
	return count, err
}

func (r *PostgresRepository) CountByState(ctx context.Context, state string) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM jobs WHERE state = $1`, state).Scan(&count)
	return count, err
}

func (r *PostgresRepository) CountByCompany(ctx context.Context, companyID string) (int64, error) {
	id, err := uuid.Parse(companyID)
	if err != nil {
		return 0, ErrNotFound
	}
	var count int64
	err = r.db.QueryRow(ctx, `SELECT COUNT(*) FROM jobs WHERE company_id = $1`, id).Scan(&count)
	return count, err
}

func (r *PostgresRepository) IncrementSeekers(ctx context.Context, id string) error {
	jobID, err := uuid.Parse(id)
	if err != nil {
		return ErrNotFound
	}
	cmd, err := r.db.Exec(ctx, `UPDATE jobs SET seekers_count = seekers_count + 1 WHERE id = $1`, jobID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) query(ctx context.Context, sql string, args ...any) ([]Job, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var jobs []Job
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, j)
	}
	return jobs, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanJob(row rowScanner) (Job, error) {
	var (
		id        uuid.UUID
		companyID uuid.UUID
		j         Job
	)
	err := row.Scan(&id, &companyID, &j.Title, &j.Description, &j.Category, &j.Type,
		&j.State, &j.City, &j.SalaryMin, &j.SalaryMax, &j.SeekersCount,
		&j.HasAdditionalForm, &j.CreatedAt)
	if err != nil {
		return Job{}, err
	}
	j.ID = id.String()
	j.CompanyID = companyID.String()
	return j, nil
}
