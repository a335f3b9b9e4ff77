package company

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/careershub/careers_api/internal/account"
)

// Repository persists companies. It doubles as the account.Directory the OTP
// lifecycle consumes.
type Repository interface {
	account.Directory
	Create(ctx context.Context, co Company) error
	List(ctx context.Context) ([]Company, error)
	FindByID(ctx context.Context, id string) (Company, error)
	FindByEmail(ctx context.Context, email string) (Company, error)
	ListByCity(ctx context.Context, city string) ([]Company, error)
	CountByCity(ctx context.Context, city string) (int64, error)
	Count(ctx context.Context) (int64, error)
	Update(ctx context.Context, co Company) error
	Delete(ctx context.Context, id string) error
}

const companyColumns = `id, name, industry, email, size, founded_year, phone, city, state,
    password_hash, logo_url, image_url, created_at`

// PostgresRepository implements Repository using PostgreSQL.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository builds a Postgres-backed company repository.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, co Company) error {
	id, err := uuid.Parse(co.ID)
	if err != nil {
		return err
	}
	_, err = r.db.Exec(ctx, `INSERT INTO companies (`+companyColumns+`)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		id, co.Name, co.Industry, co.Email, co.Size, co.FoundedYear, co.Phone, co.City,
		co.State, co.PasswordHash, co.LogoURL, co.ImageURL, co.CreatedAt.UTC())
	return err
}

func (r *PostgresRepository) List(ctx context.Context) ([]Company, error) {
	rows, err := r.db.Query(ctx, `SELECT `+companyColumns+` FROM companies ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectCompanies(rows)
}

func (r *PostgresRepository) FindByID(ctx context.Context, id string) (Company, error) {
	companyID, err := uuid.Parse(id)
	if err != nil {
		return Company{}, account.ErrNotFound
	}
	row := r.db.QueryRow(ctx, `SELECT `+companyColumns+` FROM companies WHERE id = $1`, companyID)
	return scanCompanyRow(row)
}

func (r *PostgresRepository) FindByEmail(ctx context.Context, email string) (Company, error) {
	row := r.db.QueryRow(ctx, `SELECT `+companyColumns+` FROM companies WHERE email = $1`, email)
	return scanCompanyRow(row)
}

func (r *PostgresRepository) ListByCity(ctx context.Context, city string) ([]Company, error) {
	rows, err := r.db.Query(ctx, `SELECT `+companyColumns+` FROM companies WHERE city = $1`, city)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectCompanies(rows)
}

func (r *PostgresRepository) CountByCity(ctx context.Context, city string) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM companies WHERE city = $1`, city).Scan(&count)
	return count, err
}

func (r *PostgresRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM companies`).Scan(&count)
	return count, err
}

func (r *PostgresRepository) Update(ctx context.Context, co Company) error {
	id, err := uuid.Parse(co.ID)
	if err != nil {
		return account.ErrNotFound
	}
	cmd, err := r.db.Exec(ctx, `UPDATE companies SET name = $1, industry = $2, size = $3,
        founded_year = $4, phone = $5, city = $6, state = $7, logo_url = $8, image_url = $9
        WHERE id = $10`,
		co.Name, co.Industry, co.Size, co.FoundedYear, co.Phone, co.City, co.State,
		co.LogoURL, co.ImageURL, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return account.ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	companyID, err := uuid.Parse(id)
	if err != nil {
		return account.ErrNotFound
	}
	cmd, err := r.db.Exec(ctx, `DELETE FROM companies WHERE id = $1`, companyID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return account.ErrNotFound
	}
	return nil
}

// LookupByEmail exposes the account.Directory capability to the OTP lifecycle.
func (r *PostgresRepository) LookupByEmail(ctx context.Context, email string) (account.Ref, error) {
	co, err := r.FindByEmail(ctx, email)
	if err != nil {
		return account.Ref{}, err
	}
	return account.Ref{ID: co.ID, Email: co.Email, Name: co.Name}, nil
}

// SetPasswordHash atomically replaces the stored password hash.
func (r *PostgresRepository) SetPasswordHash(ctx context.Context, id string, hash []byte) error {
	companyID, err := uuid.Parse(id)
	if err != nil {
		return account.ErrNotFound
	}
	cmd, err := r.db.Exec(ctx, `UPDATE companies SET password_hash = $1 WHERE id = $2`, hash, companyID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return account.ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCompany(row rowScanner) (Company, error) {
	var (
		id uuid.UUID
		co Company
	)
	err := row.Scan(&id, &co.Name, &co.Industry, &co.Email, &co.Size, &co.FoundedYear,
		&co.Phone, &co.City, &co.State, &co.PasswordHash, &co.LogoURL, &co.ImageURL, &co.CreatedAt)
	if err != nil {
		return Company{}, err
	}
	co.ID = id.String()
	return co, nil
}

func scanCompanyRow(row pgx.Row) (Company, error) {
	co, err := scanCompany(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Company{}, account.ErrNotFound
	}
	return co, err
}

func collectCompanies(rows pgx.Rows) ([]Company, error) {
	var companies []Company
	for rows.Next() {
		co, err := scanCompany(rows)
		if err != nil {
			return nil, err
		}
		companies = append(companies, co)
	}
	return companies, rows.Err()
}
