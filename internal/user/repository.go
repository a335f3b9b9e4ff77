package user

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/careershub/careers_api/internal/account"
)

// Repository persists job seekers. It doubles as the account.Directory the
// OTP lifecycle consumes.
type Repository interface {
	account.Directory
	Create(ctx context.Context, u User) error
	List(ctx context.Context) ([]User, error)
	FindByID(ctx context.Context, id string) (User, error)
	FindByEmail(ctx context.Context, email string) (User, error)
	Update(ctx context.Context, u User) error
	Delete(ctx context.Context, id string) error
}

const userColumns = `id, first_name, last_name, email, phone, password_hash, city, country,
    category, experience_level, desired_job_type, profile_photo, skills, overview,
    google_id, is_active, created_at, updated_at`

// PostgresRepository implements Repository using PostgreSQL.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository builds a Postgres-backed user repository.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, u User) error {
	id, err := uuid.Parse(u.ID)
	if err != nil {
		return err
	}
	_, err = r.db.Exec(ctx, `INSERT INTO users (`+userColumns+`)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)`,
		id, u.FirstName, u.LastName, u.Email, u.Phone, u.PasswordHash, u.City, u.Country,
		u.Category, u.ExperienceLevel, u.DesiredJobType, u.ProfilePhoto, u.Skills, u.Overview,
		u.GoogleID, u.IsActive, u.CreatedAt.UTC(), u.UpdatedAt.UTC())
	return err
}

func (r *PostgresRepository) List(ctx context.Context) ([]User, error) {
	rows, err := r.db.Query(ctx, `SELECT `+userColumns+` FROM users ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *PostgresRepository) FindByID(ctx context.Context, id string) (User, error) {
	userID, err := uuid.Parse(id)
	if err != nil {
		return User{}, account.ErrNotFound
	}
	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, userID)
	return scanUserRow(row)
}

func (r *PostgresRepository) FindByEmail(ctx context.Context, email string) (User, error) {
	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
	return scanUserRow(row)
}

func (r *PostgresRepository) Update(ctx context.Context, u User) error {
	id, err := uuid.Parse(u.ID)
	if err != nil {
		return account.ErrNotFound
	}
	cmd, err := r.db.Exec(ctx, `UPDATE users SET first_name = $1, last_name = $2, phone = $3,
        city = $4, country = $5, category = $6, experience_level = $7, desired_job_type = $8,
        profile_photo = $9, skills = $10, overview = $11, is_active = $12, updated_at = $13
        WHERE id = $14`,
		u.FirstName, u.LastName, u.Phone, u.City, u.Country, u.Category, u.ExperienceLevel,
		u.DesiredJobType, u.ProfilePhoto, u.Skills, u.Overview, u.IsActive, time.Now().UTC(), id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return account.ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	userID, err := uuid.Parse(id)
	if err != nil {
		return account.ErrNotFound
	}
	cmd, err := r.db.Exec(ctx, `DELETE FROM users WHERE id = $1`, userID)
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
	u, err := r.FindByEmail(ctx, email)
	if err != nil {
		return account.Ref{}, err
	}
	return account.Ref{ID: u.ID, Email: u.Email, Name: u.FirstName}, nil
}

// SetPasswordHash atomically replaces the stored password hash.
func (r *PostgresRepository) SetPasswordHash(ctx context.Context, id string, hash []byte) error {
	userID, err := uuid.Parse(id)
	if err != nil {
		return account.ErrNotFound
	}
	cmd, err := r.db.Exec(ctx, `UPDATE users SET password_hash = $1, updated_at = $2 WHERE id = $3`,
		hash, time.Now().UTC(), userID)
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

func scanUser(row rowScanner) (User, error) {
	var (
		id uuid.UUID
		u  User
	)
	err := row.Scan(&id, &u.FirstName, &u.LastName, &u.Email, &u.Phone, &u.PasswordHash,
		&u.City, &u.Country, &u.Category, &u.ExperienceLevel, &u.DesiredJobType,
		&u.ProfilePhoto, &u.Skills, &u.Overview, &u.GoogleID, &u.IsActive,
		&u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return User{}, err
	}
	u.ID = id.String()
	return u, nil
}

func scanUserRow(row pgx.Row) (User, error) {
	u, err := scanUser(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return User{}, account.ErrNotFound
	}
	return u, err
}
