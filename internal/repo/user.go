package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/pmartell/driveledger/internal/domain"
)

// UserRepo defines the persistence operations for user accounts.
type UserRepo interface {
	// Create inserts a new user. Returns domain.ErrConflict when the
	// username is already taken (case-insensitive unique index).
	Create(ctx context.Context, user domain.User) (domain.User, error)

	GetByID(ctx context.Context, id uuid.UUID) (domain.User, error)

	// GetByUsername matches case-insensitively, so sign-in is forgiving
	// about capitalization.
	GetByUsername(ctx context.Context, username string) (domain.User, error)

	List(ctx context.Context) ([]domain.User, error)
	Update(ctx context.Context, user domain.User) (domain.User, error)
	Delete(ctx context.Context, id uuid.UUID) error

	// Count returns the total number of user accounts. Used to decide
	// whether first-run setup is still open.
	Count(ctx context.Context) (int64, error)
}

type pgUserRepo struct {
	db db
}

// NewUserRepo constructs a UserRepo backed by the provided db connection.
func NewUserRepo(db db) UserRepo {
	return &pgUserRepo{db: db}
}

const userColumns = `id, username, password_hash, driver_id, is_admin, created_at, updated_at`

func (r *pgUserRepo) Create(ctx context.Context, user domain.User) (domain.User, error) {
	const q = `
		INSERT INTO users (username, password_hash, driver_id, is_admin)
		VALUES (@username, @password_hash, @driver_id, @is_admin)
		RETURNING ` + userColumns

	args := pgx.NamedArgs{
		"username":      user.Username,
		"password_hash": user.PasswordHash,
		"driver_id":     user.DriverID,
		"is_admin":      user.IsAdmin,
	}
	row := r.db.QueryRow(ctx, q, args)
	result, err := scanUser(row)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.User{}, fmt.Errorf("repo.UserRepo.Create: %w", domain.ErrConflict)
		}
		return domain.User{}, fmt.Errorf("repo.UserRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgUserRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.User, error) {
	const q = `SELECT ` + userColumns + ` FROM users WHERE id = @id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id})
	result, err := scanUser(row)
	if err != nil {
		return domain.User{}, fmt.Errorf("repo.UserRepo.GetByID: %w", err)
	}
	return result, nil
}

func (r *pgUserRepo) GetByUsername(ctx context.Context, username string) (domain.User, error) {
	const q = `SELECT ` + userColumns + ` FROM users WHERE lower(username) = lower(@username)`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"username": username})
	result, err := scanUser(row)
	if err != nil {
		return domain.User{}, fmt.Errorf("repo.UserRepo.GetByUsername: %w", err)
	}
	return result, nil
}

func (r *pgUserRepo) List(ctx context.Context) ([]domain.User, error) {
	const q = `SELECT ` + userColumns + ` FROM users ORDER BY username ASC`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("repo.UserRepo.List: %w", err)
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.UserRepo.List: scan: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.UserRepo.List: rows: %w", err)
	}
	return users, nil
}

func (r *pgUserRepo) Update(ctx context.Context, user domain.User) (domain.User, error) {
	const q = `
		UPDATE users
		SET username      = @username,
		    password_hash = @password_hash,
		    driver_id     = @driver_id,
		    is_admin      = @is_admin,
		    updated_at    = now()
		WHERE id = @id
		RETURNING ` + userColumns

	args := pgx.NamedArgs{
		"id":            user.ID,
		"username":      user.Username,
		"password_hash": user.PasswordHash,
		"driver_id":     user.DriverID,
		"is_admin":      user.IsAdmin,
	}
	row := r.db.QueryRow(ctx, q, args)
	result, err := scanUser(row)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.User{}, fmt.Errorf("repo.UserRepo.Update: %w", domain.ErrConflict)
		}
		return domain.User{}, fmt.Errorf("repo.UserRepo.Update: %w", err)
	}
	return result, nil
}

func (r *pgUserRepo) Delete(ctx context.Context, id uuid.UUID) error {
	const q = `DELETE FROM users WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repo.UserRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.UserRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

func (r *pgUserRepo) Count(ctx context.Context) (int64, error) {
	const q = `SELECT count(*) FROM users`

	var n int64
	if err := r.db.QueryRow(ctx, q).Scan(&n); err != nil {
		return 0, fmt.Errorf("repo.UserRepo.Count: %w", err)
	}
	return n, nil
}

// isUniqueViolation reports whether err is Postgres error 23505.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func scanUser(s scanner) (domain.User, error) {
	var u domain.User
	err := s.Scan(
		&u.ID, &u.Username, &u.PasswordHash, &u.DriverID, &u.IsAdmin,
		&u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.User{}, domain.ErrNotFound
		}
		return domain.User{}, err
	}
	return u, nil
}
