package postgres

import (
	"context"

	"library-service/internal/domain/user"
	"library-service/internal/repository"
	apperrors "library-service/pkg/errors"

	"github.com/jackc/pgx/v5"
)

const userColumns = `id, email, password_hash, first_name, last_name, phone, role, library_id, last_connected, created_at, updated_at`

var _ repository.UserRepository = (*UserRepository)(nil)

type UserRepository struct {
	db Querier
}

func NewUserRepository(db *DB) *UserRepository {
	return &UserRepository{db: db.Pool}
}

// NewUserRepositoryWithQuerier builds a repository over any pgx-compatible querier
func NewUserRepositoryWithQuerier(q Querier) *UserRepository {
	return &UserRepository{db: q}
}

func (r *UserRepository) Create(ctx context.Context, input user.CreateUserInput) (*user.User, error) {
	query := `
		INSERT INTO users (email, password_hash, first_name, last_name, phone, role, library_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + userColumns

	u, err := scanUser(r.db.QueryRow(ctx, query,
		input.Email,
		input.PasswordHash,
		input.FirstName,
		input.LastName,
		input.Phone,
		input.Role,
		input.LibraryID,
	))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, apperrors.EmailExists()
		}
		if isForeignKeyViolation(err) {
			return nil, apperrors.BadRequest(errLibraryNotFound)
		}
		return nil, errFailedCreateUser(err)
	}

	return u, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*user.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	u, err := scanUser(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if isNoRows(err) {
			return nil, apperrors.NotFound(errUserNotFound)
		}
		return nil, errFailedGetUser(err)
	}

	return u, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`

	u, err := scanUser(r.db.QueryRow(ctx, query, email))
	if err != nil {
		if isNoRows(err) {
			return nil, apperrors.NotFound(errUserNotFound)
		}
		return nil, errFailedGetUser(err)
	}

	return u, nil
}

func (r *UserRepository) UpdateLastConnected(ctx context.Context, id int64) error {
	query := `UPDATE users SET last_connected = NOW(), updated_at = NOW() WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return errFailedUpdateLastConnect(err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.NotFound(errUserNotFound)
	}

	return nil
}

func scanUser(row pgx.Row) (*user.User, error) {
	u := &user.User{}
	err := row.Scan(
		&u.ID,
		&u.Email,
		&u.PasswordHash,
		&u.FirstName,
		&u.LastName,
		&u.Phone,
		&u.Role,
		&u.LibraryID,
		&u.LastConnected,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return u, nil
}
