package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"event-platform/internal/model"
	apperrors "event-platform/pkg/app_errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type UserRepository interface {
	List(ctx context.Context) ([]*model.User, error)
	FindByID(ctx context.Context, id int) (*model.User, error)
	FindByUsername(ctx context.Context, username string) (*model.User, error)

	// Transaction methods
	Create(ctx context.Context, tx pgx.Tx, user *model.User) (*model.User, error)
	FindByIDWithLock(ctx context.Context, tx pgx.Tx, id int) (*model.User, error)
	FindIDByUsername(ctx context.Context, tx pgx.Tx, username string) (int, error)
	Update(ctx context.Context, tx pgx.Tx, id int, params model.UpdateUserParams) (*model.User, error)
}

type UserRepositoryImpl struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) UserRepository {
	return &UserRepositoryImpl{
		pool: pool,
	}
}

const userColumns = `id, username, hashed_password, banned, is_admin, created_at, updated_at`

func scanUser(row pgx.Row) (*model.User, error) {
	var user model.User
	err := row.Scan(
		&user.ID,
		&user.Username,
		&user.HashedPassword,
		&user.Banned,
		&user.IsAdmin,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepositoryImpl) Create(ctx context.Context, tx pgx.Tx, user *model.User) (*model.User, error) {
	query := `
		INSERT INTO users (username, hashed_password, banned, is_admin)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + userColumns

	created, err := scanUser(tx.QueryRow(ctx, query,
		user.Username, user.HashedPassword, user.Banned, user.IsAdmin,
	))
	if err != nil {
		if isConstraintViolation(err, pgUniqueViolation, constraintUsername) {
			return nil, apperrors.ErrUsernameTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return created, nil
}

func (r *UserRepositoryImpl) List(ctx context.Context) ([]*model.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		ORDER BY id
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := make([]*model.User, 0)
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return users, nil
}

func (r *UserRepositoryImpl) FindByID(ctx context.Context, id int) (*model.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE id = $1
	`
	return scanUser(r.pool.QueryRow(ctx, query, id))
}

func (r *UserRepositoryImpl) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE username = $1
	`
	return scanUser(r.pool.QueryRow(ctx, query, username))
}

func (r *UserRepositoryImpl) FindByIDWithLock(ctx context.Context, tx pgx.Tx, id int) (*model.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE id = $1
		FOR UPDATE
	`
	return scanUser(tx.QueryRow(ctx, query, id))
}

func (r *UserRepositoryImpl) FindIDByUsername(ctx context.Context, tx pgx.Tx, username string) (int, error) {
	query := `SELECT id FROM users WHERE username = $1`

	var id int
	err := tx.QueryRow(ctx, query, username).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, apperrors.ErrUserNotFound
		}
		return 0, err
	}
	return id, nil
}

func (r *UserRepositoryImpl) Update(ctx context.Context, tx pgx.Tx, id int, params model.UpdateUserParams) (*model.User, error) {
	sets := []string{}
	args := []interface{}{}
	argPos := 1

	if params.Username != nil {
		sets = append(sets, fmt.Sprintf("username = $%d", argPos))
		args = append(args, *params.Username)
		argPos++
	}
	if params.HashedPassword != nil {
		sets = append(sets, fmt.Sprintf("hashed_password = $%d", argPos))
		args = append(args, *params.HashedPassword)
		argPos++
	}
	if params.Banned != nil {
		sets = append(sets, fmt.Sprintf("banned = $%d", argPos))
		args = append(args, *params.Banned)
		argPos++
	}
	if params.IsAdmin != nil {
		sets = append(sets, fmt.Sprintf("is_admin = $%d", argPos))
		args = append(args, *params.IsAdmin)
		argPos++
	}

	if len(sets) == 0 {
		return nil, apperrors.ErrInvalidInput
	}

	// add updated_at
	sets = append(sets, fmt.Sprintf("updated_at = $%d", argPos))
	args = append(args, time.Now().UTC())
	argPos++

	// add id
	args = append(args, id)

	query := fmt.Sprintf(`
		UPDATE users
		SET %s
		WHERE id = $%d
		RETURNING %s
	`, strings.Join(sets, ", "), argPos, userColumns)

	updated, err := scanUser(tx.QueryRow(ctx, query, args...))
	if err != nil {
		if isConstraintViolation(err, pgUniqueViolation, constraintUsername) {
			return nil, apperrors.ErrUsernameTaken
		}
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	return updated, nil
}
