package dbrepo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/panaderiadelsol/pos-api/internal/models"
)

type UserRepo struct {
	db *pgxpool.Pool
}

func NewUserRepo(db *pgxpool.Pool) *UserRepo {
	return &UserRepo{db: db}
}

// GetUsers fetches all users without password hashes.
func (r *UserRepo) GetUsers(ctx context.Context) ([]*models.User, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, name, email, COALESCE(phone, ''), role, created_at
		FROM users
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("error fetching users: %w", err)
	}
	defer rows.Close()

	users := make([]*models.User, 0)
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.Phone, &u.Role, &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning user: %w", err)
		}
		users = append(users, &u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return users, nil
}

// GetUserByEmail fetches one user including the password hash, for login.
func (r *UserRepo) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	err := r.db.QueryRow(ctx, `
		SELECT id, name, email, password, COALESCE(phone, ''), role, created_at
		FROM users
		WHERE email = $1
	`, email).Scan(&u.ID, &u.Name, &u.Email, &u.Password, &u.Phone, &u.Role, &u.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("fetch user failed: %w", err)
	}
	return &u, nil
}

// GetUserByID fetches one user without the password hash.
func (r *UserRepo) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	var u models.User
	err := r.db.QueryRow(ctx, `
		SELECT id, name, email, COALESCE(phone, ''), role, created_at
		FROM users
		WHERE id = $1
	`, id).Scan(&u.ID, &u.Name, &u.Email, &u.Phone, &u.Role, &u.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("fetch user failed: %w", err)
	}
	return &u, nil
}

// CreateUser inserts a user. Password must already be hashed.
func (r *UserRepo) CreateUser(ctx context.Context, u *models.User) (*models.User, error) {
	err := r.db.QueryRow(ctx, `
		INSERT INTO users(name, email, password, phone, role)
		VALUES ($1,$2,$3,$4,$5)
		RETURNING id, created_at
	`,
		u.Name, u.Email, u.Password, u.Phone, u.Role,
	).Scan(&u.ID, &u.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert user failed: %w", err)
	}
	return u, nil
}

// UpdateUser applies the provided fields; empty strings leave the column
// unchanged, and the password (already hashed) is only set when non-empty.
func (r *UserRepo) UpdateUser(ctx context.Context, u *models.User) (*models.User, error) {
	sets := []string{}
	args := []interface{}{}
	argPos := 1

	if u.Name != "" {
		sets = append(sets, fmt.Sprintf("name = $%d", argPos))
		args = append(args, u.Name)
		argPos++
	}
	if u.Email != "" {
		sets = append(sets, fmt.Sprintf("email = $%d", argPos))
		args = append(args, u.Email)
		argPos++
	}
	if u.Phone != "" {
		sets = append(sets, fmt.Sprintf("phone = $%d", argPos))
		args = append(args, u.Phone)
		argPos++
	}
	if u.Role != "" {
		sets = append(sets, fmt.Sprintf("role = $%d", argPos))
		args = append(args, u.Role)
		argPos++
	}
	if u.Password != "" {
		sets = append(sets, fmt.Sprintf("password = $%d", argPos))
		args = append(args, u.Password)
		argPos++
	}

	if len(sets) == 0 {
		return r.GetUserByID(ctx, u.ID)
	}

	query := fmt.Sprintf(`
		UPDATE users SET %s
		WHERE id = $%d
		RETURNING id, name, email, COALESCE(phone, ''), role, created_at
	`, strings.Join(sets, ", "), argPos)
	args = append(args, u.ID)

	var out models.User
	err := r.db.QueryRow(ctx, query, args...).Scan(
		&out.ID, &out.Name, &out.Email, &out.Phone, &out.Role, &out.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update user failed: %w", err)
	}
	return &out, nil
}

// DeleteUser removes a user account.
func (r *UserRepo) DeleteUser(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete user failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrUserNotFound
	}
	return nil
}
