package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"leet_tracker/internal/common"
	"leet_tracker/internal/domain/model"
)

type UserRepository interface {
	FindByID(ctx context.Context, id string) (*model.User, error)
	// Upsert inserts the user or refreshes its profile fields.
	Upsert(ctx context.Context, user *model.User) (*model.User, error)
	// EnsureExists inserts a bare row for id unless one already exists.
	EnsureExists(ctx context.Context, id string) error
}

type sqlUserRepository struct {
	db      *sql.DB
	dialect Dialect
}

func NewUserRepository(db *sql.DB, dialect Dialect) UserRepository {
	return &sqlUserRepository{db: db, dialect: dialect}
}

const userColumns = `id, email, first_name, last_name, profile_image_url, created_at, updated_at`

func scanUser(row interface{ Scan(dest ...any) error }) (*model.User, error) {
	var (
		u                                model.User
		email, first, last, profileImage sql.NullString
		createdAt, updatedAt             dbTime
	)
	if err := row.Scan(&u.ID, &email, &first, &last, &profileImage, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	u.Email = email.String
	u.FirstName = first.String
	u.LastName = last.String
	u.ProfileImageURL = profileImage.String
	u.CreatedAt = createdAt.Time
	u.UpdatedAt = updatedAt.Time
	return &u, nil
}

func (r *sqlUserRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	query := r.dialect.rebind(`SELECT ` + userColumns + ` FROM users WHERE id = ?`)
	user, err := scanUser(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("userRepository.FindByID: %w", err)
	}
	return user, nil
}

func (r *sqlUserRepository) Upsert(ctx context.Context, user *model.User) (*model.User, error) {
	query := r.dialect.rebind(`INSERT INTO users (` + userColumns + `)
	          VALUES (?, ?, ?, ?, ?, ?, ?)
	          ON CONFLICT (id) DO UPDATE SET
	              email = excluded.email,
	              first_name = excluded.first_name,
	              last_name = excluded.last_name,
	              profile_image_url = excluded.profile_image_url,
	              updated_at = excluded.updated_at
	          RETURNING ` + userColumns)

	now := r.dialect.encodeTime(r.dialect.now())
	saved, err := scanUser(r.db.QueryRowContext(ctx, query,
		user.ID, nullString(user.Email), nullString(user.FirstName), nullString(user.LastName),
		nullString(user.ProfileImageURL), now, now,
	))
	if err != nil {
		if r.dialect.isUniqueViolation(err) {
			return nil, fmt.Errorf("email %s is already bound to another user: %w", user.Email, common.ErrConflict)
		}
		return nil, fmt.Errorf("userRepository.Upsert: %w", err)
	}
	return saved, nil
}

func (r *sqlUserRepository) EnsureExists(ctx context.Context, id string) error {
	query := r.dialect.rebind(`INSERT INTO users (id, created_at, updated_at) VALUES (?, ?, ?)
	          ON CONFLICT (id) DO NOTHING`)
	now := r.dialect.encodeTime(r.dialect.now())
	if _, err := r.db.ExecContext(ctx, query, id, now, now); err != nil {
		return fmt.Errorf("userRepository.EnsureExists: %w", err)
	}
	return nil
}
