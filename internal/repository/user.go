package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mattn/go-sqlite3"

	"github.com/rocketscienceinc/tictactoe-solo/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-solo/internal/entity"
)

type UserRepository interface {
	Save(ctx context.Context, user *entity.User) error
	FindByName(ctx context.Context, name string) (*entity.User, error)
	FindByID(ctx context.Context, id string) (*entity.User, error)
}

type userRepository struct {
	conn *sql.DB
}

func NewUserRepository(conn *sql.DB) UserRepository {
	return &userRepository{
		conn: conn,
	}
}

func (that *userRepository) Save(ctx context.Context, user *entity.User) error {
	query := `INSERT INTO users (id, name, email) VALUES (?, ?, ?)`

	_, err := that.conn.ExecContext(ctx, query, user.ID, user.Name, user.Email)

	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
		return fmt.Errorf("%w: %s", apperror.ErrUserAlreadyExists, user.Name)
	}

	if err != nil {
		return fmt.Errorf("can't save user: %w", err)
	}

	return nil
}

func (that *userRepository) FindByName(ctx context.Context, name string) (*entity.User, error) {
	query := `SELECT id, name, email FROM users WHERE name = ?`

	return that.findOne(ctx, query, name)
}

func (that *userRepository) FindByID(ctx context.Context, id string) (*entity.User, error) {
	query := `SELECT id, name, email FROM users WHERE id = ?`

	return that.findOne(ctx, query, id)
}

func (that *userRepository) findOne(ctx context.Context, query string, arg string) (*entity.User, error) {
	var user entity.User

	err := that.conn.QueryRowContext(ctx, query, arg).Scan(&user.ID, &user.Name, &user.Email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperror.ErrUserNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("can't find user: %w", err)
	}

	return &user, nil
}
