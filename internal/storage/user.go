package storage

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Zain4391/SOLEMATE/internal/domain/models"
	"github.com/lib/pq"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrEmailTaken   = errors.New("email already in use")
)

type UserStorage interface {
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	GetUserByIDTx(ctx context.Context, tx *sql.Tx, id string) (*models.User, error)
	ListUsers(ctx context.Context) ([]*models.User, error)
	CreateUser(ctx context.Context, user *models.User) (*models.User, error)
	UpdateUserTx(ctx context.Context, tx *sql.Tx, user *models.User) error
	DeleteUser(ctx context.Context, id string) error
}

type userRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) UserStorage {
	return &userRepository{db: db}
}

const userColumns = "u_id, is_admin, first_name, last_name, email, pass_hash, phone_number"

func scanUser(row *sql.Row) (*models.User, error) {
	user := &models.User{}
	if err := row.Scan(&user.ID, &user.IsAdmin, &user.FirstName, &user.LastName, &user.Email, &user.PassHash, &user.PhoneNumber); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// получение уже существующего пользователя по email
func (r *userRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+userColumns+" FROM users WHERE email = $1", email)
	return scanUser(row)
}

func (r *userRepository) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+userColumns+" FROM users WHERE u_id = $1", id)
	return scanUser(row)
}

// GetUserByIDTx читает пользователя внутри транзакции — нужен для merge частичного обновления
func (r *userRepository) GetUserByIDTx(ctx context.Context, tx *sql.Tx, id string) (*models.User, error) {
	row := tx.QueryRowContext(ctx, "SELECT "+userColumns+" FROM users WHERE u_id = $1", id)
	return scanUser(row)
}

func (r *userRepository) ListUsers(ctx context.Context) ([]*models.User, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT "+userColumns+" FROM users ORDER BY last_name, first_name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		user := &models.User{}
		if err := rows.Scan(&user.ID, &user.IsAdmin, &user.FirstName, &user.LastName, &user.Email, &user.PassHash, &user.PhoneNumber); err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return users, nil
}

func (r *userRepository) CreateUser(ctx context.Context, user *models.User) (*models.User, error) {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO users (u_id, is_admin, first_name, last_name, email, pass_hash, phone_number) VALUES ($1, $2, $3, $4, $5, $6, $7)",
		user.ID, user.IsAdmin, user.FirstName, user.LastName, user.Email, user.PassHash, user.PhoneNumber,
	)
	if err != nil {
		// уникальный индекс по email
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	return user, nil
}

func (r *userRepository) UpdateUserTx(ctx context.Context, tx *sql.Tx, user *models.User) error {
	res, err := tx.ExecContext(ctx,
		"UPDATE users SET first_name = $1, last_name = $2, email = $3, pass_hash = $4, phone_number = $5 WHERE u_id = $6",
		user.FirstName, user.LastName, user.Email, user.PassHash, user.PhoneNumber, user.ID,
	)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return ErrEmailTaken
		}
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *userRepository) DeleteUser(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM users WHERE u_id = $1", id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrUserNotFound
	}
	return nil
}
