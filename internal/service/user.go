package service

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/Zain4391/SOLEMATE/internal/domain/models"
	"github.com/Zain4391/SOLEMATE/internal/storage"
	"golang.org/x/crypto/bcrypt"
)

// UserPatch — частичное обновление профиля: nil-поля остаются прежними.
type UserPatch struct {
	FirstName   *string
	LastName    *string
	Email       *string
	Password    *string
	PhoneNumber *string
}

type UserService interface {
	ListUsers(ctx context.Context) ([]*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	UpdateUser(ctx context.Context, id string, patch UserPatch) (*models.User, error)
	DeleteUser(ctx context.Context, id string) error
}

type userService struct {
	log      *slog.Logger
	db       *sql.DB
	userRepo storage.UserStorage
}

func NewUserService(log *slog.Logger, db *sql.DB, userRepo storage.UserStorage) UserService {
	return &userService{log: log, db: db, userRepo: userRepo}
}

func (s *userService) ListUsers(ctx context.Context) ([]*models.User, error) {
	const op = "service.UserService.ListUsers"
	users, err := s.userRepo.ListUsers(ctx)
	if err != nil {
		s.log.Error("failed to list users", slog.String("op", op), slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return users, nil
}

func (s *userService) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	const op = "service.UserService.GetUserByID"
	user, err := s.userRepo.GetUserByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return user, nil
}

// UpdateUser накладывает патч на свежепрочитанную строку внутри транзакции обновления,
// чтобы не опираться на устаревший снимок. Новый пароль хэшируется заново.
func (s *userService) UpdateUser(ctx context.Context, id string, patch UserPatch) (*models.User, error) {
	const op = "service.UserService.UpdateUser"
	logger := s.log.With(slog.String("op", op), slog.String("userID", id))
	logger.Info("starting user update transaction")

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		logger.Error("failed to begin transaction", slog.Any("error", err))
		return nil, fmt.Errorf("%s: failed to begin transaction: %w", op, err)
	}

	user, err := s.userRepo.GetUserByIDTx(ctx, tx, id)
	if err != nil {
		rollback(logger, tx)
		logger.Error("failed to get user", slog.Any("error", err))
		return nil, fmt.Errorf("%s: failed to get user: %w", op, err)
	}

	if patch.FirstName != nil {
		user.FirstName = *patch.FirstName
	}
	if patch.LastName != nil {
		user.LastName = *patch.LastName
	}
	if patch.Email != nil {
		user.Email = *patch.Email
	}
	if patch.PhoneNumber != nil {
		user.PhoneNumber = *patch.PhoneNumber
	}
	if patch.Password != nil {
		passHash, err := bcrypt.GenerateFromPassword([]byte(*patch.Password), bcrypt.DefaultCost)
		if err != nil {
			rollback(logger, tx)
			logger.Error("failed to hash password", slog.Any("error", err))
			return nil, fmt.Errorf("%s: failed to hash password: %w", op, err)
		}
		user.PassHash = passHash
	}

	if err := s.userRepo.UpdateUserTx(ctx, tx, user); err != nil {
		rollback(logger, tx)
		logger.Error("failed to update user", slog.Any("error", err))
		return nil, fmt.Errorf("%s: failed to update user: %w", op, err)
	}

	if err := tx.Commit(); err != nil {
		logger.Error("failed to commit transaction", slog.Any("error", err))
		return nil, fmt.Errorf("%s: failed to commit transaction: %w", op, err)
	}

	logger.Info("user updated successfully")
	return user, nil
}

func (s *userService) DeleteUser(ctx context.Context, id string) error {
	const op = "service.UserService.DeleteUser"
	if err := s.userRepo.DeleteUser(ctx, id); err != nil {
		s.log.Error("failed to delete user", slog.String("op", op), slog.Any("error", err))
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
