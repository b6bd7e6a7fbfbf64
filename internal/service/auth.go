package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Zain4391/SOLEMATE/internal/domain/models"
	security "github.com/Zain4391/SOLEMATE/internal/jwt-new"
	"github.com/Zain4391/SOLEMATE/internal/storage"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrNotAdmin           = errors.New("access denied: admins only")
)

// SignUpInput — данные регистрации нового пользователя.
type SignUpInput struct {
	FirstName   string
	LastName    string
	Email       string
	Password    string
	PhoneNumber string
}

type AuthServiceInterface interface {
	SignUp(ctx context.Context, in SignUpInput) (*models.User, string, error)
	Login(ctx context.Context, email, password string) (*models.User, string, error)
	AdminLogin(ctx context.Context, email, password string) (*models.User, string, error)
}

type AuthService struct {
	log      *slog.Logger
	userRepo storage.UserStorage
	secret   []byte
	tokenTTL time.Duration
}

func NewAuthService(log *slog.Logger, userRepo storage.UserStorage, secret string, tokenTTL time.Duration) *AuthService {
	return &AuthService{
		log:      log,
		userRepo: userRepo,
		secret:   []byte(secret),
		tokenTTL: tokenTTL,
	}
}

// SignUp регистрирует пользователя: пароль хэшируется через bcrypt (соль добавляется автоматически),
// затем выпускается токен сессии.
func (a *AuthService) SignUp(ctx context.Context, in SignUpInput) (*models.User, string, error) {
	const op = "auth.SignUp"
	logger := a.log.With(slog.String("op", op), slog.String("email", in.Email))
	logger.Info("registering user")

	passHash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		logger.Error("failed to hash password", slog.Any("error", err))
		return nil, "", fmt.Errorf("%s: failed to hash password: %w", op, err)
	}

	user := &models.User{
		ID:          uuid.NewString(),
		IsAdmin:     false,
		FirstName:   in.FirstName,
		LastName:    in.LastName,
		Email:       in.Email,
		PassHash:    passHash,
		PhoneNumber: in.PhoneNumber,
	}
	user, err = a.userRepo.CreateUser(ctx, user)
	if err != nil {
		logger.Error("failed to create user", slog.Any("error", err))
		return nil, "", fmt.Errorf("%s: failed to create user: %w", op, err)
	}

	token, err := security.NewToken(a.secret, user, a.tokenTTL)
	if err != nil {
		logger.Error("failed to generate token", slog.Any("error", err))
		return nil, "", fmt.Errorf("%s: failed to generate token: %w", op, err)
	}

	logger.Info("user registered successfully", slog.String("userID", user.ID))
	return user, token, nil
}

// Login сверяет пароль с bcrypt-хэшем и выпускает токен сессии.
func (a *AuthService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	const op = "auth.Login"
	logger := a.log.With(slog.String("op", op), slog.String("email", email))
	logger.Info("checking user")

	user, err := a.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			logger.Warn("user not found")
			return nil, "", fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
		}
		logger.Error("failed to get user", slog.Any("error", err))
		return nil, "", fmt.Errorf("%s: failed to get user: %w", op, err)
	}

	if err := bcrypt.CompareHashAndPassword(user.PassHash, []byte(password)); err != nil {
		logger.Warn("invalid password")
		return nil, "", fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}

	token, err := security.NewToken(a.secret, user, a.tokenTTL)
	if err != nil {
		logger.Error("failed to generate token", slog.Any("error", err))
		return nil, "", fmt.Errorf("%s: failed to generate token: %w", op, err)
	}

	logger.Info("user logged in successfully", slog.String("userID", user.ID))
	return user, token, nil
}

// AdminLogin — тот же вход, но только для пользователей с административным флагом.
func (a *AuthService) AdminLogin(ctx context.Context, email, password string) (*models.User, string, error) {
	const op = "auth.AdminLogin"
	user, token, err := a.Login(ctx, email, password)
	if err != nil {
		return nil, "", err
	}
	if !user.IsAdmin {
		a.log.Warn("non-admin attempted admin login", slog.String("op", op), slog.String("email", email))
		return nil, "", fmt.Errorf("%s: %w", op, ErrNotAdmin)
	}
	return user, token, nil
}
