package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/fekuna/omnipos-retail-service/internal/model"
	"github.com/fekuna/omnipos-retail-service/internal/user"
	"github.com/fekuna/omnipos-retail-service/internal/user/dto"
	"github.com/fekuna/omnipos-retail-service/pkg/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// bcrypt only reads the first 72 bytes.
const maxPasswordBytes = 72

type Option func(*userUseCase)

// WithHashCost sets the bcrypt cost. Tests use bcrypt.MinCost.
func WithHashCost(cost int) Option {
	return func(uc *userUseCase) { uc.hashCost = cost }
}

type userUseCase struct {
	repo     user.Repository
	logger   logger.ZapLogger
	hashCost int
}

func NewUserUseCase(repo user.Repository, log logger.ZapLogger, opts ...Option) user.UseCase {
	uc := &userUseCase{
		repo:     repo,
		logger:   log,
		hashCost: bcrypt.DefaultCost,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

func (uc *userUseCase) CreateUser(ctx context.Context, input *dto.CreateUserInput) (*model.User, error) {
	name := strings.TrimSpace(input.Name)
	email := strings.TrimSpace(input.Email)
	phone := strings.TrimSpace(input.Phone)
	if name == "" || email == "" || phone == "" || input.Password == "" {
		return nil, user.Invalid("all fields are required")
	}
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	if err := uc.ensureEmailFree(ctx, email, ""); err != nil {
		return nil, err
	}

	hash, err := uc.hash(input.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	u := &model.User{
		BaseModel: model.BaseModel{
			ID:        uuid.New().String(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Name:         name,
		Email:        email,
		Phone:        phone,
		PasswordHash: hash,
	}

	if err := uc.repo.Create(ctx, u); err != nil {
		if !errors.Is(err, user.ErrEmailExists) {
			uc.logger.Error("failed to create user", zap.Error(err))
		}
		return nil, err
	}

	uc.logger.Info("user created", zap.String("user_id", u.ID))
	return u, nil
}

func (uc *userUseCase) ListUsers(ctx context.Context, filters *dto.UserFilters) ([]model.User, int, error) {
	return uc.repo.FindAll(ctx, filters)
}

func (uc *userUseCase) UpdateUser(ctx context.Context, input *dto.UpdateUserInput) (*model.User, error) {
	u, err := uc.repo.FindByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, user.ErrUserNotFound
	}

	if input.Name != nil {
		if u.Name = strings.TrimSpace(*input.Name); u.Name == "" {
			return nil, user.Invalid("name must not be empty")
		}
	}
	if input.Phone != nil {
		if u.Phone = strings.TrimSpace(*input.Phone); u.Phone == "" {
			return nil, user.Invalid("phone must not be empty")
		}
	}
	if input.Email != nil {
		email := strings.TrimSpace(*input.Email)
		if err := validateEmail(email); err != nil {
			return nil, err
		}
		if !strings.EqualFold(email, u.Email) {
			if err := uc.ensureEmailFree(ctx, email, u.ID); err != nil {
				return nil, err
			}
		}
		u.Email = email
	}
	if input.Password != nil {
		if *input.Password == "" {
			return nil, user.Invalid("password must not be empty")
		}
		hash, err := uc.hash(*input.Password)
		if err != nil {
			return nil, err
		}
		u.PasswordHash = hash
	}

	u.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, u); err != nil {
		return nil, err
	}

	uc.logger.Info("user updated", zap.String("user_id", u.ID))
	return u, nil
}

func (uc *userUseCase) DeleteUser(ctx context.Context, id string) error {
	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}
	uc.logger.Info("user deleted", zap.String("user_id", id))
	return nil
}

// ensureEmailFree fails with ErrEmailExists when a user other than selfID holds email.
func (uc *userUseCase) ensureEmailFree(ctx context.Context, email, selfID string) error {
	existing, err := uc.repo.FindByEmail(ctx, email)
	if err != nil {
		return err
	}
	if existing != nil && existing.ID != selfID {
		return user.ErrEmailExists
	}
	return nil
}

func (uc *userUseCase) hash(password string) (string, error) {
	if len(password) > maxPasswordBytes {
		return "", user.Invalid("password is too long")
	}
	b, err := bcrypt.GenerateFromPassword([]byte(password), uc.hashCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(b), nil
}

func validateEmail(email string) error {
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return user.Invalid("email is not valid")
	}
	return nil
}
