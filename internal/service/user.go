package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/rocketscienceinc/tictactoe-solo/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-solo/internal/entity"
)

type UserService interface {
	CreateUser(ctx context.Context, name, email string) (*entity.User, error)
	GetUserByName(ctx context.Context, name string) (*entity.User, error)
	GetUserByID(ctx context.Context, id string) (*entity.User, error)
}

type userRepo interface {
	Save(ctx context.Context, user *entity.User) error
	FindByName(ctx context.Context, name string) (*entity.User, error)
	FindByID(ctx context.Context, id string) (*entity.User, error)
}

type userService struct {
	userRepo userRepo
}

func NewUserService(userRepo userRepo) UserService {
	return &userService{
		userRepo: userRepo,
	}
}

func (that *userService) CreateUser(ctx context.Context, name, email string) (*entity.User, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: user name is required", apperror.ErrInvalidRequest)
	}

	user := &entity.User{
		ID:    uuid.NewString(),
		Name:  name,
		Email: strings.TrimSpace(email),
	}

	if err := that.userRepo.Save(ctx, user); err != nil {
		return nil, fmt.Errorf("could not save user: %w", err)
	}

	return user, nil
}

func (that *userService) GetUserByName(ctx context.Context, name string) (*entity.User, error) {
	user, err := that.userRepo.FindByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("could not get user by name: %w", err)
	}

	return user, nil
}

func (that *userService) GetUserByID(ctx context.Context, id string) (*entity.User, error) {
	user, err := that.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("could not get user by id: %w", err)
	}

	return user, nil
}
