package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Dosada05/bowling-tracker/models"
	"github.com/Dosada05/bowling-tracker/repositories"
)

type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*models.User, error)
	Authenticate(ctx context.Context, username, password string) (*models.User, error)
}

type RegisterInput struct {
	Username        string   `json:"username"`
	Password        string   `json:"password"`
	ConfirmPassword string   `json:"confirm_password"`
	FirstName       string   `json:"first_name"`
	LastName        string   `json:"last_name"`
	LeagueNames     []string `json:"league_names"`
}

type authService struct {
	userRepo repositories.UserRepository
	hasher   PasswordHasher
}

func NewAuthService(userRepo repositories.UserRepository, hasher PasswordHasher) AuthService {
	return &authService{
		userRepo: userRepo,
		hasher:   hasher,
	}
}

func (s *authService) Register(ctx context.Context, input RegisterInput) (*models.User, error) {
	username := strings.TrimSpace(input.Username)
	firstName := strings.TrimSpace(input.FirstName)
	lastName := strings.TrimSpace(input.LastName)

	leagues := make(models.Leagues, 0, len(input.LeagueNames))
	for _, name := range input.LeagueNames {
		if name = strings.TrimSpace(name); name != "" {
			leagues = append(leagues, models.League{Name: name})
		}
	}

	switch {
	case username == "":
		return nil, fmt.Errorf("%w: username", ErrMissingField)
	case input.Password == "":
		return nil, fmt.Errorf("%w: password", ErrMissingField)
	case input.ConfirmPassword == "":
		return nil, fmt.Errorf("%w: confirm_password", ErrMissingField)
	case firstName == "":
		return nil, fmt.Errorf("%w: first_name", ErrMissingField)
	case lastName == "":
		return nil, fmt.Errorf("%w: last_name", ErrMissingField)
	case len(leagues) == 0:
		return nil, fmt.Errorf("%w: league_name1", ErrMissingField)
	}

	if input.Password != input.ConfirmPassword {
		return nil, ErrPasswordMismatch
	}
	if len(input.Password) > MaxPasswordBytes {
		return nil, fmt.Errorf("%w: password is longer than %d bytes", ErrInvalidField, MaxPasswordBytes)
	}

	_, err := s.userRepo.GetByUsername(ctx, username)
	switch {
	case err == nil:
		return nil, ErrDuplicateUsername
	case !errors.Is(err, repositories.ErrUserNotFound):
		return nil, fmt.Errorf("failed to check username: %w", err)
	}

	hashed, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username:     username,
		PasswordHash: hashed,
		FirstName:    firstName,
		LastName:     lastName,
		Leagues:      leagues,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrUsernameConflict) {
			return nil, ErrDuplicateUsername
		}
		return nil, fmt.Errorf("ошибка создания пользователя: %w", err)
	}

	user.PasswordHash = ""
	return user, nil
}

func (s *authService) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find user by username: %w", err)
	}

	if err := s.hasher.Compare(user.PasswordHash, password); err != nil {
		return nil, err
	}

	user.PasswordHash = ""
	return user, nil
}
