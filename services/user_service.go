package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Dosada05/bowling-tracker/models"
	"github.com/Dosada05/bowling-tracker/repositories"
)

type UserService interface {
	GetProfileByID(ctx context.Context, id int) (*models.User, error)
	UpdateProfile(ctx context.Context, userID int, input ProfileInput) (*models.User, error)
	RemoveLeague(ctx context.Context, userID int, index int) (*models.User, error)
}

// ProfileInput replaces the editable profile fields. Leagues replaces the whole list.
type ProfileInput struct {
	FirstName string
	LastName  string
	Leagues   []models.League
}

type userService struct {
	userRepo repositories.UserRepository
}

func NewUserService(userRepo repositories.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) GetProfileByID(ctx context.Context, id int) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, mapUserError(err)
	}
	user.PasswordHash = ""
	return user, nil
}

func (s *userService) UpdateProfile(ctx context.Context, userID int, input ProfileInput) (*models.User, error) {
	firstName := strings.TrimSpace(input.FirstName)
	lastName := strings.TrimSpace(input.LastName)
	if firstName == "" {
		return nil, fmt.Errorf("%w: first_name", ErrMissingField)
	}
	if lastName == "" {
		return nil, fmt.Errorf("%w: last_name", ErrMissingField)
	}

	leagues := make(models.Leagues, 0, len(input.Leagues))
	for i, l := range input.Leagues {
		name := strings.TrimSpace(l.Name)
		day := strings.TrimSpace(l.Day)
		if name == "" && day == "" {
			continue
		}
		if name == "" {
			return nil, fmt.Errorf("%w: league_names[%d]", ErrMissingField, i)
		}
		leagues = append(leagues, models.League{Name: name, Day: day})
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, mapUserError(err)
	}
	user.FirstName = firstName
	user.LastName = lastName
	user.Leagues = leagues

	if err := s.userRepo.UpdateProfile(ctx, user); err != nil {
		return nil, mapUserError(err)
	}
	user.PasswordHash = ""
	return user, nil
}

// RemoveLeague deletes the league at index, keeping the order of the rest.
func (s *userService) RemoveLeague(ctx context.Context, userID int, index int) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, mapUserError(err)
	}
	if index < 0 || index >= len(user.Leagues) {
		return nil, fmt.Errorf("%w: %d not in [0, %d)", ErrLeagueIndexOutOfRange, index, len(user.Leagues))
	}

	leagues := make(models.Leagues, 0, len(user.Leagues)-1)
	leagues = append(leagues, user.Leagues[:index]...)
	leagues = append(leagues, user.Leagues[index+1:]...)

	if err := s.userRepo.UpdateLeagues(ctx, userID, leagues); err != nil {
		return nil, mapUserError(err)
	}
	user.Leagues = leagues
	user.PasswordHash = ""
	return user, nil
}

func mapUserError(err error) error {
	if errors.Is(err, repositories.ErrUserNotFound) {
		return ErrUserNotFound
	}
	return err
}
