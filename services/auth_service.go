package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/bowen700/fantasy-workplace/models"
	"github.com/bowen700/fantasy-workplace/repositories"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrAuthInvalidCredentials = errors.New("invalid email or password")
	ErrAuthEmailTaken         = errors.New("email is already taken")
)

type RegisterInput struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*models.Competitor, error)
	Login(ctx context.Context, credentials models.Credentials) (*models.Competitor, error)
}

type authService struct {
	competitorRepo repositories.CompetitorRepository
}

func NewAuthService(competitorRepo repositories.CompetitorRepository) AuthService {
	return &authService{competitorRepo: competitorRepo}
}

func (s *authService) Register(ctx context.Context, input RegisterInput) (*models.Competitor, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	// New accounts start waitlisted (no slot); an admin assigns slots.
	competitor := &models.Competitor{
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Email:        input.Email,
		PasswordHash: string(hashedPassword),
		Role:         models.RoleCompetitor,
	}

	if err := s.competitorRepo.Create(ctx, competitor); err != nil {
		if errors.Is(err, repositories.ErrCompetitorEmailConflict) {
			return nil, ErrAuthEmailTaken
		}
		return nil, fmt.Errorf("failed to create competitor: %w", err)
	}
	return competitor, nil
}

func (s *authService) Login(ctx context.Context, credentials models.Credentials) (*models.Competitor, error) {
	competitor, err := s.competitorRepo.GetByEmail(ctx, credentials.Email)
	if err != nil {
		if errors.Is(err, repositories.ErrCompetitorNotFound) {
			return nil, ErrAuthInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find competitor by email: %w", err)
	}

	err = bcrypt.CompareHashAndPassword([]byte(competitor.PasswordHash), []byte(credentials.Password))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return nil, ErrAuthInvalidCredentials
		}
		return nil, fmt.Errorf("failed to compare password hash: %w", err)
	}

	competitor.PasswordHash = ""
	return competitor, nil
}
