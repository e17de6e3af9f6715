package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/shoplane/shoplane-api/internal/models"
	"github.com/shoplane/shoplane-api/internal/repository"
	"github.com/shoplane/shoplane-api/internal/utils"
)

// AuthService handles account registration, login, and profile management.
type AuthService struct {
	userRepo repository.UserRepository
}

// NewAuthService constructs an AuthService.
func NewAuthService(userRepo repository.UserRepository) *AuthService {
	return &AuthService{userRepo: userRepo}
}

// RegisterRequest carries the signup payload.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register creates a new account and returns it with a signed token.
func (s *AuthService) Register(ctx context.Context, req *RegisterRequest) (*models.User, string, error) {
	if req.Name == "" || req.Email == "" || req.Password == "" {
		return nil, "", errors.New("name, email and password are required")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}

	user := &models.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hashed),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, "", err
	}

	token, err := utils.GenerateJWT(user.ID, user.IsAdmin)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// Login verifies credentials and returns the user with a signed token.
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		log.Debug().Str("email", email).Msg("login: unknown email")
		return nil, "", utils.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		log.Debug().Str("email", email).Msg("login: password mismatch")
		return nil, "", utils.ErrInvalidCredentials
	}

	token, err := utils.GenerateJWT(user.ID, user.IsAdmin)
	if err != nil {
		return nil, "", err
	}

	log.Info().Str("user_id", user.ID).Msg("login successful")
	return user, token, nil
}

// GetProfile returns the account for the given user id.
func (s *AuthService) GetProfile(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, utils.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// UpdateProfileRequest carries a partial profile update. A non-empty password
// is re-hashed.
type UpdateProfileRequest struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
}

// UpdateProfile applies a partial merge to the caller's account.
func (s *AuthService) UpdateProfile(ctx context.Context, userID string, req *UpdateProfileRequest) (*models.User, error) {
	user, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Email != nil {
		user.Email = *req.Email
	}
	if req.Password != nil && *req.Password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = string(hashed)
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
