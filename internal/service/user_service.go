package service

import (
	"context"
	"strings"

	"github.com/NSriram5/neighborhoodrecipe-backend/internal/models"
	"github.com/NSriram5/neighborhoodrecipe-backend/internal/repository"
	"github.com/NSriram5/neighborhoodrecipe-backend/internal/validation"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// RegisterInput carries a signup request.
type RegisterInput struct {
	Email    string `json:"email" validate:"required,email"`
	UserName string `json:"userName" validate:"required,min=3,max=30"`
	Password string `json:"password" validate:"required"`
}

// UpdateUserInput is a partial profile update. Changing the password
// requires the current one.
type UpdateUserInput struct {
	Email           *string `json:"email" validate:"omitempty,email"`
	UserName        *string `json:"userName" validate:"omitempty,min=3,max=30"`
	PrivacySetting  *bool   `json:"privacySetting"`
	Password        *string `json:"password"`
	CurrentPassword string  `json:"currentPassword"`
}

// UserService contains business logic for accounts and authentication.
type UserService struct {
	userRepo repository.UserRepository
}

// NewUserService creates a new user service
func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// Register creates an account with a hashed password. Email and username
// must both be unused.
func (s *UserService) Register(ctx context.Context, input RegisterInput) (*models.User, error) {
	if err := validation.ValidatePassword(input.Password); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidateUserName(input.UserName); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	userName := strings.TrimSpace(input.UserName)
	existing, err := s.userRepo.GetByUserName(ctx, userName)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, models.NewValidationError("User name already taken")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	user := &models.User{
		Email:        strings.ToLower(strings.TrimSpace(input.Email)),
		UserName:     userName,
		PasswordHash: string(hash),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Authenticate verifies credentials against the stored hash. Disabled
// accounts cannot log in. The same error is returned for an unknown email
// and a wrong password.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil || user.Disabled {
		return nil, models.NewUnauthorizedError("Invalid email or password")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, models.NewUnauthorizedError("Invalid email or password")
	}
	return user, nil
}

// GetUser returns the account by ID.
func (s *UserService) GetUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

// UpdateUser applies a partial profile update. A password change is only
// honored when the current password verifies.
func (s *UserService) UpdateUser(ctx context.Context, id uuid.UUID, input UpdateUserInput) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Email != nil {
		user.Email = strings.ToLower(strings.TrimSpace(*input.Email))
	}
	if input.UserName != nil {
		if err := validation.ValidateUserName(*input.UserName); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		user.UserName = strings.TrimSpace(*input.UserName)
	}
	if input.PrivacySetting != nil {
		user.PrivacySetting = *input.PrivacySetting
	}
	if input.Password != nil {
		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.CurrentPassword)); err != nil {
			return nil, models.NewUnauthorizedError("Current password is incorrect")
		}
		if err := validation.ValidatePassword(*input.Password); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*input.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, models.NewInternalError(err)
		}
		user.PasswordHash = string(hash)
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// EmailSearch resolves an email to a shareable profile. Accounts with the
// privacy flag set, like unknown emails, come back as not found so a caller
// cannot enumerate which addresses exist.
func (s *UserService) EmailSearch(ctx context.Context, email string) (*models.PublicUser, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil || user.Disabled || user.PrivacySetting {
		return nil, models.NewNotFoundError("User", email)
	}
	public := user.Public()
	return &public, nil
}

// ListUsers returns one page of accounts for administrative use.
func (s *UserService) ListUsers(ctx context.Context, limit, offset int) ([]models.User, error) {
	return s.userRepo.List(ctx, limit, offset)
}
