package service

import (
	"errors"

	"github.com/google/uuid"
	"github.com/vidstreamhq/vidstream/internal/apperr"
	"github.com/vidstreamhq/vidstream/internal/model"
	"github.com/vidstreamhq/vidstream/internal/repository"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// hashCost is the bcrypt cost for passwords and profile PINs
const hashCost = 12

// UserService handles account lifecycle and credential checks
type UserService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// Create registers an account with a hashed password
func (s *UserService) Create(email, password string) (*model.User, error) {
	exists, err := s.userRepo.ExistsByEmail(email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperr.Conflict("email is already in use")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), hashCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Email:    email,
		Password: string(hashed),
		IsActive: true,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

// FindByID finds a user by id
func (s *UserService) FindByID(id uuid.UUID) (*model.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("user not found")
		}
		return nil, err
	}
	return user, nil
}

// FindByIDWithProfiles finds a user with their profiles preloaded
func (s *UserService) FindByIDWithProfiles(id uuid.UUID) (*model.User, error) {
	user, err := s.userRepo.FindByIDWithProfiles(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("user not found")
		}
		return nil, err
	}
	return user, nil
}

// FindByEmail finds a user by email
func (s *UserService) FindByEmail(email string) (*model.User, error) {
	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("user not found")
		}
		return nil, err
	}
	return user, nil
}

// Update applies a partial update. Toggling IsActive off is the soft
// deactivation path.
func (s *UserService) Update(id uuid.UUID, req model.UpdateUserRequest) (*model.User, error) {
	if _, err := s.FindByID(id); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}
	return s.userRepo.Update(id, updates)
}

// Delete hard-deletes a user. Owned profiles are removed by the store's
// cascade.
func (s *UserService) Delete(id uuid.UUID) error {
	if _, err := s.FindByID(id); err != nil {
		return err
	}
	return s.userRepo.Delete(id)
}

// ValidatePassword compares a plaintext password against the stored hash
func (s *UserService) ValidatePassword(plain, hashed string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain)) == nil
}
