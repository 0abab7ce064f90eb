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

// ProfileService enforces the per-user profile-count limit, name uniqueness
// within a user, and PIN gating.
type ProfileService struct {
	profileRepo        repository.ProfileRepository
	maxProfilesPerUser int
}

func NewProfileService(profileRepo repository.ProfileRepository, maxProfilesPerUser int) *ProfileService {
	return &ProfileService{
		profileRepo:        profileRepo,
		maxProfilesPerUser: maxProfilesPerUser,
	}
}

// Create adds a profile for the user. The name must be unused by that user
// and the user must hold fewer than the configured profile cap.
func (s *ProfileService) Create(userID uuid.UUID, req model.CreateProfileRequest) (*model.Profile, error) {
	count, err := s.profileRepo.CountByUserID(userID)
	if err != nil {
		return nil, err
	}
	if count >= int64(s.maxProfilesPerUser) {
		return nil, apperr.LimitExceeded("profile limit reached (max %d per user)", s.maxProfilesPerUser)
	}

	duplicate, err := s.profileRepo.ExistsByUserIDAndName(userID, req.Name)
	if err != nil {
		return nil, err
	}
	if duplicate {
		return nil, apperr.Conflict("profile name is already in use")
	}

	profile := &model.Profile{
		UserID:         userID,
		Name:           req.Name,
		AvatarURL:      req.AvatarURL,
		IsKids:         false,
		Language:       "ko",
		MaturityRating: "ALL",
	}
	if req.PIN != nil {
		hashed, err := s.hashPIN(*req.PIN)
		if err != nil {
			return nil, err
		}
		profile.PIN = &hashed
	}
	if req.IsKids != nil {
		profile.IsKids = *req.IsKids
	}
	if req.Language != nil {
		profile.Language = *req.Language
	}
	if req.MaturityRating != nil {
		profile.MaturityRating = *req.MaturityRating
	}

	if err := s.profileRepo.Create(profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// FindByID finds a profile by id
func (s *ProfileService) FindByID(id uuid.UUID) (*model.Profile, error) {
	profile, err := s.profileRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("profile not found")
		}
		return nil, err
	}
	return profile, nil
}

// FindByUserID lists a user's profiles
func (s *ProfileService) FindByUserID(userID uuid.UUID) ([]model.Profile, error) {
	return s.profileRepo.FindByUserID(userID)
}

// Update applies a partial update, re-checking name uniqueness when the
// name changes and re-hashing the PIN when a new one is supplied.
func (s *ProfileService) Update(id uuid.UUID, req model.UpdateProfileRequest) (*model.Profile, error) {
	profile, err := s.FindByID(id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil && *req.Name != profile.Name {
		duplicate, err := s.profileRepo.ExistsByUserIDAndName(profile.UserID, *req.Name)
		if err != nil {
			return nil, err
		}
		if duplicate {
			return nil, apperr.Conflict("profile name is already in use")
		}
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.AvatarURL != nil {
		updates["avatar_url"] = *req.AvatarURL
	}
	if req.PIN != nil {
		hashed, err := s.hashPIN(*req.PIN)
		if err != nil {
			return nil, err
		}
		updates["pin"] = hashed
	}
	if req.IsKids != nil {
		updates["is_kids"] = *req.IsKids
	}
	if req.Language != nil {
		updates["language"] = *req.Language
	}
	if req.MaturityRating != nil {
		updates["maturity_rating"] = *req.MaturityRating
	}

	return s.profileRepo.Update(id, updates)
}

// Delete removes a profile
func (s *ProfileService) Delete(id uuid.UUID) error {
	if _, err := s.FindByID(id); err != nil {
		return err
	}
	return s.profileRepo.Delete(id)
}

// CreateDefault creates the profile auto-added at registration. It bypasses
// the count and name checks: it is only called for a brand-new user.
func (s *ProfileService) CreateDefault(userID uuid.UUID) (*model.Profile, error) {
	profile := &model.Profile{
		UserID:         userID,
		Name:           model.DefaultProfileName,
		IsKids:         false,
		Language:       "ko",
		MaturityRating: "ALL",
	}
	if err := s.profileRepo.Create(profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// ValidatePIN checks a PIN against the profile. A profile without a PIN
// accepts any input.
func (s *ProfileService) ValidatePIN(profileID uuid.UUID, pin string) (bool, error) {
	profile, err := s.FindByID(profileID)
	if err != nil {
		return false, err
	}

	if !profile.HasPIN() {
		return true, nil
	}

	return bcrypt.CompareHashAndPassword([]byte(*profile.PIN), []byte(pin)) == nil, nil
}

func (s *ProfileService) hashPIN(pin string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(pin), hashCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}
