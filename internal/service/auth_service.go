package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/vidstreamhq/vidstream/internal/apperr"
	"github.com/vidstreamhq/vidstream/internal/model"
	"github.com/vidstreamhq/vidstream/pkg/token"
)

// Credential and refresh failures collapse to these two messages so a
// caller cannot distinguish an unknown email from a wrong password.
const (
	msgInvalidCredentials  = "invalid email or password"
	msgAccountDeactivated  = "account is deactivated"
	msgInvalidRefreshToken = "invalid refresh token"
)

// AuthService composes user creation, profile creation and token issuance.
//
// Registration is strictly sequential with no compensating rollback: a
// profile-create or login failure leaves the created user row behind, and a
// retried register surfaces it as a Conflict.
type AuthService struct {
	users    *UserService
	profiles *ProfileService
	tokens   *token.Manager
	rdb      *redis.Client
}

func NewAuthService(users *UserService, profiles *ProfileService, tokens *token.Manager, rdb *redis.Client) *AuthService {
	return &AuthService{
		users:    users,
		profiles: profiles,
		tokens:   tokens,
		rdb:      rdb,
	}
}

// Login authenticates a user and issues a token pair
func (s *AuthService) Login(req model.LoginRequest) (*model.AuthResponse, error) {
	user, err := s.users.FindByEmail(req.Email)
	if err != nil {
		if apperr.KindOf(err) == apperr.KindNotFound {
			return nil, apperr.Unauthorized(msgInvalidCredentials)
		}
		return nil, err
	}

	if !s.users.ValidatePassword(req.Password, user.Password) {
		return nil, apperr.Unauthorized(msgInvalidCredentials)
	}

	if !user.IsAccountActive() {
		return nil, apperr.Unauthorized(msgAccountDeactivated)
	}

	pair, err := s.tokens.GenerateTokens(user.ID, user.Email, req.DeviceID)
	if err != nil {
		return nil, err
	}

	return s.authResponse(user, pair), nil
}

// RefreshToken verifies a refresh token and issues a fresh pair. Every
// verification failure collapses to the same generic Unauthorized. The old
// refresh token is not revoked; several refresh tokens per user can be live
// at once.
func (s *AuthService) RefreshToken(refreshToken string) (*model.AuthResponse, error) {
	claims, err := s.tokens.VerifyRefreshToken(refreshToken)
	if err != nil {
		return nil, apperr.Unauthorized(msgInvalidRefreshToken)
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, apperr.Unauthorized(msgInvalidRefreshToken)
	}

	user, err := s.users.FindByID(userID)
	if err != nil {
		return nil, apperr.Unauthorized(msgInvalidRefreshToken)
	}
	if !user.IsAccountActive() {
		return nil, apperr.Unauthorized(msgInvalidRefreshToken)
	}

	pair, err := s.tokens.GenerateTokens(user.ID, user.Email, "")
	if err != nil {
		return nil, err
	}

	return s.authResponse(user, pair), nil
}

// Register creates the user, their default profile, then logs them in
func (s *AuthService) Register(req model.RegisterRequest) (*model.AuthResponse, error) {
	user, err := s.users.Create(req.Email, req.Password)
	if err != nil {
		return nil, err
	}

	if _, err := s.profiles.CreateDefault(user.ID); err != nil {
		return nil, err
	}

	return s.Login(model.LoginRequest{Email: req.Email, Password: req.Password})
}

// RegisterWithProfile registers with a custom-named first profile. An empty
// name falls back to the default profile.
func (s *AuthService) RegisterWithProfile(req model.RegisterWithProfileRequest) (*model.AuthResponse, error) {
	user, err := s.users.Create(req.Email, req.Password)
	if err != nil {
		return nil, err
	}

	if req.ProfileName != "" {
		_, err = s.profiles.Create(user.ID, model.CreateProfileRequest{Name: req.ProfileName})
	} else {
		_, err = s.profiles.CreateDefault(user.ID)
	}
	if err != nil {
		return nil, err
	}

	return s.Login(model.LoginRequest{Email: req.Email, Password: req.Password})
}

// Logout blacklists the access token in Redis until its natural expiry
func (s *AuthService) Logout(tokenString string) error {
	claims, err := s.tokens.VerifyAccessToken(tokenString)
	if err != nil {
		return apperr.Unauthorized("invalid token")
	}

	expiresIn := time.Until(time.Unix(claims.Expiry, 0))
	if expiresIn <= 0 {
		return nil
	}

	return s.rdb.Set(context.Background(), "blacklist:"+tokenString, "revoked", expiresIn).Err()
}

func (s *AuthService) authResponse(user *model.User, pair *token.Pair) *model.AuthResponse {
	return &model.AuthResponse{
		User:         user.ToResponse(),
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		ExpiresIn:    pair.ExpiresIn,
	}
}
