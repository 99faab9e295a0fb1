package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"rento-service/internal/models"
	"rento-service/internal/repository"
)

// AuthStore is the persistence surface AuthService needs for users
// and sessions
type AuthStore interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	UpdateLastLogin(ctx context.Context, userID uuid.UUID) error
	CreateSession(ctx context.Context, session *models.Session) error
	DeactivateSession(ctx context.Context, id uuid.UUID) error
}

// ProfileStore is the persistence surface AuthService needs for
// profiles and role profiles
type ProfileStore interface {
	UpsertProfile(ctx context.Context, profile *models.Profile) error
	GetProfile(ctx context.Context, userID uuid.UUID) (*models.Profile, error)
	UpsertTenantProfile(ctx context.Context, tp *models.TenantProfile) error
	UpsertBrokerProfile(ctx context.Context, bp *models.BrokerProfile) error
	UpsertManagerProfile(ctx context.Context, mp *models.ManagerProfile) error
}

// TokenRevoker records revoked session tokens. Optional: a nil
// revoker degrades to session-row deactivation only.
type TokenRevoker interface {
	RevokeToken(ctx context.Context, token string, ttl time.Duration) error
	IsTokenRevoked(ctx context.Context, token string) (bool, error)
}

// ProfileFields carries the optional profile attributes collected at
// sign-up
type ProfileFields struct {
	FullName      string `json:"full_name"`
	Phone         string `json:"phone"`
	AvatarURL     string `json:"avatar_url"`
	Occupation    string `json:"occupation"`
	Company       string `json:"company"`
	LicenseNumber string `json:"license_number"`
}

// AuthResult is returned by SignUp and Login on success
type AuthResult struct {
	UserID    uuid.UUID `json:"user_id"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	FullName  string    `json:"full_name"`
	SessionID uuid.UUID `json:"session_id"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// AuthService owns identity lifecycle: sign-up, role-gated login,
// logout, and token validation
type AuthService struct {
	store    AuthStore
	profiles ProfileStore
	jwt      *JWTService
	revoker  TokenRevoker
	logger   *logrus.Logger
}

// NewAuthService creates a new auth service. revoker may be nil.
func NewAuthService(store AuthStore, profiles ProfileStore, jwt *JWTService, revoker TokenRevoker, logger *logrus.Logger) *AuthService {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &AuthService{
		store:    store,
		profiles: profiles,
		jwt:      jwt,
		revoker:  revoker,
		logger:   logger,
	}
}

// SignUp creates the user, then upserts the profile and the matching
// role profile. The writes are sequential, not atomic: a failure after
// user creation leaves the user without a usable profile and is
// surfaced to the caller. Re-running the profile upserts later repairs
// the gap. On success a session is issued.
func (s *AuthService) SignUp(ctx context.Context, email, password, role string, fields ProfileFields, ipAddress, userAgent string) (*AuthResult, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" {
		return nil, NewValidationError("email", "email is required")
	}
	if password == "" {
		return nil, NewValidationError("password", "password is required")
	}
	if !models.ValidRole(role) {
		return nil, NewValidationError("role", "role must be one of tenant, broker, manager")
	}

	if _, err := s.store.GetUserByEmail(ctx, email); err == nil {
		return nil, NewConflictError("user", "an account with this email already exists")
	} else if !errors.Is(err, repository.ErrUserNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: string(hash),
		IsActive:     true,
	}
	if err := s.store.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	if err := s.ensureProfile(ctx, user.ID, role, fields); err != nil {
		// Known gap: the user row already exists and is not rolled
		// back. EnsureProfile can repair this on a later attempt.
		s.logger.WithFields(logrus.Fields{
			"user_id": user.ID,
			"email":   email,
		}).WithError(err).Warn("sign-up left user without a usable profile")
		return nil, err
	}

	return s.issueSession(ctx, user, role, fields.FullName, ipAddress, userAgent)
}

// ensureProfile upserts the profile and role-profile rows for a user.
// Conflict-safe on the user ID, so it is also the repair path for a
// half-finished sign-up.
func (s *AuthService) ensureProfile(ctx context.Context, userID uuid.UUID, role string, fields ProfileFields) error {
	profile := &models.Profile{
		ID:        userID,
		Role:      role,
		FullName:  fields.FullName,
		Phone:     fields.Phone,
		AvatarURL: fields.AvatarURL,
	}
	if err := s.profiles.UpsertProfile(ctx, profile); err != nil {
		return err
	}

	switch role {
	case models.RoleTenant:
		return s.profiles.UpsertTenantProfile(ctx, &models.TenantProfile{
			ID:         userID,
			Occupation: fields.Occupation,
		})
	case models.RoleBroker:
		return s.profiles.UpsertBrokerProfile(ctx, &models.BrokerProfile{
			ID:            userID,
			Company:       fields.Company,
			LicenseNumber: fields.LicenseNumber,
		})
	case models.RoleManager:
		return s.profiles.UpsertManagerProfile(ctx, &models.ManagerProfile{
			ID:      userID,
			Company: fields.Company,
		})
	}
	return nil
}

// EnsureProfile re-runs the profile upserts for an existing user,
// repairing a sign-up that failed midway
func (s *AuthService) EnsureProfile(ctx context.Context, userID uuid.UUID, role string, fields ProfileFields) error {
	if !models.ValidRole(role) {
		return NewValidationError("role", "role must be one of tenant, broker, manager")
	}
	return s.ensureProfile(ctx, userID, role, fields)
}

// Login authenticates by email and password, then gates on the
// selected role: when the profile role differs from expectedRole the
// login fails with ErrRoleMismatch and no session is issued, even
// though the credentials were correct.
func (s *AuthService) Login(ctx context.Context, email, password, expectedRole, ipAddress, userAgent string) (*AuthResult, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" {
		return nil, NewValidationError("email", "email is required")
	}
	if password == "" {
		return nil, NewValidationError("password", "password is required")
	}

	user, err := s.store.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	profile, err := s.profiles.GetProfile(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	if expectedRole != "" && profile.Role != expectedRole {
		return nil, ErrRoleMismatch
	}

	if err := s.store.UpdateLastLogin(ctx, user.ID); err != nil {
		s.logger.WithError(err).Warn("failed to update last login")
	}

	return s.issueSession(ctx, user, profile.Role, profile.FullName, ipAddress, userAgent)
}

// issueSession stores a session row and signs a token for it
func (s *AuthService) issueSession(ctx context.Context, user *models.User, role, fullName, ipAddress, userAgent string) (*AuthResult, error) {
	sessionID := uuid.New()
	token, expiresAt, err := s.jwt.GenerateToken(user.ID, user.Email, role, sessionID)
	if err != nil {
		return nil, err
	}

	session := &models.Session{
		ID:        sessionID,
		UserID:    user.ID,
		Token:     token,
		Role:      role,
		IsActive:  true,
		IPAddress: ipAddress,
		UserAgent: userAgent,
		ExpiresAt: expiresAt,
	}
	if err := s.store.CreateSession(ctx, session); err != nil {
		return nil, err
	}

	return &AuthResult{
		UserID:    user.ID,
		Email:     user.Email,
		Role:      role,
		FullName:  fullName,
		SessionID: sessionID,
		Token:     token,
		ExpiresAt: expiresAt,
	}, nil
}

// Logout revokes the session token and deactivates the session row.
// Idempotent: logging out an already-revoked session succeeds.
func (s *AuthService) Logout(ctx context.Context, sessionID uuid.UUID, token string) error {
	if s.revoker != nil && token != "" {
		if err := s.revoker.RevokeToken(ctx, token, s.jwt.TokenExpiry()); err != nil {
			s.logger.WithError(err).Warn("failed to record token revocation")
		}
	}
	return s.store.DeactivateSession(ctx, sessionID)
}

// ValidateToken checks a token's signature, expiry and revocation
// state, returning its claims
func (s *AuthService) ValidateToken(ctx context.Context, token string) (*Claims, error) {
	claims, err := s.jwt.ValidateToken(token)
	if err != nil {
		return nil, err
	}
	if s.revoker != nil {
		revoked, err := s.revoker.IsTokenRevoked(ctx, token)
		if err != nil {
			s.logger.WithError(err).Warn("revocation check failed, accepting token")
		} else if revoked {
			return nil, errors.New("token has been revoked")
		}
	}
	return claims, nil
}

// GetProfile returns the profile for a user ID
func (s *AuthService) GetProfile(ctx context.Context, userID uuid.UUID) (*models.Profile, error) {
	profile, err := s.profiles.GetProfile(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrProfileNotFound) {
			return nil, NewNotFoundError("profile")
		}
		return nil, err
	}
	return profile, nil
}

// UpdateProfile upserts the mutable profile fields for a user,
// leaving role untouched
func (s *AuthService) UpdateProfile(ctx context.Context, userID uuid.UUID, fields ProfileFields) (*models.Profile, error) {
	current, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	updated := &models.Profile{
		ID:        userID,
		Role:      current.Role,
		FullName:  fields.FullName,
		Phone:     fields.Phone,
		AvatarURL: fields.AvatarURL,
	}
	if err := s.profiles.UpsertProfile(ctx, updated); err != nil {
		return nil, err
	}
	return s.GetProfile(ctx, userID)
}
