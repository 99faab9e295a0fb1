package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"rento-service/internal/models"
	"rento-service/internal/repository"
)

func newAuthService(t *testing.T) *AuthService {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Session{},
		&models.Profile{},
		&models.TenantProfile{},
		&models.BrokerProfile{},
		&models.ManagerProfile{},
	))

	jwtSvc := NewJWTService("test-secret", 1)
	return NewAuthService(repository.NewAuthRepository(db), repository.NewProfileRepository(db), jwtSvc, nil, nil)
}

func signUpTenant(t *testing.T, svc *AuthService, email string) *AuthResult {
	t.Helper()
	result, err := svc.SignUp(context.Background(), email, "hunter2hunter2", models.RoleTenant, ProfileFields{
		FullName:   "Amira Khan",
		Occupation: "engineer",
	}, "127.0.0.1", "test")
	require.NoError(t, err)
	return result
}

func TestSignUpIssuesSession(t *testing.T) {
	svc := newAuthService(t)

	result := signUpTenant(t, svc, "amira@example.com")

	assert.Equal(t, models.RoleTenant, result.Role)
	assert.NotEmpty(t, result.Token)
	assert.NotZero(t, result.SessionID)

	claims, err := svc.ValidateToken(context.Background(), result.Token)
	require.NoError(t, err)
	assert.Equal(t, result.UserID, claims.UserID)
	assert.Equal(t, models.RoleTenant, claims.Role)
}

func TestSignUpDuplicateEmail(t *testing.T) {
	svc := newAuthService(t)
	signUpTenant(t, svc, "amira@example.com")

	_, err := svc.SignUp(context.Background(), "amira@example.com", "hunter2hunter2", models.RoleBroker, ProfileFields{}, "", "")
	assert.True(t, IsConflictError(err))
}

func TestSignUpInvalidRole(t *testing.T) {
	svc := newAuthService(t)

	_, err := svc.SignUp(context.Background(), "amira@example.com", "hunter2hunter2", "admin", ProfileFields{}, "", "")
	assert.True(t, IsValidationError(err))
}

func TestLoginRoleGate(t *testing.T) {
	svc := newAuthService(t)
	signUpTenant(t, svc, "amira@example.com")

	// Correct credentials, wrong role: no session
	_, err := svc.Login(context.Background(), "amira@example.com", "hunter2hunter2", models.RoleBroker, "", "")
	assert.ErrorIs(t, err, ErrRoleMismatch)

	// Same credentials, matching role: session issued
	result, err := svc.Login(context.Background(), "amira@example.com", "hunter2hunter2", models.RoleTenant, "", "")
	require.NoError(t, err)
	assert.Equal(t, models.RoleTenant, result.Role)
	assert.NotEmpty(t, result.Token)
}

func TestLoginWithoutExpectedRole(t *testing.T) {
	svc := newAuthService(t)
	signUpTenant(t, svc, "amira@example.com")

	result, err := svc.Login(context.Background(), "amira@example.com", "hunter2hunter2", "", "", "")
	require.NoError(t, err)
	assert.Equal(t, models.RoleTenant, result.Role)
}

func TestLoginBadCredentials(t *testing.T) {
	svc := newAuthService(t)
	signUpTenant(t, svc, "amira@example.com")

	_, err := svc.Login(context.Background(), "amira@example.com", "wrong-password", models.RoleTenant, "", "")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(context.Background(), "nobody@example.com", "hunter2hunter2", models.RoleTenant, "", "")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginNormalizesEmail(t *testing.T) {
	svc := newAuthService(t)
	signUpTenant(t, svc, "amira@example.com")

	result, err := svc.Login(context.Background(), "  AMIRA@example.com ", "hunter2hunter2", models.RoleTenant, "", "")
	require.NoError(t, err)
	assert.Equal(t, "amira@example.com", result.Email)
}

func TestLogoutIdempotent(t *testing.T) {
	svc := newAuthService(t)
	result := signUpTenant(t, svc, "amira@example.com")

	require.NoError(t, svc.Logout(context.Background(), result.SessionID, result.Token))
	require.NoError(t, svc.Logout(context.Background(), result.SessionID, result.Token))
}

func TestUpdateProfileKeepsRole(t *testing.T) {
	svc := newAuthService(t)
	result := signUpTenant(t, svc, "amira@example.com")

	profile, err := svc.UpdateProfile(context.Background(), result.UserID, ProfileFields{
		FullName: "Amira K.",
		Phone:    "555-0100",
	})
	require.NoError(t, err)
	assert.Equal(t, models.RoleTenant, profile.Role)
	assert.Equal(t, "Amira K.", profile.FullName)
}

func TestEnsureProfileRepairsPartialSignUp(t *testing.T) {
	svc := newAuthService(t)
	result := signUpTenant(t, svc, "amira@example.com")

	// Re-running the upserts against an existing user succeeds and
	// leaves a consistent profile
	err := svc.EnsureProfile(context.Background(), result.UserID, models.RoleTenant, ProfileFields{
		FullName:   "Amira Khan",
		Occupation: "architect",
	})
	require.NoError(t, err)

	profile, err := svc.GetProfile(context.Background(), result.UserID)
	require.NoError(t, err)
	assert.Equal(t, models.RoleTenant, profile.Role)
}
