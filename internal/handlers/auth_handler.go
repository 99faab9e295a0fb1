package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"rento-service/internal/metrics"
	"rento-service/internal/middleware"
	"rento-service/internal/services"
)

// AuthHandler handles sign-up, login, logout and profile endpoints
type AuthHandler struct {
	authService *services.AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// SignUpRequest is the sign-up payload
type SignUpRequest struct {
	Email         string `json:"email" binding:"required,email"`
	Password      string `json:"password" binding:"required,min=8"`
	Role          string `json:"role" binding:"required,oneof=tenant broker manager"`
	FullName      string `json:"full_name"`
	Phone         string `json:"phone"`
	AvatarURL     string `json:"avatar_url"`
	Occupation    string `json:"occupation"`
	Company       string `json:"company"`
	LicenseNumber string `json:"license_number"`
}

// LoginRequest is the login payload. Role is the role the caller is
// logging in as; a mismatch against the stored profile rejects the
// login outright.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role" binding:"omitempty,oneof=tenant broker manager"`
}

// UpdateProfileRequest is the profile update payload
type UpdateProfileRequest struct {
	FullName      string `json:"full_name"`
	Phone         string `json:"phone"`
	AvatarURL     string `json:"avatar_url"`
	Occupation    string `json:"occupation"`
	Company       string `json:"company"`
	LicenseNumber string `json:"license_number"`
}

// SignUp registers a new account with a fixed role
func (h *AuthHandler) SignUp(c *gin.Context) {
	var req SignUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	result, err := h.authService.SignUp(c.Request.Context(), req.Email, req.Password, req.Role, services.ProfileFields{
		FullName:      req.FullName,
		Phone:         req.Phone,
		AvatarURL:     req.AvatarURL,
		Occupation:    req.Occupation,
		Company:       req.Company,
		LicenseNumber: req.LicenseNumber,
	}, c.ClientIP(), c.Request.UserAgent())
	if err != nil {
		ServiceErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusCreated, "Account created", result)
}

// Login authenticates and issues a session token. The selected role
// must match the account's role.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	result, err := h.authService.Login(c.Request.Context(), req.Email, req.Password, req.Role, c.ClientIP(), c.Request.UserAgent())
	if err != nil {
		switch {
		case errors.Is(err, services.ErrRoleMismatch):
			metrics.RecordLoginAttempt("role_mismatch")
			ErrorResponseWithCode(c, http.StatusForbidden, "ROLE_MISMATCH", "Account role does not match the selected role", nil)
		case errors.Is(err, services.ErrInvalidCredentials):
			metrics.RecordLoginAttempt("invalid_credentials")
			ErrorResponse(c, http.StatusUnauthorized, "Invalid email or password", nil)
		default:
			ServiceErrorResponse(c, err)
		}
		return
	}

	metrics.RecordLoginAttempt("success")
	SuccessResponse(c, http.StatusOK, "Login successful", result)
}

// Logout revokes the current session token. Idempotent.
func (h *AuthHandler) Logout(c *gin.Context) {
	sessionID := middleware.GetSessionID(c)
	token := middleware.GetToken(c)

	if err := h.authService.Logout(c.Request.Context(), sessionID, token); err != nil {
		ServiceErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "Logged out", nil)
}

// Me returns the authenticated user's profile
func (h *AuthHandler) Me(c *gin.Context) {
	userID := middleware.GetUserID(c)

	profile, err := h.authService.GetProfile(c.Request.Context(), userID)
	if err != nil {
		ServiceErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "Profile retrieved", profile)
}

// UpdateMe upserts the authenticated user's profile and role profile.
// The role itself is never changed here.
func (h *AuthHandler) UpdateMe(c *gin.Context) {
	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	userID := middleware.GetUserID(c)
	profile, err := h.authService.UpdateProfile(c.Request.Context(), userID, services.ProfileFields{
		FullName:      req.FullName,
		Phone:         req.Phone,
		AvatarURL:     req.AvatarURL,
		Occupation:    req.Occupation,
		Company:       req.Company,
		LicenseNumber: req.LicenseNumber,
	})
	if err != nil {
		ServiceErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "Profile updated", profile)
}
