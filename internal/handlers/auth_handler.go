package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/cityconnect/transit-backend/internal/config"
	"github.com/cityconnect/transit-backend/internal/database"
	"github.com/cityconnect/transit-backend/internal/middleware"
	"github.com/cityconnect/transit-backend/internal/models"
	"github.com/cityconnect/transit-backend/internal/utils"
	"github.com/cityconnect/transit-backend/pkg/jwt"
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// invalidCredentialsMessage is deliberately identical for unknown emails and
// wrong passwords to avoid user enumeration.
const invalidCredentialsMessage = "Invalid email or password"

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	jwtService       *jwt.Service
	userRepository   *database.UserRepository
	refreshTokenRepo *database.RefreshTokenRepository
	config           *config.Config
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(
	jwtService *jwt.Service,
	userRepository *database.UserRepository,
	refreshTokenRepo *database.RefreshTokenRepository,
	cfg *config.Config,
) *AuthHandler {
	return &AuthHandler{
		jwtService:       jwtService,
		userRepository:   userRepository,
		refreshTokenRepo: refreshTokenRepo,
		config:           cfg,
	}
}

// Signup handles POST /api/auth/signup
func (h *AuthHandler) Signup(c *gin.Context) {
	var req models.SignupRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: err.Error(),
		})
		return
	}

	// Role is checked before any database work
	if err := req.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: err.Error(),
		})
		return
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), h.config.Security.BcryptCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "internal_error",
			Message: "Failed to create account",
		})
		return
	}

	user, profile, err := h.userRepository.CreateUserWithProfile(
		req.Email,
		string(passwordHash),
		req.FullName,
		req.Phone,
		models.Role(req.Role),
	)
	if err != nil {
		if errors.Is(err, database.ErrDuplicateEmail) {
			c.JSON(http.StatusConflict, ErrorResponse{
				Error:   "duplicate_email",
				Message: err.Error(),
			})
			return
		}
		log.Printf("SIGNUP FAILED: %v", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "internal_error",
			Message: "Failed to create account",
		})
		return
	}

	session, err := h.issueSession(c, user, profile)
	if err != nil {
		log.Printf("SIGNUP SESSION FAILED: %v", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "internal_error",
			Message: "Account created but session could not be issued. Please log in.",
		})
		return
	}

	c.JSON(http.StatusCreated, models.AuthResponse{
		User:    userInfo(user, profile),
		Session: *session,
	})
}

// Login handles POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: "Email and password are required",
		})
		return
	}

	user, err := h.userRepository.GetUserByEmail(req.Email)
	if err != nil {
		log.Printf("LOGIN FAILED: %v", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "internal_error",
			Message: "Failed to log in",
		})
		return
	}

	if user == nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Error:   "invalid_credentials",
			Message: invalidCredentialsMessage,
		})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Error:   "invalid_credentials",
			Message: invalidCredentialsMessage,
		})
		return
	}

	profile, err := h.userRepository.GetProfileByUserID(user.ID)
	if err != nil {
		log.Printf("LOGIN PROFILE FAILED: %v", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "internal_error",
			Message: "Failed to log in",
		})
		return
	}

	// A credential without a profile row is a data-integrity violation
	if profile == nil {
		log.Printf("LOGIN FAILED: profile row missing for user %s", user.ID)
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "internal_error",
			Message: "Account profile is missing. Please contact support.",
		})
		return
	}

	session, err := h.issueSession(c, user, profile)
	if err != nil {
		log.Printf("LOGIN SESSION FAILED: %v", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "internal_error",
			Message: "Failed to log in",
		})
		return
	}

	c.JSON(http.StatusOK, models.AuthResponse{
		User:    userInfo(user, profile),
		Session: *session,
	})
}

// Logout handles POST /api/auth/logout. Every refresh token the user holds
// is revoked; already-issued access tokens simply age out.
func (h *AuthHandler) Logout(c *gin.Context) {
	userCtx, exists := middleware.GetUserContext(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Error:   "unauthorized",
			Message: "Authentication required",
		})
		return
	}

	if err := h.refreshTokenRepo.RevokeAllForUser(userCtx.UserID); err != nil {
		log.Printf("LOGOUT FAILED: %v", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "internal_error",
			Message: "Failed to log out",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Refresh handles POST /api/auth/refresh, rotating the refresh token
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req models.RefreshRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: "refresh_token is required",
		})
		return
	}

	claims, err := h.jwtService.ValidateRefreshToken(req.RefreshToken)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Error:   "invalid_token",
			Message: "Invalid or expired refresh token",
		})
		return
	}

	active, err := h.refreshTokenRepo.IsActive(claims.UserID, req.RefreshToken)
	if err != nil {
		log.Printf("REFRESH CHECK FAILED: %v", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "internal_error",
			Message: "Failed to refresh session",
		})
		return
	}
	if !active {
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Error:   "invalid_token",
			Message: "Refresh token has been revoked",
		})
		return
	}

	user, err := h.userRepository.GetUserByID(claims.UserID)
	if err != nil || user == nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Error:   "invalid_token",
			Message: "Account no longer exists",
		})
		return
	}

	profile, err := h.userRepository.GetProfileByUserID(user.ID)
	if err != nil || profile == nil {
		log.Printf("REFRESH PROFILE FAILED: user %s: %v", user.ID, err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "internal_error",
			Message: "Failed to refresh session",
		})
		return
	}

	if err := h.refreshTokenRepo.Revoke(claims.UserID, req.RefreshToken); err != nil {
		log.Printf("REFRESH REVOKE FAILED: %v", err)
	}

	session, err := h.issueSession(c, user, profile)
	if err != nil {
		log.Printf("REFRESH SESSION FAILED: %v", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "internal_error",
			Message: "Failed to refresh session",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"session": session})
}

// issueSession generates an access/refresh token pair and records the
// refresh token with the caller's device metadata.
func (h *AuthHandler) issueSession(c *gin.Context, user *models.User, profile *models.Profile) (*models.Session, error) {
	accessToken, err := h.jwtService.GenerateAccessToken(user.ID, user.Email, string(profile.Role))
	if err != nil {
		return nil, err
	}

	refreshToken, err := h.jwtService.GenerateRefreshToken(user.ID, user.Email)
	if err != nil {
		return nil, err
	}

	device := utils.ParseUserAgent(c.Request.UserAgent())
	expiresAt := timeNow().Add(h.jwtService.RefreshTokenExpiry())

	if err := h.refreshTokenRepo.Store(user.ID, refreshToken, device.DeviceType, c.ClientIP(), device.Raw, expiresAt); err != nil {
		return nil, err
	}

	return &models.Session{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int(h.jwtService.AccessTokenExpiry().Seconds()),
	}, nil
}

func userInfo(user *models.User, profile *models.Profile) models.UserInfo {
	return models.UserInfo{
		ID:       user.ID,
		Email:    user.Email,
		FullName: profile.FullName,
		Phone:    profile.Phone,
		Role:     profile.Role,
	}
}
