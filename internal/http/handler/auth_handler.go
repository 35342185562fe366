package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/AmitSheynhaft/colman-internet-app-assignment2/internal/http/middleware"
	"github.com/AmitSheynhaft/colman-internet-app-assignment2/internal/repository"
	"github.com/AmitSheynhaft/colman-internet-app-assignment2/internal/service"
)

// AuthHandler exposes the session endpoints.
type AuthHandler struct {
	Auth   *service.AuthService
	Logger *zap.Logger
}

func NewAuthHandler(auth *service.AuthService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{Auth: auth, Logger: logger}
}

type registerRequest struct {
	Username       string `json:"username"`
	Email          string `json:"email"`
	Password       string `json:"password"`
	Age            *int   `json:"age"`
	Bio            string `json:"bio"`
	ProfilePicture string `json:"profilePicture"`
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// Register creates a new account.
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request body"})
		return
	}

	user, err := h.Auth.Register(c.Request.Context(), service.RegisterInput{
		Username:       req.Username,
		Email:          req.Email,
		Password:       req.Password,
		Age:            req.Age,
		Bio:            req.Bio,
		ProfilePicture: req.ProfilePicture,
	})
	if err != nil {
		var svcErr *service.Error
		if errors.As(err, &svcErr) {
			body := gin.H{"success": false, "message": svcErr.Message}
			if len(svcErr.Fields) > 0 {
				body["errors"] = svcErr.Fields
			}
			c.JSON(svcErr.Status, body)
			return
		}
		h.logError(c, "register failed", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "User created successfully",
		"data":    user,
	})
}

// Login exchanges credentials for a token pair.
func (h *AuthHandler) Login(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "missing email or password"})
		return
	}

	pair, err := h.Auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.respondAuthError(c, "login failed", err)
		return
	}
	c.JSON(http.StatusOK, pair)
}

// Refresh rotates a refresh token and returns a new pair.
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req refreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "fail"})
		return
	}

	pair, err := h.Auth.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		h.respondAuthError(c, "refresh failed", err)
		return
	}
	c.JSON(http.StatusOK, pair)
}

// Logout revokes the presented refresh token.
func (h *AuthHandler) Logout(c *gin.Context) {
	var req refreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "failed to Logout"})
		return
	}

	if err := h.Auth.Logout(c.Request.Context(), req.RefreshToken); err != nil {
		h.respondAuthError(c, "logout failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "logout success"})
}

// Me returns the authenticated user's profile.
func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
		return
	}

	user, err := h.Auth.GetUser(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "User not found"})
			return
		}
		h.logError(c, "load profile failed", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "User retrieved successfully",
		"data":    user,
	})
}

// respondAuthError maps service errors onto the auth endpoints' flat
// {"message": ...} payloads. Unclassified errors are server faults.
func (h *AuthHandler) respondAuthError(c *gin.Context, logMsg string, err error) {
	var svcErr *service.Error
	if errors.As(err, &svcErr) {
		c.JSON(svcErr.Status, gin.H{"message": svcErr.Message})
		return
	}
	h.logError(c, logMsg, err)
	c.JSON(http.StatusInternalServerError, gin.H{"message": "internal server error"})
}

func (h *AuthHandler) logError(c *gin.Context, msg string, err error) {
	if h.Logger == nil {
		return
	}
	h.Logger.Error(msg, zap.Error(err), zap.String("path", c.FullPath()))
}
