package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/AmitSheynhaft/colman-internet-app-assignment2/internal/token"
)

const userIDKey = "userID"

// Auth is the access guard: it verifies the bearer access token on
// protected routes and attaches the authenticated user id to the request
// context. Access tokens are never looked up against the store; the check is
// stateless.
type Auth struct {
	Codec  *token.Codec
	Logger *zap.Logger
}

// RequireAuth halts the request unless a valid bearer token is presented.
func (m *Auth) RequireAuth(c *gin.Context) {
	header := c.GetHeader("Authorization")
	if header == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
		return
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
		return
	}

	claims, err := m.Codec.Verify(parts[1])
	if err != nil {
		if errors.Is(err, token.ErrNotConfigured) {
			if m.Logger != nil {
				m.Logger.Error("token secret not configured", zap.String("op", "access guard"))
			}
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"message": "internal server error"})
			return
		}
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
		return
	}

	c.Set(userIDKey, claims.UserID)
	c.Next()
}

// UserID returns the authenticated user id attached by RequireAuth.
func UserID(c *gin.Context) (string, bool) {
	value, ok := c.Get(userIDKey)
	if !ok {
		return "", false
	}
	id, ok := value.(string)
	return id, ok && id != ""
}
