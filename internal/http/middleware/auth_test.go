package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.uber.org/zap"

	"github.com/AmitSheynhaft/colman-internet-app-assignment2/internal/http/middleware"
	"github.com/AmitSheynhaft/colman-internet-app-assignment2/internal/token"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func newGuardedRouter(codec *token.Codec) (*gin.Engine, *string) {
	gin.SetMode(gin.TestMode)
	guard := &middleware.Auth{Codec: codec, Logger: zap.NewNop()}

	var seenUserID string
	router := gin.New()
	router.GET("/protected", guard.RequireAuth, func(c *gin.Context) {
		if id, ok := middleware.UserID(c); ok {
			seenUserID = id
		}
		c.JSON(http.StatusOK, gin.H{"message": "ok"})
	})
	return router, &seenUserID
}

func TestRequireAuthRejectsMissingHeader(t *testing.T) {
	router, _ := newGuardedRouter(token.NewCodec(testSecret, time.Minute, time.Hour))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.JSONEq(t, `{"message":"Unauthorized"}`, rec.Body.String())
}

func TestRequireAuthRejectsMalformedHeader(t *testing.T) {
	codec := token.NewCodec(testSecret, time.Minute, time.Hour)
	router, _ := newGuardedRouter(codec)

	access, err := codec.IssueAccess(bson.NewObjectID().Hex())
	require.NoError(t, err)

	for _, header := range []string{
		"Basic " + access,
		"Bearer",
		"Bearer ",
		access,
	} {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", header)
		router.ServeHTTP(rec, req)
		require.Equal(t, http.StatusUnauthorized, rec.Code, "header %q", header)
	}
}

func TestRequireAuthRejectsTamperedToken(t *testing.T) {
	other := token.NewCodec("another-secret-entirely-32-chars", time.Minute, time.Hour)
	router, _ := newGuardedRouter(token.NewCodec(testSecret, time.Minute, time.Hour))

	access, err := other.IssueAccess(bson.NewObjectID().Hex())
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+access)
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.JSONEq(t, `{"message":"Unauthorized"}`, rec.Body.String())
}

func TestRequireAuthPassesValidTokenAndAttachesUserID(t *testing.T) {
	codec := token.NewCodec(testSecret, time.Minute, time.Hour)
	router, seen := newGuardedRouter(codec)

	userID := bson.NewObjectID().Hex()
	access, err := codec.IssueAccess(userID)
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+access)
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, userID, *seen)
}

func TestRequireAuthMissingSecretIsServerFault(t *testing.T) {
	issuing := token.NewCodec(testSecret, time.Minute, time.Hour)
	router, _ := newGuardedRouter(token.NewCodec("", time.Minute, time.Hour))

	access, err := issuing.IssueAccess(bson.NewObjectID().Hex())
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+access)
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.JSONEq(t, `{"message":"internal server error"}`, rec.Body.String())
}
