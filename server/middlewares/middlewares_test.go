package middlewares

import (
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/inkwell-blog/inkwell/model"
	"github.com/inkwell-blog/inkwell/utils/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	os.Setenv("JWT_SECRET", "middleware_test_secret")
	gin.SetMode(gin.TestMode)
	Setup()
	os.Exit(m.Run())
}

func guardedRouter() *gin.Engine {
	router := gin.New()
	router.GET("/protected", JWT(), func(c *gin.Context) {
		identity, ok := CurrentIdentity(c)
		if !ok {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "identity missing"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"id": identity.Id, "name": identity.Name})
	})
	return router
}

func get(router *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("GET", "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestJWTMissingHeader(t *testing.T) {
	w := get(guardedRouter(), "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Authorization header not found")
}

func TestJWTMissingTokenSegment(t *testing.T) {
	w := get(guardedRouter(), "Bearer")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Token not found")
}

func TestJWTInvalidToken(t *testing.T) {
	w := get(guardedRouter(), "Bearer not-a-real-token")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid token")
}

func TestJWTExpiredToken(t *testing.T) {
	signed, err := token.Mint(&model.User{Id: "user-1"}, JWTSecret(), time.Now().Add(-token.TokenValidity-time.Minute))
	require.NoError(t, err)

	w := get(guardedRouter(), "Bearer "+signed)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid token")
}

func TestJWTAttachesIdentity(t *testing.T) {
	signed, err := token.Mint(&model.User{Id: "user-1", Name: "alice"}, JWTSecret(), time.Now())
	require.NoError(t, err)

	w := get(guardedRouter(), "Bearer "+signed)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"id":"user-1"`)
	assert.Contains(t, w.Body.String(), `"name":"alice"`)
}
