package server

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRegisterAndLogin(t *testing.T) {
	router, db := newTestRouter(t)

	token, userId := testRegisterAndLogin(t, router, db, "alice", "alice@example.com")
	require.NotEmpty(t, token)
	require.NotEmpty(t, userId)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	router, db := newTestRouter(t)

	testRegisterAndLogin(t, router, db, "alice", "alice@example.com")

	w := performRequest(router, "POST", "/api/register", jsonBody(t, map[string]interface{}{
		"name":     "alice_again",
		"email":    "alice@example.com",
		"password": "hunter2!",
	}), jsonHeaders(""))
	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp struct {
		Message string `json:"message"`
	}
	decodeBody(t, w, &resp)
	require.Equal(t, "User already exists", resp.Message)
}

func TestRegisterRejectsMalformedInput(t *testing.T) {
	router, _ := newTestRouter(t)

	// missing password
	w := performRequest(router, "POST", "/api/register", jsonBody(t, map[string]interface{}{
		"name":  "alice",
		"email": "alice@example.com",
	}), jsonHeaders(""))
	require.Equal(t, http.StatusBadRequest, w.Code)

	// invalid email
	w = performRequest(router, "POST", "/api/register", jsonBody(t, map[string]interface{}{
		"name":     "alice",
		"email":    "not-an-email",
		"password": "hunter2!",
	}), jsonHeaders(""))
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLoginUnknownEmail(t *testing.T) {
	router, _ := newTestRouter(t)

	w := performRequest(router, "POST", "/api/login", jsonBody(t, map[string]interface{}{
		"email":    "nobody@example.com",
		"password": "whatever",
	}), jsonHeaders(""))
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestLoginWrongPassword(t *testing.T) {
	router, db := newTestRouter(t)

	testRegisterAndLogin(t, router, db, "alice", "alice@example.com")

	w := performRequest(router, "POST", "/api/login", jsonBody(t, map[string]interface{}{
		"email":    "alice@example.com",
		"password": "wrong-password",
	}), jsonHeaders(""))
	require.Equal(t, http.StatusUnauthorized, w.Code)

	var resp struct {
		Message string `json:"message"`
	}
	decodeBody(t, w, &resp)
	require.Equal(t, "Invalid password", resp.Message)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	router, _ := newTestRouter(t)

	// no header
	w := performRequest(router, "POST", "/api/posts/create", nil, nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
	var resp struct {
		Message string `json:"message"`
	}
	decodeBody(t, w, &resp)
	require.Equal(t, "Authorization header not found", resp.Message)

	// header without token segment
	w = performRequest(router, "POST", "/api/posts/create", nil, map[string]string{"Authorization": "Bearer"})
	require.Equal(t, http.StatusUnauthorized, w.Code)
	decodeBody(t, w, &resp)
	require.Equal(t, "Token not found", resp.Message)

	// garbage token
	w = performRequest(router, "POST", "/api/posts/create", nil, map[string]string{"Authorization": "Bearer garbage"})
	require.Equal(t, http.StatusUnauthorized, w.Code)
	decodeBody(t, w, &resp)
	require.Equal(t, "Invalid token", resp.Message)
}
