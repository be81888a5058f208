package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/inkwell-blog/inkwell/file_store"
	"github.com/inkwell-blog/inkwell/server/middlewares"
	"github.com/inkwell-blog/inkwell/utils"
	"github.com/inkwell-blog/inkwell/utils/dotenv"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestMain(m *testing.M) {
	dotenv.LoadDotEnvsInTests()
	if os.Getenv("JWT_SECRET") == "" {
		os.Setenv("JWT_SECRET", "test_only_secret")
	}
	gin.SetMode(gin.TestMode)
	middlewares.Setup()
	os.Exit(m.Run())
}

// newTestRouter builds a full router over a per-test temp database and a
// fake upload store. The tag cache is nil, the API must behave identically
// without redis.
func newTestRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	db, _ := utils.CreateTempDB(t)
	router := gin.New()
	RegisterRoutes(router, NewAPIServer(db, &file_store.FakeUploadStore{}, nil))
	return router, db
}

func performRequest(router *gin.Engine, method, path string, body io.Reader, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, body)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func jsonBody(t *testing.T, v interface{}) io.Reader {
	t.Helper()
	raw, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewReader(raw)
}

func jsonHeaders(token string) map[string]string {
	headers := map[string]string{"Content-Type": "application/json"}
	if token != "" {
		headers["Authorization"] = "Bearer " + token
	}
	return headers
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out))
}

// register a user, do sanity checks and return their login token and id
func testRegisterAndLogin(t *testing.T, router *gin.Engine, db *gorm.DB, name string, email string) (token string, userId string) {
	t.Helper()

	w := performRequest(router, "POST", "/api/register", jsonBody(t, map[string]interface{}{
		"name":     name,
		"email":    email,
		"password": "hunter2!",
	}), jsonHeaders(""))
	require.Equal(t, http.StatusCreated, w.Code)

	w = performRequest(router, "POST", "/api/login", jsonBody(t, map[string]interface{}{
		"email":    email,
		"password": "hunter2!",
	}), jsonHeaders(""))
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Token string `json:"token"`
	}
	decodeBody(t, w, &resp)
	require.NotEmpty(t, resp.Token)

	var id string
	require.NoError(t, db.Raw("SELECT id FROM users WHERE email = ?", email).Scan(&id).Error)
	require.NotEmpty(t, id)

	return resp.Token, id
}

type postResponse struct {
	Id        string   `json:"id"`
	Title     string   `json:"title"`
	Body      string   `json:"body"`
	Slug      string   `json:"slug"`
	Thumbnail string   `json:"thumbnail"`
	Tags      []string `json:"tags"`
	Likes     int64    `json:"likes"`
	LikedBy   []string `json:"likedBy"`
	Author    *struct {
		Id    string `json:"id"`
		Name  string `json:"name"`
		Email string `json:"email"`
	} `json:"author"`
}

// multipartBody encodes form fields the way the create endpoint expects
// them and returns the body together with its content type.
func multipartBody(t *testing.T, fields map[string]string) (io.Reader, string) {
	t.Helper()
	var buf bytes.Buffer
	form := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, form.WriteField(k, v))
	}
	require.NoError(t, form.Close())
	return &buf, form.FormDataContentType()
}

// create a post through the multipart endpoint, do sanity checks and return it
func testCreatePost(t *testing.T, router *gin.Engine, token string, title string, tags []string) postResponse {
	t.Helper()

	tagsJSON, err := json.Marshal(tags)
	require.NoError(t, err)
	body, contentType := multipartBody(t, map[string]string{
		"title": title,
		"body":  fmt.Sprintf("body of %s", title),
		"tags":  string(tagsJSON),
	})

	w := performRequest(router, "POST", "/api/posts/create", body, map[string]string{
		"Content-Type":  contentType,
		"Authorization": "Bearer " + token,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var post postResponse
	decodeBody(t, w, &post)
	require.NotEmpty(t, post.Id)
	require.NotEmpty(t, post.Slug)
	require.Equal(t, title, post.Title)
	require.NotNil(t, post.Author)
	return post
}
