package server

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"sync/atomic"
	"testing"

	"inkwell/internal/cache"
	"inkwell/internal/config"
	"inkwell/internal/database"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var dbSeq atomic.Int64

// newTestServer wires a full server against in-memory SQLite and miniredis.
func newTestServer(t *testing.T) (*Server, *fiber.App) {
	t.Helper()
	t.Setenv("APP_ENV", "test")

	dsn := fmt.Sprintf("file:server_test_%d?mode=memory&cache=shared", dbSeq.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(database.PersistentModels()...))

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	cache.SetClient(rdb)
	t.Cleanup(func() { cache.SetClient(nil) })

	cfg := &config.Config{
		SecretKey: "test-secret-key-not-for-production",
		Port:      "0",
		UploadDir: t.TempDir(),
		Env:       "test",
	}

	srv, err := NewServerWithDeps(cfg, db, rdb)
	require.NoError(t, err)

	app := srv.NewApp()
	srv.SetupMiddleware(app)
	srv.SetupRoutes(app)
	return srv, app
}

// jar is a minimal cookie jar for driving multi-request flows through app.Test.
type jar struct {
	cookies map[string]string
}

func newJar() *jar {
	return &jar{cookies: map[string]string{}}
}

func (j *jar) update(resp *http.Response) {
	for _, c := range resp.Cookies() {
		if c.Value == "" {
			delete(j.cookies, c.Name)
			continue
		}
		j.cookies[c.Name] = c.Value
	}
}

func (j *jar) apply(req *http.Request) {
	for name, value := range j.cookies {
		req.AddCookie(&http.Cookie{Name: name, Value: value})
	}
}

func get(t *testing.T, app *fiber.App, j *jar, path string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if j != nil {
		j.apply(req)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	if j != nil {
		j.update(resp)
	}
	return resp
}

func postForm(t *testing.T, app *fiber.App, j *jar, path string, form url.Values) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if j != nil {
		j.apply(req)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	if j != nil {
		j.update(resp)
	}
	return resp
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

func body(t *testing.T, resp *http.Response) string {
	t.Helper()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	_ = resp.Body.Close()
	return string(b)
}

// registerUser drives the registration form.
func registerUser(t *testing.T, app *fiber.App, j *jar, name, username, email, password string) {
	t.Helper()
	resp := postForm(t, app, j, "/user/add", url.Values{
		"name":     {name},
		"username": {username},
		"email":    {email},
		"password": {password},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	_ = resp.Body.Close()
}

// login drives the login form and keeps the session cookie in the jar.
func login(t *testing.T, app *fiber.App, j *jar, username, password string) *http.Response {
	t.Helper()
	return postForm(t, app, j, "/login", url.Values{
		"username": {username},
		"password": {password},
	})
}
