package server

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"testing"

	"inkwell/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"avatar.png", "avatar.png"},
		{"../../etc/passwd", "passwd"},
		{"/tmp/evil.sh", "evil.sh"},
		{"my photo (1).jpg", "my_photo__1_.jpg"},
		{"..", ""},
		{"Ünïcode.png", "_n_code.png"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, SanitizeFilename(tt.in), "SanitizeFilename(%q)", tt.in)
	}
}

func TestUpdateUser_WithImageUpload(t *testing.T) {
	srv, app := newTestServer(t)
	j := newJar()
	registerUser(t, app, j, "Alice", "alice", "alice@example.com", "p1")
	_ = body(t, login(t, app, j, "alice", "p1"))

	users, err := srv.userService.ListUsers(t.Context())
	require.NoError(t, err)
	require.Len(t, users, 1)
	id := users[0].ID

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	require.NoError(t, w.WriteField("name", "Alice"))
	require.NoError(t, w.WriteField("about_me", "bio"))
	fw, err := w.CreateFormFile(profileImageField, "../sneaky avatar.png")
	require.NoError(t, err)
	_, err = fw.Write([]byte("fake image bytes"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/update/"+itoa(id), &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	j.apply(req)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/dashboard", resp.Header.Get("Location"))
	_ = resp.Body.Close()

	// The file lands in the upload directory under a sanitized name.
	stored := filepath.Join(srv.config.UploadDir, "sneaky_avatar.png")
	data, err := os.ReadFile(stored)
	require.NoError(t, err)
	assert.Equal(t, "fake image bytes", string(data))

	// And the profile points at it.
	user, err := srv.userService.GetUserByID(t.Context(), id)
	require.NoError(t, err)
	assert.Equal(t, "sneaky_avatar.png", user.ProfileImg)
}

func TestUpdateUser_NoImageKeepsProfileImg(t *testing.T) {
	srv, app := newTestServer(t)
	j := newJar()
	registerUser(t, app, j, "Alice", "alice", "alice@example.com", "p1")
	_ = body(t, login(t, app, j, "alice", "p1"))

	users, err := srv.userService.ListUsers(t.Context())
	require.NoError(t, err)
	id := users[0].ID

	// Seed a profile image, then update without a file.
	_, err = srv.userService.UpdateProfile(t.Context(), service.UpdateProfileInput{
		UserID: id, ProfileImg: "existing.png",
	})
	require.NoError(t, err)

	resp := postForm(t, app, j, "/update/"+itoa(id), url.Values{
		"name":     {"Alice"},
		"about_me": {"new bio"},
	})
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	_ = resp.Body.Close()

	user, err := srv.userService.GetUserByID(t.Context(), id)
	require.NoError(t, err)
	assert.Equal(t, "existing.png", user.ProfileImg, "image unchanged without a new upload")
	assert.Equal(t, "new bio", user.AboutMe)
}
