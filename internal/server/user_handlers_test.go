package server

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIndex_ListsUsers(t *testing.T) {
	_, app := newTestServer(t)
	j := newJar()
	registerUser(t, app, j, "Alice", "alice", "alice@example.com", "p1")
	registerUser(t, app, j, "Bob", "bob", "bob@example.com", "p2")

	resp := get(t, app, nil, "/")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	html := body(t, resp)
	assert.Contains(t, html, "Alice")
	assert.Contains(t, html, "Bob")
}

func TestAddUser_Success(t *testing.T) {
	_, app := newTestServer(t)

	resp := postForm(t, app, nil, "/user/add", url.Values{
		"name":     {"Carol"},
		"username": {"carol"},
		"email":    {"carol@example.com"},
		"password": {"p1"},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	html := body(t, resp)
	assert.Contains(t, html, "User added")
	assert.Contains(t, html, "Carol")
}

func TestAddUser_DuplicateEmailLeavesOriginal(t *testing.T) {
	srv, app := newTestServer(t)
	j := newJar()
	registerUser(t, app, j, "Alice", "alice", "alice@example.com", "p1")

	// A second registration with the same email changes nothing.
	resp := postForm(t, app, nil, "/user/add", url.Values{
		"name":     {"Impostor"},
		"username": {"impostor"},
		"email":    {"alice@example.com"},
		"password": {"other"},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	_ = resp.Body.Close()

	users, err := srv.userService.ListUsers(t.Context())
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "Alice", users[0].Name)
	assert.Equal(t, "alice", users[0].Username)
}

func TestAddUser_InvalidInput(t *testing.T) {
	_, app := newTestServer(t)

	resp := postForm(t, app, nil, "/user/add", url.Values{
		"name":     {"Dana"},
		"username": {"d"},
		"email":    {"dana@example.com"},
		"password": {"p1"},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body(t, resp), "username must be at least 3 characters")
}

func TestUserGreeting(t *testing.T) {
	_, app := newTestServer(t)

	resp := get(t, app, nil, "/user/World")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body(t, resp), "Hello, World!")
}

func TestNameForm(t *testing.T) {
	_, app := newTestServer(t)

	resp := postForm(t, app, nil, "/name", url.Values{"name": {"Gopher"}})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	html := body(t, resp)
	assert.Contains(t, html, "Gopher")
	assert.Contains(t, html, "The form submitted successfully!")
}

func TestUpdateUser_Profile(t *testing.T) {
	srv, app := newTestServer(t)
	j := newJar()
	registerUser(t, app, j, "Alice", "alice", "alice@example.com", "p1")
	_ = body(t, login(t, app, j, "alice", "p1"))

	users, err := srv.userService.ListUsers(t.Context())
	require.NoError(t, err)
	require.Len(t, users, 1)
	id := users[0].ID

	resp := postForm(t, app, j, "/update/"+itoa(id), url.Values{
		"name":     {"Alice Renamed"},
		"username": {"alice"},
		"email":    {"alice@example.com"},
		"about_me": {"I write about Go."},
	})
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/dashboard", resp.Header.Get("Location"))
	_ = resp.Body.Close()

	dash := get(t, app, j, "/dashboard")
	require.Equal(t, http.StatusOK, dash.StatusCode)
	html := body(t, dash)
	assert.Contains(t, html, "Alice Renamed")
	assert.Contains(t, html, "I write about Go.")
}

func TestDeleteUser_SelfOnly(t *testing.T) {
	srv, app := newTestServer(t)
	j := newJar()
	registerUser(t, app, j, "Alice", "alice", "alice@example.com", "p1")
	registerUser(t, app, j, "Bob", "bob", "bob@example.com", "p2")
	_ = body(t, login(t, app, j, "alice", "p1"))

	users, err := srv.userService.ListUsers(t.Context())
	require.NoError(t, err)
	var bobID uint
	for _, u := range users {
		if u.Username == "bob" {
			bobID = u.ID
		}
	}
	require.NotZero(t, bobID)

	// Alice cannot delete Bob.
	resp := get(t, app, j, "/delete-user/"+itoa(bobID))
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/dashboard", resp.Header.Get("Location"))
	_ = resp.Body.Close()

	users, err = srv.userService.ListUsers(t.Context())
	require.NoError(t, err)
	assert.Len(t, users, 2, "nothing deleted")
}

func TestDeleteUser_OwnAccount(t *testing.T) {
	srv, app := newTestServer(t)
	j := newJar()
	registerUser(t, app, j, "Alice", "alice", "alice@example.com", "p1")
	_ = body(t, login(t, app, j, "alice", "p1"))

	users, err := srv.userService.ListUsers(t.Context())
	require.NoError(t, err)
	require.Len(t, users, 1)

	resp := get(t, app, j, "/delete-user/"+itoa(users[0].ID))
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"), "session ends with the account")
	_ = resp.Body.Close()

	users, err = srv.userService.ListUsers(t.Context())
	require.NoError(t, err)
	assert.Empty(t, users)
}

func TestAdminPage_RequiresAdmin(t *testing.T) {
	srv, app := newTestServer(t)
	j := newJar()
	registerUser(t, app, j, "Alice", "alice", "alice@example.com", "p1")
	_ = body(t, login(t, app, j, "alice", "p1"))

	// Regular users are sent back to the posts list.
	resp := get(t, app, j, "/admin")
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/all_posts", resp.Header.Get("Location"))
	_ = resp.Body.Close()

	// After promotion, the page renders.
	users, err := srv.userService.ListUsers(t.Context())
	require.NoError(t, err)
	_, err = srv.userService.SetAdmin(t.Context(), users[0].ID, true)
	require.NoError(t, err)

	resp = get(t, app, j, "/admin")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	page := body(t, resp)
	assert.Contains(t, page, "Welcome to the admin page.")
	assert.Contains(t, page, "alice@example.com")
	// Account deletion is self-service only, so the listing offers no delete links.
	assert.NotContains(t, page, "/delete-user/")
}
