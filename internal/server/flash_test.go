package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlashRoundTrip(t *testing.T) {
	app := fiber.New()
	app.Get("/set", func(c *fiber.Ctx) error {
		setFlash(c, "hello | world", "info")
		return c.SendString("ok")
	})
	app.Get("/take", func(c *fiber.Ctx) error {
		f := takeFlash(c)
		if f == nil {
			return c.SendString("none")
		}
		return c.SendString(f.Category + ":" + f.Message)
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/set", nil))
	require.NoError(t, err)
	_ = resp.Body.Close()

	var flashValue string
	for _, c := range resp.Cookies() {
		if c.Name == flashCookieName {
			flashValue = c.Value
		}
	}
	require.NotEmpty(t, flashValue)

	req := httptest.NewRequest(http.MethodGet, "/take", nil)
	req.AddCookie(&http.Cookie{Name: flashCookieName, Value: flashValue})
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, "info:hello | world", body(t, resp))

	// The taking response expires the cookie.
	cleared := false
	for _, c := range resp.Cookies() {
		if c.Name == flashCookieName && c.Value == "" {
			cleared = true
		}
	}
	assert.True(t, cleared, "flash cookie should be cleared after reading")
}

func TestTakeFlash_NoCookie(t *testing.T) {
	app := fiber.New()
	app.Get("/take", func(c *fiber.Ctx) error {
		if takeFlash(c) == nil {
			return c.SendString("none")
		}
		return c.SendString("some")
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/take", nil))
	require.NoError(t, err)
	assert.Equal(t, "none", body(t, resp))
}

func TestSetFlash_DefaultCategory(t *testing.T) {
	app := fiber.New()
	app.Get("/set", func(c *fiber.Ctx) error {
		setFlash(c, "plain message")
		return c.SendString("ok")
	})
	app.Get("/take", func(c *fiber.Ctx) error {
		f := takeFlash(c)
		return c.SendString(f.Category)
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/set", nil))
	require.NoError(t, err)
	_ = resp.Body.Close()

	var flashValue string
	for _, c := range resp.Cookies() {
		if c.Name == flashCookieName {
			flashValue = c.Value
		}
	}

	req := httptest.NewRequest(http.MethodGet, "/take", nil)
	req.AddCookie(&http.Cookie{Name: flashCookieName, Value: flashValue})
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, "message", body(t, resp))
}
