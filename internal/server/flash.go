package server

import (
	"net/url"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
)

const flashCookieName = "inkwell_flash"

// Flash is a one-time notice carried across a redirect and shown on the next
// rendered page.
type Flash struct {
	Message  string
	Category string
}

// setFlash stores a flash message in a short-lived cookie.
func setFlash(c *fiber.Ctx, message string, category ...string) {
	cat := "message"
	if len(category) > 0 && category[0] != "" {
		cat = category[0]
	}
	c.Cookie(&fiber.Cookie{
		Name:     flashCookieName,
		Value:    url.QueryEscape(cat + "|" + message),
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Expires:  time.Now().Add(5 * time.Minute),
	})
}

// takeFlash reads and clears the flash cookie. Returns nil when no flash is set.
func takeFlash(c *fiber.Ctx) *Flash {
	raw := c.Cookies(flashCookieName)
	if raw == "" {
		return nil
	}

	c.Cookie(&fiber.Cookie{
		Name:     flashCookieName,
		Value:    "",
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Expires:  time.Now().Add(-time.Hour),
	})

	decoded, err := url.QueryUnescape(raw)
	if err != nil {
		return nil
	}
	cat, msg, found := strings.Cut(decoded, "|")
	if !found {
		return &Flash{Message: decoded, Category: "message"}
	}
	return &Flash{Message: msg, Category: cat}
}
