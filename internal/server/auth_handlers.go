package server

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"inkwell/internal/cache"
	"inkwell/internal/middleware"
	"inkwell/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const sessionCookieName = "inkwell_session"

// LoginForm handles GET /login
func (s *Server) LoginForm(c *fiber.Ctx) error {
	if _, ok := currentUserID(c); ok {
		return c.Redirect("/dashboard")
	}
	return s.render(c, "members/login", fiber.Map{"Username": ""})
}

// Login handles POST /login
func (s *Server) Login(c *fiber.Ctx) error {
	username := c.FormValue("username")
	password := c.FormValue("password")

	if username == "" || password == "" {
		return s.render(c, "members/login", fiber.Map{
			"Flash":    &Flash{Message: "Username and password are required", Category: "warning"},
			"Username": username,
		})
	}

	user, err := s.userService.Authenticate(c.Context(), username, password)
	if err != nil {
		if models.ErrorCode(err) == models.CodeUnauthorized {
			return s.render(c, "members/login", fiber.Map{
				"Flash":    &Flash{Message: "Wrong Password - Try Again!", Category: "warning"},
				"Username": username,
			})
		}
		return s.renderError(c, err)
	}
	if user == nil {
		return s.render(c, "members/login", fiber.Map{
			"Flash":    &Flash{Message: "That User Doesn't Exist! Try Again...", Category: "warning"},
			"Username": username,
		})
	}

	token, err := s.generateToken(user.ID, user.Username)
	if err != nil {
		middleware.Logger.ErrorContext(c.UserContext(), "failed to sign session token", "error", err.Error())
		return s.renderServerError(c)
	}

	c.Cookie(&fiber.Cookie{
		Name:     sessionCookieName,
		Value:    token,
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Expires:  time.Now().Add(sessionLifetime),
	})

	setFlash(c, "Login successful!")
	return c.Redirect("/dashboard")
}

// Logout handles GET and POST /logout
func (s *Server) Logout(c *fiber.Ctx) error {
	// Revoke the current token until its natural expiry.
	if claims, ok := s.parseSessionClaims(c); ok {
		if jti, _ := claims["jti"].(string); jti != "" {
			if expUnix, err := claims.GetExpirationTime(); err == nil && expUnix != nil {
				ttl := time.Until(expUnix.Time)
				cache.DenySession(c.Context(), jti, ttl)
			}
		}
	}

	c.Cookie(&fiber.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Expires:  time.Now().Add(-time.Hour),
	})

	setFlash(c, "You have been logged out!")
	return c.Redirect("/login")
}

const sessionLifetime = 7 * 24 * time.Hour

// generateToken creates the signed session token for the given user.
func (s *Server) generateToken(userID uint, username string) (string, error) {
	if s.config.SecretKey == "" {
		return "", fmt.Errorf("secret key not configured")
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub":      strconv.FormatUint(uint64(userID), 10),
		"username": username,
		"iss":      "inkwell",
		"aud":      "inkwell-web",
		"exp":      now.Add(sessionLifetime).Unix(),
		"iat":      now.Unix(),
		"nbf":      now.Unix(),
		"jti":      s.generateJTI(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.config.SecretKey))
}

// generateJTI creates a unique token ID so individual sessions can be revoked.
func (s *Server) generateJTI() string {
	return fmt.Sprintf("%d-%s", time.Now().Unix(), uuid.New().String()[:8])
}

// parseSessionClaims validates the session cookie and returns its claims.
func (s *Server) parseSessionClaims(c *fiber.Ctx) (jwt.MapClaims, bool) {
	tokenString := c.Cookies(sessionCookieName)
	if tokenString == "" {
		return nil, false
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("invalid signing method")
		}
		return []byte(s.config.SecretKey), nil
	})
	if err != nil || !token.Valid {
		return nil, false
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, false
	}

	if issuer, issuerOk := claims["iss"].(string); !issuerOk || issuer != "inkwell" {
		return nil, false
	}
	if audience, audienceOk := claims["aud"].(string); !audienceOk || audience != "inkwell-web" {
		return nil, false
	}

	return claims, true
}

// Identify attaches the authenticated user's ID to the request when a valid,
// unrevoked session cookie is present. It never rejects the request.
func (s *Server) Identify() fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, ok := s.parseSessionClaims(c)
		if !ok {
			return c.Next()
		}

		if jti, exists := claims["jti"].(string); exists && jti != "" {
			if cache.IsSessionDenied(c.Context(), jti) {
				return c.Next()
			}
		}

		sub, ok := claims["sub"].(string)
		if !ok {
			return c.Next()
		}
		userID, err := strconv.ParseUint(sub, 10, 32)
		if err != nil {
			return c.Next()
		}

		c.Locals("userID", uint(userID))
		ctx := context.WithValue(c.UserContext(), middleware.UserIDKey, uint(userID))
		c.SetUserContext(ctx)

		return c.Next()
	}
}

// AuthRequired redirects anonymous callers to the login page.
func (s *Server) AuthRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := currentUserID(c); !ok {
			setFlash(c, "Please log in to access this page.", "warning")
			return c.Redirect("/login")
		}
		return c.Next()
	}
}
