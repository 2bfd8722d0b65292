package server

import (
	"github.com/gofiber/fiber/v2"

	"inkwell/internal/models"
)

const mainLayout = "layouts/main"

// render draws a page inside the main layout, attaching any pending flash
// message and the authenticated state the navbar needs.
func (s *Server) render(c *fiber.Ctx, name string, bind fiber.Map) error {
	if bind == nil {
		bind = fiber.Map{}
	}
	if _, ok := bind["Flash"]; !ok {
		bind["Flash"] = takeFlash(c)
	}
	if uid, ok := currentUserID(c); ok {
		bind["LoggedIn"] = true
		bind["CurrentUserID"] = uid
	} else {
		bind["LoggedIn"] = false
	}
	return c.Render(name, bind, mainLayout)
}

// renderNotFound draws the dedicated 404 page.
func (s *Server) renderNotFound(c *fiber.Ctx) error {
	c.Status(fiber.StatusNotFound)
	return s.render(c, "404", fiber.Map{})
}

// renderServerError draws the dedicated 500 page.
func (s *Server) renderServerError(c *fiber.Ctx) error {
	c.Status(fiber.StatusInternalServerError)
	return s.render(c, "500", fiber.Map{})
}

// renderError maps a typed application error onto the matching page.
// Validation and authorization failures are expected to be handled per-route;
// this fallback covers not-found and internal errors.
func (s *Server) renderError(c *fiber.Ctx, err error) error {
	switch models.ErrorCode(err) {
	case models.CodeNotFound:
		return s.renderNotFound(c)
	default:
		return s.renderServerError(c)
	}
}

// parseID extracts a route parameter as a positive uint. A malformed or
// non-positive value renders the 404 page, matching get_or_404 semantics.
func (s *Server) parseID(c *fiber.Ctx, param string) (uint, bool) {
	id, err := c.ParamsInt(param)
	if err != nil || id <= 0 {
		return 0, false
	}
	return uint(id), true
}

// currentUserID returns the authenticated user's ID when the auth middleware
// has run for this request.
func currentUserID(c *fiber.Ctx) (uint, bool) {
	uid, ok := c.Locals("userID").(uint)
	return uid, ok
}
