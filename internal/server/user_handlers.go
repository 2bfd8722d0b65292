package server

import (
	"inkwell/internal/models"
	"inkwell/internal/service"

	"github.com/gofiber/fiber/v2"
)

// Index handles GET / and lists all users.
func (s *Server) Index(c *fiber.Ctx) error {
	users, err := s.userService.ListUsers(c.Context())
	if err != nil {
		return s.renderError(c, err)
	}
	return s.render(c, "index", fiber.Map{
		"AllUsers": users,
	})
}

// AddUserForm handles GET /user/add
func (s *Server) AddUserForm(c *fiber.Ctx) error {
	users, err := s.userService.ListUsers(c.Context())
	if err != nil {
		return s.renderError(c, err)
	}
	return s.render(c, "add_user", fiber.Map{
		"Name":     "",
		"Username": "",
		"Email":    "",
		"AllUsers": users,
	})
}

// AddUser handles POST /user/add and registers a new user. Registering with
// an email that already exists leaves the existing record unchanged.
func (s *Server) AddUser(c *fiber.Ctx) error {
	in := service.RegisterInput{
		Name:     c.FormValue("name"),
		Username: c.FormValue("username"),
		Email:    c.FormValue("email"),
		Password: c.FormValue("password"),
	}

	user, _, err := s.userService.Register(c.Context(), in)
	if err != nil {
		if models.ErrorCode(err) == models.CodeValidation {
			users, listErr := s.userService.ListUsers(c.Context())
			if listErr != nil {
				return s.renderError(c, listErr)
			}
			return s.render(c, "add_user", fiber.Map{
				"Flash":    &Flash{Message: err.Error(), Category: "warning"},
				"Name":     in.Name,
				"Username": in.Username,
				"Email":    in.Email,
				"AllUsers": users,
			})
		}
		return s.renderError(c, err)
	}

	users, err := s.userService.ListUsers(c.Context())
	if err != nil {
		return s.renderError(c, err)
	}
	return s.render(c, "add_user", fiber.Map{
		"Flash":    &Flash{Message: "User added"},
		"Name":     user.Name,
		"Username": "",
		"Email":    "",
		"AllUsers": users,
	})
}

// UserGreeting handles GET /user/:name and renders the static name-echo page.
func (s *Server) UserGreeting(c *fiber.Ctx) error {
	return s.render(c, "user", fiber.Map{
		"Name": c.Params("name"),
	})
}

// NameForm handles GET /name
func (s *Server) NameForm(c *fiber.Ctx) error {
	return s.render(c, "name", fiber.Map{"Name": ""})
}

// NameSubmit handles POST /name, the demo form echo.
func (s *Server) NameSubmit(c *fiber.Ctx) error {
	name := c.FormValue("name")
	if name == "" {
		return s.render(c, "name", fiber.Map{
			"Flash": &Flash{Message: "Name is required", Category: "warning"},
			"Name":  "",
		})
	}
	return s.render(c, "name", fiber.Map{
		"Flash": &Flash{Message: "The form submitted successfully!", Category: "info"},
		"Name":  name,
	})
}

// UpdateUserForm handles GET /update/:id
func (s *Server) UpdateUserForm(c *fiber.Ctx) error {
	id, ok := s.parseID(c, "id")
	if !ok {
		return s.renderNotFound(c)
	}

	user, err := s.userService.GetUserByID(c.Context(), id)
	if err != nil {
		return s.renderError(c, err)
	}
	return s.render(c, "update_user", fiber.Map{
		"User": user,
	})
}

// UpdateUser handles POST /update/:id, applying profile fields and an
// optional profile image upload.
func (s *Server) UpdateUser(c *fiber.Ctx) error {
	id, ok := s.parseID(c, "id")
	if !ok {
		return s.renderNotFound(c)
	}

	user, err := s.userService.GetUserByID(c.Context(), id)
	if err != nil {
		return s.renderError(c, err)
	}

	filename, err := s.saveProfileImage(c)
	if err != nil {
		return s.render(c, "update_user", fiber.Map{
			"Flash": &Flash{Message: "Error saving profile image", Category: "warning"},
			"User":  user,
		})
	}

	in := service.UpdateProfileInput{
		UserID:     id,
		Name:       c.FormValue("name"),
		Username:   c.FormValue("username"),
		Email:      c.FormValue("email"),
		AboutMe:    c.FormValue("about_me"),
		ProfileImg: filename,
	}

	if _, err := s.userService.UpdateProfile(c.Context(), in); err != nil {
		if models.ErrorCode(err) == models.CodeNotFound {
			return s.renderNotFound(c)
		}
		msg := "Error updating user"
		if models.ErrorCode(err) == models.CodeValidation {
			msg = err.Error()
		}
		return s.render(c, "update_user", fiber.Map{
			"Flash": &Flash{Message: msg, Category: "warning"},
			"User":  user,
		})
	}

	setFlash(c, "User updated successfully!")
	return c.Redirect("/dashboard")
}

// DeleteUser handles GET and POST /delete-user/:id. A user may delete only
// their own account.
func (s *Server) DeleteUser(c *fiber.Ctx) error {
	id, ok := s.parseID(c, "id")
	if !ok {
		return s.renderNotFound(c)
	}
	callerID, _ := currentUserID(c)

	if err := s.userService.DeleteAccount(c.Context(), callerID, id); err != nil {
		switch models.ErrorCode(err) {
		case models.CodeUnauthorized:
			setFlash(c, "Sorry, you can't delete that user!", "warning")
			return c.Redirect("/dashboard")
		case models.CodeNotFound:
			return s.renderNotFound(c)
		default:
			setFlash(c, "Whoops! There was a problem deleting the user, try again...", "warning")
			return c.Redirect("/dashboard")
		}
	}

	// The session cookie still references the removed account; drop it.
	return s.Logout(c)
}

// Dashboard handles GET and POST /dashboard and shows the current user's
// about-me text.
func (s *Server) Dashboard(c *fiber.Ctx) error {
	callerID, _ := currentUserID(c)

	user, err := s.userService.GetUserByID(c.Context(), callerID)
	if err != nil {
		return s.renderError(c, err)
	}
	return s.render(c, "members/dashboard", fiber.Map{
		"User":        user,
		"AboutAuthor": user.AboutMe,
	})
}

// AdminPage handles GET /admin. Only admin users may see it; everyone else is
// redirected to the posts list with a warning.
func (s *Server) AdminPage(c *fiber.Ctx) error {
	callerID, _ := currentUserID(c)

	admin, err := s.isAdminByUserID(c.Context(), callerID)
	if err != nil {
		return s.renderServerError(c)
	}
	if !admin {
		setFlash(c, "You must be an admin to access this page!", "warning")
		return c.Redirect("/all_posts")
	}

	users, err := s.userService.ListUsers(c.Context())
	if err != nil {
		return s.renderError(c, err)
	}
	return s.render(c, "admin", fiber.Map{
		"AllUsers": users,
	})
}
