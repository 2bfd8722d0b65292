package server

import (
	"fmt"

	"inkwell/internal/models"
	"inkwell/internal/service"

	"github.com/gofiber/fiber/v2"
)

// AllPosts handles GET /all_posts
func (s *Server) AllPosts(c *fiber.Ctx) error {
	posts, err := s.postService.List(c.Context())
	if err != nil {
		return s.renderError(c, err)
	}
	return s.render(c, "all_posts", fiber.Map{
		"Posts": posts,
	})
}

// PostDetail handles GET /post_detail/:id
func (s *Server) PostDetail(c *fiber.Ctx) error {
	id, ok := s.parseID(c, "id")
	if !ok {
		return s.renderNotFound(c)
	}

	post, err := s.postService.Get(c.Context(), id)
	if err != nil {
		return s.renderError(c, err)
	}
	return s.render(c, "post_detail", fiber.Map{
		"Post": post,
	})
}

// AddPostForm handles GET /add-post
func (s *Server) AddPostForm(c *fiber.Ctx) error {
	return s.render(c, "add_post", fiber.Map{
		"Title":   "",
		"Slug":    "",
		"Content": "",
	})
}

// AddPost handles POST /add-post
func (s *Server) AddPost(c *fiber.Ctx) error {
	authorID, _ := currentUserID(c)

	in := service.CreatePostInput{
		Title:   c.FormValue("title"),
		Slug:    c.FormValue("slug"),
		Content: c.FormValue("content"),
		UserID:  authorID,
	}

	if _, err := s.postService.Create(c.Context(), in); err != nil {
		if models.ErrorCode(err) == models.CodeValidation {
			return s.render(c, "add_post", fiber.Map{
				"Flash":   &Flash{Message: err.Error(), Category: "warning"},
				"Title":   in.Title,
				"Slug":    in.Slug,
				"Content": in.Content,
			})
		}
		return s.renderError(c, err)
	}

	setFlash(c, "Blog Post Submitted Successfully!")
	return c.Redirect("/all_posts")
}

// UpdatePostForm handles GET /update-post/:id
func (s *Server) UpdatePostForm(c *fiber.Ctx) error {
	id, ok := s.parseID(c, "id")
	if !ok {
		return s.renderNotFound(c)
	}

	post, err := s.postService.Get(c.Context(), id)
	if err != nil {
		return s.renderError(c, err)
	}
	return s.render(c, "edit_post", fiber.Map{
		"Post": post,
	})
}

// UpdatePost handles POST /update-post/:id. Only the author or an admin may
// edit a post.
func (s *Server) UpdatePost(c *fiber.Ctx) error {
	id, ok := s.parseID(c, "id")
	if !ok {
		return s.renderNotFound(c)
	}
	callerID, _ := currentUserID(c)

	in := service.UpdatePostInput{
		ID:      id,
		Title:   c.FormValue("title"),
		Slug:    c.FormValue("slug"),
		Content: c.FormValue("content"),
	}

	if _, err := s.postService.Update(c.Context(), callerID, in); err != nil {
		switch models.ErrorCode(err) {
		case models.CodeNotFound:
			return s.renderNotFound(c)
		case models.CodeUnauthorized:
			setFlash(c, "You aren't authorized to edit that post!", "warning")
			return c.Redirect("/all_posts")
		case models.CodeValidation:
			post, getErr := s.postService.Get(c.Context(), id)
			if getErr != nil {
				return s.renderError(c, getErr)
			}
			return s.render(c, "edit_post", fiber.Map{
				"Flash": &Flash{Message: err.Error(), Category: "warning"},
				"Post":  post,
			})
		default:
			return s.renderError(c, err)
		}
	}

	setFlash(c, "Post Has Been Updated!")
	return c.Redirect(fmt.Sprintf("/post_detail/%d", id))
}

// DeletePost handles GET and POST /delete/:id. Only the author or an admin
// may delete a post.
func (s *Server) DeletePost(c *fiber.Ctx) error {
	id, ok := s.parseID(c, "id")
	if !ok {
		return s.renderNotFound(c)
	}
	callerID, _ := currentUserID(c)

	if err := s.postService.Delete(c.Context(), callerID, id); err != nil {
		switch models.ErrorCode(err) {
		case models.CodeNotFound:
			return s.renderNotFound(c)
		case models.CodeUnauthorized:
			setFlash(c, "You aren't authorized to delete that post!", "warning")
			return c.Redirect("/all_posts")
		default:
			setFlash(c, "Whoops! There was a problem deleting the post, try again...", "warning")
			return c.Redirect("/all_posts")
		}
	}

	setFlash(c, "Post deleted successfully")
	return c.Redirect("/all_posts")
}

// SearchFor handles POST /search_for, matching post titles against the
// submitted term.
func (s *Server) SearchFor(c *fiber.Ctx) error {
	query := c.FormValue("searched")

	posts, err := s.postService.Search(c.Context(), query)
	if err != nil {
		return s.renderError(c, err)
	}
	return s.render(c, "search", fiber.Map{
		"Searched": query,
		"Posts":    posts,
	})
}
