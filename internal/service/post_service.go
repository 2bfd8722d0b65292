package service

import (
	"context"

	"inkwell/internal/models"
	"inkwell/internal/repository"
	"inkwell/internal/validation"
)

// AdminChecker reports whether the given user has admin privileges.
type AdminChecker func(ctx context.Context, userID uint) (bool, error)

// PostService implements post catalog operations with authorization checks.
type PostService struct {
	postRepo repository.PostRepository
	isAdmin  AdminChecker
}

// CreatePostInput carries the add-post form fields.
type CreatePostInput struct {
	Title   string
	Slug    string
	Content string
	UserID  uint
}

// UpdatePostInput carries the edit-post form fields.
type UpdatePostInput struct {
	ID      uint
	Title   string
	Slug    string
	Content string
}

func NewPostService(postRepo repository.PostRepository, isAdmin AdminChecker) *PostService {
	return &PostService{postRepo: postRepo, isAdmin: isAdmin}
}

func (s *PostService) Create(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	if in.Title == "" || in.Content == "" {
		return nil, models.NewValidationError("Title and content are required")
	}
	if err := validation.ValidateSlug(in.Slug); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	post := &models.Post{
		Title:   in.Title,
		Slug:    in.Slug,
		Content: in.Content,
		UserID:  in.UserID,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

func (s *PostService) Get(ctx context.Context, id uint) (*models.Post, error) {
	return s.postRepo.GetByID(ctx, id)
}

func (s *PostService) List(ctx context.Context) ([]*models.Post, error) {
	return s.postRepo.List(ctx)
}

func (s *PostService) Search(ctx context.Context, query string) ([]*models.Post, error) {
	return s.postRepo.Search(ctx, query)
}

// Update edits a post. Only the author or an admin may edit.
func (s *PostService) Update(ctx context.Context, callerID uint, in UpdatePostInput) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, in.ID)
	if err != nil {
		return nil, err
	}

	if err := s.authorizeModify(ctx, callerID, post); err != nil {
		return nil, err
	}

	if in.Title == "" || in.Content == "" {
		return nil, models.NewValidationError("Title and content are required")
	}
	if err := validation.ValidateSlug(in.Slug); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	post.Title = in.Title
	post.Slug = in.Slug
	post.Content = in.Content

	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// Delete removes a post. Only the author or an admin may delete.
func (s *PostService) Delete(ctx context.Context, callerID, postID uint) error {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return err
	}

	if err := s.authorizeModify(ctx, callerID, post); err != nil {
		return err
	}

	return s.postRepo.Delete(ctx, postID)
}

func (s *PostService) authorizeModify(ctx context.Context, callerID uint, post *models.Post) error {
	if post.UserID == callerID {
		return nil
	}
	if s.isAdmin != nil {
		admin, err := s.isAdmin(ctx, callerID)
		if err != nil {
			return models.NewInternalError(err)
		}
		if admin {
			return nil
		}
	}
	return models.NewUnauthorizedError("You can only modify your own posts")
}
