package server

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"
)

const profileImageField = "profile_img"

// SanitizeFilename strips any path components and characters that are unsafe
// in a filename served back from the upload directory.
func SanitizeFilename(name string) string {
	name = filepath.Base(name)

	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}

	cleaned := strings.Trim(b.String(), ".")
	return cleaned
}

// saveProfileImage stores the uploaded profile image, if any, into the
// configured upload directory and returns its sanitized filename. Returns an
// empty name when the form carries no file. Uploading a file with an existing
// name replaces the stored image.
func (s *Server) saveProfileImage(c *fiber.Ctx) (string, error) {
	file, err := c.FormFile(profileImageField)
	if err != nil {
		// No file attached to the form.
		return "", nil
	}
	if file.Filename == "" {
		return "", nil
	}

	filename := SanitizeFilename(file.Filename)
	if filename == "" {
		return "", fmt.Errorf("invalid image filename %q", file.Filename)
	}

	if err := os.MkdirAll(s.config.UploadDir, 0o755); err != nil {
		return "", fmt.Errorf("creating upload directory: %w", err)
	}

	dest := filepath.Join(s.config.UploadDir, filename)
	if err := c.SaveFile(file, dest); err != nil {
		return "", fmt.Errorf("saving profile image: %w", err)
	}

	return filename, nil
}
