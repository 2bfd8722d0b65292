package seed

import (
	"fmt"
	"log"

	"inkwell/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Seeder populates the database with demo users and posts.
type Seeder struct {
	db      *gorm.DB
	factory *Factory
}

// NewSeeder creates a Seeder bound to the given database.
func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{db: db, factory: NewFactory(db, Options{})}
}

// ClearAll removes all seeded rows. Posts go first because of the foreign key
// to users.
func (s *Seeder) ClearAll() error {
	log.Println("Clearing existing data...")
	if err := s.db.Unscoped().Where("1 = 1").Delete(&models.Post{}).Error; err != nil {
		return fmt.Errorf("clearing posts: %w", err)
	}
	if err := s.db.Unscoped().Where("1 = 1").Delete(&models.User{}).Error; err != nil {
		return fmt.Errorf("clearing users: %w", err)
	}
	return nil
}

// SeedAdmin ensures the demo admin account exists.
func (s *Seeder) SeedAdmin() (*models.User, error) {
	var admin models.User
	err := s.db.Where("username = ?", "admin").First(&admin).Error
	if err == nil {
		return &admin, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	admin = models.User{
		Name:         "Site Admin",
		Username:     "admin",
		Email:        "admin@inkwell.local",
		PasswordHash: string(hashed),
		IsAdmin:      true,
	}
	if err := s.db.Create(&admin).Error; err != nil {
		return nil, err
	}
	log.Println("Created admin account (username: admin)")
	return &admin, nil
}

// SeedUsers creates n fake users.
func (s *Seeder) SeedUsers(n int) ([]*models.User, error) {
	users := make([]*models.User, 0, n)
	for i := 0; i < n; i++ {
		user, err := s.factory.CreateUser()
		if err != nil {
			return nil, fmt.Errorf("creating user %d: %w", i, err)
		}
		users = append(users, user)
	}
	log.Printf("Created %d users", len(users))
	return users, nil
}

// SeedPosts creates n fake posts spread across the given authors.
func (s *Seeder) SeedPosts(users []*models.User, n int) ([]*models.Post, error) {
	if len(users) == 0 {
		return nil, fmt.Errorf("no users to author posts")
	}

	posts := make([]*models.Post, 0, n)
	for i := 0; i < n; i++ {
		author := users[i%len(users)]
		posts = append(posts, s.factory.BuildPost(author))
	}
	if err := s.factory.CreatePostsBatch(posts); err != nil {
		return nil, fmt.Errorf("creating posts: %w", err)
	}
	log.Printf("Created %d posts", len(posts))
	return posts, nil
}
