package validation

import "testing"

func TestValidateUsername(t *testing.T) {
	tests := []struct {
		name     string
		username string
		wantErr  bool
	}{
		{"valid simple", "john", false},
		{"valid with numbers", "john123", false},
		{"valid with underscore", "john_doe", false},
		{"valid with hyphen", "john-doe", false},
		{"too short", "jd", true},
		{"too long", "abcdefghijklmnopqrstuvwxyz12345", true},
		{"contains space", "john doe", true},
		{"contains symbols", "john@doe", true},
		{"leading underscore", "_john", true},
		{"trailing hyphen", "john-", true},
		{"empty", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateUsername(tt.username)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateUsername(%q) error = %v, wantErr %v", tt.username, err, tt.wantErr)
			}
		})
	}
}

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		name    string
		email   string
		wantErr bool
	}{
		{"valid", "user@example.com", false},
		{"valid with plus", "user+tag@example.com", false},
		{"valid subdomain", "user@mail.example.co.uk", false},
		{"missing at", "userexample.com", true},
		{"missing domain", "user@", true},
		{"missing tld", "user@example", true},
		{"empty", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateEmail(tt.email)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateEmail(%q) error = %v, wantErr %v", tt.email, err, tt.wantErr)
			}
		})
	}
}

func TestValidatePassword(t *testing.T) {
	if err := ValidatePassword(""); err == nil {
		t.Error("expected error for empty password")
	}
	// Short passwords are allowed; the app leaves strength up to the user.
	if err := ValidatePassword("p1"); err != nil {
		t.Errorf("unexpected error for short password: %v", err)
	}
	long := make([]byte, 73)
	for i := range long {
		long[i] = 'a'
	}
	if err := ValidatePassword(string(long)); err == nil {
		t.Error("expected error for password over 72 bytes")
	}
}

func TestValidateSlug(t *testing.T) {
	tests := []struct {
		name    string
		slug    string
		wantErr bool
	}{
		{"valid single word", "hello", false},
		{"valid hyphenated", "my-first-post", false},
		{"valid with numbers", "post-42", false},
		{"empty", "", true},
		{"uppercase", "My-Post", true},
		{"leading hyphen", "-post", true},
		{"double hyphen", "my--post", true},
		{"spaces", "my post", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSlug(tt.slug)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateSlug(%q) error = %v, wantErr %v", tt.slug, err, tt.wantErr)
			}
		})
	}
}
