package domain

import "testing"

func TestNormalizeEmail(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"User@Example.COM", "user@example.com"},
		{"  user@example.com \t", "user@example.com"},
		{"user@example.com", "user@example.com"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := NormalizeEmail(tt.in); got != tt.want {
			t.Errorf("NormalizeEmail(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestUserValidate(t *testing.T) {
	valid := func() User {
		return User{Email: "user@example.com", PasswordHash: "hash", UserTypeID: 1}
	}

	u := valid()
	if err := u.Validate(); err != nil {
		t.Fatalf("valid user: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*User)
	}{
		{"empty email", func(u *User) { u.Email = "" }},
		{"unnormalized email", func(u *User) { u.Email = "User@Example.com" }},
		{"empty password hash", func(u *User) { u.PasswordHash = "" }},
		{"zero user type", func(u *User) { u.UserTypeID = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := valid()
			tt.mutate(&u)
			if err := u.Validate(); err == nil {
				t.Error("expected a validation error")
			}
		})
	}
}
