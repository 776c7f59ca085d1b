package security

import (
	"fmt"
	"strings"
	"unicode"
)

// SpecialChars are the characters that satisfy the special-character rule.
const SpecialChars = "!@#$%*()_+^&}{:;?."

// PasswordPolicy is the declarative signup password policy. It is enforced at
// the request-validation layer, before any hashing happens.
type PasswordPolicy struct {
	MinLength        int
	MaxLength        int
	RequireDigit     bool
	RequireLower     bool
	RequireSpecial   bool
	ForbidWhitespace bool
}

// DefaultPasswordPolicy requires 8–32 characters with at least one digit, one
// lowercase letter, and one special character, and no whitespace.
var DefaultPasswordPolicy = PasswordPolicy{
	MinLength:        8,
	MaxLength:        32,
	RequireDigit:     true,
	RequireLower:     true,
	RequireSpecial:   true,
	ForbidWhitespace: true,
}

// Validate returns an error describing the first rule the password violates,
// or nil if the password satisfies the policy.
func (p PasswordPolicy) Validate(password string) error {
	if len(password) < p.MinLength {
		return fmt.Errorf("password must be at least %d characters", p.MinLength)
	}
	if p.MaxLength > 0 && len(password) > p.MaxLength {
		return fmt.Errorf("password must be at most %d characters", p.MaxLength)
	}
	var hasDigit, hasLower, hasSpecial bool
	for _, r := range password {
		switch {
		case unicode.IsSpace(r):
			if p.ForbidWhitespace {
				return fmt.Errorf("password must not contain whitespace")
			}
		case r >= '0' && r <= '9':
			hasDigit = true
		case r >= 'a' && r <= 'z':
			hasLower = true
		case strings.ContainsRune(SpecialChars, r):
			hasSpecial = true
		}
	}
	if p.RequireDigit && !hasDigit {
		return fmt.Errorf("password must contain at least one digit")
	}
	if p.RequireLower && !hasLower {
		return fmt.Errorf("password must contain at least one lowercase letter")
	}
	if p.RequireSpecial && !hasSpecial {
		return fmt.Errorf("password must contain at least one special character")
	}
	return nil
}
