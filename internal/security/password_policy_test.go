package security

import "testing"

func TestDefaultPasswordPolicy(t *testing.T) {
	testCases := []struct {
		name     string
		password string
		ok       bool
	}{
		{"valid", "passw0rd!", true},
		{"valid at min length", "pass0rd!", true},
		{"valid at max length", "aaaaaaaaaaaaaaaaaaaaaaaaaaaaa0!b", true},
		{"too short", "pas0rd!", false},
		{"too long", "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaa0!b", false},
		{"no digit", "password!", false},
		{"no lowercase", "PASSW0RD!", false},
		{"no special", "passw0rdd", false},
		{"contains space", "pass w0rd!", false},
		{"contains tab", "pass\tw0rd!", false},
		{"empty", "", false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := DefaultPasswordPolicy.Validate(tc.password)
			if tc.ok && err != nil {
				t.Errorf("Validate(%q) = %v, want nil", tc.password, err)
			}
			if !tc.ok && err == nil {
				t.Errorf("Validate(%q) = nil, want error", tc.password)
			}
		})
	}
}

func TestPasswordPolicy_RulesIndependent(t *testing.T) {
	// Policies with rules switched off accept what the default rejects.
	p := PasswordPolicy{MinLength: 4}
	if err := p.Validate("ABCD"); err != nil {
		t.Errorf("length-only policy: %v", err)
	}

	p = PasswordPolicy{MinLength: 8, RequireDigit: true}
	if err := p.Validate("abcdefg1"); err != nil {
		t.Errorf("digit-only policy: %v", err)
	}
	if err := p.Validate("abcdefgh"); err == nil {
		t.Error("digit-only policy should reject password without digit")
	}
}
