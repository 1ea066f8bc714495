package constants

import "testing"

func TestParseRole(t *testing.T) {
	tests := []struct {
		input string
		want  Role
		ok    bool
	}{
		{"ADMIN", RoleAdmin, true},
		{"admin", RoleAdmin, true},
		{" Expert ", RoleExpert, true},
		{"user", RoleUser, true},
		{"superuser", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		got, ok := ParseRole(tt.input)
		if ok != tt.ok {
			t.Errorf("ParseRole(%q) ok = %v, want %v", tt.input, ok, tt.ok)
			continue
		}
		if ok && got != tt.want {
			t.Errorf("ParseRole(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestIsValidRole(t *testing.T) {
	for _, role := range GetAllRoles() {
		if !IsValidRole(role) {
			t.Errorf("role %q should be valid", role)
		}
	}
	if IsValidRole("MODERATOR") {
		t.Error("unknown role should be invalid")
	}
}
