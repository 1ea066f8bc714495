package utils

import "testing"

func TestNormalizeString(t *testing.T) {
	if got := NormalizeString("  Alice@University.EDU "); got != "alice@university.edu" {
		t.Errorf("NormalizeString = %q", got)
	}
}

func TestEmailDomain(t *testing.T) {
	tests := []struct {
		email string
		want  string
	}{
		{"alice@university.edu", "university.edu"},
		{"Bob@UNIVERSITY.EDU", "university.edu"},
		{"weird@name@example.org", "example.org"},
		{"no-at-sign", ""},
		{"trailing@", ""},
	}

	for _, tt := range tests {
		if got := EmailDomain(tt.email); got != tt.want {
			t.Errorf("EmailDomain(%q) = %q, want %q", tt.email, got, tt.want)
		}
	}
}
