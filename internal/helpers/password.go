package helpers

import (
	"fmt"
	"strings"
	"unicode"

	"moderation-api/internal/config"
)

func ValidatePasswordStrength(password string) error {
	rules := config.Moderation.PasswordStrength
	messages := config.Messages.Validation.Error.PasswordStrength

	if len(password) < rules.MinLength {
		return fmt.Errorf(messages.MinLength, rules.MinLength)
	}

	if len(password) > rules.MaxLength {
		return fmt.Errorf(messages.MaxLength, rules.MaxLength)
	}

	var (
		hasUpper   bool
		hasLower   bool
		hasNumber  bool
		hasSpecial bool
	)

	for _, char := range password {
		switch {
		case unicode.IsUpper(char):
			hasUpper = true
		case unicode.IsLower(char):
			hasLower = true
		case unicode.IsNumber(char):
			hasNumber = true
		case strings.ContainsRune("!@#$%^&*()_+-=[]{}|;:,.<>?", char):
			hasSpecial = true
		}
	}

	if rules.RequireUppercase && !hasUpper {
		return fmt.Errorf(messages.RequireUppercase)
	}

	if rules.RequireLowercase && !hasLower {
		return fmt.Errorf(messages.RequireLowercase)
	}

	if rules.RequireNumbers && !hasNumber {
		return fmt.Errorf(messages.RequireNumbers)
	}

	if rules.RequireSpecial && !hasSpecial {
		return fmt.Errorf(messages.RequireSpecial)
	}

	return nil
}
