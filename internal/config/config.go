package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type ModerationConfig struct {
	Retention struct {
		// Days a soft-deleted user is kept before permanent deletion is allowed.
		GracePeriodDays int `yaml:"grace_period_days"`
	} `yaml:"retention"`
	Suspension struct {
		// Years added to "now" when a suspension has no end date.
		IndefiniteYears int `yaml:"indefinite_years"`
	} `yaml:"suspension"`
	Token struct {
		Access struct {
			Expiry string `yaml:"expiry"`
		} `yaml:"access"`
	} `yaml:"token"`
	Events struct {
		Enabled    bool   `yaml:"enabled"`
		Exchange   string `yaml:"exchange"`
		Queue      string `yaml:"queue"`
		RoutingKey string `yaml:"routing_key"`
	} `yaml:"events"`
	PasswordStrength struct {
		MinLength        int  `yaml:"min_length"`
		MaxLength        int  `yaml:"max_length"`
		RequireUppercase bool `yaml:"require_uppercase"`
		RequireLowercase bool `yaml:"require_lowercase"`
		RequireNumbers   bool `yaml:"require_numbers"`
		RequireSpecial   bool `yaml:"require_special"`
	} `yaml:"password_strength"`
}

type MessagesConfig struct {
	Auth struct {
		Success struct {
			Registration string `yaml:"registration"`
			Login        string `yaml:"login"`
		} `yaml:"success"`
		Error struct {
			InvalidCredentials string `yaml:"invalid_credentials"`
			AccountBlocked     string `yaml:"account_blocked"`
			AccountBanned      string `yaml:"account_banned"`
			AccountSuspended   string `yaml:"account_suspended"`
			AdminRequired      string `yaml:"admin_required"`
			TokenRequired      string `yaml:"token_required"`
			InvalidToken       string `yaml:"invalid_token"`
			UsernameExists     string `yaml:"username_exists"`
			EmailExists        string `yaml:"email_exists"`
			DomainNotAllowed   string `yaml:"domain_not_allowed"`
		} `yaml:"error"`
	} `yaml:"auth"`
	Moderation struct {
		Success struct {
			Suspended       string `yaml:"suspended"`
			Unsuspended     string `yaml:"unsuspended"`
			Banned          string `yaml:"banned"`
			Unbanned        string `yaml:"unbanned"`
			SoftDeleted     string `yaml:"soft_deleted"`
			Restored        string `yaml:"restored"`
			PermanentDelete string `yaml:"permanent_delete"`
			RoleUpdated     string `yaml:"role_updated"`
			StatusUpdated   string `yaml:"status_updated"`
		} `yaml:"success"`
	} `yaml:"moderation"`
	Validation struct {
		Error struct {
			InvalidRequest   string `yaml:"invalid_request"`
			InvalidRole      string `yaml:"invalid_role"`
			PasswordStrength struct {
				MinLength        string `yaml:"min_length"`
				MaxLength        string `yaml:"max_length"`
				RequireUppercase string `yaml:"require_uppercase"`
				RequireLowercase string `yaml:"require_lowercase"`
				RequireNumbers   string `yaml:"require_numbers"`
				RequireSpecial   string `yaml:"require_special"`
			} `yaml:"password_strength"`
		} `yaml:"error"`
	} `yaml:"validation"`
	Server struct {
		Error struct {
			Internal string `yaml:"internal"`
			Database string `yaml:"database"`
		} `yaml:"error"`
	} `yaml:"server"`
}

var (
	Moderation ModerationConfig
	Messages   MessagesConfig
)

// LoadConfig loads all configuration files
func LoadConfig() error {
	if err := godotenv.Load(); err != nil {
		if os.Getenv("GO_ENV") != "production" {
			log.Println("Warning: Failed to load .env file")
		}
	}

	// Load moderation config
	moderationFile, err := os.ReadFile("config/moderation.yaml")
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(moderationFile, &Moderation); err != nil {
		return err
	}

	// Load messages config
	messagesFile, err := os.ReadFile("config/messages.yaml")
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(messagesFile, &Messages); err != nil {
		return err
	}

	return nil
}
