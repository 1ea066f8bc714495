package handlers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"moderation-api/internal/config"
	"moderation-api/internal/helpers"
	"moderation-api/internal/models"
	"moderation-api/internal/requests"
	"moderation-api/internal/services"
	"moderation-api/pkg/database"
	"moderation-api/pkg/utils"
)

// UserInfo returns the current user's information
func UserInfo(c *fiber.Ctx) error {
	user := c.Locals("user").(models.User)
	return utils.SuccessResponse(c, "", user)
}

// Register handles user registration
func Register(c *fiber.Ctx) error {
	var input requests.RegisterRequest
	if err := utils.ValidateRequest(c, &input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, config.Messages.Validation.Error.InvalidRequest, err)
	}

	input.Email = utils.NormalizeString(input.Email)
	input.Username = utils.NormalizeString(input.Username)

	// Registration is restricted to institutional email domains
	if !domainAllowed(utils.EmailDomain(input.Email)) {
		return utils.ErrorResponse(c, fiber.StatusForbidden, config.Messages.Auth.Error.DomainNotAllowed, nil)
	}

	var existing models.User
	if result := database.DB.Where("username = ?", input.Username).First(&existing); result.Error == nil {
		return utils.ErrorResponse(c, fiber.StatusConflict, config.Messages.Auth.Error.UsernameExists, nil)
	}
	if result := database.DB.Where("LOWER(email) = LOWER(?)", input.Email).First(&existing); result.Error == nil {
		return utils.ErrorResponse(c, fiber.StatusConflict, config.Messages.Auth.Error.EmailExists, nil)
	}

	if err := helpers.ValidatePasswordStrength(input.Password); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, err.Error(), nil)
	}

	hashedPassword, err := utils.HashPassword(input.Password)
	if err != nil {
		utils.LogError("hash password", err)
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, config.Messages.Server.Error.Internal, nil)
	}

	user := models.User{
		Username: input.Username,
		Email:    input.Email,
		Password: hashedPassword,
		IsActive: true,
	}
	if err := database.DB.Create(&user).Error; err != nil {
		utils.LogError("create user", err)
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, config.Messages.Server.Error.Database, nil)
	}

	return utils.SuccessResponse(c, config.Messages.Auth.Success.Registration, nil)
}

// Login handles user authentication
func Login(c *fiber.Ctx) error {
	var input requests.LoginRequest
	if err := utils.ValidateRequest(c, &input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, config.Messages.Validation.Error.InvalidRequest, err)
	}

	var user models.User
	result := database.DB.Where("username = ?", utils.NormalizeString(input.Username)).First(&user)
	if result.Error != nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, config.Messages.Auth.Error.InvalidCredentials, nil)
	}

	if !utils.CheckPassword(input.Password, user.Password) {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, config.Messages.Auth.Error.InvalidCredentials, nil)
	}

	if !user.CanLogin() {
		return utils.ErrorResponse(c, fiber.StatusForbidden, loginRefusalMessage(user), nil)
	}

	jwtService := services.NewJWTService()
	accessToken, err := jwtService.GenerateAccessToken(user)
	if err != nil {
		utils.LogError("generate access token", err)
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, config.Messages.Server.Error.Internal, nil)
	}

	now := time.Now()
	if err := database.DB.Model(&user).Update("last_login_at", &now).Error; err != nil {
		utils.LogError("update last login time", err)
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, config.Messages.Server.Error.Database, nil)
	}

	utils.LogInfo("login", user.Username+" from "+utils.GetUserIP(c))

	return utils.SuccessResponse(c, config.Messages.Auth.Success.Login, jwtService.NewTokenResponse(accessToken))
}

func loginRefusalMessage(user models.User) string {
	switch {
	case user.IsBanned():
		return config.Messages.Auth.Error.AccountBanned
	case user.IsSuspended():
		return config.Messages.Auth.Error.AccountSuspended
	default:
		return config.Messages.Auth.Error.AccountBlocked
	}
}

// domainAllowed consults the allow/block list. An explicit BLOCK entry always
// refuses; with no entries at all, registration is open.
func domainAllowed(domain string) bool {
	if domain == "" {
		return false
	}

	var entry models.AllowedEmailDomain
	err := database.DB.Where("domain = ?", domain).First(&entry).Error
	if err == nil {
		return entry.Status == models.DomainAllow
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.LogError("look up email domain", err)
		return false
	}

	var total int64
	if err := database.DB.Model(&models.AllowedEmailDomain{}).Count(&total).Error; err != nil {
		utils.LogError("count email domains", err)
		return false
	}
	return total == 0
}
