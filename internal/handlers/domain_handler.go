package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"moderation-api/internal/config"
	"moderation-api/internal/models"
	"moderation-api/internal/requests"
	"moderation-api/pkg/database"
	"moderation-api/pkg/utils"
)

// Allowed email domain management. Plain admin CRUD; these records gate
// registration, not existing accounts, so no audit trail is kept for them.

func ListDomains(c *fiber.Ctx) error {
	var domains []models.AllowedEmailDomain
	if err := database.DB.Order("domain").Find(&domains).Error; err != nil {
		utils.LogError("list domains", err)
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, config.Messages.Server.Error.Database, nil)
	}
	return utils.SuccessResponse(c, "", domains)
}

func GetDomain(c *fiber.Ctx) error {
	domainID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, config.Messages.Validation.Error.InvalidRequest, err)
	}

	var domain models.AllowedEmailDomain
	if err := database.DB.First(&domain, "id = ?", domainID).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "domain not found", nil)
	}
	return utils.SuccessResponse(c, "", domain)
}

func AddDomain(c *fiber.Ctx) error {
	var input requests.DomainRequest
	if err := utils.ValidateRequest(c, &input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, config.Messages.Validation.Error.InvalidRequest, err)
	}

	name := utils.NormalizeString(input.Domain)

	var existing models.AllowedEmailDomain
	if result := database.DB.Where("domain = ?", name).First(&existing); result.Error == nil {
		return utils.ErrorResponse(c, fiber.StatusConflict, "Domain already exists", nil)
	}

	domain := models.AllowedEmailDomain{
		Domain:          name,
		Status:          models.DomainAllow,
		InstitutionName: input.InstitutionName,
	}
	if input.Status != "" {
		domain.Status = models.DomainStatus(input.Status)
	}

	if err := database.DB.Create(&domain).Error; err != nil {
		utils.LogError("create domain", err)
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, config.Messages.Server.Error.Database, nil)
	}

	return utils.SuccessResponse(c, "Domain added successfully", domain)
}

func UpdateDomain(c *fiber.Ctx) error {
	domainID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, config.Messages.Validation.Error.InvalidRequest, err)
	}

	var input requests.DomainUpdateRequest
	if err := utils.ValidateRequest(c, &input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, config.Messages.Validation.Error.InvalidRequest, err)
	}

	var domain models.AllowedEmailDomain
	if err := database.DB.First(&domain, "id = ?", domainID).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "domain not found", nil)
	}

	if input.Domain != nil {
		domain.Domain = utils.NormalizeString(*input.Domain)
	}
	if input.Status != nil {
		domain.Status = models.DomainStatus(*input.Status)
	}
	if input.InstitutionName != nil {
		domain.InstitutionName = *input.InstitutionName
	}

	if err := database.DB.Save(&domain).Error; err != nil {
		utils.LogError("update domain", err)
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, config.Messages.Server.Error.Database, nil)
	}

	return utils.SuccessResponse(c, "Domain updated successfully", domain)
}

func DeleteDomain(c *fiber.Ctx) error {
	domainID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, config.Messages.Validation.Error.InvalidRequest, err)
	}

	var domain models.AllowedEmailDomain
	if err := database.DB.First(&domain, "id = ?", domainID).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "domain not found", nil)
	}

	if err := database.DB.Delete(&domain).Error; err != nil {
		utils.LogError("delete domain", err)
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, config.Messages.Server.Error.Database, nil)
	}

	return utils.SuccessResponse(c, "Domain deleted successfully", nil)
}
