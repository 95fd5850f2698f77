package controllers

import (
	"errors"
	"strings"

	"becayis-backend/database"
	"becayis-backend/middlewares"
	"becayis-backend/models"
	"becayis-backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type TargetLocationDTO struct {
	City     string `json:"city" validate:"required,min=1"`
	District string `json:"district" validate:"required,min=1"`
	Priority int    `json:"priority" validate:"omitempty,min=1"`
}

type RequestCreateDTO struct {
	CurrentCity     string              `json:"current_city" validate:"required,min=1"`
	CurrentDistrict string              `json:"current_district" validate:"required,min=1"`
	TargetLocations []TargetLocationDTO `json:"target_locations" validate:"required,min=1,dive"`
	Institution     string              `json:"institution" validate:"required,min=1"`
	Department      string              `json:"department" validate:"required,min=1"`
	Position        string              `json:"position" validate:"required,min=1"`
}

type RequestUpdateDTO struct {
	CurrentCity     *string              `json:"current_city" validate:"omitempty,min=1"`
	CurrentDistrict *string              `json:"current_district" validate:"omitempty,min=1"`
	TargetLocations *[]TargetLocationDTO `json:"target_locations" validate:"omitempty,min=1,dive"`
	Institution     *string              `json:"institution" validate:"omitempty,min=1"`
	Department      *string              `json:"department" validate:"omitempty,min=1"`
	Position        *string              `json:"position" validate:"omitempty,min=1"`
}

func targetLocations(dtos []TargetLocationDTO) []models.TargetLocation {
	out := make([]models.TargetLocation, 0, len(dtos))
	for i, dto := range dtos {
		priority := dto.Priority
		if priority == 0 {
			priority = i + 1
		}
		out = append(out, models.TargetLocation{
			City:     strings.TrimSpace(dto.City),
			District: strings.TrimSpace(dto.District),
			Priority: priority,
		})
	}
	return out
}

// POST /api/request
func CreateRequest(c *fiber.Ctx) error {
	userID, _ := c.Locals("userID").(string)

	var in RequestCreateDTO
	if err := middlewares.BindAndValidate(c, &in); err != nil {
		return err
	}
	utils.NormalizeDTO(&in)

	request := models.ExchangeRequest{
		UserId:          userID,
		CurrentCity:     in.CurrentCity,
		CurrentDistrict: in.CurrentDistrict,
		TargetLocations: datatypes.NewJSONSlice(targetLocations(in.TargetLocations)),
		Institution:     in.Institution,
		Department:      in.Department,
		Position:        in.Position,
		Active:          true,
	}

	db := database.GetDB(c)
	if err := db.Create(&request).Error; err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "could not create request")
	}
	return c.Status(fiber.StatusCreated).JSON(request)
}

// GET /api/requests — the caller's own requests, newest first.
func GetRequests(c *fiber.Ctx) error {
	userID, _ := c.Locals("userID").(string)

	var requests []models.ExchangeRequest
	db := database.GetDB(c)
	if err := db.Where("user_id = ?", userID).Order("created_at DESC").Find(&requests).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "db error")
	}
	return c.JSON(fiber.Map{
		"requests": requests,
		"message":  "success",
	})
}

// GET /api/requests/active — the active pool, excluding the caller's own.
func GetActiveRequests(c *fiber.Ctx) error {
	userID, _ := c.Locals("userID").(string)

	var requests []models.ExchangeRequest
	db := database.GetDB(c)
	if err := db.Where("active = ? AND user_id <> ?", true, userID).Order("created_at DESC").Find(&requests).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "db error")
	}
	return c.JSON(fiber.Map{
		"requests": requests,
		"message":  "success",
	})
}

// GET /api/request/:id
func GetRequest(c *fiber.Ctx) error {
	id := strings.TrimSpace(c.Params("id"))
	if id == "" {
		return fiber.NewError(fiber.StatusBadRequest, "missing request id in path")
	}

	var request models.ExchangeRequest
	db := database.GetDB(c)
	if err := db.First(&request, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "request not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "db error")
	}
	return c.JSON(request)
}

// PUT /api/request/:id — partial update, owner only.
func UpdateRequest(c *fiber.Ctx) error {
	userID, _ := c.Locals("userID").(string)
	id := strings.TrimSpace(c.Params("id"))
	if id == "" {
		return fiber.NewError(fiber.StatusBadRequest, "missing request id in path")
	}

	var in RequestUpdateDTO
	if err := middlewares.BindAndValidate(c, &in); err != nil {
		return err
	}
	utils.NormalizePtrDTO(&in)

	db := database.GetDB(c)

	var existing models.ExchangeRequest
	if err := db.First(&existing, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "request not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "db error")
	}
	if existing.UserId != userID {
		return fiber.NewError(fiber.StatusForbidden, "not your request")
	}

	updates := utils.UpdatesFromPtrDTO(&in, nil)
	// The jsonb column needs its concrete type, not the DTO slice.
	delete(updates, "target_locations")
	if in.TargetLocations != nil {
		updates["target_locations"] = datatypes.NewJSONSlice(targetLocations(*in.TargetLocations))
	}
	if len(updates) == 0 {
		return c.JSON(existing)
	}

	if err := db.Model(&models.ExchangeRequest{}).Where("id = ?", id).Updates(updates).Error; err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "could not update request")
	}

	var out models.ExchangeRequest
	if err := db.First(&out, "id = ?", id).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to reload request")
	}
	return c.JSON(out)
}

// PUT /api/request/:id/deactivate — owner only; removes the request from the
// matching pool. Existing matches are untouched.
func DeactivateRequest(c *fiber.Ctx) error {
	userID, _ := c.Locals("userID").(string)
	id := strings.TrimSpace(c.Params("id"))
	if id == "" {
		return fiber.NewError(fiber.StatusBadRequest, "missing request id in path")
	}

	db := database.GetDB(c)

	var existing models.ExchangeRequest
	if err := db.First(&existing, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "request not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "db error")
	}
	if existing.UserId != userID {
		return fiber.NewError(fiber.StatusForbidden, "not your request")
	}

	if err := db.Model(&existing).Update("active", false).Error; err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "could not deactivate request")
	}
	return c.JSON(fiber.Map{"message": "success"})
}
