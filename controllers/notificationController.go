package controllers

import (
	"errors"
	"strings"

	"becayis-backend/database"
	"becayis-backend/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// GET /api/notifications — the caller's notifications, newest first.
func GetNotifications(c *fiber.Ctx) error {
	userID, _ := c.Locals("userID").(string)

	var list []models.Notification
	db := database.GetDB(c)
	if err := db.Where("user_id = ?", userID).Order("created_at DESC").Find(&list).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "db error")
	}
	return c.JSON(fiber.Map{
		"notifications": list,
		"message":       "success",
	})
}

// PUT /api/notification/:id/read
func MarkNotificationRead(c *fiber.Ctx) error {
	userID, _ := c.Locals("userID").(string)
	id := strings.TrimSpace(c.Params("id"))
	if id == "" {
		return fiber.NewError(fiber.StatusBadRequest, "missing notification id in path")
	}

	db := database.GetDB(c)

	var notification models.Notification
	if err := db.First(&notification, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "notification not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "db error")
	}
	if notification.UserId != userID {
		return fiber.NewError(fiber.StatusForbidden, "not your notification")
	}

	if err := db.Model(&notification).Update("read", true).Error; err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "could not update notification")
	}
	return c.JSON(fiber.Map{"message": "success"})
}
