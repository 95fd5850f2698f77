package controllers

import (
	"strings"

	"becayis-backend/database"
	"becayis-backend/logger"
	"becayis-backend/matching"
	"becayis-backend/middlewares"
	"becayis-backend/notifications"
	"becayis-backend/stores"

	"github.com/gofiber/fiber/v2"
)

// requestStore/matchStore run on the per-request TX; the notifier writes on
// the shared handle so notifications survive a handler rollback.
func newFinder(c *fiber.Ctx) *matching.Finder {
	db := database.GetDB(c)
	notifier := notifications.NewDBNotifier(database.DB, logger.L())
	return matching.NewFinder(stores.NewRequestStore(db), stores.NewMatchStore(db), notifier, logger.L())
}

func newLifecycle(c *fiber.Ctx) *matching.Lifecycle {
	db := database.GetDB(c)
	notifier := notifications.NewDBNotifier(database.DB, logger.L())
	return matching.NewLifecycle(stores.NewMatchStore(db), notifier, logger.L())
}

// POST /api/request/:id/matches — run the finder for the caller's own request.
func FindMatches(c *fiber.Ctx) error {
	userID, _ := c.Locals("userID").(string)
	id := strings.TrimSpace(c.Params("id"))
	if id == "" {
		return fiber.NewError(fiber.StatusBadRequest, "missing request id in path")
	}

	request, err := stores.NewRequestStore(database.GetDB(c)).GetRequest(c.UserContext(), id)
	if err != nil {
		return err
	}
	if request.UserId != userID {
		return fiber.NewError(fiber.StatusForbidden, "not your request")
	}

	matches, err := newFinder(c).FindAndCreateMatches(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"matches": matches,
		"message": "success",
	})
}

// GET /api/matches — every match the caller participates in.
func GetMatches(c *fiber.Ctx) error {
	userID, _ := c.Locals("userID").(string)

	matches, err := newLifecycle(c).ListMatchesForUser(c.UserContext(), userID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"matches": matches,
		"message": "success",
	})
}

type MatchStatusDTO struct {
	Status string `json:"status" validate:"required"`
}

// PUT /api/match/:id/status — accept or reject a pending match. Target
// status validation, participant check and the pending-only precondition
// all live in the lifecycle.
func TransitionMatch(c *fiber.Ctx) error {
	userID, _ := c.Locals("userID").(string)
	id := strings.TrimSpace(c.Params("id"))
	if id == "" {
		return fiber.NewError(fiber.StatusBadRequest, "missing match id in path")
	}

	var in MatchStatusDTO
	if err := middlewares.BindAndValidate(c, &in); err != nil {
		return err
	}

	match, err := newLifecycle(c).Transition(c.UserContext(), id, userID, strings.TrimSpace(in.Status))
	if err != nil {
		return err
	}
	return c.JSON(match)
}
