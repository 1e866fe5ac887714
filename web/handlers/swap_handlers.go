package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/rewearth/rewearth/rewearth/database/models"
	webmodels "github.com/rewearth/rewearth/web/models"
	"github.com/rewearth/rewearth/web/utils"
)

func (a *WebApp) handleSwapRequest(c *fiber.Ctx) error {
	var req webmodels.SwapRequestRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendBadRequest(c, "Invalid JSON data")
	}
	if req.RequesterEmail == "" || req.ItemRequestedID == "" || req.ItemOfferedID == "" {
		return utils.SendBadRequest(c, "Missing requester_email, item_requested_id, or item_offered_id")
	}

	wantedID, err := parseID(req.ItemRequestedID)
	if err != nil {
		return utils.SendBadRequest(c, "Invalid item_requested_id")
	}
	offeredID, err := parseID(req.ItemOfferedID)
	if err != nil {
		return utils.SendBadRequest(c, "Invalid item_offered_id")
	}
	if !a.storesReady() {
		return sendDomainError(c, models.ErrStorageUnavailable)
	}

	swap, err := a.Swaps.CreateRequest(c.Context(), req.RequesterEmail, wantedID, offeredID)
	if err != nil {
		return sendDomainError(c, err)
	}
	return utils.SendCreated(c, fiber.Map{
		"message": "Swap request sent successfully",
		"swap":    swap,
	})
}

func (a *WebApp) handleSwapInbox(c *fiber.Ctx) error {
	email := c.Query("email")
	if email == "" {
		return utils.SendBadRequest(c, "No email specified")
	}
	if !a.storesReady() {
		return sendDomainError(c, models.ErrStorageUnavailable)
	}

	swaps, err := a.Swaps.Inbox(c.Context(), email)
	if err != nil {
		return sendDomainError(c, err)
	}
	if swaps == nil {
		swaps = []*models.SwapRequest{}
	}
	return utils.SendJSON(c, fiber.StatusOK, swaps)
}

func (a *WebApp) handleSwapRespond(c *fiber.Ctx) error {
	var req webmodels.SwapRespondRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendBadRequest(c, "Invalid JSON data")
	}
	if req.SwapID == "" || (req.Response != "accepted" && req.Response != "rejected") {
		return utils.SendBadRequest(c, "Missing or invalid swap_id or response")
	}

	swapID, err := parseID(req.SwapID)
	if err != nil {
		return utils.SendBadRequest(c, "Invalid swap_id")
	}
	if !a.storesReady() {
		return sendDomainError(c, models.ErrStorageUnavailable)
	}

	swap, err := a.Swaps.Respond(c.Context(), swapID, req.Response == "accepted")
	if err != nil {
		return sendDomainError(c, err)
	}

	message := "Swap successfully rejected"
	if swap.Status == models.SwapCompleted {
		message = "Swap successfully completed, fee deducted from both users"
	}
	return utils.SendJSON(c, fiber.StatusOK, fiber.Map{
		"message": message,
		"swap":    swap,
	})
}
