package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/rewearth/rewearth/rewearth/database/models"
	"github.com/rewearth/rewearth/rewearth/services"
	webmodels "github.com/rewearth/rewearth/web/models"
	"github.com/rewearth/rewearth/web/utils"
)

func (a *WebApp) handleUploadItem(c *fiber.Ctx) error {
	var req webmodels.UploadItemRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendBadRequest(c, "Invalid JSON data")
	}
	if req.ItemName == "" || req.Condition == "" || req.ImageURL == "" ||
		req.UserEmail == "" || req.ItemType == "" || req.CreditCost == nil {
		return utils.SendBadRequest(c, "Missing item_name, condition, image_url, user_email, item_type, or credit_cost")
	}
	if !a.storesReady() || !a.ecoReady() {
		return sendDomainError(c, models.ErrStorageUnavailable)
	}

	item, err := a.Wardrobe.UploadItem(c.Context(), services.UploadItemInput{
		UserEmail:  req.UserEmail,
		Name:       req.ItemName,
		Condition:  req.Condition,
		ImageURL:   req.ImageURL,
		ItemType:   req.ItemType,
		CreditCost: *req.CreditCost,
	})
	if err != nil {
		return sendDomainError(c, err)
	}
	return utils.SendCreated(c, fiber.Map{
		"message": "Item added to wardrobe successfully",
		"item":    item,
	})
}

func (a *WebApp) handleMyItems(c *fiber.Ctx) error {
	email := c.Query("email")
	if email == "" {
		return utils.SendBadRequest(c, "No email specified")
	}
	if !a.storesReady() {
		return sendDomainError(c, models.ErrStorageUnavailable)
	}

	items, err := a.Wardrobe.MyItems(c.Context(), email)
	if err != nil {
		return sendDomainError(c, err)
	}
	if items == nil {
		items = []*models.Item{}
	}
	return utils.SendJSON(c, fiber.StatusOK, items)
}

func (a *WebApp) handleSwapFeed(c *fiber.Ctx) error {
	email := c.Query("email")
	if email == "" {
		return utils.SendBadRequest(c, "No email specified to filter by")
	}
	if !a.storesReady() {
		return sendDomainError(c, models.ErrStorageUnavailable)
	}

	items, err := a.Wardrobe.SwapFeed(c.Context(), email)
	if err != nil {
		return sendDomainError(c, err)
	}
	if items == nil {
		items = []*models.Item{}
	}
	return utils.SendJSON(c, fiber.StatusOK, items)
}
