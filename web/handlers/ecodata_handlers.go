package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	dbmodels "github.com/rewearth/rewearth/rewearth/database/models"
	"github.com/rewearth/rewearth/rewearth/ecodata"
	"github.com/rewearth/rewearth/web/models"
	"github.com/rewearth/rewearth/web/utils"
)

// handleEcoData serves the raw reference record for an item-type name.
// This endpoint matches anywhere in the name; exact matching is reserved
// for the upload path. Misses carry fuzzy suggestions when the name
// index is loaded.
func (a *WebApp) handleEcoData(c *fiber.Ctx) error {
	item := c.Query("item")
	if item == "" {
		return utils.SendBadRequest(c, "No item specified. Use ?item=... query")
	}
	if !a.ecoReady() {
		return sendDomainError(c, dbmodels.ErrStorageUnavailable)
	}

	record, err := a.Eco.Lookup(c.Context(), item, ecodata.MatchSubstring)
	if err != nil {
		if errors.Is(err, ecodata.ErrNotFound) {
			resp := models.NewErrorResponse("NOT_FOUND", err.Error())
			resp.Error.Suggestions = a.Eco.Suggest(item)
			return utils.SendJSON(c, fiber.StatusNotFound, resp)
		}
		return sendDomainError(c, err)
	}
	return utils.SendJSON(c, fiber.StatusOK, record)
}
