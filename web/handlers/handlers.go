package handlers

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/rewearth/rewearth/rewearth"
	"github.com/rewearth/rewearth/rewearth/database/models"
	"github.com/rewearth/rewearth/rewearth/ecodata"
	"github.com/rewearth/rewearth/rewearth/services"
	webmodels "github.com/rewearth/rewearth/web/models"
	"github.com/rewearth/rewearth/web/utils"
)

// WebApp wires the HTTP surface to the services. Service fields are nil
// when their backing database was unreachable at startup; affected
// routes then answer 503 instead of the process refusing to boot.
type WebApp struct {
	Config   *rewearth.Config
	Accounts *services.AccountService
	Wardrobe *services.WardrobeService
	Swaps    *services.SwapService
	Eco      *ecodata.Service
}

func (a *WebApp) RegisterRoutes(app *fiber.App) {
	app.Get("/", a.handleHome)

	api := app.Group("/api")
	api.Get("/eco-data", a.handleEcoData)
	api.Post("/register", a.handleRegister)
	api.Post("/login", a.handleLogin)
	api.Post("/item/upload", a.handleUploadItem)
	api.Get("/wardrobe/my-items", a.handleMyItems)
	api.Get("/wardrobe/swap-feed", a.handleSwapFeed)
	api.Post("/swap/request", a.handleSwapRequest)
	api.Get("/swap/inbox", a.handleSwapInbox)
	api.Post("/swap/respond", a.handleSwapRespond)
	api.Post("/credits/buy", a.handleBuyCredits)
}

func (a *WebApp) handleHome(c *fiber.Ctx) error {
	return utils.SendJSON(c, fiber.StatusOK, webmodels.MessageResponse{
		Message: "Hello from the ReWearth backend!",
	})
}

func (a *WebApp) storesReady() bool {
	return a.Accounts != nil && a.Wardrobe != nil && a.Swaps != nil
}

func (a *WebApp) ecoReady() bool {
	return a.Eco != nil
}

// parseID round-trips an opaque string identifier back to its storage
// form.
func parseID(s string) (int64, error) {
	return strconv.ParseInt(s, 10, 64)
}

// sendDomainError maps a domain error onto the HTTP taxonomy. Unknown
// errors become 500 without leaking internals.
func sendDomainError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, models.ErrDuplicateEmail):
		return utils.SendConflict(c, err.Error())
	case errors.Is(err, models.ErrInvalidCredentials):
		return utils.SendUnauthorized(c, err.Error())
	case errors.Is(err, models.ErrUserNotFound),
		errors.Is(err, models.ErrItemNotFound),
		errors.Is(err, models.ErrSwapNotFound),
		errors.Is(err, ecodata.ErrNotFound):
		return utils.SendNotFound(c, err.Error())
	case errors.Is(err, models.ErrRequesterCantAfford):
		return utils.SendPaymentRequired(c, err.Error())
	case errors.Is(err, models.ErrReceiverCantAfford),
		errors.Is(err, models.ErrOwnershipMismatch),
		errors.Is(err, models.ErrItemUnavailable),
		errors.Is(err, models.ErrAlreadyResolved),
		errors.Is(err, models.ErrInvalidAmount):
		return utils.SendBadRequest(c, err.Error())
	case errors.Is(err, models.ErrStorageUnavailable):
		return utils.SendServiceUnavailable(c, err.Error())
	default:
		return utils.SendInternalServerError(c, "An unexpected error occurred")
	}
}
