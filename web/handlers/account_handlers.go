package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/rewearth/rewearth/rewearth/database/models"
	webmodels "github.com/rewearth/rewearth/web/models"
	"github.com/rewearth/rewearth/web/utils"
)

func (a *WebApp) handleRegister(c *fiber.Ctx) error {
	var req webmodels.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendBadRequest(c, "Invalid JSON data")
	}
	if req.Email == "" || req.Password == "" || req.CollegeID == "" {
		return utils.SendBadRequest(c, "Missing email, password, or college_id")
	}
	if !a.storesReady() {
		return sendDomainError(c, models.ErrStorageUnavailable)
	}

	if _, err := a.Accounts.Register(c.Context(), req.Email, req.Password, req.CollegeID); err != nil {
		return sendDomainError(c, err)
	}
	return utils.SendCreated(c, webmodels.MessageResponse{Message: "User registered successfully"})
}

func (a *WebApp) handleLogin(c *fiber.Ctx) error {
	var req webmodels.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendBadRequest(c, "Invalid JSON data")
	}
	if req.Email == "" || req.Password == "" {
		return utils.SendBadRequest(c, "Missing email or password")
	}
	if !a.storesReady() {
		return sendDomainError(c, models.ErrStorageUnavailable)
	}

	user, err := a.Accounts.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		return sendDomainError(c, err)
	}
	return utils.SendJSON(c, fiber.StatusOK, fiber.Map{
		"message": "Login successful",
		"user": fiber.Map{
			"email":      user.Email,
			"college_id": user.CollegeID,
			"verified":   user.Verified,
		},
	})
}

func (a *WebApp) handleBuyCredits(c *fiber.Ctx) error {
	var req webmodels.BuyCreditsRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendBadRequest(c, "Invalid JSON data")
	}
	if req.Email == "" || req.AmountToBuy == nil {
		return utils.SendBadRequest(c, "Missing email or amount_to_buy")
	}
	if !a.storesReady() {
		return sendDomainError(c, models.ErrStorageUnavailable)
	}

	balance, err := a.Accounts.BuyCredits(c.Context(), req.Email, *req.AmountToBuy)
	if err != nil {
		return sendDomainError(c, err)
	}
	return utils.SendJSON(c, fiber.StatusOK, fiber.Map{
		"message":            "Credits purchased successfully",
		"new_credit_balance": balance,
	})
}
