package controller

import (
	"settings-core/internal/dto"
	"settings-core/internal/pkg/serverutils"
	"settings-core/internal/viewmodel"

	"github.com/gofiber/fiber/v2"
)

type IAccountController interface {
	RegisterRoutes(r fiber.Router)
	Show(ctx *fiber.Ctx) error
	UpdateProfile(ctx *fiber.Ctx) error
	ResetProfileDraft(ctx *fiber.Ctx) error
	ChangePassword(ctx *fiber.Ctx) error
	PasswordStrength(ctx *fiber.Ctx) error
	RevokeSession(ctx *fiber.Ctx) error
	RevokeOtherSessions(ctx *fiber.Ctx) error
	DeleteAccount(ctx *fiber.Ctx) error
	ClearErrors(ctx *fiber.Ctx) error
}

type accountController struct {
	settings *viewmodel.Settings
}

func NewAccountController(settings *viewmodel.Settings) IAccountController {
	return &accountController{settings: settings}
}

func (c *accountController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/settings/v1/account")
	h.Get("", c.Show)
	h.Delete("", c.DeleteAccount)
	h.Put("profile", c.UpdateProfile)
	h.Post("profile/reset", c.ResetProfileDraft)
	h.Put("password", c.ChangePassword)
	h.Post("password/strength", c.PasswordStrength)
	h.Post("sessions/revoke-others", c.RevokeOtherSessions)
	h.Delete("sessions/:id", c.RevokeSession)
	h.Post("errors/clear", c.ClearErrors)
}

func (c *accountController) accepted(ctx *fiber.Ctx, message string, started bool) error {
	res := dto.ActionResponse[viewmodel.AccountState]{Started: started, State: c.settings.Account().State()}
	return ctx.Status(fiber.StatusAccepted).JSON(serverutils.SuccessResponse(message, res))
}

func (c *accountController) Show(ctx *fiber.Ctx) error {
	return ctx.JSON(serverutils.SuccessResponse("Success get account", c.settings.Account().State()))
}

// UpdateProfile stages the drafts and starts a save. Started is false when
// the drafts are invalid, unchanged, or a save is already running.
func (c *accountController) UpdateProfile(ctx *fiber.Ctx) error {
	var req dto.UpdateProfileRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	vm := c.settings.Account()
	vm.SetDraftName(req.Name)
	vm.SetDraftEmail(req.Email)
	return c.accepted(ctx, "Profile update requested", vm.SaveProfile(ctx.UserContext()))
}

func (c *accountController) ResetProfileDraft(ctx *fiber.Ctx) error {
	vm := c.settings.Account()
	vm.ResetProfileDraft()
	return ctx.JSON(serverutils.SuccessResponse("Success reset profile draft", vm.State()))
}

func (c *accountController) ChangePassword(ctx *fiber.Ctx) error {
	var req dto.ChangePasswordRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	vm := c.settings.Account()
	vm.SetCurrentPassword(req.CurrentPassword)
	vm.SetNewPassword(req.NewPassword)
	vm.SetConfirmPassword(req.ConfirmPassword)
	return c.accepted(ctx, "Password change requested", vm.SavePassword(ctx.UserContext()))
}

func (c *accountController) PasswordStrength(ctx *fiber.Ctx) error {
	var req dto.PasswordStrengthRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	return ctx.JSON(serverutils.SuccessResponse("Success evaluate password", viewmodel.EvaluatePasswordStrength(req.Password)))
}

func (c *accountController) RevokeSession(ctx *fiber.Ctx) error {
	vm := c.settings.Account()
	id := ctx.Params("id")
	for _, session := range vm.ActiveSessions() {
		if session.Id == id {
			return c.accepted(ctx, "Session revoke requested", vm.RevokeSession(ctx.UserContext(), session))
		}
	}
	return fiber.NewError(fiber.StatusNotFound, "session not found")
}

func (c *accountController) RevokeOtherSessions(ctx *fiber.Ctx) error {
	var req dto.ConfirmRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	vm := c.settings.Account()
	vm.SetConfirmRevokeAll(req.Confirm)
	return c.accepted(ctx, "Revoke other sessions requested", vm.RevokeAllOtherSessions(ctx.UserContext()))
}

func (c *accountController) DeleteAccount(ctx *fiber.Ctx) error {
	var req dto.ConfirmRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	vm := c.settings.Account()
	vm.SetConfirmDeleteAccount(req.Confirm)
	return c.accepted(ctx, "Account deletion requested", vm.DeleteAccount(ctx.UserContext()))
}

func (c *accountController) ClearErrors(ctx *fiber.Ctx) error {
	vm := c.settings.Account()
	vm.ClearErrors()
	return ctx.JSON(serverutils.SuccessResponse("Success clear errors", vm.State()))
}
