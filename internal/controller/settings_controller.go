package controller

import (
	"errors"

	"settings-core/internal/dto"
	"settings-core/internal/entity"
	"settings-core/internal/pkg/serverutils"
	"settings-core/internal/viewmodel"

	"github.com/gofiber/fiber/v2"
)

type ISettingsController interface {
	RegisterRoutes(r fiber.Router)
	State(ctx *fiber.Ctx) error
	Search(ctx *fiber.Ctx) error
	Navigate(ctx *fiber.Ctx) error
	Back(ctx *fiber.Ctx) error
	PopToRoot(ctx *fiber.Ctx) error
	Reset(ctx *fiber.Ctx) error
	SignOut(ctx *fiber.Ctx) error
}

type settingsController struct {
	settings *viewmodel.Settings
}

func NewSettingsController(settings *viewmodel.Settings) ISettingsController {
	return &settingsController{settings: settings}
}

func (c *settingsController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/settings/v1")
	h.Get("", c.State)
	h.Get("search", c.Search)
	h.Post("navigate", c.Navigate)
	h.Post("back", c.Back)
	h.Post("pop-to-root", c.PopToRoot)
	h.Post("reset", c.Reset)
	h.Post("sign-out", c.SignOut)
}

func (c *settingsController) State(ctx *fiber.Ctx) error {
	return ctx.JSON(serverutils.SuccessResponse("Success get settings state", c.settings.State()))
}

// Search sets the root search text from ?q= and returns the filtered catalog.
func (c *settingsController) Search(ctx *fiber.Ctx) error {
	query := ctx.Query("q")
	c.settings.SetSearchText(query)

	res := dto.SearchResponse{
		Query:    query,
		IsActive: c.settings.IsSearchActive(),
		Results:  c.settings.SearchResults(),
	}
	return ctx.JSON(serverutils.SuccessResponse("Success search settings", res))
}

func (c *settingsController) Navigate(ctx *fiber.Ctx) error {
	var req dto.NavigateRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	if err := c.settings.Navigate(req.Destination); err != nil {
		if errors.Is(err, viewmodel.ErrUnknownDestination) {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success navigate", c.settings.Path()))
}

func (c *settingsController) Back(ctx *fiber.Ctx) error {
	if !c.settings.Back() {
		return fiber.NewError(fiber.StatusConflict, "already at root")
	}
	return ctx.JSON(serverutils.SuccessResponse("Success navigate back", c.settings.Path()))
}

func (c *settingsController) PopToRoot(ctx *fiber.Ctx) error {
	c.settings.PopToRoot()
	return ctx.JSON(serverutils.SuccessResponse("Success pop to root", []entity.Destination{}))
}

func (c *settingsController) Reset(ctx *fiber.Ctx) error {
	c.settings.ResetToDefaults()
	return ctx.JSON(serverutils.SuccessResponse("Success reset preferences", c.settings.Privacy().State()))
}

func (c *settingsController) SignOut(ctx *fiber.Ctx) error {
	started := c.settings.SignOut(ctx.UserContext())
	res := dto.ActionResponse[viewmodel.SettingsState]{Started: started, State: c.settings.State()}
	return ctx.Status(fiber.StatusAccepted).JSON(serverutils.SuccessResponse("Sign out requested", res))
}
