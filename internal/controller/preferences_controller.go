package controller

import (
	"settings-core/internal/dto"
	"settings-core/internal/pkg/serverutils"
	"settings-core/internal/viewmodel"

	"github.com/gofiber/fiber/v2"
)

// IPreferencesController serves the appearance, notifications and privacy
// screens.
type IPreferencesController interface {
	RegisterRoutes(r fiber.Router)
	Appearance(ctx *fiber.Ctx) error
	SetTheme(ctx *fiber.Ctx) error
	Notifications(ctx *fiber.Ctx) error
	ToggleNotification(ctx *fiber.Ctx) error
	EnableAllNotifications(ctx *fiber.Ctx) error
	DisableAllNotifications(ctx *fiber.Ctx) error
	Privacy(ctx *fiber.Ctx) error
	SetPrivacyToggle(ctx *fiber.Ctx) error
	ExportData(ctx *fiber.Ctx) error
	DownloadExport(ctx *fiber.Ctx) error
	ResetExportStatus(ctx *fiber.Ctx) error
}

type preferencesController struct {
	settings *viewmodel.Settings
}

func NewPreferencesController(settings *viewmodel.Settings) IPreferencesController {
	return &preferencesController{settings: settings}
}

func (c *preferencesController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/settings/v1")

	h.Get("appearance", c.Appearance)
	h.Put("appearance/theme", c.SetTheme)

	h.Get("notifications", c.Notifications)
	h.Post("notifications/enable-all", c.EnableAllNotifications)
	h.Post("notifications/disable-all", c.DisableAllNotifications)
	h.Post("notifications/:id/toggle", c.ToggleNotification)

	h.Get("privacy", c.Privacy)
	h.Put("privacy/:toggle", c.SetPrivacyToggle)
	h.Post("privacy/export", c.ExportData)
	h.Get("privacy/export", c.DownloadExport)
	h.Delete("privacy/export/status", c.ResetExportStatus)
}

func (c *preferencesController) Appearance(ctx *fiber.Ctx) error {
	return ctx.JSON(serverutils.SuccessResponse("Success get theme", fiber.Map{"theme": c.settings.Appearance().Theme()}))
}

func (c *preferencesController) SetTheme(ctx *fiber.Ctx) error {
	var req dto.SetThemeRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	vm := c.settings.Appearance()
	if err := vm.SetTheme(req.Theme); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	return ctx.JSON(serverutils.SuccessResponse("Success set theme", fiber.Map{"theme": vm.Theme()}))
}

func (c *preferencesController) Notifications(ctx *fiber.Ctx) error {
	return ctx.JSON(serverutils.SuccessResponse("Success get notifications", c.settings.Notifications().State()))
}

func (c *preferencesController) ToggleNotification(ctx *fiber.Ctx) error {
	vm := c.settings.Notifications()
	if !vm.Toggle(ctx.Params("id")) {
		return fiber.NewError(fiber.StatusNotFound, "notification category not found")
	}
	return ctx.JSON(serverutils.SuccessResponse("Success toggle notification", vm.State()))
}

func (c *preferencesController) EnableAllNotifications(ctx *fiber.Ctx) error {
	vm := c.settings.Notifications()
	vm.EnableAll()
	return ctx.JSON(serverutils.SuccessResponse("Success enable all notifications", vm.State()))
}

func (c *preferencesController) DisableAllNotifications(ctx *fiber.Ctx) error {
	vm := c.settings.Notifications()
	vm.DisableAll()
	return ctx.JSON(serverutils.SuccessResponse("Success disable all notifications", vm.State()))
}

func (c *preferencesController) Privacy(ctx *fiber.Ctx) error {
	return ctx.JSON(serverutils.SuccessResponse("Success get privacy", c.settings.Privacy().State()))
}

func (c *preferencesController) SetPrivacyToggle(ctx *fiber.Ctx) error {
	var req dto.ToggleRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	vm := c.settings.Privacy()
	switch ctx.Params("toggle") {
	case "biometrics":
		vm.SetBiometricsEnabled(*req.Enabled)
	case "screen-lock":
		vm.SetScreenLockEnabled(*req.Enabled)
	case "analytics":
		vm.SetAnalyticsEnabled(*req.Enabled)
	case "crash-reporting":
		vm.SetCrashReportingEnabled(*req.Enabled)
	default:
		return fiber.NewError(fiber.StatusNotFound, "unknown privacy toggle")
	}
	return ctx.JSON(serverutils.SuccessResponse("Success update privacy", vm.State()))
}

func (c *preferencesController) ExportData(ctx *fiber.Ctx) error {
	vm := c.settings.Privacy()
	started := vm.ExportData(ctx.UserContext())
	res := dto.ActionResponse[viewmodel.PrivacyState]{Started: started, State: vm.State()}
	return ctx.Status(fiber.StatusAccepted).JSON(serverutils.SuccessResponse("Export requested", res))
}

func (c *preferencesController) DownloadExport(ctx *fiber.Ctx) error {
	data := c.settings.Privacy().LastExport()
	if len(data) == 0 {
		return fiber.NewError(fiber.StatusNotFound, "no export available")
	}
	ctx.Set(fiber.HeaderContentDisposition, `attachment; filename="settings-export.json"`)
	ctx.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return ctx.Send(data)
}

func (c *preferencesController) ResetExportStatus(ctx *fiber.Ctx) error {
	vm := c.settings.Privacy()
	vm.ResetExportStatus()
	return ctx.JSON(serverutils.SuccessResponse("Success reset export status", vm.State()))
}
