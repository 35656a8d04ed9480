package serverutils

import (
	"errors"

	"settings-core/internal/failure"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandlerMiddleware renders any error returned further down the chain as
// a Response envelope. Settings failures map to 422 for user input problems
// and 503 for transport problems.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		code := StatusFor(err)
		return ctx.Status(code).JSON(ErrorResponse(code, MessageFor(err)))
	}
}

func StatusFor(err error) int {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return fe.Code
	}

	var sf *failure.SettingsFailure
	if errors.As(err, &sf) {
		switch sf.Kind {
		case failure.KindIncorrectCurrentPassword:
			return fiber.StatusUnprocessableEntity
		case failure.KindTransport:
			return fiber.StatusServiceUnavailable
		}
	}
	return fiber.StatusInternalServerError
}

func MessageFor(err error) string {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return fe.Message
	}
	return failure.Message(err)
}
