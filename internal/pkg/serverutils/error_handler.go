package serverutils

import (
	"github.com/gofiber/fiber/v2"

	"skill-exchange-be/internal/pkg/apperrors"
)

// ErrorHandlerMiddleware converts typed application errors into
// {error_key, message} JSON with the matching status code. Untyped errors
// surface as a generic 500 so internals never leak to clients.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		if fiberErr, ok := err.(*fiber.Error); ok {
			return ctx.Status(fiberErr.Code).JSON(ErrorBody{
				ErrorKey: "http_error",
				Message:  fiberErr.Message,
			})
		}

		appErr := apperrors.AsError(err)
		return ctx.Status(statusForKind(appErr.Kind)).JSON(ErrorBody{
			ErrorKey: appErr.Key,
			Message:  appErr.Message,
		})
	}
}

func statusForKind(kind apperrors.Kind) int {
	switch kind {
	case apperrors.KindNotFound:
		return fiber.StatusNotFound
	case apperrors.KindAccessDenied:
		return fiber.StatusForbidden
	case apperrors.KindConflict:
		return fiber.StatusConflict
	case apperrors.KindInvalidInput:
		return fiber.StatusBadRequest
	case apperrors.KindUnauthorized:
		return fiber.StatusUnauthorized
	case apperrors.KindUpstreamUnavailable:
		return fiber.StatusServiceUnavailable
	default:
		return fiber.StatusInternalServerError
	}
}
