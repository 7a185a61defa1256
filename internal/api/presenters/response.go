package presenters

import (
	"errors"

	"Recipe-Share-Backend/domain"
	"Recipe-Share-Backend/pkg/log"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type Response struct {
	Detail string            `json:"detail"`
	Errors map[string]string `json:"errors,omitempty"`
}

func SuccessResponse(c *fiber.Ctx, data any, statusCode int) error {
	if data == nil {
		return c.SendStatus(statusCode)
	}
	return c.Status(statusCode).JSON(data)
}

func MessageResponse(c *fiber.Ctx, message string, statusCode int) error {
	return c.Status(statusCode).JSON(Response{Detail: message})
}

// ErrorResponse writes {"detail": message}. Server errors are logged and never leak err to
// the client.
func ErrorResponse(c *fiber.Ctx, statusCode int, message string, err error) error {
	res := Response{Detail: message}

	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		res.Errors = verr.Fields
	}
	if statusCode == fiber.StatusUnauthorized {
		c.Set(fiber.HeaderWWWAuthenticate, "Bearer")
	}
	if statusCode >= fiber.StatusInternalServerError {
		log.L.Error("request failed",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Error(err),
		)
		res.Detail = domain.MessageInternalError
	}
	return c.Status(statusCode).JSON(res)
}

// HandleError picks the status for err and writes it with ErrorResponse.
func HandleError(c *fiber.Ctx, err error) error {
	statusCode, message := Classify(err)
	return ErrorResponse(c, statusCode, message, err)
}

func Classify(err error) (int, string) {
	var verr *domain.ValidationError
	var ferr *fiber.Error
	switch {
	case errors.As(err, &verr):
		return fiber.StatusUnprocessableEntity, domain.MessageValidationFailed
	case errors.Is(err, domain.ErrUnauthorized), errors.Is(err, domain.ErrTokenInvalid):
		return fiber.StatusUnauthorized, domain.ErrUnauthorized.Error()
	case errors.Is(err, domain.ErrConflict):
		return fiber.StatusConflict, err.Error()
	case errors.Is(err, domain.ErrNotFoundOrForbidden):
		return fiber.StatusNotFound, domain.ErrNotFoundOrForbidden.Error()
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound, notFoundMessage(err)
	case errors.As(err, &ferr):
		return ferr.Code, ferr.Message
	default:
		return fiber.StatusInternalServerError, domain.MessageInternalError
	}
}

func notFoundMessage(err error) string {
	switch {
	case errors.Is(err, domain.ErrUserNotFound):
		return domain.ErrUserNotFound.Error()
	case errors.Is(err, domain.ErrRecipeNotFound):
		return domain.ErrRecipeNotFound.Error()
	default:
		return domain.ErrNotFound.Error()
	}
}

// FiberErrorHandler routes errors that escape handlers (unknown routes, body limits, panics
// turned into errors by recover) through the same mapping.
func FiberErrorHandler(c *fiber.Ctx, err error) error {
	return HandleError(c, err)
}
