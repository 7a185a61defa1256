package presenters

import (
	"fmt"
	"testing"

	"Recipe-Share-Backend/domain"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	verr := domain.NewValidationError()
	verr.Add("title", "is required")

	tests := []struct {
		err     error
		status  int
		message string
	}{
		{verr, fiber.StatusUnprocessableEntity, domain.MessageValidationFailed},
		{domain.ErrUnauthorized, fiber.StatusUnauthorized, domain.ErrUnauthorized.Error()},
		{domain.ErrTokenInvalid, fiber.StatusUnauthorized, domain.ErrUnauthorized.Error()},
		{domain.ErrUsernameTaken, fiber.StatusConflict, "username already registered"},
		{domain.ErrEmailTaken, fiber.StatusConflict, "email already registered"},
		{domain.ErrRecipeNotFound, fiber.StatusNotFound, "recipe not found"},
		{fmt.Errorf("lookup: %w", domain.ErrUserNotFound), fiber.StatusNotFound, "user not found"},
		{domain.ErrNotFoundOrForbidden, fiber.StatusNotFound, domain.ErrNotFoundOrForbidden.Error()},
		{fiber.ErrMethodNotAllowed, fiber.StatusMethodNotAllowed, fiber.ErrMethodNotAllowed.Message},
		{fmt.Errorf("pq: connection reset"), fiber.StatusInternalServerError, domain.MessageInternalError},
	}
	for _, tt := range tests {
		status, message := Classify(tt.err)
		assert.Equal(t, tt.status, status, tt.err.Error())
		assert.Equal(t, tt.message, message, tt.err.Error())
	}
}
