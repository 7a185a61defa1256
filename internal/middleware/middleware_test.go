package middleware

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBearerToken(t *testing.T) {
	tests := map[string]string{
		"Bearer abc":    "abc",
		"bearer abc":    "abc",
		"BEARER  abc  ": "abc",
		"Basic abc":     "",
		"Bearer":        "",
		"abc":           "",
		"":              "",
	}

	for header, want := range tests {
		app := fiber.New()
		var got string
		app.Get("/", func(c *fiber.Ctx) error {
			got = BearerToken(c)
			return nil
		})

		req := httptest.NewRequest(fiber.MethodGet, "/", nil)
		if header != "" {
			req.Header.Set(fiber.HeaderAuthorization, header)
		}
		_, err := app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, want, got, header)
	}
}
