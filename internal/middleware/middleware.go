package middleware

import (
	"strings"

	"Recipe-Share-Backend/internal/api/presenters"
	"Recipe-Share-Backend/internal/utils"
	"Recipe-Share-Backend/pkg/user"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

type (
	Middleware interface {
		CORSMiddleware() fiber.Handler
		AuthMiddleware(resolver user.IdentityResolver) fiber.Handler
		OptionalAuthMiddleware(resolver user.IdentityResolver) fiber.Handler
	}

	middleware struct{}
)

func NewMiddleware() Middleware {
	return &middleware{}
}

func (m *middleware) CORSMiddleware() fiber.Handler {
	origins := utils.GetConfig("CORS_ALLOW_ORIGINS")
	if origins == "" {
		origins = "*"
	}
	return cors.New(cors.Config{
		AllowOrigins: origins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,PATCH,DELETE,OPTIONS",
	})
}

// AuthMiddleware rejects the request with 401 unless the bearer token resolves to a user.
func (m *middleware) AuthMiddleware(resolver user.IdentityResolver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		u, err := resolver.Resolve(c.UserContext(), BearerToken(c))
		if err != nil {
			return presenters.HandleError(c, err)
		}
		c.Locals("user", u)
		c.Locals("user_id", u.ID.String())
		return c.Next()
	}
}

// OptionalAuthMiddleware never rejects; anonymous requests simply carry no user.
func (m *middleware) OptionalAuthMiddleware(resolver user.IdentityResolver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if u := resolver.ResolveOptional(c.UserContext(), BearerToken(c)); u != nil {
			c.Locals("user", u)
			c.Locals("user_id", u.ID.String())
		}
		return c.Next()
	}
}

// BearerToken returns the token of an "Authorization: Bearer <token>" header, or "".
// The scheme is matched case-insensitively.
func BearerToken(c *fiber.Ctx) string {
	scheme, token, ok := strings.Cut(strings.TrimSpace(c.Get(fiber.HeaderAuthorization)), " ")
	if !ok || !strings.EqualFold(scheme, "bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
