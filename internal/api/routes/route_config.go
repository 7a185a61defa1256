package routes

import (
	"Recipe-Share-Backend/domain"
	"Recipe-Share-Backend/internal/api/handlers"
	"Recipe-Share-Backend/internal/middleware"
	"Recipe-Share-Backend/pkg/user"

	"github.com/gofiber/fiber/v2"
)

type Config struct {
	App              *fiber.App
	UserHandler      handlers.UserHandler
	RecipeHandler    handlers.RecipeHandler
	LikeHandler      handlers.LikeHandler
	Middleware       middleware.Middleware
	IdentityResolver user.IdentityResolver
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware())
	c.GuestRoute()
	c.User()
	c.Recipes()
}

func (c *Config) GuestRoute() {
	c.App.Get("/api/ping", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": domain.MessagePong})
	})
	c.App.Post("/login", c.UserHandler.Login)
}

func (c *Config) User() {
	auth := c.Middleware.AuthMiddleware(c.IdentityResolver)
	optional := c.Middleware.OptionalAuthMiddleware(c.IdentityResolver)

	c.App.Get("/me", auth, c.UserHandler.Me)

	user := c.App.Group("/users")
	{
		user.Post("", c.UserHandler.Register)
		user.Get("/me", auth, c.UserHandler.Me)
		user.Delete("/me", auth, c.UserHandler.DeleteMe)
		user.Get("/:id", c.UserHandler.GetUser)
		user.Get("/:id/recipes", optional, c.RecipeHandler.GetUserRecipes)
	}
}

func (c *Config) Recipes() {
	auth := c.Middleware.AuthMiddleware(c.IdentityResolver)
	optional := c.Middleware.OptionalAuthMiddleware(c.IdentityResolver)

	recipes := c.App.Group("/recipes")
	// static paths first so they are not captured by /:id
	recipes.Get("", optional, c.RecipeHandler.GetRecipes)
	recipes.Get("/search", optional, c.RecipeHandler.SearchRecipes)
	recipes.Get("/all", optional, c.RecipeHandler.GetAllRecipes)
	recipes.Get("/images", c.RecipeHandler.GetRecipeImages)
	recipes.Post("", auth, c.RecipeHandler.CreateRecipe)

	recipes.Get("/:id", optional, c.RecipeHandler.GetRecipeDetail)
	recipes.Delete("/:id", auth, c.RecipeHandler.DeleteRecipe)
	recipes.Post("/:id/like", auth, c.LikeHandler.ToggleLike)
	recipes.Post("/:id/images", auth, c.RecipeHandler.AddRecipeImages)
}
