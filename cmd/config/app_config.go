package config

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"Recipe-Share-Backend/internal/api/handlers"
	"Recipe-Share-Backend/internal/api/presenters"
	"Recipe-Share-Backend/internal/api/routes"
	"Recipe-Share-Backend/internal/middleware"
	"Recipe-Share-Backend/internal/utils"
	"Recipe-Share-Backend/internal/utils/mailing"
	"Recipe-Share-Backend/internal/utils/storage"
	"Recipe-Share-Backend/pkg/jwt"
	"Recipe-Share-Backend/pkg/like"
	"Recipe-Share-Backend/pkg/recipe"
	"Recipe-Share-Backend/pkg/user"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"gorm.io/gorm"
)

const maxUploadBytes = 20 * 1024 * 1024

func NewApp(ctx context.Context, db *gorm.DB) (*fiber.App, error) {
	utils.InitValidator()
	app := fiber.New(fiber.Config{
		AppName:      "recipe-share",
		BodyLimit:    maxUploadBytes,
		ErrorHandler: presenters.FiberErrorHandler,
	})
	middlewares := middleware.NewMiddleware()
	validator := utils.Validate

	// setting up logging
	output, err := accessLogOutput(utils.GetConfig("LOG_FILE"))
	if err != nil {
		return nil, err
	}
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		TimeZone:   utils.GetConfig("DB_TIMEZONE"),
		Output:     output,
	}))

	// utils
	s3, err := storage.NewAwsS3(ctx)
	if err != nil {
		return nil, err
	}
	mailer := mailing.NewMailer(mailing.LoadMailConfig())

	// Repository
	userRepository := user.NewUserRepository(db)
	recipeRepository := recipe.NewRecipeRepository(db)
	likeRepository := like.NewLikeRepository(db)

	// Service
	jwtService, err := jwt.NewJWTService(
		utils.GetConfig("JWT_SECRET"),
		utils.GetConfig("JWT_ISSUER"),
		utils.GetConfigMinutes("JWT_TTL_MINUTES"),
	)
	if err != nil {
		return nil, err
	}
	identityResolver := user.NewIdentityResolver(jwtService, userRepository)
	userService := user.NewUserService(userRepository, jwtService, s3, mailer)
	recipeService := recipe.NewRecipeService(recipeRepository, likeRepository, s3)
	likeService := like.NewLikeService(likeRepository)

	// Handler
	userHandler := handlers.NewUserHandler(userService, validator)
	recipeHandler := handlers.NewRecipeHandler(recipeService)
	likeHandler := handlers.NewLikeHandler(likeService)

	// routes
	routesConfig := routes.Config{
		App:              app,
		UserHandler:      userHandler,
		RecipeHandler:    recipeHandler,
		LikeHandler:      likeHandler,
		Middleware:       middlewares,
		IdentityResolver: identityResolver,
	}
	routesConfig.Setup()
	return app, nil
}

// accessLogOutput opens the access log file, or stdout when no file is configured.
func accessLogOutput(path string) (io.Writer, error) {
	if path == "" {
		return os.Stdout, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), os.ModePerm); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}
	file, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open access log: %w", err)
	}
	return file, nil
}
