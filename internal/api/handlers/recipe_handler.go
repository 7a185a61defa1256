package handlers

import (
	"mime/multipart"
	"strings"

	"Recipe-Share-Backend/domain"
	"Recipe-Share-Backend/internal/api/presenters"
	"Recipe-Share-Backend/pkg/recipe"

	"github.com/gofiber/fiber/v2"
)

type (
	RecipeHandler interface {
		CreateRecipe(c *fiber.Ctx) error
		GetRecipes(c *fiber.Ctx) error
		SearchRecipes(c *fiber.Ctx) error
		GetAllRecipes(c *fiber.Ctx) error
		GetRecipeDetail(c *fiber.Ctx) error
		GetUserRecipes(c *fiber.Ctx) error
		DeleteRecipe(c *fiber.Ctx) error
		AddRecipeImages(c *fiber.Ctx) error
		GetRecipeImages(c *fiber.Ctx) error
	}

	recipeHandler struct {
		recipeService recipe.RecipeService
	}
)

// Recipe payloads are validated by the service after trimming, so the handler only parses.
func NewRecipeHandler(recipeService recipe.RecipeService) RecipeHandler {
	return &recipeHandler{
		recipeService: recipeService,
	}
}

func isMultipart(c *fiber.Ctx) bool {
	return strings.HasPrefix(string(c.Request().Header.ContentType()), fiber.MIMEMultipartForm)
}

func formImages(c *fiber.Ctx) ([]*multipart.FileHeader, error) {
	if !isMultipart(c) {
		return nil, nil
	}
	form, err := c.MultipartForm()
	if err != nil {
		return nil, err
	}
	return form.File["images"], nil
}

func (h *recipeHandler) CreateRecipe(c *fiber.Ctx) error {
	req := new(domain.CreateRecipeRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	images, err := formImages(c)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	req.Images = images

	res, err := h.recipeService.CreateRecipe(c.UserContext(), *req, currentUser(c))
	if err != nil {
		return presenters.HandleError(c, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusCreated)
}

func (h *recipeHandler) listRecipes(c *fiber.Ctx, filter domain.RecipeFilter) error {
	res, err := h.recipeService.ListRecipes(c.UserContext(), filter, currentUser(c))
	if err != nil {
		return presenters.HandleError(c, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK)
}

func (h *recipeHandler) GetRecipes(c *fiber.Ctx) error {
	return h.listRecipes(c, domain.RecipeFilter{Category: c.Query("category")})
}

func (h *recipeHandler) SearchRecipes(c *fiber.Ctx) error {
	return h.listRecipes(c, domain.RecipeFilter{SearchText: c.Query("q")})
}

func (h *recipeHandler) GetAllRecipes(c *fiber.Ctx) error {
	return h.listRecipes(c, domain.RecipeFilter{})
}

func (h *recipeHandler) GetRecipeDetail(c *fiber.Ctx) error {
	res, err := h.recipeService.GetRecipe(c.UserContext(), c.Params("id"), currentUser(c))
	if err != nil {
		return presenters.HandleError(c, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK)
}

func (h *recipeHandler) GetUserRecipes(c *fiber.Ctx) error {
	res, err := h.recipeService.ListUserRecipes(c.UserContext(), c.Params("id"), currentUser(c))
	if err != nil {
		return presenters.HandleError(c, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK)
}

func (h *recipeHandler) DeleteRecipe(c *fiber.Ctx) error {
	if err := h.recipeService.DeleteRecipe(c.UserContext(), c.Params("id"), currentUser(c)); err != nil {
		return presenters.HandleError(c, err)
	}
	return presenters.MessageResponse(c, domain.MessageSuccessDeleteRecipe, fiber.StatusOK)
}

func (h *recipeHandler) AddRecipeImages(c *fiber.Ctx) error {
	req := new(domain.AddRecipeImagesRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	images, err := formImages(c)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	req.Images = images

	res, err := h.recipeService.AddRecipeImages(c.UserContext(), c.Params("id"), *req, currentUser(c))
	if err != nil {
		return presenters.HandleError(c, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusCreated)
}

func (h *recipeHandler) GetRecipeImages(c *fiber.Ctx) error {
	res, err := h.recipeService.ListRecipeImages(c.UserContext())
	if err != nil {
		return presenters.HandleError(c, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK)
}
