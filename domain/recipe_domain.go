package domain

import (
	"mime/multipart"
)

var (
	MessageSuccessGetRecipes      = "success get recipes"
	MessageSuccessGetRecipeDetail = "success get recipe detail"
	MessageSuccessCreateRecipe    = "recipe created successfully"
	MessageSuccessDeleteRecipe    = "recipe deleted successfully"
	MessageSuccessAddImages       = "recipe images added successfully"

	MessageFailedGetRecipes      = "failed to get recipes"
	MessageFailedGetRecipeDetail = "failed to get recipe detail"
	MessageFailedCreateRecipe    = "failed to create recipe"
	MessageFailedDeleteRecipe    = "failed to delete recipe"
	MessageFailedAddImages       = "failed to add recipe images"

	// RecipeCategories is the closed set accepted on recipe creation.
	RecipeCategories = []string{"Desayuno", "Almuerzo", "Cena", "Postre", "Snack"}
)

const RecipeImageFolder = "recipes"

type (
	CreateRecipeRequest struct {
		Title        string  `json:"title" form:"title" validate:"required,min=3,max=40"`
		Description  string  `json:"description" form:"description" validate:"max=140"`
		Ingredients  string  `json:"ingredients" form:"ingredients" validate:"required,min=1,max=50"`
		Instructions string  `json:"instructions" form:"instructions" validate:"max=1400"`
		Category     *string `json:"category" form:"category" validate:"omitempty,oneof=Desayuno Almuerzo Cena Postre Snack"`

		ImageURLs []string                `json:"image_urls" form:"image_urls" validate:"omitempty,max=10,dive,url"`
		Images    []*multipart.FileHeader `json:"-" form:"-" validate:"omitempty,max=10"`
	}

	AddRecipeImagesRequest struct {
		ImageURLs []string                `json:"image_urls" form:"image_urls" validate:"omitempty,max=10,dive,url"`
		Images    []*multipart.FileHeader `json:"-" form:"-" validate:"omitempty,max=10"`
	}

	RecipeFilter struct {
		Category   string
		SearchText string
	}

	RecipeImage struct {
		ID       string `json:"id"`
		ImageURL string `json:"image_url"`
	}

	Recipe struct {
		ID                 string        `json:"id"`
		Title              string        `json:"title"`
		Description        string        `json:"description"`
		Ingredients        string        `json:"ingredients"`
		Instructions       string        `json:"instructions"`
		UserID             string        `json:"user_id"`
		Category           *string       `json:"category"`
		Images             []RecipeImage `json:"images"`
		User               UserPublic    `json:"user"`
		Likes              int           `json:"likes"`
		LikedByCurrentUser bool          `json:"liked_by_current_user"`
	}
)
