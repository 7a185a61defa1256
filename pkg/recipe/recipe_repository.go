package recipe

import (
	"context"
	"strings"

	"Recipe-Share-Backend/domain"
	"Recipe-Share-Backend/entities"
	"Recipe-Share-Backend/internal/utils"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type (
	RecipeRepository interface {
		// CreateRecipe inserts the recipe and its images in one transaction.
		CreateRecipe(ctx context.Context, recipe *entities.Recipe) error
		GetRecipeByID(ctx context.Context, id uuid.UUID) (*entities.Recipe, error)
		GetRecipes(ctx context.Context, filter domain.RecipeFilter) ([]*entities.Recipe, error)
		GetRecipesByUser(ctx context.Context, userID uuid.UUID) ([]*entities.Recipe, error)
		// DeleteRecipe deletes the recipe owned by ownerID and returns its image URLs.
		DeleteRecipe(ctx context.Context, id uuid.UUID, ownerID uuid.UUID) ([]string, error)
		AddRecipeImages(ctx context.Context, id uuid.UUID, ownerID uuid.UUID, images []*entities.RecipeImage) error
		GetRecipeImages(ctx context.Context) ([]*entities.RecipeImage, error)
	}

	recipeRepository struct {
		db *gorm.DB
	}
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func NewRecipeRepository(db *gorm.DB) RecipeRepository {
	return &recipeRepository{db: db}
}

func (r *recipeRepository) CreateRecipe(ctx context.Context, recipe *entities.Recipe) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Omit("User").Create(recipe).Error
	})
	if err == nil {
		return nil
	}
	if utils.ForeignKeyViolation(err) {
		return domain.ErrUserNotFound
	}
	return errors.Wrap(err, "create recipe")
}

func (r *recipeRepository) withDetails(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at asc")
		}).
		Preload("User")
}

func (r *recipeRepository) GetRecipeByID(ctx context.Context, id uuid.UUID) (*entities.Recipe, error) {
	var recipe entities.Recipe
	if err := r.withDetails(r.db.WithContext(ctx)).Where("id = ?", id).First(&recipe).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrRecipeNotFound
		}
		return nil, errors.Wrap(err, "get recipe by id")
	}
	return &recipe, nil
}

func (r *recipeRepository) GetRecipes(ctx context.Context, filter domain.RecipeFilter) ([]*entities.Recipe, error) {
	query := r.withDetails(r.db.WithContext(ctx).Model(&entities.Recipe{}))
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.SearchText != "" {
		pattern := "%" + likeEscaper.Replace(filter.SearchText) + "%"
		query = query.Where("(title ILIKE ? OR ingredients ILIKE ?)", pattern, pattern)
	}

	var recipes []*entities.Recipe
	if err := query.Order("created_at desc").Order("id").Find(&recipes).Error; err != nil {
		return nil, errors.Wrap(err, "list recipes")
	}
	return recipes, nil
}

func (r *recipeRepository) GetRecipesByUser(ctx context.Context, userID uuid.UUID) ([]*entities.Recipe, error) {
	var recipes []*entities.Recipe
	if err := r.withDetails(r.db.WithContext(ctx)).
		Where("user_id = ?", userID).
		Order("created_at desc").
		Order("id").
		Find(&recipes).Error; err != nil {
		return nil, errors.Wrap(err, "list user recipes")
	}
	return recipes, nil
}

// lockOwned locks the recipe row only when ownerID owns it, so a missing recipe and a
// foreign one look the same to the caller.
func lockOwned(tx *gorm.DB, id uuid.UUID, ownerID uuid.UUID) (*entities.Recipe, error) {
	var recipe entities.Recipe
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ? AND user_id = ?", id, ownerID).
		First(&recipe).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFoundOrForbidden
		}
		return nil, errors.Wrap(err, "lock recipe")
	}
	return &recipe, nil
}

func (r *recipeRepository) DeleteRecipe(ctx context.Context, id uuid.UUID, ownerID uuid.UUID) ([]string, error) {
	var imageURLs []string
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		recipe, err := lockOwned(tx, id, ownerID)
		if err != nil {
			return err
		}
		if err := tx.Model(&entities.RecipeImage{}).
			Where("recipe_id = ?", recipe.ID).
			Pluck("image_url", &imageURLs).Error; err != nil {
			return errors.Wrap(err, "collect recipe images")
		}
		if err := tx.Where("recipe_id = ?", recipe.ID).Delete(&entities.RecipeLike{}).Error; err != nil {
			return errors.Wrap(err, "delete recipe likes")
		}
		if err := tx.Where("recipe_id = ?", recipe.ID).Delete(&entities.RecipeImage{}).Error; err != nil {
			return errors.Wrap(err, "delete recipe images")
		}
		if err := tx.Delete(recipe).Error; err != nil {
			return errors.Wrap(err, "delete recipe")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return imageURLs, nil
}

func (r *recipeRepository) AddRecipeImages(ctx context.Context, id uuid.UUID, ownerID uuid.UUID, images []*entities.RecipeImage) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		recipe, err := lockOwned(tx, id, ownerID)
		if err != nil {
			return err
		}
		if len(images) == 0 {
			return nil
		}
		for _, image := range images {
			image.RecipeID = recipe.ID
		}
		if err := tx.Omit("Recipe").Create(&images).Error; err != nil {
			return errors.Wrap(err, "create recipe images")
		}
		return nil
	})
}

func (r *recipeRepository) GetRecipeImages(ctx context.Context) ([]*entities.RecipeImage, error) {
	var images []*entities.RecipeImage
	if err := r.db.WithContext(ctx).Order("created_at asc").Find(&images).Error; err != nil {
		return nil, errors.Wrap(err, "list recipe images")
	}
	return images, nil
}
