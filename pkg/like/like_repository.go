package like

import (
	"context"

	"Recipe-Share-Backend/domain"
	"Recipe-Share-Backend/entities"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type (
	LikeRepository interface {
		ToggleLike(ctx context.Context, userID uuid.UUID, recipeID uuid.UUID) (domain.LikeState, error)
		IsLiked(ctx context.Context, userID uuid.UUID, recipeID uuid.UUID) (bool, error)
		// LikedRecipeIDs reports which of recipeIDs userID has liked.
		LikedRecipeIDs(ctx context.Context, userID uuid.UUID, recipeIDs []uuid.UUID) (map[uuid.UUID]bool, error)
		// RecountLikes rewrites every counter that disagrees with recipe_likes and returns how
		// many recipes were fixed.
		RecountLikes(ctx context.Context) (int64, error)
	}

	likeRepository struct {
		db *gorm.DB
	}
)

func NewLikeRepository(db *gorm.DB) LikeRepository {
	return &likeRepository{db: db}
}

// ToggleLike flips the (user, recipe) pair and moves the counter with it. Locks are taken
// user first (shared) then recipe (exclusive), the same order user deletion uses.
func (r *likeRepository) ToggleLike(ctx context.Context, userID uuid.UUID, recipeID uuid.UUID) (domain.LikeState, error) {
	var state domain.LikeState
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var user entities.User
		if err := tx.Clauses(clause.Locking{Strength: "SHARE"}).
			Select("id").
			Where("id = ?", userID).
			First(&user).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrUnauthorized
			}
			return errors.Wrap(err, "lock user")
		}

		var recipe entities.Recipe
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Select("id", "likes").
			Where("id = ?", recipeID).
			First(&recipe).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrRecipeNotFound
			}
			return errors.Wrap(err, "lock recipe")
		}

		res := tx.Where("user_id = ? AND recipe_id = ?", userID, recipeID).Delete(&entities.RecipeLike{})
		if res.Error != nil {
			return errors.Wrap(res.Error, "delete like")
		}

		delta := -1
		if res.RowsAffected == 0 {
			if err := tx.Create(&entities.RecipeLike{UserID: userID, RecipeID: recipeID}).Error; err != nil {
				return errors.Wrap(err, "create like")
			}
			delta = 1
		}

		if err := tx.Model(&entities.Recipe{}).
			Where("id = ?", recipeID).
			UpdateColumn("likes", gorm.Expr("likes + ?", delta)).Error; err != nil {
			return errors.Wrap(err, "update like counter")
		}

		state = domain.LikeState{Liked: delta > 0, Likes: recipe.Likes + delta}
		return nil
	})
	if err != nil {
		return domain.LikeState{}, err
	}
	return state, nil
}

func (r *likeRepository) IsLiked(ctx context.Context, userID uuid.UUID, recipeID uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&entities.RecipeLike{}).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Count(&count).Error; err != nil {
		return false, errors.Wrap(err, "check like")
	}
	return count > 0, nil
}

func (r *likeRepository) LikedRecipeIDs(ctx context.Context, userID uuid.UUID, recipeIDs []uuid.UUID) (map[uuid.UUID]bool, error) {
	liked := make(map[uuid.UUID]bool)
	if len(recipeIDs) == 0 {
		return liked, nil
	}
	var ids []uuid.UUID
	if err := r.db.WithContext(ctx).
		Model(&entities.RecipeLike{}).
		Where("user_id = ? AND recipe_id IN ?", userID, recipeIDs).
		Pluck("recipe_id", &ids).Error; err != nil {
		return nil, errors.Wrap(err, "list liked recipes")
	}
	for _, id := range ids {
		liked[id] = true
	}
	return liked, nil
}

func (r *likeRepository) RecountLikes(ctx context.Context) (int64, error) {
	var fixed int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// EXCLUSIVE still allows plain reads but waits for in-flight toggles, which hold
		// recipe row locks, and keeps new ones out until commit.
		if err := tx.Exec("LOCK TABLE recipes IN EXCLUSIVE MODE").Error; err != nil {
			return errors.Wrap(err, "lock recipes")
		}
		res := tx.Exec(`UPDATE recipes SET likes = counted.n
FROM (
	SELECT r.id, COUNT(l.recipe_id) AS n
	FROM recipes r LEFT JOIN recipe_likes l ON l.recipe_id = r.id
	GROUP BY r.id
) AS counted
WHERE recipes.id = counted.id AND recipes.likes <> counted.n`)
		if res.Error != nil {
			return errors.Wrap(res.Error, "recount likes")
		}
		fixed = res.RowsAffected
		return nil
	})
	if err != nil {
		return 0, err
	}
	return fixed, nil
}
