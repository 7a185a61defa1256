package user

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
	UserRepository interface {
		CreateUser(ctx context.Context, user *entities.User) error
		GetUserByID(ctx context.Context, id uuid.UUID) (*entities.User, error)
		GetUserByUsername(ctx context.Context, username string) (*entities.User, error)
		// DeleteUser removes the user with everything they own and returns the image URLs of
		// the deleted recipes so the caller can clean up object storage.
		DeleteUser(ctx context.Context, id uuid.UUID) ([]string, error)
	}

	userRepository struct {
		db *gorm.DB
	}
)

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) CreateUser(ctx context.Context, user *entities.User) error {
	err := r.db.WithContext(ctx).Create(user).Error
	if err == nil {
		return nil
	}
	if constraint, ok := utils.UniqueViolation(err); ok {
		switch {
		case strings.Contains(constraint, "email"):
			return domain.ErrEmailTaken
		case strings.Contains(constraint, "username"):
			return domain.ErrUsernameTaken
		default:
			return domain.ErrConflict
		}
	}
	return errors.Wrap(err, "create user")
}

func (r *userRepository) GetUserByID(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	var user entities.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, errors.Wrap(err, "get user by id")
	}
	return &user, nil
}

func (r *userRepository) GetUserByUsername(ctx context.Context, username string) (*entities.User, error) {
	var user entities.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, errors.Wrap(err, "get user by username")
	}
	return &user, nil
}

func (r *userRepository) DeleteUser(ctx context.Context, id uuid.UUID) ([]string, error) {
	var imageURLs []string
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// The exclusive lock waits for this user's in-flight like toggles (they hold a
		// share lock on the user row) and keeps new ones out until commit.
		var user entities.User
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", id).
			First(&user).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrUserNotFound
			}
			return errors.Wrap(err, "lock user")
		}

		likedByUser := func() *gorm.DB {
			return tx.Model(&entities.RecipeLike{}).Select("recipe_id").Where("user_id = ?", id)
		}
		ownedByUser := func() *gorm.DB {
			return tx.Model(&entities.Recipe{}).Select("id").Where("user_id = ?", id)
		}

		// Likes on other users' recipes go away, so their counters drop by one.
		if err := tx.Model(&entities.Recipe{}).
			Where("user_id <> ? AND id IN (?)", id, likedByUser()).
			UpdateColumn("likes", gorm.Expr("likes - 1")).Error; err != nil {
			return errors.Wrap(err, "decrement liked recipes")
		}
		if err := tx.Where("user_id = ?", id).Delete(&entities.RecipeLike{}).Error; err != nil {
			return errors.Wrap(err, "delete user likes")
		}

		if err := tx.Model(&entities.RecipeImage{}).
			Where("recipe_id IN (?)", ownedByUser()).
			Pluck("image_url", &imageURLs).Error; err != nil {
			return errors.Wrap(err, "collect recipe images")
		}
		if err := tx.Where("recipe_id IN (?)", ownedByUser()).Delete(&entities.RecipeLike{}).Error; err != nil {
			return errors.Wrap(err, "delete likes on owned recipes")
		}
		if err := tx.Where("recipe_id IN (?)", ownedByUser()).Delete(&entities.RecipeImage{}).Error; err != nil {
			return errors.Wrap(err, "delete recipe images")
		}
		if err := tx.Where("user_id = ?", id).Delete(&entities.Recipe{}).Error; err != nil {
			return errors.Wrap(err, "delete recipes")
		}
		if err := tx.Delete(&user).Error; err != nil {
			return errors.Wrap(err, "delete user")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return imageURLs, nil
}
