//go:build integration

package recipe

import (
	"context"
	"testing"

	"Recipe-Share-Backend/domain"
	"Recipe-Share-Backend/entities"
	"Recipe-Share-Backend/internal/testutil"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecipeRepositoryPostgres(t *testing.T) {
	db := testutil.NewPostgres(t)
	repo := NewRecipeRepository(db)
	ctx := context.Background()

	alice := &entities.User{ID: uuid.New(), Username: "alice", Email: "alice@example.com", HashedPassword: "-", ProfileImage: "p"}
	bob := &entities.User{ID: uuid.New(), Username: "bob", Email: "bob@example.com", HashedPassword: "-", ProfileImage: "p"}
	require.NoError(t, db.Create(alice).Error)
	require.NoError(t, db.Create(bob).Error)

	create := func(owner *entities.User, title, ingredients, category string) *entities.Recipe {
		t.Helper()
		r := &entities.Recipe{
			ID: uuid.New(), UserID: owner.ID, Title: title, Ingredients: ingredients, Category: &category,
			Images: []*entities.RecipeImage{{ID: uuid.New(), ImageURL: "https://images.test/" + title + ".png"}},
		}
		require.NoError(t, repo.CreateRecipe(ctx, r))
		return r
	}

	sopa := create(alice, "Sopa De Lentejas", "lentejas, zanahoria, cebolla", "Salado")
	create(bob, "Brownies", "chocolate, azúcar", "Dulce")
	create(bob, "Descuento 100%", "promo_especial", "Snack")

	t.Run("get with details", func(t *testing.T) {
		got, err := repo.GetRecipeByID(ctx, sopa.ID)
		require.NoError(t, err)
		require.NotNil(t, got.User)
		assert.Equal(t, "alice", got.User.Username)
		assert.Len(t, got.Images, 1)

		_, err = repo.GetRecipeByID(ctx, uuid.New())
		assert.ErrorIs(t, err, domain.ErrRecipeNotFound)
	})

	t.Run("search is case insensitive on title or ingredients", func(t *testing.T) {
		found, err := repo.GetRecipes(ctx, domain.RecipeFilter{SearchText: "LENTEJAS"})
		require.NoError(t, err)
		require.Len(t, found, 1)
		assert.Equal(t, sopa.ID, found[0].ID)

		found, err = repo.GetRecipes(ctx, domain.RecipeFilter{SearchText: "azúcar"})
		require.NoError(t, err)
		assert.Len(t, found, 1)
	})

	t.Run("search escapes wildcards", func(t *testing.T) {
		found, err := repo.GetRecipes(ctx, domain.RecipeFilter{SearchText: "%"})
		require.NoError(t, err)
		require.Len(t, found, 1)
		assert.Equal(t, "Descuento 100%", found[0].Title)

		found, err = repo.GetRecipes(ctx, domain.RecipeFilter{SearchText: "_"})
		require.NoError(t, err)
		assert.Len(t, found, 1)
	})

	t.Run("category and ordering", func(t *testing.T) {
		found, err := repo.GetRecipes(ctx, domain.RecipeFilter{Category: "Dulce"})
		require.NoError(t, err)
		require.Len(t, found, 1)
		assert.Equal(t, "Brownies", found[0].Title)

		all, err := repo.GetRecipes(ctx, domain.RecipeFilter{})
		require.NoError(t, err)
		require.Len(t, all, 3)
		for i := 1; i < len(all); i++ {
			assert.False(t, all[i].CreatedAt.After(all[i-1].CreatedAt))
		}

		mine, err := repo.GetRecipesByUser(ctx, alice.ID)
		require.NoError(t, err)
		assert.Len(t, mine, 1)
	})

	t.Run("create for a vanished owner", func(t *testing.T) {
		err := repo.CreateRecipe(ctx, &entities.Recipe{ID: uuid.New(), UserID: uuid.New(), Title: "Pan", Ingredients: "harina"})
		assert.ErrorIs(t, err, domain.ErrUserNotFound)
	})

	t.Run("owner only mutations", func(t *testing.T) {
		err := repo.AddRecipeImages(ctx, sopa.ID, bob.ID, []*entities.RecipeImage{{ID: uuid.New(), ImageURL: "https://x.test/y.png"}})
		assert.ErrorIs(t, err, domain.ErrNotFoundOrForbidden)

		require.NoError(t, repo.AddRecipeImages(ctx, sopa.ID, alice.ID, []*entities.RecipeImage{{ID: uuid.New(), ImageURL: "https://x.test/z.png"}}))

		_, err = repo.DeleteRecipe(ctx, sopa.ID, bob.ID)
		assert.ErrorIs(t, err, domain.ErrNotFoundOrForbidden)

		require.NoError(t, db.Create(&entities.RecipeLike{UserID: bob.ID, RecipeID: sopa.ID}).Error)
		imageURLs, err := repo.DeleteRecipe(ctx, sopa.ID, alice.ID)
		require.NoError(t, err)
		assert.Len(t, imageURLs, 2)

		var likes int64
		require.NoError(t, db.Model(&entities.RecipeLike{}).Where("recipe_id = ?", sopa.ID).Count(&likes).Error)
		assert.Zero(t, likes)

		images, err := repo.GetRecipeImages(ctx)
		require.NoError(t, err)
		assert.Len(t, images, 2)
	})
}
