//go:build integration

package like

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"Recipe-Share-Backend/domain"
	"Recipe-Share-Backend/entities"
	"Recipe-Share-Backend/internal/testutil"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func createUser(t *testing.T, db *gorm.DB, username string) *entities.User {
	t.Helper()
	u := &entities.User{
		ID:             uuid.New(),
		Username:       username,
		Email:          username + "@example.com",
		HashedPassword: "-",
		ProfileImage:   "p.png",
	}
	require.NoError(t, db.Create(u).Error)
	return u
}

func createRecipe(t *testing.T, db *gorm.DB, owner *entities.User, title string) *entities.Recipe {
	t.Helper()
	r := &entities.Recipe{ID: uuid.New(), UserID: owner.ID, Title: title, Ingredients: "x"}
	require.NoError(t, db.Omit("User").Create(r).Error)
	return r
}

func storedState(t *testing.T, db *gorm.DB, recipeID uuid.UUID) (counter int, pairs int64) {
	t.Helper()
	var r entities.Recipe
	require.NoError(t, db.Where("id = ?", recipeID).First(&r).Error)
	require.NoError(t, db.Model(&entities.RecipeLike{}).Where("recipe_id = ?", recipeID).Count(&pairs).Error)
	return r.Likes, pairs
}

func TestLikeRepositoryPostgres(t *testing.T) {
	db := testutil.NewPostgres(t)
	repo := NewLikeRepository(db)
	ctx := context.Background()

	owner := createUser(t, db, "owner")

	t.Run("double toggle", func(t *testing.T) {
		alice := createUser(t, db, "alice")
		recipe := createRecipe(t, db, owner, "Brownies")

		state, err := repo.ToggleLike(ctx, alice.ID, recipe.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.LikeState{Liked: true, Likes: 1}, state)

		liked, err := repo.IsLiked(ctx, alice.ID, recipe.ID)
		require.NoError(t, err)
		assert.True(t, liked)

		state, err = repo.ToggleLike(ctx, alice.ID, recipe.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.LikeState{Liked: false, Likes: 0}, state)

		counter, pairs := storedState(t, db, recipe.ID)
		assert.Equal(t, 0, counter)
		assert.Equal(t, int64(0), pairs)
	})

	t.Run("missing recipe and user", func(t *testing.T) {
		alice := createUser(t, db, "alice2")
		_, err := repo.ToggleLike(ctx, alice.ID, uuid.New())
		assert.ErrorIs(t, err, domain.ErrRecipeNotFound)

		recipe := createRecipe(t, db, owner, "Empanadas")
		_, err = repo.ToggleLike(ctx, uuid.New(), recipe.ID)
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	})

	t.Run("concurrent toggles", func(t *testing.T) {
		recipe := createRecipe(t, db, owner, "Pizza casera")
		const users = 16
		const togglesEach = 5

		likers := make([]*entities.User, 0, users)
		for i := 0; i < users; i++ {
			likers = append(likers, createUser(t, db, fmt.Sprintf("liker%d", i)))
		}

		var wg sync.WaitGroup
		for _, u := range likers {
			wg.Add(1)
			go func(u *entities.User) {
				defer wg.Done()
				for i := 0; i < togglesEach; i++ {
					_, err := repo.ToggleLike(ctx, u.ID, recipe.ID)
					assert.NoError(t, err)
				}
			}(u)
		}
		wg.Wait()

		counter, pairs := storedState(t, db, recipe.ID)
		assert.Equal(t, int64(users), pairs)
		assert.Equal(t, int(pairs), counter)

		ids := []uuid.UUID{recipe.ID, uuid.New()}
		liked, err := repo.LikedRecipeIDs(ctx, likers[0].ID, ids)
		require.NoError(t, err)
		assert.Equal(t, map[uuid.UUID]bool{recipe.ID: true}, liked)
	})

	t.Run("recount", func(t *testing.T) {
		recipe := createRecipe(t, db, owner, "Arroz con leche")
		alice := createUser(t, db, "alice3")
		_, err := repo.ToggleLike(ctx, alice.ID, recipe.ID)
		require.NoError(t, err)
		require.NoError(t, db.Model(&entities.Recipe{}).Where("id = ?", recipe.ID).UpdateColumn("likes", 9).Error)

		fixed, err := repo.RecountLikes(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(1), fixed)

		counter, _ := storedState(t, db, recipe.ID)
		assert.Equal(t, 1, counter)
	})

	t.Run("counter cannot go negative", func(t *testing.T) {
		recipe := createRecipe(t, db, owner, "Fideos con salsa")
		err := db.Model(&entities.Recipe{}).Where("id = ?", recipe.ID).UpdateColumn("likes", -1).Error
		assert.Error(t, err)
	})
}
