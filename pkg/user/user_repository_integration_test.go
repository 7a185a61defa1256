//go:build integration

package user

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

func newUser(username, email string) *entities.User {
	return &entities.User{
		ID:             uuid.New(),
		Username:       username,
		Email:          email,
		HashedPassword: "-",
		ProfileImage:   "p.png",
	}
}

func TestUserRepositoryPostgres(t *testing.T) {
	db := testutil.NewPostgres(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	alice := newUser("alice", "alice@example.com")
	require.NoError(t, repo.CreateUser(ctx, alice))

	t.Run("unique username", func(t *testing.T) {
		err := repo.CreateUser(ctx, newUser("alice", "other@example.com"))
		assert.ErrorIs(t, err, domain.ErrUsernameTaken)
		assert.ErrorIs(t, err, domain.ErrConflict)
	})

	t.Run("unique email", func(t *testing.T) {
		err := repo.CreateUser(ctx, newUser("alice2", "alice@example.com"))
		assert.ErrorIs(t, err, domain.ErrEmailTaken)
	})

	t.Run("lookups", func(t *testing.T) {
		byName, err := repo.GetUserByUsername(ctx, "alice")
		require.NoError(t, err)
		assert.Equal(t, alice.ID, byName.ID)

		byID, err := repo.GetUserByID(ctx, alice.ID)
		require.NoError(t, err)
		assert.Equal(t, "alice@example.com", byID.Email)

		_, err = repo.GetUserByUsername(ctx, "nobody")
		assert.ErrorIs(t, err, domain.ErrUserNotFound)
	})

	t.Run("delete cascades", func(t *testing.T) {
		carol := newUser("carol", "carol@example.com")
		dave := newUser("dave", "dave@example.com")
		require.NoError(t, repo.CreateUser(ctx, carol))
		require.NoError(t, repo.CreateUser(ctx, dave))

		owned := &entities.Recipe{
			ID: uuid.New(), UserID: carol.ID, Title: "Brownies", Ingredients: "chocolate",
			Images: []*entities.RecipeImage{{ID: uuid.New(), ImageURL: "https://images.test/b.png"}},
		}
		foreign := &entities.Recipe{ID: uuid.New(), UserID: dave.ID, Title: "Empanadas", Ingredients: "carne", Likes: 1}
		require.NoError(t, db.Omit("User").Create(owned).Error)
		require.NoError(t, db.Omit("User").Create(foreign).Error)
		require.NoError(t, db.Create(&entities.RecipeLike{UserID: carol.ID, RecipeID: foreign.ID}).Error)
		require.NoError(t, db.Create(&entities.RecipeLike{UserID: dave.ID, RecipeID: owned.ID}).Error)

		imageURLs, err := repo.DeleteUser(ctx, carol.ID)
		require.NoError(t, err)
		assert.Equal(t, []string{"https://images.test/b.png"}, imageURLs)

		var count int64
		require.NoError(t, db.Model(&entities.Recipe{}).Where("user_id = ?", carol.ID).Count(&count).Error)
		assert.Zero(t, count)
		require.NoError(t, db.Model(&entities.RecipeImage{}).Where("recipe_id = ?", owned.ID).Count(&count).Error)
		assert.Zero(t, count)
		require.NoError(t, db.Model(&entities.RecipeLike{}).Where("user_id = ? OR recipe_id = ?", carol.ID, owned.ID).Count(&count).Error)
		assert.Zero(t, count)

		var stillThere entities.Recipe
		require.NoError(t, db.Where("id = ?", foreign.ID).First(&stillThere).Error)
		assert.Equal(t, 0, stillThere.Likes)

		_, err = repo.DeleteUser(ctx, carol.ID)
		assert.ErrorIs(t, err, domain.ErrUserNotFound)
	})
}
