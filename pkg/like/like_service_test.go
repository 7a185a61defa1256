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
)

func TestToggleLikeTwiceRestoresState(t *testing.T) {
	store := testutil.NewStore()
	service := NewLikeService(store)
	alice := store.AddUser("alice")
	bob := store.AddUser("bob")
	recipe := store.AddRecipe(bob, "Brownies", "chocolate", nil)

	first, err := service.ToggleLike(context.Background(), alice, recipe.ID.String())
	require.NoError(t, err)
	assert.Equal(t, domain.LikeResponse{
		Message: domain.MessageLikeAdded, Liked: true, Likes: 1, LikedByCurrentUser: true,
	}, first)

	second, err := service.ToggleLike(context.Background(), alice, recipe.ID.String())
	require.NoError(t, err)
	assert.Equal(t, domain.LikeResponse{
		Message: domain.MessageLikeRemoved, Liked: false, Likes: 0, LikedByCurrentUser: false,
	}, second)

	assert.Equal(t, 0, store.LikeCount(recipe.ID))
}

// alice likes a recipe, bob likes it too, alice takes her like back.
func TestToggleLikeTwoUsers(t *testing.T) {
	store := testutil.NewStore()
	service := NewLikeService(store)
	alice := store.AddUser("alice")
	bob := store.AddUser("bob")
	recipe := store.AddRecipe(alice, "Tarta de espinaca", "espinaca", nil)
	id := recipe.ID.String()

	res, err := service.ToggleLike(context.Background(), alice, id)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Likes)

	res, err = service.ToggleLike(context.Background(), bob, id)
	require.NoError(t, err)
	assert.True(t, res.Liked)
	assert.Equal(t, 2, res.Likes)

	res, err = service.ToggleLike(context.Background(), alice, id)
	require.NoError(t, err)
	assert.False(t, res.Liked)
	assert.Equal(t, 1, res.Likes)

	liked, err := store.IsLiked(context.Background(), bob.ID, recipe.ID)
	require.NoError(t, err)
	assert.True(t, liked)
}

func TestToggleLikeErrors(t *testing.T) {
	store := testutil.NewStore()
	service := NewLikeService(store)
	alice := store.AddUser("alice")

	_, err := service.ToggleLike(context.Background(), alice, uuid.NewString())
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = service.ToggleLike(context.Background(), alice, "12")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = service.ToggleLike(context.Background(), nil, uuid.NewString())
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	recipe := store.AddRecipe(alice, "Brownies", "chocolate", nil)
	ghost := &entities.User{ID: uuid.New(), Username: "ghost"}
	_, err = service.ToggleLike(context.Background(), ghost, recipe.ID.String())
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	assert.Equal(t, 0, store.Counter(recipe.ID))
}

func TestConcurrentTogglesKeepCounterInSync(t *testing.T) {
	store := testutil.NewStore()
	service := NewLikeService(store)
	owner := store.AddUser("owner")
	recipe := store.AddRecipe(owner, "Pizza casera", "harina", nil)

	const users = 20
	const togglesEach = 3
	var likers []*entities.User
	for i := 0; i < users; i++ {
		likers = append(likers, store.AddUser(fmt.Sprintf("user%d", i)))
	}

	var wg sync.WaitGroup
	for _, u := range likers {
		wg.Add(1)
		go func(u *entities.User) {
			defer wg.Done()
			for i := 0; i < togglesEach; i++ {
				_, err := service.ToggleLike(context.Background(), u, recipe.ID.String())
				assert.NoError(t, err)
			}
		}(u)
	}
	wg.Wait()

	// an odd number of toggles leaves every user liking the recipe
	assert.Equal(t, users, store.LikeCount(recipe.ID))
	assert.Equal(t, store.LikeCount(recipe.ID), store.Counter(recipe.ID))
}

func TestRecountLikes(t *testing.T) {
	store := testutil.NewStore()
	service := NewLikeService(store)
	alice := store.AddUser("alice")
	recipe := store.AddRecipe(alice, "Brownies", "chocolate", nil)
	other := store.AddRecipe(alice, "Empanadas", "carne", nil)
	_, err := service.ToggleLike(context.Background(), alice, recipe.ID.String())
	require.NoError(t, err)

	store.SetCounter(recipe.ID, 7)
	store.SetCounter(other.ID, 3)

	fixed, err := service.RecountLikes(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(2), fixed)
	assert.Equal(t, 1, store.Counter(recipe.ID))
	assert.Equal(t, 0, store.Counter(other.ID))
}
