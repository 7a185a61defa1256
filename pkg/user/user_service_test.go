package user

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"Recipe-Share-Backend/domain"
	"Recipe-Share-Backend/entities"
	"Recipe-Share-Backend/internal/testutil"
	"Recipe-Share-Backend/pkg/jwt"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type userFixture struct {
	service    UserService
	store      *testutil.Store
	storage    *testutil.Storage
	mailer     *testutil.Mailer
	jwtService jwt.JWTService
}

func newUserFixture(t *testing.T) userFixture {
	t.Helper()
	jwtService, err := jwt.NewJWTService("test-secret", "RECIPE-SHARE", time.Minute)
	require.NoError(t, err)
	f := userFixture{
		store:      testutil.NewStore(),
		storage:    testutil.NewStorage(),
		mailer:     &testutil.Mailer{},
		jwtService: jwtService,
	}
	f.service = NewUserService(f.store, jwtService, f.storage, f.mailer)
	return f
}

func (f userFixture) register(t *testing.T, username, password string) domain.UserResponse {
	t.Helper()
	res, err := f.service.Register(context.Background(), domain.CreateUserRequest{
		Username: username,
		Email:    username + "@example.com",
		Password: password,
	})
	require.NoError(t, err)
	return res
}

func TestRegister(t *testing.T) {
	f := newUserFixture(t)

	res := f.register(t, "alice", "alice123")

	assert.Equal(t, "alice", res.Username)
	assert.Equal(t, "alice@example.com", res.Email)
	assert.NotEmpty(t, res.ProfileImage)
	_, err := uuid.Parse(res.ID)
	assert.NoError(t, err)

	stored, err := f.store.GetUserByUsername(context.Background(), "alice")
	require.NoError(t, err)
	assert.NotEqual(t, "alice123", stored.HashedPassword)

	require.Len(t, f.mailer.Sent, 1)
	assert.Equal(t, "alice@example.com", f.mailer.Sent[0].To)
	assert.Contains(t, f.mailer.Sent[0].Body, "alice")
}

func TestRegisterMailFailureIsIgnored(t *testing.T) {
	f := newUserFixture(t)
	f.mailer.Err = errors.New("smtp down")

	_, err := f.service.Register(context.Background(), domain.CreateUserRequest{
		Username: "alice", Email: "alice@example.com", Password: "alice123",
	})
	assert.NoError(t, err)
}

func TestRegisterConflicts(t *testing.T) {
	f := newUserFixture(t)
	f.register(t, "alice", "alice123")

	_, err := f.service.Register(context.Background(), domain.CreateUserRequest{
		Username: "alice", Email: "other@example.com", Password: "x",
	})
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.ErrorIs(t, err, domain.ErrUsernameTaken)

	_, err = f.service.Register(context.Background(), domain.CreateUserRequest{
		Username: "alice2", Email: "alice@example.com", Password: "x",
	})
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.ErrorIs(t, err, domain.ErrEmailTaken)
}

func TestRegisterValidation(t *testing.T) {
	f := newUserFixture(t)

	_, err := f.service.Register(context.Background(), domain.CreateUserRequest{
		Username: "  ", Email: "nope", Password: "",
	})

	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Fields, "username")
	assert.Contains(t, verr.Fields, "email")
	assert.Contains(t, verr.Fields, "password")
}

func TestRegisterPasswordTooLong(t *testing.T) {
	f := newUserFixture(t)

	_, err := f.service.Register(context.Background(), domain.CreateUserRequest{
		Username: "alice", Email: "alice@example.com", Password: strings.Repeat("p", 100),
	})

	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Fields, "password")
}

func TestLogin(t *testing.T) {
	f := newUserFixture(t)
	alice := f.register(t, "alice", "alice123")

	res, err := f.service.Login(context.Background(), domain.LoginRequest{Username: "alice", Password: "alice123"})
	require.NoError(t, err)

	assert.Equal(t, domain.TokenTypeBearer, res.TokenType)
	assert.Equal(t, alice.ID, res.UserID)
	subject, err := f.jwtService.ValidateToken(res.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "alice", subject)
}

func TestLoginFailuresLookTheSame(t *testing.T) {
	f := newUserFixture(t)
	f.register(t, "alice", "alice123")

	_, wrongPassword := f.service.Login(context.Background(), domain.LoginRequest{Username: "alice", Password: "nope"})
	_, unknownUser := f.service.Login(context.Background(), domain.LoginRequest{Username: "mallory", Password: "nope"})

	assert.ErrorIs(t, wrongPassword, domain.ErrUnauthorized)
	assert.ErrorIs(t, unknownUser, domain.ErrUnauthorized)
	assert.Equal(t, wrongPassword.Error(), unknownUser.Error())
}

func TestGetUser(t *testing.T) {
	f := newUserFixture(t)
	alice := f.register(t, "alice", "alice123")

	res, err := f.service.GetUser(context.Background(), alice.ID)
	require.NoError(t, err)
	assert.Equal(t, alice, res)

	_, err = f.service.GetUser(context.Background(), uuid.NewString())
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = f.service.GetUser(context.Background(), "42")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestMe(t *testing.T) {
	f := newUserFixture(t)
	u := &entities.User{ID: uuid.New(), Username: "alice", Email: "alice@example.com", ProfileImage: "p.png"}

	res := f.service.Me(u)
	assert.Equal(t, domain.UserResponse{
		ID: u.ID.String(), Username: "alice", Email: "alice@example.com", ProfileImage: "p.png",
	}, res)
}

func TestDeleteUserCascades(t *testing.T) {
	f := newUserFixture(t)
	ctx := context.Background()
	alice := f.store.AddUser("alice")
	bob := f.store.AddUser("bob")

	owned := f.store.AddRecipe(alice, "Sopa De Lentejas", "lentejas", nil)
	uploaded := testutil.FakeStorageBase + "/recipes/one.png"
	f.storage.Objects["recipes/one.png"] = true
	require.NoError(t, f.store.AddRecipeImages(ctx, owned.ID, alice.ID, []*entities.RecipeImage{
		{ID: uuid.New(), ImageURL: uploaded},
		{ID: uuid.New(), ImageURL: "https://elsewhere.test/two.png"},
	}))
	bobs := f.store.AddRecipe(bob, "Brownies", "chocolate", nil)

	_, err := f.store.ToggleLike(ctx, alice.ID, bobs.ID)
	require.NoError(t, err)
	_, err = f.store.ToggleLike(ctx, bob.ID, owned.ID)
	require.NoError(t, err)

	require.NoError(t, f.service.DeleteUser(ctx, alice.ID))

	_, err = f.store.GetUserByID(ctx, alice.ID)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
	_, err = f.store.GetRecipeByID(ctx, owned.ID)
	assert.ErrorIs(t, err, domain.ErrRecipeNotFound)

	assert.Equal(t, 0, f.store.Counter(bobs.ID))
	assert.Equal(t, 0, f.store.LikeCount(bobs.ID))
	assert.Equal(t, []string{"recipes/one.png"}, f.storage.Deleted)

	err = f.service.DeleteUser(ctx, alice.ID)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}
