// Package testutil holds in-memory stand-ins for the Postgres repositories, object storage
// and mail, for unit tests that must not need a database.
package testutil

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"Recipe-Share-Backend/domain"
	"Recipe-Share-Backend/entities"

	"github.com/google/uuid"
)

type likeKey struct {
	userID   uuid.UUID
	recipeID uuid.UUID
}

// Store implements the user, recipe and like repositories over maps guarded by one mutex,
// which plays the part of the row locks.
type Store struct {
	mu      sync.Mutex
	clock   time.Time
	users   map[uuid.UUID]*entities.User
	recipes map[uuid.UUID]*entities.Recipe
	images  []*entities.RecipeImage
	likes   map[likeKey]bool

	// Err, when set, is returned by every method.
	Err error
}

func NewStore() *Store {
	return &Store{
		clock:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		users:   map[uuid.UUID]*entities.User{},
		recipes: map[uuid.UUID]*entities.Recipe{},
		likes:   map[likeKey]bool{},
	}
}

func (s *Store) tick() time.Time {
	s.clock = s.clock.Add(time.Second)
	return s.clock
}

// AddUser inserts a user directly, bypassing registration.
func (s *Store) AddUser(username string) *entities.User {
	u := &entities.User{
		ID:             uuid.New(),
		Username:       username,
		Email:          username + "@example.com",
		HashedPassword: "-",
	}
	if err := s.CreateUser(context.Background(), u); err != nil {
		panic(err)
	}
	return u
}

// AddRecipe inserts a recipe directly with no validation, like the seed command does.
func (s *Store) AddRecipe(owner *entities.User, title, ingredients string, category *string) *entities.Recipe {
	r := &entities.Recipe{
		ID:          uuid.New(),
		UserID:      owner.ID,
		Title:       title,
		Ingredients: ingredients,
		Category:    category,
	}
	if err := s.CreateRecipe(context.Background(), r); err != nil {
		panic(err)
	}
	return r
}

// LikeCount is the number of stored like pairs for recipeID.
func (s *Store) LikeCount(recipeID uuid.UUID) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for k := range s.likes {
		if k.recipeID == recipeID {
			n++
		}
	}
	return n
}

// Counter is the stored likes column of recipeID.
func (s *Store) Counter(recipeID uuid.UUID) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if r, ok := s.recipes[recipeID]; ok {
		return r.Likes
	}
	return -1
}

// SetCounter overwrites a counter, for tests of the recount.
func (s *Store) SetCounter(recipeID uuid.UUID, likes int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.recipes[recipeID].Likes = likes
}

func (s *Store) RecipeCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.recipes)
}

// users

func (s *Store) CreateUser(_ context.Context, user *entities.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	for _, u := range s.users {
		if u.Username == user.Username {
			return domain.ErrUsernameTaken
		}
		if u.Email == user.Email {
			return domain.ErrEmailTaken
		}
	}
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	now := s.tick()
	user.CreatedAt, user.UpdatedAt = now, now
	stored := *user
	s.users[user.ID] = &stored
	return nil
}

func (s *Store) GetUserByID(_ context.Context, id uuid.UUID) (*entities.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	u, ok := s.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	found := *u
	return &found, nil
}

func (s *Store) GetUserByUsername(_ context.Context, username string) (*entities.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	for _, u := range s.users {
		if u.Username == username {
			found := *u
			return &found, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (s *Store) DeleteUser(_ context.Context, id uuid.UUID) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	if _, ok := s.users[id]; !ok {
		return nil, domain.ErrUserNotFound
	}

	for k := range s.likes {
		if k.userID != id {
			continue
		}
		if r, ok := s.recipes[k.recipeID]; ok && r.UserID != id {
			r.Likes--
		}
		delete(s.likes, k)
	}

	var imageURLs []string
	for rid, r := range s.recipes {
		if r.UserID != id {
			continue
		}
		imageURLs = append(imageURLs, s.deleteRecipeLocked(rid)...)
	}
	delete(s.users, id)
	return imageURLs, nil
}

// recipes

func (s *Store) CreateRecipe(_ context.Context, recipe *entities.Recipe) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	if _, ok := s.users[recipe.UserID]; !ok {
		return domain.ErrUserNotFound
	}
	if recipe.ID == uuid.Nil {
		recipe.ID = uuid.New()
	}
	now := s.tick()
	recipe.CreatedAt, recipe.UpdatedAt = now, now
	stored := *recipe
	stored.Images = nil
	stored.User = nil
	for _, image := range recipe.Images {
		image.RecipeID = recipe.ID
		if image.ID == uuid.Nil {
			image.ID = uuid.New()
		}
		image.CreatedAt = s.tick()
		img := *image
		s.images = append(s.images, &img)
	}
	s.recipes[recipe.ID] = &stored
	return nil
}

// detailsLocked returns a copy of r with its owner and images attached.
func (s *Store) detailsLocked(r *entities.Recipe) *entities.Recipe {
	out := *r
	out.Images = nil
	for _, image := range s.images {
		if image.RecipeID == r.ID {
			img := *image
			out.Images = append(out.Images, &img)
		}
	}
	if u, ok := s.users[r.UserID]; ok {
		owner := *u
		out.User = &owner
	}
	return &out
}

func (s *Store) GetRecipeByID(_ context.Context, id uuid.UUID) (*entities.Recipe, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	r, ok := s.recipes[id]
	if !ok {
		return nil, domain.ErrRecipeNotFound
	}
	return s.detailsLocked(r), nil
}

func (s *Store) listLocked(match func(r *entities.Recipe) bool) []*entities.Recipe {
	var out []*entities.Recipe
	for _, r := range s.recipes {
		if match(r) {
			out = append(out, s.detailsLocked(r))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

func (s *Store) GetRecipes(_ context.Context, filter domain.RecipeFilter) ([]*entities.Recipe, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	needle := strings.ToLower(filter.SearchText)
	return s.listLocked(func(r *entities.Recipe) bool {
		if filter.Category != "" && (r.Category == nil || *r.Category != filter.Category) {
			return false
		}
		if needle != "" &&
			!strings.Contains(strings.ToLower(r.Title), needle) &&
			!strings.Contains(strings.ToLower(r.Ingredients), needle) {
			return false
		}
		return true
	}), nil
}

func (s *Store) GetRecipesByUser(_ context.Context, userID uuid.UUID) ([]*entities.Recipe, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	return s.listLocked(func(r *entities.Recipe) bool {
		return r.UserID == userID
	}), nil
}

func (s *Store) deleteRecipeLocked(id uuid.UUID) []string {
	var imageURLs []string
	kept := s.images[:0]
	for _, image := range s.images {
		if image.RecipeID == id {
			imageURLs = append(imageURLs, image.ImageURL)
			continue
		}
		kept = append(kept, image)
	}
	s.images = kept
	for k := range s.likes {
		if k.recipeID == id {
			delete(s.likes, k)
		}
	}
	delete(s.recipes, id)
	return imageURLs
}

func (s *Store) DeleteRecipe(_ context.Context, id uuid.UUID, ownerID uuid.UUID) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	r, ok := s.recipes[id]
	if !ok || r.UserID != ownerID {
		return nil, domain.ErrNotFoundOrForbidden
	}
	return s.deleteRecipeLocked(id), nil
}

func (s *Store) AddRecipeImages(_ context.Context, id uuid.UUID, ownerID uuid.UUID, images []*entities.RecipeImage) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	r, ok := s.recipes[id]
	if !ok || r.UserID != ownerID {
		return domain.ErrNotFoundOrForbidden
	}
	for _, image := range images {
		image.RecipeID = id
		image.CreatedAt = s.tick()
		stored := *image
		s.images = append(s.images, &stored)
	}
	return nil
}

func (s *Store) GetRecipeImages(_ context.Context) ([]*entities.RecipeImage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	out := make([]*entities.RecipeImage, 0, len(s.images))
	for _, image := range s.images {
		img := *image
		out = append(out, &img)
	}
	return out, nil
}

// likes

func (s *Store) ToggleLike(_ context.Context, userID uuid.UUID, recipeID uuid.UUID) (domain.LikeState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return domain.LikeState{}, s.Err
	}
	if _, ok := s.users[userID]; !ok {
		return domain.LikeState{}, domain.ErrUnauthorized
	}
	r, ok := s.recipes[recipeID]
	if !ok {
		return domain.LikeState{}, domain.ErrRecipeNotFound
	}

	k := likeKey{userID: userID, recipeID: recipeID}
	if s.likes[k] {
		delete(s.likes, k)
		r.Likes--
		return domain.LikeState{Liked: false, Likes: r.Likes}, nil
	}
	s.likes[k] = true
	r.Likes++
	return domain.LikeState{Liked: true, Likes: r.Likes}, nil
}

func (s *Store) IsLiked(_ context.Context, userID uuid.UUID, recipeID uuid.UUID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return false, s.Err
	}
	return s.likes[likeKey{userID: userID, recipeID: recipeID}], nil
}

func (s *Store) LikedRecipeIDs(_ context.Context, userID uuid.UUID, recipeIDs []uuid.UUID) (map[uuid.UUID]bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	liked := map[uuid.UUID]bool{}
	for _, id := range recipeIDs {
		if s.likes[likeKey{userID: userID, recipeID: id}] {
			liked[id] = true
		}
	}
	return liked, nil
}

func (s *Store) RecountLikes(_ context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return 0, s.Err
	}
	counts := map[uuid.UUID]int{}
	for k := range s.likes {
		counts[k.recipeID]++
	}
	var fixed int64
	for id, r := range s.recipes {
		if r.Likes != counts[id] {
			r.Likes = counts[id]
			fixed++
		}
	}
	return fixed, nil
}
