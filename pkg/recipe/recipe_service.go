package recipe

import (
	"context"
	"mime/multipart"
	"strings"

	"Recipe-Share-Backend/domain"
	"Recipe-Share-Backend/entities"
	"Recipe-Share-Backend/internal/utils"
	"Recipe-Share-Backend/internal/utils/storage"
	"Recipe-Share-Backend/pkg/like"
	"Recipe-Share-Backend/pkg/log"
	"Recipe-Share-Backend/pkg/user"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

type (
	RecipeService interface {
		CreateRecipe(ctx context.Context, req domain.CreateRecipeRequest, owner *entities.User) (domain.Recipe, error)
		GetRecipe(ctx context.Context, recipeID string, viewer *entities.User) (domain.Recipe, error)
		ListRecipes(ctx context.Context, filter domain.RecipeFilter, viewer *entities.User) ([]domain.Recipe, error)
		ListUserRecipes(ctx context.Context, userID string, viewer *entities.User) ([]domain.Recipe, error)
		DeleteRecipe(ctx context.Context, recipeID string, requester *entities.User) error
		AddRecipeImages(ctx context.Context, recipeID string, req domain.AddRecipeImagesRequest, requester *entities.User) ([]domain.RecipeImage, error)
		ListRecipeImages(ctx context.Context) ([]domain.RecipeImage, error)
	}

	recipeService struct {
		recipeRepository RecipeRepository
		likeRepository   like.LikeRepository
		s3               storage.AwsS3
		validate         *validator.Validate
	}
)

func NewRecipeService(recipeRepository RecipeRepository, likeRepository like.LikeRepository, s3 storage.AwsS3) RecipeService {
	return &recipeService{
		recipeRepository: recipeRepository,
		likeRepository:   likeRepository,
		s3:               s3,
		validate:         utils.NewValidator(),
	}
}

// normalize trims the free text fields and canonicalizes the category so that "postre" and
// "Postre" are the same category.
func normalize(req *domain.CreateRecipeRequest) {
	req.Title = strings.TrimSpace(req.Title)
	req.Description = strings.TrimSpace(req.Description)
	req.Ingredients = strings.TrimSpace(req.Ingredients)
	req.Instructions = strings.TrimSpace(req.Instructions)
	if req.Category != nil {
		category := utils.TitleCase(strings.TrimSpace(*req.Category))
		if category == "" {
			req.Category = nil
		} else {
			req.Category = &category
		}
	}
	for i, link := range req.ImageURLs {
		req.ImageURLs[i] = strings.TrimSpace(link)
	}
}

func (s *recipeService) CreateRecipe(ctx context.Context, req domain.CreateRecipeRequest, owner *entities.User) (domain.Recipe, error) {
	if owner == nil {
		return domain.Recipe{}, domain.ErrUnauthorized
	}
	normalize(&req)
	if err := utils.ValidateStruct(s.validate, req); err != nil {
		return domain.Recipe{}, err
	}

	uploaded, err := s.uploadImages(ctx, req.Images)
	if err != nil {
		return domain.Recipe{}, err
	}

	recipe := &entities.Recipe{
		ID:           uuid.New(),
		UserID:       owner.ID,
		Title:        utils.TitleCase(req.Title),
		Description:  req.Description,
		Ingredients:  req.Ingredients,
		Instructions: req.Instructions,
		Category:     req.Category,
		Likes:        0,
	}
	for _, link := range append(append([]string{}, req.ImageURLs...), s.publicLinks(uploaded)...) {
		recipe.Images = append(recipe.Images, &entities.RecipeImage{ID: uuid.New(), ImageURL: link})
	}

	if err := s.recipeRepository.CreateRecipe(ctx, recipe); err != nil {
		s.removeObjects(ctx, uploaded)
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.Recipe{}, domain.ErrUnauthorized
		}
		return domain.Recipe{}, err
	}

	recipe.User = owner
	return toRecipe(recipe, false), nil
}

func (s *recipeService) GetRecipe(ctx context.Context, recipeID string, viewer *entities.User) (domain.Recipe, error) {
	id, err := uuid.Parse(recipeID)
	if err != nil {
		return domain.Recipe{}, domain.ErrRecipeNotFound
	}
	recipe, err := s.recipeRepository.GetRecipeByID(ctx, id)
	if err != nil {
		return domain.Recipe{}, err
	}

	liked := false
	if viewer != nil {
		if liked, err = s.likeRepository.IsLiked(ctx, viewer.ID, recipe.ID); err != nil {
			return domain.Recipe{}, err
		}
	}
	return toRecipe(recipe, liked), nil
}

func (s *recipeService) ListRecipes(ctx context.Context, filter domain.RecipeFilter, viewer *entities.User) ([]domain.Recipe, error) {
	filter.Category = utils.TitleCase(strings.TrimSpace(filter.Category))
	filter.SearchText = strings.TrimSpace(filter.SearchText)

	recipes, err := s.recipeRepository.GetRecipes(ctx, filter)
	if err != nil {
		return nil, err
	}
	return s.toRecipes(ctx, recipes, viewer)
}

func (s *recipeService) ListUserRecipes(ctx context.Context, userID string, viewer *entities.User) ([]domain.Recipe, error) {
	id, err := uuid.Parse(userID)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}
	recipes, err := s.recipeRepository.GetRecipesByUser(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.toRecipes(ctx, recipes, viewer)
}

func (s *recipeService) DeleteRecipe(ctx context.Context, recipeID string, requester *entities.User) error {
	if requester == nil {
		return domain.ErrUnauthorized
	}
	id, err := uuid.Parse(recipeID)
	if err != nil {
		return domain.ErrNotFoundOrForbidden
	}

	imageURLs, err := s.recipeRepository.DeleteRecipe(ctx, id, requester.ID)
	if err != nil {
		return err
	}

	var keys []string
	for _, link := range imageURLs {
		if key := s.s3.GetObjectKeyFromLink(link); key != "" {
			keys = append(keys, key)
		}
	}
	s.removeObjects(ctx, keys)
	return nil
}

func (s *recipeService) AddRecipeImages(ctx context.Context, recipeID string, req domain.AddRecipeImagesRequest, requester *entities.User) ([]domain.RecipeImage, error) {
	if requester == nil {
		return nil, domain.ErrUnauthorized
	}
	id, err := uuid.Parse(recipeID)
	if err != nil {
		return nil, domain.ErrNotFoundOrForbidden
	}
	for i, link := range req.ImageURLs {
		req.ImageURLs[i] = strings.TrimSpace(link)
	}
	if err := utils.ValidateStruct(s.validate, req); err != nil {
		return nil, err
	}
	if len(req.ImageURLs) == 0 && len(req.Images) == 0 {
		verr := domain.NewValidationError()
		verr.Add("images", "is required")
		return nil, verr
	}

	uploaded, err := s.uploadImages(ctx, req.Images)
	if err != nil {
		return nil, err
	}

	var images []*entities.RecipeImage
	for _, link := range append(append([]string{}, req.ImageURLs...), s.publicLinks(uploaded)...) {
		images = append(images, &entities.RecipeImage{ID: uuid.New(), ImageURL: link})
	}
	if err := s.recipeRepository.AddRecipeImages(ctx, id, requester.ID, images); err != nil {
		s.removeObjects(ctx, uploaded)
		return nil, err
	}
	return toRecipeImages(images), nil
}

func (s *recipeService) ListRecipeImages(ctx context.Context) ([]domain.RecipeImage, error) {
	images, err := s.recipeRepository.GetRecipeImages(ctx)
	if err != nil {
		return nil, err
	}
	return toRecipeImages(images), nil
}

// uploadImages stores every file or none: on the first failure the objects already written
// are removed again.
func (s *recipeService) uploadImages(ctx context.Context, files []*multipart.FileHeader) ([]string, error) {
	var keys []string
	for _, file := range files {
		key, err := s.s3.UploadFile(ctx, uuid.NewString(), file, domain.RecipeImageFolder, storage.AllowImage...)
		if err != nil {
			s.removeObjects(ctx, keys)
			return nil, uploadError(err)
		}
		keys = append(keys, key)
	}
	return keys, nil
}

func uploadError(err error) error {
	verr := domain.NewValidationError()
	switch {
	case errors.Is(err, domain.ErrFileTypeNotAllowed):
		verr.Add("images", "only image files are accepted")
	case errors.Is(err, domain.ErrStorageUnavailable):
		verr.Add("images", "image uploads are not enabled, send image_urls instead")
	default:
		return errors.Wrap(err, "upload recipe image")
	}
	return verr
}

func (s *recipeService) publicLinks(keys []string) []string {
	links := make([]string, 0, len(keys))
	for _, key := range keys {
		links = append(links, s.s3.GetPublicLinkKey(key))
	}
	return links
}

func (s *recipeService) removeObjects(ctx context.Context, keys []string) {
	ctx = context.WithoutCancel(ctx)
	for _, key := range keys {
		if err := s.s3.DeleteFile(ctx, key); err != nil {
			log.L.Warn("recipe image not removed from storage", zap.String("key", key), zap.Error(err))
		}
	}
}

func (s *recipeService) toRecipes(ctx context.Context, recipes []*entities.Recipe, viewer *entities.User) ([]domain.Recipe, error) {
	liked := map[uuid.UUID]bool{}
	if viewer != nil && len(recipes) > 0 {
		ids := make([]uuid.UUID, 0, len(recipes))
		for _, recipe := range recipes {
			ids = append(ids, recipe.ID)
		}
		var err error
		if liked, err = s.likeRepository.LikedRecipeIDs(ctx, viewer.ID, ids); err != nil {
			return nil, err
		}
	}

	res := make([]domain.Recipe, 0, len(recipes))
	for _, recipe := range recipes {
		res = append(res, toRecipe(recipe, liked[recipe.ID]))
	}
	return res, nil
}

func toRecipe(recipe *entities.Recipe, liked bool) domain.Recipe {
	return domain.Recipe{
		ID:                 recipe.ID.String(),
		Title:              recipe.Title,
		Description:        recipe.Description,
		Ingredients:        recipe.Ingredients,
		Instructions:       recipe.Instructions,
		UserID:             recipe.UserID.String(),
		Category:           recipe.Category,
		Images:             toRecipeImages(recipe.Images),
		User:               user.ToUserPublic(recipe.User),
		Likes:              recipe.Likes,
		LikedByCurrentUser: liked,
	}
}

func toRecipeImages(images []*entities.RecipeImage) []domain.RecipeImage {
	res := make([]domain.RecipeImage, 0, len(images))
	for _, image := range images {
		res = append(res, domain.RecipeImage{ID: image.ID.String(), ImageURL: image.ImageURL})
	}
	return res
}
