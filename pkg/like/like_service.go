package like

import (
	"context"

	"Recipe-Share-Backend/domain"
	"Recipe-Share-Backend/entities"
	"Recipe-Share-Backend/pkg/log"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type (
	LikeService interface {
		ToggleLike(ctx context.Context, user *entities.User, recipeID string) (domain.LikeResponse, error)
		RecountLikes(ctx context.Context) (int64, error)
	}

	likeService struct {
		likeRepository LikeRepository
	}
)

func NewLikeService(likeRepository LikeRepository) LikeService {
	return &likeService{likeRepository: likeRepository}
}

func (s *likeService) ToggleLike(ctx context.Context, user *entities.User, recipeID string) (domain.LikeResponse, error) {
	if user == nil {
		return domain.LikeResponse{}, domain.ErrUnauthorized
	}
	id, err := uuid.Parse(recipeID)
	if err != nil {
		return domain.LikeResponse{}, domain.ErrRecipeNotFound
	}

	state, err := s.likeRepository.ToggleLike(ctx, user.ID, id)
	if err != nil {
		return domain.LikeResponse{}, err
	}

	message := domain.MessageLikeRemoved
	if state.Liked {
		message = domain.MessageLikeAdded
	}
	return domain.LikeResponse{
		Message:            message,
		Liked:              state.Liked,
		Likes:              state.Likes,
		LikedByCurrentUser: state.Liked,
	}, nil
}

func (s *likeService) RecountLikes(ctx context.Context) (int64, error) {
	fixed, err := s.likeRepository.RecountLikes(ctx)
	if err != nil {
		return 0, err
	}
	log.L.Info("like counters recomputed", zap.Int64("fixed", fixed))
	return fixed, nil
}
