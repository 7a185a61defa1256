package handlers

import (
	"Recipe-Share-Backend/internal/api/presenters"
	"Recipe-Share-Backend/pkg/like"

	"github.com/gofiber/fiber/v2"
)

type (
	LikeHandler interface {
		ToggleLike(c *fiber.Ctx) error
	}

	likeHandler struct {
		likeService like.LikeService
	}
)

func NewLikeHandler(likeService like.LikeService) LikeHandler {
	return &likeHandler{likeService: likeService}
}

func (h *likeHandler) ToggleLike(c *fiber.Ctx) error {
	res, err := h.likeService.ToggleLike(c.UserContext(), currentUser(c), c.Params("id"))
	if err != nil {
		return presenters.HandleError(c, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK)
}
