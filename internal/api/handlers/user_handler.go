package handlers

import (
	"Recipe-Share-Backend/domain"
	"Recipe-Share-Backend/entities"
	"Recipe-Share-Backend/internal/api/presenters"
	"Recipe-Share-Backend/internal/utils"
	"Recipe-Share-Backend/pkg/user"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	UserHandler interface {
		Register(c *fiber.Ctx) error
		Login(c *fiber.Ctx) error
		Me(c *fiber.Ctx) error
		GetUser(c *fiber.Ctx) error
		DeleteMe(c *fiber.Ctx) error
	}

	userHandler struct {
		userService user.UserService
		validator   *validator.Validate
	}
)

func NewUserHandler(userService user.UserService, validator *validator.Validate) UserHandler {
	return &userHandler{
		userService: userService,
		validator:   validator,
	}
}

// currentUser is the user stored by the auth middlewares, nil for anonymous requests.
func currentUser(c *fiber.Ctx) *entities.User {
	u, _ := c.Locals("user").(*entities.User)
	return u
}

func (h *userHandler) Register(c *fiber.Ctx) error {
	req := new(domain.CreateUserRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	if err := utils.ValidateStruct(h.validator, req); err != nil {
		return presenters.HandleError(c, err)
	}

	res, err := h.userService.Register(c.UserContext(), *req)
	if err != nil {
		return presenters.HandleError(c, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusCreated)
}

// Login accepts the OAuth2 password form as well as a JSON body.
func (h *userHandler) Login(c *fiber.Ctx) error {
	req := new(domain.LoginRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	if err := utils.ValidateStruct(h.validator, req); err != nil {
		return presenters.HandleError(c, err)
	}

	res, err := h.userService.Login(c.UserContext(), *req)
	if err != nil {
		return presenters.HandleError(c, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK)
}

func (h *userHandler) Me(c *fiber.Ctx) error {
	u := currentUser(c)
	if u == nil {
		return presenters.HandleError(c, domain.ErrUnauthorized)
	}
	return presenters.SuccessResponse(c, h.userService.Me(u), fiber.StatusOK)
}

func (h *userHandler) GetUser(c *fiber.Ctx) error {
	res, err := h.userService.GetUser(c.UserContext(), c.Params("id"))
	if err != nil {
		return presenters.HandleError(c, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK)
}

func (h *userHandler) DeleteMe(c *fiber.Ctx) error {
	u := currentUser(c)
	if u == nil {
		return presenters.HandleError(c, domain.ErrUnauthorized)
	}
	if err := h.userService.DeleteUser(c.UserContext(), u.ID); err != nil {
		return presenters.HandleError(c, err)
	}
	return presenters.SuccessResponse(c, nil, fiber.StatusNoContent)
}
