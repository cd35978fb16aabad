package controller

import (
	"skill-exchange-be/internal/dto"
	"skill-exchange-be/internal/pkg/apperrors"
	"skill-exchange-be/internal/pkg/serverutils"
	"skill-exchange-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IUserController interface {
	RegisterRoutes(r fiber.Router)
	Me(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	Update(ctx *fiber.Ctx) error
}

type userController struct {
	userService service.IUserService
}

func NewUserController(userService service.IUserService) IUserController {
	return &userController{
		userService: userService,
	}
}

func (c *userController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/user/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Get("me", c.Me)
	h.Get(":id", c.Show)
	h.Put(":id", c.Update)
}

func (c *userController) Me(ctx *fiber.Ctx) error {
	userId := serverutils.CurrentUserId(ctx)

	res, err := c.userService.GetProfile(ctx.Context(), userId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show profile", res))
}

func (c *userController) Show(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return apperrors.InvalidInput("invalid_user_id", "User id must be a UUID")
	}

	res, err := c.userService.GetById(ctx.Context(), id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show user", res))
}

func (c *userController) Update(ctx *fiber.Ctx) error {
	userId := serverutils.CurrentUserId(ctx)

	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return apperrors.InvalidInput("invalid_user_id", "User id must be a UUID")
	}

	var req dto.UpdateProfileRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	req.Id = id

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.userService.Update(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success update profile", res))
}
