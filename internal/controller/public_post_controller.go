package controller

import (
	"blog-publishing-be/internal/dto"
	"blog-publishing-be/internal/pkg/serverutils"
	"blog-publishing-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IPublicPostController interface {
	RegisterRoutes(r fiber.Router)
	List(ctx *fiber.Ctx) error
	Random(ctx *fiber.Ctx) error
	ShowBySlug(ctx *fiber.Ctx) error
}

type publicPostController struct {
	publicPostService service.IPublicPostService
}

func NewPublicPostController(publicPostService service.IPublicPostService) IPublicPostController {
	return &publicPostController{
		publicPostService: publicPostService,
	}
}

func (c *publicPostController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/public/post/v1")
	h.Get("", c.List)
	h.Get("random", c.Random)
	h.Get(":slug", c.ShowBySlug)
}

func (c *publicPostController) List(ctx *fiber.Ctx) error {
	var req dto.ListPostsRequest
	if err := ctx.QueryParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid query")
	}
	categoryId, err := queryUUID(ctx, "category_id")
	if err != nil {
		return err
	}
	req.CategoryId = categoryId

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.publicPostService.List(ctx.Context(), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success list posts", res))
}

func (c *publicPostController) Random(ctx *fiber.Ctx) error {
	var req dto.RandomPostsRequest
	if err := ctx.QueryParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid query")
	}
	categoryId, err := queryUUID(ctx, "category_id")
	if err != nil {
		return err
	}
	if categoryId == nil {
		return fiber.NewError(fiber.StatusBadRequest, "category_id is required")
	}
	req.CategoryId = *categoryId

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.publicPostService.Random(ctx.Context(), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success list related posts", res))
}

func (c *publicPostController) ShowBySlug(ctx *fiber.Ctx) error {
	res, err := c.publicPostService.ShowBySlug(ctx.Context(), ctx.Params("slug"))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success show post", res))
}
