package controller

import (
	"blog-publishing-be/internal/dto"
	"blog-publishing-be/internal/pkg/serverutils"
	"blog-publishing-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IPostController interface {
	RegisterRoutes(r fiber.Router)
	List(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	Update(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
	UploadCover(ctx *fiber.Ctx) error
}

type postController struct {
	postService service.IPostService
	auth        fiber.Handler
}

func NewPostController(postService service.IPostService, auth fiber.Handler) IPostController {
	return &postController{
		postService: postService,
		auth:        auth,
	}
}

func (c *postController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/post/v1")
	h.Use(c.auth)
	h.Get("", c.List)
	h.Post("cover", c.UploadCover)
	h.Get(":id", c.Show)
	h.Put(":id", c.Update)
	h.Delete(":id", c.Delete)
}

func (c *postController) List(ctx *fiber.Ctx) error {
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

	res, err := c.postService.List(ctx.Context(), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success list posts", res))
}

func (c *postController) Show(ctx *fiber.Ctx) error {
	id, err := paramUUID(ctx, "id")
	if err != nil {
		return err
	}

	res, err := c.postService.Show(ctx.Context(), id)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success show post", res))
}

func (c *postController) Update(ctx *fiber.Ctx) error {
	id, err := paramUUID(ctx, "id")
	if err != nil {
		return err
	}

	var req dto.UpdatePostRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	req.Id = id

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.postService.Update(ctx.Context(), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success update post", res))
}

func (c *postController) Delete(ctx *fiber.Ctx) error {
	id, err := paramUUID(ctx, "id")
	if err != nil {
		return err
	}

	if err := c.postService.Delete(ctx.Context(), id); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Success delete post", nil))
}

func (c *postController) UploadCover(ctx *fiber.Ctx) error {
	name, content, err := readFormFile(ctx, "file")
	if err != nil {
		return err
	}

	res, err := c.postService.UploadCover(ctx.Context(), name, content)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Cover uploaded", res))
}
