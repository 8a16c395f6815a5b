package controller

import (
	"blog-publishing-be/internal/dto"
	"blog-publishing-be/internal/pkg/serverutils"
	"blog-publishing-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IUploadController interface {
	RegisterRoutes(r fiber.Router)
	RequestUploadURL(ctx *fiber.Ctx) error
	PutObject(ctx *fiber.Ctx) error
}

type uploadController struct {
	uploadService service.IUploadService
	auth          fiber.Handler
}

func NewUploadController(uploadService service.IUploadService, auth fiber.Handler) IUploadController {
	return &uploadController{
		uploadService: uploadService,
		auth:          auth,
	}
}

func (c *uploadController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/upload/v1")
	h.Use(c.auth)
	h.Get("url", c.RequestUploadURL)
	h.Put("object/:key", c.PutObject)
}

// RequestUploadURL speaks the same protocol the remote asset store client expects,
// so one deployment can act as the asset store of another.
func (c *uploadController) RequestUploadURL(ctx *fiber.Ctx) error {
	var req dto.UploadUrlRequest
	if err := ctx.QueryParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid query")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.uploadService.RequestUploadURL(ctx.Context(), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Upload target issued", res))
}

func (c *uploadController) PutObject(ctx *fiber.Ctx) error {
	if err := c.uploadService.PutObject(ctx.Context(), ctx.Params("key"), ctx.Body()); err != nil {
		return err
	}
	return ctx.SendStatus(fiber.StatusOK)
}
