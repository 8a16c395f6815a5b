package controller

import (
	"blog-publishing-be/internal/pkg/serverutils"
	"blog-publishing-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

// IAboutController serves the admin side of the about page. The draft it opens is
// edited through the draft routes.
type IAboutController interface {
	RegisterRoutes(r fiber.Router)
	Show(ctx *fiber.Ctx) error
	OpenDraft(ctx *fiber.Ctx) error
	Commit(ctx *fiber.Ctx) error
}

type aboutController struct {
	aboutService service.IAboutService
	auth         fiber.Handler
}

func NewAboutController(aboutService service.IAboutService, auth fiber.Handler) IAboutController {
	return &aboutController{
		aboutService: aboutService,
		auth:         auth,
	}
}

func (c *aboutController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/about/v1")
	h.Use(c.auth)
	h.Get("", c.Show)
	h.Post("draft", c.OpenDraft)
	h.Post("draft/:id/commit", c.Commit)
}

func (c *aboutController) Show(ctx *fiber.Ctx) error {
	res, err := c.aboutService.Show(ctx.Context())
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success show about page", res))
}

func (c *aboutController) OpenDraft(ctx *fiber.Ctx) error {
	res, err := c.aboutService.OpenDraft(ctx.Context())
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Draft opened", res))
}

func (c *aboutController) Commit(ctx *fiber.Ctx) error {
	res, err := c.aboutService.Commit(ctx.Context(), ctx.Params("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("About page saved", res))
}
