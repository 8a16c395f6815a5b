package controller

import (
	"blog-publishing-be/internal/pkg/serverutils"
	"blog-publishing-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IPublicAboutController interface {
	RegisterRoutes(r fiber.Router)
	Show(ctx *fiber.Ctx) error
}

type publicAboutController struct {
	aboutService service.IAboutService
}

func NewPublicAboutController(aboutService service.IAboutService) IPublicAboutController {
	return &publicAboutController{
		aboutService: aboutService,
	}
}

func (c *publicAboutController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/public/about/v1")
	h.Get("", c.Show)
}

func (c *publicAboutController) Show(ctx *fiber.Ctx) error {
	res, err := c.aboutService.ShowPublic(ctx.Context())
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success show about page", res))
}
