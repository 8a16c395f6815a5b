package controller

import (
	"encoding/json"
	"errors"

	"blog-publishing-be/internal/dto"
	"blog-publishing-be/internal/pkg/serverutils"
	"blog-publishing-be/internal/service"
	"blog-publishing-be/pkg/block"

	"github.com/gofiber/fiber/v2"
)

type IDraftController interface {
	RegisterRoutes(r fiber.Router)
	Open(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	Stage(ctx *fiber.Ctx) error
	SetBlocks(ctx *fiber.Ctx) error
	Commit(ctx *fiber.Ctx) error
	Discard(ctx *fiber.Ctx) error
}

type draftController struct {
	draftService service.IDraftService
	auth         fiber.Handler
}

func NewDraftController(draftService service.IDraftService, auth fiber.Handler) IDraftController {
	return &draftController{
		draftService: draftService,
		auth:         auth,
	}
}

func (c *draftController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/draft/v1")
	h.Use(c.auth)
	h.Post("", c.Open)
	h.Get(":id", c.Show)
	h.Post(":id/assets", c.Stage)
	h.Put(":id/blocks", c.SetBlocks)
	h.Post(":id/commit", c.Commit)
	h.Delete(":id", c.Discard)
}

func (c *draftController) Open(ctx *fiber.Ctx) error {
	var req dto.OpenDraftRequest
	if len(ctx.Body()) > 0 {
		if err := ctx.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}
	}

	res, err := c.draftService.Open(ctx.Context(), &req)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Draft opened", res))
}

func (c *draftController) Show(ctx *fiber.Ctx) error {
	res, err := c.draftService.Show(ctx.Context(), ctx.Params("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success show draft", res))
}

func (c *draftController) Stage(ctx *fiber.Ctx) error {
	name, content, err := readFormFile(ctx, "file")
	if err != nil {
		return err
	}

	res, err := c.draftService.Stage(ctx.Context(), ctx.Params("id"), name, content)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Asset staged", res))
}

// SetBlocks takes the editor's saved document as the request body.
func (c *draftController) SetBlocks(ctx *fiber.Ctx) error {
	var doc block.Draft
	if err := json.Unmarshal(ctx.Body(), &doc); err != nil {
		var decodeErr *block.DecodeError
		if errors.As(err, &decodeErr) {
			return err
		}
		return fiber.NewError(fiber.StatusBadRequest, "Invalid document")
	}

	res, err := c.draftService.SetBlocks(ctx.Context(), ctx.Params("id"), doc)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Draft updated", res))
}

func (c *draftController) Commit(ctx *fiber.Ctx) error {
	var req dto.CommitDraftRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.draftService.Commit(ctx.Context(), ctx.Params("id"), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Draft committed", res))
}

func (c *draftController) Discard(ctx *fiber.Ctx) error {
	if err := c.draftService.Discard(ctx.Context(), ctx.Params("id")); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Draft discarded", nil))
}
