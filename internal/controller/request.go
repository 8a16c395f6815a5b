package controller

import (
	"io"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// readFormFile returns the name and content of a multipart upload.
func readFormFile(ctx *fiber.Ctx, field string) (string, []byte, error) {
	fileHeader, err := ctx.FormFile(field)
	if err != nil {
		return "", nil, fiber.NewError(fiber.StatusBadRequest, "Missing file")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return "", nil, err
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		return "", nil, err
	}
	return fileHeader.Filename, content, nil
}

func paramUUID(ctx *fiber.Ctx, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(ctx.Params(name))
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "Invalid "+name)
	}
	return id, nil
}

// queryUUID parses an optional uuid query parameter.
func queryUUID(ctx *fiber.Ctx, name string) (*uuid.UUID, error) {
	raw := ctx.Query(name)
	if raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Invalid "+name)
	}
	return &id, nil
}
