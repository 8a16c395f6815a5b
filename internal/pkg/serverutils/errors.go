package serverutils

import (
	"errors"

	"blog-publishing-be/pkg/asset"
	"blog-publishing-be/pkg/block"
	"blog-publishing-be/pkg/draft"
	"blog-publishing-be/pkg/render"

	"github.com/gofiber/fiber/v2"
)

// Wrap these in service errors to pick the HTTP status.
var (
	ErrNotFound   = errors.New("not found")
	ErrConflict   = errors.New("conflict")
	ErrBadRequest = errors.New("bad request")
)

type uploadFailure struct {
	TemporaryId string `json:"temporary_id"`
	Error       string `json:"error"`
}

// ErrorHandlerMiddleware turns errors returned by handlers into JSON envelopes.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}
		status, body := MapError(err)
		return ctx.Status(status).JSON(body)
	}
}

// MapError picks the status code and response body for err.
func MapError(err error) (int, BaseResponse[any]) {
	var (
		fiberErr      *fiber.Error
		validationErr *ValidationError
		structural    *block.StructuralError
		decodeErr     *block.DecodeError
		dangling      *asset.DanglingReferenceError
		commitErr     *draft.CommitError
		persistErr    *draft.PersistError
		renderErr     *render.RenderError
	)

	switch {
	case errors.As(err, &validationErr):
		return fiber.StatusBadRequest, ErrorResponseWithDetails(fiber.StatusBadRequest, "Validation failed", validationErr.Fields)
	case errors.As(err, &structural):
		return fiber.StatusUnprocessableEntity, ErrorResponseWithDetails(fiber.StatusUnprocessableEntity, structural.Error(), fiber.Map{
			"index":  structural.Index,
			"kind":   structural.Kind,
			"reason": structural.Reason,
		})
	case errors.As(err, &decodeErr):
		return fiber.StatusBadRequest, ErrorResponse(fiber.StatusBadRequest, decodeErr.Error())
	case errors.As(err, &dangling):
		return fiber.StatusConflict, ErrorResponse(fiber.StatusConflict, dangling.Error())
	case errors.As(err, &commitErr):
		failures := make([]uploadFailure, len(commitErr.UploadErrors))
		for i, ue := range commitErr.UploadErrors {
			failures[i] = uploadFailure{TemporaryId: ue.TemporaryID, Error: ue.Cause.Error()}
		}
		return fiber.StatusBadGateway, ErrorResponseWithDetails(fiber.StatusBadGateway, "Some images failed to upload, retry the commit", failures)
	case errors.As(err, &persistErr):
		return fiber.StatusInternalServerError, ErrorResponse(fiber.StatusInternalServerError, "Failed to save post")
	case errors.Is(err, draft.ErrSessionClosed), errors.Is(err, draft.ErrSessionDiscarded):
		return fiber.StatusGone, ErrorResponse(fiber.StatusGone, err.Error())
	case errors.Is(err, draft.ErrCommitInProgress):
		return fiber.StatusConflict, ErrorResponse(fiber.StatusConflict, err.Error())
	case errors.Is(err, draft.ErrEmptyPayload):
		return fiber.StatusBadRequest, ErrorResponse(fiber.StatusBadRequest, err.Error())
	case errors.As(err, &renderErr):
		return fiber.StatusInternalServerError, ErrorResponse(fiber.StatusInternalServerError, "Content unavailable")
	case errors.Is(err, ErrNotFound):
		return fiber.StatusNotFound, ErrorResponse(fiber.StatusNotFound, err.Error())
	case errors.Is(err, ErrConflict):
		return fiber.StatusConflict, ErrorResponse(fiber.StatusConflict, err.Error())
	case errors.Is(err, ErrBadRequest):
		return fiber.StatusBadRequest, ErrorResponse(fiber.StatusBadRequest, err.Error())
	case errors.As(err, &fiberErr):
		return fiberErr.Code, ErrorResponse(fiberErr.Code, fiberErr.Message)
	}
	return fiber.StatusInternalServerError, ErrorResponse(fiber.StatusInternalServerError, "Internal server error")
}
