package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"wastetracker/internal/service"
)

// analyzeForm runs the uploaded "file" form field through svc.
func analyzeForm(c *fiber.Ctx, svc service.FoodImageService) (*service.Analysis, error) {
	fh, err := c.FormFile("file")
	if err != nil {
		return nil, badRequest("FILE_REQUIRED", "file is required")
	}
	if fh.Filename == "" || fh.Size == 0 {
		return nil, badRequest("FILE_EMPTY", "uploaded file is empty")
	}

	f, err := fh.Open()
	if err != nil {
		return nil, badRequest("FILE_OPEN_ERROR", "cannot open uploaded file")
	}
	defer f.Close()

	return svc.Analyze(c.UserContext(), service.FileInput{
		Reader:      f,
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Size:        fh.Size,
	})
}

// Analyze recognizes the food in a photo and describes it in one sentence.
//
//	@Summary	Analyze a food photo
//	@Tags		images
//	@Accept		multipart/form-data
//	@Produce	json
//	@Param		file	formData	file	true	"Food photo"
//	@Success	200		{object}	map[string]string
//	@Failure	400		{object}	errorPayload
//	@Failure	413		{object}	errorPayload
//	@Failure	415		{object}	errorPayload
//	@Failure	502		{object}	errorPayload
//	@Router		/analyze [post]
func Analyze(svc service.FoodImageService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		a, err := analyzeForm(c, svc)
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(fiber.Map{"message": a.Message()})
	}
}

// Upload recognizes the food in a photo and estimates its shelf life.
//
//	@Summary	Upload a food photo
//	@Tags		images
//	@Accept		multipart/form-data
//	@Produce	json
//	@Param		file	formData	file	true	"Food photo"
//	@Success	200		{object}	map[string]string
//	@Failure	400		{object}	errorPayload
//	@Failure	413		{object}	errorPayload
//	@Failure	415		{object}	errorPayload
//	@Failure	502		{object}	errorPayload
//	@Router		/upload [post]
func Upload(svc service.FoodImageService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		a, err := analyzeForm(c, svc)
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(fiber.Map{
			"foodName": a.Result.FoodName,
			"expiry":   a.Expiry(),
		})
	}
}

// ListImages returns stored photos with download links.
//
//	@Summary	List food photos
//	@Tags		images
//	@Produce	json
//	@Param		limit	query		int	false	"default 10"
//	@Param		offset	query		int	false	"default 0"
//	@Success	200		{object}	service.ImageListResult
//	@Router		/images [get]
func ListImages(svc service.FoodImageService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit, offset, err := pageParams(c, 10)
		if err != nil {
			return serviceError(c, err)
		}
		res, err := svc.List(c.UserContext(), limit, offset)
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(res)
	}
}

// GetImage returns one stored photo.
//
//	@Summary	Get a food photo
//	@Tags		images
//	@Produce	json
//	@Param		id	path		string	true	"Image ID"
//	@Success	200	{object}	service.ImageView
//	@Failure	404	{object}	errorPayload
//	@Router		/images/{id} [get]
func GetImage(svc service.FoodImageService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return serviceError(c, badRequest("INVALID_ID", "invalid id format"))
		}
		v, err := svc.Get(c.UserContext(), id)
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(v)
	}
}
