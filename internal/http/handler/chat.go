package handler

import (
	"github.com/gofiber/fiber/v2"

	"wastetracker/internal/service"
)

type chatRequest struct {
	Message string `json:"message"`
}

// Chat answers a message from the assistant.
//
//	@Summary	Ask the assistant
//	@Tags		chat
//	@Accept		json
//	@Produce	json
//	@Param		body	body		chatRequest	true	"Message"
//	@Success	200		{object}	map[string]string
//	@Failure	400		{object}	errorPayload
//	@Router		/chat [post]
func Chat(svc service.ChatService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req chatRequest
		if err := c.BodyParser(&req); err != nil {
			return serviceError(c, badRequest("INVALID_BODY", "request body must be a JSON object"))
		}
		text, err := svc.Chat(c.UserContext(), req.Message)
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(fiber.Map{"response": text})
	}
}
