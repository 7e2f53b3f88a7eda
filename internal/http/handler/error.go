package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"wastetracker/internal/assistant"
	"wastetracker/internal/http/middleware"
	"wastetracker/internal/service"
)

// errorPayload defines the standardized error response body.
type errorPayload struct {
	RequestID string        `json:"request_id"`
	Error     errorEnvelope `json:"error"`
}

type errorEnvelope struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// writeError writes a standardized JSON error response. message must be safe
// to show to clients.
func writeError(c *fiber.Ctx, status int, code, message string) error {
	res := errorPayload{
		RequestID: middleware.RequestIDFrom(c),
		Error: errorEnvelope{
			Code:    code,
			Message: message,
		},
	}
	return c.Status(status).JSON(res)
}

// requestError rejects malformed request input before any service is called.
type requestError struct {
	status  int
	code    string
	message string
}

func (e *requestError) Error() string { return e.message }

func badRequest(code, message string) error {
	return &requestError{status: fiber.StatusBadRequest, code: code, message: message}
}

// serviceError translates service and assistant errors into the envelope.
// Unknown errors are logged and reported as INTERNAL_ERROR.
func serviceError(c *fiber.Ctx, err error) error {
	var (
		rerr *requestError
		verr *service.ValidationError
	)
	switch {
	case errors.As(err, &rerr):
		return writeError(c, rerr.status, rerr.code, rerr.message)
	case errors.As(err, &verr):
		return writeError(c, fiber.StatusBadRequest, verr.Code, verr.Message)
	case errors.Is(err, service.ErrIDRequired), errors.Is(err, service.ErrInvalidID):
		return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
	case errors.Is(err, service.ErrNotFound):
		return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "resource not found")
	case errors.Is(err, service.ErrReaderNil), errors.Is(err, service.ErrEmptyFile):
		return writeError(c, fiber.StatusBadRequest, "FILE_EMPTY", "uploaded file is empty")
	case errors.Is(err, service.ErrFileTooLarge):
		return writeError(c, fiber.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", "uploaded file is too large")
	case errors.Is(err, service.ErrUnsupportedMediaType):
		return writeError(c, fiber.StatusUnsupportedMediaType, "UNSUPPORTED_MEDIA_TYPE", "only image uploads are supported")
	case errors.Is(err, service.ErrRecognitionFailed):
		zap.L().Warn("recognition failed", zap.String("request_id", middleware.RequestIDFrom(c)), zap.Error(err))
		return writeError(c, fiber.StatusBadGateway, "RECOGNITION_FAILED", "food recognition is unavailable, try again later")
	case errors.Is(err, service.ErrUnknownChart):
		return writeError(c, fiber.StatusBadRequest, "INVALID_CHART", "chart must be one of: daily, category, monthly")
	case errors.Is(err, assistant.ErrMessageRequired):
		return writeError(c, fiber.StatusBadRequest, "MESSAGE_REQUIRED", "message is required")
	default:
		zap.L().Error("request failed",
			zap.String("request_id", middleware.RequestIDFrom(c)),
			zap.String("path", c.Path()),
			zap.Error(err),
		)
		return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
	}
}

// ErrorHandler returns a Fiber global error handler that standardizes error responses.
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status := fiber.StatusInternalServerError
		if e, ok := err.(*fiber.Error); ok {
			status = e.Code
		}

		switch status {
		case fiber.StatusBadRequest:
			return writeError(c, status, "BAD_REQUEST", "bad request")
		case fiber.StatusNotFound:
			return writeError(c, status, "NOT_FOUND", "resource not found")
		case fiber.StatusMethodNotAllowed:
			return writeError(c, status, "METHOD_NOT_ALLOWED", "method not allowed")
		case fiber.StatusRequestEntityTooLarge:
			return writeError(c, status, "FILE_TOO_LARGE", "request body is too large")
		case fiber.StatusUnsupportedMediaType:
			return writeError(c, status, "UNSUPPORTED_MEDIA_TYPE", "unsupported media type")
		default:
			return writeError(c, status, "INTERNAL_ERROR", "internal server error")
		}
	}
}
