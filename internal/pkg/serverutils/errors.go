package serverutils

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

// AppError is the service-layer error type. Status maps straight to the
// HTTP answer; Message is safe to show the user.
type AppError struct {
	Status  int
	Message string
}

func (e *AppError) Error() string {
	return e.Message
}

func NewBadRequest(message string) *AppError {
	return &AppError{Status: fiber.StatusBadRequest, Message: message}
}

func NewUnauthorized(message string) *AppError {
	return &AppError{Status: fiber.StatusUnauthorized, Message: message}
}

func NewForbidden(message string) *AppError {
	return &AppError{Status: fiber.StatusForbidden, Message: message}
}

func NewNotFound(message string) *AppError {
	return &AppError{Status: fiber.StatusNotFound, Message: message}
}

func NewConflict(message string) *AppError {
	return &AppError{Status: fiber.StatusConflict, Message: message}
}

// ErrorHandler turns service errors into JSON envelopes. Wire it as the
// fiber app's ErrorHandler.
func ErrorHandler(ctx *fiber.Ctx, err error) error {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return ctx.Status(appErr.Status).JSON(ErrorResponse(appErr.Status, appErr.Message))
	}

	var valErr *ValidationError
	if errors.As(err, &valErr) {
		return ctx.Status(fiber.StatusBadRequest).JSON(ErrorResponse(fiber.StatusBadRequest, valErr.Message))
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return ctx.Status(fiberErr.Code).JSON(ErrorResponse(fiberErr.Code, fiberErr.Message))
	}

	return ctx.Status(fiber.StatusInternalServerError).JSON(ErrorResponse(fiber.StatusInternalServerError, "Internal server error"))
}
