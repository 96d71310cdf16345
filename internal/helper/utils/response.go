package utils

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/sundaymarket/shop_service/internal/helper"
)

func ResponseError(ctx *fiber.Ctx, status int, msg string) error {
	return ctx.Status(status).JSON(fiber.Map{
		"error": msg,
	})
}

func ResponseSuccess(ctx *fiber.Ctx, status int, data interface{}) error {
	return ctx.Status(status).JSON(fiber.Map{"data": data})
}

// ResponseAppError maps an AppError kind to an HTTP status. Unclassified
// errors keep their cause in the log but reach the caller as a generic
// internal error.
func ResponseAppError(ctx *fiber.Ctx, err error) error {
	var appErr *helper.AppError
	if !errors.As(err, &appErr) {
		log.Printf("unclassified error on %s %s: %v", ctx.Method(), ctx.Path(), err)
		return ResponseError(ctx, fiber.StatusInternalServerError, "internal server error")
	}

	switch appErr.Kind {
	case helper.KindValidation:
		return ResponseError(ctx, fiber.StatusBadRequest, appErr.Message)
	case helper.KindConflict:
		return ResponseError(ctx, fiber.StatusConflict, appErr.Message)
	case helper.KindNotFound:
		return ResponseError(ctx, fiber.StatusNotFound, appErr.Message)
	case helper.KindUnauthorized:
		return ResponseError(ctx, fiber.StatusUnauthorized, appErr.Message)
	case helper.KindForbidden:
		return ResponseError(ctx, fiber.StatusForbidden, appErr.Message)
	default:
		if appErr.Err != nil {
			log.Printf("internal error on %s %s: %v", ctx.Method(), ctx.Path(), appErr.Err)
		}
		return ResponseError(ctx, fiber.StatusInternalServerError, appErr.Message)
	}
}
