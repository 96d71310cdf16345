package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/sundaymarket/shop_service/internal/dto"
	"github.com/sundaymarket/shop_service/internal/helper/utils"
	"github.com/sundaymarket/shop_service/internal/services"
)

type UserHandler struct {
	svc services.UserService
}

func NewUserHandler(svc services.UserService) *UserHandler {
	return &UserHandler{svc: svc}
}

// SetupRoutes registers the account routes for signed-in users.
func (h *UserHandler) SetupRoutes(app *fiber.App) {
	api := app.Group("/api")

	user := api.Group("/user")

	user.Get("/", h.GetProfile)
	user.Patch("/update", h.UpdateProfile)
	user.Patch("/password", h.UpdatePassword)
	user.Delete("/delete", h.DeleteAccount)

	user.Post("/address/create", h.CreateAddress)
	user.Patch("/address/:addressId/update", h.UpdateAddress)
}

func (h *UserHandler) GetProfile(ctx *fiber.Ctx) error {
	userID, ok := currentUserID(ctx)
	if !ok {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, "sign in required")
	}

	user, err := h.svc.GetProfile(userID)
	if err != nil {
		return utils.ResponseAppError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, user)
}

func (h *UserHandler) UpdateProfile(ctx *fiber.Ctx) error {
	userID, ok := currentUserID(ctx)
	if !ok {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, "sign in required")
	}

	var requestBody dto.UpdateUserRequest
	if err := ctx.BodyParser(&requestBody); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "please provide valid inputs")
	}

	if err := h.svc.UpdateProfile(userID, requestBody); err != nil {
		return utils.ResponseAppError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, "profile updated")
}

func (h *UserHandler) UpdatePassword(ctx *fiber.Ctx) error {
	userID, ok := currentUserID(ctx)
	if !ok {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, "sign in required")
	}

	var requestBody dto.UpdatePasswordRequest
	if err := ctx.BodyParser(&requestBody); err != nil || requestBody.Password == "" {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "password is required")
	}

	if err := h.svc.UpdatePassword(userID, requestBody.Password); err != nil {
		return utils.ResponseAppError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, "password updated")
}

func (h *UserHandler) DeleteAccount(ctx *fiber.Ctx) error {
	userID, ok := currentUserID(ctx)
	if !ok {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, "sign in required")
	}

	if err := h.svc.DeleteAccount(userID); err != nil {
		return utils.ResponseAppError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, "account deleted")
}

func (h *UserHandler) CreateAddress(ctx *fiber.Ctx) error {
	userID, ok := currentUserID(ctx)
	if !ok {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, "sign in required")
	}

	var requestBody dto.CreateAddressRequest
	if err := ctx.BodyParser(&requestBody); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "please provide valid inputs")
	}

	address, err := h.svc.CreateAddress(userID, requestBody)
	if err != nil {
		return utils.ResponseAppError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusCreated, address)
}

func (h *UserHandler) UpdateAddress(ctx *fiber.Ctx) error {
	userID, ok := currentUserID(ctx)
	if !ok {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, "sign in required")
	}

	addressID, err := strconv.ParseUint(ctx.Params("addressId"), 10, 32)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "invalid address id")
	}

	var requestBody dto.UpdateAddressRequest
	if err := ctx.BodyParser(&requestBody); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "please provide valid inputs")
	}

	if err := h.svc.UpdateAddress(userID, uint(addressID), requestBody); err != nil {
		return utils.ResponseAppError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, "address updated")
}
