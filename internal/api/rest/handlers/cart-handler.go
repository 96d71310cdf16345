package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/sundaymarket/shop_service/internal/dto"
	"github.com/sundaymarket/shop_service/internal/helper/utils"
	"github.com/sundaymarket/shop_service/internal/services"
)

type CartHandler struct {
	svc services.CartService
}

func NewCartHandler(svc services.CartService) *CartHandler {
	return &CartHandler{svc: svc}
}

// SetupRoutes registers the cart routes. Everything here requires a
// signed-in user, so call it after the auth middleware is installed.
func (h *CartHandler) SetupRoutes(app *fiber.App) {
	api := app.Group("/api")

	cart := api.Group("/cart")

	cart.Get("/", h.GetCart)
	cart.Post("/validate", h.ValidateStock)
	cart.Post("/add", h.AddItem)
	cart.Delete("/remove/:productId", h.RemoveItem)
	cart.Delete("/clear", h.ClearCart)
}

func (h *CartHandler) GetCart(ctx *fiber.Ctx) error {
	userID, ok := currentUserID(ctx)
	if !ok {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, "sign in required")
	}

	cart, err := h.svc.GetCart(userID)
	if err != nil {
		return utils.ResponseAppError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, cart)
}

func (h *CartHandler) ValidateStock(ctx *fiber.Ctx) error {
	var requestBody dto.AddToCartRequest

	if err := ctx.BodyParser(&requestBody); err != nil || requestBody.ProductSlug == "" {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "product slug and quantity are required")
	}

	result, err := h.svc.ValidateStock(requestBody)
	if err != nil {
		return utils.ResponseAppError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, result)
}

func (h *CartHandler) AddItem(ctx *fiber.Ctx) error {
	userID, ok := currentUserID(ctx)
	if !ok {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, "sign in required")
	}

	var requestBody dto.AddToCartRequest
	if err := ctx.BodyParser(&requestBody); err != nil || requestBody.ProductSlug == "" {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "product slug and quantity are required")
	}

	item, err := h.svc.AddItem(userID, requestBody)
	if err != nil {
		return utils.ResponseAppError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, item)
}

func (h *CartHandler) RemoveItem(ctx *fiber.Ctx) error {
	userID, ok := currentUserID(ctx)
	if !ok {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, "sign in required")
	}

	productID, err := strconv.ParseUint(ctx.Params("productId"), 10, 32)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "invalid product id")
	}

	if err := h.svc.RemoveItem(userID, uint(productID)); err != nil {
		return utils.ResponseAppError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, "item removed from cart")
}

func (h *CartHandler) ClearCart(ctx *fiber.Ctx) error {
	userID, ok := currentUserID(ctx)
	if !ok {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, "sign in required")
	}

	if err := h.svc.ClearCart(userID); err != nil {
		return utils.ResponseAppError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, "cart cleared")
}

func currentUserID(ctx *fiber.Ctx) (uint, bool) {
	id, ok := ctx.Locals("userID").(uint)
	return id, ok
}
