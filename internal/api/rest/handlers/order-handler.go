package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sundaymarket/shop_service/internal/dto"
	"github.com/sundaymarket/shop_service/internal/helper/utils"
	"github.com/sundaymarket/shop_service/internal/services"
)

type OrderHandler struct {
	svc services.OrderService
}

func NewOrderHandler(svc services.OrderService) *OrderHandler {
	return &OrderHandler{svc: svc}
}

// SetupRoutes registers the order routes for signed-in users.
func (h *OrderHandler) SetupRoutes(app *fiber.App) {
	api := app.Group("/api")

	order := api.Group("/order")

	order.Post("/create", h.Checkout)
	order.Get("/list", h.ListMyOrders)
}

// SetupAdminRoutes registers the order review routes for administrators.
func (h *OrderHandler) SetupAdminRoutes(app *fiber.App, adminOnly fiber.Handler) {
	api := app.Group("/api")

	order := api.Group("/order/admin", adminOnly)

	order.Get("/list", h.ListAllOrders)
	order.Get("/status/:status", h.ListOrdersByStatus)
}

func (h *OrderHandler) Checkout(ctx *fiber.Ctx) error {
	userID, ok := currentUserID(ctx)
	if !ok {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, "sign in required")
	}

	var requestBody dto.CreateOrderRequest
	if err := ctx.BodyParser(&requestBody); err != nil || requestBody.AddressID == 0 {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "a delivery address is required")
	}

	order, err := h.svc.Checkout(userID, requestBody.AddressID)
	if err != nil {
		return utils.ResponseAppError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusCreated, order)
}

func (h *OrderHandler) ListMyOrders(ctx *fiber.Ctx) error {
	userID, ok := currentUserID(ctx)
	if !ok {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, "sign in required")
	}

	orders, err := h.svc.GetOrdersByUser(userID)
	if err != nil {
		return utils.ResponseAppError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, orders)
}

func (h *OrderHandler) ListAllOrders(ctx *fiber.Ctx) error {
	page := ctx.QueryInt("page", 1)
	limit := ctx.QueryInt("limit", 10)

	result, err := h.svc.GetAllOrders(page, limit)
	if err != nil {
		return utils.ResponseAppError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, result)
}

func (h *OrderHandler) ListOrdersByStatus(ctx *fiber.Ctx) error {
	page := ctx.QueryInt("page", 1)
	limit := ctx.QueryInt("limit", 10)

	result, err := h.svc.GetOrdersByStatus(ctx.Params("status"), page, limit)
	if err != nil {
		return utils.ResponseAppError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, result)
}
