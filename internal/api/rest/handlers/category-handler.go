package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/sundaymarket/shop_service/internal/dto"
	"github.com/sundaymarket/shop_service/internal/helper/utils"
	"github.com/sundaymarket/shop_service/internal/services"
)

type CategoryHandler struct {
	svc services.CategoryService
}

func NewCategoryHandler(svc services.CategoryService) *CategoryHandler {
	return &CategoryHandler{svc: svc}
}

func (h *CategoryHandler) SetupPublicRoutes(app *fiber.App) {
	api := app.Group("/api")

	category := api.Group("/category")

	category.Get("/list", h.ListCategories)
}

func (h *CategoryHandler) SetupAdminRoutes(app *fiber.App, adminOnly fiber.Handler) {
	api := app.Group("/api")

	category := api.Group("/category", adminOnly)

	category.Post("/create", h.CreateCategory)
	category.Delete("/:categoryId/delete", h.DeleteCategory)
}

func (h *CategoryHandler) ListCategories(ctx *fiber.Ctx) error {
	categories, err := h.svc.GetAllCategories()
	if err != nil {
		return utils.ResponseAppError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, categories)
}

func (h *CategoryHandler) CreateCategory(ctx *fiber.Ctx) error {
	var requestBody dto.CreateCategoryRequest

	if err := ctx.BodyParser(&requestBody); err != nil || requestBody.Name == "" {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "category name is required")
	}

	category, err := h.svc.CreateCategory(requestBody.Name)
	if err != nil {
		return utils.ResponseAppError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusCreated, category)
}

func (h *CategoryHandler) DeleteCategory(ctx *fiber.Ctx) error {
	categoryID, err := strconv.ParseUint(ctx.Params("categoryId"), 10, 32)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "invalid category id")
	}

	msg, err := h.svc.DeleteCategory(uint(categoryID))
	if err != nil {
		return utils.ResponseAppError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, msg)
}
