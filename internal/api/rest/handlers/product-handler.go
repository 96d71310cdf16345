package handlers

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sundaymarket/shop_service/internal/dto"
	"github.com/sundaymarket/shop_service/internal/helper/utils"
	"github.com/sundaymarket/shop_service/internal/services"
	pkgutils "github.com/sundaymarket/shop_service/pkg/utils"
)

const maxImageSize = 5 * 1024 * 1024 // 5MB

var allowedImageExt = map[string]bool{".jpg": true, ".jpeg": true, ".png": true, ".webp": true}

type ProductHandler struct {
	svc       services.ProductService
	uploadDir string
	baseURL   string
}

func NewProductHandler(svc services.ProductService, uploadDir, baseURL string) *ProductHandler {
	return &ProductHandler{svc: svc, uploadDir: uploadDir, baseURL: baseURL}
}

// SetupPublicRoutes registers the catalog routes that need no session.
func (h *ProductHandler) SetupPublicRoutes(app *fiber.App) {
	api := app.Group("/api")

	product := api.Group("/product")

	product.Get("/list", h.ListProducts)
	product.Get("/search", h.SearchProducts)
	product.Get("/category/:category", h.ListByCategory)
	product.Get("/:slug", h.GetProduct)
}

// SetupAdminRoutes registers the catalog management routes. Wire them
// behind the auth middleware and the admin guard.
func (h *ProductHandler) SetupAdminRoutes(app *fiber.App, adminOnly fiber.Handler) {
	api := app.Group("/api")

	product := api.Group("/product", adminOnly)

	product.Post("/create", h.CreateProduct)
	product.Patch("/:slug/update", h.UpdateProduct)
	product.Patch("/:slug/image", h.UploadProductImage)
	product.Delete("/:slug/delete", h.DeleteProduct)
	product.Patch("/:slug/category/:category", h.AssignToCategory)
	product.Delete("/:slug/category", h.RemoveFromCategory)
}

func (h *ProductHandler) ListProducts(ctx *fiber.Ctx) error {
	page := ctx.QueryInt("page", 1)
	limit := ctx.QueryInt("limit", 10)

	result, err := h.svc.GetAllProducts(page, limit)
	if err != nil {
		return utils.ResponseAppError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, result)
}

func (h *ProductHandler) SearchProducts(ctx *fiber.Ctx) error {
	query := strings.TrimSpace(ctx.Query("q"))
	page := ctx.QueryInt("page", 1)
	limit := ctx.QueryInt("limit", 10)

	result, err := h.svc.SearchProducts(query, page, limit)
	if err != nil {
		return utils.ResponseAppError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, result)
}

func (h *ProductHandler) ListByCategory(ctx *fiber.Ctx) error {
	page := ctx.QueryInt("page", 1)
	limit := ctx.QueryInt("limit", 10)

	result, err := h.svc.GetProductsByCategory(ctx.Params("category"), page, limit)
	if err != nil {
		return utils.ResponseAppError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, result)
}

func (h *ProductHandler) GetProduct(ctx *fiber.Ctx) error {
	product, err := h.svc.GetProductBySlug(ctx.Params("slug"))
	if err != nil {
		return utils.ResponseAppError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, product)
}

func (h *ProductHandler) CreateProduct(ctx *fiber.Ctx) error {
	var requestBody dto.CreateProductRequest

	if err := ctx.BodyParser(&requestBody); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "please provide valid inputs")
	}

	product, err := h.svc.CreateProduct(requestBody)
	if err != nil {
		return utils.ResponseAppError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusCreated, product)
}

func (h *ProductHandler) UpdateProduct(ctx *fiber.Ctx) error {
	var requestBody dto.UpdateProductRequest

	if err := ctx.BodyParser(&requestBody); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "please provide valid inputs")
	}

	if err := h.svc.UpdateProduct(ctx.Params("slug"), requestBody); err != nil {
		return utils.ResponseAppError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, "product updated")
}

// UploadProductImage stores the image on local disk and records the
// public URL on the product.
// form-data: file=<image>
func (h *ProductHandler) UploadProductImage(ctx *fiber.Ctx) error {
	file, err := ctx.FormFile("file")
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "file is required")
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedImageExt[ext] {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "only jpg/jpeg/png/webp allowed")
	}
	if file.Size > maxImageSize {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "file too large (max 5MB)")
	}

	f, err := file.Open()
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusInternalServerError, "cannot open uploaded file")
	}
	defer f.Close()

	// Size on the part header is client supplied, so the read is capped too.
	data, err := pkgutils.ReadAllLimit(f, maxImageSize)
	if err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "file too large (max 5MB)")
	}

	name := uuid.NewString() + ext
	if err := os.MkdirAll(h.uploadDir, 0o755); err != nil {
		return utils.ResponseError(ctx, fiber.StatusInternalServerError, "cannot store uploaded file")
	}
	if err := os.WriteFile(filepath.Join(h.uploadDir, name), data, 0o644); err != nil {
		return utils.ResponseError(ctx, fiber.StatusInternalServerError, "cannot store uploaded file")
	}

	imageURL := fmt.Sprintf("%s/uploads/%s", strings.TrimRight(h.baseURL, "/"), name)
	if err := h.svc.UpdateProductImage(ctx.Params("slug"), imageURL); err != nil {
		return utils.ResponseAppError(ctx, err)
	}

	return utils.ResponseSuccess(ctx, fiber.StatusOK, fiber.Map{
		"imageUrl": imageURL,
	})
}

func (h *ProductHandler) DeleteProduct(ctx *fiber.Ctx) error {
	if err := h.svc.DeleteProduct(ctx.Params("slug")); err != nil {
		return utils.ResponseAppError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, "product deleted")
}

func (h *ProductHandler) AssignToCategory(ctx *fiber.Ctx) error {
	if err := h.svc.AssignToCategory(ctx.Params("slug"), ctx.Params("category")); err != nil {
		return utils.ResponseAppError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, "product assigned to category")
}

func (h *ProductHandler) RemoveFromCategory(ctx *fiber.Ctx) error {
	if err := h.svc.RemoveFromCategory(ctx.Params("slug")); err != nil {
		return utils.ResponseAppError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, "product removed from category")
}
