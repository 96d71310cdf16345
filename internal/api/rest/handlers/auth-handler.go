package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sundaymarket/shop_service/internal/api/rest/middleware"
	"github.com/sundaymarket/shop_service/internal/dto"
	"github.com/sundaymarket/shop_service/internal/helper/utils"
	"github.com/sundaymarket/shop_service/internal/services"
)

type AuthHandler struct {
	svc services.AuthService
}

func NewAuthHandler(svc services.AuthService) *AuthHandler {
	return &AuthHandler{svc: svc}
}

func (h *AuthHandler) SetupRoutes(app *fiber.App) {
	api := app.Group("/api")

	auth := api.Group("/auth")

	auth.Post("/sign-up", h.SignUp)
	auth.Post("/verify-otp", h.VerifyOTP)
	auth.Post("/new-otp", h.NewOTP)
	auth.Post("/sign-in", h.SignIn)
	auth.Post("/log-out", h.LogOut)
	auth.Post("/request-password-reset", h.RequestPasswordReset)
	auth.Post("/reset-password", h.ResetPassword)
}

func (h *AuthHandler) SignUp(ctx *fiber.Ctx) error {
	var requestBody dto.SignUpRequest

	if err := ctx.BodyParser(&requestBody); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "please provide valid inputs")
	}

	if err := h.svc.SignUp(requestBody); err != nil {
		return utils.ResponseAppError(ctx, err)
	}

	return utils.ResponseSuccess(ctx, fiber.StatusCreated, "account created, check your email for the verification code")
}

func (h *AuthHandler) VerifyOTP(ctx *fiber.Ctx) error {
	var requestBody dto.VerifyOTPRequest

	if err := ctx.BodyParser(&requestBody); err != nil || requestBody.Email == "" || requestBody.OTP == "" {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "email and code are required")
	}

	token, err := h.svc.VerifyOTP(requestBody)
	if err != nil {
		return utils.ResponseAppError(ctx, err)
	}

	setSessionCookie(ctx, token)
	return utils.ResponseSuccess(ctx, fiber.StatusOK, fiber.Map{
		"token": token,
	})
}

func (h *AuthHandler) NewOTP(ctx *fiber.Ctx) error {
	var requestBody dto.NewOTPRequest

	if err := ctx.BodyParser(&requestBody); err != nil || requestBody.Email == "" {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "email is required")
	}

	if err := h.svc.SendNewOTP(requestBody.Email); err != nil {
		return utils.ResponseAppError(ctx, err)
	}

	return utils.ResponseSuccess(ctx, fiber.StatusOK, "a new verification code has been sent")
}

func (h *AuthHandler) SignIn(ctx *fiber.Ctx) error {
	var requestBody dto.SignInRequest

	if err := ctx.BodyParser(&requestBody); err != nil || requestBody.Email == "" || requestBody.Password == "" {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "email and password are required")
	}

	token, err := h.svc.SignIn(requestBody)
	if err != nil {
		return utils.ResponseAppError(ctx, err)
	}

	setSessionCookie(ctx, token)
	return utils.ResponseSuccess(ctx, fiber.StatusOK, fiber.Map{
		"token": token,
	})
}

func (h *AuthHandler) LogOut(ctx *fiber.Ctx) error {
	ctx.Cookie(&fiber.Cookie{
		Name:     middleware.AccessTokenCookie,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteStrictMode,
	})
	return utils.ResponseSuccess(ctx, fiber.StatusOK, "logged out")
}

func (h *AuthHandler) RequestPasswordReset(ctx *fiber.Ctx) error {
	var requestBody dto.RequestPasswordResetRequest

	if err := ctx.BodyParser(&requestBody); err != nil || requestBody.Email == "" {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "please provide a valid email")
	}

	if err := h.svc.RequestPasswordReset(requestBody.Email); err != nil {
		return utils.ResponseAppError(ctx, err)
	}

	return utils.ResponseSuccess(ctx, fiber.StatusOK, "password reset link sent")
}

func (h *AuthHandler) ResetPassword(ctx *fiber.Ctx) error {
	var requestBody dto.ResetPasswordRequest

	if err := ctx.BodyParser(&requestBody); err != nil || requestBody.Token == "" || requestBody.Password == "" {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "token and new password are required")
	}

	if err := h.svc.ResetPassword(requestBody); err != nil {
		return utils.ResponseAppError(ctx, err)
	}

	return utils.ResponseSuccess(ctx, fiber.StatusOK, "password has been reset, you can sign in now")
}

func setSessionCookie(ctx *fiber.Ctx, token string) {
	ctx.Cookie(&fiber.Cookie{
		Name:     middleware.AccessTokenCookie,
		Value:    token,
		Expires:  time.Now().Add(time.Hour),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteStrictMode,
	})
}
