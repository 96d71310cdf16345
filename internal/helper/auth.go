package helper

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/sundaymarket/shop_service/internal/dto"
	"golang.org/x/crypto/bcrypt"
)

const (
	sessionTTL = time.Hour
	resetTTL   = 15 * time.Minute
	otpTTL     = 10 * time.Minute

	resetAction = "reset_password"
)

type Auth struct {
	Secret string
}

func SetupAuth(s string) Auth {
	return Auth{
		Secret: s,
	}
}

// GenerateToken issues a session token. Role travels in the claims for
// convenience only; admin checks re-read the user row.
func (a Auth) GenerateToken(userID uint, email, role string) (string, error) {
	if userID == 0 || email == "" {
		return "", errors.New("required inputs are missing to generate token")
	}

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
		"email":   email,
		"role":    role,
		"iat":     now.Unix(),
		"exp":     now.Add(sessionTTL).Unix(),
	})

	tokenStr, err := token.SignedString([]byte(a.Secret))
	if err != nil {
		return "", errors.New("unable to sign the token")
	}

	return tokenStr, nil
}

// VerifyToken accepts "Bearer <token>" or a bare token. Purpose-scoped
// tokens (those carrying an action claim) are never valid sessions.
func (a Auth) VerifyToken(tokenString string) (dto.AuthClaims, error) {
	claims, err := a.parse(tokenString)
	if err != nil {
		return dto.AuthClaims{}, err
	}

	if _, scoped := claims["action"]; scoped {
		return dto.AuthClaims{}, errors.New("not a session token")
	}

	userID, ok := claims["user_id"].(float64)
	if !ok || userID <= 0 {
		return dto.AuthClaims{}, errors.New("invalid token claims")
	}
	email, _ := claims["email"].(string)
	role, _ := claims["role"].(string)

	return dto.AuthClaims{
		UserID: uint(userID),
		Email:  email,
		Role:   role,
	}, nil
}

// GenerateResetToken issues a short-lived token usable only by the
// password-reset endpoint.
func (a Auth) GenerateResetToken(userID uint, email string) (string, error) {
	if userID == 0 || email == "" {
		return "", errors.New("required inputs are missing to generate token")
	}

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
		"email":   email,
		"action":  resetAction,
		"iat":     now.Unix(),
		"exp":     now.Add(resetTTL).Unix(),
	})

	tokenStr, err := token.SignedString([]byte(a.Secret))
	if err != nil {
		return "", errors.New("unable to sign the token")
	}

	return tokenStr, nil
}

// VerifyResetToken rejects session tokens: the action marker must match.
func (a Auth) VerifyResetToken(tokenString string) (dto.AuthClaims, error) {
	claims, err := a.parse(tokenString)
	if err != nil {
		return dto.AuthClaims{}, err
	}

	action, _ := claims["action"].(string)
	if action != resetAction {
		return dto.AuthClaims{}, errors.New("invalid reset token")
	}

	userID, ok := claims["user_id"].(float64)
	if !ok || userID <= 0 {
		return dto.AuthClaims{}, errors.New("invalid token claims")
	}
	email, _ := claims["email"].(string)

	return dto.AuthClaims{
		UserID: uint(userID),
		Email:  email,
	}, nil
}

func (a Auth) parse(tokenString string) (jwt.MapClaims, error) {
	tokenString = strings.TrimSpace(tokenString)
	if tokenString == "" {
		return nil, errors.New("missing token")
	}

	if strings.HasPrefix(strings.ToLower(tokenString), "bearer ") {
		parts := strings.SplitN(tokenString, " ", 2)
		if len(parts) != 2 || strings.TrimSpace(parts[1]) == "" {
			return nil, errors.New("invalid token format")
		}
		tokenString = strings.TrimSpace(parts[1])
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(a.Secret), nil
	})
	if err != nil {
		return nil, errors.New("invalid or expired token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token claims")
	}

	return claims, nil
}

func (a Auth) GetCurrentUser(ctx *fiber.Ctx) (dto.AuthClaims, error) {
	u := ctx.Locals("user")
	claims, ok := u.(dto.AuthClaims)
	if !ok {
		return dto.AuthClaims{}, errors.New("missing auth user in context")
	}
	return claims, nil
}

func (a Auth) VerifyPassword(plain, hashed string) error {
	if err := bcrypt.CompareHashAndPassword(
		[]byte(hashed),
		[]byte(plain),
	); err != nil {
		return errors.New("invalid email or password")
	}
	return nil
}

func HashPassword(plain string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", errors.New("failed to hash password")
	}
	return string(hashed), nil
}

// GenerateOTP returns a 6-digit code, its bcrypt hash and the expiry.
// Only the hash is ever persisted.
func GenerateOTP() (code string, hash string, expiresAt time.Time, err error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", "", time.Time{}, errors.New("failed to generate code")
	}
	code = fmt.Sprintf("%06d", n.Int64()+100000)

	hashed, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return "", "", time.Time{}, errors.New("failed to hash code")
	}

	return code, string(hashed), time.Now().Add(otpTTL), nil
}

func VerifyOTP(code, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(code)) == nil
}
