package dto

// Keys of mail events published to the broker.
const (
	EventVerifyEmail   = "user.verify_email"
	EventResetPassword = "user.reset_password"
)

type VerifyEmailEvent struct {
	UserID    uint   `json:"user_id"`
	Email     string `json:"email"`
	Code      string `json:"code"`
	ExpiresAt string `json:"expires_at"`
}

type ResetPasswordEvent struct {
	UserID    uint   `json:"user_id"`
	Email     string `json:"email"`
	ResetLink string `json:"reset_link"`
}
