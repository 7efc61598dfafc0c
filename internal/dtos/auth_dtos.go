package dtos

import "github.com/crowdhq/crowd-client-go/internal/models"

// -----------------------------------------------------------------------------
// Requests
// -----------------------------------------------------------------------------

type RegisterRequest struct {
	Name     string      `json:"name" validate:"required"`
	Email    string      `json:"email" validate:"required,email"`
	Phone    string      `json:"phone" validate:"required"`
	Password string      `json:"password" validate:"required,min=8"`
	Role     models.Role `json:"role" validate:"required,oneof=tenant landlord agent"`
}

// LoginRequest carries either email+password or phone+password credentials.
type LoginRequest struct {
	Email    string `json:"email,omitempty" validate:"omitempty,email"`
	Phone    string `json:"phone,omitempty"`
	Password string `json:"password" validate:"required"`
}

// VerifyOTPRequest verifies a one-time code. UserID may be left empty; the
// session store threads the pending-verification id from registration.
type VerifyOTPRequest struct {
	UserID           string `json:"userId,omitempty"`
	OTP              string `json:"otp" validate:"required"`
	VerificationType string `json:"verificationType,omitempty" validate:"omitempty,oneof=email phone both"`
}

type ResendOTPRequest struct {
	UserID           string `json:"userId,omitempty"`
	VerificationType string `json:"verificationType,omitempty" validate:"omitempty,oneof=email phone both"`
}

type UpdatePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=8"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email,omitempty" validate:"omitempty,email"`
	Phone string `json:"phone,omitempty"`
}

type ResetPasswordRequest struct {
	Password string `json:"password" validate:"required,min=8"`
}

// -----------------------------------------------------------------------------
// Responses
// -----------------------------------------------------------------------------

// AuthResponse is the top-level body of login / verify-otp / refresh-token.
// Unlike list and mutation endpoints it is not wrapped in a data envelope.
type AuthResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// RegisterResponse is the data payload of /auth/register: the id of the
// account awaiting one-time-code verification.
type RegisterResponse struct {
	UserID string `json:"userId"`
}
