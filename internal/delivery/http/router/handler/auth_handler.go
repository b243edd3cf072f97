package handler

import (
	"log/slog"
	"net/http"
	"strings"

	"contacts/internal/delivery/http/response"
	"contacts/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// AuthHandler holds dependencies for the authentication endpoints.
type AuthHandler struct {
	uc     usecase.UserUsecase
	logger *slog.Logger
}

// NewAuthHandler is the constructor for AuthHandler, injected by Fx.
func NewAuthHandler(uc usecase.UserUsecase, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{uc: uc, logger: logger}
}

// SignupRequest is the registration payload.
type SignupRequest struct {
	Username string `json:"username" validate:"required,min=5,max=16"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

// LoginRequest is the login payload.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// EmailRequest carries a single email address, used by the resend and reset
// endpoints.
type EmailRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// SetPasswordRequest carries the replacement password for a reset.
type SetPasswordRequest struct {
	Password string `json:"password" validate:"required,min=6,max=72"`
}

// Signup handles the account registration request.
func (h *AuthHandler) Signup(c echo.Context) error {
	var input SignupRequest
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid registration input")
	}
	if err := c.Validate(&input); err != nil {
		return errors.WithStack(err)
	}

	output, err := h.uc.Register(c.Request().Context(), usecase.RegisterInput{
		Username: input.Username,
		Email:    input.Email,
		Password: input.Password,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, toUserResponse(output.User),
		"User successfully created. Check your email for confirmation.")
}

// Login handles the credential login request.
func (h *AuthHandler) Login(c echo.Context) error {
	var input LoginRequest
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid login input")
	}
	if err := c.Validate(&input); err != nil {
		return errors.WithStack(err)
	}

	output, err := h.uc.Login(c.Request().Context(), usecase.LoginInput{
		Email:    input.Email,
		Password: input.Password,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, &TokenPairResponse{
		AccessToken:  output.AccessToken,
		RefreshToken: output.RefreshToken,
		TokenType:    "bearer",
	}, "Login successful")
}

// RefreshToken exchanges the bearer refresh token for a new pair.
func (h *AuthHandler) RefreshToken(c echo.Context) error {
	authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
	token := strings.TrimPrefix(authHeader, "Bearer ")
	if authHeader == "" || token == authHeader || token == "" {
		c.Response().Header().Set(echo.HeaderWWWAuthenticate, "Bearer")

		return response.Unauthorized(c, "INVALID_CREDENTIALS", "Authorization header must carry a bearer token")
	}

	output, err := h.uc.Refresh(c.Request().Context(), token)
	if err != nil {
		c.Response().Header().Set(echo.HeaderWWWAuthenticate, "Bearer")

		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, &TokenPairResponse{
		AccessToken:  output.AccessToken,
		RefreshToken: output.RefreshToken,
		TokenType:    "bearer",
	}, "Token refreshed successfully")
}

// ConfirmEmail handles the emailed confirmation link.
func (h *AuthHandler) ConfirmEmail(c echo.Context) error {
	output, err := h.uc.ConfirmEmail(c.Request().Context(), c.Param("token"))
	if err != nil {
		return errors.WithStack(err)
	}

	message := "Email confirmed"
	if output.AlreadyConfirmed {
		message = "Your email is already confirmed"
	}

	return response.Success(c, http.StatusOK, nil, message)
}

// RequestEmail re-sends the confirmation mail. The answer does not reveal
// whether the account exists.
func (h *AuthHandler) RequestEmail(c echo.Context) error {
	var input EmailRequest
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid email input")
	}
	if err := c.Validate(&input); err != nil {
		return errors.WithStack(err)
	}

	if err := h.uc.RequestEmailConfirmation(c.Request().Context(), input.Email); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Check your email for confirmation.")
}

// ResetPassword mails a password reset link. The answer does not reveal
// whether the account exists.
func (h *AuthHandler) ResetPassword(c echo.Context) error {
	var input EmailRequest
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid email input")
	}
	if err := c.Validate(&input); err != nil {
		return errors.WithStack(err)
	}

	if err := h.uc.RequestPasswordReset(c.Request().Context(), input.Email); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Check your email for the reset link.")
}

// SetPassword stores the new password for the account behind the token.
func (h *AuthHandler) SetPassword(c echo.Context) error {
	var input SetPasswordRequest
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid password input")
	}
	if err := c.Validate(&input); err != nil {
		return errors.WithStack(err)
	}

	err := h.uc.ResetPassword(c.Request().Context(), usecase.ResetPasswordInput{
		Token:       c.Param("token"),
		NewPassword: input.Password,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Password updated")
}
