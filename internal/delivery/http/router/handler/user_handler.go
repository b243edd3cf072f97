package handler

import (
	"log/slog"
	"net/http"

	deliverycontext "contacts/internal/delivery/context"
	"contacts/internal/delivery/http/response"
	"contacts/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// UserHandler holds dependencies for the authenticated profile endpoints.
type UserHandler struct {
	uc     usecase.UserUsecase
	logger *slog.Logger
}

// NewUserHandler is the constructor for UserHandler, injected by Fx.
func NewUserHandler(uc usecase.UserUsecase, logger *slog.Logger) *UserHandler {
	return &UserHandler{uc: uc, logger: logger}
}

// Me returns the authenticated user's profile.
func (h *UserHandler) Me(c echo.Context) error {
	user := deliverycontext.GetCurrentUser(c)
	if user == nil {
		return response.Unauthorized(c, "INVALID_CREDENTIALS", "Could not validate credentials")
	}

	return response.Success(c, http.StatusOK, toUserResponse(user), "")
}

// UpdateAvatar replaces the authenticated user's avatar from a multipart
// upload under the "file" field.
func (h *UserHandler) UpdateAvatar(c echo.Context) error {
	user := deliverycontext.GetCurrentUser(c)
	if user == nil {
		return response.Unauthorized(c, "INVALID_CREDENTIALS", "Could not validate credentials")
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Avatar file is missing")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return errors.Wrap(err, "failed to open uploaded avatar")
	}
	defer file.Close()

	updated, err := h.uc.UpdateAvatar(c.Request().Context(), usecase.UpdateAvatarInput{
		Email:       user.Email,
		Username:    user.Username,
		ContentType: fileHeader.Header.Get(echo.HeaderContentType),
		Body:        file,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toUserResponse(updated), "Avatar updated")
}
