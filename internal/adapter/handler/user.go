package handler

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	userDTO "github.com/johnquangdev/meeting-recovery/internal/adapter/dto/user"
	"github.com/johnquangdev/meeting-recovery/internal/adapter/presenter"
	"github.com/johnquangdev/meeting-recovery/internal/usecase/credit"
	"github.com/johnquangdev/meeting-recovery/internal/usecase/user"
)

// User handles account and credit endpoints
type User struct {
	users   *user.Service
	credits *credit.Service
	logger  *zap.Logger
}

// NewUserHandler creates a new user handler
func NewUserHandler(users *user.Service, credits *credit.Service, logger *zap.Logger) *User {
	return &User{users: users, credits: credits, logger: logger}
}

// Me handles GET /api/user
func (h *User) Me(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	profile, err := h.users.GetProfile(c.Request().Context(), userID)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, http.StatusOK, &userDTO.GetUserResponse{
		User: presenter.ToUserResponse(profile),
	})
}

// UpdatePreferences handles PUT /api/user/preferences
func (h *User) UpdatePreferences(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	var req userDTO.UpdatePreferencesRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	stored, err := h.users.UpdatePreferences(c.Request().Context(), userID, req.Preferences)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, http.StatusOK, &userDTO.PreferencesResponse{
		Success:     true,
		Preferences: []byte(stored),
	})
}

// RedeemLicenseKey handles POST /api/redeem-license-key
func (h *User) RedeemLicenseKey(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	var req userDTO.RedeemLicenseKeyRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	result, err := h.credits.Redeem(c.Request().Context(), userID, req.ResolvedKey())
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, http.StatusOK, &userDTO.RedeemLicenseKeyResponse{
		Success: true,
		Message: fmt.Sprintf("License key redeemed. %d credits added.", result.CreditsAdded),
		Credits: result.CreditsAdded,
		Balance: result.Balance,
	})
}
