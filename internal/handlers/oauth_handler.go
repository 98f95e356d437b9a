package handlers

import (
	"fmt"
	"log/slog"
	"net/url"

	"github.com/gofiber/fiber/v2"

	"github.com/medimatch/medimatch-backend/internal/apperrors"
	"github.com/medimatch/medimatch-backend/internal/config"
	"github.com/medimatch/medimatch-backend/internal/dto"
	"github.com/medimatch/medimatch-backend/internal/oauth"
	"github.com/medimatch/medimatch-backend/internal/onboarding"
	"github.com/medimatch/medimatch-backend/internal/services"
)

type OAuthHandler struct {
	service *services.OAuthService
	google  *oauth.GoogleClient
	cfg     *config.Config
}

func NewOAuthHandler(service *services.OAuthService, google *oauth.GoogleClient, cfg *config.Config) *OAuthHandler {
	return &OAuthHandler{service: service, google: google, cfg: cfg}
}

// Initiate redirects the browser to Google's consent screen. The declared
// account variant travels inside the signed state parameter.
func (h *OAuthHandler) Initiate(c *fiber.Ctx) error {
	if _, ok := onboarding.ParseRole(c.Params("userType")); !ok {
		return respondErr(c, h.cfg, apperrors.ErrInvalidUserType)
	}
	if !h.google.Enabled() {
		return respondErr(c, h.cfg, fmt.Errorf("google sign-in is not configured"))
	}

	authURL, err := h.google.AuthURL(c.Params("userType"))
	if err != nil {
		return respondErr(c, h.cfg, err)
	}
	return c.Redirect(authURL, fiber.StatusFound)
}

// Callback completes the browser flow. Success and failure both end in a
// redirect to the front end; JSON only makes sense on the verify route.
func (h *OAuthHandler) Callback(c *fiber.Ctx) error {
	userType, err := h.google.DecodeState(c.Query("state"))
	if err != nil {
		return h.redirectError(c, "Sign-in session is invalid or expired")
	}
	role, ok := onboarding.ParseRole(userType)
	if !ok {
		return h.redirectError(c, "Unknown account type")
	}

	code := c.Query("code")
	if code == "" {
		return h.redirectError(c, "Google sign-in was cancelled")
	}

	identity, err := h.google.Exchange(c.UserContext(), code)
	if err != nil {
		slog.Error("google code exchange failed", "error", err)
		return h.redirectError(c, "Google sign-in failed")
	}

	result, err := h.service.Reconcile(identity, role)
	if err != nil {
		slog.Error("identity reconciliation failed", "error", err)
		return h.redirectError(c, "Sign-in could not be completed")
	}

	redirect := fmt.Sprintf("%s/auth/callback?token=%s&user_type=%s&destination=%s&is_new_user=%t&is_returning_incomplete=%t",
		h.cfg.FrontendURL,
		url.QueryEscape(result.Token),
		result.Role,
		result.Destination,
		result.IsNewUser,
		result.IsReturningIncomplete,
	)
	return c.Redirect(redirect, fiber.StatusFound)
}

// Verify is the non-redirect variant for clients that already hold a Google
// access token; it returns the reconciliation outcome as JSON.
func (h *OAuthHandler) Verify(c *fiber.Ctx) error {
	var req dto.GoogleVerifyRequest
	if err := c.BodyParser(&req); err != nil {
		return respondErr(c, h.cfg, apperrors.ErrMissingFields.WithMessage("Invalid request body"))
	}
	if req.AccessToken == "" || req.UserType == "" {
		return respondErr(c, h.cfg, apperrors.ErrMissingFields)
	}
	role, ok := onboarding.ParseRole(req.UserType)
	if !ok {
		return respondErr(c, h.cfg, apperrors.ErrInvalidUserType)
	}

	identity, err := h.google.IdentityFromAccessToken(c.UserContext(), req.AccessToken)
	if err != nil {
		return respondErr(c, h.cfg, apperrors.ErrInvalidCredentials.WithMessage("Google token could not be verified"))
	}

	result, err := h.service.Reconcile(identity, role)
	if err != nil {
		return respondErr(c, h.cfg, err)
	}
	return respond(c, fiber.StatusOK, "Sign-in successful", fiber.Map{
		"token":                   result.Token,
		"account_id":              result.AccountID,
		"user_type":               result.Role,
		"destination":             result.Destination,
		"is_new_user":             result.IsNewUser,
		"is_returning_incomplete": result.IsReturningIncomplete,
	})
}

func (h *OAuthHandler) redirectError(c *fiber.Ctx, message string) error {
	redirect := h.cfg.FrontendURL + "/auth/callback?error=" + url.QueryEscape(message)
	return c.Redirect(redirect, fiber.StatusFound)
}
