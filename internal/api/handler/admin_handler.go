package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/JesloDev/e-library/internal/core/domain"
	"github.com/JesloDev/e-library/internal/core/ports"
)

// AdminHandler handles membership approvals and invite link management.
type AdminHandler struct {
	approvals ports.ApprovalService
	invites   ports.InviteService
}

func NewAdminHandler(approvals ports.ApprovalService, invites ports.InviteService) *AdminHandler {
	return &AdminHandler{approvals: approvals, invites: invites}
}

type pendingUserResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

type approveUserRequest struct {
	UserID string `json:"userId" validate:"required"`
}

type generateLinkResponse struct {
	ID        string `json:"id"`
	Token     string `json:"token"`
	ExpiresAt string `json:"expires_at"`
}

// PendingUsers lists unapproved, non-admin accounts.
//
// @Summary      List pending users
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  pendingUserResponse
// @Router       /api/admin/pending-users [get]
func (h *AdminHandler) PendingUsers(c echo.Context) error {
	users, err := h.approvals.ListPending(c.Request().Context())
	if err != nil {
		return err
	}

	out := make([]pendingUserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, pendingUserResponse{ID: u.ID, Email: u.Email, Name: u.Name})
	}
	return c.JSON(http.StatusOK, out)
}

// ApproveUser approves a pending account and triggers the notification email.
//
// @Summary      Approve a pending user
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      approveUserRequest  true  "Target user"
// @Success      200   {object}  map[string]bool
// @Failure      404   {object}  map[string]string
// @Router       /api/admin/approve-user [post]
func (h *AdminHandler) ApproveUser(c echo.Context) error {
	var req approveUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.approvals.Approve(c.Request().Context(), req.UserID); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}

// GenerateLink mints a fresh 24-hour registration link.
//
// @Summary      Generate a registration link
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      201  {object}  generateLinkResponse
// @Router       /api/admin/generate-link [post]
func (h *AdminHandler) GenerateLink(c echo.Context) error {
	link, err := h.invites.Generate(c.Request().Context())
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, generateLinkResponse{
		ID:        link.ID,
		Token:     link.Token,
		ExpiresAt: link.ExpiresAt.UTC().Format("2006-01-02T15:04:05Z"),
	})
}

// Links lists outstanding registration links, newest first.
//
// @Summary      List registration links
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.RegistrationLink
// @Router       /api/admin/links [get]
func (h *AdminHandler) Links(c echo.Context) error {
	links, err := h.invites.List(c.Request().Context())
	if err != nil {
		return err
	}
	if links == nil {
		links = []*domain.RegistrationLink{}
	}
	return c.JSON(http.StatusOK, links)
}

// DeleteLink revokes a registration link.
//
// @Summary      Revoke a registration link
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Link id"
// @Success      200  {object}  map[string]bool
// @Failure      404  {object}  map[string]string
// @Router       /api/admin/links/{id} [delete]
func (h *AdminHandler) DeleteLink(c echo.Context) error {
	if err := h.invites.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}
