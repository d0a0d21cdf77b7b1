package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"parley.chat/api-server/internal/http/dto"
	"parley.chat/api-server/internal/http/middleware"
	"parley.chat/api-server/internal/model"
	"parley.chat/api-server/internal/service"
)

type InviteHandler struct {
	inviteService service.InviteService
	authzService  service.AuthzService
	isProduction  bool
}

func NewInviteHandler(inviteService service.InviteService, authzService service.AuthzService, isProduction bool) *InviteHandler {
	return &InviteHandler{
		inviteService: inviteService,
		authzService:  authzService,
		isProduction:  isProduction,
	}
}

// Create issues an invite into the path organization. Admin or above only.
func (h *InviteHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()
	user := middleware.GetUser(ctx)

	orgID, err := parseOrgID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid organization id"})
		return
	}

	var req dto.CreateInviteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: email is required"})
		return
	}

	required := model.RoleAdmin
	check, err := h.authzService.CheckAccess(ctx, user.ID, orgID, &required)
	if err != nil {
		slog.ErrorContext(ctx, "failed to check access", "error", err, "user_id", user.ID, "org_id", orgID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to check access"})
		return
	}
	if !check.HasAccess {
		c.JSON(http.StatusForbidden, gin.H{"error": "insufficient role"})
		return
	}

	inv, _, err := h.inviteService.Issue(ctx, orgID, user.ID, req.Email, model.ParseRole(req.Role))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAlreadyMember):
			c.JSON(http.StatusConflict, gin.H{"error": "user is already a member"})
		case errors.Is(err, service.ErrInvitePending):
			c.JSON(http.StatusConflict, gin.H{"error": "a pending invite already exists for this email"})
		default:
			slog.ErrorContext(ctx, "failed to issue invite", "error", err, "org_id", orgID)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to issue invite"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToInviteResponse(inv))
}

// Accept redeems an invite token for the authenticated caller and points
// their org affinity at the joined organization.
func (h *InviteHandler) Accept(c *gin.Context) {
	ctx := c.Request.Context()
	user := middleware.GetUser(ctx)

	var req dto.AcceptInviteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: token is required"})
		return
	}

	org, err := h.inviteService.Accept(ctx, req.Token, user)
	if err != nil {
		if errors.Is(err, service.ErrInviteInvalid) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid or expired invite"})
			return
		}
		slog.ErrorContext(ctx, "failed to accept invite", "error", err, "user_id", user.ID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to accept invite"})
		return
	}

	middleware.SetOrgCookie(c, org.ID, h.isProduction)

	c.JSON(http.StatusOK, gin.H{"organization": dto.ToOrganizationResponse(org)})
}
