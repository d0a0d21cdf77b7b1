package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"parley.chat/api-server/internal/http/dto"
	"parley.chat/api-server/internal/http/middleware"
	"parley.chat/api-server/internal/model"
	"parley.chat/api-server/internal/service"
)

type OrganizationHandler struct {
	orgService    service.OrganizationService
	inviteService service.InviteService
	authzService  service.AuthzService
	isProduction  bool
}

func NewOrganizationHandler(
	orgService service.OrganizationService,
	inviteService service.InviteService,
	authzService service.AuthzService,
	isProduction bool,
) *OrganizationHandler {
	return &OrganizationHandler{
		orgService:    orgService,
		inviteService: inviteService,
		authzService:  authzService,
		isProduction:  isProduction,
	}
}

// List returns every organization the caller belongs to, with their role.
func (h *OrganizationHandler) List(c *gin.Context) {
	ctx := c.Request.Context()
	user := middleware.GetUser(ctx)

	orgs, err := h.orgService.List(ctx, user.ID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to list organizations", "error", err, "user_id", user.ID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list organizations"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"organizations": dto.ToUserOrganizationResponses(orgs)})
}

// Current returns the organization resolved for this request.
func (h *OrganizationHandler) Current(c *gin.Context) {
	ctx := c.Request.Context()

	orgID := middleware.GetOrgID(ctx)
	if orgID == nil {
		// No resolvable organization is a valid state, not an error.
		c.JSON(http.StatusOK, nil)
		return
	}

	org, err := h.orgService.Get(ctx, *orgID)
	if err != nil {
		if errors.Is(err, service.ErrOrgNotFound) {
			c.JSON(http.StatusOK, nil)
			return
		}
		slog.ErrorContext(ctx, "failed to get current organization", "error", err, "org_id", *orgID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get organization"})
		return
	}

	c.JSON(http.StatusOK, dto.ToOrganizationResponse(org))
}

func (h *OrganizationHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()
	user := middleware.GetUser(ctx)

	var req dto.CreateOrganizationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: name is required"})
		return
	}

	org, err := h.orgService.Create(ctx, req.Name, req.Slug, user.ID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to create organization", "error", err, "user_id", user.ID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create organization"})
		return
	}

	// Seed invites are best-effort; a bad address doesn't undo the org.
	invited := make([]dto.InviteResponse, 0, len(req.Invites))
	for _, seed := range req.Invites {
		inv, _, err := h.inviteService.Issue(ctx, org.ID, user.ID, seed.Email, model.ParseRole(seed.Role))
		if err != nil {
			slog.WarnContext(ctx, "failed to issue seed invite",
				"error", err,
				"org_id", org.ID,
				"email", seed.Email,
			)
			continue
		}
		invited = append(invited, *dto.ToInviteResponse(inv))
	}

	middleware.SetOrgCookie(c, org.ID, h.isProduction)

	c.JSON(http.StatusCreated, gin.H{
		"organization": dto.ToOrganizationResponse(org),
		"invites":      invited,
	})
}

func (h *OrganizationHandler) Update(c *gin.Context) {
	ctx := c.Request.Context()

	orgID, ok := h.requireRole(c, model.RoleAdmin)
	if !ok {
		return
	}

	var req dto.UpdateOrganizationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	org, err := h.orgService.Update(ctx, orgID, service.OrganizationUpdate{
		Name:            req.Name,
		SSOConnectionID: req.SSOConnectionID,
		ClearSSO:        req.ClearSSO,
		VerifiedDomains: req.VerifiedDomains,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrOrgNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "organization not found"})
		case errors.Is(err, service.ErrInvalidDomain):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			slog.ErrorContext(ctx, "failed to update organization", "error", err, "org_id", orgID)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update organization"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToOrganizationResponse(org))
}

func (h *OrganizationHandler) Delete(c *gin.Context) {
	ctx := c.Request.Context()

	orgID, ok := h.requireRole(c, model.RoleOwner)
	if !ok {
		return
	}

	if err := h.orgService.Delete(ctx, orgID); err != nil {
		if errors.Is(err, service.ErrOrgNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "organization not found"})
			return
		}
		slog.ErrorContext(ctx, "failed to delete organization", "error", err, "org_id", orgID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete organization"})
		return
	}

	c.Status(http.StatusNoContent)
}

// Switch makes the path organization the caller's default and refreshes the
// org affinity cookie.
func (h *OrganizationHandler) Switch(c *gin.Context) {
	ctx := c.Request.Context()
	user := middleware.GetUser(ctx)

	orgID, err := parseOrgID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid organization id"})
		return
	}

	org, err := h.orgService.Switch(ctx, user.ID, orgID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrOrgNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "organization not found"})
		case errors.Is(err, service.ErrNotMember):
			c.JSON(http.StatusForbidden, gin.H{"error": "not a member of this organization"})
		default:
			slog.ErrorContext(ctx, "failed to switch organization", "error", err, "user_id", user.ID, "org_id", orgID)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to switch organization"})
		}
		return
	}

	middleware.SetOrgCookie(c, org.ID, h.isProduction)

	c.JSON(http.StatusOK, dto.ToOrganizationResponse(org))
}

// requireRole checks the caller holds at least the given role in the path
// organization, writing the error response itself on failure.
func (h *OrganizationHandler) requireRole(c *gin.Context, required model.Role) (int64, bool) {
	ctx := c.Request.Context()
	user := middleware.GetUser(ctx)

	orgID, err := parseOrgID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid organization id"})
		return 0, false
	}

	check, err := h.authzService.CheckAccess(ctx, user.ID, orgID, &required)
	if err != nil {
		slog.ErrorContext(ctx, "failed to check access", "error", err, "user_id", user.ID, "org_id", orgID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to check access"})
		return 0, false
	}
	if !check.HasAccess {
		c.JSON(http.StatusForbidden, gin.H{"error": "insufficient role"})
		return 0, false
	}

	return orgID, true
}

func parseOrgID(c *gin.Context) (int64, error) {
	return strconv.ParseInt(c.Param("id"), 10, 64)
}
