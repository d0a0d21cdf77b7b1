package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"parley.chat/api-server/internal/http/handler"
	"parley.chat/api-server/internal/http/middleware"
	"parley.chat/api-server/internal/model"
	"parley.chat/api-server/internal/service"
)

var _ = Describe("OrganizationHandler", func() {
	var (
		router     *gin.Engine
		orgSvc     *mockOrganizationService
		inviteSvc  *mockInviteService
		authzSvc   *mockAuthzService
		sessionSvc *mockSessionService
		resolver   *mockOrgResolver
		user       *model.User
	)

	authedRequest := func(method, path string, body []byte) *httptest.ResponseRecorder {
		req := httptest.NewRequest(method, path, bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		req.AddCookie(&http.Cookie{Name: middleware.SessionCookieName, Value: "1"})
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	BeforeEach(func() {
		gin.SetMode(gin.TestMode)
		router = gin.New()
		orgSvc = &mockOrganizationService{}
		inviteSvc = &mockInviteService{}
		authzSvc = &mockAuthzService{}
		sessionSvc = &mockSessionService{}
		resolver = &mockOrgResolver{}
		user = &model.User{ID: 10, Name: "Jane", Email: "jane@example.com"}

		sessionSvc.validateSessionFn = func(_ context.Context, _ int64) (*model.User, error) {
			return user, nil
		}

		h := handler.NewOrganizationHandler(orgSvc, inviteSvc, authzSvc, false)
		requireAuth := middleware.RequireAuth(sessionSvc, false)
		orgContext := middleware.OrgContext(resolver, false)

		rg := router.Group("/organizations")
		rg.Use(requireAuth)
		rg.POST("", h.Create)
		rg.PATCH("/:id", h.Update)
		rg.DELETE("/:id", h.Delete)
		rg.POST("/:id/switch", h.Switch)
		resolved := rg.Group("")
		resolved.Use(orgContext)
		resolved.GET("", h.List)
		resolved.GET("/current", h.Current)
	})

	Describe("authentication", func() {
		It("rejects requests without a session cookie", func() {
			req := httptest.NewRequest(http.MethodGet, "/organizations", nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusUnauthorized))
		})
	})

	Describe("Create", func() {
		It("creates the organization and sets the org cookie", func() {
			orgSvc.createFn = func(_ context.Context, name string, _ *string, ownerUserID int64) (*model.Organization, error) {
				return &model.Organization{ID: 5, Name: name, Slug: "acme", OwnerUserID: ownerUserID}, nil
			}

			body, _ := json.Marshal(map[string]any{"name": "Acme"})
			w := authedRequest(http.MethodPost, "/organizations", body)

			Expect(w.Code).To(Equal(http.StatusCreated))
			Expect(w.Header().Get("Set-Cookie")).To(ContainSubstring(middleware.OrgCookieName + "=5"))

			var resp map[string]any
			Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
			org := resp["organization"].(map[string]any)
			Expect(org["name"]).To(Equal("Acme"))
			Expect(org["slug"]).To(Equal("acme"))
		})

		It("issues seed invites and keeps going past failures", func() {
			var issued []string
			inviteSvc.issueFn = func(_ context.Context, orgID, inviterID int64, email string, role model.Role) (*model.OrganizationInvite, string, error) {
				issued = append(issued, email)
				if email == "bad@example.com" {
					return nil, "", service.ErrInvitePending
				}
				return &model.OrganizationInvite{ID: 1, Email: email, OrganizationID: orgID, Role: role}, "tok", nil
			}

			body, _ := json.Marshal(map[string]any{
				"name": "Acme",
				"invites": []map[string]string{
					{"email": "bad@example.com"},
					{"email": "good@example.com", "role": "admin"},
				},
			})
			w := authedRequest(http.MethodPost, "/organizations", body)

			Expect(w.Code).To(Equal(http.StatusCreated))
			Expect(issued).To(Equal([]string{"bad@example.com", "good@example.com"}))

			var resp map[string]any
			Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
			Expect(resp["invites"]).To(HaveLen(1))
		})

		It("rejects a missing name", func() {
			w := authedRequest(http.MethodPost, "/organizations", []byte(`{}`))

			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})
	})

	Describe("List", func() {
		It("returns the caller's organizations with roles", func() {
			orgSvc.listFn = func(_ context.Context, userID int64) ([]model.UserOrganization, error) {
				Expect(userID).To(Equal(int64(10)))
				return []model.UserOrganization{
					{Organization: model.Organization{ID: 5, Name: "Acme"}, Role: model.RoleOwner},
				}, nil
			}

			w := authedRequest(http.MethodGet, "/organizations", nil)

			Expect(w.Code).To(Equal(http.StatusOK))

			var resp map[string]any
			Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
			orgs := resp["organizations"].([]any)
			Expect(orgs).To(HaveLen(1))
			Expect(orgs[0].(map[string]any)["role"]).To(Equal("owner"))
		})
	})

	Describe("Current", func() {
		It("returns the resolved organization and refreshes the cookie", func() {
			resolver.resolveFn = func(_ context.Context, _ *model.User, _ string) service.Resolution {
				orgID := int64(5)
				return service.Resolution{
					OrganizationID: &orgID,
					Affinity:       service.Affinity{Op: service.AffinitySet, OrganizationID: 5},
				}
			}
			orgSvc.getFn = func(_ context.Context, orgID int64) (*model.Organization, error) {
				return &model.Organization{ID: orgID, Name: "Acme"}, nil
			}

			w := authedRequest(http.MethodGet, "/organizations/current", nil)

			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(w.Header().Get("Set-Cookie")).To(ContainSubstring(middleware.OrgCookieName + "=5"))
		})

		It("returns null for a user with no organizations", func() {
			w := authedRequest(http.MethodGet, "/organizations/current", nil)

			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(w.Body.String()).To(Equal("null"))
		})
	})

	Describe("Update", func() {
		It("requires at least admin", func() {
			authzSvc.checkAccessFn = func(_ context.Context, _, _ int64, required *model.Role) (service.AccessCheck, error) {
				Expect(required).NotTo(BeNil())
				Expect(*required).To(Equal(model.RoleAdmin))
				return service.AccessCheck{}, nil
			}

			body, _ := json.Marshal(map[string]any{"name": "New Name"})
			w := authedRequest(http.MethodPatch, "/organizations/5", body)

			Expect(w.Code).To(Equal(http.StatusForbidden))
		})

		It("updates for an admin", func() {
			orgSvc.updateFn = func(_ context.Context, orgID int64, update service.OrganizationUpdate) (*model.Organization, error) {
				return &model.Organization{ID: orgID, Name: *update.Name}, nil
			}

			body, _ := json.Marshal(map[string]any{"name": "New Name"})
			w := authedRequest(http.MethodPatch, "/organizations/5", body)

			Expect(w.Code).To(Equal(http.StatusOK))
		})

		It("maps invalid domains to 400", func() {
			orgSvc.updateFn = func(_ context.Context, _ int64, _ service.OrganizationUpdate) (*model.Organization, error) {
				return nil, service.ErrInvalidDomain
			}

			body, _ := json.Marshal(map[string]any{"verified_domains": []string{"bad domain"}})
			w := authedRequest(http.MethodPatch, "/organizations/5", body)

			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})
	})

	Describe("Delete", func() {
		It("requires the owner role", func() {
			var captured model.Role
			authzSvc.checkAccessFn = func(_ context.Context, _, _ int64, required *model.Role) (service.AccessCheck, error) {
				captured = *required
				return service.AccessCheck{HasAccess: true}, nil
			}

			w := authedRequest(http.MethodDelete, "/organizations/5", nil)

			Expect(w.Code).To(Equal(http.StatusNoContent))
			Expect(captured).To(Equal(model.RoleOwner))
		})

		It("denies admins", func() {
			authzSvc.checkAccessFn = func(_ context.Context, _, _ int64, _ *model.Role) (service.AccessCheck, error) {
				return service.AccessCheck{Membership: &model.Membership{Role: model.RoleAdmin}}, nil
			}

			w := authedRequest(http.MethodDelete, "/organizations/5", nil)

			Expect(w.Code).To(Equal(http.StatusForbidden))
		})
	})

	Describe("Switch", func() {
		It("switches and rewrites the org cookie", func() {
			orgSvc.switchFn = func(_ context.Context, userID, orgID int64) (*model.Organization, error) {
				Expect(userID).To(Equal(int64(10)))
				return &model.Organization{ID: orgID}, nil
			}

			w := authedRequest(http.MethodPost, "/organizations/7/switch", nil)

			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(w.Header().Get("Set-Cookie")).To(ContainSubstring(middleware.OrgCookieName + "=7"))
		})

		It("refuses non-members", func() {
			orgSvc.switchFn = func(_ context.Context, _, _ int64) (*model.Organization, error) {
				return nil, service.ErrNotMember
			}

			w := authedRequest(http.MethodPost, "/organizations/7/switch", nil)

			Expect(w.Code).To(Equal(http.StatusForbidden))
		})
	})

	Describe("expired sessions", func() {
		It("clears the session cookie and returns 401", func() {
			sessionSvc.validateSessionFn = func(_ context.Context, _ int64) (*model.User, error) {
				return nil, service.ErrSessionInvalid
			}

			w := authedRequest(http.MethodGet, "/organizations", nil)

			Expect(w.Code).To(Equal(http.StatusUnauthorized))
			Expect(w.Header().Get("Set-Cookie")).To(ContainSubstring(middleware.SessionCookieName + "=;"))
			Expect(w.Header().Get("Set-Cookie")).To(ContainSubstring("SameSite=Lax"))
		})
	})
})
