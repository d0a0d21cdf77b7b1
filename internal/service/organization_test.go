package service_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"parley.chat/api-server/common/id"
	"parley.chat/api-server/internal/model"
	"parley.chat/api-server/internal/service"
	"parley.chat/api-server/internal/store"
)

var _ = Describe("OrganizationService", func() {
	var (
		svc             service.OrganizationService
		orgStore        *mockOrganizationStore
		membershipStore *mockMembershipStore
		userStore       *mockUserStore
		txRunner        *mockTxRunner
		ctx             context.Context
	)

	BeforeEach(func() {
		ctx = context.Background()
		orgStore = &mockOrganizationStore{}
		membershipStore = &mockMembershipStore{}
		userStore = &mockUserStore{}
		txRunner = &mockTxRunner{provider: &mockStoreProvider{
			users:       userStore,
			orgs:        orgStore,
			memberships: membershipStore,
			invites:     &mockInviteStore{},
		}}

		err := id.Init(1)
		Expect(err).NotTo(HaveOccurred())

		svc = service.NewOrganizationService(orgStore, membershipStore, userStore, txRunner)
	})

	Describe("Create", func() {
		It("creates the org with an owner membership and slug from the name", func() {
			var createdOrg *model.Organization
			orgStore.createFn = func(_ context.Context, org *model.Organization) error {
				createdOrg = org
				return nil
			}
			var createdMembership *model.Membership
			membershipStore.createFn = func(_ context.Context, m *model.Membership) error {
				createdMembership = m
				return nil
			}
			var defaultSet bool
			userStore.setDefaultOrgIfUnsetFn = func(_ context.Context, userID, orgID int64) error {
				defaultSet = true
				return nil
			}

			org, err := svc.Create(ctx, "Acme Corp", nil, 10)

			Expect(err).NotTo(HaveOccurred())
			Expect(org.Slug).To(Equal("acme-corp"))
			Expect(org.OwnerUserID).To(Equal(int64(10)))
			Expect(createdOrg).NotTo(BeNil())
			Expect(createdMembership).NotTo(BeNil())
			Expect(createdMembership.Role).To(Equal(model.RoleOwner))
			Expect(createdMembership.UserID).To(Equal(int64(10)))
			Expect(defaultSet).To(BeTrue())
		})

		It("prefers an explicit slug", func() {
			slug := "custom-slug"

			org, err := svc.Create(ctx, "Acme Corp", &slug, 10)

			Expect(err).NotTo(HaveOccurred())
			Expect(org.Slug).To(Equal("custom-slug"))
		})

		It("suffixes the slug when taken", func() {
			orgStore.getBySlugFn = func(_ context.Context, slug string) (*model.Organization, error) {
				if slug == "acme" {
					return &model.Organization{Slug: slug}, nil
				}
				return nil, store.ErrNotFound
			}

			org, err := svc.Create(ctx, "Acme", nil, 10)

			Expect(err).NotTo(HaveOccurred())
			Expect(org.Slug).To(Equal("acme-1"))
		})
	})

	Describe("Update", func() {
		BeforeEach(func() {
			orgStore.getByIDFn = func(_ context.Context, orgID int64) (*model.Organization, error) {
				return &model.Organization{ID: orgID, Name: "Acme"}, nil
			}
		})

		It("updates the name", func() {
			name := "Acme Inc"

			org, err := svc.Update(ctx, 5, service.OrganizationUpdate{Name: &name})

			Expect(err).NotTo(HaveOccurred())
			Expect(org.Name).To(Equal("Acme Inc"))
		})

		It("normalizes and stores verified domains", func() {
			org, err := svc.Update(ctx, 5, service.OrganizationUpdate{
				VerifiedDomains: []string{" Example.COM ", "sub.example.org", "example.com"},
			})

			Expect(err).NotTo(HaveOccurred())
			Expect(org.VerifiedDomains).To(Equal([]string{"example.com", "sub.example.org"}))
		})

		It("rejects malformed domains", func() {
			_, err := svc.Update(ctx, 5, service.OrganizationUpdate{
				VerifiedDomains: []string{"not a domain"},
			})

			Expect(err).To(MatchError(service.ErrInvalidDomain))
		})

		It("can clear the SSO connection", func() {
			conn := "conn_123"
			orgStore.getByIDFn = func(_ context.Context, orgID int64) (*model.Organization, error) {
				return &model.Organization{ID: orgID, SSOConnectionID: &conn}, nil
			}

			org, err := svc.Update(ctx, 5, service.OrganizationUpdate{ClearSSO: true})

			Expect(err).NotTo(HaveOccurred())
			Expect(org.SSOConnectionID).To(BeNil())
		})

		It("fails for a missing organization", func() {
			orgStore.getByIDFn = func(_ context.Context, _ int64) (*model.Organization, error) {
				return nil, store.ErrNotFound
			}

			_, err := svc.Update(ctx, 5, service.OrganizationUpdate{})

			Expect(err).To(MatchError(service.ErrOrgNotFound))
		})
	})

	Describe("Switch", func() {
		BeforeEach(func() {
			orgStore.getByIDFn = func(_ context.Context, orgID int64) (*model.Organization, error) {
				return &model.Organization{ID: orgID}, nil
			}
		})

		It("persists the new default for a member", func() {
			membershipStore.getByUserAndOrgFn = func(_ context.Context, userID, orgID int64) (*model.Membership, error) {
				return &model.Membership{UserID: userID, OrganizationID: orgID}, nil
			}
			var setTo *int64
			userStore.setDefaultOrgFn = func(_ context.Context, _ int64, orgID *int64) error {
				setTo = orgID
				return nil
			}

			org, err := svc.Switch(ctx, 10, 5)

			Expect(err).NotTo(HaveOccurred())
			Expect(org.ID).To(Equal(int64(5)))
			Expect(setTo).NotTo(BeNil())
			Expect(*setTo).To(Equal(int64(5)))
		})

		It("refuses non-members", func() {
			_, err := svc.Switch(ctx, 10, 5)

			Expect(err).To(MatchError(service.ErrNotMember))
		})

		It("refuses unknown organizations", func() {
			orgStore.getByIDFn = func(_ context.Context, _ int64) (*model.Organization, error) {
				return nil, store.ErrNotFound
			}

			_, err := svc.Switch(ctx, 10, 5)

			Expect(err).To(MatchError(service.ErrOrgNotFound))
		})
	})
})
