package service_test

import (
	"context"
	"errors"
	"strings"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"parley.chat/api-server/common/crypto"
	"parley.chat/api-server/common/id"
	"parley.chat/api-server/internal/mail"
	"parley.chat/api-server/internal/model"
	"parley.chat/api-server/internal/service"
	"parley.chat/api-server/internal/store"
)

var _ = Describe("InviteService", func() {
	var (
		svc             service.InviteService
		inviteStore     *mockInviteStore
		membershipStore *mockMembershipStore
		orgStore        *mockOrganizationStore
		userStore       *mockUserStore
		txRunner        *mockTxRunner
		mailer          *mockMailer
		ctx             context.Context
	)

	const clientOrigin = "https://app.parley.chat"

	BeforeEach(func() {
		ctx = context.Background()
		inviteStore = &mockInviteStore{}
		membershipStore = &mockMembershipStore{}
		orgStore = &mockOrganizationStore{}
		userStore = &mockUserStore{}
		mailer = &mockMailer{}
		txRunner = &mockTxRunner{provider: &mockStoreProvider{
			users:       userStore,
			orgs:        orgStore,
			memberships: membershipStore,
			invites:     inviteStore,
		}}

		err := id.Init(1)
		Expect(err).NotTo(HaveOccurred())

		orgStore.getByIDFn = func(_ context.Context, orgID int64) (*model.Organization, error) {
			return &model.Organization{ID: orgID, Name: "Acme"}, nil
		}

		svc = service.NewInviteService(inviteStore, membershipStore, orgStore, userStore, txRunner, mailer, clientOrigin, "Parley")
	})

	Describe("Issue", func() {
		It("creates an invite storing only the token hash", func() {
			var captured *model.OrganizationInvite
			inviteStore.createFn = func(_ context.Context, inv *model.OrganizationInvite) error {
				captured = inv
				return nil
			}

			inv, token, err := svc.Issue(ctx, 5, 10, "new@example.com", model.RoleMember)

			Expect(err).NotTo(HaveOccurred())
			Expect(token).NotTo(BeEmpty())
			Expect(captured).NotTo(BeNil())
			Expect(captured.TokenHash).To(Equal(crypto.HashToken(token)))
			Expect(captured.TokenHash).NotTo(ContainSubstring(token))
			Expect(inv.Email).To(Equal("new@example.com"))
			Expect(inv.Role).To(Equal(model.RoleMember))
		})

		It("normalizes the email", func() {
			inv, _, err := svc.Issue(ctx, 5, 10, "  New@Example.COM ", model.RoleMember)

			Expect(err).NotTo(HaveOccurred())
			Expect(inv.Email).To(Equal("new@example.com"))
		})

		It("sets expiry seven days out", func() {
			inv, _, err := svc.Issue(ctx, 5, 10, "new@example.com", model.RoleMember)

			Expect(err).NotTo(HaveOccurred())
			expected := time.Now().Add(service.InviteExpiryDays * 24 * time.Hour)
			Expect(inv.ExpiresAt).To(BeTemporally("~", expected, time.Minute))
		})

		It("allows admin invites but never owner", func() {
			inv, _, err := svc.Issue(ctx, 5, 10, "a@example.com", model.RoleAdmin)
			Expect(err).NotTo(HaveOccurred())
			Expect(inv.Role).To(Equal(model.RoleAdmin))

			inv, _, err = svc.Issue(ctx, 5, 10, "b@example.com", model.RoleOwner)
			Expect(err).NotTo(HaveOccurred())
			Expect(inv.Role).To(Equal(model.RoleMember))
		})

		It("rejects emails that already belong to a member", func() {
			userStore.getByEmailFn = func(_ context.Context, _ string) (*model.User, error) {
				return &model.User{ID: 99, Email: "member@example.com"}, nil
			}
			membershipStore.getByUserAndOrgFn = func(_ context.Context, userID, orgID int64) (*model.Membership, error) {
				return &model.Membership{UserID: userID, OrganizationID: orgID}, nil
			}

			_, _, err := svc.Issue(ctx, 5, 10, "member@example.com", model.RoleMember)

			Expect(err).To(MatchError(service.ErrAlreadyMember))
		})

		It("rejects duplicate pending invites", func() {
			inviteStore.getPendingByEmailAndOrgFn = func(_ context.Context, _ string, _ int64) (*model.OrganizationInvite, error) {
				return &model.OrganizationInvite{ID: 1}, nil
			}

			_, _, err := svc.Issue(ctx, 5, 10, "new@example.com", model.RoleMember)

			Expect(err).To(MatchError(service.ErrInvitePending))
		})

		It("enqueues an invite email with the registration link", func() {
			_, token, err := svc.Issue(ctx, 5, 10, "new@example.com", model.RoleMember)

			Expect(err).NotTo(HaveOccurred())
			Expect(mailer.sent).To(HaveLen(1))
			Expect(mailer.sent[0].To).To(Equal("new@example.com"))
			Expect(mailer.sent[0].Template).To(Equal("invite_user"))
			Expect(mailer.sent[0].Payload["link"]).To(HavePrefix(clientOrigin + "/register?token="))
			Expect(mailer.sent[0].Payload["link"]).To(ContainSubstring("&organization=5"))
			Expect(mailer.sent[0].Payload["role"]).To(Equal("member"))
			Expect(mailer.sent[0].Payload["app"]).To(Equal("Parley"))
			Expect(token).NotTo(BeEmpty())
		})

		It("still issues the invite when mail delivery fails", func() {
			mailer.sendFn = func(_ context.Context, _ mail.Message) error {
				return errors.New("queue unavailable")
			}

			inv, token, err := svc.Issue(ctx, 5, 10, "new@example.com", model.RoleMember)

			Expect(err).NotTo(HaveOccurred())
			Expect(inv).NotTo(BeNil())
			Expect(token).NotTo(BeEmpty())
		})
	})

	Describe("Accept", func() {
		var (
			user  *model.User
			token string
		)

		BeforeEach(func() {
			user = &model.User{ID: 10, Email: "new@example.com"}
			token = "plain-token"
			inviteStore.getUsableByHashFn = func(_ context.Context, hash string) (*model.OrganizationInvite, error) {
				if hash != crypto.HashToken(token) {
					return nil, store.ErrNotFound
				}
				return &model.OrganizationInvite{
					ID:             77,
					Email:          "new@example.com",
					OrganizationID: 5,
					Role:           model.RoleMember,
					ExpiresAt:      time.Now().Add(time.Hour),
				}, nil
			}
		})

		It("creates the membership and marks the invite accepted", func() {
			var accepted int64
			inviteStore.markAcceptedFn = func(_ context.Context, id int64) error {
				accepted = id
				return nil
			}

			org, err := svc.Accept(ctx, token, user)

			Expect(err).NotTo(HaveOccurred())
			Expect(org).NotTo(BeNil())
			Expect(org.ID).To(Equal(int64(5)))
			Expect(membershipStore.createCalls).To(Equal(1))
			Expect(accepted).To(Equal(int64(77)))
		})

		It("rejects unknown tokens with the generic error", func() {
			_, err := svc.Accept(ctx, "wrong-token", user)

			Expect(err).To(MatchError(service.ErrInviteInvalid))
		})

		It("redeems the token regardless of the signed-in email", func() {
			user.Email = "other@example.com"

			org, err := svc.Accept(ctx, token, user)

			Expect(err).NotTo(HaveOccurred())
			Expect(org).NotTo(BeNil())
			Expect(membershipStore.createCalls).To(Equal(1))
		})

		It("succeeds when the user is already a member", func() {
			membershipStore.createFn = func(_ context.Context, _ *model.Membership) error {
				return store.ErrConflict
			}

			org, err := svc.Accept(ctx, token, user)

			Expect(err).NotTo(HaveOccurred())
			Expect(org).NotTo(BeNil())
		})

		It("tolerates a concurrent acceptance of the same invite", func() {
			inviteStore.markAcceptedFn = func(_ context.Context, _ int64) error {
				return store.ErrNotFound
			}

			_, err := svc.Accept(ctx, token, user)

			Expect(err).NotTo(HaveOccurred())
		})

		It("rejects invites whose organization is gone", func() {
			orgStore.getByIDFn = func(_ context.Context, _ int64) (*model.Organization, error) {
				return nil, store.ErrNotFound
			}

			_, err := svc.Accept(ctx, token, user)

			Expect(err).To(MatchError(service.ErrInviteInvalid))
		})
	})

	Describe("token format", func() {
		It("produces URL-safe tokens", func() {
			_, token, err := svc.Issue(ctx, 5, 10, "new@example.com", model.RoleMember)

			Expect(err).NotTo(HaveOccurred())
			Expect(strings.ContainsAny(token, " \t\n")).To(BeFalse())
		})
	})
})
