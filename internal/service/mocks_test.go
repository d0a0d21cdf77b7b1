package service_test

import (
	"context"

	"parley.chat/api-server/internal/identity"
	"parley.chat/api-server/internal/mail"
	"parley.chat/api-server/internal/model"
	"parley.chat/api-server/internal/service"
	"parley.chat/api-server/internal/store"
)

type mockUserStore struct {
	getByIDFn              func(ctx context.Context, id int64) (*model.User, error)
	getByEmailFn           func(ctx context.Context, email string) (*model.User, error)
	createFn               func(ctx context.Context, user *model.User) error
	setDefaultOrgFn        func(ctx context.Context, userID int64, orgID *int64) error
	setDefaultOrgIfUnsetFn func(ctx context.Context, userID int64, orgID int64) error
}

func (m *mockUserStore) GetByID(ctx context.Context, id int64) (*model.User, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, store.ErrNotFound
}

func (m *mockUserStore) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	if m.getByEmailFn != nil {
		return m.getByEmailFn(ctx, email)
	}
	return nil, store.ErrNotFound
}

func (m *mockUserStore) Create(ctx context.Context, user *model.User) error {
	if m.createFn != nil {
		return m.createFn(ctx, user)
	}
	return nil
}

func (m *mockUserStore) SetDefaultOrg(ctx context.Context, userID int64, orgID *int64) error {
	if m.setDefaultOrgFn != nil {
		return m.setDefaultOrgFn(ctx, userID, orgID)
	}
	return nil
}

func (m *mockUserStore) SetDefaultOrgIfUnset(ctx context.Context, userID int64, orgID int64) error {
	if m.setDefaultOrgIfUnsetFn != nil {
		return m.setDefaultOrgIfUnsetFn(ctx, userID, orgID)
	}
	return nil
}

type mockOrganizationStore struct {
	getByIDFn     func(ctx context.Context, id int64) (*model.Organization, error)
	getBySlugFn   func(ctx context.Context, slug string) (*model.Organization, error)
	createFn      func(ctx context.Context, org *model.Organization) error
	updateFn      func(ctx context.Context, org *model.Organization) error
	deleteFn      func(ctx context.Context, id int64) error
	listForUserFn func(ctx context.Context, userID int64) ([]model.UserOrganization, error)
	createCalls   int
}

func (m *mockOrganizationStore) GetByID(ctx context.Context, id int64) (*model.Organization, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, store.ErrNotFound
}

func (m *mockOrganizationStore) GetBySlug(ctx context.Context, slug string) (*model.Organization, error) {
	if m.getBySlugFn != nil {
		return m.getBySlugFn(ctx, slug)
	}
	return nil, store.ErrNotFound
}

func (m *mockOrganizationStore) Create(ctx context.Context, org *model.Organization) error {
	m.createCalls++
	if m.createFn != nil {
		return m.createFn(ctx, org)
	}
	return nil
}

func (m *mockOrganizationStore) Update(ctx context.Context, org *model.Organization) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, org)
	}
	return nil
}

func (m *mockOrganizationStore) Delete(ctx context.Context, id int64) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

func (m *mockOrganizationStore) ListForUser(ctx context.Context, userID int64) ([]model.UserOrganization, error) {
	if m.listForUserFn != nil {
		return m.listForUserFn(ctx, userID)
	}
	return []model.UserOrganization{}, nil
}

type mockMembershipStore struct {
	getByUserAndOrgFn func(ctx context.Context, userID, orgID int64) (*model.Membership, error)
	createFn          func(ctx context.Context, m *model.Membership) error
	firstForUserFn    func(ctx context.Context, userID int64) (*model.Membership, error)
	createCalls       int
}

func (m *mockMembershipStore) GetByUserAndOrg(ctx context.Context, userID, orgID int64) (*model.Membership, error) {
	if m.getByUserAndOrgFn != nil {
		return m.getByUserAndOrgFn(ctx, userID, orgID)
	}
	return nil, store.ErrNotFound
}

func (m *mockMembershipStore) Create(ctx context.Context, membership *model.Membership) error {
	m.createCalls++
	if m.createFn != nil {
		return m.createFn(ctx, membership)
	}
	return nil
}

func (m *mockMembershipStore) FirstForUser(ctx context.Context, userID int64) (*model.Membership, error) {
	if m.firstForUserFn != nil {
		return m.firstForUserFn(ctx, userID)
	}
	return nil, store.ErrNotFound
}

type mockInviteStore struct {
	createFn                  func(ctx context.Context, inv *model.OrganizationInvite) error
	getUsableByHashFn         func(ctx context.Context, tokenHash string) (*model.OrganizationInvite, error)
	getPendingByEmailAndOrgFn func(ctx context.Context, email string, orgID int64) (*model.OrganizationInvite, error)
	markAcceptedFn            func(ctx context.Context, id int64) error
	purgeExpiredFn            func(ctx context.Context) (int64, error)
}

func (m *mockInviteStore) Create(ctx context.Context, inv *model.OrganizationInvite) error {
	if m.createFn != nil {
		return m.createFn(ctx, inv)
	}
	return nil
}

func (m *mockInviteStore) GetUsableByHash(ctx context.Context, tokenHash string) (*model.OrganizationInvite, error) {
	if m.getUsableByHashFn != nil {
		return m.getUsableByHashFn(ctx, tokenHash)
	}
	return nil, store.ErrNotFound
}

func (m *mockInviteStore) GetPendingByEmailAndOrg(ctx context.Context, email string, orgID int64) (*model.OrganizationInvite, error) {
	if m.getPendingByEmailAndOrgFn != nil {
		return m.getPendingByEmailAndOrgFn(ctx, email, orgID)
	}
	return nil, store.ErrNotFound
}

func (m *mockInviteStore) MarkAccepted(ctx context.Context, id int64) error {
	if m.markAcceptedFn != nil {
		return m.markAcceptedFn(ctx, id)
	}
	return nil
}

func (m *mockInviteStore) PurgeExpired(ctx context.Context) (int64, error) {
	if m.purgeExpiredFn != nil {
		return m.purgeExpiredFn(ctx)
	}
	return 0, nil
}

type mockSessionStore struct {
	createFn        func(ctx context.Context, session *model.Session) error
	getValidFn      func(ctx context.Context, id int64) (*model.Session, error)
	deleteFn        func(ctx context.Context, id int64) error
	deleteExpiredFn func(ctx context.Context) (int64, error)
}

func (m *mockSessionStore) Create(ctx context.Context, session *model.Session) error {
	if m.createFn != nil {
		return m.createFn(ctx, session)
	}
	return nil
}

func (m *mockSessionStore) GetValid(ctx context.Context, id int64) (*model.Session, error) {
	if m.getValidFn != nil {
		return m.getValidFn(ctx, id)
	}
	return nil, store.ErrNotFound
}

func (m *mockSessionStore) Delete(ctx context.Context, id int64) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

func (m *mockSessionStore) DeleteExpired(ctx context.Context) (int64, error) {
	if m.deleteExpiredFn != nil {
		return m.deleteExpiredFn(ctx)
	}
	return 0, nil
}

type mockStoreProvider struct {
	users       store.UserStore
	orgs        store.OrganizationStore
	memberships store.MembershipStore
	invites     store.InviteStore
}

func (m *mockStoreProvider) Users() store.UserStore {
	return m.users
}

func (m *mockStoreProvider) Organizations() store.OrganizationStore {
	return m.orgs
}

func (m *mockStoreProvider) Memberships() store.MembershipStore {
	return m.memberships
}

func (m *mockStoreProvider) Invites() store.InviteStore {
	return m.invites
}

// mockTxRunner executes the callback against the given mock stores without
// any real transaction.
type mockTxRunner struct {
	provider *mockStoreProvider
	withTxFn func(ctx context.Context, fn func(stores service.StoreProvider) error) error
}

func (m *mockTxRunner) WithTx(ctx context.Context, fn func(stores service.StoreProvider) error) error {
	if m.withTxFn != nil {
		return m.withTxFn(ctx, fn)
	}
	if m.provider != nil {
		return fn(m.provider)
	}
	return fn(&mockStoreProvider{
		users:       &mockUserStore{},
		orgs:        &mockOrganizationStore{},
		memberships: &mockMembershipStore{},
		invites:     &mockInviteStore{},
	})
}

type mockIdentityProvider struct {
	authorizationURLFn func(state, connectionID string) (string, error)
	exchangeCodeFn     func(ctx context.Context, code string) (*identity.Identity, error)
}

func (m *mockIdentityProvider) AuthorizationURL(state, connectionID string) (string, error) {
	if m.authorizationURLFn != nil {
		return m.authorizationURLFn(state, connectionID)
	}
	return "https://idp.example.com/authorize", nil
}

func (m *mockIdentityProvider) ExchangeCode(ctx context.Context, code string) (*identity.Identity, error) {
	if m.exchangeCodeFn != nil {
		return m.exchangeCodeFn(ctx, code)
	}
	return &identity.Identity{Email: "user@example.com"}, nil
}

type mockMailer struct {
	sendFn func(ctx context.Context, msg mail.Message) error
	sent   []mail.Message
}

func (m *mockMailer) Send(ctx context.Context, msg mail.Message) error {
	m.sent = append(m.sent, msg)
	if m.sendFn != nil {
		return m.sendFn(ctx, msg)
	}
	return nil
}

func (m *mockMailer) Close() error { return nil }
