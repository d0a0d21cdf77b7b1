package service

import (
	"parley.chat/api-server/internal/identity"
	"parley.chat/api-server/internal/mail"
	"parley.chat/api-server/internal/store"
)

type Services struct {
	stores       *store.Stores
	txRunner     TxRunner
	provider     identity.Provider
	mailer       mail.Mailer
	clientOrigin string
	appName      string
}

func NewServices(
	stores *store.Stores,
	txRunner TxRunner,
	provider identity.Provider,
	mailer mail.Mailer,
	clientOrigin string,
	appName string,
) *Services {
	return &Services{
		stores:       stores,
		txRunner:     txRunner,
		provider:     provider,
		mailer:       mailer,
		clientOrigin: clientOrigin,
		appName:      appName,
	}
}

func (s *Services) Authz() AuthzService {
	return NewAuthzService(s.stores.Memberships())
}

func (s *Services) OrgResolver() OrgResolver {
	return NewOrgResolver(s.stores.Users(), s.stores.Memberships())
}

func (s *Services) Organizations() OrganizationService {
	return NewOrganizationService(s.stores.Organizations(), s.stores.Memberships(), s.stores.Users(), s.txRunner)
}

func (s *Services) Invites() InviteService {
	return NewInviteService(
		s.stores.Invites(),
		s.stores.Memberships(),
		s.stores.Organizations(),
		s.stores.Users(),
		s.txRunner,
		s.mailer,
		s.clientOrigin,
		s.appName,
	)
}

func (s *Services) SSO() SSOService {
	return NewSSOService(s.provider, s.stores.Users(), s.stores.Organizations(), s.stores.Sessions(), s.txRunner)
}

func (s *Services) Sessions() SessionService {
	return NewSessionService(s.stores.Sessions(), s.stores.Users())
}
