package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"parley.chat/api-server/common"
	"parley.chat/api-server/common/id"
	"parley.chat/api-server/internal/model"
	"parley.chat/api-server/internal/store"
)

var (
	ErrOrgNotFound    = errors.New("organization not found")
	ErrNotMember      = errors.New("user is not a member of this organization")
	ErrInvalidDomain  = errors.New("invalid domain")
	ErrSlugsExhausted = errors.New("unable to find an available slug")
)

// hostnameRE accepts bare hostnames like example.com or mail.example.co.uk.
var hostnameRE = regexp.MustCompile(`^([a-z0-9]([a-z0-9-]*[a-z0-9])?\.)+[a-z]{2,}$`)

// OrganizationUpdate carries the mutable organization fields. Nil means
// leave unchanged.
type OrganizationUpdate struct {
	Name            *string
	SSOConnectionID *string
	ClearSSO        bool
	VerifiedDomains []string
}

type OrganizationService interface {
	// Create makes the organization with the caller as owner, deriving a
	// unique slug from the name when none is given.
	Create(ctx context.Context, name string, slug *string, ownerUserID int64) (*model.Organization, error)
	Get(ctx context.Context, orgID int64) (*model.Organization, error)
	List(ctx context.Context, userID int64) ([]model.UserOrganization, error)
	Update(ctx context.Context, orgID int64, update OrganizationUpdate) (*model.Organization, error)
	Delete(ctx context.Context, orgID int64) error
	// Switch makes orgID the user's default organization. The user must be
	// a member.
	Switch(ctx context.Context, userID, orgID int64) (*model.Organization, error)
}

type organizationService struct {
	orgStore        store.OrganizationStore
	membershipStore store.MembershipStore
	userStore       store.UserStore
	txRunner        TxRunner
}

func NewOrganizationService(
	orgStore store.OrganizationStore,
	membershipStore store.MembershipStore,
	userStore store.UserStore,
	txRunner TxRunner,
) OrganizationService {
	return &organizationService{
		orgStore:        orgStore,
		membershipStore: membershipStore,
		userStore:       userStore,
		txRunner:        txRunner,
	}
}

func (s *organizationService) Create(ctx context.Context, name string, slug *string, ownerUserID int64) (*model.Organization, error) {
	finalSlug, err := s.ensureSlug(ctx, name, slug)
	if err != nil {
		return nil, err
	}

	org := &model.Organization{
		ID:          id.New(),
		OwnerUserID: ownerUserID,
		Name:        name,
		Slug:        finalSlug,
	}

	err = s.txRunner.WithTx(ctx, func(stores StoreProvider) error {
		if err := stores.Organizations().Create(ctx, org); err != nil {
			return fmt.Errorf("creating organization: %w", err)
		}

		membership := &model.Membership{
			ID:             id.New(),
			UserID:         ownerUserID,
			OrganizationID: org.ID,
			Role:           model.RoleOwner,
		}
		if err := stores.Memberships().Create(ctx, membership); err != nil {
			return fmt.Errorf("creating owner membership: %w", err)
		}

		if err := stores.Users().SetDefaultOrgIfUnset(ctx, ownerUserID, org.ID); err != nil {
			return fmt.Errorf("setting default org: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "organization created",
		"org_id", org.ID,
		"slug", org.Slug,
		"owner_user_id", ownerUserID,
	)

	return org, nil
}

func (s *organizationService) Get(ctx context.Context, orgID int64) (*model.Organization, error) {
	org, err := s.orgStore.GetByID(ctx, orgID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrOrgNotFound
		}
		return nil, fmt.Errorf("getting organization: %w", err)
	}
	return org, nil
}

func (s *organizationService) List(ctx context.Context, userID int64) ([]model.UserOrganization, error) {
	return s.orgStore.ListForUser(ctx, userID)
}

func (s *organizationService) Update(ctx context.Context, orgID int64, update OrganizationUpdate) (*model.Organization, error) {
	org, err := s.Get(ctx, orgID)
	if err != nil {
		return nil, err
	}

	if update.Name != nil && *update.Name != "" {
		org.Name = *update.Name
	}
	if update.ClearSSO {
		org.SSOConnectionID = nil
	} else if update.SSOConnectionID != nil {
		org.SSOConnectionID = update.SSOConnectionID
	}
	if update.VerifiedDomains != nil {
		domains, err := normalizeDomains(update.VerifiedDomains)
		if err != nil {
			return nil, err
		}
		org.VerifiedDomains = domains
	}

	if err := s.orgStore.Update(ctx, org); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrOrgNotFound
		}
		return nil, fmt.Errorf("updating organization: %w", err)
	}

	return org, nil
}

func (s *organizationService) Delete(ctx context.Context, orgID int64) error {
	if _, err := s.Get(ctx, orgID); err != nil {
		return err
	}
	if err := s.orgStore.Delete(ctx, orgID); err != nil {
		return fmt.Errorf("deleting organization: %w", err)
	}
	slog.InfoContext(ctx, "organization deleted", "org_id", orgID)
	return nil
}

func (s *organizationService) Switch(ctx context.Context, userID, orgID int64) (*model.Organization, error) {
	org, err := s.Get(ctx, orgID)
	if err != nil {
		return nil, err
	}

	if _, err := s.membershipStore.GetByUserAndOrg(ctx, userID, orgID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrNotMember
		}
		return nil, fmt.Errorf("getting membership: %w", err)
	}

	if err := s.userStore.SetDefaultOrg(ctx, userID, &orgID); err != nil {
		return nil, fmt.Errorf("setting default org: %w", err)
	}

	return org, nil
}

func (s *organizationService) ensureSlug(ctx context.Context, name string, slug *string) (string, error) {
	input := name
	if slug != nil && *slug != "" {
		input = *slug
	}

	base, err := common.Slugify(input, "org")
	if err != nil {
		return "", fmt.Errorf("generating slug: %w", err)
	}

	// Fast path
	if _, err := s.orgStore.GetBySlug(ctx, base); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return base, nil
		}
		return "", fmt.Errorf("checking slug availability: %w", err)
	}

	// Add numeric suffix until available
	for i := 1; i <= 20; i++ {
		candidate := fmt.Sprintf("%s-%d", base, i)
		_, err := s.orgStore.GetBySlug(ctx, candidate)
		if errors.Is(err, store.ErrNotFound) {
			return candidate, nil
		}
		if err != nil {
			return "", fmt.Errorf("checking slug availability: %w", err)
		}
	}

	return "", ErrSlugsExhausted
}

func normalizeDomains(domains []string) ([]string, error) {
	out := make([]string, 0, len(domains))
	seen := make(map[string]bool, len(domains))
	for _, d := range domains {
		d = strings.ToLower(strings.TrimSpace(d))
		if d == "" || seen[d] {
			continue
		}
		if !hostnameRE.MatchString(d) {
			return nil, fmt.Errorf("%w: %q", ErrInvalidDomain, d)
		}
		seen[d] = true
		out = append(out, d)
	}
	return out, nil
}
