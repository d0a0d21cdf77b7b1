package service

import (
	"context"
	"errors"
	"log/slog"
	"strconv"

	"parley.chat/api-server/internal/model"
	"parley.chat/api-server/internal/store"
)

// AffinityOp tells the caller what to do with the client's org affinity
// (the orgId cookie) after resolution.
type AffinityOp int

const (
	AffinityKeep AffinityOp = iota
	AffinitySet
	AffinityClear
)

// Affinity is the resolver's instruction for the client-side affinity hint.
type Affinity struct {
	Op             AffinityOp
	OrganizationID int64
}

// Resolution is the outcome of resolving a request's organization context.
// OrganizationID is nil when the user belongs to no organization.
type Resolution struct {
	OrganizationID *int64
	Affinity       Affinity
}

// OrgResolver determines which organization a request operates in. It tries
// the client affinity hint first, then the user's stored default, then the
// user's earliest membership. Resolution never fails: candidates that don't
// check out are skipped and lookup errors are treated as misses.
type OrgResolver interface {
	Resolve(ctx context.Context, user *model.User, affinityValue string) Resolution
}

type orgResolver struct {
	userStore       store.UserStore
	membershipStore store.MembershipStore
}

func NewOrgResolver(userStore store.UserStore, membershipStore store.MembershipStore) OrgResolver {
	return &orgResolver{
		userStore:       userStore,
		membershipStore: membershipStore,
	}
}

func (r *orgResolver) Resolve(ctx context.Context, user *model.User, affinityValue string) Resolution {
	// 1. Client affinity hint, if it parses and the user is a member.
	if affinityValue != "" {
		if orgID, err := strconv.ParseInt(affinityValue, 10, 64); err == nil {
			if r.isMember(ctx, user.ID, orgID) {
				return Resolution{
					OrganizationID: &orgID,
					Affinity:       Affinity{Op: AffinityKeep},
				}
			}
		}
		// Hint is stale or malformed; fall through and replace it.
	}

	// 2. The user's stored default, if the membership still exists.
	if user.DefaultOrgID != nil {
		if r.isMember(ctx, user.ID, *user.DefaultOrgID) {
			return Resolution{
				OrganizationID: user.DefaultOrgID,
				Affinity:       Affinity{Op: AffinitySet, OrganizationID: *user.DefaultOrgID},
			}
		}
	}

	// 3. Earliest membership, backfilling the stored default.
	membership, err := r.membershipStore.FirstForUser(ctx, user.ID)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			slog.ErrorContext(ctx, "failed to look up first membership", "error", err, "user_id", user.ID)
		}
		return Resolution{Affinity: Affinity{Op: AffinityClear}}
	}

	if err := r.userStore.SetDefaultOrg(ctx, user.ID, &membership.OrganizationID); err != nil {
		slog.ErrorContext(ctx, "failed to backfill default org", "error", err, "user_id", user.ID, "org_id", membership.OrganizationID)
	}

	return Resolution{
		OrganizationID: &membership.OrganizationID,
		Affinity:       Affinity{Op: AffinitySet, OrganizationID: membership.OrganizationID},
	}
}

func (r *orgResolver) isMember(ctx context.Context, userID, orgID int64) bool {
	_, err := r.membershipStore.GetByUserAndOrg(ctx, userID, orgID)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			slog.ErrorContext(ctx, "failed to check membership", "error", err, "user_id", userID, "org_id", orgID)
		}
		return false
	}
	return true
}
