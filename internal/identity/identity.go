package identity

import (
	"context"
	"fmt"
	"strings"

	"github.com/pbaille/ventures/internal/domain"
	"github.com/pbaille/ventures/internal/store"
)

// Resolver reads the current-user record owned by the authentication layer.
// It never writes that collection.
type Resolver struct {
	store store.RecordStore
}

func NewResolver(s store.RecordStore) *Resolver {
	return &Resolver{store: s}
}

// Current returns the signed-in user, or ErrMissingContext when there is none
func (r *Resolver) Current(ctx context.Context) (domain.User, error) {
	users, err := store.Load[domain.User](ctx, r.store, store.CurrentUser)
	if err != nil {
		return domain.User{}, fmt.Errorf("load current user: %w", err)
	}
	if len(users) == 0 || strings.TrimSpace(users[0].ID) == "" {
		return domain.User{}, fmt.Errorf("%w: no current user", domain.ErrMissingContext)
	}
	return users[0], nil
}

// RequireInvestor is Current restricted to investor identities
func (r *Resolver) RequireInvestor(ctx context.Context) (domain.User, error) {
	u, err := r.Current(ctx)
	if err != nil {
		return domain.User{}, err
	}
	if u.Role != domain.RoleInvestor {
		return domain.User{}, fmt.Errorf("%w: current user %s is not an investor", domain.ErrMissingContext, u.ID)
	}
	return u, nil
}
