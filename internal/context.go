package internal

import "context"

// Identity is the request-scoped authenticated principal: just the token
// subject and the authorities the token carried. It is bound by the request
// authorizer and read by downstream authority checks; nothing else writes it.
type Identity struct {
	Username    string
	Authorities []string
}

func (id *Identity) HasAuthority(authority string) bool {
	if id == nil {
		return false
	}
	for _, a := range id.Authorities {
		if a == authority {
			return true
		}
	}
	return false
}

type ctxKey string

const identityKey ctxKey = "identity"

func ContextWithIdentity(ctx context.Context, id *Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

// ContextWithoutIdentity drops any previously bound identity. Used as the
// defensive reset when token verification fails mid-request.
func ContextWithoutIdentity(ctx context.Context) context.Context {
	return context.WithValue(ctx, identityKey, (*Identity)(nil))
}

func IdentityFromContext(ctx context.Context) (*Identity, bool) {
	if ctx == nil {
		return nil, false
	}
	id, ok := ctx.Value(identityKey).(*Identity)
	if !ok || id == nil {
		return nil, false
	}
	return id, true
}
