package httpapi

import (
	"context"

	"github.com/gameswap/gameswap/internal/domain/user"
)

type contextKey string

const (
	principalContextKey contextKey = "auth_principal"
	leagueContextKey    contextKey = "league_id"
)

func withPrincipal(ctx context.Context, p user.Principal) context.Context {
	return context.WithValue(ctx, principalContextKey, p)
}

func principalFromContext(ctx context.Context) (user.Principal, bool) {
	p, ok := ctx.Value(principalContextKey).(user.Principal)
	return p, ok
}

func withLeagueID(ctx context.Context, leagueID string) context.Context {
	return context.WithValue(ctx, leagueContextKey, leagueID)
}

func leagueIDFromContext(ctx context.Context) (string, bool) {
	leagueID, ok := ctx.Value(leagueContextKey).(string)
	return leagueID, ok && leagueID != ""
}
