package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/gameswap/gameswap/internal/domain/membership"
	"github.com/gameswap/gameswap/internal/domain/user"
)

// Caller is the result of resolving a principal against one league's
// membership roster. It is valid for a single operation only; services
// re-resolve on every mutating call to avoid stale-privilege windows.
type Caller struct {
	UserID string
	Role   membership.Role
	TeamID string
}

func (c Caller) IsLeagueAdmin() bool {
	return c.Role == membership.RoleLeagueAdmin
}

// CoachOf reports whether the caller is the coach assigned to teamID.
func (c Caller) CoachOf(teamID string) bool {
	return c.Role == membership.RoleCoach && c.TeamID != "" && c.TeamID == teamID
}

// AuthzService is the authorization gate in front of the lifecycle managers.
type AuthzService struct {
	memberships membership.Repository
	logger      *slog.Logger
}

func NewAuthzService(memberships membership.Repository, logger *slog.Logger) *AuthzService {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthzService{
		memberships: memberships,
		logger:      logger,
	}
}

// ResolveCaller answers "who is this principal within leagueID". It fails
// with ErrUnauthenticated when the identity is missing and ErrForbidden when
// the identity holds no membership in the league.
func (s *AuthzService) ResolveCaller(ctx context.Context, leagueID string, principal user.Principal) (Caller, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AuthzService.ResolveCaller")
	defer span.End()

	leagueID = strings.TrimSpace(leagueID)
	if leagueID == "" {
		return Caller{}, fmt.Errorf("%w: league id is required", ErrInvalidInput)
	}
	if strings.TrimSpace(principal.UserID) == "" {
		return Caller{}, fmt.Errorf("%w: caller identity could not be resolved", ErrUnauthenticated)
	}

	m, exists, err := s.memberships.GetByUser(ctx, leagueID, principal.UserID)
	if err != nil {
		return Caller{}, fmt.Errorf("get membership for user=%s league=%s: %w", principal.UserID, leagueID, err)
	}
	if !exists {
		return Caller{}, fmt.Errorf("%w: no membership in league %s", ErrForbidden, leagueID)
	}

	return Caller{
		UserID: m.UserID,
		Role:   m.Role,
		TeamID: m.TeamID,
	}, nil
}

// ListMemberships returns every league membership the principal holds,
// backing the session bootstrap endpoint.
func (s *AuthzService) ListMemberships(ctx context.Context, principal user.Principal) ([]membership.Membership, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AuthzService.ListMemberships")
	defer span.End()

	if strings.TrimSpace(principal.UserID) == "" {
		return nil, fmt.Errorf("%w: caller identity could not be resolved", ErrUnauthenticated)
	}

	items, err := s.memberships.ListByUser(ctx, principal.UserID)
	if err != nil {
		return nil, fmt.Errorf("list memberships for user=%s: %w", principal.UserID, err)
	}
	return items, nil
}
