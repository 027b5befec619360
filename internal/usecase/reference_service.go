package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/gameswap/gameswap/internal/domain/field"
	"github.com/gameswap/gameswap/internal/domain/league"
	"github.com/gameswap/gameswap/internal/domain/team"
	"github.com/gameswap/gameswap/internal/domain/user"
)

// ReferenceService serves the read-only reference data behind the UI's
// pickers: divisions, teams, and the fields catalog. CRUD for all of it
// belongs to external admin tooling.
type ReferenceService struct {
	leagues league.Repository
	teams   team.Repository
	fields  field.Catalog
	authz   *AuthzService
}

func NewReferenceService(
	leagues league.Repository,
	teams team.Repository,
	fields field.Catalog,
	authz *AuthzService,
) *ReferenceService {
	return &ReferenceService{
		leagues: leagues,
		teams:   teams,
		fields:  fields,
		authz:   authz,
	}
}

func (s *ReferenceService) ListDivisions(ctx context.Context, principal user.Principal, leagueID string) ([]league.Division, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ReferenceService.ListDivisions")
	defer span.End()

	if _, err := s.authz.ResolveCaller(ctx, leagueID, principal); err != nil {
		return nil, err
	}

	divisions, err := s.leagues.ListDivisions(ctx, leagueID)
	if err != nil {
		return nil, fmt.Errorf("list divisions: %w", err)
	}
	return divisions, nil
}

func (s *ReferenceService) ListTeams(ctx context.Context, principal user.Principal, leagueID, division string) ([]team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ReferenceService.ListTeams")
	defer span.End()

	division = strings.TrimSpace(division)
	if division == "" {
		return nil, fmt.Errorf("%w: division is required", ErrInvalidInput)
	}
	if _, err := s.authz.ResolveCaller(ctx, leagueID, principal); err != nil {
		return nil, err
	}

	if _, exists, err := s.leagues.GetDivision(ctx, leagueID, division); err != nil {
		return nil, fmt.Errorf("get division %s: %w", division, err)
	} else if !exists {
		return nil, fmt.Errorf("%w: division %s", ErrNotFound, division)
	}

	teams, err := s.teams.ListByDivision(ctx, leagueID, division)
	if err != nil {
		return nil, fmt.Errorf("list teams for division %s: %w", division, err)
	}
	return teams, nil
}

func (s *ReferenceService) ListFields(ctx context.Context, principal user.Principal, leagueID string) ([]field.Field, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ReferenceService.ListFields")
	defer span.End()

	if _, err := s.authz.ResolveCaller(ctx, leagueID, principal); err != nil {
		return nil, err
	}

	fields, err := s.fields.List(ctx, leagueID)
	if err != nil {
		return nil, fmt.Errorf("list fields: %w", err)
	}
	return fields, nil
}
