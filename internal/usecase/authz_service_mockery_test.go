package usecase

import (
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/mock"

	"github.com/gameswap/gameswap/internal/domain/membership"
	"github.com/gameswap/gameswap/internal/domain/user"
	membershipmock "github.com/gameswap/gameswap/internal/mocks/domain/membership"
)

func TestAuthzService_ResolveCaller_SuccessUsingMockery(t *testing.T) {
	t.Parallel()

	membershipRepo := membershipmock.NewRepository(t)
	service := NewAuthzService(membershipRepo, slog.New(slog.NewTextHandler(io.Discard, nil)))

	membershipRepo.
		On("GetByUser", mock.Anything, "arlington-girls-softball", "coach-tigers").
		Return(membership.Membership{
			LeagueID: "arlington-girls-softball",
			UserID:   "coach-tigers",
			Role:     membership.RoleCoach,
			TeamID:   "tigers",
		}, true, nil).
		Once()

	caller, err := service.ResolveCaller(t.Context(), "arlington-girls-softball", user.Principal{UserID: "coach-tigers"})
	if err != nil {
		t.Fatalf("resolve caller: %v", err)
	}
	if !caller.CoachOf("tigers") {
		t.Fatalf("expected caller to coach tigers, got %+v", caller)
	}
	if caller.IsLeagueAdmin() {
		t.Fatalf("expected coach not to be league admin")
	}
}

func TestAuthzService_ResolveCaller_RepoErrorUsingMockery(t *testing.T) {
	t.Parallel()

	membershipRepo := membershipmock.NewRepository(t)
	service := NewAuthzService(membershipRepo, slog.New(slog.NewTextHandler(io.Discard, nil)))

	storeErr := errors.New("connection reset")
	membershipRepo.
		On("GetByUser", mock.Anything, "arlington-girls-softball", "coach-tigers").
		Return(membership.Membership{}, false, storeErr).
		Once()

	_, err := service.ResolveCaller(t.Context(), "arlington-girls-softball", user.Principal{UserID: "coach-tigers"})
	if !errors.Is(err, storeErr) {
		t.Fatalf("expected wrapped store error, got %v", err)
	}
}

func TestAuthzService_ListMemberships_UsingMockery(t *testing.T) {
	t.Parallel()

	membershipRepo := membershipmock.NewRepository(t)
	service := NewAuthzService(membershipRepo, slog.New(slog.NewTextHandler(io.Discard, nil)))

	membershipRepo.
		On("ListByUser", mock.Anything, "coach-tigers").
		Return([]membership.Membership{
			{LeagueID: "arlington-girls-softball", UserID: "coach-tigers", Role: membership.RoleCoach, TeamID: "tigers"},
		}, nil).
		Once()

	items, err := service.ListMemberships(t.Context(), user.Principal{UserID: "coach-tigers"})
	if err != nil {
		t.Fatalf("list memberships: %v", err)
	}
	if len(items) != 1 || items[0].TeamID != "tigers" {
		t.Fatalf("unexpected memberships: %+v", items)
	}

	_, err = service.ListMemberships(t.Context(), user.Principal{})
	if !errors.Is(err, ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated for empty principal, got %v", err)
	}
}
