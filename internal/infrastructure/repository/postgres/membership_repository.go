package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/gameswap/gameswap/internal/domain/membership"
)

type MembershipRepository struct {
	db *sqlx.DB
}

func NewMembershipRepository(db *sqlx.DB) *MembershipRepository {
	return &MembershipRepository{db: db}
}

type membershipTableModel struct {
	LeagueID string `db:"league_id"`
	UserID   string `db:"user_id"`
	Role     string `db:"role"`
	TeamID   string `db:"team_id"`
}

func (m membershipTableModel) toDomain() membership.Membership {
	return membership.Membership{
		LeagueID: m.LeagueID,
		UserID:   m.UserID,
		Role:     membership.Role(m.Role),
		TeamID:   m.TeamID,
	}
}

func (r *MembershipRepository) GetByUser(ctx context.Context, leagueID, userID string) (membership.Membership, bool, error) {
	const query = `SELECT league_id, user_id, role, team_id FROM memberships WHERE league_id = $1 AND user_id = $2`

	var row membershipTableModel
	if err := r.db.GetContext(ctx, &row, query, leagueID, userID); err != nil {
		if isNotFound(err) {
			return membership.Membership{}, false, nil
		}
		return membership.Membership{}, false, fmt.Errorf("get membership: %w", err)
	}
	return row.toDomain(), true, nil
}

func (r *MembershipRepository) ListByUser(ctx context.Context, userID string) ([]membership.Membership, error) {
	const query = `SELECT league_id, user_id, role, team_id FROM memberships WHERE user_id = $1 ORDER BY league_id`

	var rows []membershipTableModel
	if err := r.db.SelectContext(ctx, &rows, query, userID); err != nil {
		return nil, fmt.Errorf("list memberships by user: %w", err)
	}

	out := make([]membership.Membership, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}
