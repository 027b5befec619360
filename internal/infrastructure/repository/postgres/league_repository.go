package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/gameswap/gameswap/internal/domain/league"
)

type LeagueRepository struct {
	db *sqlx.DB
}

func NewLeagueRepository(db *sqlx.DB) *LeagueRepository {
	return &LeagueRepository{db: db}
}

type leagueTableModel struct {
	ID   string `db:"league_id"`
	Name string `db:"name"`
}

type divisionTableModel struct {
	LeagueID string `db:"league_id"`
	Name     string `db:"name"`
}

func (r *LeagueRepository) GetLeague(ctx context.Context, leagueID string) (league.League, bool, error) {
	const query = `SELECT league_id, name FROM leagues WHERE league_id = $1`

	var row leagueTableModel
	if err := r.db.GetContext(ctx, &row, query, leagueID); err != nil {
		if isNotFound(err) {
			return league.League{}, false, nil
		}
		return league.League{}, false, fmt.Errorf("get league: %w", err)
	}
	return league.League{ID: row.ID, Name: row.Name}, true, nil
}

func (r *LeagueRepository) ListDivisions(ctx context.Context, leagueID string) ([]league.Division, error) {
	const query = `SELECT league_id, name FROM divisions WHERE league_id = $1 ORDER BY name`

	var rows []divisionTableModel
	if err := r.db.SelectContext(ctx, &rows, query, leagueID); err != nil {
		return nil, fmt.Errorf("list divisions: %w", err)
	}

	out := make([]league.Division, 0, len(rows))
	for _, row := range rows {
		out = append(out, league.Division{LeagueID: row.LeagueID, Name: row.Name})
	}
	return out, nil
}

func (r *LeagueRepository) GetDivision(ctx context.Context, leagueID, division string) (league.Division, bool, error) {
	const query = `SELECT league_id, name FROM divisions WHERE league_id = $1 AND name = $2`

	var row divisionTableModel
	if err := r.db.GetContext(ctx, &row, query, leagueID, division); err != nil {
		if isNotFound(err) {
			return league.Division{}, false, nil
		}
		return league.Division{}, false, fmt.Errorf("get division: %w", err)
	}
	return league.Division{LeagueID: row.LeagueID, Name: row.Name}, true, nil
}
