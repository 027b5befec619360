package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/gameswap/gameswap/internal/domain/team"
)

type TeamRepository struct {
	db *sqlx.DB
}

func NewTeamRepository(db *sqlx.DB) *TeamRepository {
	return &TeamRepository{db: db}
}

type teamTableModel struct {
	LeagueID string `db:"league_id"`
	Division string `db:"division"`
	ID       string `db:"team_id"`
	Name     string `db:"name"`
}

func (m teamTableModel) toDomain() team.Team {
	return team.Team{
		LeagueID: m.LeagueID,
		Division: m.Division,
		ID:       m.ID,
		Name:     m.Name,
	}
}

func (r *TeamRepository) GetByID(ctx context.Context, leagueID, teamID string) (team.Team, bool, error) {
	const query = `SELECT league_id, division, team_id, name FROM teams WHERE league_id = $1 AND team_id = $2`

	var row teamTableModel
	if err := r.db.GetContext(ctx, &row, query, leagueID, teamID); err != nil {
		if isNotFound(err) {
			return team.Team{}, false, nil
		}
		return team.Team{}, false, fmt.Errorf("get team: %w", err)
	}
	return row.toDomain(), true, nil
}

func (r *TeamRepository) ListByDivision(ctx context.Context, leagueID, division string) ([]team.Team, error) {
	const query = `SELECT league_id, division, team_id, name FROM teams WHERE league_id = $1 AND division = $2 ORDER BY name`

	var rows []teamTableModel
	if err := r.db.SelectContext(ctx, &rows, query, leagueID, division); err != nil {
		return nil, fmt.Errorf("list teams by division: %w", err)
	}

	out := make([]team.Team, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}
