package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/gameswap/gameswap/internal/infrastructure/repository/memory"
)

// BootstrapSeed loads the dev fixtures into an empty database. It is a no-op
// when any league row already exists.
func BootstrapSeed(ctx context.Context, db *sqlx.DB) error {
	var count int
	if err := db.GetContext(ctx, &count, `SELECT COUNT(1) FROM leagues`); err != nil {
		return fmt.Errorf("count leagues for bootstrap seed: %w", err)
	}
	if count > 0 {
		return nil
	}

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, l := range memory.SeedLeagues() {
		sqlQuery, args, err := sqlx.Named(`
INSERT INTO leagues (league_id, name)
VALUES (:league_id, :name)
ON CONFLICT (league_id) DO NOTHING`, map[string]any{
			"league_id": l.ID,
			"name":      l.Name,
		})
		if err != nil {
			return fmt.Errorf("bind seed league %s query: %w", l.ID, err)
		}
		sqlQuery = tx.Rebind(sqlQuery)
		if _, err := tx.ExecContext(ctx, sqlQuery, args...); err != nil {
			return fmt.Errorf("seed league %s: %w", l.ID, err)
		}
	}

	for _, d := range memory.SeedDivisions() {
		sqlQuery, args, err := sqlx.Named(`
INSERT INTO divisions (league_id, name)
VALUES (:league_id, :name)
ON CONFLICT (league_id, name) DO NOTHING`, map[string]any{
			"league_id": d.LeagueID,
			"name":      d.Name,
		})
		if err != nil {
			return fmt.Errorf("bind seed division %s query: %w", d.Name, err)
		}
		sqlQuery = tx.Rebind(sqlQuery)
		if _, err := tx.ExecContext(ctx, sqlQuery, args...); err != nil {
			return fmt.Errorf("seed division %s: %w", d.Name, err)
		}
	}

	for _, t := range memory.SeedTeams() {
		sqlQuery, args, err := sqlx.Named(`
INSERT INTO teams (league_id, division, team_id, name)
VALUES (:league_id, :division, :team_id, :name)
ON CONFLICT (league_id, team_id) DO NOTHING`, map[string]any{
			"league_id": t.LeagueID,
			"division":  t.Division,
			"team_id":   t.ID,
			"name":      t.Name,
		})
		if err != nil {
			return fmt.Errorf("bind seed team %s query: %w", t.ID, err)
		}
		sqlQuery = tx.Rebind(sqlQuery)
		if _, err := tx.ExecContext(ctx, sqlQuery, args...); err != nil {
			return fmt.Errorf("seed team %s: %w", t.ID, err)
		}
	}

	for _, f := range memory.SeedFields() {
		sqlQuery, args, err := sqlx.Named(`
INSERT INTO fields (league_id, field_ref, park, name, status)
VALUES (:league_id, :field_ref, :park, :name, :status)
ON CONFLICT (league_id, field_ref) DO NOTHING`, map[string]any{
			"league_id": f.LeagueID,
			"field_ref": f.Ref,
			"park":      f.Park,
			"name":      f.Name,
			"status":    string(f.Status),
		})
		if err != nil {
			return fmt.Errorf("bind seed field %s query: %w", f.Ref, err)
		}
		sqlQuery = tx.Rebind(sqlQuery)
		if _, err := tx.ExecContext(ctx, sqlQuery, args...); err != nil {
			return fmt.Errorf("seed field %s: %w", f.Ref, err)
		}
	}

	for _, m := range memory.SeedMemberships() {
		sqlQuery, args, err := sqlx.Named(`
INSERT INTO memberships (league_id, user_id, role, team_id)
VALUES (:league_id, :user_id, :role, :team_id)
ON CONFLICT (league_id, user_id) DO NOTHING`, map[string]any{
			"league_id": m.LeagueID,
			"user_id":   m.UserID,
			"role":      string(m.Role),
			"team_id":   m.TeamID,
		})
		if err != nil {
			return fmt.Errorf("bind seed membership %s query: %w", m.UserID, err)
		}
		sqlQuery = tx.Rebind(sqlQuery)
		if _, err := tx.ExecContext(ctx, sqlQuery, args...); err != nil {
			return fmt.Errorf("seed membership %s: %w", m.UserID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit seed tx: %w", err)
	}

	return nil
}
