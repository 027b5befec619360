package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/gameswap/gameswap/internal/domain/field"
)

// FieldRepository reads the fields table and satisfies field.Catalog for
// deployments that keep field inventory locally instead of behind the
// external catalog service.
type FieldRepository struct {
	db *sqlx.DB
}

func NewFieldRepository(db *sqlx.DB) *FieldRepository {
	return &FieldRepository{db: db}
}

type fieldTableModel struct {
	LeagueID string `db:"league_id"`
	Ref      string `db:"field_ref"`
	Park     string `db:"park"`
	Name     string `db:"name"`
	Status   string `db:"status"`
}

func (m fieldTableModel) toDomain() field.Field {
	return field.Field{
		LeagueID: m.LeagueID,
		Ref:      m.Ref,
		Park:     m.Park,
		Name:     m.Name,
		Status:   field.Status(m.Status),
	}
}

func (r *FieldRepository) GetByRef(ctx context.Context, leagueID, ref string) (field.Field, bool, error) {
	const query = `SELECT league_id, field_ref, park, name, status FROM fields WHERE league_id = $1 AND field_ref = $2`

	var row fieldTableModel
	if err := r.db.GetContext(ctx, &row, query, leagueID, ref); err != nil {
		if isNotFound(err) {
			return field.Field{}, false, nil
		}
		return field.Field{}, false, fmt.Errorf("get field: %w", err)
	}
	return row.toDomain(), true, nil
}

func (r *FieldRepository) List(ctx context.Context, leagueID string) ([]field.Field, error) {
	const query = `SELECT league_id, field_ref, park, name, status FROM fields WHERE league_id = $1 ORDER BY field_ref`

	var rows []fieldTableModel
	if err := r.db.SelectContext(ctx, &rows, query, leagueID); err != nil {
		return nil, fmt.Errorf("list fields: %w", err)
	}

	out := make([]field.Field, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}
