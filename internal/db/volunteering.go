package db

import (
	"github.com/jackc/pgx/v5"

	"github.com/BorisDmv/portfolio-api/internal/models"
)

func newVolunteeringTable(q Querier) *Table[models.VolunteeringRecord] {
	return newTable(q, tableDef[models.VolunteeringRecord]{
		kind:    models.KindVolunteering,
		orderBy: "period",
		columns: []column{
			plain("role"),
			plain("organization"),
			plain("period"),
			plain("description"),
			optionalText("location"),
			optionalText("image"),
			jsonList("events"),
		},
		values: func(v models.VolunteeringRecord) []any {
			return []any{
				v.Role,
				v.Organization,
				v.Period,
				v.Description,
				nullable(v.Location),
				nullable(v.Image),
				nullableJSON(v.Events),
			}
		},
		scan: func(row pgx.Row) (models.VolunteeringRecord, error) {
			var v models.VolunteeringRecord
			err := row.Scan(
				&v.ID,
				&v.Role,
				&v.Organization,
				&v.Period,
				&v.Description,
				&v.Location,
				&v.Image,
				&v.Events,
				&v.CreatedAt,
				&v.UpdatedAt,
			)
			return v, err
		},
	})
}
