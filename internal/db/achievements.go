package db

import (
	"github.com/jackc/pgx/v5"

	"github.com/BorisDmv/portfolio-api/internal/models"
)

func newAchievementsTable(q Querier) *Table[models.Achievement] {
	return newTable(q, tableDef[models.Achievement]{
		kind:    models.KindAchievements,
		orderBy: "date",
		columns: []column{
			plain("title"),
			plain("description"),
			plain("date"),
			plain("type"),
			optionalText("icon"),
			optionalText("image"),
		},
		values: func(a models.Achievement) []any {
			return []any{
				a.Title,
				a.Description,
				a.Date,
				string(a.Type),
				nullable(a.Icon),
				nullable(a.Image),
			}
		},
		scan: func(row pgx.Row) (models.Achievement, error) {
			var a models.Achievement
			var kind string
			err := row.Scan(
				&a.ID,
				&a.Title,
				&a.Description,
				&a.Date,
				&kind,
				&a.Icon,
				&a.Image,
				&a.CreatedAt,
				&a.UpdatedAt,
			)
			a.Type = models.AchievementType(kind)
			return a, err
		},
	})
}
