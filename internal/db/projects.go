package db

import (
	"github.com/jackc/pgx/v5"

	"github.com/BorisDmv/portfolio-api/internal/models"
)

func newProjectsTable(q Querier) *Table[models.Project] {
	return newTable(q, tableDef[models.Project]{
		kind:    models.KindProjects,
		orderBy: "date",
		columns: []column{
			plain("title"),
			plain("category"),
			plain("description"),
			plain("date"),
			optionalText("long_description"),
			textArray("images"),
			textArray("technologies"),
			optionalText("github_url"),
			optionalText("live_url"),
			optionalText("demo_url"),
			plain("featured"),
		},
		values: func(p models.Project) []any {
			return []any{
				p.Title,
				p.Category,
				p.Description,
				p.Date,
				nullable(p.LongDescription),
				p.Images,
				p.Technologies,
				nullable(p.GithubURL),
				nullable(p.LiveURL),
				nullable(p.DemoURL),
				p.Featured,
			}
		},
		scan: func(row pgx.Row) (models.Project, error) {
			var p models.Project
			err := row.Scan(
				&p.ID,
				&p.Title,
				&p.Category,
				&p.Description,
				&p.Date,
				&p.LongDescription,
				&p.Images,
				&p.Technologies,
				&p.GithubURL,
				&p.LiveURL,
				&p.DemoURL,
				&p.Featured,
				&p.CreatedAt,
				&p.UpdatedAt,
			)
			return p, err
		},
	})
}
