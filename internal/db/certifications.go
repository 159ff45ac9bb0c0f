package db

import (
	"github.com/jackc/pgx/v5"

	"github.com/BorisDmv/portfolio-api/internal/models"
)

func newCertificationsTable(q Querier) *Table[models.Certification] {
	return newTable(q, tableDef[models.Certification]{
		kind:    models.KindCertifications,
		orderBy: "date",
		columns: []column{
			plain("name"),
			plain("issuer"),
			plain("date"),
			optionalText("credential_url"),
			optionalText("description"),
			optionalText("category"),
			optionalText("image"),
		},
		values: func(c models.Certification) []any {
			return []any{
				c.Name,
				c.Issuer,
				c.Date,
				nullable(c.CredentialURL),
				nullable(c.Description),
				nullable(c.Category),
				nullable(c.Image),
			}
		},
		scan: func(row pgx.Row) (models.Certification, error) {
			var c models.Certification
			err := row.Scan(
				&c.ID,
				&c.Name,
				&c.Issuer,
				&c.Date,
				&c.CredentialURL,
				&c.Description,
				&c.Category,
				&c.Image,
				&c.CreatedAt,
				&c.UpdatedAt,
			)
			return c, err
		},
	})
}
