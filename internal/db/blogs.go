package db

import (
	"github.com/jackc/pgx/v5"

	"github.com/BorisDmv/portfolio-api/internal/models"
)

func newBlogsTable(q Querier) *Table[models.BlogPost] {
	return newTable(q, tableDef[models.BlogPost]{
		kind:    models.KindBlogs,
		orderBy: "date",
		columns: []column{
			plain("title"),
			plain("excerpt"),
			plain("content"),
			plain("author"),
			plain("date"),
			textArray("tags"),
			optionalText("image"),
			optionalText("read_time"),
		},
		values: func(b models.BlogPost) []any {
			return []any{
				b.Title,
				b.Excerpt,
				b.Content,
				b.Author,
				b.Date,
				b.Tags,
				nullable(b.Image),
				nullable(b.ReadTime),
			}
		},
		scan: func(row pgx.Row) (models.BlogPost, error) {
			var b models.BlogPost
			err := row.Scan(
				&b.ID,
				&b.Title,
				&b.Excerpt,
				&b.Content,
				&b.Author,
				&b.Date,
				&b.Tags,
				&b.Image,
				&b.ReadTime,
				&b.CreatedAt,
				&b.UpdatedAt,
			)
			return b, err
		},
	})
}
