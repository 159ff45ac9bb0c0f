package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/BorisDmv/portfolio-api/internal/models"
)

// column maps one wire field to its storage column. read is the select
// expression, COALESCE for nullable columns.
type column struct {
	name string
	read string
}

func plain(name string) column {
	return column{name: name, read: name}
}

func optionalText(name string) column {
	return column{name: name, read: fmt.Sprintf("COALESCE(%s, '')", name)}
}

func textArray(name string) column {
	return column{name: name, read: fmt.Sprintf("COALESCE(%s, '{}'::text[])", name)}
}

func jsonList(name string) column {
	return column{name: name, read: fmt.Sprintf("COALESCE(%s, '[]'::jsonb)", name)}
}

// Table implements the record access operations for one kind. values must
// return the mutable columns in declaration order and scan must read id,
// the columns, created_at and updated_at.
type Table[T models.Record] struct {
	q    Querier
	kind models.Kind

	values func(T) []any
	scan   func(pgx.Row) (T, error)

	listSQL   string
	insertSQL string
	updateSQL string
	deleteSQL string
}

type tableDef[T models.Record] struct {
	kind    models.Kind
	orderBy string
	columns []column
	values  func(T) []any
	scan    func(pgx.Row) (T, error)
}

func newTable[T models.Record](q Querier, def tableDef[T]) *Table[T] {
	name := string(def.kind)

	names := make([]string, len(def.columns))
	reads := make([]string, len(def.columns))
	placeholders := make([]string, len(def.columns))
	assignments := make([]string, len(def.columns))
	for i, col := range def.columns {
		names[i] = col.name
		reads[i] = col.read
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		assignments[i] = fmt.Sprintf("%s = $%d", col.name, i+1)
	}
	returning := "id, " + strings.Join(reads, ", ") + ", created_at, updated_at"

	return &Table[T]{
		q:      q,
		kind:   def.kind,
		values: def.values,
		scan:   def.scan,
		listSQL: fmt.Sprintf(
			"SELECT %s FROM %s ORDER BY %s DESC, id DESC",
			returning, name, def.orderBy,
		),
		insertSQL: fmt.Sprintf(
			"INSERT INTO %s (%s) VALUES (%s) RETURNING %s",
			name, strings.Join(names, ", "), strings.Join(placeholders, ", "), returning,
		),
		updateSQL: fmt.Sprintf(
			"UPDATE %s SET %s, updated_at = now() WHERE id = $%d RETURNING %s",
			name, strings.Join(assignments, ", "), len(def.columns)+1, returning,
		),
		deleteSQL: fmt.Sprintf("DELETE FROM %s WHERE id = $1", name),
	}
}

func (t *Table[T]) List(ctx context.Context) ([]T, error) {
	if t.q == nil {
		return nil, errNotInitialized
	}
	rows, err := t.q.Query(ctx, t.listSQL)
	if err != nil {
		return nil, models.NewPersistenceError(fmt.Sprintf("list %s", t.kind), err)
	}
	defer rows.Close()

	records := make([]T, 0)
	for rows.Next() {
		rec, err := t.scan(rows)
		if err != nil {
			return nil, models.NewPersistenceError(fmt.Sprintf("scan %s", t.kind), err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, models.NewPersistenceError(fmt.Sprintf("list %s", t.kind), err)
	}
	return records, nil
}

func (t *Table[T]) Create(ctx context.Context, rec T) (*T, error) {
	if t.q == nil {
		return nil, errNotInitialized
	}
	created, err := t.scan(t.q.QueryRow(ctx, t.insertSQL, t.values(rec)...))
	if err != nil {
		return nil, models.NewPersistenceError(fmt.Sprintf("create %s", t.kind), err)
	}
	return &created, nil
}

func (t *Table[T]) Update(ctx context.Context, id int64, rec T) (*T, error) {
	if t.q == nil {
		return nil, errNotInitialized
	}
	args := append(t.values(rec), id)
	updated, err := t.scan(t.q.QueryRow(ctx, t.updateSQL, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.NewNotFoundError(t.kind, id)
		}
		return nil, models.NewPersistenceError(fmt.Sprintf("update %s", t.kind), err)
	}
	return &updated, nil
}

func (t *Table[T]) Delete(ctx context.Context, id int64) error {
	if t.q == nil {
		return errNotInitialized
	}
	if _, err := t.q.Exec(ctx, t.deleteSQL, id); err != nil {
		return models.NewPersistenceError(fmt.Sprintf("delete %s", t.kind), err)
	}
	return nil
}

// nullable stores empty optional text as NULL.
func nullable(value string) any {
	if value == "" {
		return nil
	}
	return value
}

func nullableJSON(value json.RawMessage) any {
	if len(value) == 0 || string(value) == "null" {
		return nil
	}
	return value
}
