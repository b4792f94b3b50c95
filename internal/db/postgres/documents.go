package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	sq "github.com/Masterminds/squirrel"

	"github.com/kailas-cloud/iconhub/internal/db"
	"github.com/kailas-cloud/iconhub/internal/domain/search/filter"
)

const (
	table       = "documents"
	insertBatch = 500
)

type docRow struct {
	ID   string `db:"id"`
	Seq  int64  `db:"seq"`
	Body []byte `db:"body"`
}

// EnsureCollection creates partial expression indexes for keyword fields.
// Other field types need no DDL.
func (s *Store) EnsureCollection(ctx context.Context, spec *db.CollectionSpec) error {
	if err := spec.Validate(); err != nil {
		return &db.Error{Op: db.OpEnsure, Err: err}
	}
	for _, f := range spec.FieldsOf(db.FieldKeyword) {
		// Identifiers are validated, so inlining them is safe.
		stmt := fmt.Sprintf(
			"CREATE INDEX IF NOT EXISTS %s_%s_%s_idx ON %s ((body->>'%s')) WHERE collection = '%s'",
			table, strings.ToLower(spec.Name), strings.ToLower(f), table, f, spec.Name,
		)
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return &db.Error{Op: db.OpEnsure, Err: fmt.Errorf("index %s.%s: %w", spec.Name, f, err)}
		}
	}
	return nil
}

// Insert upserts documents. Conflicting ids keep their original seq.
func (s *Store) Insert(ctx context.Context, collection string, docs []db.Document) error {
	for batch := range slices.Chunk(docs, insertBatch) {
		ins := s.sb.Insert(table).Columns("collection", "id", "body")
		for i := range batch {
			if batch[i].ID == "" {
				return &db.Error{Op: db.OpInsert, Err: fmt.Errorf("document id is required")}
			}
			body, err := json.Marshal(batch[i].Fields)
			if err != nil {
				return &db.Error{Op: db.OpInsert, Err: fmt.Errorf("encode %s: %w", batch[i].ID, err)}
			}
			ins = ins.Values(collection, batch[i].ID, string(body))
		}
		query, args, err := ins.
			Suffix("ON CONFLICT (collection, id) DO UPDATE SET body = EXCLUDED.body").
			ToSql()
		if err != nil {
			return &db.Error{Op: db.OpInsert, Err: err}
		}
		if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
			return &db.Error{Op: db.OpInsert, Err: err}
		}
	}
	return nil
}

// Find runs the count, window and facet queries for q.
func (s *Store) Find(ctx context.Context, collection string, q *db.FindQuery) (*db.FindResult, error) {
	if q == nil {
		q = &db.FindQuery{}
	}
	where, err := whereClause(collection, q.Filter)
	if err != nil {
		return nil, &db.Error{Op: db.OpFind, Err: err}
	}

	total, err := s.count(ctx, where)
	if err != nil {
		return nil, &db.Error{Op: db.OpFind, Err: err}
	}

	res := &db.FindResult{Total: total, Docs: []db.Document{}, Facets: make(map[string][]string, len(q.Facets))}
	if start, end := db.Window(total, q.Offset, q.Limit); end > start {
		body, err := bodyExpr(q.Exclude)
		if err != nil {
			return nil, &db.Error{Op: db.OpFind, Err: err}
		}
		sel := s.sb.Select("id", "seq", body+" AS body").
			From(table).
			Where(where).
			OrderBy("seq", "id").
			Offset(uint64(start)).
			Limit(uint64(end - start))
		if res.Docs, err = s.selectDocs(ctx, sel); err != nil {
			return nil, &db.Error{Op: db.OpFind, Err: err}
		}
	}

	for _, f := range q.Facets {
		values, err := s.facet(ctx, where, f)
		if err != nil {
			return nil, &db.Error{Op: db.OpFind, Err: err}
		}
		res.Facets[f] = values
	}
	return res, nil
}

// FindOne returns the first matching document in insertion order.
func (s *Store) FindOne(ctx context.Context, collection string, f filter.Expression) (*db.Document, error) {
	where, err := whereClause(collection, f)
	if err != nil {
		return nil, &db.Error{Op: db.OpFindOne, Err: err}
	}
	sel := s.sb.Select("id", "seq", "body").From(table).Where(where).OrderBy("seq", "id").Limit(1)
	docs, err := s.selectDocs(ctx, sel)
	if err != nil {
		return nil, &db.Error{Op: db.OpFindOne, Err: err}
	}
	if len(docs) == 0 {
		return nil, &db.Error{Op: db.OpFindOne, Err: db.ErrKeyNotFound}
	}
	return &docs[0], nil
}

// Count returns the number of matching documents.
func (s *Store) Count(ctx context.Context, collection string, f filter.Expression) (int, error) {
	where, err := whereClause(collection, f)
	if err != nil {
		return 0, &db.Error{Op: db.OpCount, Err: err}
	}
	n, err := s.count(ctx, where)
	if err != nil {
		return 0, &db.Error{Op: db.OpCount, Err: err}
	}
	return n, nil
}

// DeleteAll removes every document of the collection.
func (s *Store) DeleteAll(ctx context.Context, collection string) error {
	query, args, err := s.sb.Delete(table).Where(sq.Eq{"collection": collection}).ToSql()
	if err != nil {
		return &db.Error{Op: db.OpDeleteAll, Err: err}
	}
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return &db.Error{Op: db.OpDeleteAll, Err: err}
	}
	return nil
}

func (s *Store) count(ctx context.Context, where sq.Sqlizer) (int, error) {
	query, args, err := s.sb.Select("COUNT(*)").From(table).Where(where).ToSql()
	if err != nil {
		return 0, err
	}
	var n int
	if err := s.db.GetContext(ctx, &n, query, args...); err != nil {
		return 0, fmt.Errorf("count: %w", err)
	}
	return n, nil
}

func (s *Store) facet(ctx context.Context, where sq.Sqlizer, field string) ([]string, error) {
	if !db.IsValidIdentifier(field) {
		return nil, fmt.Errorf("invalid facet field %q", field)
	}
	col := fieldExpr(field)
	query, args, err := s.sb.Select(col+" AS value").
		From(table).
		Where(sq.And{where, sq.Expr(col + " <> ''")}).
		GroupBy(col).
		OrderBy("MIN(seq)").
		ToSql()
	if err != nil {
		return nil, err
	}
	values := []string{}
	if err := s.db.SelectContext(ctx, &values, query, args...); err != nil {
		return nil, fmt.Errorf("facet %s: %w", field, err)
	}
	return values, nil
}

func (s *Store) selectDocs(ctx context.Context, sel sq.SelectBuilder) ([]db.Document, error) {
	query, args, err := sel.ToSql()
	if err != nil {
		return nil, err
	}
	var rows []docRow
	if err := s.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select: %w", err)
	}
	docs := make([]db.Document, 0, len(rows))
	for _, r := range rows {
		fields := map[string]string{}
		if err := json.Unmarshal(r.Body, &fields); err != nil {
			return nil, fmt.Errorf("decode %s: %w", r.ID, err)
		}
		docs = append(docs, db.Document{ID: r.ID, Seq: r.Seq, Fields: fields})
	}
	return docs, nil
}

// fieldExpr reads a top-level body field as text; missing fields read as "".
func fieldExpr(field string) string {
	return "COALESCE(body->>'" + field + "', '')"
}

func bodyExpr(exclude []string) (string, error) {
	expr := "body"
	for _, f := range exclude {
		if !db.IsValidIdentifier(f) {
			return "", fmt.Errorf("invalid excluded field %q", f)
		}
		expr += " - '" + f + "'"
	}
	return expr, nil
}

// whereClause translates a filter expression into SQL.
func whereClause(collection string, f filter.Expression) (sq.Sqlizer, error) {
	where := sq.And{sq.Eq{"collection": collection}}

	for _, c := range f.Must() {
		cond, err := condition(c, false)
		if err != nil {
			return nil, err
		}
		where = append(where, cond)
	}
	for _, c := range f.MustNot() {
		cond, err := condition(c, true)
		if err != nil {
			return nil, err
		}
		where = append(where, cond)
	}
	if len(f.Should()) > 0 {
		or := sq.Or{}
		for _, c := range f.Should() {
			cond, err := condition(c, false)
			if err != nil {
				return nil, err
			}
			or = append(or, cond)
		}
		where = append(where, or)
	}
	return where, nil
}

func condition(c filter.Condition, negate bool) (sq.Sqlizer, error) {
	if !db.IsValidIdentifier(c.Key()) {
		return nil, fmt.Errorf("invalid filter field %q", c.Key())
	}
	op, arg := "=", c.Match()
	if c.IsPattern() {
		op, arg = "~*", c.Pattern()
	}
	expr := fieldExpr(c.Key()) + " " + op + " ?"
	if negate {
		expr = "NOT (" + expr + ")"
	}
	return sq.Expr(expr, arg), nil
}
