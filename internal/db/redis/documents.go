package redis

import (
	"context"
	"fmt"
	"maps"
	"slices"

	"github.com/redis/rueidis"

	"github.com/kailas-cloud/iconhub/internal/db"
	"github.com/kailas-cloud/iconhub/internal/domain/search/filter"
)

// deleteBatch bounds the number of keys per DEL.
const deleteBatch = 500

// EnsureCollection validates and remembers the schema. Redis needs no DDL;
// the schema drives HMGET projections.
func (s *Store) EnsureCollection(_ context.Context, spec *db.CollectionSpec) error {
	if err := spec.Validate(); err != nil {
		return &db.Error{Op: db.OpEnsure, Err: err}
	}
	s.mu.Lock()
	s.specs[spec.Name] = spec
	s.mu.Unlock()
	return nil
}

// Insert upserts documents. New ids get the next sequence number,
// existing ids keep theirs.
func (s *Store) Insert(ctx context.Context, collection string, docs []db.Document) error {
	if len(docs) == 0 {
		return nil
	}
	for i := range docs {
		if docs[i].ID == "" || len(docs[i].Fields) == 0 {
			return &db.Error{Op: db.OpInsert, Err: fmt.Errorf("document %d: id and fields are required", i)}
		}
	}

	seqs, err := s.assignSeqs(ctx, collection, docs)
	if err != nil {
		return err
	}

	cmds := make([]rueidis.Completed, 0, len(docs)*3)
	for i := range docs {
		key := s.docKey(collection, docs[i].ID)
		cmds = append(cmds, s.b().Del().Key(key).Build())

		hset := s.b().Hset().Key(key).FieldValue()
		for _, f := range slices.Sorted(maps.Keys(docs[i].Fields)) {
			hset = hset.FieldValue(f, docs[i].Fields[f])
		}
		cmds = append(cmds, hset.Build())

		cmds = append(cmds, s.b().Zadd().Key(s.seqKey(collection)).Nx().
			ScoreMember().ScoreMember(float64(seqs[i]), docs[i].ID).Build())
	}

	for i, res := range s.client.DoMulti(ctx, cmds...) {
		if err := res.Error(); err != nil {
			return &db.Error{Op: db.OpInsert, Err: fmt.Errorf("doc %s: %w", docs[i/3].ID, err)}
		}
	}
	return nil
}

// assignSeqs looks up existing sequences and reserves a block for new ids.
func (s *Store) assignSeqs(ctx context.Context, collection string, docs []db.Document) ([]int64, error) {
	cmds := make([]rueidis.Completed, len(docs))
	for i := range docs {
		cmds[i] = s.b().Zscore().Key(s.seqKey(collection)).Member(docs[i].ID).Build()
	}

	seqs := make([]int64, len(docs))
	fresh := make(map[string]int, len(docs))
	var order []int
	for i, res := range s.client.DoMulti(ctx, cmds...) {
		score, err := res.AsFloat64()
		switch {
		case err == nil:
			seqs[i] = int64(score)
		case rueidis.IsRedisNil(err):
			// Duplicate ids within one batch share a sequence.
			if _, dup := fresh[docs[i].ID]; !dup {
				fresh[docs[i].ID] = len(order)
			}
			order = append(order, i)
		default:
			return nil, &db.Error{Op: db.OpInsert, Err: fmt.Errorf("zscore %s: %w", docs[i].ID, err)}
		}
	}
	if len(order) == 0 {
		return seqs, nil
	}

	cmd := s.b().Incrby().Key(s.counterKey(collection)).Increment(int64(len(fresh))).Build()
	last, err := s.do(ctx, cmd).AsInt64()
	if err != nil {
		return nil, &db.Error{Op: db.OpInsert, Err: fmt.Errorf("incrby: %w", err)}
	}
	first := last - int64(len(fresh)) + 1

	// Rank fresh ids by first appearance so the batch keeps caller order.
	rank := make(map[string]int64, len(fresh))
	for _, i := range order {
		id := docs[i].ID
		if _, ok := rank[id]; !ok {
			rank[id] = first + int64(len(rank))
		}
		seqs[i] = rank[id]
	}
	return seqs, nil
}

// Find filters documents in insertion order.
// Pattern conditions run client-side over the fields they reference, then only
// the requested window is fetched in full.
func (s *Store) Find(ctx context.Context, collection string, q *db.FindQuery) (*db.FindResult, error) {
	if q == nil {
		q = &db.FindQuery{}
	}
	matched, err := s.match(ctx, collection, q.Filter, q.Facets)
	if err != nil {
		return nil, err
	}

	start, end := db.Window(len(matched.Docs), q.Offset, q.Limit)
	window := matched.Docs[start:end]
	docs, err := s.load(ctx, collection, window, q.Exclude)
	if err != nil {
		return nil, err
	}
	return &db.FindResult{Total: matched.Total, Docs: docs, Facets: matched.Facets}, nil
}

// FindOne returns the first matching document in insertion order.
func (s *Store) FindOne(ctx context.Context, collection string, f filter.Expression) (*db.Document, error) {
	res, err := s.Find(ctx, collection, &db.FindQuery{Filter: f, Limit: 1})
	if err != nil {
		return nil, err
	}
	if len(res.Docs) == 0 {
		return nil, &db.Error{Op: db.OpFindOne, Err: db.ErrKeyNotFound}
	}
	return &res.Docs[0], nil
}

// Count returns the number of matching documents.
func (s *Store) Count(ctx context.Context, collection string, f filter.Expression) (int, error) {
	if f.IsEmpty() {
		n, err := s.do(ctx, s.b().Zcard().Key(s.seqKey(collection)).Build()).AsInt64()
		if err != nil {
			return 0, &db.Error{Op: db.OpCount, Err: err}
		}
		return int(n), nil
	}
	matched, err := s.match(ctx, collection, f, nil)
	if err != nil {
		return 0, err
	}
	return matched.Total, nil
}

// DeleteAll removes every document, the sequence index and the counter.
func (s *Store) DeleteAll(ctx context.Context, collection string) error {
	ids, err := s.ids(ctx, collection)
	if err != nil {
		return err
	}

	keys := make([]string, 0, len(ids))
	for _, e := range ids {
		keys = append(keys, s.docKey(collection, e.Member))
	}
	keys = append(keys, s.seqKey(collection), s.counterKey(collection))

	for batch := range slices.Chunk(keys, deleteBatch) {
		if err := s.do(ctx, s.b().Del().Key(batch...).Build()).Error(); err != nil {
			return &db.Error{Op: db.OpDeleteAll, Err: err}
		}
	}
	return nil
}

func (s *Store) ids(ctx context.Context, collection string) ([]rueidis.ZScore, error) {
	cmd := s.b().Zrange().Key(s.seqKey(collection)).Min("0").Max("-1").Withscores().Build()
	entries, err := s.do(ctx, cmd).AsZScores()
	if err != nil {
		return nil, &db.Error{Op: db.OpFind, Err: fmt.Errorf("zrange: %w", err)}
	}
	return entries, nil
}

// match returns id/seq stubs of every matching document plus facets.
// Stub Fields hold only the fields the filter and facets need.
func (s *Store) match(ctx context.Context, collection string, f filter.Expression, facets []string) (*db.FindResult, error) {
	entries, err := s.ids(ctx, collection)
	if err != nil {
		return nil, err
	}

	stubs := make([]db.Document, len(entries))
	for i, e := range entries {
		stubs[i] = db.Document{ID: e.Member, Seq: int64(e.Score)}
	}

	needed := f.Keys()
	for _, name := range facets {
		if !slices.Contains(needed, name) {
			needed = append(needed, name)
		}
	}
	if len(needed) > 0 && len(stubs) > 0 {
		cmds := make([]rueidis.Completed, len(stubs))
		for i := range stubs {
			cmds[i] = s.b().Hmget().Key(s.docKey(collection, stubs[i].ID)).Field(needed...).Build()
		}
		for i, res := range s.client.DoMulti(ctx, cmds...) {
			fields, err := hmgetFields(res, needed)
			if err != nil {
				return nil, &db.Error{Op: db.OpFind, Err: fmt.Errorf("hmget %s: %w", stubs[i].ID, err)}
			}
			stubs[i].Fields = fields
		}
	}

	db.SortNatural(stubs)
	return db.Select(stubs, &db.FindQuery{Filter: f, Facets: facets}), nil
}

// load fetches full documents for the given stubs, keeping their order.
// Known schemas use HMGET over the projected fields; unknown ones fall back
// to HGETALL and drop excluded fields locally.
func (s *Store) load(ctx context.Context, collection string, stubs []db.Document, exclude []string) ([]db.Document, error) {
	out := make([]db.Document, 0, len(stubs))
	if len(stubs) == 0 {
		return out, nil
	}

	var projection []string
	if spec := s.spec(collection); spec != nil {
		projection = spec.Projection(exclude)
	}

	cmds := make([]rueidis.Completed, len(stubs))
	for i := range stubs {
		key := s.docKey(collection, stubs[i].ID)
		if len(projection) > 0 {
			cmds[i] = s.b().Hmget().Key(key).Field(projection...).Build()
		} else {
			cmds[i] = s.b().Hgetall().Key(key).Build()
		}
	}

	for i, res := range s.client.DoMulti(ctx, cmds...) {
		var (
			fields map[string]string
			err    error
		)
		if len(projection) > 0 {
			fields, err = hmgetFields(res, projection)
		} else {
			fields, err = res.AsStrMap()
		}
		if err != nil {
			return nil, &db.Error{Op: db.OpFind, Err: fmt.Errorf("load %s: %w", stubs[i].ID, err)}
		}
		if len(fields) == 0 {
			continue // removed between ZRANGE and load
		}
		doc := db.Document{ID: stubs[i].ID, Seq: stubs[i].Seq, Fields: fields}
		if len(projection) == 0 {
			doc = db.Project(doc, exclude)
		}
		out = append(out, doc)
	}
	return out, nil
}

// hmgetFields zips an HMGET reply with its field names. Nil entries are skipped.
func hmgetFields(res rueidis.RedisResult, names []string) (map[string]string, error) {
	values, err := res.ToArray()
	if err != nil {
		return nil, err
	}
	fields := make(map[string]string, len(names))
	for i, v := range values {
		if i >= len(names) || v.IsNil() {
			continue
		}
		str, err := v.ToString()
		if err != nil {
			return nil, err
		}
		fields[names[i]] = str
	}
	return fields, nil
}
