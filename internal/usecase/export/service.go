package export

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/kailas-cloud/iconhub/internal/db"
	"github.com/kailas-cloud/iconhub/internal/logger"
)

// DefaultBatchSize is the number of documents copied per round trip.
const DefaultBatchSize = 200

// Status of one collection copy.
type Status string

const (
	// StatusCompleted marks a fully copied collection.
	StatusCompleted Status = "completed"
	// StatusError marks a collection that failed part-way.
	StatusError Status = "error"
)

// CollectionResult reports one copied collection.
type CollectionResult struct {
	Collection string
	Count      int
	Status     Status
	Err        error
}

// Report summarizes an export run.
type Report struct {
	Results []CollectionResult
}

// Success reports whether every collection was copied.
func (r Report) Success() bool {
	for _, c := range r.Results {
		if c.Status != StatusCompleted {
			return false
		}
	}
	return true
}

// Service copies catalog collections from the primary store into a target store.
type Service struct {
	source    Source
	dial      TargetDialer
	specs     []*db.CollectionSpec
	batchSize int
}

// New creates an export service for the given collections.
func New(source Source, dial TargetDialer, specs ...*db.CollectionSpec) *Service {
	return &Service{source: source, dial: dial, specs: specs, batchSize: DefaultBatchSize}
}

// WithBatchSize configures the copy batch size.
func (s *Service) WithBatchSize(size int) *Service {
	if size > 0 {
		s.batchSize = size
	}
	return s
}

// Export replaces every target collection with the source contents.
// A failing collection does not stop the others; the error is in its result.
func (s *Service) Export(ctx context.Context) (Report, error) {
	target, err := s.dial(ctx)
	if err != nil {
		return Report{}, fmt.Errorf("dial export target: %w", err)
	}

	log := logger.FromContext(ctx)
	rep := Report{Results: make([]CollectionResult, 0, len(s.specs))}
	for _, spec := range s.specs {
		n, err := s.copyCollection(ctx, target, spec)
		res := CollectionResult{Collection: spec.Name, Count: n, Status: StatusCompleted}
		if err != nil {
			res.Status = StatusError
			res.Err = err
			log.Error("export collection failed",
				zap.String("collection", spec.Name),
				zap.Int("copied", n),
				zap.Error(err),
			)
		} else {
			log.Info("export collection done",
				zap.String("collection", spec.Name),
				zap.Int("copied", n),
			)
		}
		rep.Results = append(rep.Results, res)
	}
	return rep, nil
}

func (s *Service) copyCollection(ctx context.Context, target Target, spec *db.CollectionSpec) (int, error) {
	if err := target.EnsureCollection(ctx, spec); err != nil {
		return 0, fmt.Errorf("ensure %s: %w", spec.Name, err)
	}
	if err := target.DeleteAll(ctx, spec.Name); err != nil {
		return 0, fmt.Errorf("clear %s: %w", spec.Name, err)
	}

	copied := 0
	for {
		if err := ctx.Err(); err != nil {
			return copied, err
		}
		res, err := s.source.Find(ctx, spec.Name, &db.FindQuery{Offset: copied, Limit: s.batchSize})
		if err != nil {
			return copied, fmt.Errorf("read %s: %w", spec.Name, err)
		}
		if len(res.Docs) == 0 {
			return copied, nil
		}
		if err := target.Insert(ctx, spec.Name, res.Docs); err != nil {
			return copied, fmt.Errorf("write %s: %w", spec.Name, err)
		}
		copied += len(res.Docs)
		if copied >= res.Total {
			return copied, nil
		}
	}
}
