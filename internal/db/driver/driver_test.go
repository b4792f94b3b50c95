package driver

import (
	"context"
	"errors"
	"testing"

	"github.com/kailas-cloud/iconhub/internal/db"
	"github.com/kailas-cloud/iconhub/internal/db/memory"
	"github.com/kailas-cloud/iconhub/internal/domain/search/filter"
)

var widgets = db.NewCollection("widgets").Keyword("kind").MustBuild()

func TestOpen_Memory(t *testing.T) {
	ctx := context.Background()
	s, err := Open(ctx, Config{Driver: Memory}, widgets)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer s.Close()

	n, err := s.Count(ctx, "widgets", filter.Expression{})
	if err != nil || n != 0 {
		t.Errorf("expected ensured empty collection, got %d, %v", n, err)
	}

	if _, ok := s.(*db.Instrumented); !ok {
		t.Errorf("expected instrumented store, got %T", s)
	}
	if err := s.Ping(context.Background()); err != nil {
		t.Errorf("ping: %v", err)
	}
}

func TestCreate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{name: "memory", cfg: Config{Driver: Memory}},
		{name: "unknown", cfg: Config{Driver: "mongo"}, wantErr: true},
		{name: "redis without addrs", cfg: Config{Driver: Redis}, wantErr: true},
		{name: "valkey without addrs", cfg: Config{Driver: Valkey}, wantErr: true},
		{name: "postgres without dsn", cfg: Config{Driver: Postgres}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := create(tt.cfg)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if _, ok := s.(*memory.Store); !ok {
				t.Errorf("unexpected store type %T", s)
			}
		})
	}
}

func TestLazy_DefersDial(t *testing.T) {
	l := Lazy(Config{Driver: "mongo"})
	defer l.Close()

	err := l.Ping(context.Background())
	if err == nil {
		t.Fatal("expected dial error on first use")
	}
	var dbErr *db.Error
	if !errors.As(err, &dbErr) || dbErr.Op != db.OpConnect {
		t.Errorf("expected connect error, got %v", err)
	}
}
