package health

import "context"

// DBPinger checks database availability.
type DBPinger interface {
	Ping(ctx context.Context) error
}

// IconCounter reports how many icons the catalog holds.
type IconCounter interface {
	Count(ctx context.Context) (int, error)
}
