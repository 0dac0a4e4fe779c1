package migrations

import "time"

// MigrationAppliedEvent is published after a migration has been applied and recorded.
type MigrationAppliedEvent struct {
	Target     string    `json:"target"`
	Kind       Kind      `json:"kind"`
	Version    uint64    `json:"version"`
	ExecutedAt time.Time `json:"executedAt"`
}
