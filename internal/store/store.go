package store

import (
	"context"

	"github.com/sells-group/meteorite-cli/internal/model"
)

// RunFilter specifies criteria for listing runs.
type RunFilter struct {
	InputPath string `json:"input_path,omitempty"`
	Limit     int    `json:"limit,omitempty"`
	Offset    int    `json:"offset,omitempty"`
}

// Store persists the history of conversion runs.
type Store interface {
	CreateRun(ctx context.Context, run *model.Run) error
	GetRun(ctx context.Context, runID string) (*model.Run, error)
	ListRuns(ctx context.Context, filter RunFilter) ([]model.Run, error)

	// Lifecycle
	Migrate(ctx context.Context) error
	Close() error
}
