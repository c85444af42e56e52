package model

import "time"

// ConvertOptions are the knobs of a single conversion run.
type ConvertOptions struct {
	GridSize float64 `json:"grid_size" yaml:"grid_size"`
	Limit    int     `json:"limit" yaml:"limit"`
	Cleanup  bool    `json:"cleanup" yaml:"cleanup"`
}

// GridEnabled reports whether grid deduplication is active.
func (o ConvertOptions) GridEnabled() bool { return o.GridSize > 0 }

// LimitEnabled reports whether the record limit is active.
func (o ConvertOptions) LimitEnabled() bool { return o.Limit > 0 }

// ConvertStats counts what happened to the rows of a run.
type ConvertStats struct {
	RowsProcessed  int  `json:"rows_processed" yaml:"rows_processed"`
	Accepted       int  `json:"accepted" yaml:"accepted"`
	RemovedCleanup int  `json:"removed_cleanup" yaml:"removed_cleanup"`
	RemovedGrid    int  `json:"removed_grid" yaml:"removed_grid"`
	LimitReached   bool `json:"limit_reached" yaml:"limit_reached"`
}

// Run is a completed conversion recorded in the history store.
type Run struct {
	ID         string         `json:"id" yaml:"id"`
	InputPath  string         `json:"input_path" yaml:"input_path"`
	OutputPath string         `json:"output_path" yaml:"output_path"`
	Options    ConvertOptions `json:"options" yaml:"options"`
	Stats      ConvertStats   `json:"stats" yaml:"stats"`
	StartedAt  time.Time      `json:"started_at" yaml:"started_at"`
	FinishedAt time.Time      `json:"finished_at" yaml:"finished_at"`
}

// Duration returns how long the run took.
func (r Run) Duration() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}
