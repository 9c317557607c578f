// Package runner executes extractions headlessly (no TUI).
package runner

import (
	"context"
	"encoding/json"
	"time"

	"github.com/charmbracelet/log"

	"github.com/sadopc/zencrawl/internal/api"
	"github.com/sadopc/zencrawl/internal/core/history"
	"github.com/sadopc/zencrawl/internal/playground"
	"github.com/sadopc/zencrawl/internal/protocol"
)

// Runner runs one extraction at a time through the same orchestrator
// and history the TUI uses.
type Runner struct {
	play   *playground.Orchestrator
	logger *log.Logger
}

// Config holds runner configuration.
type Config struct {
	Kind protocol.Kind
	Form playground.Form
	// Timeout bounds the whole call on the client side. Zero leaves it
	// to the service.
	Timeout time.Duration
}

// Result holds the outcome of one extraction.
type Result struct {
	Kind     protocol.Kind   `json:"kind"`
	Target   string          `json:"target"`
	Status   history.Status  `json:"status"`
	Duration time.Duration   `json:"duration"`
	Size     int             `json:"size"`
	Items    int             `json:"items,omitempty"`
	RecordID string          `json:"history_id,omitempty"`
	Error    string          `json:"error,omitempty"`
	Body     json.RawMessage `json:"result,omitempty"`

	Result *api.Result `json:"-"`
}

// Failed reports whether the extraction failed.
func (r Result) Failed() bool { return r.Status == history.StatusFailed }

// New creates a runner. A nil logger selects the default logger.
func New(client playground.Executor, store playground.Recorder, logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		play:   playground.New(client, store, playground.WithLogger(logger)),
		logger: logger,
	}
}

// Run sends one extraction and records it. The returned error is non-nil
// only when the input is rejected before anything is sent; remote and
// transport failures are reported in the Result.
func (r *Runner) Run(ctx context.Context, cfg Config) (Result, error) {
	attempt, err := r.play.Begin(cfg.Kind, cfg.Form)
	if err != nil {
		return Result{}, err
	}

	if cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()
	}

	start := time.Now()
	out, err := r.play.Resolve(attempt.Exec(ctx))
	if err != nil {
		r.logger.Warn("extraction not saved to history", "err", err)
	}

	res := Result{
		Kind:     out.Kind,
		Target:   out.Target,
		Duration: time.Since(start),
		RecordID: out.Record.ID,
	}
	if out.Failed() {
		res.Status = history.StatusFailed
		res.Error = out.Message
		return res, nil
	}

	res.Status = history.StatusCompleted
	res.Result = out.Result
	res.Body = out.Result.Raw
	res.Size = len(out.Result.Raw)
	res.Items = itemCount(out.Result)
	return res, nil
}

// ExitCode returns 0 for a completed extraction and 1 for a failed one.
func ExitCode(res Result) int {
	if res.Failed() {
		return 1
	}
	return 0
}

func itemCount(r *api.Result) int {
	if len(r.Items) > 0 {
		return len(r.Items)
	}
	return len(r.Links)
}
