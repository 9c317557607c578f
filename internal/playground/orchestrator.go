// Package playground runs extraction attempts: it turns form input into
// one API call, records the outcome in history and keeps the result
// that is on display.
package playground

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/sadopc/zencrawl/internal/api"
	"github.com/sadopc/zencrawl/internal/core/history"
	"github.com/sadopc/zencrawl/internal/protocol"
)

var (
	// ErrBusy is returned by Begin while an attempt is running.
	ErrBusy = errors.New("an extraction is already running")
	// ErrNotFound is returned by LoadHistory for an unknown id.
	ErrNotFound = errors.New("history entry not found")
	// ErrStale is returned by Resolve for an outcome that does not
	// belong to the running attempt.
	ErrStale = errors.New("outcome does not match the running attempt")
)

// ValidationError reports form input that cannot form a request.
type ValidationError = api.ValidationError

// State is the orchestrator's position in the attempt lifecycle.
type State int

const (
	Idle State = iota
	Running
	ResultReady
	Failed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case ResultReady:
		return "result ready"
	case Failed:
		return "failed"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Executor performs one API call.
type Executor interface {
	Do(ctx context.Context, call api.Call) (*api.Result, error)
}

// Recorder is the history the orchestrator appends to and loads from.
type Recorder interface {
	Add(n history.NewRecord) (history.Record, error)
	Get(id string) (history.Record, bool)
}

// Orchestrator owns the attempt state machine
// idle -> running -> (result ready | failed) -> idle.
// At most one attempt runs at a time; a second Begin is rejected, not
// queued.
type Orchestrator struct {
	mu sync.Mutex

	client  Executor
	history Recorder
	logger  *log.Logger
	onState func(from, to State)

	state   State
	seq     uint64
	running uint64

	kind   protocol.Kind
	target string
	result *api.Result
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

func WithLogger(l *log.Logger) Option {
	return func(o *Orchestrator) { o.logger = l }
}

// WithTransitionHook registers fn to be called on every state change.
// fn runs with the orchestrator locked and must not call back into it.
func WithTransitionHook(fn func(from, to State)) Option {
	return func(o *Orchestrator) { o.onState = fn }
}

// New creates an idle orchestrator with single URL selected.
func New(client Executor, store Recorder, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		client:  client,
		history: store,
		logger:  log.Default(),
		kind:    protocol.KindSingle,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Attempt is a started extraction. Exec performs its single call and is
// safe to run off the owning goroutine.
type Attempt struct {
	id     uint64
	client Executor
	Call   api.Call
}

func (a *Attempt) Kind() protocol.Kind { return a.Call.Kind }
func (a *Attempt) Target() string      { return a.Call.Target }

// Exec sends the call. It does not touch orchestrator state; hand the
// outcome to Resolve.
func (a *Attempt) Exec(ctx context.Context) Outcome {
	res, err := a.client.Do(ctx, a.Call)
	return Outcome{attempt: a.id, Kind: a.Call.Kind, Target: a.Call.Target, Result: res, Err: err}
}

// Outcome is the resolution of an attempt.
type Outcome struct {
	attempt uint64

	Kind   protocol.Kind
	Target string
	Result *api.Result
	Err    error

	// Set by Resolve.
	Message string
	Record  history.Record
}

// Failed reports whether the call failed.
func (o Outcome) Failed() bool { return o.Err != nil }

// Begin moves idle to running for kind and returns the attempt to
// execute. While running it returns ErrBusy and changes nothing. Input
// that cannot form a request returns a *ValidationError; the state
// stays idle and nothing is recorded.
func (o *Orchestrator) Begin(kind protocol.Kind, form Form) (*Attempt, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.state == Running {
		return nil, ErrBusy
	}

	call, err := form.Call(kind)
	if err != nil {
		o.logger.Debug("rejected extraction input", "kind", kind, "err", err)
		return nil, err
	}

	o.seq++
	o.running = o.seq
	o.kind = call.Kind
	o.target = call.Target
	o.result = nil
	o.transition(Running)

	o.logger.Info("extraction started", "kind", call.Kind, "target", call.Target, "path", call.Path)
	return &Attempt{id: o.seq, client: o.client, Call: call}, nil
}

// Resolve applies the outcome of the running attempt: the result is
// put on display or the failure message is extracted, exactly one
// history record is appended, and the state returns to idle. The
// returned error is non-nil only when the outcome is stale or the
// history write failed; the transition happens regardless of the latter.
func (o *Orchestrator) Resolve(out Outcome) (Outcome, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.state != Running || out.attempt != o.running {
		return out, ErrStale
	}
	o.running = 0

	var entry history.NewRecord
	if out.Err != nil {
		out.Message = api.Message(out.Err)
		entry = history.Failed(out.Kind, out.Target, out.Message)
		o.transition(Failed)
		o.logger.Warn("extraction failed", "kind", out.Kind, "target", out.Target, "err", out.Message)
	} else {
		if out.Result == nil {
			out.Result = &api.Result{Kind: out.Kind}
		}
		o.result = out.Result
		entry = history.Completed(out.Kind, out.Target, out.Result.Raw)
		o.transition(ResultReady)
		o.logger.Info("extraction completed", "kind", out.Kind, "target", out.Target, "bytes", len(out.Result.Raw))
	}

	rec, err := o.history.Add(entry)
	o.transition(Idle)
	if err != nil {
		o.logger.Error("recording history", "err", err)
		return out, fmt.Errorf("recording history: %w", err)
	}
	out.Record = rec
	return out, nil
}

// Run begins, executes and resolves one attempt synchronously.
func (o *Orchestrator) Run(ctx context.Context, kind protocol.Kind, form Form) (Outcome, error) {
	a, err := o.Begin(kind, form)
	if err != nil {
		return Outcome{}, err
	}
	return o.Resolve(a.Exec(ctx))
}

// LoadResult is what LoadHistory put on display, or the stored failure.
type LoadResult struct {
	Record  history.Record
	Result  *api.Result // nil for a failed record
	Message string      // stored error of a failed record
}

// LoadHistory shows a past attempt without any network call. A
// completed record replaces the displayed result, kind and target. A
// failed record only yields its message.
func (o *Orchestrator) LoadHistory(id string) (LoadResult, error) {
	rec, ok := o.history.Get(id)
	if !ok {
		return LoadResult{}, ErrNotFound
	}

	if !rec.Completed() {
		msg := rec.Error
		if msg == "" {
			msg = "Failed to load history item"
		}
		return LoadResult{Record: rec, Message: msg}, nil
	}

	res, err := api.ParseResult(rec.Kind, rec.Result)
	if err != nil {
		return LoadResult{}, fmt.Errorf("loading history entry: %w", err)
	}

	o.mu.Lock()
	o.kind = rec.Kind
	o.target = rec.Target
	o.result = res
	o.mu.Unlock()

	o.logger.Debug("loaded history entry", "id", rec.ID, "kind", rec.Kind)
	return LoadResult{Record: rec, Result: res}, nil
}

// SetKind selects the operation kind shown when idle.
func (o *Orchestrator) SetKind(k protocol.Kind) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.state != Running && k.Valid() {
		o.kind = k
	}
}

func (o *Orchestrator) State() State {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

func (o *Orchestrator) Busy() bool {
	return o.State() == Running
}

// Result returns the displayed result, or nil.
func (o *Orchestrator) Result() *api.Result {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.result
}

func (o *Orchestrator) Kind() protocol.Kind {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.kind
}

func (o *Orchestrator) Target() string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.target
}

func (o *Orchestrator) transition(to State) {
	from := o.state
	o.state = to
	if o.onState != nil {
		o.onState(from, to)
	}
}
