package studio

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	pkgerrors "github.com/zhubert/sketchlab/internal/errors"
	"github.com/zhubert/sketchlab/internal/generation"
	"github.com/zhubert/sketchlab/internal/imageref"
	"github.com/zhubert/sketchlab/internal/logger"
)

// ErrAlreadyGenerating is returned by Begin while an attempt is outstanding.
var ErrAlreadyGenerating = pkgerrors.AlreadyGenerating()

// Generator performs one generation request.
type Generator interface {
	Generate(ctx context.Context, up generation.Upload) (*generation.Response, error)
}

// Transition is how Finish resolved an outcome.
type Transition int

const (
	Succeeded Transition = iota
	Failed
	// Discarded outcomes belonged to a superseded or torn-down attempt and
	// left the session untouched.
	Discarded
)

func (t Transition) String() string {
	switch t {
	case Succeeded:
		return "succeeded"
	case Failed:
		return "failed"
	default:
		return "discarded"
	}
}

// Attempt is one outstanding generation request.
type Attempt struct {
	id     uint64
	upload generation.Upload
	ctx    context.Context
	cancel context.CancelFunc
	gen    Generator
}

// ID identifies the attempt within its orchestrator.
func (a *Attempt) ID() uint64 { return a.id }

// Run performs the request. It never touches session state, so it is safe
// to call from a background goroutine.
func (a *Attempt) Run() Outcome {
	resp, err := a.gen.Generate(a.ctx, a.upload)
	return Outcome{AttemptID: a.id, Upload: a.upload, Response: resp, Err: err}
}

// Outcome carries the result of Attempt.Run back to Finish.
type Outcome struct {
	AttemptID uint64
	Upload    generation.Upload
	Response  *generation.Response
	Err       error
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithClock overrides the time source used to stamp results.
func WithClock(now func() time.Time) Option {
	return func(o *Orchestrator) { o.now = now }
}

// WithDarkMode sets the initial presentation flag.
func WithDarkMode(dark bool) Option {
	return func(o *Orchestrator) { o.session.dark = dark }
}

// Orchestrator drives the request lifecycle and is the only writer of its
// Session.
type Orchestrator struct {
	mu      sync.Mutex
	session *Session
	gen     Generator
	refs    *imageref.Store
	now     func() time.Time
	log     *slog.Logger

	attempt *Attempt
	seq     uint64
	closed  bool
}

// NewOrchestrator creates an orchestrator with a fresh session.
func NewOrchestrator(gen Generator, refs *imageref.Store, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		session: newSession(false),
		gen:     gen,
		refs:    refs,
		now:     time.Now,
		log:     logger.ComponentLogger("Studio"),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Session returns the session this orchestrator owns.
func (o *Orchestrator) Session() *Session {
	return o.session
}

// Refs returns the reference store results point into.
func (o *Orchestrator) Refs() *imageref.Store {
	return o.refs
}

// SetGenerator replaces the generator used by later attempts. An attempt
// already in flight keeps the one it started with.
func (o *Orchestrator) SetGenerator(gen Generator) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.gen = gen
}

// Begin enters the Generating state: it clears the current result and any
// failure notice and returns the attempt to run.
func (o *Orchestrator) Begin(ctx context.Context, up generation.Upload) (*Attempt, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.closed {
		return nil, pkgerrors.E(pkgerrors.Op("studio.Begin"), pkgerrors.KindCanceled, "session closed")
	}
	if o.attempt != nil {
		return nil, ErrAlreadyGenerating
	}
	if len(up.Data) == 0 {
		return nil, pkgerrors.SketchEmpty(up.Name)
	}

	o.seq++
	actx, cancel := context.WithCancel(ctx)
	o.attempt = &Attempt{
		id:     o.seq,
		upload: up,
		ctx:    actx,
		cancel: cancel,
		gen:    o.gen,
	}

	o.session.mu.Lock()
	o.session.generating = true
	o.session.current = nil
	o.session.failure = nil
	o.session.mu.Unlock()

	o.log.Info("generation started", "attempt", o.seq, "file", up.Name, "bytes", len(up.Data))
	return o.attempt, nil
}

// Finish applies an outcome and returns the session to Idle. Outcomes from
// an attempt that is no longer outstanding are discarded.
func (o *Orchestrator) Finish(out Outcome) Transition {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.closed || o.attempt == nil || o.attempt.id != out.AttemptID {
		o.log.Debug("discarding stale outcome", "attempt", out.AttemptID, "closed", o.closed)
		return Discarded
	}

	o.attempt.cancel()
	o.attempt = nil

	if out.Err == nil && (out.Response == nil || out.Response.GeneratedImage == "") {
		out.Err = pkgerrors.MalformedPayload("response has no generated_image field", nil)
	}

	o.session.mu.Lock()
	defer o.session.mu.Unlock()
	o.session.generating = false

	if out.Err != nil {
		o.log.Error("generation failed",
			"attempt", out.AttemptID,
			"file", out.Upload.Name,
			"kind", pkgerrors.GetKind(out.Err).String(),
			"error", out.Err)
		o.session.current = nil
		o.session.failure = &Failure{Err: out.Err, SourceName: out.Upload.Name, At: o.now()}
		return Failed
	}

	result := Result{
		ID:           uuid.New(),
		OriginalRef:  o.refs.Create(out.Upload.Data, out.Upload.MediaType),
		GeneratedRef: out.Response.GeneratedImage,
		Timestamp:    o.now().UTC(),
		SourceName:   out.Upload.Name,
	}

	o.session.current = &result
	o.session.history = append([]Result{result}, o.session.history...)
	o.session.lastResponse = out.Response.Raw

	o.log.Info("generation succeeded", "attempt", out.AttemptID, "result", result.ID, "history", len(o.session.history))
	return Succeeded
}

// Submit runs a whole attempt synchronously.
func (o *Orchestrator) Submit(ctx context.Context, up generation.Upload) (Transition, error) {
	attempt, err := o.Begin(ctx, up)
	if err != nil {
		return Discarded, err
	}
	return o.Finish(attempt.Run()), nil
}

// Cancel aborts the outstanding attempt. Its outcome still arrives through
// Finish, as a canceled failure.
func (o *Orchestrator) Cancel() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.attempt == nil {
		return false
	}
	o.log.Info("canceling generation", "attempt", o.attempt.id)
	o.attempt.cancel()
	return true
}

// Close tears the orchestrator down. The outstanding attempt is canceled,
// the session returns to Idle and every later outcome is discarded.
func (o *Orchestrator) Close() {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.closed {
		return
	}
	o.closed = true
	if o.attempt != nil {
		o.log.Info("closing with generation in flight", "attempt", o.attempt.id)
		o.attempt.cancel()
		o.attempt = nil
	}

	o.session.mu.Lock()
	o.session.generating = false
	o.session.mu.Unlock()
}

// ToggleGallery flips between the Generator and Gallery views.
func (o *Orchestrator) ToggleGallery() ViewMode {
	o.session.mu.Lock()
	defer o.session.mu.Unlock()
	if o.session.view == ViewGallery {
		o.session.view = ViewGenerator
	} else {
		o.session.view = ViewGallery
	}
	return o.session.view
}

// ShowGenerator switches back to the Generator view.
func (o *Orchestrator) ShowGenerator() {
	o.session.mu.Lock()
	defer o.session.mu.Unlock()
	o.session.view = ViewGenerator
}

// ToggleDarkMode flips the presentation flag. No data changes.
func (o *Orchestrator) ToggleDarkMode() bool {
	o.session.mu.Lock()
	defer o.session.mu.Unlock()
	o.session.dark = !o.session.dark
	return o.session.dark
}

// DismissFailure clears the failure notice.
func (o *Orchestrator) DismissFailure() {
	o.session.mu.Lock()
	defer o.session.mu.Unlock()
	o.session.failure = nil
}
