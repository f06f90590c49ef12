package engine

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/petrijr/choreo/pkg/api"
	"github.com/petrijr/choreo/pkg/clock"
)

// ErrNilViewModel is returned by Start when no view model is supplied.
var ErrNilViewModel = errors.New("choreo: nil view model")

// errCancelled unwinds a walk once its token has been cancelled.
var errCancelled = errors.New("choreo: run cancelled")

// Config describes how to construct a director.
type Config struct {
	// Name labels runs for observers and journals.
	Name     string
	Clock    clock.Clock
	Observer api.Observer
	// NewRunID defaults to random UUIDs.
	NewRunID func() string
}

// director walks one immutable script. Each run compiles a fresh node tree
// and executes every callback on a single goroutine.
type director struct {
	script   api.Step
	name     string
	clock    clock.Clock
	observer api.Observer
	newRunID func() string

	mu      sync.Mutex
	running bool
	token   *api.Token
	cancel  context.CancelFunc
	done    chan struct{}
}

var _ api.Director = (*director)(nil)

// New validates script and returns a Director for it.
func New(script api.Step, cfg Config) (api.Director, error) {
	if script == nil {
		return nil, api.ErrNilScript
	}
	if err := validate(script, "0"); err != nil {
		return nil, err
	}

	d := &director{
		script:   script,
		name:     cfg.Name,
		clock:    cfg.Clock,
		observer: cfg.Observer,
		newRunID: cfg.NewRunID,
	}
	if d.clock == nil {
		d.clock = clock.Real(clock.DefaultFPS)
	}
	if d.clock.FrameInterval() <= 0 {
		d.clock = paced{Clock: d.clock, frame: clock.FrameInterval(clock.DefaultFPS)}
	}
	if d.observer == nil {
		d.observer = api.NoopObserver{}
	}
	if d.newRunID == nil {
		d.newRunID = uuid.NewString
	}
	return d, nil
}

func (d *director) Start(ctx context.Context, vm *api.ViewModel) (<-chan api.Result, error) {
	if vm == nil {
		return nil, ErrNilViewModel
	}

	d.mu.Lock()
	if d.running {
		d.mu.Unlock()
		return nil, api.ErrAlreadyRunning
	}
	runCtx, cancel := context.WithCancel(ctx)
	tok := api.NewToken()
	done := make(chan struct{})
	d.running, d.token, d.cancel, d.done = true, tok, cancel, done
	d.mu.Unlock()

	// The owner going away cancels the run just like Cancel does. An owner
	// that is already gone cancels before any step begins.
	if runCtx.Err() != nil {
		tok.Cancel()
	}
	stop := context.AfterFunc(runCtx, func() { tok.Cancel() })

	rt := &runtime{
		ctx:    runCtx,
		obsCtx: context.WithoutCancel(runCtx),
		vm:     vm,
		token:  tok,
		clock:  d.clock,
		obs:    d.observer,
		run: api.RunInfo{
			ID:        d.newRunID(),
			Script:    d.name,
			StartedAt: d.clock.Now(),
		},
	}
	root := compile(d.script, "0")

	results := make(chan api.Result, 1)
	d.observer.OnRunStart(rt.obsCtx, rt.run)

	go func() {
		defer close(done)

		err := d.execute(rt, root)
		res := d.finish(rt, err)

		stop()
		cancel()

		d.mu.Lock()
		d.running = false
		d.mu.Unlock()

		results <- res
	}()

	return results, nil
}

func (d *director) Run(ctx context.Context, vm *api.ViewModel) (api.Outcome, error) {
	ch, err := d.Start(ctx, vm)
	if err != nil {
		return "", err
	}
	res := <-ch
	return res.Outcome, res.Err
}

func (d *director) Cancel() {
	d.mu.Lock()
	tok, cancel := d.token, d.cancel
	d.mu.Unlock()

	if tok != nil {
		tok.Cancel()
	}
	if cancel != nil {
		cancel()
	}
}

func (d *director) Stop() {
	d.Cancel()

	d.mu.Lock()
	done := d.done
	d.mu.Unlock()

	if done != nil {
		<-done
	}
}

func (d *director) IsRunning() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.running
}

// execute drives root until it completes, fails or is cancelled.
func (d *director) execute(rt *runtime, root node) error {
	if rt.token.Cancelled() {
		return errCancelled
	}
	done, err := root.begin(rt, d.clock.Now())
	for err == nil && !done {
		if rt.token.Cancelled() {
			return errCancelled
		}
		if err = d.clock.Sleep(rt.ctx, d.nextWait(root)); err != nil {
			break
		}
		if rt.token.Cancelled() {
			return errCancelled
		}
		done, err = root.advance(rt, d.clock.Now())
	}
	return err
}

// nextWait is the time until the earliest deadline or paint root needs.
func (d *director) nextWait(root node) time.Duration {
	at, frame := root.wake()
	now := d.clock.Now()
	if frame {
		next := now.Add(d.clock.FrameInterval())
		if at.IsZero() || next.Before(at) {
			at = next
		}
	}
	if at.IsZero() {
		return clock.Forever
	}
	if w := at.Sub(now); w > 0 {
		return w
	}
	return 0
}

func (d *director) finish(rt *runtime, err error) api.Result {
	res := api.Result{RunID: rt.run.ID}

	switch {
	case err == nil:
		res.Outcome = api.OutcomeCompleted
		d.observer.OnRunCompleted(rt.obsCtx, rt.run)
	case api.IsStepError(err), errors.Is(err, clock.ErrStalled):
		rt.token.Cancel()
		res.Outcome, res.Err = api.OutcomeFailed, err
		d.observer.OnRunFailed(rt.obsCtx, rt.run, err)
	case errors.Is(err, errCancelled), errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		rt.token.Cancel()
		res.Outcome = api.OutcomeCancelled
		d.observer.OnRunCancelled(rt.obsCtx, rt.run)
	default:
		rt.token.Cancel()
		res.Outcome, res.Err = api.OutcomeFailed, err
		d.observer.OnRunFailed(rt.obsCtx, rt.run, err)
	}
	return res
}

// paced substitutes the default paint interval for clocks that report none.
type paced struct {
	clock.Clock
	frame time.Duration
}

func (p paced) FrameInterval() time.Duration { return p.frame }
