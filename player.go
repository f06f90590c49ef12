package choreo

import (
	"context"
	"errors"
	"sync"

	"github.com/petrijr/choreo/pkg/scene"
)

// ErrAlreadyMounted is returned by Mount while the player is mounted.
var ErrAlreadyMounted = errors.New("choreo: player already mounted")

// Player binds a scene to a host surface: Mount starts it in the background
// against a freshly reset view model and Unmount tears it down.
//
// Typical usage:
//
//	sc, _ := scene.Builtin("ai-search")
//	p, err := choreo.NewPlayer(sc, choreo.WithLogger(logger))
//	_ = p.Mount(ctx)
//	render(p.ViewModel)
//	...
//	p.Unmount()
type Player struct {
	// Director walks the scene's script.
	Director Director

	// ViewModel is shared with renderers for the lifetime of the player.
	ViewModel *ViewModel

	scene *scene.Scene

	mu      sync.Mutex
	cancel  context.CancelFunc
	done    chan struct{}
	last    Result
	mounted bool
}

// NewPlayer compiles sc and prepares a director for it.
func NewPlayer(sc *scene.Scene, opts ...Option) (*Player, error) {
	script, err := sc.Script()
	if err != nil {
		return nil, err
	}
	dir, err := NewDirector(script, append([]Option{WithName(sc.Name)}, opts...)...)
	if err != nil {
		return nil, err
	}
	return &Player{
		Director:  dir,
		ViewModel: sc.NewViewModel(),
		scene:     sc,
	}, nil
}

// Mount resets the view model and starts the scene. Looping scenes restart
// after every completed run until Unmount or ctx ends. Mount fails with
// ErrAlreadyMounted if called twice without Unmount, and with ctx.Err()
// without touching the view model if ctx has already ended.
func (p *Player) Mount(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.mounted {
		return ErrAlreadyMounted
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	p.scene.Reset(p.ViewModel)
	results, err := p.Director.Start(ctx, p.ViewModel)
	if err != nil {
		cancel()
		return err
	}

	done := make(chan struct{})
	p.cancel, p.done, p.mounted = cancel, done, true

	go func() {
		defer close(done)

		for {
			res := <-results
			p.mu.Lock()
			p.last = res
			p.mu.Unlock()

			if !p.scene.Loop || res.Outcome != OutcomeCompleted || ctx.Err() != nil {
				return
			}

			if ctx.Err() != nil {
				return
			}
			p.scene.Reset(p.ViewModel)
			if results, err = p.Director.Start(ctx, p.ViewModel); err != nil {
				p.mu.Lock()
				p.last = Result{Outcome: OutcomeFailed, Err: err}
				p.mu.Unlock()
				return
			}
		}
	}()

	return nil
}

// Unmount cancels the scene and waits for the director to unwind. It is a
// no-op when the player is not mounted.
func (p *Player) Unmount() {
	p.mu.Lock()
	if !p.mounted {
		p.mu.Unlock()
		return
	}
	cancel, done := p.cancel, p.done
	p.mounted = false
	p.cancel = nil
	p.mu.Unlock()

	cancel()
	p.Director.Stop()
	<-done
}

// Done is closed once the current mount stops playing, either because the
// scene ended or because it was unmounted. It is nil before the first Mount.
func (p *Player) Done() <-chan struct{} {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.done
}

// Result is the outcome of the most recent run.
func (p *Player) Result() Result {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.last
}

// Scene returns the scene the player was built from.
func (p *Player) Scene() *scene.Scene {
	return p.scene
}
