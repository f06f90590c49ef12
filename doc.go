// Package choreo plays timed UI choreographies: scripted sequences of waits,
// tweens, typewriter reveals, scrolls and discrete state changes that drive a
// view model, the way a product walkthrough animates a mock browser.
//
// # Core Concepts
//
// The programming model is intentionally small:
//
//  1. ViewModel
//  2. Step
//  3. Director
//  4. Scene
//  5. Player
//
// # ViewModel
//
// A ViewModel is a flat bag of named fields (bool, number, text, Vec) shared
// between the director, which writes it, and renderers, which read it from
// any goroutine. Watch and Subscribe notify on change.
//
// # Step
//
// A script is a tree of steps: leaves that suspend (Wait, Tween, TweenVec,
// Scroll, Typewrite, Spring, Hold), leaves that act immediately (Mutate,
// Halt) and groups (Sequence, Parallel, Repeat). Steps are plain values and
// may be reused across runs and directors.
//
// # Director
//
// A Director walks one script against a view model on a single goroutine,
// sleeping on an injected clock between deadlines and paints. Only one run
// is active at a time; a second Start fails with ErrAlreadyRunning. Cancel may be
// called repeatedly and from inside a step callback: once it returns no
// further callback of that run begins.
//
//	dir, err := choreo.New("greeting").
//	    Set("visible", true).
//	    Type("title", "Hello, Gopher", 40*time.Millisecond).
//	    Director(choreo.WithLogger(logger))
//	outcome, err := dir.Run(ctx, vm)
//
// Directors default to the wall clock. Tests and headless tools pass a
// simulated clock from pkg/clock with WithClock, which jumps virtual time
// and makes runs deterministic.
//
// # Scene
//
// Scenes (pkg/scene) describe a script and its initial fields in YAML, so new
// walkthroughs need no engine changes. Three demos are embedded.
//
// # Player
//
// Player mounts a scene onto a host: it resets the view model, starts the
// director in the background, restarts looping scenes and tears everything
// down on Unmount.
//
// Runs can be recorded with a JournalObserver into memory, SQLite or Redis,
// and replayed as text with Trace.
package choreo
