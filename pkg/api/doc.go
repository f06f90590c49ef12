// Package api contains the core building blocks of the choreo timeline
// engine: the step tree, the cancellation token, the view model that steps
// write into, and the observer hooks used to watch a run.
//
// Most users interact with the higher-level choreo package, which re-exports
// the types from this package and adds a fluent builder and a host Player.
// The api package is intended for custom hosts, integrations and contributors
// extending the engine itself.
//
// # Steps
//
// A script is a tree of steps. Leaves suspend for a while and emit values
// (Wait, Tween, TweenVec, Typewrite, Scroll, Spring, Hold) or act instantly
// (Mutate, Halt). Groups compose them:
//
//   - Sequence runs children one after another. A child never emits before
//     its predecessor has emitted its final value.
//   - Parallel starts every child in the same scheduler turn and completes
//     when the slowest one completes.
//   - Repeat replays its body a fixed number of times, or until cancelled.
//
// Steps are plain data. Callbacks receive the run's *ViewModel, so the same
// script can be replayed against any view model.
//
// # Cancellation
//
// Each run owns one Token. Every callback is invoked through Token.Guard, so
// once Cancel has returned no further callback starts. Cancelling is
// idempotent and safe from any goroutine, including from inside a callback.
//
// # View model
//
// ViewModel is a flat bag of named bool, number, text and vector fields. The
// engine writes it from the run goroutine; renderers read it, Watch it or
// Subscribe to coalesced change notifications from other goroutines.
//
// # Observability
//
// Directors report run and step lifecycle events to an Observer. Logging and
// in-memory metrics implementations live here; a Prometheus implementation
// lives in pkg/metrics and a persistent run journal in the choreo package.
package api
