// Package engine provides the core primitives for real-time interactive
// simulations.
//
// The package defines the contract shared by every model family:
//
//   - [Model]: a steppable simulation (continuous field/particle systems or
//     discrete grid automata)
//   - [Event]: resolved interaction events delivered to a model
//   - [Clock]: fixed-timestep accumulator decoupling wall-clock frame
//     delivery from the simulation tick rate
//   - [Engine]: drives a Model from per-frame wall deltas and produces one
//     [Snapshot] per tick
//
// # Determinism
//
// All stepping is synchronous and single-threaded. For a given initial state
// and total elapsed simulated time, results do not depend on how that time
// was delivered across Tick calls.
//
// # Thread Safety
//
// Engine instances are NOT thread-safe. All calls must come from the host's
// frame callback goroutine.
package engine
