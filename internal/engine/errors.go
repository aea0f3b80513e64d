package engine

import "errors"

// Domain errors. All of them are configuration-validity errors surfaced at
// construction time; nothing in the per-tick path fails.
var (
	// ErrStepSize indicates a non-positive fixed step.
	ErrStepSize = errors.New("engine: step size must be positive")

	// ErrSoftening indicates a non-positive softening epsilon.
	ErrSoftening = errors.New("engine: softening epsilon must be positive")

	// ErrDamping indicates a per-step damping outside [0, 1).
	ErrDamping = errors.New("engine: damping must be in [0, 1)")

	// ErrThreshold indicates a non-positive topple threshold.
	ErrThreshold = errors.New("engine: topple threshold must be positive")

	// ErrGridSize indicates non-positive grid dimensions.
	ErrGridSize = errors.New("engine: grid dimensions must be positive")

	// ErrExtent indicates non-positive simulation bounds.
	ErrExtent = errors.New("engine: simulation extent must be positive")

	// ErrUnknownModel indicates a model name with no registry entry.
	ErrUnknownModel = errors.New("engine: unknown model")

	// ErrUnknownBoundary indicates an unrecognized boundary policy name.
	ErrUnknownBoundary = errors.New("engine: unknown boundary policy")
)
