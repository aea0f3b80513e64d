// Package registry builds models by name from a validated configuration.
package registry

import (
	"fmt"
	"sort"

	"github.com/anand-ps/reverie/internal/config"
	"github.com/anand-ps/reverie/internal/engine"
	"github.com/anand-ps/reverie/internal/flow"
	"github.com/anand-ps/reverie/internal/gesture"
	"github.com/anand-ps/reverie/internal/grid"
)

// Registry maps model names to constructors. The three continuous entries
// share one implementation; they differ only in the field interpretation
// (wells-only gravity, mixed-sign landscape, time-warp phase).
type Registry struct {
	builders map[string]func(*config.Config) (engine.Model, error)
	families map[string]gesture.Family
	info     map[string]string
}

// New returns a registry with every built-in model.
func New() *Registry {
	r := &Registry{
		builders: make(map[string]func(*config.Config) (engine.Model, error)),
		families: make(map[string]gesture.Family),
		info:     make(map[string]string),
	}

	r.register("field", gesture.ContinuousFamily, "gravity wells and orbiting particles",
		func(cfg *config.Config) (engine.Model, error) {
			opts, err := flowOptions(cfg)
			if err != nil {
				return nil, err
			}
			opts.Beta = 0
			opts.Repel = false
			return flow.NewModel(opts)
		})

	r.register("landscape", gesture.ContinuousFamily, "signed potential hills and wells",
		func(cfg *config.Config) (engine.Model, error) {
			opts, err := flowOptions(cfg)
			if err != nil {
				return nil, err
			}
			opts.Beta = 0
			return flow.NewModel(opts)
		})

	r.register("timewarp", gesture.ContinuousFamily, "field-driven clock phase",
		func(cfg *config.Config) (engine.Model, error) {
			opts, err := flowOptions(cfg)
			if err != nil {
				return nil, err
			}
			if opts.Beta == 0 {
				opts.Beta = config.DefaultBeta
			}
			return flow.NewModel(opts)
		})

	r.register("life", gesture.LifeFamily, "B3/S23 neighbor automaton",
		func(cfg *config.Config) (engine.Model, error) {
			return grid.NewLife(cfg.Grid.Rows, cfg.Grid.Cols, cfg.Grid.Wrap, cfg.Grid.FadeStep)
		})

	r.register("sandpile", gesture.SandpileFamily, "abelian sandpile with avalanches",
		func(cfg *config.Config) (engine.Model, error) {
			mode := grid.FixedDrop
			if cfg.Grid.DropMode == "random" {
				mode = grid.RandomDrop
			}
			return grid.NewSandpile(cfg.Grid.Rows, cfg.Grid.Cols, cfg.Grid.Threshold,
				mode, cfg.Grid.DropRate, cfg.Grid.HistoryLen, cfg.Seed)
		})

	return r
}

func (r *Registry) register(name string, family gesture.Family, info string,
	build func(*config.Config) (engine.Model, error)) {
	r.builders[name] = build
	r.families[name] = family
	r.info[name] = info
}

// Build constructs the named model from cfg.
func (r *Registry) Build(name string, cfg *config.Config) (engine.Model, error) {
	build, ok := r.builders[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", engine.ErrUnknownModel, name)
	}
	return build(cfg)
}

// Family returns the gesture vocabulary for the named model.
func (r *Registry) Family(name string) (gesture.Family, error) {
	fam, ok := r.families[name]
	if !ok {
		return 0, fmt.Errorf("%w: %q", engine.ErrUnknownModel, name)
	}
	return fam, nil
}

// Info returns a one-line description of the named model.
func (r *Registry) Info(name string) string { return r.info[name] }

// List returns the registered model names, sorted.
func (r *Registry) List() []string {
	names := make([]string, 0, len(r.builders))
	for name := range r.builders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func flowOptions(cfg *config.Config) (flow.Options, error) {
	boundary, err := flow.ParseBoundary(cfg.Flow.Boundary)
	if err != nil {
		return flow.Options{}, err
	}
	return flow.Options{
		Width:          cfg.Width,
		Height:         cfg.Height,
		Epsilon:        cfg.Flow.Epsilon,
		AccelScale:     cfg.Flow.AccelScale,
		Damping:        cfg.Flow.Damping,
		Beta:           cfg.Flow.Beta,
		SourceStrength: cfg.Flow.SourceStrength,
		PickRadius:     cfg.Flow.PickRadius,
		LaunchGain:     cfg.Flow.LaunchGain,
		Restitution:    cfg.Flow.Restitution,
		Margin:         cfg.Flow.Margin,
		TrailLen:       cfg.Flow.TrailLen,
		Boundary:       boundary,
		Repel:          cfg.Flow.Repel,
	}, nil
}
