package evolve

import (
	"context"
	"fmt"

	"github.com/san-kum/galaxsph/internal/body"
	"github.com/san-kum/galaxsph/internal/density"
	"github.com/san-kum/galaxsph/internal/force"
	"github.com/san-kum/galaxsph/internal/kernel"
)

const minChunk = 64

type Simulator struct {
	arena     *body.Arena
	par       *body.Params
	est       *density.Estimator
	comp      *force.Computer
	metrics   []Metric
	observers []Observer

	errbuf []error
	primed bool
}

// New builds a simulator over the arena with the cubic spline kernel.
func New(ar *body.Arena, par *body.Params) *Simulator {
	return &Simulator{
		arena:  ar,
		par:    par,
		est:    density.NewEstimator(),
		comp:   force.New(kernel.Cubic{}, par),
		errbuf: make([]error, ar.Len()),
	}
}

func (s *Simulator) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }

// Arena exposes the live particle store for observers and tests.
func (s *Simulator) Arena() *body.Arena { return s.arena }

// Estimator exposes the density estimator so callers can tune HEta before
// running.
func (s *Simulator) Estimator() *density.Estimator { return s.est }

// Run advances the system until TMax or until the context is canceled.
// Domain errors from the force core abort the run and propagate.
func (s *Simulator) Run(ctx context.Context, cfg Config) (*Result, error) {
	if err := validate(cfg); err != nil {
		return nil, err
	}

	steps := int(cfg.TMax / cfg.Dt)
	result := &Result{
		Times:   make([]float64, 0, steps+1),
		Metrics: make(map[string]float64),
		History: make(map[string][]float64),
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	t := 0.0
	if !s.primed {
		if err := s.derive(); err != nil {
			return result, &StepError{Step: 0, Time: t, Wrapped: err}
		}
		s.primed = true
	}
	s.record(result, 0, t, cfg)

	for step := 0; step < steps; step++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		if err := s.step(cfg.Dt); err != nil {
			result.Errors = append(result.Errors, err)
			return result, &StepError{Step: step, Time: t, Wrapped: err}
		}
		t += cfg.Dt
		result.StepsTaken++

		if cfg.ValidateState && !s.valid() {
			err := &StepError{Step: step, Time: t, Wrapped: ErrInvalidState}
			result.Errors = append(result.Errors, err)
			return result, err
		}

		s.record(result, step+1, t, cfg)
	}

	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
	return result, nil
}

// Advance performs a single timestep, for callers that drive the loop
// themselves (the live view). Derivatives are primed on first use.
func (s *Simulator) Advance(dt float64) error {
	if !s.primed {
		if err := s.derive(); err != nil {
			return err
		}
		s.primed = true
	}
	return s.step(dt)
}

// step performs one kick-drift-kick update. The force core runs once at
// the start of the run and once per step after the drift; the trailing
// kick of one step shares the derivative evaluation with the leading kick
// of the next.
func (s *Simulator) step(dt float64) error {
	ar := s.arena
	n := ar.Len()
	half := 0.5 * dt

	body.ParallelFor(n, minChunk, func(start, end int) {
		for i := start; i < end; i++ {
			p := ar.At(i)
			p.Vel = p.Vel.Add(p.Accel().Scale(half))
			p.Pos = p.Pos.Add(p.Vel.Scale(dt))
		}
	})

	if err := s.derive(); err != nil {
		return err
	}

	body.ParallelFor(n, minChunk, func(start, end int) {
		for i := start; i < end; i++ {
			p := ar.At(i)
			p.Vel = p.Vel.Add(p.Accel().Scale(half))
			p.U += p.DuTotal() * dt

			p.MGas -= p.DmStar * dt
			if p.MGas < 0 {
				p.MGas = 0
			}
		}
	})

	return nil
}

// derive runs the density barrier, the EOS pass, and the parallel force
// pass. Each particle's derivative fields are written exclusively by the
// goroutine that owns its chunk.
func (s *Simulator) derive() error {
	ar := s.arena
	n := ar.Len()

	s.est.Update(ar)

	for i := range s.errbuf {
		s.errbuf[i] = nil
	}
	body.ParallelFor(n, minChunk, func(start, end int) {
		for i := start; i < end; i++ {
			s.errbuf[i] = s.comp.UpdateEOS(ar.At(i))
		}
	})
	for _, err := range s.errbuf {
		if err != nil {
			return err
		}
	}

	body.ParallelFor(n, minChunk, func(start, end int) {
		for i := start; i < end; i++ {
			s.comp.Derive(ar, i)
		}
	})
	return nil
}

func (s *Simulator) record(result *Result, step int, t float64, cfg Config) {
	result.Times = append(result.Times, t)

	for _, m := range s.metrics {
		m.Observe(s.arena, t)
		result.History[m.Name()] = append(result.History[m.Name()], m.Value())
	}
	for _, o := range s.observers {
		o.OnStep(s.arena, step, t)
	}

	if cfg.SnapshotEvery > 0 && step%cfg.SnapshotEvery == 0 {
		result.Snapshots = append(result.Snapshots, TakeSnapshot(s.arena, step, t))
	}
}

func (s *Simulator) valid() bool {
	for i := 0; i < s.arena.Len(); i++ {
		p := s.arena.At(i)
		if !p.Pos.IsValid() || !p.Vel.IsValid() {
			return false
		}
	}
	return true
}

func validate(cfg Config) error {
	if cfg.Dt <= 0 {
		return fmt.Errorf("%w: dt must be positive, got %g", ErrBadConfig, cfg.Dt)
	}
	if cfg.TMax <= 0 {
		return fmt.Errorf("%w: duration must be positive, got %g", ErrBadConfig, cfg.TMax)
	}
	return nil
}
