// Package sim runs the rover headlessly for a fixed duration.
package sim

import (
	"context"
	"fmt"

	"github.com/san-kum/vstick/internal/dynamo"
)

type Config struct {
	Dt       float64
	Duration float64
}

type Result struct {
	States     []dynamo.State
	Controls   []dynamo.Control
	Times      []float64
	Metrics    map[string]float64
	StepsTaken int
}

type Simulator struct {
	dyn        dynamo.System
	integrator dynamo.Integrator
	controller dynamo.Controller
	metrics    []dynamo.Metric
}

func New(dyn dynamo.System, integrator dynamo.Integrator, controller dynamo.Controller) *Simulator {
	return &Simulator{
		dyn:        dyn,
		integrator: integrator,
		controller: controller,
		metrics:    make([]dynamo.Metric, 0),
	}
}

func (s *Simulator) AddMetric(m dynamo.Metric) { s.metrics = append(s.metrics, m) }

// Run integrates from x0 until cfg.Duration. A failed step ends the run and
// returns the trajectory so far along with the *dynamo.StepError.
func (s *Simulator) Run(ctx context.Context, x0 dynamo.State, cfg Config) (*Result, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	steps := int(cfg.Duration/cfg.Dt + 0.5)
	result := &Result{
		States:   make([]dynamo.State, 0, steps+1),
		Controls: make([]dynamo.Control, 0, steps),
		Times:    make([]float64, 0, steps+1),
		Metrics:  make(map[string]float64),
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	x := x0.Clone()
	t := 0.0
	result.States = append(result.States, x.Clone())
	result.Times = append(result.Times, t)

	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		next, u, err := dynamo.Advance(s.dyn, s.integrator, s.controller, x, t, cfg.Dt)
		if err != nil {
			return result, err
		}
		for _, m := range s.metrics {
			m.Observe(x, u, t)
		}

		x = next
		t += cfg.Dt
		result.StepsTaken++
		result.States = append(result.States, x.Clone())
		result.Controls = append(result.Controls, u)
		result.Times = append(result.Times, t)
	}

	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
	return result, nil
}

func validateConfig(cfg Config) error {
	if cfg.Dt <= 0 {
		return fmt.Errorf("dt must be positive, got %f", cfg.Dt)
	}
	if cfg.Duration <= 0 {
		return fmt.Errorf("duration must be positive, got %f", cfg.Duration)
	}
	return nil
}
