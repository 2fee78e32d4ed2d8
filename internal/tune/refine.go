package tune

import (
	"fmt"
	"math"

	"github.com/luizn22/auto-control-tools/internal/pid"
)

// RefineConfig bounds the grid search around an approximated controller.
type RefineConfig struct {
	// Span is the relative half-width of the grid around each gain; a
	// span of 0.5 scans from half to one-and-a-half times the gain.
	Span float64
	// Steps is the number of grid points per gain dimension.
	Steps int
	// Dt and Duration bound each closed-loop simulation; zero values let
	// the toolbox pick them from the loop's slowest pole.
	Dt, Duration float64
}

// DefaultRefineConfig scans +-30% of each gain in five steps.
func DefaultRefineConfig() RefineConfig {
	return RefineConfig{Span: 0.3, Steps: 5}
}

// Refine grid-searches the neighborhood of a tuned controller and
// returns the gain combination with the smallest integral squared error
// of the closed-loop unit step response. Gains that are zero in the
// input controller stay zero, so the structure is preserved.
func Refine(c *pid.Controller, cfg RefineConfig) (*pid.Controller, error) {
	if cfg.Span <= 0 || cfg.Steps < 2 {
		return nil, fmt.Errorf("tune: refine needs a positive span and at least 2 steps")
	}

	grid := func(g float64) []float64 {
		if g == 0 {
			return []float64{0}
		}
		vals := make([]float64, cfg.Steps)
		lo := g * (1 - cfg.Span)
		step := 2 * cfg.Span * g / float64(cfg.Steps-1)
		for i := range vals {
			vals[i] = lo + float64(i)*step
		}
		return vals
	}

	best := c
	bestCost := math.Inf(1)
	if cost, err := stepCost(c, cfg); err == nil {
		bestCost = cost
	}

	for _, kp := range grid(c.Kp()) {
		for _, ki := range grid(c.Ki()) {
			for _, kd := range grid(c.Kd()) {
				cand, err := pid.New(c.Plant(), kp, ki, kd)
				if err != nil {
					continue
				}
				cost, err := stepCost(cand, cfg)
				if err != nil || math.IsNaN(cost) {
					continue
				}
				if cost < bestCost {
					bestCost = cost
					best = cand
				}
			}
		}
	}
	if math.IsInf(bestCost, 1) {
		return nil, fmt.Errorf("tune: refine found no simulatable gain combination")
	}
	return best, nil
}

// stepCost is the ISE of the closed-loop unit step response.
func stepCost(c *pid.Controller, cfg RefineConfig) (float64, error) {
	cl, err := c.ClosedLoop()
	if err != nil {
		return 0, err
	}
	times, y, err := cl.StepResponse(cfg.Dt, cfg.Duration)
	if err != nil {
		return 0, err
	}
	cost := 0.0
	for i := 1; i < len(y); i++ {
		e := 1 - y[i]
		cost += e * e * (times[i] - times[i-1])
	}
	return cost, nil
}
