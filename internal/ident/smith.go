package ident

import "github.com/luizn22/auto-control-tools/internal/plant"

// Smith is the two-point percentile method over the 28.3% and 63.2%
// crossings:
//
//	tau   = 1.5*(t2 - t1)
//	theta = t2 - tau
type Smith struct {
	Options
}

func NewSmith() *Smith {
	return &Smith{DefaultOptions()}
}

func (s *Smith) Name() string { return "smith" }

func (s *Smith) InputLayout() []string { return standardLayout }

func (s *Smith) Identify(samples []plant.Sample, stepSize float64) (*plant.FirstOrder, error) {
	opts := s.Options.withDefaults()
	r, err := analyze(samples, stepSize, opts.SettleBand)
	if err != nil {
		return nil, err
	}

	t1, err := r.crossTime(0.283)
	if err != nil {
		return nil, err
	}
	t2, err := r.crossTime(0.632)
	if err != nil {
		return nil, err
	}

	k := r.gain(stepSize)
	tau := 1.5 * (t2 - t1)
	theta := t2 - tau

	return finish(k, tau, theta, opts, samples, stepSize)
}
