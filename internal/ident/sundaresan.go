package ident

import "github.com/luizn22/auto-control-tools/internal/plant"

// SundaresanKrishnaswamy is the two-point percentile method over the
// 35.3% and 85.3% crossings:
//
//	tau   = 0.67*(t2 - t1)
//	theta = 1.3*t1 - 0.29*t2
type SundaresanKrishnaswamy struct {
	Options
}

func NewSundaresanKrishnaswamy() *SundaresanKrishnaswamy {
	return &SundaresanKrishnaswamy{DefaultOptions()}
}

func (s *SundaresanKrishnaswamy) Name() string { return "sundaresan_krishnaswamy" }

func (s *SundaresanKrishnaswamy) InputLayout() []string { return standardLayout }

func (s *SundaresanKrishnaswamy) Identify(samples []plant.Sample, stepSize float64) (*plant.FirstOrder, error) {
	opts := s.Options.withDefaults()
	r, err := analyze(samples, stepSize, opts.SettleBand)
	if err != nil {
		return nil, err
	}

	t1, err := r.crossTime(0.353)
	if err != nil {
		return nil, err
	}
	t2, err := r.crossTime(0.853)
	if err != nil {
		return nil, err
	}

	k := r.gain(stepSize)
	tau := 0.67 * (t2 - t1)
	theta := 1.3*t1 - 0.29*t2

	return finish(k, tau, theta, opts, samples, stepSize)
}
