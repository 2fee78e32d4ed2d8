package ident

import "github.com/luizn22/auto-control-tools/internal/plant"

// Nishikawa identifies the model from two areas of the response instead
// of point features, which makes it the most noise-tolerant of the five:
//
//	A0    = integral of (y_inf - y) dt over the whole record
//	t0    = A0 / y_inf
//	A1    = integral of y dt over [0, t0]
//	tau   = A1 / (0.368 * y_inf)
//	theta = t0 - tau
type Nishikawa struct {
	Options
}

func NewNishikawa() *Nishikawa {
	return &Nishikawa{DefaultOptions()}
}

func (n *Nishikawa) Name() string { return "nishikawa" }

func (n *Nishikawa) InputLayout() []string { return standardLayout }

func (n *Nishikawa) Identify(samples []plant.Sample, stepSize float64) (*plant.FirstOrder, error) {
	opts := n.Options.withDefaults()
	r, err := analyze(samples, stepSize, opts.SettleBand)
	if err != nil {
		return nil, err
	}

	end := r.t[len(r.t)-1]
	a0 := r.area(end, func(dev float64) float64 { return r.rise - dev })
	t0 := a0 / r.rise
	a1 := r.area(t0, func(dev float64) float64 { return dev })

	k := r.gain(stepSize)
	tau := a1 / (0.368 * r.rise)
	theta := t0 - tau

	return finish(k, tau, theta, opts, samples, stepSize)
}
