package ident

import "github.com/luizn22/auto-control-tools/internal/plant"

// Hagglund combines the tangent construction with a percentile crossing:
// the dead time comes from the tangent's baseline intercept, the time
// constant from the span between that intercept and the 63.2% crossing.
type Hagglund struct {
	Options
}

func NewHagglund() *Hagglund {
	return &Hagglund{DefaultOptions()}
}

func (h *Hagglund) Name() string { return "hagglund" }

func (h *Hagglund) InputLayout() []string { return standardLayout }

func (h *Hagglund) Identify(samples []plant.Sample, stepSize float64) (*plant.FirstOrder, error) {
	opts := h.Options.withDefaults()
	r, err := analyze(samples, stepSize, opts.SettleBand)
	if err != nil {
		return nil, err
	}

	tMid, devMid, slope := r.maxSlope()
	t1 := tMid - devMid/slope
	t2, err := r.crossTime(0.632)
	if err != nil {
		return nil, err
	}

	k := r.gain(stepSize)
	tau := t2 - t1
	theta := t1

	return finish(k, tau, theta, opts, samples, stepSize)
}
