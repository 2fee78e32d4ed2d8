package ident

import "github.com/luizn22/auto-control-tools/internal/plant"

// ZieglerNichols is the classic reaction-curve method: the tangent at
// the point of steepest ascent is extrapolated back to the pre-step
// baseline (giving the dead time) and forward to the steady-state value
// (giving the time constant).
type ZieglerNichols struct {
	Options
}

func NewZieglerNichols() *ZieglerNichols {
	return &ZieglerNichols{DefaultOptions()}
}

func (z *ZieglerNichols) Name() string { return "ziegler_nichols" }

func (z *ZieglerNichols) InputLayout() []string { return standardLayout }

func (z *ZieglerNichols) Identify(samples []plant.Sample, stepSize float64) (*plant.FirstOrder, error) {
	opts := z.Options.withDefaults()
	r, err := analyze(samples, stepSize, opts.SettleBand)
	if err != nil {
		return nil, err
	}

	tMid, devMid, slope := r.maxSlope()
	t1 := tMid - devMid/slope          // tangent meets the baseline
	t3 := tMid + (r.rise-devMid)/slope // tangent meets the steady state

	k := r.gain(stepSize)
	tau := t3 - t1
	theta := t1

	return finish(k, tau, theta, opts, samples, stepSize)
}
