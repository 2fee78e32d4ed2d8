// Package ident implements the step-response identification methods:
// Ziegler-Nichols, Hagglund, Smith, Sundaresan-Krishnaswamy and
// Nishikawa. Each method reduces measured (time, output) samples and the
// applied step magnitude to a first-order-plus-dead-time plant model.
//
// The methods are stateless strategies: every Identify call is a pure
// function of its arguments and may run concurrently with any other.
package ident

import (
	"errors"
	"fmt"
	"math"

	"github.com/luizn22/auto-control-tools/internal/plant"
)

var (
	// ErrInsufficientData marks sample sets too small or too malformed to
	// bracket the response features a method needs.
	ErrInsufficientData = errors.New("ident: insufficient data")
	// ErrIdentificationFailed marks data that yields no valid model:
	// no distinguishable steady state, tau <= 0 or a negative dead time.
	ErrIdentificationFailed = errors.New("ident: identification failed")
)

// minSamples is the smallest sample count any method accepts; fewer
// points cannot bracket a percentile pair.
const minSamples = 4

// Method is one identification strategy.
type Method interface {
	Name() string
	// Identify derives a first-order model from step-response samples and
	// the magnitude of the applied step.
	Identify(samples []plant.Sample, stepSize float64) (*plant.FirstOrder, error)
	// InputLayout lists the columns a filled-in data template must
	// contain. Consumed by the data-entry collaborator.
	InputLayout() []string
}

// standardLayout is shared by all five methods.
var standardLayout = []string{"time", "input", "output"}

// Options are the knobs every method shares.
type Options struct {
	// SettleBand is the relative band around the steady-state estimate
	// within which the trailing samples must stay.
	SettleBand float64
	// IgnoreDelayBelow snaps a derived dead time smaller than this to
	// zero; sampling jitter routinely produces tiny spurious delays.
	IgnoreDelayBelow float64
}

// DefaultOptions mirror the defaults of the reference implementation.
func DefaultOptions() Options {
	return Options{SettleBand: 0.02, IgnoreDelayBelow: 0.5}
}

func (o Options) withDefaults() Options {
	if o.SettleBand <= 0 {
		o.SettleBand = 0.02
	}
	return o
}

// response is the preprocessed view of a sample set every method works
// on: times shifted to start at zero and outputs as deviations from the
// pre-step baseline, sign-normalized so the curve rises.
type response struct {
	t    []float64 // shifted times, strictly increasing, t[0] = 0
	dev  []float64 // |output - baseline|, rising toward rise
	rise float64   // magnitude of the steady-state change
	sign float64   // +1 or -1, sign of the real change
}

// analyze validates the samples and estimates the steady state from a
// trailing window (a tenth of the data, at least three points). The
// window samples must all sit inside the settle band, otherwise the
// response has not reached a new steady state.
func analyze(samples []plant.Sample, stepSize float64, band float64) (*response, error) {
	if len(samples) < minSamples {
		return nil, fmt.Errorf("%w: got %d samples, need at least %d", ErrInsufficientData, len(samples), minSamples)
	}
	if stepSize == 0 {
		return nil, fmt.Errorf("%w: zero step size", ErrInsufficientData)
	}
	for i := 1; i < len(samples); i++ {
		if samples[i].Time <= samples[i-1].Time {
			return nil, fmt.Errorf("%w: timestamps not strictly increasing at index %d", ErrInsufficientData, i)
		}
	}

	n := len(samples)
	window := n / 10
	if window < 3 {
		window = 3
	}
	if window > n/2 {
		window = n / 2
	}

	mean := 0.0
	for _, s := range samples[n-window:] {
		mean += s.Output
	}
	mean /= float64(window)

	base := samples[0].Output
	rise := mean - base
	if rise == 0 {
		return nil, fmt.Errorf("%w: flat response, no steady-state change", ErrIdentificationFailed)
	}
	for _, s := range samples[n-window:] {
		if math.Abs(s.Output-mean) > band*math.Abs(rise) {
			return nil, fmt.Errorf("%w: response has not settled within the sampled horizon", ErrIdentificationFailed)
		}
	}

	sign := 1.0
	if rise < 0 {
		sign = -1
	}
	r := &response{
		t:    make([]float64, n),
		dev:  make([]float64, n),
		rise: math.Abs(rise),
		sign: sign,
	}
	t0 := samples[0].Time
	for i, s := range samples {
		r.t[i] = s.Time - t0
		r.dev[i] = sign * (s.Output - base)
	}
	return r, nil
}

// gain is the steady-state change over the step magnitude, sign restored.
func (r *response) gain(stepSize float64) float64 {
	return r.sign * r.rise / stepSize
}

// crossTime returns the first time the response reaches the given
// fraction of its total rise, linearly interpolated between the
// bracketing samples.
func (r *response) crossTime(frac float64) (float64, error) {
	level := frac * r.rise
	if r.dev[0] >= level {
		return r.t[0], nil
	}
	for i := 1; i < len(r.dev); i++ {
		if r.dev[i] >= level {
			dy := r.dev[i] - r.dev[i-1]
			if dy == 0 {
				return r.t[i], nil
			}
			return r.t[i-1] + (level-r.dev[i-1])/dy*(r.t[i]-r.t[i-1]), nil
		}
	}
	return 0, fmt.Errorf("%w: %.1f%% crossing not bracketed by the samples", ErrInsufficientData, 100*frac)
}

// maxSlope finds the steepest finite-difference slope between
// consecutive samples (ties broken by first occurrence) and returns the
// chord midpoint it is anchored at.
func (r *response) maxSlope() (tMid, devMid, slope float64) {
	for i := 1; i < len(r.dev); i++ {
		s := (r.dev[i] - r.dev[i-1]) / (r.t[i] - r.t[i-1])
		if math.Abs(s) > math.Abs(slope) {
			slope = s
			tMid = (r.t[i] + r.t[i-1]) / 2
			devMid = (r.dev[i] + r.dev[i-1]) / 2
		}
	}
	return tMid, devMid, slope
}

// area integrates f(dev) dt over [t[0], tEnd] by the trapezoid rule.
func (r *response) area(tEnd float64, f func(dev float64) float64) float64 {
	sum := 0.0
	for i := 1; i < len(r.t); i++ {
		if r.t[i] > tEnd {
			// partial last trapezoid up to tEnd
			dt := tEnd - r.t[i-1]
			if dt <= 0 {
				break
			}
			frac := dt / (r.t[i] - r.t[i-1])
			endDev := r.dev[i-1] + frac*(r.dev[i]-r.dev[i-1])
			sum += dt * (f(r.dev[i-1]) + f(endDev)) / 2
			break
		}
		sum += (r.t[i] - r.t[i-1]) * (f(r.dev[i-1]) + f(r.dev[i])) / 2
	}
	return sum
}

// finish applies the shared dead-time policy and builds the model.
// A dead time inside (-IgnoreDelayBelow, IgnoreDelayBelow) is snapped to
// zero; anything more negative is a failed identification, as is a
// non-positive time constant.
func finish(k, tau, theta float64, opts Options, samples []plant.Sample, stepSize float64) (*plant.FirstOrder, error) {
	if theta < -opts.IgnoreDelayBelow {
		return nil, fmt.Errorf("%w: derived dead time %g < 0", ErrIdentificationFailed, theta)
	}
	if theta < opts.IgnoreDelayBelow {
		theta = 0
	}
	if tau <= 0 {
		return nil, fmt.Errorf("%w: derived time constant %g <= 0", ErrIdentificationFailed, tau)
	}
	m, err := plant.NewFirstOrder(k, tau, theta, plant.WithSourceData(samples, stepSize))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIdentificationFailed, err)
	}
	return m, nil
}
