// Package plant holds the immutable value objects of the library: the
// mathematical model of a plant and its first-order-plus-dead-time
// specialization. A model wraps a transfer function and, optionally, the
// measured step-response data it was identified from.
package plant

import (
	"errors"
	"fmt"

	"github.com/luizn22/auto-control-tools/internal/lti"
)

var ErrInvalidModel = errors.New("plant: invalid model")

// Sample is one measured (time, output) point of a step response.
type Sample struct {
	Time   float64
	Output float64
}

// Plant is what the gain-approximation and composition layers consume:
// read access to the transfer function and to any source measurements.
type Plant interface {
	TransferFunction() lti.TransferFunction
	SourceData() []Sample
	StepSize() float64
}

// Model is a plant model given by numerator/denominator polynomial
// coefficients (highest degree first) plus an optional dead time.
// It is immutable after construction.
type Model struct {
	tf       lti.TransferFunction
	samples  []Sample
	stepSize float64
}

// Option attaches optional metadata during construction.
type Option func(*Model)

// WithSourceData stores the measurements the model was derived from.
// Times must be strictly increasing; this is checked by New.
func WithSourceData(samples []Sample, stepSize float64) Option {
	return func(m *Model) {
		m.samples = append([]Sample(nil), samples...)
		m.stepSize = stepSize
	}
}

// WithDelay sets a dead time on the transfer function.
func WithDelay(delay float64) Option {
	return func(m *Model) {
		m.tf = m.tf.WithDelay(delay)
	}
}

// New builds a model from transfer-function coefficients.
func New(num, den []float64, opts ...Option) (*Model, error) {
	tf, err := lti.New(num, den)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidModel, err)
	}
	m := &Model{tf: tf, stepSize: 1}
	for _, opt := range opts {
		opt(m)
	}
	if m.tf.Delay < 0 {
		return nil, fmt.Errorf("%w: negative dead time %g", ErrInvalidModel, m.tf.Delay)
	}
	for i := 1; i < len(m.samples); i++ {
		if m.samples[i].Time <= m.samples[i-1].Time {
			return nil, fmt.Errorf("%w: source data timestamps not strictly increasing", ErrInvalidModel)
		}
	}
	return m, nil
}

// TransferFunction returns the model's transfer function, dead time
// included in the Delay field.
func (m *Model) TransferFunction() lti.TransferFunction {
	return m.tf
}

// Order returns the denominator degree.
func (m *Model) Order() int {
	return m.tf.Order()
}

// SourceData returns the measurements the model was built from, or nil.
func (m *Model) SourceData() []Sample {
	return m.samples
}

// StepSize returns the magnitude of the step input that produced the
// source data (1 when no data is attached).
func (m *Model) StepSize() float64 {
	return m.stepSize
}

// SimulationTime returns the duration covered by the source data, or 0.
func (m *Model) SimulationTime() float64 {
	if len(m.samples) == 0 {
		return 0
	}
	return m.samples[len(m.samples)-1].Time
}

// StepInfo simulates the model and extracts the standard step-response
// characteristics. The source-data duration bounds the simulation when
// measurements are attached.
func (m *Model) StepInfo(settleBand float64) (lti.Info, error) {
	times, y, err := m.tf.StepResponse(0, m.SimulationTime())
	if err != nil {
		return lti.Info{}, err
	}
	return lti.StepInfo(times, y, settleBand), nil
}
