package plant

import "fmt"

// FirstOrder is a first-order-plus-dead-time model:
//
//	P(s) = K/(tau*s + 1) * e^(-theta*s)
//
// It is what the identification methods produce and what the table-based
// gain-approximation methods require.
type FirstOrder struct {
	Model
	k     float64
	tau   float64
	theta float64
}

// NewFirstOrder builds a first-order model from static gain, time
// constant and dead time. A non-positive tau or negative theta marks a
// failed identification, not a valid plant, and is rejected.
func NewFirstOrder(k, tau, theta float64, opts ...Option) (*FirstOrder, error) {
	if tau <= 0 {
		return nil, fmt.Errorf("%w: time constant %g <= 0", ErrInvalidModel, tau)
	}
	if theta < 0 {
		return nil, fmt.Errorf("%w: dead time %g < 0", ErrInvalidModel, theta)
	}
	m, err := New([]float64{k}, []float64{tau, 1}, append(opts, WithDelay(theta))...)
	if err != nil {
		return nil, err
	}
	return &FirstOrder{Model: *m, k: k, tau: tau, theta: theta}, nil
}

// K returns the static gain.
func (f *FirstOrder) K() float64 { return f.k }

// Tau returns the time constant.
func (f *FirstOrder) Tau() float64 { return f.tau }

// Theta returns the dead time.
func (f *FirstOrder) Theta() float64 { return f.theta }

// Ratio returns theta/tau, the controllability ratio the table-based
// tuning methods are keyed on.
func (f *FirstOrder) Ratio() float64 { return f.theta / f.tau }
