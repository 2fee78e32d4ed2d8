// Package pid composes a plant model with PID gains into the closed
// feedback loop. A Controller is an immutable value: the closed-loop
// transfer function is always derived from (plant, Kp, Ki, Kd), never
// stored and mutated separately.
package pid

import (
	"errors"
	"fmt"

	"github.com/luizn22/auto-control-tools/internal/lti"
	"github.com/luizn22/auto-control-tools/internal/plant"
)

// ErrInvalidGains rejects the degenerate all-zero controller. With no
// controller action the loop collapses to the open plant, which almost
// always signals a caller mistake rather than intent.
var ErrInvalidGains = errors.New("pid: invalid gains")

// Controller binds a plant model to PID gains. Zero Ki and/or Kd encode
// the P, PI and PD structures.
type Controller struct {
	plant      plant.Plant
	kp, ki, kd float64
	padeDegree int
}

// Option tweaks controller construction.
type Option func(*Controller)

// WithPadeDegree sets the Padé degree used when the closed loop has to
// rationalize the plant's dead time for simulation.
func WithPadeDegree(degree int) Option {
	return func(c *Controller) {
		c.padeDegree = degree
	}
}

// New builds a controller around the given plant.
func New(p plant.Plant, kp, ki, kd float64, opts ...Option) (*Controller, error) {
	if kp == 0 && ki == 0 && kd == 0 {
		return nil, fmt.Errorf("%w: Kp, Ki and Kd are all zero", ErrInvalidGains)
	}
	c := &Controller{plant: p, kp: kp, ki: ki, kd: kd, padeDegree: lti.DefaultPadeDegree}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func (c *Controller) Kp() float64 { return c.kp }
func (c *Controller) Ki() float64 { return c.ki }
func (c *Controller) Kd() float64 { return c.kd }

// Plant returns the model the controller was tuned for.
func (c *Controller) Plant() plant.Plant { return c.plant }

// PID returns the compensator transfer function
//
//	C(s) = Kp + Ki/s + Kd*s
//
// With Ki = 0 the common factor s is cancelled so no spurious pole at
// the origin enters the loop.
func (c *Controller) PID() lti.TransferFunction {
	if c.ki == 0 {
		if c.kd == 0 {
			return lti.TransferFunction{Num: []float64{c.kp}, Den: []float64{1}}
		}
		return lti.TransferFunction{Num: []float64{c.kd, c.kp}, Den: []float64{1}}
	}
	num := []float64{c.kd, c.kp, c.ki}
	if c.kd == 0 {
		num = num[1:]
	}
	return lti.TransferFunction{Num: num, Den: []float64{1, 0}}
}

// OpenLoop returns L(s) = C(s)*P(s) with the plant's dead time carried
// through exactly in the Delay field.
func (c *Controller) OpenLoop() lti.TransferFunction {
	return lti.Series(c.PID(), c.plant.TransferFunction())
}

// ClosedLoop recomputes T(s) = L(s)/(1 + L(s)). A dead time in the open
// loop is rationalized with a Padé approximant first, because the exact
// delayed loop has no finite rational form; the exact delay stays
// available on OpenLoop and on the plant itself.
func (c *Controller) ClosedLoop() (lti.TransferFunction, error) {
	l := c.OpenLoop().Rationalized(c.padeDegree)
	return lti.Feedback(l)
}

// StepInfo simulates the closed loop and extracts the standard
// step-response characteristics.
func (c *Controller) StepInfo(settleBand float64) (lti.Info, error) {
	t, err := c.ClosedLoop()
	if err != nil {
		return lti.Info{}, err
	}
	times, y, err := t.StepResponse(0, 0)
	if err != nil {
		return lti.Info{}, err
	}
	return lti.StepInfo(times, y, settleBand), nil
}
