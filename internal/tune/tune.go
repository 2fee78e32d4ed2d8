// Package tune implements the gain-approximation methods that derive
// PID parameters from a first-order plant model: the Ziegler-Nichols
// open-loop rules, the Cohen-Coon rules and a ratio-range table lookup
// combining both. Like the identification methods, tuners are stateless
// strategies safe for concurrent use.
package tune

import (
	"errors"
	"fmt"

	"github.com/luizn22/auto-control-tools/internal/pid"
	"github.com/luizn22/auto-control-tools/internal/plant"
)

var (
	// ErrUnsupportedStructure marks a P/PI/PID request the method has no
	// formulas for.
	ErrUnsupportedStructure = errors.New("tune: unsupported controller structure")
	// ErrModelNotSupported marks a model shape the method cannot tune,
	// e.g. anything but a first-order model with positive dead time.
	ErrModelNotSupported = errors.New("tune: model not supported")
	// ErrOutOfRange marks a theta/tau ratio no table row covers.
	ErrOutOfRange = errors.New("tune: theta/tau ratio out of table range")
)

// Structure selects the controller terms a tuner should produce.
type Structure string

const (
	P   Structure = "P"
	PI  Structure = "PI"
	PID Structure = "PID"
)

// structureOrder fixes the listing order of Structures().
var structureOrder = []Structure{P, PI, PID}

// Tuner is one gain-approximation strategy.
type Tuner interface {
	Name() string
	// Approximate derives a controller for the requested structure.
	Approximate(p plant.Plant, structure Structure) (*pid.Controller, error)
	// Structures lists the structures the method defines formulas for.
	Structures() []Structure
}

// Gains is one evaluated formula row.
type Gains struct {
	Kp, Ki, Kd float64
}

// Rule maps each supported structure to its closed-form gain formula
// over (K, tau, theta).
type Rule map[Structure]func(k, tau, theta float64) Gains

func (r Rule) structures() []Structure {
	out := make([]Structure, 0, len(r))
	for _, s := range structureOrder {
		if _, ok := r[s]; ok {
			out = append(out, s)
		}
	}
	return out
}

// firstOrder asserts the model shape the table methods require.
func firstOrder(p plant.Plant) (*plant.FirstOrder, error) {
	fo, ok := p.(*plant.FirstOrder)
	if !ok {
		return nil, fmt.Errorf("%w: method requires a first-order model", ErrModelNotSupported)
	}
	return fo, nil
}

// approximate runs the shared checks and evaluates one rule.
func approximate(r Rule, p plant.Plant, structure Structure, needDelay bool) (*pid.Controller, error) {
	fo, err := firstOrder(p)
	if err != nil {
		return nil, err
	}
	if needDelay && fo.Theta() <= 0 {
		return nil, fmt.Errorf("%w: formulas divide by the dead time, theta must be > 0", ErrModelNotSupported)
	}
	f, ok := r[structure]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedStructure, structure)
	}
	g := f(fo.K(), fo.Tau(), fo.Theta())
	return pid.New(fo, g.Kp, g.Ki, g.Kd)
}
