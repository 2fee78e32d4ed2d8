package tune

import (
	"github.com/luizn22/auto-control-tools/internal/pid"
	"github.com/luizn22/auto-control-tools/internal/plant"
)

// znRule holds the Ziegler-Nichols open-loop (reaction curve) tuning
// formulas, one coefficient set per structure.
var znRule = Rule{
	P: func(k, tau, theta float64) Gains {
		return Gains{Kp: (1 / k) * (tau / theta)}
	},
	PI: func(k, tau, theta float64) Gains {
		return Gains{
			Kp: 0.9 * (1 / k) * (tau / theta),
			Ki: 1 / (theta / 0.3),
		}
	},
	PID: func(k, tau, theta float64) Gains {
		return Gains{
			Kp: 1.2 * (1 / k) * (tau / theta),
			Ki: 1 / (2 * theta),
			Kd: 1 / (0.5 * theta),
		}
	},
}

// ZieglerNichols tunes a first-order model with the classic open-loop
// rules. The formulas divide by the dead time, so theta must be
// positive.
type ZieglerNichols struct{}

func NewZieglerNichols() *ZieglerNichols { return &ZieglerNichols{} }

func (z *ZieglerNichols) Name() string { return "ziegler_nichols" }

func (z *ZieglerNichols) Structures() []Structure { return znRule.structures() }

func (z *ZieglerNichols) Approximate(p plant.Plant, structure Structure) (*pid.Controller, error) {
	return approximate(znRule, p, structure, true)
}
