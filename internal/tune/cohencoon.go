package tune

import (
	"github.com/luizn22/auto-control-tools/internal/pid"
	"github.com/luizn22/auto-control-tools/internal/plant"
)

// ccRule holds the Cohen-Coon correction-ratio formulas. Compared to
// Ziegler-Nichols they stay usable at larger theta/tau ratios.
var ccRule = Rule{
	P: func(k, tau, theta float64) Gains {
		return Gains{Kp: (1 / k) * (tau / theta) * (1 + theta/(3*tau))}
	},
	PI: func(k, tau, theta float64) Gains {
		return Gains{
			Kp: (1 / k) * (tau / theta) * (0.9 + theta/(12*tau)),
			Ki: (theta * (30 + 3*(theta/tau))) / (9 + 20*(theta/tau)),
		}
	},
	PID: func(k, tau, theta float64) Gains {
		return Gains{
			Kp: (1 / k) * (tau / theta) * ((16*tau + 3*theta) / (12 * tau)),
			Ki: (theta * (32 + 6*(theta/tau))) / (13 + 8*(theta/tau)),
			Kd: (4 * theta) / (11 + 2*(theta/tau)),
		}
	},
}

// CohenCoon tunes a first-order model with the Cohen-Coon rules. Theta
// must be positive.
type CohenCoon struct{}

func NewCohenCoon() *CohenCoon { return &CohenCoon{} }

func (c *CohenCoon) Name() string { return "cohen_coon" }

func (c *CohenCoon) Structures() []Structure { return ccRule.structures() }

func (c *CohenCoon) Approximate(p plant.Plant, structure Structure) (*pid.Controller, error) {
	return approximate(ccRule, p, structure, true)
}
