package tune

import (
	"fmt"

	"github.com/luizn22/auto-control-tools/internal/pid"
	"github.com/luizn22/auto-control-tools/internal/plant"
)

// Row is one entry of a ratio-keyed tuning table: a theta/tau range and
// the formula set to apply inside it. The lower bound is always
// inclusive; the upper bound only when IncludeHi is set.
type Row struct {
	Lo, Hi    float64
	IncludeHi bool
	Rule      Rule
}

func (r Row) contains(ratio float64) bool {
	if ratio < r.Lo {
		return false
	}
	if r.IncludeHi {
		return ratio <= r.Hi
	}
	return ratio < r.Hi
}

// FirstOrderTable selects a formula set by the model's theta/tau ratio:
// the first row whose range contains the ratio wins. The table does not
// cover the whole positive line on purpose; a ratio outside every row is
// an out-of-range failure, not an extrapolation.
type FirstOrderTable struct {
	name string
	rows []Row
}

// NewFirstOrderTable builds the default table: the Ziegler-Nichols rules
// inside their published applicability window and the Cohen-Coon rules
// above it, up to the ratio where table tuning stops being meaningful.
func NewFirstOrderTable() *FirstOrderTable {
	return &FirstOrderTable{
		name: "first_order_table",
		rows: []Row{
			{Lo: 0.1, Hi: 1.0, Rule: znRule},
			{Lo: 1.0, Hi: 4.0, IncludeHi: true, Rule: ccRule},
		},
	}
}

// NewCustomTable builds a table from caller-supplied rows, in lookup
// order.
func NewCustomTable(name string, rows []Row) *FirstOrderTable {
	return &FirstOrderTable{name: name, rows: rows}
}

func (t *FirstOrderTable) Name() string { return t.name }

// Structures returns the union of the structures the rows support.
func (t *FirstOrderTable) Structures() []Structure {
	seen := map[Structure]bool{}
	for _, row := range t.rows {
		for _, s := range row.Rule.structures() {
			seen[s] = true
		}
	}
	out := make([]Structure, 0, len(seen))
	for _, s := range structureOrder {
		if seen[s] {
			out = append(out, s)
		}
	}
	return out
}

func (t *FirstOrderTable) Approximate(p plant.Plant, structure Structure) (*pid.Controller, error) {
	fo, err := firstOrder(p)
	if err != nil {
		return nil, err
	}
	ratio := fo.Ratio()
	for _, row := range t.rows {
		if !row.contains(ratio) {
			continue
		}
		f, ok := row.Rule[structure]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnsupportedStructure, structure)
		}
		g := f(fo.K(), fo.Tau(), fo.Theta())
		return pid.New(fo, g.Kp, g.Ki, g.Kd)
	}
	return nil, fmt.Errorf("%w: theta/tau = %g", ErrOutOfRange, ratio)
}
