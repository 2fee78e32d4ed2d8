package tune

import (
	"fmt"
	"sort"
)

var tuners = map[string]func() Tuner{
	"ziegler_nichols":   func() Tuner { return NewZieglerNichols() },
	"cohen_coon":        func() Tuner { return NewCohenCoon() },
	"first_order_table": func() Tuner { return NewFirstOrderTable() },
}

// Lookup returns a fresh instance of the named gain-approximation method.
func Lookup(name string) (Tuner, error) {
	fn, ok := tuners[name]
	if !ok {
		return nil, fmt.Errorf("unknown gain-approximation method: %s", name)
	}
	return fn(), nil
}

// Names lists the registered tuners, sorted.
func Names() []string {
	names := make([]string, 0, len(tuners))
	for name := range tuners {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
