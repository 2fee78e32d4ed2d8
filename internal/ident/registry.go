package ident

import (
	"fmt"
	"sort"
)

var methods = map[string]func() Method{
	"ziegler_nichols":         func() Method { return NewZieglerNichols() },
	"hagglund":                func() Method { return NewHagglund() },
	"smith":                   func() Method { return NewSmith() },
	"sundaresan_krishnaswamy": func() Method { return NewSundaresanKrishnaswamy() },
	"nishikawa":               func() Method { return NewNishikawa() },
}

// Lookup returns a fresh instance of the named identification method.
func Lookup(name string) (Method, error) {
	fn, ok := methods[name]
	if !ok {
		return nil, fmt.Errorf("unknown identification method: %s", name)
	}
	return fn(), nil
}

// Names lists the registered methods, sorted.
func Names() []string {
	names := make([]string, 0, len(methods))
	for name := range methods {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
