// Package game bundles the simulation workloads the harness benchmarks.
// The harness itself treats a workload as opaque: advance one frame, and
// optionally present it. Any simulation satisfying Workload can be driven
// without the harness knowing its internals.
package game

import (
	"fmt"
	"io"
	"sort"
)

// Workload is a benchmarkable simulation. Step advances the simulation by
// exactly one fixed logical tick; the harness measures each Step call.
type Workload interface {
	Name() string
	Step() error
}

// Presenter is implemented by workloads that can visualize the current frame.
// Presentation only happens in headful validation runs and is never part of
// the measured region.
type Presenter interface {
	Present(w io.Writer) error
}

var registry = map[string]func() Workload{
	"breakout":  func() Workload { return NewBreakout() },
	"asteroids": func() Workload { return NewAsteroids() },
}

// New constructs a registered workload by name.
func New(name string) (Workload, error) {
	ctor, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("unknown workload %q (available: %v)", name, Names())
	}
	return ctor(), nil
}

// Names lists the registered workloads in stable order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
