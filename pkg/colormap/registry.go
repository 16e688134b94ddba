package colormap

import (
	"errors"
	"fmt"
	"sort"
)

// ErrUnknownPalette is returned when a palette name is not in the registry.
var ErrUnknownPalette = errors.New("unknown palette")

// registry is the closed set of named palettes. Membership is part of the
// public contract; adding a name is a versioned change.
var registry = map[string]Colormap{
	"viridis": Viridis,
	"plasma":  Plasma,
	"inferno": Inferno,
	"magma":   Magma,
	"cividis": Cividis,
	"gray":    Gray,
}

// Get resolves a palette name to its colormap.
func Get(name string) (Colormap, error) {
	cm, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPalette, name)
	}
	return cm, nil
}

// Names returns all registered palette names in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
