package config

import (
	"errors"
	"fmt"

	"github.com/dshills/buttongroup/internal/config/loader"
)

// Layout declares the groups and buttons to mount.
//
// TOML:
//
//	[[groups]]
//	name = "size"
//	value = "m"
//	on_value_change = "log"
//
//	[[groups.buttons]]
//	value = "s"
//	label = "Small"
type Layout struct {
	Groups []GroupSpec `toml:"groups" yaml:"groups"`
}

// GroupSpec declares one button group.
type GroupSpec struct {
	Name     string `toml:"name" yaml:"name"`
	Value    string `toml:"value" yaml:"value"`
	Disabled bool   `toml:"disabled" yaml:"disabled"`
	// OnValueChange names a registered action.
	OnValueChange string `toml:"on_value_change" yaml:"on_value_change"`
	// Script is Lua source defining on_value_change(value).
	Script  string       `toml:"script" yaml:"script"`
	Buttons []ButtonSpec `toml:"buttons" yaml:"buttons"`
}

// ButtonSpec declares one member button.
type ButtonSpec struct {
	Value    string `toml:"value" yaml:"value"`
	Label    string `toml:"label" yaml:"label"`
	Disabled bool   `toml:"disabled" yaml:"disabled"`
}

// LoadLayout reads a TOML or YAML layout file, chosen by extension.
func LoadLayout(path string) (*Layout, error) {
	return LoadLayoutFS(loader.DefaultFS(), path)
}

// LoadLayoutFS is LoadLayout on an explicit file system.
func LoadLayoutFS(fsys loader.FileSystem, path string) (*Layout, error) {
	if path == "" {
		return nil, ErrNoLayout
	}

	l, err := loader.ForPath(fsys, path)
	if err != nil {
		return nil, err
	}

	var layout Layout
	if err := l.Decode(path, &layout); err != nil {
		return nil, fmt.Errorf("loading layout: %w", err)
	}
	return &layout, nil
}

// Validate checks the layout. Groups may share a name; they then receive
// and broadcast together.
func (l *Layout) Validate() error {
	var errs []error

	for i, g := range l.Groups {
		prefix := fmt.Sprintf("groups[%d]", i)

		if g.OnValueChange != "" && g.Script != "" {
			errs = append(errs, &ValidationError{
				Path:    prefix,
				Message: "on_value_change and script are mutually exclusive",
				Value:   g.Name,
				Code:    ErrCodeConflict,
			})
		}

		seen := make(map[string]int, len(g.Buttons))
		for j, b := range g.Buttons {
			path := fmt.Sprintf("%s.buttons[%d].value", prefix, j)
			if b.Value == "" {
				errs = append(errs, &ValidationError{
					Path:    path,
					Message: "button value is required",
					Value:   b.Value,
					Code:    ErrCodeRequiredMissing,
				})
				continue
			}
			if first, dup := seen[b.Value]; dup {
				errs = append(errs, &ValidationError{
					Path:    path,
					Message: fmt.Sprintf("duplicates buttons[%d]", first),
					Value:   b.Value,
					Code:    ErrCodeDuplicate,
				})
				continue
			}
			seen[b.Value] = j
		}
	}

	return errors.Join(errs...)
}

// Find returns the groups declared with name.
func (l *Layout) Find(name string) []GroupSpec {
	var out []GroupSpec
	for _, g := range l.Groups {
		if g.Name == name {
			out = append(out, g)
		}
	}
	return out
}
