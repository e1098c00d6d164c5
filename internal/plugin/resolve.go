package plugin

import (
	"fmt"
	"reflect"
	"runtime"

	"git.home.luguber.info/inful/mdmeta/internal/foundation/errors"
)

// NotFoundError reports a plugin identifier missing from the registry.
type NotFoundError struct {
	Name string
}

func (e *NotFoundError) Error() string { return fmt.Sprintf("plugin %s is not found", e.Name) }

// Declaration is the record form of a plugin declaration.
type Declaration struct {
	// Use is a *Plugin, a Factory or a registry identifier.
	Use     any `yaml:"use"`
	Options any `yaml:"options"`
}

// Descriptor is a resolved plugin ready to be instantiated.
type Descriptor struct {
	Plugin    *Plugin
	Options   any
	Condition Condition
}

// Name returns the plugin name.
func (d Descriptor) Name() string {
	if d.Plugin == nil {
		return ""
	}
	return d.Plugin.Name
}

// Use invokes the factory with the descriptor options. A factory error or a
// nil transform is a configuration error.
func (d Descriptor) Use() (Transform, error) {
	t, err := d.Plugin.New(d.Options)
	if err != nil {
		if _, ok := errors.AsClassified(err); ok {
			return nil, err
		}
		return nil, errors.ConfigError("plugin factory failed").
			WithCause(err).
			WithContext("plugin", d.Name()).
			Build()
	}
	if t == nil {
		return nil, errors.ConfigError("invalid plugin: factory should return a transform").
			WithContext("plugin", d.Name()).
			Build()
	}
	return t, nil
}

// Resolve normalizes a declaration into a Descriptor. Accepted shapes, in
// priority order:
//
//	[]any{ref}, []any{ref, options}      ordered pair
//	map[string]any{"use": ref, ...}      record, also Declaration
//	ref                                  bare reference
//
// where ref is a *Plugin, a Factory or a string looked up in reg (nil selects
// DefaultRegistry). Nil options fall back to the plugin's DefaultOptions, then
// to an empty mapping. Resolve performs no I/O and does not call the factory.
func Resolve(reg *Registry, decl any) (Descriptor, error) {
	if reg == nil {
		reg = DefaultRegistry()
	}

	var ref, opts any
	switch v := decl.(type) {
	case []any:
		if len(v) == 0 || len(v) > 2 {
			return Descriptor{}, invalid(decl)
		}
		ref = v[0]
		if len(v) == 2 {
			opts = v[1]
		}
	case map[string]any:
		use, ok := v["use"]
		if !ok {
			return Descriptor{}, errors.ConfigError("invalid plugin declaration: missing use").Build()
		}
		ref, opts = use, v["options"]
	case Declaration:
		ref, opts = v.Use, v.Options
	case *Declaration:
		if v == nil {
			return Descriptor{}, invalid(decl)
		}
		ref, opts = v.Use, v.Options
	default:
		ref = decl
	}

	p, err := lookup(reg, ref)
	if err != nil {
		return Descriptor{}, err
	}

	if opts == nil {
		opts = p.DefaultOptions
	}
	if opts == nil {
		opts = map[string]any{}
	}
	cond := p.Condition
	if cond == nil {
		cond = Always
	}

	return Descriptor{Plugin: p, Options: opts, Condition: cond}, nil
}

func lookup(reg *Registry, ref any) (*Plugin, error) {
	switch v := ref.(type) {
	case *Plugin:
		if v == nil || v.New == nil {
			return nil, invalid(ref)
		}
		return v, nil
	case Factory:
		if v == nil {
			return nil, invalid(ref)
		}
		return Func(funcName(v), v), nil
	case func(any) (Transform, error):
		if v == nil {
			return nil, invalid(ref)
		}
		return Func(funcName(v), v), nil
	case string:
		p, err := reg.Get(v)
		if err != nil {
			return nil, errors.ConfigError("plugin not found").
				WithCause(err).
				WithContext("plugin", v).
				Build()
		}
		return p, nil
	default:
		return nil, invalid(ref)
	}
}

func invalid(v any) error {
	return errors.ConfigError("invalid plugin").
		WithContext("type", fmt.Sprintf("%T", v)).
		Build()
}

func funcName(f any) string {
	if fn := runtime.FuncForPC(reflect.ValueOf(f).Pointer()); fn != nil {
		return fn.Name()
	}
	return "anonymous"
}
