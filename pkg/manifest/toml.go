package manifest

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/zclconf/go-cty/cty"
)

// ParseTOML decodes a TOML manifest. Keys the manifest does not define are rejected.
func ParseTOML(src []byte) (*Manifest, error) {
	var m Manifest
	md, err := toml.Decode(string(src), &m)
	if err != nil {
		return nil, fmt.Errorf("failed to parse TOML manifest: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return nil, fmt.Errorf("failed to decode TOML manifest: unknown keys %s", strings.Join(keys, ", "))
	}
	if err := convertTOMLDefaults(m.Options, m.Arguments, m.Commands); err != nil {
		return nil, fmt.Errorf("failed to decode TOML manifest: %w", err)
	}
	return &m, nil
}

func convertTOMLDefaults(opts []*Option, args []*Argument, cmds []*Command) error {
	for _, o := range opts {
		v, err := toCty(o.RawDefault)
		if err != nil {
			return fmt.Errorf("option %q: %w", o.Name, err)
		}
		o.Default = v
	}
	for _, a := range args {
		v, err := toCty(a.RawDefault)
		if err != nil {
			return fmt.Errorf("argument %q: %w", a.Name, err)
		}
		a.Default = v
	}
	for _, c := range cmds {
		if err := convertTOMLDefaults(c.Options, c.Arguments, c.Commands); err != nil {
			return fmt.Errorf("command %q: %w", c.Name, err)
		}
	}
	return nil
}

// toCty converts a decoded TOML value into the cty value HCL would have produced for the same
// literal. A nil raw value yields nil.
func toCty(raw any) (*cty.Value, error) {
	if raw == nil {
		return nil, nil
	}
	v, err := ctyValue(raw)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func ctyValue(raw any) (cty.Value, error) {
	switch v := raw.(type) {
	case string:
		return cty.StringVal(v), nil
	case int64:
		return cty.NumberIntVal(v), nil
	case float64:
		return cty.NumberFloatVal(v), nil
	case bool:
		return cty.BoolVal(v), nil
	case []any:
		if len(v) == 0 {
			return cty.EmptyTupleVal, nil
		}
		elems := make([]cty.Value, 0, len(v))
		for _, e := range v {
			ev, err := ctyValue(e)
			if err != nil {
				return cty.NilVal, err
			}
			elems = append(elems, ev)
		}
		return cty.TupleVal(elems), nil
	default:
		return cty.NilVal, fmt.Errorf("unsupported default of type %T", raw)
	}
}
