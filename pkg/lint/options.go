package lint

import (
	"fmt"
	"slices"

	"github.com/go-viper/mapstructure/v2"
)

// Options holds one rule's resolved option values.
type Options map[string]any

// Bool returns the bool option key, or def when unset or mistyped.
func (o Options) Bool(key string, def bool) bool {
	return GetOption(o, key, def)
}

// String returns the string option key, or def when unset or mistyped.
func (o Options) String(key string, def string) string {
	return GetOption(o, key, def)
}

// Int returns the int option key, or def when unset or mistyped.
func (o Options) Int(key string, def int) int {
	switch n := o[key].(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	default:
		return def
	}
}

// StringSlice returns the list option key, or def when unset or mistyped.
func (o Options) StringSlice(key string, def []string) []string {
	switch s := o[key].(type) {
	case []string:
		return s
	case []any:
		out := make([]string, 0, len(s))
		for _, item := range s {
			if str, ok := item.(string); ok {
				out = append(out, str)
			}
		}
		return out
	default:
		return def
	}
}

// GetOption extracts a typed option with a default value.
func GetOption[T any](opts map[string]any, key string, defaultVal T) T {
	if v, ok := opts[key].(T); ok {
		return v
	}
	return defaultVal
}

// normalizeOption coerces a raw configured value to the declared type.
// Values from environment variables and flags arrive as strings, so
// decoding is weak: "true" becomes true and "3" becomes 3.
func normalizeOption(def OptionDef, raw any) (any, error) {
	var (
		out any
		err error
	)
	switch def.Type {
	case OptionBool:
		var b bool
		err = mapstructure.WeakDecode(raw, &b)
		out = b
	case OptionInt:
		var n int
		err = mapstructure.WeakDecode(raw, &n)
		out = n
	case OptionList:
		var l []string
		err = mapstructure.WeakDecode(raw, &l)
		out = l
	default:
		var s string
		err = mapstructure.WeakDecode(raw, &s)
		if err == nil && len(def.Enum) > 0 && !slices.Contains(def.Enum, s) {
			err = fmt.Errorf("must be one of %v", def.Enum)
		}
		out = s
	}
	if err != nil {
		return nil, fmt.Errorf("%w: option %q: %v", ErrInvalidOption, def.Name, err)
	}
	return out, nil
}

// resolveOptions merges configured values over the rule's defaults.
func resolveOptions(rule RuleDef, configured map[string]any) (Options, error) {
	opts := make(Options, len(rule.Options))
	for _, def := range rule.Options {
		if def.Default != nil {
			opts[def.Name] = def.Default
		}
	}
	for key, raw := range configured {
		def, ok := rule.Option(key)
		if !ok {
			return nil, fmt.Errorf("%w: rule %s has no option %q", ErrInvalidOption, rule.ID, key)
		}
		v, err := normalizeOption(def, raw)
		if err != nil {
			return nil, fmt.Errorf("rule %s: %w", rule.ID, err)
		}
		opts[key] = v
	}
	return opts, nil
}
