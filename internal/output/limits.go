package output

import (
	"fmt"
	"maps"
	"reflect"
	"slices"
)

// Limits bounds the size of values written by the JSON log format.
// A zero field disables that bound.
type Limits struct {
	MaxDepth    int
	MaxStrLen   int
	MaxMapItems int
	MaxListLen  int
	Placeholder string
}

// DefaultLimits returns the limits used by NewLogger.
func DefaultLimits() Limits {
	return Limits{
		MaxDepth:    5,
		MaxStrLen:   512,
		MaxMapItems: 64,
		MaxListLen:  64,
		Placeholder: "...",
	}
}

// Apply returns a copy of v with strings, maps and lists cut down to the
// configured limits. depth is the nesting level of v itself.
// Maps keep their first entries in key order; values that are neither
// scalars nor collections are rendered with fmt.Sprint.
func (lim Limits) Apply(v any, depth int) any {
	switch val := v.(type) {
	case nil, bool, int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64:
		return val
	case string:
		return lim.truncateString(val)
	case error:
		return lim.truncateString(val.Error())
	case fmt.Stringer:
		return lim.truncateString(val.String())
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Map:
		if lim.MaxDepth > 0 && depth >= lim.MaxDepth {
			return map[string]any{lim.Placeholder: lim.Placeholder}
		}
		entries := make(map[string]any, rv.Len())
		for _, k := range rv.MapKeys() {
			entries[fmt.Sprint(k.Interface())] = rv.MapIndex(k).Interface()
		}
		keys := slices.Sorted(maps.Keys(entries))
		truncated := lim.MaxMapItems > 0 && len(keys) > lim.MaxMapItems
		if truncated {
			keys = keys[:lim.MaxMapItems-1]
		}
		out := make(map[string]any, len(keys)+1)
		for _, k := range keys {
			out[k] = lim.Apply(entries[k], depth+1)
		}
		if truncated {
			out[lim.Placeholder] = lim.Placeholder
		}
		return out
	case reflect.Slice, reflect.Array:
		if lim.MaxDepth > 0 && depth >= lim.MaxDepth {
			return []any{lim.Placeholder}
		}
		n := rv.Len()
		truncated := lim.MaxListLen > 0 && n > lim.MaxListLen
		if truncated {
			n = lim.MaxListLen - 1
		}
		out := make([]any, 0, n+1)
		for i := 0; i < n; i++ {
			out = append(out, lim.Apply(rv.Index(i).Interface(), depth+1))
		}
		if truncated {
			out = append(out, lim.Placeholder)
		}
		return out
	case reflect.Pointer:
		if rv.IsNil() {
			return nil
		}
		return lim.Apply(rv.Elem().Interface(), depth)
	}

	return lim.truncateString(fmt.Sprint(v))
}

func (lim Limits) truncateString(s string) string {
	if lim.MaxStrLen <= 0 || len(s) <= lim.MaxStrLen {
		return s
	}
	cut := max(lim.MaxStrLen-len(lim.Placeholder), 0)
	return s[:cut] + lim.Placeholder
}
