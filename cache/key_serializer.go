package cache

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// KeySeparator defines the delimiter used between cache key segments.
const KeySeparator = "::"

// defaultKeySerializer joins the method name and its arguments into a stable
// key. Strings and basic types serialize directly, slices recurse, maps sort
// their keys, and anything else falls back to JSON so key generation never
// fails outright.
type defaultKeySerializer struct{}

// NewDefaultKeySerializer creates a new instance of the default key serializer.
func NewDefaultKeySerializer() KeySerializer {
	return &defaultKeySerializer{}
}

// SerializeKey builds a cache key from method name and args.
func (s *defaultKeySerializer) SerializeKey(method string, args ...any) string {
	if len(args) == 0 {
		return method
	}

	parts := make([]string, 0, len(args)+1)
	parts = append(parts, method)
	for _, arg := range args {
		parts = append(parts, s.serializeValue(arg))
	}
	return strings.Join(parts, KeySeparator)
}

func (s *defaultKeySerializer) serializeValue(v any) string {
	switch val := v.(type) {
	case nil:
		return "nil"
	case string:
		return val
	case fmt.Stringer:
		return val.String()
	case bool, int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		return fmt.Sprintf("%v", val)
	case []string:
		return fmt.Sprintf("slice[%d]:{%s}", len(val), strings.Join(val, ","))
	case []any:
		parts := make([]string, len(val))
		for i, elem := range val {
			parts[i] = s.serializeValue(elem)
		}
		return fmt.Sprintf("slice[%d]:{%s}", len(val), strings.Join(parts, ","))
	case map[string]any:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		pairs := make([]string, len(keys))
		for i, k := range keys {
			pairs[i] = fmt.Sprintf("%s=%s", k, s.serializeValue(val[k]))
		}
		return fmt.Sprintf("map[%d]:{%s}", len(pairs), strings.Join(pairs, ","))
	}
	return s.jsonFallback(v)
}

// jsonFallback provides JSON serialization as a last resort.
func (s *defaultKeySerializer) jsonFallback(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("fallback:%T", v)
	}
	return fmt.Sprintf("json:%s", string(data))
}
