package defs

import (
	"fmt"
	"strconv"

	"github.com/reusee/vartext/interps"
)

// Flatten turns a tree of definitions into dot-delimited keys. List items
// are keyed by index, scalars are formatted with fmt.Sprint and null becomes
// the empty string.
func Flatten(tree map[string]any) interps.Table {
	ret := make(interps.Table)
	for key, value := range tree {
		flatten(ret, key, value)
	}
	return ret
}

func flatten(ret interps.Table, key string, value any) {
	switch value := value.(type) {

	case map[string]any:
		for k, v := range value {
			flatten(ret, join(key, k), v)
		}

	case map[any]any:
		for k, v := range value {
			flatten(ret, join(key, fmt.Sprint(k)), v)
		}

	case []any:
		for i, v := range value {
			flatten(ret, join(key, strconv.Itoa(i)), v)
		}

	case nil:
		ret[key] = ""

	case string:
		ret[key] = value

	default:
		ret[key] = fmt.Sprint(value)

	}
}

func join(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + "." + key
}
