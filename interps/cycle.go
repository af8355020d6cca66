package interps

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

var ErrCycle = errors.New("reference cycle")

type CycleError struct {
	Keys []string
}

func (c *CycleError) Error() string {
	return fmt.Sprintf("%s: %s", ErrCycle, strings.Join(c.Keys, ", "))
}

func (c *CycleError) Is(target error) bool {
	return target == ErrCycle
}

// dependencies returns, per key index, the sorted indexes of defined keys its
// value references. References are found with the matcher that substitutes them.
func (r Resolver) dependencies(values Table, keys []string) [][]int {
	find := r.finder()
	index := make(map[string]int, len(keys))
	needles := make(map[string]string, len(keys))
	for i, key := range keys {
		wrapped := r.Operator.Apply(key)
		index[wrapped] = i
		needles[wrapped] = key
	}
	ret := make([][]int, len(keys))
	for i, key := range keys {
		var deps []int
		for _, match := range find(values[key], needles) {
			if j, ok := index[match.Key]; ok {
				deps = append(deps, j)
			}
		}
		slices.Sort(deps)
		ret[i] = slices.Compact(deps)
	}
	return ret
}

// cycles returns the sorted keys that are part of a dependency cycle.
func (r Resolver) cycles(values Table, keys []string) (ret []string) {
	deps := r.dependencies(values, keys)

	// Tarjan's strongly connected components
	const unvisited = -1
	index := make([]int, len(keys))
	low := make([]int, len(keys))
	onStack := make([]bool, len(keys))
	for i := range index {
		index[i] = unvisited
	}
	var stack []int
	counter := 0

	var visit func(v int)
	visit = func(v int) {
		index[v] = counter
		low[v] = counter
		counter++
		stack = append(stack, v)
		onStack[v] = true

		for _, w := range deps[v] {
			if index[w] == unvisited {
				visit(w)
				low[v] = min(low[v], low[w])
			} else if onStack[w] {
				low[v] = min(low[v], index[w])
			}
		}

		if low[v] != index[v] {
			return
		}
		var component []int
		for {
			w := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			onStack[w] = false
			component = append(component, w)
			if w == v {
				break
			}
		}
		if len(component) > 1 || slices.Contains(deps[v], v) {
			for _, w := range component {
				ret = append(ret, keys[w])
			}
		}
	}

	for v := range keys {
		if index[v] == unvisited {
			visit(v)
		}
	}

	slices.Sort(ret)
	return
}
