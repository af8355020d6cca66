package interps

import (
	"maps"
	"slices"

	"github.com/reusee/vartext/replaces"
	"github.com/reusee/vartext/sigils"
	"github.com/samber/lo"
)

const Theory = `
# Definition Resolution

A table maps keys to values; values may reference other keys wrapped by the
native sigil operator. Resolution produces a table without such references.

1. Cycles fail closed. Before substituting, a dependency graph is built from
   the raw values and its strongly connected components are computed. Edges
   are found by matching the wrapped defined keys literally, the same way
   substitution finds them, so any key the loaders produce takes part. Any
   component with more than one key, or a key referencing itself, aborts the
   whole resolution with a CycleError naming every participating key.
2. Substitution is a fixpoint iteration. Each pass rewrites every value using
   only the values of the previous pass, so the result does not depend on the
   order keys are visited or inserted. Passes stop when nothing changes, or
   fail with a CycleError after len(table)+1 passes (references that only
   appear after substitution can still loop).
3. A reference to an absent key is left verbatim, wrapped in its sigils, and
   reported as Dangling. Absent keys are only recognized by the operator's
   reference syntax, whose bodies contain no whitespace.
`

type Table map[string]string

type Dangling struct {
	Key     string
	Missing string
}

type Result struct {
	Values   Table
	Dangling []Dangling
	Passes   int
}

// Missing returns the sorted distinct keys referenced but not defined.
func (r Result) Missing() []string {
	ret := lo.Uniq(lo.Map(r.Dangling, func(d Dangling, _ int) string {
		return d.Missing
	}))
	slices.Sort(ret)
	return ret
}

type Resolver struct {
	Operator sigils.Operator
	// Replace defaults to replaces.Replace
	Replace replaces.Func
	// Find must report what Replace substitutes; defaults to replaces.Dispatcher.Find
	Find replaces.FindFunc
}

func (r Resolver) replacer() replaces.Func {
	if r.Replace != nil {
		return r.Replace
	}
	return func(text string, needles map[string]string) string {
		return replaces.Replace(text, needles)
	}
}

func (r Resolver) finder() replaces.FindFunc {
	if r.Find != nil {
		return r.Find
	}
	return replaces.Dispatcher{}.FindFunc()
}

func Resolve(operator sigils.Operator, table Table) (Result, error) {
	return Resolver{
		Operator: operator,
	}.Resolve(table)
}

func (r Resolver) Resolve(table Table) (ret Result, err error) {
	replace := r.replacer()

	keys := slices.Sorted(maps.Keys(table))
	if cycle := r.cycles(table, keys); len(cycle) > 0 {
		return ret, &CycleError{
			Keys: cycle,
		}
	}

	current := maps.Clone(table)
	if current == nil {
		current = make(Table)
	}
	wrapped := make([]string, len(keys))
	for i, key := range keys {
		wrapped[i] = r.Operator.Apply(key)
	}

	ceiling := len(table) + 1
	for ret.Passes < ceiling {
		ret.Passes++
		needles := make(map[string]string, len(keys))
		for i, key := range keys {
			needles[wrapped[i]] = current[key]
		}
		next := make(Table, len(keys))
		changed := false
		for _, key := range keys {
			value := replace(current[key], needles)
			if value != current[key] {
				changed = true
			}
			next[key] = value
		}
		current = next
		if !changed {
			break
		}
	}

	// without a remaining defined reference the next pass would change nothing
	if rest := r.referencing(current, keys); len(rest) > 0 {
		// a value still names a defined key, so some key resolves to itself
		cycle := r.cycles(current, keys)
		if len(cycle) == 0 {
			cycle = rest
		}
		return Result{}, &CycleError{
			Keys: cycle,
		}
	}

	ret.Values = current
	ret.Dangling = r.dangling(current, keys)
	return ret, nil
}

// Interpolate resolves references in text against resolved values.
func (r Resolver) Interpolate(values Table, text string) string {
	return r.replacer()(text, r.Operator.Rekey(values))
}

// referencing returns the keys whose value still contains a wrapped defined key.
func (r Resolver) referencing(values Table, keys []string) (ret []string) {
	deps := r.dependencies(values, keys)
	for i, key := range keys {
		if len(deps[i]) > 0 {
			ret = append(ret, key)
		}
	}
	return
}

// dangling reports references to undefined keys. Defined keys are excluded by
// the caller, which fails on any remaining defined reference.
func (r Resolver) dangling(values Table, keys []string) (ret []Dangling) {
	for _, key := range keys {
		for ref := range r.Operator.References(values[key]) {
			if _, ok := values[ref.Key]; ok {
				continue
			}
			ret = append(ret, Dangling{
				Key:     key,
				Missing: ref.Key,
			})
		}
	}
	ret = lo.Uniq(ret)
	slices.SortFunc(ret, func(a, b Dangling) int {
		if a.Key != b.Key {
			if a.Key < b.Key {
				return -1
			}
			return 1
		}
		if a.Missing < b.Missing {
			return -1
		} else if a.Missing > b.Missing {
			return 1
		}
		return 0
	})
	return
}
