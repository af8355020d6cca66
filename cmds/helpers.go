package cmds

// Var defines name to set a value and name+"." to reset it.
func Var[T any](name string, desc string) *T {
	var value T
	Define(name, Func(func(v T) {
		value = v
	}).Desc(desc))
	Define(name+".", Func(func() {
		var zero T
		value = zero
	}))
	return &value
}

// Switch defines name to turn a flag on and "!"+name to turn it off.
func Switch(name string, desc string) *bool {
	value := new(bool)
	Define(name, Func(func() {
		*value = true
	}).Desc(desc))
	Define("!"+name, Func(func() {
		*value = false
	}))
	return value
}

// Collect defines a repeatable name appending each argument.
func Collect[T any](name string, desc string) *[]T {
	var values []T
	Define(name, Func(func(v T) {
		values = append(values, v)
	}).Desc(desc))
	return &values
}
