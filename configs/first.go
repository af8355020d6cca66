package configs

import (
	"errors"
)

// Lookup decodes the value at path from the highest priority file defining it.
func Lookup[T any](loader Loader, path string) (value T, ok bool, err error) {
	err = loader.AssignFirst(path, &value)
	if errors.Is(err, ErrValueNotFound) {
		return value, false, nil
	}
	if err != nil {
		return value, false, err
	}
	return value, true, nil
}

// First is Lookup for settings that must be valid; a bad value panics.
func First[T any](loader Loader, path string) T {
	value, _, err := Lookup[T](loader, path)
	if err != nil {
		panic(err)
	}
	return value
}
