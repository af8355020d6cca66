package debugs

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/reusee/starlarkutil"
	"go.starlark.net/starlark"
)

func toStarlarkValue(v any) starlark.Value {
	switch v := v.(type) {
	case nil:
		return starlark.None
	case starlark.Value:
		return v
	case []byte:
		return starlark.Bytes(v)
	}

	value := reflect.ValueOf(v)
	switch value.Kind() {

	case reflect.Bool:
		return starlark.Bool(value.Bool())

	case reflect.String:
		return starlark.String(value.String())

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return starlark.MakeInt64(value.Int())

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return starlark.MakeUint64(value.Uint())

	case reflect.Float32, reflect.Float64:
		return starlark.Float(value.Float())

	case reflect.Slice, reflect.Array:
		elems := make([]starlark.Value, value.Len())
		for i := range elems {
			elems[i] = toStarlarkValue(value.Index(i).Interface())
		}
		return starlark.NewList(elems)

	case reflect.Map:
		d := starlark.NewDict(value.Len())
		iter := value.MapRange()
		for iter.Next() {
			if err := d.SetKey(
				toStarlarkValue(iter.Key().Interface()),
				toStarlarkValue(iter.Value().Interface()),
			); err != nil {
				panic(err)
			}
		}
		return d

	case reflect.Struct:
		typ := value.Type()
		d := starlark.NewDict(typ.NumField())
		for i := range typ.NumField() {
			field := typ.Field(i)
			if !field.IsExported() {
				continue
			}
			if err := d.SetKey(
				starlark.String(field.Name),
				toStarlarkValue(value.Field(i).Interface()),
			); err != nil {
				panic(err)
			}
		}
		return d

	case reflect.Pointer, reflect.Interface:
		if value.IsNil() {
			return starlark.None
		}
		return toStarlarkValue(value.Elem().Interface())

	case reflect.Func:
		return starlarkutil.MakeFunc("", value.Interface())

	}

	panic(fmt.Errorf("unsupported type for starlark: %T", v))
}

// Nest turns dot-delimited keys into nested dicts: "a.b" = 1 becomes a["b"] = 1.
// A key that is both a leaf and a prefix keeps its leaf value under "".
func Nest(values map[string]string) starlark.StringDict {
	root := starlark.NewDict(len(values))
	for key, value := range values {
		parts := strings.Split(key, ".")
		d := root
		for _, part := range parts[:len(parts)-1] {
			d = child(d, part)
		}
		last := starlark.String(parts[len(parts)-1])
		if existing, ok, _ := d.Get(last); ok {
			if sub, ok := existing.(*starlark.Dict); ok {
				_ = sub.SetKey(starlark.String(""), starlark.String(value))
				continue
			}
		}
		_ = d.SetKey(last, starlark.String(value))
	}

	ret := make(starlark.StringDict, root.Len())
	for _, item := range root.Items() {
		ret[string(item[0].(starlark.String))] = item[1]
	}
	return ret
}

func child(d *starlark.Dict, name string) *starlark.Dict {
	key := starlark.String(name)
	existing, ok, _ := d.Get(key)
	if ok {
		if sub, ok := existing.(*starlark.Dict); ok {
			return sub
		}
	}
	sub := starlark.NewDict(1)
	if ok {
		// a leaf already sits here
		_ = sub.SetKey(starlark.String(""), existing)
	}
	_ = d.SetKey(key, sub)
	return sub
}
