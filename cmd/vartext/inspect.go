package main

import (
	"errors"
	"fmt"
	"io"
	"maps"
	"slices"
	"strconv"

	"github.com/reusee/vartext/cmds"
	"github.com/reusee/vartext/interps"
)

// inspection replaces document processing when set by the defs sub commands.
type inspection uint8

const (
	inspectNone inspection = iota
	inspectList
	inspectCheck
)

var inspect inspection

var ErrDangling = errors.New("dangling references")

func init() {
	cmds.Define("defs", cmds.Sub(map[string]*cmds.Command{
		"list": cmds.Func(func() {
			inspect = inspectList
		}).Desc("print the resolved definitions"),
		"check": cmds.Func(func() {
			inspect = inspectCheck
		}).Desc("print dangling references and fail if there is any"),
	}).Desc("inspect definitions instead of processing documents"))
}

func listDefinitions(w io.Writer, values map[string]string) error {
	for _, key := range slices.Sorted(maps.Keys(values)) {
		if _, err := fmt.Fprintf(w, "%s = %s\n", key, strconv.Quote(values[key])); err != nil {
			return err
		}
	}
	return nil
}

func checkDefinitions(w io.Writer, dangling []interps.Dangling) error {
	for _, d := range dangling {
		if _, err := fmt.Fprintf(w, "%s: undefined %s\n", d.Key, d.Missing); err != nil {
			return err
		}
	}
	if len(dangling) > 0 {
		return fmt.Errorf("%w: %d", ErrDangling, len(dangling))
	}
	return nil
}
