package defs

import (
	"slices"

	"github.com/reusee/dscope"
	"github.com/reusee/vartext/cmds"
	"github.com/reusee/vartext/configs"
	"github.com/reusee/vartext/interps"
	"github.com/reusee/vartext/logs"
	"github.com/reusee/vartext/replaces"
	"github.com/reusee/vartext/sigils"
)

type Module struct {
	dscope.Module
	Configs configs.Module
	Logs    logs.Module
}

var defsFlag = cmds.Collect[string]("-defs", "add a definitions file")

// Paths lists definition files in load order, so later files override:
// lower priority config files first, flags last.
type Paths []string

func (Module) Paths(
	loader configs.Loader,
) (ret Paths) {
	var layers [][]string
	for paths, err := range configs.All[[]string](loader, "definitions") {
		if err != nil {
			panic(err)
		}
		layers = append(layers, paths)
	}
	slices.Reverse(layers)
	for _, paths := range layers {
		ret = append(ret, paths...)
	}
	ret = append(ret, *defsFlag...)
	return ret
}

func (Module) Source(
	op sigils.Operator,
	dispatcher replaces.Dispatcher,
	logger logs.Logger,
) *Source {
	return NewSource(interps.Resolver{
		Operator: op,
		Replace:  dispatcher.Func(),
		Find:     dispatcher.FindFunc(),
	}, logger)
}
