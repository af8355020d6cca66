package debugs

import (
	"context"
	"maps"
	"os"
	"slices"

	"github.com/reusee/vartext/logs"
	"go.starlark.net/repl"
	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
	"golang.org/x/term"
)

// Tap opens a starlark REPL over globals. Without a terminal on stdin it only logs.
type Tap func(ctx context.Context, what string, globals starlark.StringDict)

func (Module) Tap(
	logger logs.Logger,
) Tap {
	return func(ctx context.Context, what string, globals starlark.StringDict) {
		logger.InfoContext(ctx, "tap: "+what,
			"globals", slices.Sorted(maps.Keys(globals)),
		)
		defer func() {
			logger.InfoContext(ctx, "tap end: "+what)
		}()

		if !term.IsTerminal(int(os.Stdin.Fd())) {
			logger.WarnContext(ctx, "tap: stdin is not a terminal")
			return
		}

		thread := &starlark.Thread{
			Name: "repl",
		}
		stop := context.AfterFunc(ctx, func() {
			thread.Cancel(context.Cause(ctx).Error())
		})
		defer stop()

		repl.REPLOptions(&syntax.FileOptions{
			Set:             true,
			While:           true,
			TopLevelControl: true,
		}, thread, globals)
	}
}

// Globals converts Go values for Tap.
func Globals(values map[string]any) starlark.StringDict {
	ret := make(starlark.StringDict, len(values))
	for name, value := range values {
		ret[name] = toStarlarkValue(value)
	}
	return ret
}
