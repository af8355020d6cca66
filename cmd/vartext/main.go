package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/reusee/dscope"
	"github.com/reusee/vartext/chains"
	"github.com/reusee/vartext/cmds"
	"github.com/reusee/vartext/configs"
	"github.com/reusee/vartext/debugs"
	"github.com/reusee/vartext/defs"
	"github.com/reusee/vartext/logs"
	"github.com/reusee/vartext/markdowns"
	"github.com/reusee/vartext/modes"
	"github.com/reusee/vartext/processors"
	"github.com/reusee/vartext/scripts"
	"github.com/reusee/vartext/vars"
	"golang.org/x/term"
)

var (
	inFlag     = cmds.Collect[string]("-in", "add an input file, stdin if none")
	htmlFlag   = cmds.Switch("-html", "render markdown output to html")
	scriptFlag = cmds.Switch("-script", "evaluate inline script spans")
	tapFlag    = cmds.Switch("-tap", "open a debug tap on the resolved definitions")
	jobsFlag   = cmds.Var[int]("-j", "number of files processed at once")
)

func main() {
	cmds.Execute(os.Args[1:])

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	dscope.New(
		new(Module),
		modes.ForProduction(),
	).Call(func(
		loader configs.Loader,
		source *defs.Source,
		paths defs.Paths,
		variables *processors.VariableProcessor,
		evaluator *scripts.Evaluator,
		run chains.Run,
		tap debugs.Tap,
		logger logs.Logger,
	) {
		fatal := func(err error) {
			logger.Error("vartext", "error", err)
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		if err := loader.Err(); err != nil {
			fatal(err)
		}
		if err := source.Load(paths...); err != nil {
			fatal(err)
		}

		if *tapFlag {
			values, _, _ := source.Resolved()
			tap(ctx, "definitions", debugs.Nest(values))
		}

		switch inspect {
		case inspectList:
			values, _, _ := source.Resolved()
			if err := listDefinitions(os.Stdout, values); err != nil {
				fatal(err)
			}
			return
		case inspectCheck:
			if err := checkDefinitions(os.Stdout, source.Dangling()); err != nil {
				fatal(err)
			}
			return
		}

		chain := chains.Chain{
			variables.Stage("variables"),
		}
		if *scriptFlag {
			chain = append(chain, evaluator.Stage())
		}
		if *htmlFlag {
			chain = append(chain, markdowns.NewRenderer().Stage())
		}

		if len(*inFlag) == 0 {
			if term.IsTerminal(int(os.Stdin.Fd())) {
				cmds.GlobalExecutor.PrintUsage()
				os.Exit(2)
			}
			content, err := io.ReadAll(os.Stdin)
			if err != nil {
				fatal(err)
			}
			out, err := run(ctx, chain, string(content))
			if err != nil {
				fatal(err)
			}
			if _, err := io.WriteString(os.Stdout, out); err != nil {
				fatal(err)
			}
			return
		}

		outputs, err := processFiles(ctx, run, chain, *inFlag, vars.FirstNonZero(vars.DerefOrZero(jobsFlag), 4))
		if err != nil {
			fatal(err)
		}
		for _, out := range outputs {
			if _, err := io.WriteString(os.Stdout, out); err != nil {
				fatal(err)
			}
		}
	})
}
