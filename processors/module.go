package processors

import (
	"fmt"

	"github.com/reusee/dscope"
	"github.com/reusee/vartext/configs"
	"github.com/reusee/vartext/logs"
	"github.com/reusee/vartext/replaces"
	"github.com/reusee/vartext/sigils"
	"github.com/reusee/vartext/vars"
)

type Module struct {
	dscope.Module
	Configs configs.Module
	Logs    logs.Module
}

// Sigil is the operator wrapping keys in documents and definition values.
func (Module) Sigil(
	loader configs.Loader,
) sigils.Operator {
	began := configs.First[string](loader, "sigils.began")
	ended := configs.First[string](loader, "sigils.ended")
	if began == "" && ended == "" {
		return sigils.Moustache
	}
	if began == "" || ended == "" {
		panic(fmt.Errorf("config sigils: %w: began %q and ended %q must be set together",
			sigils.ErrInvalidSigil, began, ended))
	}
	op, err := sigils.Native(began, ended)
	if err != nil {
		panic(fmt.Errorf("config sigils: %w", err))
	}
	return op
}

type ScriptSigil struct {
	sigils.Operator
}

func (Module) ScriptSigil(
	loader configs.Loader,
) ScriptSigil {
	def := sigils.StarlarkDefault()
	op, err := sigils.Script(
		configs.First[string](loader, "script.began"),
		configs.First[string](loader, "script.ended"),
		vars.FirstNonZero(configs.First[string](loader, "script.namespace"), def.Namespace()),
		vars.FirstNonZero(configs.First[string](loader, "script.separator"), def.Separator()),
	)
	if err != nil {
		panic(fmt.Errorf("config script: %w", err))
	}
	return ScriptSigil{
		Operator: op,
	}
}

func (Module) Dispatcher(
	loader configs.Loader,
) replaces.Dispatcher {
	return replaces.Dispatcher{
		Threshold: vars.FirstNonZero(
			configs.First[int](loader, "threshold"),
			replaces.Threshold,
		),
	}
}

type CaseInsensitive bool

func (Module) CaseInsensitive(
	loader configs.Loader,
) CaseInsensitive {
	return CaseInsensitive(configs.First[bool](loader, "case_insensitive"))
}

func (Module) VariableProcessor(
	source Definitions,
	op sigils.Operator,
	dispatcher replaces.Dispatcher,
	caseInsensitive CaseInsensitive,
	logger logs.Logger,
) *VariableProcessor {
	var options []Option
	if caseInsensitive {
		options = append(options, WithReplaceOptions(replaces.CaseInsensitive()))
	}
	logger.Debug("variable processor",
		"sigil", op,
		"threshold", dispatcher.Threshold,
		"case insensitive", bool(caseInsensitive),
	)
	return New(source, op, dispatcher, options...)
}

type ScriptProcessor struct {
	*VariableProcessor
}

func (Module) ScriptProcessor(
	source Definitions,
	op ScriptSigil,
	dispatcher replaces.Dispatcher,
) ScriptProcessor {
	return ScriptProcessor{
		VariableProcessor: NewScript(source, op.Operator, dispatcher),
	}
}
