package scripts

import (
	"github.com/reusee/dscope"
	"github.com/reusee/vartext/logs"
	"github.com/reusee/vartext/processors"
)

type Module struct {
	dscope.Module
	Processors processors.Module
	Logs       logs.Module
}

func (Module) Evaluator(
	variables processors.ScriptProcessor,
	logger logs.Logger,
) *Evaluator {
	return NewEvaluator(variables.VariableProcessor, logger)
}
