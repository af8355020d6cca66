package scripts

import (
	"context"
	"strings"

	"github.com/reusee/starlarkutil"
	"github.com/reusee/vartext/chains"
	"github.com/reusee/vartext/logs"
	"github.com/reusee/vartext/processors"
	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Inline expressions are written as `s# expr` in documents.
const (
	Began = "`s#"
	Ended = "`"
)

// Evaluator replaces inline expressions with their evaluated value. Script
// variables inside an expression are substituted first, so definitions reach
// the code as string literals. An expression that fails to evaluate is left
// as written and logged.
type Evaluator struct {
	variables   *processors.VariableProcessor
	logger      logs.Logger
	predeclared starlark.StringDict
}

func NewEvaluator(variables *processors.VariableProcessor, logger logs.Logger) *Evaluator {
	return &Evaluator{
		variables:   variables,
		logger:      logger,
		predeclared: Builtins(),
	}
}

func Builtins() starlark.StringDict {
	return starlark.StringDict{
		"upper": starlarkutil.MakeFunc("upper", strings.ToUpper),
		"lower": starlarkutil.MakeFunc("lower", strings.ToLower),
		"title": starlarkutil.MakeFunc("title", func(s string) string {
			return cases.Title(language.Und).String(s)
		}),
		"trim": starlarkutil.MakeFunc("trim", strings.TrimSpace),
	}
}

func (e *Evaluator) Apply(ctx context.Context, text string) (string, error) {
	if !strings.Contains(text, Began) {
		return text, nil
	}

	var b strings.Builder
	b.Grow(len(text))
	for {
		start := strings.Index(text, Began)
		if start < 0 {
			break
		}
		codeStart := start + len(Began)
		end := strings.Index(text[codeStart:], Ended)
		if end < 0 {
			break
		}
		end += codeStart
		b.WriteString(text[:start])

		out, ok, err := e.eval(ctx, text[codeStart:end])
		if err != nil {
			return "", err
		}
		if ok {
			b.WriteString(out)
		} else {
			b.WriteString(text[start : end+len(Ended)])
		}
		text = text[end+len(Ended):]
	}
	b.WriteString(text)

	return b.String(), nil
}

// eval returns ok false when the code does not evaluate.
func (e *Evaluator) eval(ctx context.Context, code string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}
	if e.variables != nil {
		var err error
		code, err = e.variables.Apply(code)
		if err != nil {
			return "", false, err
		}
	}
	if strings.TrimSpace(code) == "" {
		return "", false, nil
	}

	thread := &starlark.Thread{
		Name: "inline",
		Print: func(_ *starlark.Thread, msg string) {
			e.logger.InfoContext(ctx, "script print", "msg", msg)
		},
	}
	stop := context.AfterFunc(ctx, func() {
		thread.Cancel(context.Cause(ctx).Error())
	})
	defer stop()

	value, err := starlark.EvalOptions(
		&syntax.FileOptions{},
		thread,
		"inline",
		code,
		e.predeclared,
	)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", false, ctxErr
		}
		e.logger.WarnContext(ctx, "inline script",
			"code", code,
			"error", err,
		)
		return "", false, nil
	}

	switch value := value.(type) {
	case starlark.String:
		return string(value), true, nil
	case starlark.NoneType:
		return "", true, nil
	}
	return value.String(), true, nil
}

func (e *Evaluator) Stage() chains.Stage {
	return chains.Stage{
		Name:  "scripts",
		Apply: e.Apply,
	}
}
