package chains

import (
	"context"
	"fmt"
	"slices"
)

// Stage transforms a document. Stages run strictly in order; each receives
// the complete output of the one before.
type Stage struct {
	Name  string
	Apply func(ctx context.Context, text string) (string, error)
}

type Chain []Stage

func (c Chain) Run(ctx context.Context, text string) (string, error) {
	for _, stage := range c {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		if stage.Apply == nil {
			continue
		}
		out, err := stage.Apply(ctx, text)
		if err != nil {
			return "", fmt.Errorf("stage %s: %w", stage.Name, err)
		}
		text = out
	}
	return text, nil
}

// Without returns a copy of the chain with every stage named name removed.
func (c Chain) Without(name string) Chain {
	return slices.DeleteFunc(slices.Clone(c), func(stage Stage) bool {
		return stage.Name == name
	})
}

func (c Chain) Names() []string {
	ret := make([]string, 0, len(c))
	for _, stage := range c {
		ret = append(ret, stage.Name)
	}
	return ret
}

func Identity() Stage {
	return Stage{
		Name: "identity",
		Apply: func(_ context.Context, text string) (string, error) {
			return text, nil
		},
	}
}

// Func makes a stage from a transform that cannot fail.
func Func(name string, fn func(string) string) Stage {
	return Stage{
		Name: name,
		Apply: func(_ context.Context, text string) (string, error) {
			return fn(text), nil
		},
	}
}
