package chains

import (
	"context"
	"time"
	"unicode/utf8"

	"github.com/reusee/dscope"
	"github.com/reusee/vartext/logs"
)

type Module struct {
	dscope.Module
	Logs logs.Module
}

// Run drives a chain under its own span.
type Run func(ctx context.Context, chain Chain, text string) (string, error)

func (Module) Run(
	logger logs.Logger,
	newSpan logs.NewSpan,
) Run {
	return func(ctx context.Context, chain Chain, text string) (string, error) {
		ctx, _ = newSpan(ctx, "")

		traced := make(Chain, 0, len(chain))
		for _, stage := range chain {
			apply := stage.Apply
			if apply == nil {
				continue
			}
			traced = append(traced, Stage{
				Name: stage.Name,
				Apply: func(ctx context.Context, text string) (string, error) {
					ctx = logs.WithStage(ctx, stage.Name)
					t0 := time.Now()
					out, err := apply(ctx, text)
					logger.DebugContext(ctx, "stage",
						"in", utf8.RuneCountInString(text),
						"out", utf8.RuneCountInString(out),
						"duration", time.Since(t0),
						"error", err,
					)
					return out, err
				},
			})
		}

		out, err := traced.Run(ctx, text)
		if err != nil {
			return "", logs.WrapSpan(ctx, err)
		}
		return out, nil
	}
}
