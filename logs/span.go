package logs

import "context"

type Span string

type spanKey struct{}

var SpanKey spanKey

// Stage names the pipeline stage a context is running in.
type Stage string

type stageKey struct{}

var StageKey stageKey

func WithStage(ctx context.Context, stage string) context.Context {
	return context.WithValue(ctx, StageKey, Stage(stage))
}

func spanOf(ctx context.Context) (Span, bool) {
	span, ok := ctx.Value(SpanKey).(Span)
	return span, ok
}

func stageOf(ctx context.Context) (Stage, bool) {
	stage, ok := ctx.Value(StageKey).(Stage)
	return stage, ok && stage != ""
}
