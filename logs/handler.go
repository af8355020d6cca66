package logs

import (
	"context"
	"log/slog"
)

// Handler adds the span and stage carried by the context to every record.
type Handler struct {
	slog.Handler
}

func (h *Handler) Handle(ctx context.Context, record slog.Record) error {
	if span, ok := spanOf(ctx); ok {
		record.Add("logs.span", span)
	}
	if stage, ok := stageOf(ctx); ok {
		record.Add("logs.stage", stage)
	}
	return h.Handler.Handle(ctx, record)
}

func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &Handler{
		Handler: h.Handler.WithAttrs(attrs),
	}
}

func (h *Handler) WithGroup(name string) slog.Handler {
	return &Handler{
		Handler: h.Handler.WithGroup(name),
	}
}
