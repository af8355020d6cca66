package logs

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/reusee/dscope"
	"github.com/reusee/vartext/modes"
)

func TestHandlerStage(t *testing.T) {
	buf := new(bytes.Buffer)
	dscope.New(new(Module), modes.ForTest(t)).Fork(
		func() Writer {
			return buf
		},
	).Call(func(
		logger Logger,
		newSpan NewSpan,
	) {
		ctx, span := newSpan(context.Background(), "")
		buf.Reset()
		ctx = WithStage(ctx, "interpolate")
		logger.With("file", "a.md").InfoContext(ctx, "done")
		line := buf.String()
		for _, expected := range []string{
			"logs.span=" + string(span),
			"logs.stage=interpolate",
			"file=a.md",
		} {
			if !strings.Contains(line, expected) {
				t.Fatalf("got %q", line)
			}
		}
	})
}

func TestWrapSpan(t *testing.T) {
	errFoo := errors.New("foo")
	if err := WrapSpan(context.Background(), errFoo); err != errFoo {
		t.Fatalf("got %v", err)
	}
	if err := WrapSpan(context.Background(), nil); err != nil {
		t.Fatalf("got %v", err)
	}

	ctx := context.WithValue(context.Background(), SpanKey, Span("x"))
	err := WrapSpan(ctx, errFoo)
	if !errors.Is(err, errFoo) || !strings.Contains(err.Error(), "span: x") {
		t.Fatalf("got %v", err)
	}
	err = WrapSpan(WithStage(ctx, "render"), errFoo)
	if !strings.Contains(err.Error(), "span: x, stage: render") {
		t.Fatalf("got %v", err)
	}
}
