package logs

import (
	"bytes"
	"strings"
	"testing"

	"github.com/reusee/dscope"
	"github.com/reusee/vartext/modes"
)

func TestHandler(t *testing.T) {
	dscope.New(new(Module), modes.ForTest(t)).Call(func(
		logger Logger,
	) {
		logger.Info("test", "hello", "world!")
	})
}

func TestDevelopmentLevel(t *testing.T) {
	buf := new(bytes.Buffer)
	dscope.New(new(Module), modes.ForTest(t)).Fork(
		func() Writer {
			return buf
		},
	).Call(func(
		logger Logger,
	) {
		logger.Debug("verbose", "key", "value")
	})
	if !strings.Contains(buf.String(), "msg=verbose key=value") {
		t.Fatalf("got %q", buf.String())
	}
}
