package markdowns

import (
	"bytes"
	"context"

	"github.com/reusee/vartext/chains"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// Renderer converts Markdown to HTML. It is the last stage of a chain.
type Renderer struct {
	markdown goldmark.Markdown
}

func NewRenderer() Renderer {
	return Renderer{
		markdown: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
		),
	}
}

func (r Renderer) Render(text string) (string, error) {
	var buf bytes.Buffer
	buf.Grow(len(text) * 2)
	if err := r.markdown.Convert([]byte(text), &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func (r Renderer) Stage() chains.Stage {
	return chains.Stage{
		Name: "markdown",
		Apply: func(_ context.Context, text string) (string, error) {
			return r.Render(text)
		},
	}
}
