package protocol

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderMarkupOnlyConvertsMarkdown(t *testing.T) {
	html, err := RenderMarkup(MarkupContent{Kind: Markdown, Value: "**hi**"})
	assert.NoError(t, err)
	assert.Contains(t, html, "<strong>hi</strong>")

	plain, err := RenderMarkup(MarkupContent{Kind: PlainText, Value: "**hi**"})
	assert.NoError(t, err)
	assert.Equal(t, "**hi**", plain)
}

func TestRenderHoverJoinsMarkedStrings(t *testing.T) {
	h := Hover{Contents: HoverContents{Marked: []MarkedString{{Value: "a"}, {Value: "b"}}}}
	got, err := RenderHover(h)
	assert.NoError(t, err)
	assert.Equal(t, "a\n\nb", got)
}
