package protocol

import (
	"bytes"

	"github.com/yuin/goldmark"
)

// RenderMarkup converts MarkupContent to HTML when its Kind is Markdown,
// using goldmark (the teacher's own Markdown dependency, otherwise unused
// by the jsonrpc2/protocol subtree this client is grounded on). PlainText
// content, and anything that fails to render, is returned unchanged so an
// embedder can always fall back to showing Value verbatim.
func RenderMarkup(m MarkupContent) (string, error) {
	if m.Kind != Markdown {
		return m.Value, nil
	}
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(m.Value), &buf); err != nil {
		return m.Value, err
	}
	return buf.String(), nil
}

// RenderHover renders every markdown-flavored piece of a Hover's contents to
// HTML, leaving plain strings and MarkedString values untouched. It is a
// convenience for embedders that want to show rendered hover text; the core
// itself never calls this.
func RenderHover(h Hover) (string, error) {
	if h.Contents.Markup != nil {
		return RenderMarkup(*h.Contents.Markup)
	}
	var buf bytes.Buffer
	for i, ms := range h.Contents.Marked {
		if i > 0 {
			buf.WriteString("\n\n")
		}
		buf.WriteString(ms.Value)
	}
	return buf.String(), nil
}
