package render

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// HTMLOptions controls WriteHTML.
type HTMLOptions struct {
	// ActionName, when set, turns clickable elements into submit buttons
	// named ActionName whose value is the element id.
	ActionName string
}

// WriteHTML writes the elements as an HTML fragment.
func WriteHTML(w io.Writer, elems []*Element, opts HTMLOptions) error {
	for _, e := range elems {
		if err := html.Render(w, toNode(e, opts)); err != nil {
			return fmt.Errorf("render: html: %w", err)
		}
	}
	return nil
}

// HTML returns the elements as an HTML fragment string.
func HTML(elems []*Element, opts HTMLOptions) (string, error) {
	var buf bytes.Buffer
	if err := WriteHTML(&buf, elems, opts); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func toNode(e *Element, opts HTMLOptions) *html.Node {
	if e.IsText() {
		return &html.Node{Type: html.TextNode, Data: e.Text}
	}

	tag := e.Tag
	var attrs []html.Attribute
	if e.Clickable && opts.ActionName != "" && e.ID != "" {
		tag = "button"
		attrs = append(attrs,
			html.Attribute{Key: "type", Val: "submit"},
			html.Attribute{Key: "name", Val: opts.ActionName},
			html.Attribute{Key: "value", Val: e.ID},
		)
	}
	if e.ID != "" {
		attrs = append(attrs, html.Attribute{Key: "id", Val: e.ID})
	}
	if len(e.Classes) > 0 {
		attrs = append(attrs, html.Attribute{Key: "class", Val: strings.Join(e.Classes, " ")})
	}

	n := &html.Node{
		Type:     html.ElementNode,
		Data:     tag,
		DataAtom: atom.Lookup([]byte(tag)),
		Attr:     attrs,
	}
	if e.Text != "" {
		n.AppendChild(&html.Node{Type: html.TextNode, Data: e.Text})
	}
	for _, c := range e.Children {
		n.AppendChild(toNode(c, opts))
	}
	return n
}
