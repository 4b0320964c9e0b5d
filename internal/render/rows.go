package render

import (
	"fmt"
	"io"
	"strings"
)

// RowKind classifies a display row.
type RowKind int

const (
	RowHeader RowKind = iota
	RowSection
	RowNode
	RowMessage
)

// Row is one line of a line-oriented rendering: the queried word header,
// a section header, a tree node, or a status message.
type Row struct {
	Kind    RowKind
	Depth   int
	Element *Element
}

// Toggle returns the row's toggle affordance, or nil for leaves and headers.
func (r Row) Toggle() *Element {
	switch r.Kind {
	case RowNode:
		return r.Element.ChildWithClass(ClassToggler)
	case RowSection:
		if h := r.Element.Child("h3"); h != nil {
			return h.ChildWithClass(ClassSectionToggler)
		}
	}
	return nil
}

// Word returns the row's headword element, or nil.
func (r Row) Word() *Element {
	var word *Element
	r.Element.Walk(func(el *Element) bool {
		if word != nil {
			return false
		}
		if el != r.Element && el.Tag == "ul" {
			return false
		}
		if el.HasClass(ClassWord) {
			word = el
			return false
		}
		return true
	})
	return word
}

// Label returns the row text without the toggle glyph or nested rows.
func (r Row) Label() string {
	switch r.Kind {
	case RowMessage:
		return r.Element.Text
	case RowSection:
		h := r.Element.Child("h3")
		if h == nil {
			return ""
		}
		var b strings.Builder
		for _, c := range h.Children {
			if c.HasClass(ClassSectionToggler) {
				continue
			}
			b.WriteString(c.TextContent())
		}
		return strings.TrimSpace(b.String())
	case RowHeader:
		return r.Element.TextContent()
	}
	if c := r.Element.ChildWithClass(ClassContent); c != nil {
		return c.TextContent()
	}
	return ""
}

// Rows flattens elements into display rows. Unless all is set, rows hidden
// under a collapsed node or section are omitted.
func Rows(elems []*Element, all bool) []Row {
	var rows []Row
	for _, e := range elems {
		collectRows(e, 0, all, &rows)
	}
	return rows
}

func collectRows(e *Element, depth int, all bool, rows *[]Row) {
	switch {
	case e.HasClass(ClassCurrentWord):
		*rows = append(*rows, Row{Kind: RowHeader, Depth: depth, Element: e})
		return
	case e.HasClass(ClassMessage):
		*rows = append(*rows, Row{Kind: RowMessage, Depth: depth, Element: e})
		return
	case e.HasClass(ClassTreeSection):
		*rows = append(*rows, Row{Kind: RowSection, Depth: depth, Element: e})
	case e.HasClass(ClassTreeNode):
		*rows = append(*rows, Row{Kind: RowNode, Depth: depth, Element: e})
	}

	hidden := !all && e.HasClass(ClassCollapsed)
	for _, c := range e.Children {
		if c.Tag != "ul" {
			continue
		}
		if hidden {
			continue
		}
		for _, item := range c.Children {
			collectRows(item, depth+1, all, rows)
		}
	}
}

// TextOptions controls WriteText.
type TextOptions struct {
	// All prints collapsed subtrees too.
	All bool
	// Indent is repeated once per depth level. Defaults to two spaces.
	Indent string
}

// WriteText writes a plain-text rendering of the elements, one row per line.
func WriteText(w io.Writer, elems []*Element, opts TextOptions) error {
	indent := opts.Indent
	if indent == "" {
		indent = "  "
	}
	for _, row := range Rows(elems, opts.All) {
		prefix := strings.Repeat(indent, max(row.Depth-1, 0))
		var line string
		switch row.Kind {
		case RowHeader, RowMessage:
			line = row.Label()
		case RowSection:
			line = glyph(row) + " " + row.Label()
		case RowNode:
			line = prefix + glyph(row) + " " + row.Label()
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

func glyph(r Row) string {
	if t := r.Toggle(); t != nil {
		return t.Text
	}
	return GlyphLeaf
}
