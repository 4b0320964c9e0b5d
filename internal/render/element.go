// Package render turns word graphs into structured markup: a tree of
// Elements (tag, id, classes, text, children) that front-ends paint as HTML
// or terminal text.
package render

import "slices"

// Class names understood by the collapse controller and the front-ends.
const (
	ClassCurrentWord    = "current-word-display"
	ClassContent        = "content"
	ClassWord           = "word"
	ClassPhonetic       = "phonetic"
	ClassTreeNode       = "tree-node"
	ClassToggler        = "toggler"
	ClassSpacer         = "spacer"
	ClassCollapsed      = "collapsed"
	ClassTreeSection    = "tree-section"
	ClassSectionToggler = "section-toggler"
	ClassMessage        = "message"
)

// Toggle glyphs.
const (
	GlyphCollapsed = "[+]"
	GlyphExpanded  = "[-]"
	// GlyphLeaf keeps leaf rows aligned with their expandable siblings.
	GlyphLeaf = "\u00a0\u00a0\u00a0"
)

// Element is one render instruction. An Element with an empty Tag is a text node.
type Element struct {
	Tag     string
	ID      string
	Classes []string
	Text    string
	// Clickable marks elements a front-end must expose as click targets.
	Clickable bool
	Children  []*Element
}

// TextNode returns a bare text element.
func TextNode(s string) *Element {
	return &Element{Text: s}
}

// IsText reports whether e is a text node.
func (e *Element) IsText() bool { return e.Tag == "" }

// HasClass reports whether e carries the class.
func (e *Element) HasClass(class string) bool {
	return slices.Contains(e.Classes, class)
}

// AddClass adds the class if absent.
func (e *Element) AddClass(class string) {
	if !e.HasClass(class) {
		e.Classes = append(e.Classes, class)
	}
}

// RemoveClass removes every occurrence of the class.
func (e *Element) RemoveClass(class string) {
	e.Classes = slices.DeleteFunc(e.Classes, func(c string) bool { return c == class })
}

// ToggleClass flips the class and reports whether it is now present.
func (e *Element) ToggleClass(class string) bool {
	if e.HasClass(class) {
		e.RemoveClass(class)
		return false
	}
	e.AddClass(class)
	return true
}

// Child returns the first direct child with the given tag, or nil.
func (e *Element) Child(tag string) *Element {
	for _, c := range e.Children {
		if c.Tag == tag {
			return c
		}
	}
	return nil
}

// ChildWithClass returns the first direct child carrying the class, or nil.
func (e *Element) ChildWithClass(class string) *Element {
	for _, c := range e.Children {
		if c.HasClass(class) {
			return c
		}
	}
	return nil
}

// Walk visits e and all of its descendants depth-first, pre-order.
// Returning false from fn skips the element's subtree.
func (e *Element) Walk(fn func(el *Element) bool) {
	if !fn(e) {
		return
	}
	for _, c := range e.Children {
		c.Walk(fn)
	}
}

// FindAll returns descendants of e (excluding e) carrying the class, in document order.
func (e *Element) FindAll(class string) []*Element {
	var out []*Element
	for _, c := range e.Children {
		c.Walk(func(el *Element) bool {
			if el.HasClass(class) {
				out = append(out, el)
			}
			return true
		})
	}
	return out
}

// TextContent concatenates the text of e and all descendants.
func (e *Element) TextContent() string {
	var s string
	e.Walk(func(el *Element) bool {
		s += el.Text
		return true
	})
	return s
}

// Clone returns a deep copy of e.
func (e *Element) Clone() *Element {
	if e == nil {
		return nil
	}
	c := *e
	c.Classes = slices.Clone(e.Classes)
	if e.Children != nil {
		c.Children = make([]*Element, len(e.Children))
		for i, ch := range e.Children {
			c.Children[i] = ch.Clone()
		}
	}
	return &c
}

// Equal reports whether two element trees are structurally identical.
func Equal(a, b *Element) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Tag != b.Tag || a.ID != b.ID || a.Text != b.Text || a.Clickable != b.Clickable {
		return false
	}
	if !slices.Equal(a.Classes, b.Classes) || len(a.Children) != len(b.Children) {
		return false
	}
	for i := range a.Children {
		if !Equal(a.Children[i], b.Children[i]) {
			return false
		}
	}
	return true
}
