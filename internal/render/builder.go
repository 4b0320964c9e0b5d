package render

import (
	"fmt"

	"github.com/heartmarshall/wordtree/internal/domain"
)

// Section labels.
const (
	LabelParents  = "Parents"
	LabelChildren = "Children"
)

// Root element id.
const RootID = "root"

// SectionID returns the id of the section that holds branches of the role.
func SectionID(role domain.Role) string {
	switch role {
	case domain.RoleParent:
		return "parents"
	case domain.RoleChild:
		return "children"
	}
	return role.String()
}

// ToggleID returns the id of the toggle affordance owned by the element id.
func ToggleID(ownerID string) string { return ownerID + ":toggle" }

// WordID returns the id of the headword element owned by the element id.
func WordID(ownerID string) string { return ownerID + ":word" }

// IsCollapsible reports whether a node rendered with the role gets a toggle:
// parent branches only recurse into parents, child branches only into children.
func IsCollapsible(n domain.WordNode, role domain.Role) bool {
	return (role == domain.RoleParent || role == domain.RoleChild) && n.HasRelations(role)
}

// Build renders a single node. RoleRoot yields the always-visible header;
// RoleParent and RoleChild yield a branch list item with its whole subtree.
func Build(n domain.WordNode, role domain.Role) *Element {
	if role == domain.RoleRoot {
		return Root(n)
	}
	return branch(n, role, role.String())
}

// BuildResult renders a query result in display order: the root header,
// then the parent section and the child section, each only when non-empty.
func BuildResult(n domain.WordNode) []*Element {
	out := []*Element{Root(n)}
	if len(n.Parents) > 0 {
		out = append(out, Section(domain.RoleParent, n.Parents))
	}
	if len(n.Children) > 0 {
		out = append(out, Section(domain.RoleChild, n.Children))
	}
	return out
}

// Root renders the queried word header. It is never collapsible.
func Root(n domain.WordNode) *Element {
	h2 := &Element{Tag: "h2", Children: []*Element{content(n, RootID)}}
	if ph := phonetics(n); ph != nil {
		h2.Children = append(h2.Children, ph)
	}
	return &Element{
		Tag:      "div",
		ID:       RootID,
		Classes:  []string{ClassCurrentWord},
		Children: []*Element{h2},
	}
}

// Section renders a labelled, collapsed section holding one branch per node.
func Section(role domain.Role, nodes []domain.WordNode) *Element {
	id := SectionID(role)
	label := LabelChildren
	if role == domain.RoleParent {
		label = LabelParents
	}

	list := &Element{Tag: "ul"}
	for i, n := range nodes {
		list.Children = append(list.Children, branch(n, role, fmt.Sprintf("%s/%d", id, i)))
	}

	header := &Element{Tag: "h3", Children: []*Element{
		{
			Tag:       "span",
			ID:        ToggleID(id),
			Classes:   []string{ClassSectionToggler},
			Text:      GlyphCollapsed,
			Clickable: true,
		},
		TextNode(" " + label),
	}}

	return &Element{
		Tag:      "div",
		ID:       id,
		Classes:  []string{ClassTreeSection, role.String() + "-section", ClassCollapsed},
		Children: []*Element{header, list},
	}
}

func branch(n domain.WordNode, role domain.Role, id string) *Element {
	collapsible := IsCollapsible(n, role)

	li := &Element{
		Tag:     "li",
		ID:      id,
		Classes: []string{ClassTreeNode, role.String() + "-node"},
	}

	if collapsible {
		li.AddClass(ClassCollapsed)
		li.Children = append(li.Children, &Element{
			Tag:       "span",
			ID:        ToggleID(id),
			Classes:   []string{ClassToggler},
			Text:      GlyphCollapsed,
			Clickable: true,
		})
	} else {
		li.Children = append(li.Children, &Element{
			Tag:     "span",
			Classes: []string{ClassSpacer},
			Text:    GlyphLeaf,
		})
	}

	li.Children = append(li.Children, content(n, id))

	if collapsible {
		list := &Element{Tag: "ul"}
		for i, r := range n.Relations(role) {
			list.Children = append(list.Children, branch(r, role, fmt.Sprintf("%s/%d", id, i)))
		}
		li.Children = append(li.Children, list)
	}

	return li
}

func content(n domain.WordNode, ownerID string) *Element {
	return &Element{
		Tag:     "span",
		Classes: []string{ClassContent},
		Children: []*Element{
			{Tag: "b", ID: WordID(ownerID), Classes: []string{ClassWord}, Text: n.Word, Clickable: true},
			TextNode(": " + n.Translation),
		},
	}
}

func phonetics(n domain.WordNode) *Element {
	var parts []*Element
	if n.USPhone != "" {
		parts = append(parts, TextNode(" US /"+n.USPhone+"/"))
	}
	if n.UKPhone != "" {
		parts = append(parts, TextNode(" UK /"+n.UKPhone+"/"))
	}
	if len(parts) == 0 {
		return nil
	}
	return &Element{Tag: "span", Classes: []string{ClassPhonetic}, Children: parts}
}

// MessageKind selects how a region message is presented.
type MessageKind string

const (
	MessageInfo    MessageKind = "info"
	MessageSuccess MessageKind = "success"
	MessageError   MessageKind = "error"
)

// Message renders a plain status message.
func Message(kind MessageKind, text string) *Element {
	return &Element{
		Tag:     "span",
		Classes: []string{ClassMessage, string(kind)},
		Text:    text,
	}
}
