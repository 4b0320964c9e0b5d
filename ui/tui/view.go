package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/heartmarshall/wordtree/internal/render"
)

var fieldLabels = [...]string{"Word", "Meaning", "Search"}

func (m *Model) View() string {
	if m.quitting {
		return "Bye!\n"
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("wordtree"))
	b.WriteString("\n\n")

	for i := range m.inputs {
		label := labelStyle
		if m.focus == i {
			label = focusedLabelStyle
		}
		b.WriteString(label.Render(fieldLabels[i]))
		b.WriteString(m.inputs[i].View())
		b.WriteString("\n")
	}
	b.WriteString("\n")

	box := regionStyle
	if m.focus == focusRegion {
		box = focusedRegionStyle
	}
	if m.width > 4 {
		box = box.Width(m.width - 4)
	}
	b.WriteString(box.Render(m.regionView()))
	b.WriteString("\n")

	status := m.status
	if m.pending > 0 {
		status = "working..."
	}
	if status != "" {
		style := statusStyle
		if m.statusErr && m.pending == 0 {
			style = errorStyle
		}
		b.WriteString(style.Render(status))
		b.WriteString("\n")
	}
	b.WriteString(helpStyle.Render(m.help()))

	return m.zones.Scan(b.String())
}

func (m *Model) help() string {
	if m.focus == focusRegion {
		return "↑/↓ move • enter toggle • s speak • tab fields • q quit"
	}
	return "tab next • enter on search: query • ctrl+a add • ctrl+u update • ctrl+c quit"
}

// regionView paints the visible rows, marking togglers and words as
// mouse zones keyed by element id.
func (m *Model) regionView() string {
	rows := m.rows()
	if len(rows) == 0 {
		return emptyRegion
	}

	lines := make([]string, 0, len(rows))
	for i, row := range rows {
		line := m.rowView(row)
		if m.focus == focusRegion && i == m.cursor {
			line = cursorStyle.Render(line)
		}
		lines = append(lines, line)
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m *Model) rowView(row render.Row) string {
	switch row.Kind {
	case render.RowMessage:
		return messageStyle(row.Element).Render(row.Label())
	case render.RowHeader:
		return headerStyle.Render(m.wordLabel(row))
	case render.RowSection:
		return m.toggleView(row) + " " + sectionStyle.Render(row.Label())
	}
	indent := strings.Repeat(" ", m.opts.Indent*max(row.Depth-1, 0))
	return indent + m.toggleView(row) + " " + m.wordLabel(row)
}

func (m *Model) toggleView(row render.Row) string {
	t := row.Toggle()
	if t == nil {
		return render.GlyphLeaf
	}
	return m.zones.Mark(t.ID, togglerStyle.Render(t.Text))
}

// wordLabel renders the row label with its headword as a clickable zone.
func (m *Model) wordLabel(row render.Row) string {
	label := row.Label()
	w := row.Word()
	if w == nil || !strings.HasPrefix(label, w.Text) {
		return label
	}
	return m.zones.Mark(w.ID, wordStyle.Render(w.Text)) + label[len(w.Text):]
}

func messageStyle(el *render.Element) lipgloss.Style {
	switch {
	case el.HasClass(string(render.MessageError)):
		return errorStyle
	case el.HasClass(string(render.MessageSuccess)):
		return successStyle
	}
	return infoStyle
}
