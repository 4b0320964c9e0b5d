// Package collapse implements expand/collapse behavior for rendered trees.
// Handlers are delegated through the display region, so elements added by
// later renders are covered without re-binding per element.
package collapse

import (
	"log/slog"

	"github.com/heartmarshall/wordtree/internal/display"
	"github.com/heartmarshall/wordtree/internal/render"
)

// Controller toggles tree nodes and sections inside a display region.
type Controller struct {
	log *slog.Logger
}

// New creates a Controller.
func New(logger *slog.Logger) *Controller {
	return &Controller{log: logger.With("component", "collapse")}
}

// Bind installs the node and section toggle handlers on the region,
// replacing any previously bound ones. Calling Bind repeatedly never
// accumulates handlers.
func (c *Controller) Bind(r *display.Region) {
	r.Off(render.ClassToggler)
	r.Off(render.ClassSectionToggler)
	r.On(render.ClassToggler, c.toggleNode)
	r.On(render.ClassSectionToggler, c.toggleSection)
}

func (c *Controller) toggleNode(ev *display.Event, el *render.Element) {
	ev.StopPropagation()

	node := ev.Closest(el, render.ClassTreeNode)
	if node == nil || node.Child("ul") == nil {
		return
	}

	collapsed := node.ToggleClass(render.ClassCollapsed)
	el.Text = glyph(collapsed)
	c.log.Debug("node toggled", slog.String("id", node.ID), slog.Bool("collapsed", collapsed))
}

func (c *Controller) toggleSection(ev *display.Event, el *render.Element) {
	ev.StopPropagation()

	section := ev.Closest(el, render.ClassTreeSection)
	if section == nil {
		return
	}

	collapsed := section.ToggleClass(render.ClassCollapsed)
	el.Text = glyph(collapsed)

	if collapsed {
		for _, n := range section.FindAll(render.ClassTreeNode) {
			if n.Child("ul") != nil {
				n.AddClass(render.ClassCollapsed)
			}
		}
		for _, t := range section.FindAll(render.ClassToggler) {
			t.Text = render.GlyphCollapsed
		}
	}
	c.log.Debug("section toggled", slog.String("id", section.ID), slog.Bool("collapsed", collapsed))
}

func glyph(collapsed bool) string {
	if collapsed {
		return render.GlyphCollapsed
	}
	return render.GlyphExpanded
}
