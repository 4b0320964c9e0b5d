// Package display owns the single live display region: the rendered
// elements currently shown and the delegated click handlers bound to them.
package display

import (
	"errors"
	"fmt"
	"sync"

	"github.com/heartmarshall/wordtree/internal/render"
)

// ErrUnknownTarget is returned by Click when no element carries the id.
var ErrUnknownTarget = errors.New("display: unknown click target")

// Handler reacts to a click delegated to an element carrying the class it
// was bound for. el is that element; ev.Target is the element clicked.
// Handlers run with the region locked and must not call Region methods.
type Handler func(ev *Event, el *render.Element)

// Event is a click travelling from its target towards the region top.
type Event struct {
	Target  *render.Element
	region  *Region
	stopped bool
	emitted []any
}

// StopPropagation prevents handlers on enclosing elements from running.
func (ev *Event) StopPropagation() { ev.stopped = true }

// Emit records an intent for the caller of Click to act on.
func (ev *Event) Emit(v any) { ev.emitted = append(ev.emitted, v) }

// Closest returns the nearest element, starting at el itself, that carries class.
func (ev *Event) Closest(el *render.Element, class string) *render.Element {
	for cur := el; cur != nil; cur = ev.region.parents[cur] {
		if cur.HasClass(class) {
			return cur
		}
	}
	return nil
}

type binding struct {
	class   string
	handler Handler
}

// Region is the display region. All methods are safe for concurrent use.
type Region struct {
	mu         sync.Mutex
	elems      []*render.Element
	byID       map[string]*render.Element
	parents    map[*render.Element]*render.Element
	bindings   []binding
	generation uint64
}

// NewRegion returns an empty region.
func NewRegion() *Region {
	return &Region{
		byID:    map[string]*render.Element{},
		parents: map[*render.Element]*render.Element{},
	}
}

// Replace clears the region once and appends the elements in order.
func (r *Region) Replace(elems ...*render.Element) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.elems = nil
	r.byID = map[string]*render.Element{}
	r.parents = map[*render.Element]*render.Element{}
	r.generation++

	for _, e := range elems {
		r.elems = append(r.elems, e)
		r.index(e, nil)
	}
}

func (r *Region) index(e, parent *render.Element) {
	if parent != nil {
		r.parents[e] = parent
	}
	if e.ID != "" {
		r.byID[e.ID] = e
	}
	for _, c := range e.Children {
		r.index(c, e)
	}
}

// Generation counts how many times the region has been cleared.
func (r *Region) Generation() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.generation
}

// On binds a delegated handler for clicks landing on or inside elements
// that carry class.
func (r *Region) On(class string, h Handler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.bindings = append(r.bindings, binding{class: class, handler: h})
}

// Off removes every handler bound for class.
func (r *Region) Off(class string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	kept := r.bindings[:0]
	for _, b := range r.bindings {
		if b.class != class {
			kept = append(kept, b)
		}
	}
	r.bindings = kept
}

// HandlerCount returns how many handlers are bound for class.
func (r *Region) HandlerCount(class string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, b := range r.bindings {
		if b.class == class {
			n++
		}
	}
	return n
}

// Click dispatches a click on the element with the given id. Handlers run
// for each element on the path from the target to the region top, in that
// order, until one stops propagation. It returns the intents they emitted.
func (r *Region) Click(id string) ([]any, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	target, ok := r.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTarget, id)
	}

	ev := &Event{Target: target, region: r}
	for cur := target; cur != nil && !ev.stopped; cur = r.parents[cur] {
		for _, b := range r.bindings {
			if cur.HasClass(b.class) {
				b.handler(ev, cur)
			}
		}
	}
	return ev.emitted, nil
}

// View calls fn with the current elements while holding the region lock.
// fn must not retain or mutate them.
func (r *Region) View(fn func(elems []*render.Element)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fn(r.elems)
}

// Snapshot returns a deep copy of the current elements.
func (r *Region) Snapshot() []*render.Element {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*render.Element, len(r.elems))
	for i, e := range r.elems {
		out[i] = e.Clone()
	}
	return out
}
