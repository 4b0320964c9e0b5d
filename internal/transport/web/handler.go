// Package web serves the browser front-end: one page holding the entry
// fields and the display region, plus form actions that drive it.
package web

import (
	"bytes"
	"context"
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/heartmarshall/wordtree/internal/display"
	"github.com/heartmarshall/wordtree/internal/domain"
	"github.com/heartmarshall/wordtree/internal/render"
	"github.com/heartmarshall/wordtree/internal/service/lookup"
	"github.com/heartmarshall/wordtree/internal/transport/middleware"
)

// FragmentHeader marks a request that wants the region fragment back
// instead of a redirect to the page.
const FragmentHeader = "X-Wordtree-Fragment"

// TargetField is the form field carrying the clicked element id.
const TargetField = "target"

// maxFormBytes bounds action request bodies.
const maxFormBytes = 64 << 10

type lookupService interface {
	Lookup(ctx context.Context, input lookup.LookupInput) (lookup.Result, error)
	Add(ctx context.Context, input lookup.WordInput) (lookup.Result, error)
	Update(ctx context.Context, input lookup.WordInput) (lookup.Result, error)
	Click(ctx context.Context, id string) ([]lookup.SpeakRequest, error)
	Speak(ctx context.Context, text string) (string, error)
	Region() *display.Region
}

// Handler serves the page, the region fragment and the form actions.
type Handler struct {
	svc lookupService
	log *slog.Logger
}

// NewHandler creates a Handler.
func NewHandler(svc lookupService, logger *slog.Logger) *Handler {
	return &Handler{svc: svc, log: logger.With("handler", "web")}
}

// Register mounts the routes on mux. limit wraps the POST actions.
func (h *Handler) Register(mux *http.ServeMux, limit middleware.Middleware) {
	if limit == nil {
		limit = func(next http.Handler) http.Handler { return next }
	}
	mux.HandleFunc("GET /{$}", h.Page)
	mux.HandleFunc("GET /region", h.Fragment)
	mux.Handle("POST /actions/query", limit(http.HandlerFunc(h.Query)))
	mux.Handle("POST /actions/add", limit(http.HandlerFunc(h.Add)))
	mux.Handle("POST /actions/update", limit(http.HandlerFunc(h.Update)))
	mux.Handle("POST /actions/click", limit(http.HandlerFunc(h.Click)))
}

// Page renders the full page. word, meaning, search and notice query
// parameters prefill the form after a redirect.
func (h *Handler) Page(w http.ResponseWriter, r *http.Request) {
	region, err := h.regionHTML()
	if err != nil {
		h.fail(w, r, err)
		return
	}

	q := r.URL.Query()
	var buf bytes.Buffer
	if err := renderPage(&buf, pageData{
		Word:    q.Get("word"),
		Meaning: q.Get("meaning"),
		Search:  q.Get("search"),
		Notice:  q.Get("notice"),
		Region:  template.HTML(region), //nolint:gosec // escaped by render.WriteHTML
	}); err != nil {
		h.fail(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

// Fragment writes the region alone.
func (h *Handler) Fragment(w http.ResponseWriter, r *http.Request) {
	h.writeFragment(w, r, http.StatusOK)
}

// Query looks up the submitted search word.
func (h *Handler) Query(w http.ResponseWriter, r *http.Request) {
	if !h.parseForm(w, r) {
		return
	}
	_, err := h.svc.Lookup(r.Context(), lookup.LookupInput{Word: r.PostForm.Get("search")})
	h.finish(w, r, err)
}

// Add stores the submitted pair.
func (h *Handler) Add(w http.ResponseWriter, r *http.Request) {
	if !h.parseForm(w, r) {
		return
	}
	_, err := h.svc.Add(r.Context(), wordInput(r))
	h.finish(w, r, err)
}

// Update replaces the meaning of the submitted word.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	if !h.parseForm(w, r) {
		return
	}
	_, err := h.svc.Update(r.Context(), wordInput(r))
	h.finish(w, r, err)
}

// Click dispatches a click on a region element. Speak intents it produces
// are synthesized here; a speech failure becomes a notice and never fails
// the click.
func (h *Handler) Click(w http.ResponseWriter, r *http.Request) {
	if !h.parseForm(w, r) {
		return
	}
	target := r.PostForm.Get(TargetField)

	reqs, err := h.svc.Click(r.Context(), target)
	if errors.Is(err, display.ErrUnknownTarget) {
		http.Error(w, "unknown target", http.StatusNotFound)
		return
	}
	if err != nil {
		h.fail(w, r, err)
		return
	}

	var notice string
	for _, req := range reqs {
		if _, err := h.svc.Speak(r.Context(), req.Text); err != nil {
			h.log.WarnContext(r.Context(), "speak intent failed",
				slog.String("text", req.Text),
				slog.String("error", err.Error()),
			)
			notice = "Speech unavailable"
		}
	}

	if wantsFragment(r) {
		h.writeFragment(w, r, http.StatusOK)
		return
	}
	h.redirect(w, r, notice)
}

func (h *Handler) parseForm(w http.ResponseWriter, r *http.Request) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return false
	}
	return true
}

// finish answers an action. A validation error leaves the region untouched
// and surfaces the prompt.
func (h *Handler) finish(w http.ResponseWriter, r *http.Request, err error) {
	prompt := domain.UserPrompt(err)
	if err != nil && prompt == "" {
		h.fail(w, r, err)
		return
	}

	if wantsFragment(r) {
		if prompt != "" {
			http.Error(w, prompt, http.StatusUnprocessableEntity)
			return
		}
		h.writeFragment(w, r, http.StatusOK)
		return
	}
	h.redirect(w, r, prompt)
}

func (h *Handler) redirect(w http.ResponseWriter, r *http.Request, notice string) {
	q := url.Values{}
	for _, k := range []string{"word", "meaning", "search"} {
		if v := r.PostForm.Get(k); v != "" {
			q.Set(k, v)
		}
	}
	if notice != "" {
		q.Set("notice", notice)
	}
	loc := "/"
	if len(q) > 0 {
		loc += "?" + q.Encode()
	}
	http.Redirect(w, r, loc, http.StatusSeeOther)
}

func (h *Handler) writeFragment(w http.ResponseWriter, r *http.Request, status int) {
	region, err := h.regionHTML()
	if err != nil {
		h.fail(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(region))
}

func (h *Handler) regionHTML() (string, error) {
	var (
		out string
		err error
	)
	h.svc.Region().View(func(elems []*render.Element) {
		out, err = render.HTML(elems, render.HTMLOptions{ActionName: TargetField})
	})
	return out, err
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	h.log.ErrorContext(r.Context(), "web request failed",
		slog.String("path", r.URL.Path),
		slog.String("error", err.Error()),
	)
	http.Error(w, "internal server error", http.StatusInternalServerError)
}

func wordInput(r *http.Request) lookup.WordInput {
	return lookup.WordInput{Word: r.PostForm.Get("word"), Meaning: r.PostForm.Get("meaning")}
}

func wantsFragment(r *http.Request) bool {
	return r.Header.Get(FragmentHeader) != ""
}
