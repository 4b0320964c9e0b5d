package lookup

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/heartmarshall/wordtree/internal/collapse"
	"github.com/heartmarshall/wordtree/internal/display"
	"github.com/heartmarshall/wordtree/internal/domain"
	"github.com/heartmarshall/wordtree/internal/render"
)

// User-facing region messages.
const (
	MsgAdded         = "Word added"
	MsgAddFailed     = "Failed to add word"
	MsgUpdated       = "Word updated"
	MsgUpdateFailed  = "Failed to update word"
	MsgQueryFailed   = "Query failed"
	MsgParseFailed   = "Failed to parse response: "
	MsgWordNotFound  = "Word not found"
	PromptWordAndDef = "Please enter a word and its meaning"
	PromptLookup     = "Please enter a word to look up"
)

type wordStore interface {
	AddWord(ctx context.Context, word, meaning string) error
	UpdateWord(ctx context.Context, word, meaning string) error
	QueryWord(ctx context.Context, word string) (*domain.QueryResult, error)
}

type speaker interface {
	Synthesize(ctx context.Context, text string) (*domain.Clip, error)
}

type clipSink interface {
	Save(ctx context.Context, c *domain.Clip) (string, error)
}

type recorder interface {
	Operation(op, outcome string, d time.Duration)
	Click(class string)
	Stale()
	Rendered()
}

// Service orchestrates lookups and mutations against the backend and owns
// every write to the display region.
type Service struct {
	store    wordStore
	speaker  speaker
	sink     clipSink
	region   *display.Region
	collapse *collapse.Controller
	metrics  recorder
	log      *slog.Logger

	seq      atomic.Uint64
	commitMu sync.Mutex
}

// NewService creates a lookup Service. speaker, sink and metrics may be nil.
func NewService(
	log *slog.Logger,
	store wordStore,
	region *display.Region,
	ctrl *collapse.Controller,
	speaker speaker,
	sink clipSink,
	metrics recorder,
) *Service {
	if metrics == nil {
		metrics = nopRecorder{}
	}
	return &Service{
		store:    store,
		speaker:  speaker,
		sink:     sink,
		region:   region,
		collapse: ctrl,
		metrics:  metrics,
		log:      log.With("service", "lookup"),
	}
}

// Region returns the display region the service renders into.
func (s *Service) Region() *display.Region { return s.region }

// ticket issues the next sequence number. Only the holder of the latest
// ticket may write the region.
func (s *Service) ticket() uint64 { return s.seq.Add(1) }

// commit replaces the region with elems when t is still the latest ticket.
// It reports whether the region was written.
func (s *Service) commit(ctx context.Context, t uint64, op string, elems ...*render.Element) bool {
	s.commitMu.Lock()
	defer s.commitMu.Unlock()

	if latest := s.seq.Load(); t != latest {
		s.metrics.Stale()
		s.log.DebugContext(ctx, "stale response discarded",
			slog.String("op", op),
			slog.Uint64("ticket", t),
			slog.Uint64("latest", latest),
		)
		return false
	}

	s.region.Replace(elems...)
	s.bind()
	s.metrics.Rendered()
	return true
}

// bind unconditionally re-installs every delegated handler on the region.
func (s *Service) bind() {
	s.collapse.Bind(s.region)
	s.region.Off(render.ClassWord)
	s.region.On(render.ClassWord, speakOnClick)
}

type nopRecorder struct{}

func (nopRecorder) Operation(string, string, time.Duration) {}
func (nopRecorder) Click(string)                            {}
func (nopRecorder) Stale()                                  {}
func (nopRecorder) Rendered()                               {}
