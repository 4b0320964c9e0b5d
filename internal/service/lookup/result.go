package lookup

import "github.com/heartmarshall/wordtree/internal/domain"

// Outcome classifies how an operation ended once it passed validation.
type Outcome string

const (
	OutcomeFound     Outcome = "found"
	OutcomeNotFound  Outcome = "not_found"
	OutcomeSaved     Outcome = "saved"
	OutcomeFailed    Outcome = "failed"
	OutcomeMalformed Outcome = "malformed"
	// OutcomeStale means a newer operation was issued before the response
	// arrived; the region was left untouched.
	OutcomeStale Outcome = "stale"
)

// Result describes a finished operation.
type Result struct {
	Outcome Outcome
	// Message is the text shown in the region, empty for a rendered tree.
	Message string
	Ticket  uint64
	// Node is the word that was rendered, set only for OutcomeFound.
	Node *domain.WordNode
}

// Rendered reports whether the operation wrote the region.
func (r Result) Rendered() bool { return r.Outcome != OutcomeStale }

// SpeakRequest asks a front-end to play the literal displayed word.
type SpeakRequest struct {
	Text string
}
