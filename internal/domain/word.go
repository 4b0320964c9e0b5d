package domain

// Role places a rendered word relative to the queried word.
type Role string

const (
	RoleRoot   Role = "root"
	RoleParent Role = "parent"
	RoleChild  Role = "child"
)

func (r Role) String() string { return string(r) }

// WordNode is a word, its definition, and its parent/child relation lists
// as returned by the word-storage backend. Parents and Children are
// independently optional; nil and empty both mean "no relation".
//
// A WordNode is never mutated after decoding.
type WordNode struct {
	Word        string     `json:"word"                  yaml:"word"`
	Translation string     `json:"translation"           yaml:"translation"`
	USPhone     string     `json:"ushone,omitempty"      yaml:"us_phone,omitempty"`
	UKPhone     string     `json:"ukphone,omitempty"     yaml:"uk_phone,omitempty"`
	Parents     []WordNode `json:"parents,omitempty"     yaml:"parents,omitempty"`
	Children    []WordNode `json:"children,omitempty"    yaml:"children,omitempty"`
}

// Relations returns the relation list a branch of the given role recurses into:
// parents for RoleParent, children for RoleChild, nil otherwise.
func (n WordNode) Relations(role Role) []WordNode {
	switch role {
	case RoleParent:
		return n.Parents
	case RoleChild:
		return n.Children
	}
	return nil
}

// HasRelations reports whether a node rendered with the given role has
// anything to expand into.
func (n WordNode) HasRelations(role Role) bool {
	return len(n.Relations(role)) > 0
}

// QueryResult is the outcome of a backend lookup. A found word carries
// Node; a not-found answer sets NotFound and carries the backend's
// message, which may be empty.
type QueryResult struct {
	Node     *WordNode
	NotFound bool
	Message  string
}

// Clip is synthesized speech for a displayed word.
type Clip struct {
	Text        string
	ContentType string
	Data        []byte
}
