package wordapi

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/heartmarshall/wordtree/internal/domain"
)

// apiNode is the wire shape of a word and its relations. Word is a pointer
// so a missing field can be told apart from an empty one.
type apiNode struct {
	Word        *string   `json:"word"`
	Translation string    `json:"translation"`
	USPhone     string    `json:"ushone"`
	UKPhone     string    `json:"ukphone"`
	Parents     []apiNode `json:"parents"`
	Children    []apiNode `json:"children"`
}

type apiProbe struct {
	Message *string `json:"message"`
	Word    *string `json:"word"`
}

var errMissingWord = errors.New("missing word field")

// decodeQuery interprets a lookup body. A 404 answer is always not-found;
// a plain-text 404 body becomes the message. A message field without a word
// field is not-found even when the message is empty.
func decodeQuery(body []byte, notFoundStatus bool) (*domain.QueryResult, error) {
	trimmed := bytes.TrimSpace(body)

	switch {
	case len(trimmed) == 0 && !notFoundStatus:
		return nil, fmt.Errorf("%w: empty body", domain.ErrMalformedResponse)
	case len(trimmed) == 0, bytes.Equal(trimmed, []byte("null")):
		return &domain.QueryResult{NotFound: true}, nil
	}

	var probe apiProbe
	if err := json.Unmarshal(trimmed, &probe); err != nil {
		if notFoundStatus {
			return &domain.QueryResult{NotFound: true, Message: string(trimmed)}, nil
		}
		return nil, fmt.Errorf("%w: %w", domain.ErrMalformedResponse, err)
	}

	if probe.Message != nil && (probe.Word == nil || *probe.Message != "") {
		return &domain.QueryResult{NotFound: true, Message: *probe.Message}, nil
	}
	if notFoundStatus {
		return &domain.QueryResult{NotFound: true}, nil
	}

	var root apiNode
	if err := json.Unmarshal(trimmed, &root); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrMalformedResponse, err)
	}
	node, err := root.toDomain("$")
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrMalformedResponse, err)
	}
	return &domain.QueryResult{Node: &node}, nil
}

func (n apiNode) toDomain(path string) (domain.WordNode, error) {
	if n.Word == nil {
		return domain.WordNode{}, fmt.Errorf("%s: %w", path, errMissingWord)
	}

	out := domain.WordNode{
		Word:        *n.Word,
		Translation: n.Translation,
		USPhone:     n.USPhone,
		UKPhone:     n.UKPhone,
	}

	var err error
	if out.Parents, err = convertAll(n.Parents, path+".parents"); err != nil {
		return domain.WordNode{}, err
	}
	if out.Children, err = convertAll(n.Children, path+".children"); err != nil {
		return domain.WordNode{}, err
	}
	return out, nil
}

func convertAll(nodes []apiNode, path string) ([]domain.WordNode, error) {
	if len(nodes) == 0 {
		return nil, nil
	}
	out := make([]domain.WordNode, 0, len(nodes))
	for i, n := range nodes {
		d, err := n.toDomain(fmt.Sprintf("%s[%d]", path, i))
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}
