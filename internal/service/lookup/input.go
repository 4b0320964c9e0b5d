package lookup

import (
	"strings"

	"github.com/heartmarshall/wordtree/internal/domain"
)

// WordInput holds the fields of the add and update forms.
type WordInput struct {
	Word    string
	Meaning string
}

// Validate checks both fields and collects all errors.
func (i WordInput) Validate() error {
	var errs []domain.FieldError
	if strings.TrimSpace(i.Word) == "" {
		errs = append(errs, domain.FieldError{Field: "word", Message: "required"})
	}
	if strings.TrimSpace(i.Meaning) == "" {
		errs = append(errs, domain.FieldError{Field: "meaning", Message: "required"})
	}
	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs, Prompt: PromptWordAndDef}
	}
	return nil
}

// LookupInput holds the search field.
type LookupInput struct {
	Word string
}

// Validate rejects empty and whitespace-only words.
func (i LookupInput) Validate() error {
	if strings.TrimSpace(i.Word) == "" {
		return &domain.ValidationError{
			Errors: []domain.FieldError{{Field: "word", Message: "required"}},
			Prompt: PromptLookup,
		}
	}
	return nil
}
