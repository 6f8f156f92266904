package xapi

import (
	"encoding/json"

	"xapi/pkg/domain"
	dErrors "xapi/pkg/domain-errors"
)

// Verb is the action of a Statement.
type Verb struct {
	id      domain.IRI
	display LanguageMap
}

func (v *Verb) ID() domain.IRI {
	return v.id
}

// Display is empty when the verb carries no display names.
func (v *Verb) Display() LanguageMap {
	return v.display
}

type verbWire struct {
	ID      string      `json:"id"`
	Display LanguageMap `json:"display,omitzero"`
}

func (v *Verb) MarshalJSON() ([]byte, error) {
	return marshal(verbWire{ID: v.id.String(), Display: v.display})
}

// VerbBuilder accumulates a Verb.
type VerbBuilder struct {
	id      string
	display []LanguageEntry
}

func NewVerbBuilder(id string) *VerbBuilder {
	return &VerbBuilder{id: id}
}

func (b *VerbBuilder) AddDisplay(language, text string) *VerbBuilder {
	b.display = append(b.display, Lang(language, text))
	return b
}

func (b *VerbBuilder) WithDisplay(m LanguageMap) *VerbBuilder {
	b.display = append(b.display, m.entries...)
	return b
}

// Build validates the verb.
//
// Errors: CodeFormat when id is not an absolute IRI, CodeValidation for a
// duplicate display language.
func (b *VerbBuilder) Build() (*Verb, error) {
	id, err := domain.ParseIRI(b.id)
	if err != nil {
		return nil, dErrors.AtPath(err, "id")
	}
	display, err := NewLanguageMap(b.display...)
	if err != nil {
		return nil, dErrors.AtPath(err, "display")
	}
	return &Verb{id: id, display: display}, nil
}

func decodeVerb(raw json.RawMessage) (*Verb, error) {
	f, err := readFields(raw)
	if err != nil {
		return nil, err
	}
	id, err := f.requiredStr("id")
	if err != nil {
		return nil, err
	}
	b := NewVerbBuilder(id)
	if r, ok := f.raw("display"); ok {
		display, err := decodeLanguageMap(r)
		if err != nil {
			return nil, dErrors.AtPath(err, "display")
		}
		b.WithDisplay(display)
	}
	return b.Build()
}
