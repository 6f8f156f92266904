package domain

import (
	"net/url"
	"strings"
	"unicode"

	dErrors "xapi/pkg/domain-errors"
)

// IRI is an absolute internationalised resource identifier: verb ids,
// activity ids and types, extension keys, account home pages, OpenIDs.
// Invariant: the value parses as a URI and carries a scheme.
//
// Usage: construct via ParseIRI at trust boundaries; direct casting bypasses
// validation.
type IRI string

// ParseIRI validates s as an absolute IRI. The original spelling is kept so
// the wire value round-trips byte for byte.
//
// Errors: returns CodeFormat when the value is empty, relative, contains
// whitespace or control characters, or fails URI parsing.
func ParseIRI(s string) (IRI, error) {
	if s == "" {
		return "", dErrors.New(dErrors.CodeFormat, "IRI cannot be empty")
	}
	if strings.IndexFunc(s, func(r rune) bool { return unicode.IsSpace(r) || unicode.IsControl(r) }) >= 0 {
		return "", dErrors.New(dErrors.CodeFormat, "IRI contains whitespace or control characters").WithValue(s)
	}
	u, err := url.Parse(s)
	if err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeFormat, "malformed IRI").WithValue(s)
	}
	if !u.IsAbs() {
		return "", dErrors.New(dErrors.CodeFormat, "IRI must be absolute").WithValue(s)
	}
	return IRI(s), nil
}

// MustIRI is ParseIRI for literals known to be valid. It panics otherwise.
func MustIRI(s string) IRI {
	iri, err := ParseIRI(s)
	if err != nil {
		panic(err)
	}
	return iri
}

func (i IRI) String() string {
	return string(i)
}

// IsNil returns true if the IRI is empty.
func (i IRI) IsNil() bool {
	return i == ""
}
