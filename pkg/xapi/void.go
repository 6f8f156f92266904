package xapi

import (
	"time"

	"xapi/pkg/domain"
	dErrors "xapi/pkg/domain-errors"
)

// VerbVoided is the ADL verb that retracts an earlier Statement.
const VerbVoided = "http://adlnet.gov/expapi/verbs/voided"

// NewVoidingStatement builds a Statement by actor that voids target.
//
// Errors: CodeValidation for a nil target or a missing actor.
func NewVoidingStatement(actor Actor, target domain.StatementID) (*Statement, error) {
	b, err := voidingBuilder(actor, target)
	if err != nil {
		return nil, err
	}
	return b.Build()
}

// NewVoidingStatementAt is NewVoidingStatement with the timestamp set to at.
func NewVoidingStatementAt(actor Actor, target domain.StatementID, at time.Time) (*Statement, error) {
	b, err := voidingBuilder(actor, target)
	if err != nil {
		return nil, err
	}
	return b.WithTimestamp(at).Build()
}

func voidingBuilder(actor Actor, target domain.StatementID) (*StatementBuilder, error) {
	if target.IsNil() {
		return nil, dErrors.Validation("object.id", "voided statement id cannot be the nil UUID")
	}
	verb, err := NewVerbBuilder(VerbVoided).AddDisplay("en-US", "voided").Build()
	if err != nil {
		return nil, err
	}
	return NewStatementBuilder(actor, verb, NewStatementRef(target)), nil
}

// IsVoiding reports whether s voids another Statement, returning its id.
func IsVoiding(s *Statement) (domain.StatementID, bool) {
	if s.verb.id != VerbVoided {
		return domain.StatementID{}, false
	}
	ref, ok := s.object.(*StatementRef)
	if !ok {
		return domain.StatementID{}, false
	}
	return ref.id, true
}
