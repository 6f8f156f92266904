package xapi

import (
	"sync/atomic"
	"time"

	"xapi/pkg/domain"
	dErrors "xapi/pkg/domain-errors"
	"xapi/pkg/platform/sentinel"
)

// Statement is the root xAPI record. Every field is fixed at construction
// except stored, which the record store sets once after accepting it.
// Statements are safe for concurrent reads, including of Stored while
// SetStored runs.
type Statement struct {
	id          domain.StatementID
	actor       Actor
	verb        *Verb
	object      StatementObject
	result      *Result
	context     *Context
	timestamp   *time.Time
	authority   Actor
	attachments []*Attachment

	stored atomic.Pointer[time.Time]
}

func (s *Statement) ID() domain.StatementID       { return s.id }
func (s *Statement) Actor() Actor                 { return s.actor }
func (s *Statement) Verb() *Verb                  { return s.verb }
func (s *Statement) Object() StatementObject      { return s.object }
func (s *Statement) Result() *Result              { return s.result }
func (s *Statement) Context() *Context            { return s.context }
func (s *Statement) Timestamp() (time.Time, bool) { return deref(s.timestamp) }
func (s *Statement) Authority() Actor             { return s.authority }
func (s *Statement) Attachments() []*Attachment   { return copyAttachments(s.attachments) }

// Stored returns the time the record store accepted the Statement.
func (s *Statement) Stored() (time.Time, bool) {
	return deref(s.stored.Load())
}

// SetStored records the store's acceptance time. It succeeds once.
//
// Errors: CodeValidation for the zero time, CodeInvariantViolation wrapping
// sentinel.ErrAlreadyUsed when stored is already set.
func (s *Statement) SetStored(t time.Time) error {
	if t.IsZero() {
		return dErrors.Validation("stored", "stored timestamp cannot be zero")
	}
	t = t.Round(0).UTC()
	if !s.stored.CompareAndSwap(nil, &t) {
		return dErrors.Wrap(sentinel.ErrAlreadyUsed, dErrors.CodeInvariantViolation, "stored timestamp is already set").
			WithField("stored")
	}
	return nil
}

// StatementBuilder accumulates a Statement around its required actor, verb
// and object.
type StatementBuilder struct {
	id          *domain.StatementID
	actor       Actor
	verb        *Verb
	object      StatementObject
	result      *Result
	context     *Context
	timestamp   *time.Time
	authority   Actor
	attachments []*Attachment
}

func NewStatementBuilder(actor Actor, verb *Verb, object StatementObject) *StatementBuilder {
	return &StatementBuilder{actor: actor, verb: verb, object: object}
}

// WithID fixes the statement id. Without it Build generates one.
func (b *StatementBuilder) WithID(id domain.StatementID) *StatementBuilder {
	b.id = &id
	return b
}

func (b *StatementBuilder) WithResult(r *Result) *StatementBuilder {
	b.result = r
	return b
}

func (b *StatementBuilder) WithContext(c *Context) *StatementBuilder {
	b.context = c
	return b
}

func (b *StatementBuilder) WithTimestamp(t time.Time) *StatementBuilder {
	t = t.Round(0).UTC()
	b.timestamp = &t
	return b
}

func (b *StatementBuilder) WithAuthority(a Actor) *StatementBuilder {
	b.authority = a
	return b
}

func (b *StatementBuilder) AddAttachment(a ...*Attachment) *StatementBuilder {
	b.attachments = append(b.attachments, a...)
	return b
}

// Build validates the Statement. Each call without WithID yields a new id.
//
// Errors: CodeValidation when actor, verb or object is missing, when the
// id is nil or an attachment is nil.
func (b *StatementBuilder) Build() (*Statement, error) {
	if err := requireCore(b.actor, b.verb, b.object); err != nil {
		return nil, err
	}
	id := domain.NewStatementID()
	if b.id != nil {
		if b.id.IsNil() {
			return nil, dErrors.Validation("id", "statement id cannot be the nil UUID")
		}
		id = *b.id
	}
	attachments, err := checkAttachments(b.attachments)
	if err != nil {
		return nil, err
	}
	authority := b.authority
	if isNilActor(authority) {
		authority = nil
	}
	return &Statement{
		id:          id,
		actor:       b.actor,
		verb:        b.verb,
		object:      b.object,
		result:      b.result,
		context:     b.context,
		timestamp:   copyPtr(b.timestamp),
		authority:   authority,
		attachments: attachments,
	}, nil
}
