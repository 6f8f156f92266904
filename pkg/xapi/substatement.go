package xapi

import (
	"time"

	dErrors "xapi/pkg/domain-errors"
)

// SubStatement is a statement-shaped object nested one level inside a
// Statement. Its object is never another SubStatement.
type SubStatement struct {
	actor       Actor
	verb        *Verb
	object      StatementObject
	result      *Result
	context     *Context
	timestamp   *time.Time
	attachments []*Attachment
}

func (s *SubStatement) ObjectType() ObjectType {
	return ObjectTypeSubStatement
}

func (s *SubStatement) Actor() Actor                 { return s.actor }
func (s *SubStatement) Verb() *Verb                  { return s.verb }
func (s *SubStatement) Object() StatementObject      { return s.object }
func (s *SubStatement) Result() *Result              { return s.result }
func (s *SubStatement) Context() *Context            { return s.context }
func (s *SubStatement) Timestamp() (time.Time, bool) { return deref(s.timestamp) }
func (s *SubStatement) Attachments() []*Attachment   { return copyAttachments(s.attachments) }

type subStatementWire struct {
	ObjectType  ObjectType      `json:"objectType"`
	Actor       Actor           `json:"actor"`
	Verb        *Verb           `json:"verb"`
	Object      StatementObject `json:"object"`
	Result      *Result         `json:"result,omitempty"`
	Context     *Context        `json:"context,omitempty"`
	Timestamp   string          `json:"timestamp,omitempty"`
	Attachments []*Attachment   `json:"attachments,omitempty"`
}

func (s *SubStatement) MarshalJSON() ([]byte, error) {
	return marshal(subStatementWire{
		ObjectType:  ObjectTypeSubStatement,
		Actor:       s.actor,
		Verb:        s.verb,
		Object:      s.object,
		Result:      s.result,
		Context:     s.context,
		Timestamp:   formatTimestamp(s.timestamp),
		Attachments: s.attachments,
	})
}

// SubStatementBuilder accumulates a SubStatement around its required
// actor, verb and object.
type SubStatementBuilder struct {
	actor       Actor
	verb        *Verb
	object      StatementObject
	result      *Result
	context     *Context
	timestamp   *time.Time
	attachments []*Attachment
}

func NewSubStatementBuilder(actor Actor, verb *Verb, object StatementObject) *SubStatementBuilder {
	return &SubStatementBuilder{actor: actor, verb: verb, object: object}
}

func (b *SubStatementBuilder) WithResult(r *Result) *SubStatementBuilder {
	b.result = r
	return b
}

func (b *SubStatementBuilder) WithContext(c *Context) *SubStatementBuilder {
	b.context = c
	return b
}

func (b *SubStatementBuilder) WithTimestamp(t time.Time) *SubStatementBuilder {
	t = t.Round(0).UTC()
	b.timestamp = &t
	return b
}

func (b *SubStatementBuilder) AddAttachment(a ...*Attachment) *SubStatementBuilder {
	b.attachments = append(b.attachments, a...)
	return b
}

// Build validates the SubStatement.
//
// Errors: CodeInvalidNesting when the object is itself a SubStatement,
// CodeValidation when actor, verb or object is nil or an attachment is nil.
func (b *SubStatementBuilder) Build() (*SubStatement, error) {
	if err := requireCore(b.actor, b.verb, b.object); err != nil {
		return nil, err
	}
	if _, nested := b.object.(*SubStatement); nested {
		return nil, errNestedSubStatement("object")
	}
	attachments, err := checkAttachments(b.attachments)
	if err != nil {
		return nil, err
	}
	return &SubStatement{
		actor:       b.actor,
		verb:        b.verb,
		object:      b.object,
		result:      b.result,
		context:     b.context,
		timestamp:   copyPtr(b.timestamp),
		attachments: attachments,
	}, nil
}

// requireCore checks the three fields every statement needs. Typed nil
// pointers count as missing.
func requireCore(actor Actor, verb *Verb, object StatementObject) error {
	if isNilActor(actor) {
		return dErrors.Validation("actor", "actor is required")
	}
	if verb == nil {
		return dErrors.Validation("verb", "verb is required")
	}
	if isNilObject(object) {
		return dErrors.Validation("object", "object is required")
	}
	return nil
}

func isNilActor(a Actor) bool {
	switch v := a.(type) {
	case nil:
		return true
	case *Agent:
		return v == nil
	case *Group:
		return v == nil
	default:
		return false
	}
}

func isNilObject(o StatementObject) bool {
	switch v := o.(type) {
	case nil:
		return true
	case *Activity:
		return v == nil
	case *StatementRef:
		return v == nil
	case *SubStatement:
		return v == nil
	default:
		return false
	}
}

func checkAttachments(in []*Attachment) ([]*Attachment, error) {
	for i, a := range in {
		if a == nil {
			return nil, dErrors.Validation(indexPath("attachments", i), "attachment cannot be nil")
		}
	}
	return copyAttachments(in), nil
}

func copyAttachments(in []*Attachment) []*Attachment {
	if len(in) == 0 {
		return nil
	}
	out := make([]*Attachment, len(in))
	copy(out, in)
	return out
}

func decodeSubStatementFields(f fields) (*SubStatement, error) {
	core, err := decodeCore(f, rejectSubStatement)
	if err != nil {
		return nil, err
	}
	b := NewSubStatementBuilder(core.actor, core.verb, core.object)
	b.result, b.context, b.timestamp, b.attachments = core.result, core.context, core.timestamp, core.attachments
	return b.Build()
}
