package xapi

import (
	"bytes"
	"encoding/json"
	"time"

	"xapi/pkg/domain"
	dErrors "xapi/pkg/domain-errors"
)

type statementWire struct {
	ID          string          `json:"id"`
	Actor       Actor           `json:"actor"`
	Verb        *Verb           `json:"verb"`
	Object      StatementObject `json:"object"`
	Result      *Result         `json:"result,omitempty"`
	Context     *Context        `json:"context,omitempty"`
	Timestamp   string          `json:"timestamp,omitempty"`
	Stored      string          `json:"stored,omitempty"`
	Authority   Actor           `json:"authority,omitempty"`
	Attachments []*Attachment   `json:"attachments,omitempty"`
}

func (s *Statement) MarshalJSON() ([]byte, error) {
	return marshal(statementWire{
		ID:          s.id.String(),
		Actor:       s.actor,
		Verb:        s.verb,
		Object:      s.object,
		Result:      s.result,
		Context:     s.context,
		Timestamp:   formatTimestamp(s.timestamp),
		Stored:      formatTimestamp(s.stored.Load()),
		Authority:   s.authority,
		Attachments: s.attachments,
	})
}

// ToJSON encodes the Statement, indented when pretty is set.
func (s *Statement) ToJSON(pretty bool) (string, error) {
	return marshalString(s, pretty)
}

// StatementFromJSON decodes one Statement. A missing id is replaced with a
// fresh one; a present stored timestamp is carried over.
//
// Errors: CodeParse for malformed JSON; CodeMissingField naming actor, verb
// or object when one is absent; CodeUnsupportedType, CodeInvalidNesting,
// CodeFormat and CodeValidation for the nested failures they describe.
func StatementFromJSON(data string) (*Statement, error) {
	return decodeStatementBytes([]byte(data))
}

func decodeStatementBytes(data []byte) (*Statement, error) {
	if err := checkSyntax(data); err != nil {
		return nil, err
	}
	return decodeStatement(data)
}

// core holds the fields a Statement shares with a SubStatement.
type core struct {
	actor       Actor
	verb        *Verb
	object      StatementObject
	result      *Result
	context     *Context
	timestamp   *time.Time
	attachments []*Attachment
}

func decodeCore(f fields, n nesting) (core, error) {
	var c core
	for _, key := range []string{"actor", "verb", "object"} {
		if !f.has(key) {
			return c, dErrors.MissingField(key)
		}
	}

	var err error
	if c.actor, err = decodeActor(f["actor"]); err != nil {
		return c, dErrors.AtPath(err, "actor")
	}
	if c.verb, err = decodeVerb(f["verb"]); err != nil {
		return c, dErrors.AtPath(err, "verb")
	}
	if c.object, err = decodeObject(f["object"], n); err != nil {
		return c, dErrors.AtPath(err, "object")
	}
	if r, ok := f.raw("result"); ok {
		if c.result, err = decodeResult(r); err != nil {
			return c, dErrors.AtPath(err, "result")
		}
	}
	if r, ok := f.raw("context"); ok {
		if c.context, err = decodeContext(r); err != nil {
			return c, dErrors.AtPath(err, "context")
		}
	}
	if c.timestamp, err = f.timestamp("timestamp"); err != nil {
		return c, err
	}
	if c.attachments, err = decodeList(f, "attachments", decodeAttachment); err != nil {
		return c, err
	}
	return c, nil
}

func decodeStatement(raw json.RawMessage) (*Statement, error) {
	f, err := readFields(raw)
	if err != nil {
		return nil, err
	}
	c, err := decodeCore(f, allowSubStatement)
	if err != nil {
		return nil, err
	}

	b := NewStatementBuilder(c.actor, c.verb, c.object).
		WithResult(c.result).
		WithContext(c.context).
		AddAttachment(c.attachments...)
	b.timestamp = c.timestamp

	idStr, ok, err := f.str("id")
	if err != nil {
		return nil, err
	}
	if ok {
		id, err := domain.ParseStatementID(idStr)
		if err != nil {
			return nil, dErrors.AtPath(err, "id")
		}
		b.WithID(id)
	}
	if r, ok := f.raw("authority"); ok {
		a, err := decodeActor(r)
		if err != nil {
			return nil, dErrors.AtPath(err, "authority")
		}
		b.WithAuthority(a)
	}
	stored, err := f.timestamp("stored")
	if err != nil {
		return nil, err
	}

	s, err := b.Build()
	if err != nil {
		return nil, err
	}
	if stored != nil {
		s.stored.Store(stored)
	}
	return s, nil
}

// MarshalStatements encodes a batch as a JSON array.
func MarshalStatements(statements []*Statement) ([]byte, error) {
	if statements == nil {
		statements = []*Statement{}
	}
	data, err := marshal(statements)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to encode statements")
	}
	return data, nil
}

// UnmarshalStatements decodes a JSON array of Statements. A single
// Statement object is accepted as a batch of one. Element errors are
// reported at "[i]".
func UnmarshalStatements(data []byte) ([]*Statement, error) {
	if err := checkSyntax(data); err != nil {
		return nil, err
	}
	if !isArray(data) {
		s, err := decodeStatement(data)
		if err != nil {
			return nil, err
		}
		return []*Statement{s}, nil
	}
	return decodeList(fields{"": data}, "", decodeStatement)
}

// StatementResult is one page of a statement query: the Statements and the
// IRL of the next page. More may be relative to the store's base URL and
// is empty on the last page.
type StatementResult struct {
	statements []*Statement
	more       string
}

func NewStatementResult(statements []*Statement, more string) *StatementResult {
	out := make([]*Statement, len(statements))
	copy(out, statements)
	return &StatementResult{statements: out, more: more}
}

func (r *StatementResult) Statements() []*Statement {
	out := make([]*Statement, len(r.statements))
	copy(out, r.statements)
	return out
}

func (r *StatementResult) More() string {
	return r.more
}

// HasMore reports whether another page exists.
func (r *StatementResult) HasMore() bool {
	return r.more != ""
}

type statementResultWire struct {
	Statements []*Statement `json:"statements"`
	More       string       `json:"more,omitempty"`
}

func (r *StatementResult) MarshalJSON() ([]byte, error) {
	return marshal(statementResultWire{Statements: r.statements, More: r.more})
}

// StatementResultFromJSON decodes a statement query page.
//
// Errors: CodeParse for malformed JSON, CodeMissingField when statements is
// absent, and any Statement decode error at statements[i].
func StatementResultFromJSON(data []byte) (*StatementResult, error) {
	if err := checkSyntax(data); err != nil {
		return nil, err
	}
	f, err := readFields(bytes.TrimSpace(data))
	if err != nil {
		return nil, err
	}
	if !f.has("statements") {
		return nil, dErrors.MissingField("statements")
	}
	statements, err := decodeList(f, "statements", decodeStatement)
	if err != nil {
		return nil, err
	}
	more, _, err := f.str("more")
	if err != nil {
		return nil, err
	}
	return &StatementResult{statements: statements, more: more}, nil
}
