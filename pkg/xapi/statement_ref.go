package xapi

import (
	"encoding/json"

	"xapi/pkg/domain"
	dErrors "xapi/pkg/domain-errors"
)

// StatementRef points at another Statement by id. It is never dereferenced.
type StatementRef struct {
	id domain.StatementID
}

func NewStatementRef(id domain.StatementID) *StatementRef {
	return &StatementRef{id: id}
}

func (r *StatementRef) ObjectType() ObjectType {
	return ObjectTypeStatementRef
}

func (r *StatementRef) ID() domain.StatementID {
	return r.id
}

type statementRefWire struct {
	ObjectType ObjectType `json:"objectType"`
	ID         string     `json:"id"`
}

func (r *StatementRef) MarshalJSON() ([]byte, error) {
	return marshal(statementRefWire{ObjectType: ObjectTypeStatementRef, ID: r.id.String()})
}

func decodeStatementRefFields(f fields) (*StatementRef, error) {
	s, err := f.requiredStr("id")
	if err != nil {
		return nil, err
	}
	id, err := domain.ParseStatementID(s)
	if err != nil {
		return nil, dErrors.AtPath(err, "id")
	}
	return NewStatementRef(id), nil
}

// decodeStatementRef decodes a position that only admits a StatementRef,
// such as context.statement.
func decodeStatementRef(raw json.RawMessage) (*StatementRef, error) {
	f, err := readFields(raw)
	if err != nil {
		return nil, err
	}
	if err := expectObjectType(f, ObjectTypeStatementRef); err != nil {
		return nil, err
	}
	return decodeStatementRefFields(f)
}
