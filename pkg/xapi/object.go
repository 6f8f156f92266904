package xapi

import (
	"encoding/json"

	dErrors "xapi/pkg/domain-errors"
)

func (*Activity) statementObject()     {}
func (*StatementRef) statementObject() {}
func (*SubStatement) statementObject() {}

// nesting says whether a SubStatement is admitted at the position being
// decoded.
type nesting bool

const (
	allowSubStatement  nesting = true
	rejectSubStatement nesting = false
)

// decodeObject dispatches on objectType. A missing objectType means
// Activity. Inside a SubStatement the discriminator is checked before any
// nested decoding so a second level of nesting is never materialized.
func decodeObject(raw json.RawMessage, n nesting) (StatementObject, error) {
	f, err := readFields(raw)
	if err != nil {
		return nil, err
	}
	typ, _, err := f.str("objectType")
	if err != nil {
		return nil, err
	}
	switch ObjectType(typ) {
	case "", ObjectTypeActivity:
		return decodeActivityFields(f)
	case ObjectTypeStatementRef:
		return decodeStatementRefFields(f)
	case ObjectTypeSubStatement:
		if n == rejectSubStatement {
			return nil, errNestedSubStatement("objectType")
		}
		return decodeSubStatementFields(f)
	default:
		return nil, dErrors.UnsupportedType("objectType", typ)
	}
}

func errNestedSubStatement(field string) *dErrors.Error {
	return &dErrors.Error{
		Code:    dErrors.CodeInvalidNesting,
		Message: "a SubStatement cannot contain another SubStatement",
		Field:   field,
	}
}
