package domain

import (
	"github.com/google/uuid"

	dErrors "xapi/pkg/domain-errors"
)

// StatementID identifies a Statement. It is also the target of a
// StatementRef object and of a Context's "statement" property.
type StatementID uuid.UUID

// RegistrationID identifies the registration (attempt) a Statement belongs to.
type RegistrationID uuid.UUID

// NewStatementID generates a random StatementID.
func NewStatementID() StatementID {
	return StatementID(uuid.New())
}

// NewRegistrationID generates a random RegistrationID.
func NewRegistrationID() RegistrationID {
	return RegistrationID(uuid.New())
}

// ParseStatementID parses the canonical GUID form of a Statement id.
//
// Errors: returns CodeFormat when the value is empty, malformed or the nil UUID.
func ParseStatementID(s string) (StatementID, error) {
	u, err := parseUUID(s, "statement id")
	if err != nil {
		return StatementID{}, err
	}
	return StatementID(u), nil
}

// ParseRegistrationID parses the canonical GUID form of a registration.
//
// Errors: returns CodeFormat when the value is empty, malformed or the nil UUID.
func ParseRegistrationID(s string) (RegistrationID, error) {
	u, err := parseUUID(s, "registration id")
	if err != nil {
		return RegistrationID{}, err
	}
	return RegistrationID(u), nil
}

func (id StatementID) String() string {
	return uuid.UUID(id).String()
}

// IsNil reports whether the id is the zero value.
func (id StatementID) IsNil() bool {
	return uuid.UUID(id) == uuid.Nil
}

func (id RegistrationID) String() string {
	return uuid.UUID(id).String()
}

// IsNil reports whether the id is the zero value.
func (id RegistrationID) IsNil() bool {
	return uuid.UUID(id) == uuid.Nil
}

func parseUUID(s, what string) (uuid.UUID, error) {
	if s == "" {
		return uuid.Nil, dErrors.Newf(dErrors.CodeFormat, "%s cannot be empty", what)
	}
	u, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, dErrors.Newf(dErrors.CodeFormat, "invalid %s", what).WithValue(s)
	}
	if u == uuid.Nil {
		return uuid.Nil, dErrors.Newf(dErrors.CodeFormat, "%s cannot be the nil UUID", what).WithValue(s)
	}
	return u, nil
}
