package xapi

// ObjectType is the value of the "objectType" discriminator.
type ObjectType string

const (
	ObjectTypeAgent        ObjectType = "Agent"
	ObjectTypeGroup        ObjectType = "Group"
	ObjectTypeActivity     ObjectType = "Activity"
	ObjectTypeStatementRef ObjectType = "StatementRef"
	ObjectTypeSubStatement ObjectType = "SubStatement"
)

func (t ObjectType) String() string {
	return string(t)
}

// IsActor reports whether t names an Actor variant.
func (t ObjectType) IsActor() bool {
	return t == ObjectTypeAgent || t == ObjectTypeGroup
}

// IsStatementObject reports whether t names a StatementObject variant.
// Actors are also valid statement objects on the wire but are not
// supported as such by this package.
func (t ObjectType) IsStatementObject() bool {
	switch t {
	case ObjectTypeActivity, ObjectTypeStatementRef, ObjectTypeSubStatement:
		return true
	default:
		return false
	}
}
