package xapi

import (
	"encoding/json"

	dErrors "xapi/pkg/domain-errors"
)

// Actor is the party a Statement is about: an *Agent or a *Group.
type Actor interface {
	ObjectType() ObjectType
	Name() string
	// Identifier is nil for anonymous actors.
	Identifier() Identifier
	// ToJSON returns the compact wire form, as embedded in an "agent" query
	// parameter.
	ToJSON() (string, error)
	json.Marshaler
	actor()
}

// Agent is a single person or system.
type Agent struct {
	name       string
	identifier Identifier
}

// NewAgent returns an Agent. A nil identifier makes an anonymous Agent.
//
// Errors: returns CodeValidation for a zero-value identifier.
func NewAgent(name string, id Identifier) (*Agent, error) {
	if err := checkIdentifier(id); err != nil {
		return nil, err
	}
	return &Agent{name: name, identifier: id}, nil
}

func (a *Agent) ObjectType() ObjectType {
	return ObjectTypeAgent
}

func (a *Agent) Name() string {
	return a.name
}

func (a *Agent) Identifier() Identifier {
	return a.identifier
}

func (a *Agent) ToJSON() (string, error) {
	return marshalString(a, false)
}

func (a *Agent) MarshalJSON() ([]byte, error) {
	w := actorWire{ObjectType: ObjectTypeAgent, Name: a.name}
	flattenIdentifier(&w, a.identifier)
	return marshal(w)
}

// Group is a collection of Agents. An anonymous Group has no identifier
// and at least one member; an identified Group may omit members. Members,
// when present, are never empty.
type Group struct {
	name       string
	identifier Identifier
	members    []*Agent
}

// NewAnonymousGroup returns a Group identified only by its members.
//
// Errors: returns CodeValidation when members is empty or holds a nil Agent.
func NewAnonymousGroup(name string, members []*Agent) (*Group, error) {
	if len(members) == 0 {
		return nil, dErrors.Validation("member", "anonymous group requires at least one member")
	}
	m, err := copyMembers(members)
	if err != nil {
		return nil, err
	}
	return &Group{name: name, members: m}, nil
}

// NewIdentifiedGroup returns a Group carrying id. An empty members slice is
// stored as absent.
//
// Errors: returns CodeValidation when id is nil or members holds a nil Agent.
func NewIdentifiedGroup(name string, id Identifier, members []*Agent) (*Group, error) {
	if id == nil {
		return nil, dErrors.New(dErrors.CodeValidation, "identified group requires an identifier")
	}
	if err := checkIdentifier(id); err != nil {
		return nil, err
	}
	m, err := copyMembers(members)
	if err != nil {
		return nil, err
	}
	return &Group{name: name, identifier: id, members: m}, nil
}

func copyMembers(members []*Agent) ([]*Agent, error) {
	if len(members) == 0 {
		return nil, nil
	}
	out := make([]*Agent, len(members))
	for i, m := range members {
		if m == nil {
			return nil, dErrors.Validation(indexPath("member", i), "group member cannot be nil")
		}
		out[i] = m
	}
	return out, nil
}

func (g *Group) ObjectType() ObjectType {
	return ObjectTypeGroup
}

func (g *Group) Name() string {
	return g.name
}

func (g *Group) Identifier() Identifier {
	return g.identifier
}

// IsAnonymous reports whether the Group has no identifier.
func (g *Group) IsAnonymous() bool {
	return g.identifier == nil
}

// Members returns a copy of the member list; nil when absent.
func (g *Group) Members() []*Agent {
	if len(g.members) == 0 {
		return nil
	}
	out := make([]*Agent, len(g.members))
	copy(out, g.members)
	return out
}

func (g *Group) ToJSON() (string, error) {
	return marshalString(g, false)
}

func (g *Group) MarshalJSON() ([]byte, error) {
	w := actorWire{ObjectType: ObjectTypeGroup, Name: g.name, Member: g.members}
	flattenIdentifier(&w, g.identifier)
	return marshal(w)
}

func (*Agent) actor() {}
func (*Group) actor() {}

// actorWire is the shared wire shape of both actor variants. Field order is
// the encoded order.
type actorWire struct {
	ObjectType  ObjectType   `json:"objectType"`
	Name        string       `json:"name,omitempty"`
	Mbox        string       `json:"mbox,omitempty"`
	MboxSHA1Sum string       `json:"mbox_sha1sum,omitempty"`
	OpenID      string       `json:"openid,omitempty"`
	Account     *accountWire `json:"account,omitempty"`
	Member      []*Agent     `json:"member,omitempty"`
}

// ActorFromJSON decodes an Agent or Group.
//
// Errors: CodeParse for malformed JSON, CodeUnsupportedType for an unknown
// objectType, and the codes of the identifier and group invariants.
func ActorFromJSON(data []byte) (Actor, error) {
	if err := checkSyntax(data); err != nil {
		return nil, err
	}
	return decodeActor(data)
}

// decodeActor dispatches on objectType. A missing objectType means Agent.
func decodeActor(raw json.RawMessage) (Actor, error) {
	f, err := readFields(raw)
	if err != nil {
		return nil, err
	}
	typ, _, err := f.str("objectType")
	if err != nil {
		return nil, err
	}
	switch ObjectType(typ) {
	case "", ObjectTypeAgent:
		return decodeAgentFields(f)
	case ObjectTypeGroup:
		return decodeGroupFields(f)
	default:
		return nil, dErrors.UnsupportedType("objectType", typ)
	}
}

// decodeAgent decodes a position that only admits an Agent, such as a
// group member.
func decodeAgent(raw json.RawMessage) (*Agent, error) {
	f, err := readFields(raw)
	if err != nil {
		return nil, err
	}
	if err := expectObjectType(f, ObjectTypeAgent); err != nil {
		return nil, err
	}
	return decodeAgentFields(f)
}

// decodeGroup decodes a position that only admits a Group, such as a
// context team.
func decodeGroup(raw json.RawMessage) (*Group, error) {
	f, err := readFields(raw)
	if err != nil {
		return nil, err
	}
	if err := expectObjectType(f, ObjectTypeGroup); err != nil {
		return nil, err
	}
	return decodeGroupFields(f)
}

// expectObjectType accepts a missing discriminator or exactly want.
func expectObjectType(f fields, want ObjectType) error {
	typ, ok, err := f.str("objectType")
	if err != nil {
		return err
	}
	if ok && ObjectType(typ) != want {
		return dErrors.UnsupportedType("objectType", typ)
	}
	return nil
}

func decodeAgentFields(f fields) (*Agent, error) {
	name, _, err := f.str("name")
	if err != nil {
		return nil, err
	}
	id, err := decodeIdentifier(f)
	if err != nil {
		return nil, err
	}
	return NewAgent(name, id)
}

func decodeGroupFields(f fields) (*Group, error) {
	name, _, err := f.str("name")
	if err != nil {
		return nil, err
	}
	members, err := decodeList(f, "member", decodeAgent)
	if err != nil {
		return nil, err
	}
	b := NewGroupBuilder(name).AddRange(members...)
	id, err := decodeIdentifier(f)
	if err != nil {
		return nil, err
	}
	if id == nil {
		return b.AsAnonymous()
	}
	return b.WithIdentifier(id)
}
