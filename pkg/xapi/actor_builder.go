package xapi

import dErrors "xapi/pkg/domain-errors"

// AgentBuilder finishes an Agent with one identifier. Each With method is
// terminal.
type AgentBuilder struct {
	name string
}

func NewAgentBuilder(name string) *AgentBuilder {
	return &AgentBuilder{name: name}
}

func (b *AgentBuilder) WithMailBox(addr string) (*Agent, error) {
	id, err := NewMailBox(addr)
	if err != nil {
		return nil, dErrors.AtPath(err, "mbox")
	}
	return NewAgent(b.name, id)
}

func (b *AgentBuilder) WithHashedMailBox(sha1sum string) (*Agent, error) {
	id, err := NewHashedMailBox(sha1sum)
	if err != nil {
		return nil, dErrors.AtPath(err, "mbox_sha1sum")
	}
	return NewAgent(b.name, id)
}

// WithHashedMailBoxFromEmail hashes addr into an mbox_sha1sum.
func (b *AgentBuilder) WithHashedMailBoxFromEmail(addr string) (*Agent, error) {
	id, err := HashedMailBoxFromEmail(addr)
	if err != nil {
		return nil, dErrors.AtPath(err, "mbox_sha1sum")
	}
	return NewAgent(b.name, id)
}

func (b *AgentBuilder) WithOpenID(uri string) (*Agent, error) {
	id, err := NewOpenID(uri)
	if err != nil {
		return nil, dErrors.AtPath(err, "openid")
	}
	return NewAgent(b.name, id)
}

func (b *AgentBuilder) WithAccount(name, homePage string) (*Agent, error) {
	id, err := NewAccount(name, homePage)
	if err != nil {
		return nil, dErrors.AtPath(err, "account")
	}
	return NewAgent(b.name, id)
}

// WithIdentifier finishes with an already constructed identifier.
//
// Errors: returns CodeValidation for a zero-value identifier.
func (b *AgentBuilder) WithIdentifier(id Identifier) (*Agent, error) {
	return NewAgent(b.name, id)
}

// Anonymous finishes an Agent that carries no identifier.
func (b *AgentBuilder) Anonymous() *Agent {
	return &Agent{name: b.name}
}

// GroupBuilder accumulates members, then finishes as an anonymous Group
// (AsAnonymous) or an identified one (any With method).
type GroupBuilder struct {
	name    string
	members []*Agent
}

func NewGroupBuilder(name string) *GroupBuilder {
	return &GroupBuilder{name: name}
}

func (b *GroupBuilder) Add(agent *Agent) *GroupBuilder {
	b.members = append(b.members, agent)
	return b
}

func (b *GroupBuilder) AddRange(agents ...*Agent) *GroupBuilder {
	b.members = append(b.members, agents...)
	return b
}

// AsAnonymous finishes a Group with no identifier.
//
// Errors: returns CodeValidation when no agents were added.
func (b *GroupBuilder) AsAnonymous() (*Group, error) {
	return NewAnonymousGroup(b.name, b.members)
}

func (b *GroupBuilder) WithMailBox(addr string) (*Group, error) {
	id, err := NewMailBox(addr)
	if err != nil {
		return nil, dErrors.AtPath(err, "mbox")
	}
	return b.WithIdentifier(id)
}

func (b *GroupBuilder) WithHashedMailBox(sha1sum string) (*Group, error) {
	id, err := NewHashedMailBox(sha1sum)
	if err != nil {
		return nil, dErrors.AtPath(err, "mbox_sha1sum")
	}
	return b.WithIdentifier(id)
}

func (b *GroupBuilder) WithHashedMailBoxFromEmail(addr string) (*Group, error) {
	id, err := HashedMailBoxFromEmail(addr)
	if err != nil {
		return nil, dErrors.AtPath(err, "mbox_sha1sum")
	}
	return b.WithIdentifier(id)
}

func (b *GroupBuilder) WithOpenID(uri string) (*Group, error) {
	id, err := NewOpenID(uri)
	if err != nil {
		return nil, dErrors.AtPath(err, "openid")
	}
	return b.WithIdentifier(id)
}

func (b *GroupBuilder) WithAccount(name, homePage string) (*Group, error) {
	id, err := NewAccount(name, homePage)
	if err != nil {
		return nil, dErrors.AtPath(err, "account")
	}
	return b.WithIdentifier(id)
}

// WithIdentifier finishes an identified Group with the accumulated members.
func (b *GroupBuilder) WithIdentifier(id Identifier) (*Group, error) {
	return NewIdentifiedGroup(b.name, id, b.members)
}
