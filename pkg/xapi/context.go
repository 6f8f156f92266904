package xapi

import (
	"encoding/json"

	"xapi/pkg/domain"
	dErrors "xapi/pkg/domain-errors"
)

// Context carries the circumstances a Statement was made in.
type Context struct {
	registration *domain.RegistrationID
	instructor   Actor
	team         *Group
	activities   *ContextActivities
	revision     string
	platform     string
	language     string
	statement    *StatementRef
	extensions   Extensions
}

func (c *Context) Registration() (domain.RegistrationID, bool) { return deref(c.registration) }
func (c *Context) Instructor() Actor                           { return c.instructor }
func (c *Context) Team() *Group                                { return c.team }
func (c *Context) Revision() string                            { return c.revision }
func (c *Context) Platform() string                            { return c.platform }
func (c *Context) Language() string                            { return c.language }
func (c *Context) Statement() *StatementRef                    { return c.statement }
func (c *Context) Extensions() Extensions                      { return c.extensions }

// ContextActivities is nil unless at least one list is non-empty.
func (c *Context) ContextActivities() *ContextActivities {
	return c.activities
}

// ContextActivities groups related activities by relationship.
type ContextActivities struct {
	parent   []*Activity
	grouping []*Activity
	category []*Activity
	other    []*Activity
}

func (a *ContextActivities) Parent() []*Activity   { return copyActivities(a.parent) }
func (a *ContextActivities) Grouping() []*Activity { return copyActivities(a.grouping) }
func (a *ContextActivities) Category() []*Activity { return copyActivities(a.category) }
func (a *ContextActivities) Other() []*Activity    { return copyActivities(a.other) }

func copyActivities(in []*Activity) []*Activity {
	if len(in) == 0 {
		return nil
	}
	out := make([]*Activity, len(in))
	copy(out, in)
	return out
}

type contextWire struct {
	Registration      string                 `json:"registration,omitempty"`
	Instructor        Actor                  `json:"instructor,omitempty"`
	Team              *Group                 `json:"team,omitempty"`
	ContextActivities *contextActivitiesWire `json:"contextActivities,omitempty"`
	Revision          string                 `json:"revision,omitempty"`
	Platform          string                 `json:"platform,omitempty"`
	Language          string                 `json:"language,omitempty"`
	Statement         *StatementRef          `json:"statement,omitempty"`
	Extensions        Extensions             `json:"extensions,omitzero"`
}

type contextActivitiesWire struct {
	Parent   []*Activity `json:"parent,omitempty"`
	Grouping []*Activity `json:"grouping,omitempty"`
	Category []*Activity `json:"category,omitempty"`
	Other    []*Activity `json:"other,omitempty"`
}

func (c *Context) MarshalJSON() ([]byte, error) {
	w := contextWire{
		Instructor: c.instructor,
		Team:       c.team,
		Revision:   c.revision,
		Platform:   c.platform,
		Language:   c.language,
		Statement:  c.statement,
		Extensions: c.extensions,
	}
	if c.registration != nil {
		w.Registration = c.registration.String()
	}
	if a := c.activities; a != nil {
		w.ContextActivities = &contextActivitiesWire{
			Parent:   a.parent,
			Grouping: a.grouping,
			Category: a.category,
			Other:    a.other,
		}
	}
	return marshal(w)
}

// ContextBuilder accumulates a Context.
type ContextBuilder struct {
	registration *domain.RegistrationID
	instructor   Actor
	team         *Group
	parent       []*Activity
	grouping     []*Activity
	category     []*Activity
	other        []*Activity
	revision     string
	platform     string
	language     string
	statement    *StatementRef
	extensions   []ExtensionEntry
}

func NewContextBuilder() *ContextBuilder {
	return &ContextBuilder{}
}

func (b *ContextBuilder) WithRegistration(id domain.RegistrationID) *ContextBuilder {
	b.registration = &id
	return b
}

func (b *ContextBuilder) WithInstructor(a Actor) *ContextBuilder {
	b.instructor = a
	return b
}

func (b *ContextBuilder) WithTeam(g *Group) *ContextBuilder {
	b.team = g
	return b
}

func (b *ContextBuilder) AddParent(a ...*Activity) *ContextBuilder {
	b.parent = append(b.parent, a...)
	return b
}

func (b *ContextBuilder) AddGrouping(a ...*Activity) *ContextBuilder {
	b.grouping = append(b.grouping, a...)
	return b
}

func (b *ContextBuilder) AddCategory(a ...*Activity) *ContextBuilder {
	b.category = append(b.category, a...)
	return b
}

func (b *ContextBuilder) AddOther(a ...*Activity) *ContextBuilder {
	b.other = append(b.other, a...)
	return b
}

func (b *ContextBuilder) WithRevision(revision string) *ContextBuilder {
	b.revision = revision
	return b
}

func (b *ContextBuilder) WithPlatform(platform string) *ContextBuilder {
	b.platform = platform
	return b
}

func (b *ContextBuilder) WithLanguage(language string) *ContextBuilder {
	b.language = language
	return b
}

// WithStatementReference links the Statement to another by id.
func (b *ContextBuilder) WithStatementReference(id domain.StatementID) *ContextBuilder {
	b.statement = NewStatementRef(id)
	return b
}

// AddExtension adds one extension. value is JSON text.
func (b *ContextBuilder) AddExtension(key, value string) *ContextBuilder {
	b.extensions = append(b.extensions, Ext(key, value))
	return b
}

func (b *ContextBuilder) WithExtensions(x Extensions) *ContextBuilder {
	b.extensions = append(b.extensions, x.Entries()...)
	return b
}

// Build validates the context. ContextActivities is only materialized when
// one of its lists is non-empty. A typed-nil instructor counts as absent.
//
// Errors: CodeValidation for a nil activity in any list, CodeFormat or
// CodeValidation for malformed extensions.
func (b *ContextBuilder) Build() (*Context, error) {
	lists := []struct {
		key   string
		items []*Activity
	}{{"parent", b.parent}, {"grouping", b.grouping}, {"category", b.category}, {"other", b.other}}
	for _, l := range lists {
		for i, a := range l.items {
			if a == nil {
				return nil, dErrors.Validation("contextActivities."+indexPath(l.key, i), "context activity cannot be nil")
			}
		}
	}
	x, err := NewExtensions(b.extensions...)
	if err != nil {
		return nil, dErrors.AtPath(err, "extensions")
	}

	instructor := b.instructor
	if isNilActor(instructor) {
		instructor = nil
	}
	c := &Context{
		registration: copyPtr(b.registration),
		instructor:   instructor,
		team:         b.team,
		revision:     b.revision,
		platform:     b.platform,
		language:     b.language,
		statement:    b.statement,
		extensions:   x,
	}
	if len(b.parent)+len(b.grouping)+len(b.category)+len(b.other) > 0 {
		c.activities = &ContextActivities{
			parent:   copyActivities(b.parent),
			grouping: copyActivities(b.grouping),
			category: copyActivities(b.category),
			other:    copyActivities(b.other),
		}
	}
	return c, nil
}

func decodeContext(raw json.RawMessage) (*Context, error) {
	f, err := readFields(raw)
	if err != nil {
		return nil, err
	}
	b := NewContextBuilder()

	reg, ok, err := f.str("registration")
	if err != nil {
		return nil, err
	}
	if ok {
		id, err := domain.ParseRegistrationID(reg)
		if err != nil {
			return nil, dErrors.AtPath(err, "registration")
		}
		b.WithRegistration(id)
	}
	if r, ok := f.raw("instructor"); ok {
		a, err := decodeActor(r)
		if err != nil {
			return nil, dErrors.AtPath(err, "instructor")
		}
		b.WithInstructor(a)
	}
	if r, ok := f.raw("team"); ok {
		g, err := decodeGroup(r)
		if err != nil {
			return nil, dErrors.AtPath(err, "team")
		}
		b.WithTeam(g)
	}
	if ca, ok, err := f.object("contextActivities"); err != nil {
		return nil, err
	} else if ok {
		if err := decodeContextActivities(ca, b); err != nil {
			return nil, dErrors.AtPath(err, "contextActivities")
		}
	}
	for _, s := range []struct {
		key  string
		with func(string) *ContextBuilder
	}{{"revision", b.WithRevision}, {"platform", b.WithPlatform}, {"language", b.WithLanguage}} {
		v, _, err := f.str(s.key)
		if err != nil {
			return nil, err
		}
		s.with(v)
	}
	if r, ok := f.raw("statement"); ok {
		ref, err := decodeStatementRef(r)
		if err != nil {
			return nil, dErrors.AtPath(err, "statement")
		}
		b.statement = ref
	}
	if r, ok := f.raw("extensions"); ok {
		x, err := decodeExtensions(r)
		if err != nil {
			return nil, dErrors.AtPath(err, "extensions")
		}
		b.WithExtensions(x)
	}
	return b.Build()
}

// decodeContextActivities accepts each list either as an array or as a
// single Activity object.
func decodeContextActivities(f fields, b *ContextBuilder) error {
	for _, l := range []struct {
		key string
		add func(...*Activity) *ContextBuilder
	}{{"parent", b.AddParent}, {"grouping", b.AddGrouping}, {"category", b.AddCategory}, {"other", b.AddOther}} {
		r, ok := f.raw(l.key)
		if !ok {
			continue
		}
		if !isArray(r) {
			a, err := decodeActivity(r)
			if err != nil {
				return dErrors.AtPath(err, l.key)
			}
			l.add(a)
			continue
		}
		items, err := decodeList(f, l.key, decodeActivity)
		if err != nil {
			return err
		}
		l.add(items...)
	}
	return nil
}
