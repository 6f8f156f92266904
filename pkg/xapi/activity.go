package xapi

import (
	"encoding/json"

	"xapi/pkg/domain"
	dErrors "xapi/pkg/domain-errors"
)

// StatementObject is the target of a Statement: *Activity, *StatementRef or
// *SubStatement. The set is closed.
type StatementObject interface {
	ObjectType() ObjectType
	json.Marshaler
	statementObject()
}

// Activity is a thing that was interacted with.
type Activity struct {
	id         domain.IRI
	definition *ActivityDefinition
}

func (a *Activity) ObjectType() ObjectType {
	return ObjectTypeActivity
}

func (a *Activity) ID() domain.IRI {
	return a.id
}

// Definition is nil when the activity carries no metadata.
func (a *Activity) Definition() *ActivityDefinition {
	return a.definition
}

// ActivityDefinition is optional activity metadata. Empty maps are absent.
type ActivityDefinition struct {
	name        LanguageMap
	description LanguageMap
	typ         domain.IRI
	moreInfo    domain.IRI
	extensions  Extensions
}

func (d *ActivityDefinition) Name() LanguageMap        { return d.name }
func (d *ActivityDefinition) Description() LanguageMap { return d.description }
func (d *ActivityDefinition) Type() domain.IRI         { return d.typ }
func (d *ActivityDefinition) MoreInfo() domain.IRI     { return d.moreInfo }
func (d *ActivityDefinition) Extensions() Extensions   { return d.extensions }

func (d *ActivityDefinition) isEmpty() bool {
	return d.name.IsZero() && d.description.IsZero() && d.typ.IsNil() && d.moreInfo.IsNil() && d.extensions.IsZero()
}

type activityWire struct {
	ObjectType ObjectType      `json:"objectType"`
	ID         string          `json:"id"`
	Definition *definitionWire `json:"definition,omitempty"`
}

type definitionWire struct {
	Name        LanguageMap `json:"name,omitzero"`
	Description LanguageMap `json:"description,omitzero"`
	Type        domain.IRI  `json:"type,omitempty"`
	MoreInfo    domain.IRI  `json:"moreInfo,omitempty"`
	Extensions  Extensions  `json:"extensions,omitzero"`
}

func (a *Activity) MarshalJSON() ([]byte, error) {
	w := activityWire{ObjectType: ObjectTypeActivity, ID: a.id.String()}
	if d := a.definition; d != nil {
		w.Definition = &definitionWire{
			Name:        d.name,
			Description: d.description,
			Type:        d.typ,
			MoreInfo:    d.moreInfo,
			Extensions:  d.extensions,
		}
	}
	return marshal(w)
}

// ActivityBuilder accumulates an Activity. Nothing is validated until Build.
type ActivityBuilder struct {
	id          string
	name        []LanguageEntry
	description []LanguageEntry
	typ         string
	moreInfo    string
	extensions  []ExtensionEntry
}

func NewActivityBuilder(id string) *ActivityBuilder {
	return &ActivityBuilder{id: id}
}

func (b *ActivityBuilder) AddName(language, text string) *ActivityBuilder {
	b.name = append(b.name, Lang(language, text))
	return b
}

func (b *ActivityBuilder) WithName(m LanguageMap) *ActivityBuilder {
	b.name = append(b.name, m.entries...)
	return b
}

func (b *ActivityBuilder) AddDescription(language, text string) *ActivityBuilder {
	b.description = append(b.description, Lang(language, text))
	return b
}

func (b *ActivityBuilder) WithDescription(m LanguageMap) *ActivityBuilder {
	b.description = append(b.description, m.entries...)
	return b
}

func (b *ActivityBuilder) WithType(typeIRI string) *ActivityBuilder {
	b.typ = typeIRI
	return b
}

func (b *ActivityBuilder) WithMoreInfo(moreInfo string) *ActivityBuilder {
	b.moreInfo = moreInfo
	return b
}

// AddExtension adds one extension. value is JSON text.
func (b *ActivityBuilder) AddExtension(key, value string) *ActivityBuilder {
	b.extensions = append(b.extensions, Ext(key, value))
	return b
}

func (b *ActivityBuilder) WithExtensions(x Extensions) *ActivityBuilder {
	b.extensions = append(b.extensions, x.Entries()...)
	return b
}

// Build validates the activity. A definition with nothing in it is dropped.
//
// Errors: CodeFormat for a malformed IRI, CodeValidation for duplicate
// language tags or extension keys and for non-JSON extension values.
func (b *ActivityBuilder) Build() (*Activity, error) {
	id, err := domain.ParseIRI(b.id)
	if err != nil {
		return nil, dErrors.AtPath(err, "id")
	}
	def := &ActivityDefinition{}
	if def.name, err = NewLanguageMap(b.name...); err != nil {
		return nil, dErrors.AtPath(err, "definition.name")
	}
	if def.description, err = NewLanguageMap(b.description...); err != nil {
		return nil, dErrors.AtPath(err, "definition.description")
	}
	if def.typ, err = optionalIRI(b.typ); err != nil {
		return nil, dErrors.AtPath(err, "definition.type")
	}
	if def.moreInfo, err = optionalIRI(b.moreInfo); err != nil {
		return nil, dErrors.AtPath(err, "definition.moreInfo")
	}
	if def.extensions, err = NewExtensions(b.extensions...); err != nil {
		return nil, dErrors.AtPath(err, "definition.extensions")
	}
	a := &Activity{id: id}
	if !def.isEmpty() {
		a.definition = def
	}
	return a, nil
}

func optionalIRI(s string) (domain.IRI, error) {
	if s == "" {
		return "", nil
	}
	return domain.ParseIRI(s)
}

func decodeActivityFields(f fields) (*Activity, error) {
	id, err := f.requiredStr("id")
	if err != nil {
		return nil, err
	}
	b := NewActivityBuilder(id)
	def, ok, err := f.object("definition")
	if err != nil {
		return nil, err
	}
	if ok {
		if err := decodeDefinition(def, b); err != nil {
			return nil, dErrors.AtPath(err, "definition")
		}
	}
	return b.Build()
}

func decodeDefinition(f fields, b *ActivityBuilder) error {
	for _, lm := range []struct {
		key  string
		with func(LanguageMap) *ActivityBuilder
	}{{"name", b.WithName}, {"description", b.WithDescription}} {
		r, ok := f.raw(lm.key)
		if !ok {
			continue
		}
		m, err := decodeLanguageMap(r)
		if err != nil {
			return dErrors.AtPath(err, lm.key)
		}
		lm.with(m)
	}
	typ, _, err := f.str("type")
	if err != nil {
		return err
	}
	moreInfo, _, err := f.str("moreInfo")
	if err != nil {
		return err
	}
	b.WithType(typ).WithMoreInfo(moreInfo)
	if r, ok := f.raw("extensions"); ok {
		x, err := decodeExtensions(r)
		if err != nil {
			return dErrors.AtPath(err, "extensions")
		}
		b.WithExtensions(x)
	}
	return nil
}

// decodeActivity decodes a position that only admits an Activity, such as a
// context activity list.
func decodeActivity(raw json.RawMessage) (*Activity, error) {
	f, err := readFields(raw)
	if err != nil {
		return nil, err
	}
	if err := expectObjectType(f, ObjectTypeActivity); err != nil {
		return nil, err
	}
	return decodeActivityFields(f)
}
