package xapi

import (
	"xapi/pkg/domain"
	dErrors "xapi/pkg/domain-errors"
	"xapi/pkg/email"
)

// Identifier is an inverse functional identifier: exactly one of MailBox,
// HashedMailBox, OpenID or Account. The set is closed.
type Identifier interface {
	identifier()
}

// MailBox identifies an actor by email address.
type MailBox struct {
	email string
}

// NewMailBox validates a bare email address.
//
// Errors: returns CodeValidation for a malformed address.
func NewMailBox(addr string) (MailBox, error) {
	if err := email.Validate(addr); err != nil {
		return MailBox{}, err
	}
	return MailBox{email: addr}, nil
}

func (m MailBox) Email() string {
	return m.email
}

// IRI returns the mbox wire form, "mailto:" + email.
func (m MailBox) IRI() string {
	return email.MailToPrefix + m.email
}

// HashedMailBox identifies an actor by the SHA-1 of its mbox IRI. The sum
// is opaque and only checked for presence.
type HashedMailBox struct {
	sha1sum string
}

// NewHashedMailBox wraps a precomputed sum.
//
// Errors: returns CodeValidation for an empty sum.
func NewHashedMailBox(sha1sum string) (HashedMailBox, error) {
	if sha1sum == "" {
		return HashedMailBox{}, dErrors.New(dErrors.CodeValidation, "mbox_sha1sum cannot be empty")
	}
	return HashedMailBox{sha1sum: sha1sum}, nil
}

// HashedMailBoxFromEmail derives the sum from a plain address.
//
// Errors: returns CodeValidation for a malformed address.
func HashedMailBoxFromEmail(addr string) (HashedMailBox, error) {
	sum, err := email.SHA1Sum(addr)
	if err != nil {
		return HashedMailBox{}, err
	}
	return HashedMailBox{sha1sum: sum}, nil
}

func (h HashedMailBox) SHA1Sum() string {
	return h.sha1sum
}

// OpenID identifies an actor by OpenID URI.
type OpenID struct {
	uri domain.IRI
}

// NewOpenID parses an absolute OpenID URI.
//
// Errors: returns CodeFormat when uri is not absolute.
func NewOpenID(uri string) (OpenID, error) {
	iri, err := domain.ParseIRI(uri)
	if err != nil {
		return OpenID{}, err
	}
	return OpenID{uri: iri}, nil
}

func (o OpenID) URI() domain.IRI {
	return o.uri
}

// Account identifies an actor by a user account on an existing system.
type Account struct {
	name     string
	homePage domain.IRI
}

// NewAccount validates an account.
//
// Errors: returns CodeValidation for an empty name and CodeFormat when
// homePage is not an absolute IRI.
func NewAccount(name, homePage string) (Account, error) {
	if name == "" {
		return Account{}, dErrors.Validation("name", "account name cannot be empty")
	}
	iri, err := domain.ParseIRI(homePage)
	if err != nil {
		return Account{}, dErrors.AtPath(err, "homePage")
	}
	return Account{name: name, homePage: iri}, nil
}

func (a Account) Name() string {
	return a.name
}

func (a Account) HomePage() domain.IRI {
	return a.homePage
}

func (MailBox) identifier()       {}
func (HashedMailBox) identifier() {}
func (OpenID) identifier()        {}
func (Account) identifier()       {}

type accountWire struct {
	Name     string `json:"name"`
	HomePage string `json:"homePage"`
}

// flattenIdentifier writes id into the identifier slot of the enclosing
// actor object. At most one slot is ever set.
// checkIdentifier rejects identifiers built as zero values instead of
// through their constructors. nil is accepted.
func checkIdentifier(id Identifier) error {
	switch v := id.(type) {
	case MailBox:
		if v.email == "" {
			return dErrors.Validation("mbox", "mbox requires an email address")
		}
	case HashedMailBox:
		if v.sha1sum == "" {
			return dErrors.Validation("mbox_sha1sum", "mbox_sha1sum cannot be empty")
		}
	case OpenID:
		if v.uri.IsNil() {
			return dErrors.Validation("openid", "openid requires a URI")
		}
	case Account:
		if v.name == "" || v.homePage.IsNil() {
			return dErrors.Validation("account", "account requires a name and homePage")
		}
	}
	return nil
}

func flattenIdentifier(w *actorWire, id Identifier) {
	switch v := id.(type) {
	case MailBox:
		w.Mbox = v.IRI()
	case HashedMailBox:
		w.MboxSHA1Sum = v.sha1sum
	case OpenID:
		w.OpenID = v.uri.String()
	case Account:
		w.Account = &accountWire{Name: v.name, HomePage: v.homePage.String()}
	case nil:
	}
}

// decodeIdentifier reads the flattened identifier fields of an actor
// object. The first present field wins, checked in the order
// mbox, openid, account, mbox_sha1sum.
func decodeIdentifier(f fields) (Identifier, error) {
	mbox, ok, err := f.str("mbox")
	if err != nil {
		return nil, err
	}
	if ok {
		addr, err := email.FromMailto(mbox)
		if err != nil {
			return nil, dErrors.AtPath(err, "mbox")
		}
		box, err := NewMailBox(addr)
		if err != nil {
			return nil, dErrors.AtPath(err, "mbox")
		}
		return box, nil
	}

	uri, ok, err := f.str("openid")
	if err != nil {
		return nil, err
	}
	if ok {
		id, err := NewOpenID(uri)
		if err != nil {
			return nil, dErrors.AtPath(err, "openid")
		}
		return id, nil
	}

	acct, ok, err := f.object("account")
	if err != nil {
		return nil, err
	}
	if ok {
		return decodeAccount(acct)
	}

	sum, ok, err := f.str("mbox_sha1sum")
	if err != nil {
		return nil, err
	}
	if ok {
		h, err := NewHashedMailBox(sum)
		if err != nil {
			return nil, dErrors.AtPath(err, "mbox_sha1sum")
		}
		return h, nil
	}

	return nil, nil
}

func decodeAccount(f fields) (Account, error) {
	name, err := f.requiredStr("name")
	if err != nil {
		return Account{}, dErrors.AtPath(err, "account")
	}
	homePage, err := f.requiredStr("homePage")
	if err != nil {
		return Account{}, dErrors.AtPath(err, "account")
	}
	acct, err := NewAccount(name, homePage)
	if err != nil {
		return Account{}, dErrors.AtPath(err, "account")
	}
	return acct, nil
}
