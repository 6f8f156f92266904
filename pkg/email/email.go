// Package email validates mailbox addresses and converts them to and from
// their "mailto:" IRI form.
package email

import (
	"crypto/sha1" //nolint:gosec // mbox_sha1sum is defined as SHA-1 of the mailto IRI
	"encoding/hex"
	"net/mail"
	"strings"

	dErrors "xapi/pkg/domain-errors"
)

// MailToPrefix is the literal scheme prefix of an mbox value.
const MailToPrefix = "mailto:"

// Validate checks that addr is a bare, syntactically valid address
// ("bob@example.com", not "Bob <bob@example.com>").
//
// Errors: returns CodeValidation when the address is empty or malformed.
func Validate(addr string) error {
	if addr == "" {
		return dErrors.New(dErrors.CodeValidation, "email address cannot be empty")
	}
	parsed, err := mail.ParseAddress(addr)
	if err != nil || parsed.Name != "" || parsed.Address != addr {
		return dErrors.New(dErrors.CodeValidation, "invalid email address").WithValue(addr)
	}
	at := strings.LastIndexByte(addr, '@')
	if at <= 0 || at == len(addr)-1 {
		return dErrors.New(dErrors.CodeValidation, "invalid email address").WithValue(addr)
	}
	return nil
}

// ToMailto encodes a validated address as an mbox IRI.
func ToMailto(addr string) (string, error) {
	if err := Validate(addr); err != nil {
		return "", err
	}
	return MailToPrefix + addr, nil
}

// FromMailto strips exactly the "mailto:" prefix from an mbox value. A value
// without the prefix is rejected rather than used as-is.
//
// Errors: returns CodeFormat when the prefix is absent.
func FromMailto(mbox string) (string, error) {
	if !strings.HasPrefix(mbox, MailToPrefix) {
		return "", dErrors.New(dErrors.CodeFormat, "mbox value must start with \"mailto:\"").WithValue(mbox)
	}
	return strings.TrimPrefix(mbox, MailToPrefix), nil
}

// SHA1Sum derives the mbox_sha1sum of addr: the lowercase hex SHA-1 of its
// mailto IRI.
func SHA1Sum(addr string) (string, error) {
	mbox, err := ToMailto(addr)
	if err != nil {
		return "", err
	}
	sum := sha1.Sum([]byte(mbox)) //nolint:gosec
	return hex.EncodeToString(sum[:]), nil
}
