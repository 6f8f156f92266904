package xapi

import (
	"encoding/json"

	"xapi/pkg/domain"
	dErrors "xapi/pkg/domain-errors"
)

// Attachment describes a file attached to a Statement. The payload itself
// travels outside the Statement JSON.
type Attachment struct {
	usageType   domain.IRI
	display     LanguageMap
	description LanguageMap
	contentType string
	length      int64
	sha2        string
	fileURL     domain.IRI
}

// AttachmentOption sets an optional Attachment field.
type AttachmentOption func(*attachmentFields)

type attachmentFields struct {
	description LanguageMap
	fileURL     string
}

func WithAttachmentDescription(m LanguageMap) AttachmentOption {
	return func(f *attachmentFields) { f.description = m }
}

func WithFileURL(fileURL string) AttachmentOption {
	return func(f *attachmentFields) { f.fileURL = fileURL }
}

// NewAttachment validates an attachment.
//
// Errors: CodeFormat for a malformed usageType or fileUrl, CodeValidation
// for an empty display, contentType or sha2 and for a negative length.
func NewAttachment(usageType string, display LanguageMap, contentType string, length int64, sha2 string, opts ...AttachmentOption) (*Attachment, error) {
	var extra attachmentFields
	for _, opt := range opts {
		opt(&extra)
	}
	usage, err := domain.ParseIRI(usageType)
	if err != nil {
		return nil, dErrors.AtPath(err, "usageType")
	}
	if display.IsZero() {
		return nil, dErrors.Validation("display", "attachment display is required")
	}
	if contentType == "" {
		return nil, dErrors.Validation("contentType", "attachment contentType is required")
	}
	if length < 0 {
		return nil, dErrors.Validation("length", "attachment length cannot be negative")
	}
	if sha2 == "" {
		return nil, dErrors.Validation("sha2", "attachment sha2 is required")
	}
	fileURL, err := optionalIRI(extra.fileURL)
	if err != nil {
		return nil, dErrors.AtPath(err, "fileUrl")
	}
	return &Attachment{
		usageType:   usage,
		display:     display,
		description: extra.description,
		contentType: contentType,
		length:      length,
		sha2:        sha2,
		fileURL:     fileURL,
	}, nil
}

func (a *Attachment) UsageType() domain.IRI    { return a.usageType }
func (a *Attachment) Display() LanguageMap     { return a.display }
func (a *Attachment) Description() LanguageMap { return a.description }
func (a *Attachment) ContentType() string      { return a.contentType }
func (a *Attachment) Length() int64            { return a.length }
func (a *Attachment) SHA2() string             { return a.sha2 }
func (a *Attachment) FileURL() domain.IRI      { return a.fileURL }

type attachmentWire struct {
	UsageType   string      `json:"usageType"`
	Display     LanguageMap `json:"display"`
	Description LanguageMap `json:"description,omitzero"`
	ContentType string      `json:"contentType"`
	Length      int64       `json:"length"`
	SHA2        string      `json:"sha2"`
	FileURL     string      `json:"fileUrl,omitempty"`
}

func (a *Attachment) MarshalJSON() ([]byte, error) {
	return marshal(attachmentWire{
		UsageType:   a.usageType.String(),
		Display:     a.display,
		Description: a.description,
		ContentType: a.contentType,
		Length:      a.length,
		SHA2:        a.sha2,
		FileURL:     a.fileURL.String(),
	})
}

func decodeAttachment(raw json.RawMessage) (*Attachment, error) {
	f, err := readFields(raw)
	if err != nil {
		return nil, err
	}
	usageType, err := f.requiredStr("usageType")
	if err != nil {
		return nil, err
	}
	displayRaw, ok := f.raw("display")
	if !ok {
		return nil, dErrors.MissingField("display")
	}
	display, err := decodeLanguageMap(displayRaw)
	if err != nil {
		return nil, dErrors.AtPath(err, "display")
	}
	contentType, err := f.requiredStr("contentType")
	if err != nil {
		return nil, err
	}
	length, err := f.integer("length")
	if err != nil {
		return nil, err
	}
	if length == nil {
		return nil, dErrors.MissingField("length")
	}
	sha2, err := f.requiredStr("sha2")
	if err != nil {
		return nil, err
	}

	var opts []AttachmentOption
	if r, ok := f.raw("description"); ok {
		desc, err := decodeLanguageMap(r)
		if err != nil {
			return nil, dErrors.AtPath(err, "description")
		}
		opts = append(opts, WithAttachmentDescription(desc))
	}
	fileURL, _, err := f.str("fileUrl")
	if err != nil {
		return nil, err
	}
	if fileURL != "" {
		opts = append(opts, WithFileURL(fileURL))
	}
	return NewAttachment(usageType, display, contentType, *length, sha2, opts...)
}
