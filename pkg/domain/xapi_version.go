package domain

import (
	dErrors "xapi/pkg/domain-errors"
)

// XAPIVersion represents a supported value of the X-Experience-API-Version header.
// This is a domain primitive that enforces validity at parse time.
type XAPIVersion string

// Supported xAPI versions.
const (
	XAPIVersion100 XAPIVersion = "1.0.0"
	XAPIVersion101 XAPIVersion = "1.0.1"
	XAPIVersion102 XAPIVersion = "1.0.2"
	XAPIVersion103 XAPIVersion = "1.0.3"
)

// versionOrder defines the ordering of versions for comparison.
// Higher numbers represent newer versions.
var versionOrder = map[XAPIVersion]int{
	XAPIVersion100: 1,
	XAPIVersion101: 2,
	XAPIVersion102: 3,
	XAPIVersion103: 4,
}

// ParseXAPIVersion validates and returns an XAPIVersion.
//
// Errors: returns CodeBadRequest when the header is empty or names an
// unsupported version.
func ParseXAPIVersion(s string) (XAPIVersion, error) {
	if s == "" {
		return "", dErrors.New(dErrors.CodeBadRequest, "X-Experience-API-Version header is required")
	}
	v := XAPIVersion(s)
	if _, ok := versionOrder[v]; !ok {
		return "", dErrors.New(dErrors.CodeBadRequest, "unsupported xAPI version").WithValue(s)
	}
	return v, nil
}

// String returns the string representation of the version.
func (v XAPIVersion) String() string {
	return string(v)
}

// IsNil returns true if the version is empty.
func (v XAPIVersion) IsNil() bool {
	return v == ""
}

// IsAtLeast returns true if this version is >= other.
// Unknown versions are treated as lower than any known version.
func (v XAPIVersion) IsAtLeast(other XAPIVersion) bool {
	thisOrder, thisOK := versionOrder[v]
	otherOrder, otherOK := versionOrder[other]

	if !thisOK {
		return false
	}
	if !otherOK {
		return true
	}

	return thisOrder >= otherOrder
}

// SupportedXAPIVersions returns all accepted versions, oldest first.
func SupportedXAPIVersions() []XAPIVersion {
	return []XAPIVersion{XAPIVersion100, XAPIVersion101, XAPIVersion102, XAPIVersion103}
}

// CurrentXAPIVersion is the version reported on responses.
func CurrentXAPIVersion() XAPIVersion {
	return XAPIVersion103
}
