package domain

import (
	"fmt"
)

// APIVersion identifies a mounted version of the REST API.
type APIVersion string

const (
	APIVersionV1 APIVersion = "v1"
)

// versionOrder defines the ordering of versions for comparison.
var versionOrder = map[APIVersion]int{
	APIVersionV1: 1,
}

// ParseAPIVersion validates and returns an APIVersion.
func ParseAPIVersion(s string) (APIVersion, error) {
	v := APIVersion(s)
	if _, ok := versionOrder[v]; !ok {
		return "", fmt.Errorf("unknown API version: %s", s)
	}
	return v, nil
}

func (v APIVersion) String() string {
	return string(v)
}

// IsNil returns true if the API version is empty.
func (v APIVersion) IsNil() bool {
	return v == ""
}

// IsAtLeast returns true if this version is >= other. Unknown versions sort
// below every known version.
func (v APIVersion) IsAtLeast(other APIVersion) bool {
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

// Path returns the mount point of the version below the API root, e.g. "/api/v1".
func (v APIVersion) Path() string {
	return "/api/" + string(v)
}

// SupportedVersions returns all currently mounted API versions.
func SupportedVersions() []APIVersion {
	return []APIVersion{APIVersionV1}
}

// DefaultVersion is the version advertised by the API root.
func DefaultVersion() APIVersion {
	return APIVersionV1
}
