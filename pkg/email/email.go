// Package email normalises addresses supplied on registration forms.
package email

import (
	"net/mail"
	"strings"

	dErrors "debatetab/pkg/domain-errors"
)

// Normalize trims the address and lower-cases its domain. An empty input
// is allowed and returns "". Display-name forms ("Ann <ann@x.org>") are
// rejected: forms take a bare address.
func Normalize(addr string) (string, error) {
	addr = strings.TrimSpace(addr)
	if addr == "" {
		return "", nil
	}
	parsed, err := mail.ParseAddress(addr)
	if err != nil || parsed.Address != addr {
		return "", dErrors.New(dErrors.CodeValidation, "enter a valid email address")
	}
	at := strings.LastIndexByte(addr, '@')
	return addr[:at] + "@" + strings.ToLower(addr[at+1:]), nil
}

// LastWord returns the final whitespace-separated word of a full name.
// Used when a speaker registers without a separate last name.
func LastWord(name string) string {
	fields := strings.Fields(name)
	if len(fields) == 0 {
		return ""
	}
	return fields[len(fields)-1]
}
