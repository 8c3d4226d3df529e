package service

import (
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	pmodels "debatetab/internal/participants/models"
	tmodels "debatetab/internal/tournaments/models"
	dErrors "debatetab/pkg/domain-errors"
)

// nextAlphabetical continues an institution's lettered references in
// bijective base 26: A..Z, AA, AB and so on. References that are not all
// uppercase letters are ignored.
func nextAlphabetical(existing []string) string {
	highest := 0
	for _, ref := range existing {
		if n, ok := alphabeticalValue(ref); ok && n > highest {
			highest = n
		}
	}
	return alphabeticalReference(highest + 1)
}

func alphabeticalValue(ref string) (int, bool) {
	if ref == "" {
		return 0, false
	}
	n := 0
	for _, r := range ref {
		if r < 'A' || r > 'Z' {
			return 0, false
		}
		if n > (math.MaxInt-26)/26 {
			return 0, false
		}
		n = n*26 + int(r-'A'+1)
	}
	return n, true
}

func alphabeticalReference(n int) string {
	var b []byte
	for n > 0 {
		n--
		b = append(b, byte('A'+n%26))
		n /= 26
	}
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
	return string(b)
}

// nextNumerical continues an institution's numbered references, starting
// at 1.
func nextNumerical(existing []string) string {
	highest := 0
	for _, ref := range existing {
		if !isDigits(ref) {
			continue
		}
		if n, err := strconv.Atoi(ref); err == nil && n > highest {
			highest = n
		}
	}
	return strconv.Itoa(highest + 1)
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// initialsReference joins the first letter of each speaker's last name.
func initialsReference(speakers []*pmodels.Speaker) string {
	var b strings.Builder
	for _, sp := range speakers {
		if r, _ := utf8.DecodeRuneInString(sp.LastName); r != utf8.RuneError {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func lastNamesCodeName(speakers []*pmodels.Speaker) string {
	names := make([]string, 0, len(speakers))
	for _, sp := range speakers {
		if sp.LastName != "" {
			names = append(names, sp.LastName)
		}
	}
	return strings.Join(names, " & ")
}

// teamReference applies the tournament's team name generator.
// existing holds the references of the institution's other teams.
func teamReference(gen tmodels.TeamNameGenerator, requested string, existing []string, speakers []*pmodels.Speaker) (string, error) {
	switch gen {
	case tmodels.TeamNameAlphabetical:
		return nextAlphabetical(existing), nil
	case tmodels.TeamNameNumerical:
		return nextNumerical(existing), nil
	case tmodels.TeamNameInitials:
		return initialsReference(speakers), nil
	}
	if requested == "" {
		return "", dErrors.New(dErrors.CodeValidation, "team reference is required")
	}
	return requested, nil
}

// teamCodeName applies the tournament's code name generator.
func teamCodeName(gen tmodels.CodeNameGenerator, requested, emoji string, speakers []*pmodels.Speaker) string {
	switch gen {
	case tmodels.CodeNameEmoji:
		name, _ := pmodels.EmojiName(emoji)
		return name
	case tmodels.CodeNameLastNames:
		return lastNamesCodeName(speakers)
	}
	return requested
}
