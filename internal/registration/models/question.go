package models

import (
	"math"
	"net/mail"
	"net/url"
	"strconv"
	"strings"
	"time"

	"debatetab/pkg/domain"
	dErrors "debatetab/pkg/domain-errors"
	pstrings "debatetab/pkg/platform/strings"
)

// QuestionKind is the kind of registrant a custom question is asked of.
type QuestionKind string

const (
	QuestionInstitution QuestionKind = "institution"
	QuestionTeam        QuestionKind = "team"
	QuestionSpeaker     QuestionKind = "speaker"
	QuestionAdjudicator QuestionKind = "adjudicator"
)

// ParseQuestionKind accepts the singular and plural URL forms.
func ParseQuestionKind(s string) (QuestionKind, error) {
	switch strings.TrimSuffix(strings.ToLower(strings.TrimSpace(s)), "s") {
	case "institution":
		return QuestionInstitution, nil
	case "team":
		return QuestionTeam, nil
	case "speaker":
		return QuestionSpeaker, nil
	case "adjudicator":
		return QuestionAdjudicator, nil
	}
	return "", dErrors.New(dErrors.CodeInvalidInput, "unknown question kind")
}

// PluralLabel names the registrants in messages.
func (k QuestionKind) PluralLabel() string {
	return string(k) + "s"
}

// AnswerType determines how an answer is entered and validated.
type AnswerType string

const (
	AnswerCheckbox       AnswerType = "bc"
	AnswerYesNo          AnswerType = "bs"
	AnswerInteger        AnswerType = "i"
	AnswerIntegerScale   AnswerType = "is"
	AnswerFloat          AnswerType = "f"
	AnswerText           AnswerType = "t"
	AnswerLongText       AnswerType = "tl"
	AnswerSingleSelect   AnswerType = "ss"
	AnswerMultipleSelect AnswerType = "ms"
	AnswerEmail          AnswerType = "e"
	AnswerURL            AnswerType = "u"
	AnswerDateTime       AnswerType = "dt"
)

func (a AnswerType) IsValid() bool {
	switch a {
	case AnswerCheckbox, AnswerYesNo, AnswerInteger, AnswerIntegerScale, AnswerFloat,
		AnswerText, AnswerLongText, AnswerSingleSelect, AnswerMultipleSelect,
		AnswerEmail, AnswerURL, AnswerDateTime:
		return true
	}
	return false
}

func (a AnswerType) hasChoices() bool {
	return a == AnswerSingleSelect || a == AnswerMultipleSelect
}

func (a AnswerType) hasBounds() bool {
	return a == AnswerInteger || a == AnswerIntegerScale || a == AnswerFloat
}

// Question is a tournament-defined registration question.
type Question struct {
	ID           domain.QuestionID   `json:"id"`
	TournamentID domain.TournamentID `json:"-"`
	Kind         QuestionKind        `json:"kind"`
	Seq          int                 `json:"seq"`
	Name         string              `json:"name"`
	Text         string              `json:"text"`
	HelpText     string              `json:"help_text"`
	AnswerType   AnswerType          `json:"answer_type"`
	Required     bool                `json:"required"`
	MinValue     *float64            `json:"min_value"`
	MaxValue     *float64            `json:"max_value"`
	Choices      []string            `json:"choices"`
}

// Validate checks the question definition itself.
func (q *Question) Validate() error {
	q.Name = strings.TrimSpace(q.Name)
	q.Text = strings.TrimSpace(q.Text)
	q.Choices = pstrings.DedupeAndTrim(q.Choices)
	if q.Name == "" {
		return dErrors.New(dErrors.CodeValidation, "question name is required")
	}
	if q.Text == "" {
		return dErrors.New(dErrors.CodeValidation, "question text is required")
	}
	if !q.AnswerType.IsValid() {
		return dErrors.New(dErrors.CodeValidation, "unknown answer type")
	}
	if q.AnswerType.hasChoices() && len(q.Choices) == 0 {
		return dErrors.New(dErrors.CodeValidation, "select questions need choices")
	}
	if !q.AnswerType.hasBounds() && (q.MinValue != nil || q.MaxValue != nil) {
		return dErrors.New(dErrors.CodeValidation, "only numeric questions take bounds")
	}
	if q.MinValue != nil && q.MaxValue != nil && *q.MinValue > *q.MaxValue {
		return dErrors.New(dErrors.CodeValidation, "min_value must not exceed max_value")
	}
	return nil
}

// CleanAnswer validates a raw answer against the question and returns its
// stored form. Blank answers to optional questions clean to "".
func (q *Question) CleanAnswer(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		if q.Required && q.AnswerType != AnswerCheckbox {
			return "", q.invalid("is required")
		}
		if q.AnswerType == AnswerCheckbox {
			if q.Required {
				return "", q.invalid("must be checked")
			}
			return "false", nil
		}
		return "", nil
	}

	switch q.AnswerType {
	case AnswerCheckbox, AnswerYesNo:
		b, err := parseBool(raw)
		if err != nil {
			return "", q.invalid("must be yes or no")
		}
		if q.AnswerType == AnswerCheckbox && q.Required && !b {
			return "", q.invalid("must be checked")
		}
		return strconv.FormatBool(b), nil
	case AnswerInteger, AnswerIntegerScale:
		v, err := strconv.Atoi(raw)
		if err != nil {
			return "", q.invalid("must be a whole number")
		}
		if err := q.checkBounds(float64(v)); err != nil {
			return "", err
		}
		return strconv.Itoa(v), nil
	case AnswerFloat:
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return "", q.invalid("must be a number")
		}
		if err := q.checkBounds(v); err != nil {
			return "", err
		}
		return strconv.FormatFloat(v, 'f', -1, 64), nil
	case AnswerSingleSelect:
		if !q.hasChoice(raw) {
			return "", q.invalid("is not one of the available choices")
		}
		return raw, nil
	case AnswerMultipleSelect:
		picked := pstrings.SplitChoices(raw)
		for _, p := range picked {
			if !q.hasChoice(p) {
				return "", q.invalid("is not one of the available choices")
			}
		}
		return strings.Join(picked, pstrings.ChoiceSeparator), nil
	case AnswerEmail:
		addr, err := mail.ParseAddress(raw)
		if err != nil {
			return "", q.invalid("must be an email address")
		}
		return addr.Address, nil
	case AnswerURL:
		u, err := url.ParseRequestURI(raw)
		if err != nil || u.Host == "" {
			return "", q.invalid("must be a URL")
		}
		return raw, nil
	case AnswerDateTime:
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return "", q.invalid("must be an RFC 3339 date and time")
		}
		return t.Format(time.RFC3339), nil
	}
	return raw, nil
}

func (q *Question) checkBounds(v float64) error {
	if q.MinValue != nil && v < *q.MinValue {
		return q.invalid("is below the minimum")
	}
	if q.MaxValue != nil && v > *q.MaxValue {
		return q.invalid("is above the maximum")
	}
	return nil
}

func (q *Question) hasChoice(v string) bool {
	for _, c := range q.Choices {
		if c == v {
			return true
		}
	}
	return false
}

func (q *Question) invalid(reason string) error {
	return dErrors.New(dErrors.CodeValidation, q.Name+" "+reason)
}

func parseBool(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "y", "on":
		return true, nil
	case "no", "n", "off":
		return false, nil
	}
	return strconv.ParseBool(s)
}

// Answer is one registrant's answer to a question.
type Answer struct {
	QuestionID domain.QuestionID `json:"question"`
	Kind       QuestionKind      `json:"-"`
	SubjectID  int64             `json:"-"`
	Answer     string            `json:"answer"`
}
