package models

import (
	"strings"

	pmodels "debatetab/internal/participants/models"
	"debatetab/pkg/domain"
	dErrors "debatetab/pkg/domain-errors"
	"debatetab/pkg/email"
)

// Answers maps question ids to raw answers.
type Answers map[domain.QuestionID]string

// CoachRequest is the coach part of an institution registration.
type CoachRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// InstitutionRegistrationRequest registers an institution and its coach.
type InstitutionRegistrationRequest struct {
	Name                  string       `json:"name"`
	Code                  string       `json:"code"`
	TeamsRequested        int          `json:"teams_requested"`
	AdjudicatorsRequested int          `json:"adjudicators_requested"`
	Coach                 CoachRequest `json:"coach"`
	Answers               Answers      `json:"answers"`
}

// Validate is called by the HTTP decoder.
func (r *InstitutionRegistrationRequest) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	r.Code = strings.TrimSpace(r.Code)
	r.Coach.Name = strings.TrimSpace(r.Coach.Name)
	if r.Name == "" {
		return dErrors.New(dErrors.CodeValidation, "institution name is required")
	}
	if len(r.Code) > 20 {
		return dErrors.New(dErrors.CodeValidation, "institution code must be at most 20 characters")
	}
	if r.TeamsRequested < 0 || r.AdjudicatorsRequested < 0 {
		return dErrors.New(dErrors.CodeValidation, "requested slots must not be negative")
	}
	if r.Coach.Name == "" {
		return dErrors.New(dErrors.CodeValidation, "coach name is required")
	}
	addr, err := email.Normalize(r.Coach.Email)
	if err != nil {
		return err
	}
	r.Coach.Email = addr
	return nil
}

// SpeakerRequest is one speaker of a team registration, or a speaker joining
// an existing team.
type SpeakerRequest struct {
	Name     string  `json:"name"`
	LastName string  `json:"last_name"`
	Email    string  `json:"email"`
	Answers  Answers `json:"answers"`
}

// Validate is called by the HTTP decoder. A blank last name defaults to the
// final word of the name.
func (r *SpeakerRequest) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	r.LastName = strings.TrimSpace(r.LastName)
	if r.Name == "" {
		return dErrors.New(dErrors.CodeValidation, "speaker name is required")
	}
	if r.LastName == "" {
		r.LastName = email.LastWord(r.Name)
	}
	addr, err := email.Normalize(r.Email)
	if err != nil {
		return err
	}
	r.Email = addr
	return nil
}

// TeamRegistrationRequest registers a team with its speakers. CoachKey
// registers the team under the coach's institution.
type TeamRegistrationRequest struct {
	CoachKey             string           `json:"coach_key"`
	Reference            string           `json:"reference"`
	CodeName             string           `json:"code_name"`
	Emoji                string           `json:"emoji"`
	UseInstitutionPrefix bool             `json:"use_institution_prefix"`
	Speakers             []SpeakerRequest `json:"speakers"`
	Answers              Answers          `json:"answers"`
}

// Validate is called by the HTTP decoder.
func (r *TeamRegistrationRequest) Validate() error {
	r.CoachKey = strings.TrimSpace(r.CoachKey)
	r.Reference = strings.TrimSpace(r.Reference)
	r.CodeName = strings.TrimSpace(r.CodeName)
	if len(r.Reference) > 150 {
		return dErrors.New(dErrors.CodeValidation, "reference must be at most 150 characters")
	}
	for i := range r.Speakers {
		if err := r.Speakers[i].Validate(); err != nil {
			return err
		}
	}
	return nil
}

// AdjudicatorRegistrationRequest registers an adjudicator.
type AdjudicatorRegistrationRequest struct {
	CoachKey string  `json:"coach_key"`
	Name     string  `json:"name"`
	Email    string  `json:"email"`
	Answers  Answers `json:"answers"`
}

// Validate is called by the HTTP decoder.
func (r *AdjudicatorRegistrationRequest) Validate() error {
	r.CoachKey = strings.TrimSpace(r.CoachKey)
	r.Name = strings.TrimSpace(r.Name)
	if r.Name == "" {
		return dErrors.New(dErrors.CodeValidation, "adjudicator name is required")
	}
	addr, err := email.Normalize(r.Email)
	if err != nil {
		return err
	}
	r.Email = addr
	return nil
}

// Allocation sets the allocated slots of one tournament institution.
type Allocation struct {
	InstitutionID         domain.InstitutionID `json:"institution"`
	TeamsAllocated        int                  `json:"teams_allocated"`
	AdjudicatorsAllocated int                  `json:"adjudicators_allocated"`
}

// AllocationRequest updates allocations in bulk.
type AllocationRequest struct {
	Allocations []Allocation `json:"allocations"`
}

// Validate is called by the HTTP decoder.
func (r *AllocationRequest) Validate() error {
	for _, a := range r.Allocations {
		if a.InstitutionID <= 0 {
			return dErrors.New(dErrors.CodeValidation, "institution is required")
		}
		if a.TeamsAllocated < 0 || a.AdjudicatorsAllocated < 0 {
			return dErrors.New(dErrors.CodeValidation, "allocations must not be negative")
		}
	}
	return nil
}

// AllocationsSaved is the response to an allocation update.
type AllocationsSaved struct {
	Institutions []*pmodels.TournamentInstitution `json:"institutions"`
	Message      string                           `json:"message"`
}

// QuestionsRequest replaces the edited questions of one kind. Questions
// without an id are new.
type QuestionsRequest struct {
	Questions []Question `json:"questions"`
}

// Validate is called by the HTTP decoder.
func (r *QuestionsRequest) Validate() error {
	for i := range r.Questions {
		if err := r.Questions[i].Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Registered is the response to a successful registration.
type Registered struct {
	ID              int64    `json:"id"`
	Name            string   `json:"name"`
	URLKey          string   `json:"url_key,omitempty"`
	MissingSpeakers int      `json:"missing_speakers,omitempty"`
	Messages        []string `json:"messages"`
}

// QuestionsSaved is the response to a question save.
type QuestionsSaved struct {
	Questions []*Question `json:"questions"`
	Message   string      `json:"message"`
}
