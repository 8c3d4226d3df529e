package models

import (
	"fmt"

	"debatetab/pkg/domain"
	dErrors "debatetab/pkg/domain-errors"
)

// CategoryInput is one row of the category editor. A nil ID creates a
// category.
type CategoryInput struct {
	ID                     *domain.CategoryID `json:"id"`
	Name                   string             `json:"name"`
	Description            string             `json:"description"`
	DisplayInVenueName     VenueDisplay       `json:"display_in_venue_name"`
	DisplayInPublicTooltip bool               `json:"display_in_public_tooltip"`
	VenueIDs               []domain.VenueID   `json:"venues"`
}

type SaveCategoriesRequest struct {
	Categories []CategoryInput `json:"categories"`
}

func (r *SaveCategoriesRequest) Validate() error {
	for i := range r.Categories {
		in := &r.Categories[i]
		c := VenueCategory{Name: in.Name, DisplayInVenueName: in.DisplayInVenueName}
		if err := c.Validate(); err != nil {
			return dErrors.Wrap(err, dErrors.CodeValidation, fmt.Sprintf("categories[%d]: %s", i, err.Error()))
		}
		in.DisplayInVenueName = c.DisplayInVenueName
	}
	return nil
}

// CategoriesSaved is the response of a category save.
type CategoriesSaved struct {
	Categories []*VenueCategory `json:"categories"`
	Message    string           `json:"message"`
}

// ConstraintInput is one row of the constraint editor. A nil ID creates a
// constraint; Delete removes an existing one.
type ConstraintInput struct {
	ID          *domain.ConstraintID `json:"id"`
	SubjectKind SubjectKind          `json:"subject_kind"`
	SubjectID   int64                `json:"subject_id"`
	CategoryID  domain.CategoryID    `json:"category"`
	Priority    int                  `json:"priority"`
	Delete      bool                 `json:"delete"`
}

type SaveConstraintsRequest struct {
	Constraints []ConstraintInput `json:"constraints"`
}

func (r *SaveConstraintsRequest) Validate() error {
	for i, in := range r.Constraints {
		if in.Delete {
			if in.ID == nil {
				return dErrors.New(dErrors.CodeValidation, fmt.Sprintf("constraints[%d]: only existing constraints can be deleted", i))
			}
			continue
		}
		if !in.SubjectKind.IsKnown() {
			return dErrors.New(dErrors.CodeValidation, fmt.Sprintf("constraints[%d]: subject_kind must be team, institution or adjudicator", i))
		}
		if in.SubjectID <= 0 {
			return dErrors.New(dErrors.CodeValidation, fmt.Sprintf("constraints[%d]: subject_id is required", i))
		}
		if in.CategoryID <= 0 {
			return dErrors.New(dErrors.CodeValidation, fmt.Sprintf("constraints[%d]: category is required", i))
		}
	}
	return nil
}

// ConstraintsSaved is the response of a constraint save.
type ConstraintsSaved struct {
	Constraints []*VenueConstraint `json:"constraints"`
	Message     string             `json:"message"`
}
