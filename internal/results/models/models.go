package models

import (
	"time"

	"debatetab/pkg/domain"
)

// SubmitterType records who entered a ballot.
type SubmitterType string

const (
	SubmitterTabroom SubmitterType = "T"
	SubmitterPublic  SubmitterType = "P"
	SubmitterAuto    SubmitterType = "A"
)

// BallotSubmission is one version of a debate's result.
type BallotSubmission struct {
	ID            domain.BallotID  `json:"id"`
	DebateID      domain.DebateID  `json:"debate"`
	Version       int              `json:"version"`
	Confirmed     bool             `json:"confirmed"`
	Discarded     bool             `json:"discarded"`
	SubmitterType SubmitterType    `json:"submitter_type"`
	MotionID      *domain.MotionID `json:"motion"`
	Timestamp     time.Time        `json:"timestamp"`
}
