// Package events publishes notifications about accepted questionnaires.
package events

import (
	"context"
	"time"

	"github.com/edustar/intake-backend/internal/model"
)

// TypeSubmissionCreated is the event type of SubmissionCreated.
const TypeSubmissionCreated = "submission.created"

// SubmissionCreated announces a persisted questionnaire.
type SubmissionCreated struct {
	EventType       string    `json:"event_type"`
	ID              string    `json:"id"`
	ReferenceNumber string    `json:"reference_number"`
	FullName        string    `json:"full_name"`
	Email           string    `json:"email"`
	OpenToContact   bool      `json:"open_to_contact"`
	ContactMethod   string    `json:"contact_method,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

// NewSubmissionCreated builds the event for a stored submission.
func NewSubmissionCreated(sub *model.Submission) SubmissionCreated {
	return SubmissionCreated{
		EventType:       TypeSubmissionCreated,
		ID:              sub.ID,
		ReferenceNumber: sub.ReferenceNumber,
		FullName:        sub.FullName,
		Email:           sub.Email,
		OpenToContact:   sub.OpenToContact,
		ContactMethod:   sub.ContactMethod,
		CreatedAt:       sub.CreatedAt,
	}
}

// Publisher delivers events to downstream consumers.
type Publisher interface {
	Publish(ctx context.Context, event SubmissionCreated) error
	Close() error
}
