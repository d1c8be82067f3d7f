package models

import (
	"time"

	"github.com/google/uuid"
)

// SubmissionStatus records what happened to a contact submission.
type SubmissionStatus string

const (
	SubmissionPending   SubmissionStatus = "pending"
	SubmissionDelivered SubmissionStatus = "delivered"
	SubmissionRejected  SubmissionStatus = "rejected"
	SubmissionFailed    SubmissionStatus = "failed"
)

// Submission is a contact form message that passed validation.
type Submission struct {
	ID              int              `json:"id"`
	Reference       string           `json:"reference"`
	Name            string           `json:"name" validate:"required,min=2,max=100"`
	Email           string           `json:"email" validate:"required,email"`
	Message         string           `json:"message" validate:"required,min=10,max=5000"`
	RemoteIP        string           `json:"remoteIp,omitempty"`
	Fingerprint     string           `json:"fingerprint"`
	Status          SubmissionStatus `json:"status"`
	ProviderID      string           `json:"providerId,omitempty"`
	ProviderMessage string           `json:"providerMessage,omitempty"`
	CreatedAt       time.Time        `json:"createdAt"`
	UpdatedAt       time.Time        `json:"updatedAt"`
}

// Validate checks if the submission meets all validation requirements
func (s *Submission) Validate() error {
	return validate.Struct(s)
}

// BeforeCreate sets up any necessary fields before creation
func (s *Submission) BeforeCreate() {
	now := time.Now().UTC()
	if s.CreatedAt.IsZero() {
		s.CreatedAt = now
	}
	s.UpdatedAt = s.CreatedAt
	if s.Reference == "" {
		s.Reference = uuid.NewString()
	}
	if s.Status == "" {
		s.Status = SubmissionPending
	}
}
