package models

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestSubmissionValidation(t *testing.T) {
	tests := []struct {
		name       string
		submission *Submission
		wantErr    bool
	}{
		{
			name:       "valid submission",
			submission: &Submission{Name: "Ada", Email: "ada@example.com", Message: "I would like to talk."},
			wantErr:    false,
		},
		{
			name:       "bad email",
			submission: &Submission{Name: "Ada", Email: "ada", Message: "I would like to talk."},
			wantErr:    true,
		},
		{
			name:       "short message",
			submission: &Submission{Name: "Ada", Email: "ada@example.com", Message: "hi"},
			wantErr:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.submission.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSubmissionBeforeCreate(t *testing.T) {
	submission := &Submission{Name: "Ada", Email: "ada@example.com", Message: "I would like to talk."}

	assert.True(t, submission.CreatedAt.IsZero())
	submission.BeforeCreate()
	assert.False(t, submission.CreatedAt.IsZero())
	assert.Equal(t, submission.CreatedAt, submission.UpdatedAt)
	assert.Equal(t, SubmissionPending, submission.Status)
	_, err := uuid.Parse(submission.Reference)
	assert.NoError(t, err)

	t.Run("keeps existing values", func(t *testing.T) {
		created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
		s := &Submission{Reference: "ref", Status: SubmissionDelivered, CreatedAt: created}
		s.BeforeCreate()
		assert.Equal(t, "ref", s.Reference)
		assert.Equal(t, SubmissionDelivered, s.Status)
		assert.Equal(t, created, s.CreatedAt)
	})
}
