package repositories

import (
	"io"

	"folio/app/models"
)

// PostRepository answers read-only queries over the static post list.
// Lookups never fail: a missing post is reported as (nil, false) and an
// unusable query as an empty result.
type PostRepository interface {
	GetByID(id models.PostID) (*models.Post, bool)
	GetByPath(path string) (*models.Post, bool)
	All() []models.Post
	MostRecent(limit int) []models.PostSummary
	Featured(limit int) []models.PostSummary
	BySubject(query string) []models.PostSummary
	ByKeyword(query string) []models.ScoredPost
	ByAuthor(id models.AuthorID) []models.PostSummary
	ByCategory(category string) []models.PostSummary
	Related(id models.PostID) []models.PostSummary
	Categories() []string
}

// AuthorRepository answers read-only queries over the static author list.
type AuthorRepository interface {
	GetByID(id models.AuthorID) (*models.Author, bool)
	List() []models.Author
}

// SubmissionRepository defines the interface for contact submission storage
type SubmissionRepository interface {
	Create(submission *models.Submission) error
	GetByID(id int) (*models.Submission, error)
	FindByFingerprint(fingerprint string) (*models.Submission, error)
	List(limit, offset int) ([]*models.Submission, error)
	UpdateStatus(id int, status models.SubmissionStatus, providerID, message string) error
	Delete(id int) error
}

// Maintainer is a submission store that also supports the operator
// housekeeping commands.
type Maintainer interface {
	SubmissionRepository
	Backup(w io.Writer) error
	Restore(r io.Reader) error
	Clear() error
}

var _ Maintainer = (*BadgerSubmissionRepository)(nil)
