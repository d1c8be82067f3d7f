package mock

import (
	"errors"
	"sort"
	"sync"
	"time"

	"folio/app/models"
	"folio/app/repositories"
)

// SubmissionRepository is an in-memory SubmissionRepository for tests.
type SubmissionRepository struct {
	submissions map[int]*models.Submission
	nextID      int
	mutex       sync.RWMutex

	// CreateErr, when set, is returned by Create.
	CreateErr error
}

func NewSubmissionRepository() *SubmissionRepository {
	return &SubmissionRepository{
		submissions: make(map[int]*models.Submission),
		nextID:      1,
	}
}

func (m *SubmissionRepository) Create(submission *models.Submission) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if m.CreateErr != nil {
		return m.CreateErr
	}
	submission.BeforeCreate()
	submission.ID = m.nextID
	m.nextID++
	cp := *submission
	m.submissions[submission.ID] = &cp
	return nil
}

func (m *SubmissionRepository) GetByID(id int) (*models.Submission, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	submission, exists := m.submissions[id]
	if !exists {
		return nil, repositories.ErrNotFound
	}
	cp := *submission
	return &cp, nil
}

func (m *SubmissionRepository) FindByFingerprint(fingerprint string) (*models.Submission, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	var found *models.Submission
	for _, s := range m.submissions {
		if s.Fingerprint == fingerprint && (found == nil || s.ID > found.ID) {
			found = s
		}
	}
	if found == nil {
		return nil, repositories.ErrNotFound
	}
	cp := *found
	return &cp, nil
}

func (m *SubmissionRepository) List(limit, offset int) ([]*models.Submission, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	var submissions []*models.Submission
	for _, s := range m.submissions {
		cp := *s
		submissions = append(submissions, &cp)
	}
	// Sort submissions by ID to ensure consistent ordering
	sort.Slice(submissions, func(i, j int) bool {
		return submissions[i].ID < submissions[j].ID
	})
	// Handle pagination
	if offset >= len(submissions) {
		return []*models.Submission{}, nil
	}
	end := offset + limit
	if end > len(submissions) {
		end = len(submissions)
	}
	return submissions[offset:end], nil
}

func (m *SubmissionRepository) UpdateStatus(id int, status models.SubmissionStatus, providerID, message string) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	submission, exists := m.submissions[id]
	if !exists {
		return repositories.ErrNotFound
	}
	submission.Status = status
	submission.ProviderID = providerID
	submission.ProviderMessage = message
	submission.UpdatedAt = time.Now().UTC()
	return nil
}

func (m *SubmissionRepository) Delete(id int) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if _, exists := m.submissions[id]; !exists {
		return repositories.ErrNotFound
	}
	delete(m.submissions, id)
	return nil
}

// ErrUnavailable is a convenience error for simulating storage failures.
var ErrUnavailable = errors.New("storage unavailable")
