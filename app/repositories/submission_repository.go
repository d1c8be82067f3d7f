package repositories

import (
	"errors"
	"fmt"
	"io"
	"time"

	"folio/app/models"

	"github.com/dgraph-io/badger/v4"
)

// BadgerSubmissionRepository implements SubmissionRepository using BadgerDB
type BadgerSubmissionRepository struct {
	db *badger.DB
}

// NewBadgerSubmissionRepository creates a new BadgerSubmissionRepository
func NewBadgerSubmissionRepository(db *badger.DB) *BadgerSubmissionRepository {
	return &BadgerSubmissionRepository{db: db}
}

// OpenBadger opens the database at path. An empty path opens an in-memory
// database.
func OpenBadger(path string) (*badger.DB, error) {
	opts := badger.DefaultOptions(path).
		WithLogger(nil).
		WithNumVersionsToKeep(1)
	if path == "" {
		opts = opts.WithInMemory(true)
	}
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger at %q: %w", path, err)
	}
	return db, nil
}

// Create stores a new submission and indexes its fingerprint
func (r *BadgerSubmissionRepository) Create(submission *models.Submission) error {
	submission.BeforeCreate()
	if err := submission.Validate(); err != nil {
		return fmt.Errorf("invalid submission: %w", err)
	}
	return r.db.Update(func(txn *badger.Txn) error {
		// Get next ID
		id, err := getNextID(txn, SubmissionSeqKey)
		if err != nil {
			return err
		}
		submission.ID = id

		data, err := marshalEntity(submission)
		if err != nil {
			return err
		}
		if err := txn.Set(submissionKey(id), data); err != nil {
			return err
		}
		if submission.Fingerprint == "" {
			return nil
		}
		return txn.Set(fingerprintKey(submission.Fingerprint), []byte(fmt.Sprintf("%d", id)))
	})
}

// GetByID retrieves a submission by ID
func (r *BadgerSubmissionRepository) GetByID(id int) (*models.Submission, error) {
	var submission models.Submission
	err := r.db.View(func(txn *badger.Txn) error {
		return getSubmission(txn, id, &submission)
	})
	if err != nil {
		return nil, err
	}
	return &submission, nil
}

// FindByFingerprint returns the most recent submission with the given fingerprint
func (r *BadgerSubmissionRepository) FindByFingerprint(fingerprint string) (*models.Submission, error) {
	var submission models.Submission
	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(fingerprintKey(fingerprint))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		var id int
		err = item.Value(func(val []byte) error {
			_, err := fmt.Sscanf(string(val), "%d", &id)
			return err
		})
		if err != nil {
			return fmt.Errorf("corrupt fingerprint index: %w", err)
		}
		return getSubmission(txn, id, &submission)
	})
	if err != nil {
		return nil, err
	}
	return &submission, nil
}

// List retrieves a paginated list of submissions, oldest first
func (r *BadgerSubmissionRepository) List(limit, offset int) ([]*models.Submission, error) {
	submissions := []*models.Submission{}
	err := r.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		// Skip offset items
		count := 0
		prefix := []byte(SubmissionKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			if count < offset {
				count++
				continue
			}
			if count >= offset+limit {
				break
			}

			var submission models.Submission
			err := it.Item().Value(func(val []byte) error {
				return unmarshalEntity(val, &submission)
			})
			if err != nil {
				return err
			}
			submissions = append(submissions, &submission)
			count++
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return submissions, nil
}

// UpdateStatus records the delivery outcome of a submission
func (r *BadgerSubmissionRepository) UpdateStatus(id int, status models.SubmissionStatus, providerID, message string) error {
	return r.db.Update(func(txn *badger.Txn) error {
		var submission models.Submission
		if err := getSubmission(txn, id, &submission); err != nil {
			return err
		}
		submission.Status = status
		submission.ProviderID = providerID
		submission.ProviderMessage = message
		submission.UpdatedAt = time.Now().UTC()

		data, err := marshalEntity(&submission)
		if err != nil {
			return err
		}
		return txn.Set(submissionKey(id), data)
	})
}

// Delete deletes a submission and its fingerprint index entry
func (r *BadgerSubmissionRepository) Delete(id int) error {
	return r.db.Update(func(txn *badger.Txn) error {
		var submission models.Submission
		if err := getSubmission(txn, id, &submission); err != nil {
			return err
		}
		if submission.Fingerprint != "" {
			if err := txn.Delete(fingerprintKey(submission.Fingerprint)); err != nil {
				return err
			}
		}
		return txn.Delete(submissionKey(id))
	})
}

// Backup writes a full backup of the database to w
func (r *BadgerSubmissionRepository) Backup(w io.Writer) error {
	if _, err := r.db.Backup(w, 0); err != nil {
		return fmt.Errorf("failed to backup database: %w", err)
	}
	return nil
}

// Restore loads a backup produced by Backup
func (r *BadgerSubmissionRepository) Restore(rd io.Reader) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("panic occurred during restore: %v", rec)
		}
	}()
	if err := r.db.Load(rd, 4); err != nil {
		return fmt.Errorf("failed to restore database: %w", err)
	}
	return nil
}

// Clear drops every key in the database
func (r *BadgerSubmissionRepository) Clear() error {
	return r.db.DropAll()
}

func getSubmission(txn *badger.Txn, id int, submission *models.Submission) error {
	item, err := txn.Get(submissionKey(id))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	return item.Value(func(val []byte) error {
		return unmarshalEntity(val, submission)
	})
}
