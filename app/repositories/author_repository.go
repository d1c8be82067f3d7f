package repositories

import "folio/app/models"

// MemoryAuthorRepository implements AuthorRepository over a fixed slice.
type MemoryAuthorRepository struct {
	authors []models.Author
}

// NewMemoryAuthorRepository creates a repository over a copy of authors.
func NewMemoryAuthorRepository(authors []models.Author) *MemoryAuthorRepository {
	cp := make([]models.Author, len(authors))
	copy(cp, authors)
	return &MemoryAuthorRepository{authors: cp}
}

// GetByID returns the author with the given id.
func (r *MemoryAuthorRepository) GetByID(id models.AuthorID) (*models.Author, bool) {
	for i := range r.authors {
		if r.authors[i].ID == id {
			a := r.authors[i]
			return &a, true
		}
	}
	return nil, false
}

// List returns every author.
func (r *MemoryAuthorRepository) List() []models.Author {
	out := make([]models.Author, len(r.authors))
	copy(out, r.authors)
	return out
}
