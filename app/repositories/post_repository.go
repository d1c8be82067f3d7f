package repositories

import (
	"sort"
	"strings"

	"folio/app/models"
	"folio/app/search"
)

// MemoryPostRepository implements PostRepository over a fixed slice. The
// slice is copied on construction and never written afterwards, so the
// repository is safe for concurrent use without locking.
type MemoryPostRepository struct {
	posts   []models.Post
	authors AuthorRepository
}

// NewMemoryPostRepository creates a repository over a deep copy of posts. authors
// may be nil, in which case ByAuthor only matches on the post's author id.
func NewMemoryPostRepository(posts []models.Post, authors AuthorRepository) *MemoryPostRepository {
	cp := make([]models.Post, len(posts))
	for i := range posts {
		cp[i] = posts[i].Clone()
	}
	return &MemoryPostRepository{posts: cp, authors: authors}
}

// GetByID returns the first post with the given id.
func (r *MemoryPostRepository) GetByID(id models.PostID) (*models.Post, bool) {
	for i := range r.posts {
		if r.posts[i].ID == id {
			p := r.posts[i].Clone()
			return &p, true
		}
	}
	return nil, false
}

// GetByPath returns the first post whose path fragment equals path.
func (r *MemoryPostRepository) GetByPath(path string) (*models.Post, bool) {
	for i := range r.posts {
		if r.posts[i].Path == path {
			p := r.posts[i].Clone()
			return &p, true
		}
	}
	return nil, false
}

// All returns the published posts, most recently modified first.
func (r *MemoryPostRepository) All() []models.Post {
	posts := r.published(nil)
	sortByModified(posts)
	return posts
}

// MostRecent returns at most limit published posts, most recently modified first.
func (r *MemoryPostRepository) MostRecent(limit int) []models.PostSummary {
	return r.recent(limit, nil)
}

// Featured returns at most limit featured posts, most recently modified first.
func (r *MemoryPostRepository) Featured(limit int) []models.PostSummary {
	return r.recent(limit, func(p *models.Post) bool { return p.Featured })
}

// BySubject returns the published posts whose subject matches query.
func (r *MemoryPostRepository) BySubject(query string) []models.PostSummary {
	re, ok := search.Compile(query)
	if !ok {
		return []models.PostSummary{}
	}
	posts := r.published(func(p *models.Post) bool { return search.Matches(p.Subject, re) })
	sortByModified(posts)
	return summaries(posts)
}

// ByKeyword ranks the published posts against query. Posts that do not
// match at all are excluded; ties keep the most recently modified first.
func (r *MemoryPostRepository) ByKeyword(query string) []models.ScoredPost {
	re, ok := search.Compile(query)
	if !ok {
		return []models.ScoredPost{}
	}

	posts := r.published(nil)
	sortByModified(posts)

	results := []models.ScoredPost{}
	for i := range posts {
		if score := search.Score(&posts[i], re); score > 0 {
			results = append(results, models.ScoredPost{PostSummary: posts[i].Summary(), Score: score})
		}
	}
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	return results
}

// ByAuthor returns the published posts written by the author, either via
// the post's author id or the author's own post list.
func (r *MemoryPostRepository) ByAuthor(id models.AuthorID) []models.PostSummary {
	var author *models.Author
	if r.authors != nil {
		author, _ = r.authors.GetByID(id)
	}
	posts := r.published(func(p *models.Post) bool {
		return p.AuthorID == id || (author != nil && author.Owns(p.ID))
	})
	sortByModified(posts)
	return summaries(posts)
}

// ByCategory returns the published posts filed under category.
func (r *MemoryPostRepository) ByCategory(category string) []models.PostSummary {
	category = strings.TrimSpace(category)
	if category == "" {
		return []models.PostSummary{}
	}
	posts := r.published(func(p *models.Post) bool { return p.HasCategory(category) })
	sortByModified(posts)
	return summaries(posts)
}

// Related resolves the post's related ids. Ids that do not resolve to a
// published post are skipped.
func (r *MemoryPostRepository) Related(id models.PostID) []models.PostSummary {
	post, ok := r.GetByID(id)
	if !ok {
		return []models.PostSummary{}
	}
	out := make([]models.PostSummary, 0, len(post.RelatedPostIDs))
	for _, rid := range post.RelatedPostIDs {
		if related, ok := r.GetByID(rid); ok && related.Published {
			out = append(out, related.Summary())
		}
	}
	return out
}

// Categories returns every category used by a published post, sorted.
func (r *MemoryPostRepository) Categories() []string {
	seen := make(map[string]bool)
	var out []string
	for _, p := range r.published(nil) {
		for _, c := range p.Categories {
			key := strings.ToLower(c)
			if !seen[key] {
				seen[key] = true
				out = append(out, c)
			}
		}
	}
	sort.Strings(out)
	return out
}

func (r *MemoryPostRepository) recent(limit int, keep func(*models.Post) bool) []models.PostSummary {
	if limit <= 0 {
		return []models.PostSummary{}
	}
	posts := r.published(keep)
	sortByModified(posts)
	if len(posts) > limit {
		posts = posts[:limit]
	}
	return summaries(posts)
}

// published returns a copy of the published posts accepted by keep.
func (r *MemoryPostRepository) published(keep func(*models.Post) bool) []models.Post {
	out := make([]models.Post, 0, len(r.posts))
	for i := range r.posts {
		p := &r.posts[i]
		if !p.Published {
			continue
		}
		if keep != nil && !keep(p) {
			continue
		}
		out = append(out, p.Clone())
	}
	return out
}

func sortByModified(posts []models.Post) {
	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].ModifiedAt.After(posts[j].ModifiedAt)
	})
}

func summaries(posts []models.Post) []models.PostSummary {
	out := make([]models.PostSummary, len(posts))
	for i := range posts {
		out[i] = posts[i].Summary()
	}
	return out
}
