package services

import (
	"bytes"
	"fmt"
	"html/template"
	"sync"

	"folio/app/models"
	"folio/app/repositories"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
)

// PostService handles the read side of the blog
type PostService struct {
	postRepo   repositories.PostRepository
	authorRepo repositories.AuthorRepository
	markdown   goldmark.Markdown

	mu       sync.RWMutex
	rendered map[models.PostID]template.HTML
}

// NewPostService creates a new PostService
func NewPostService(postRepo repositories.PostRepository, authorRepo repositories.AuthorRepository) *PostService {
	return &PostService{
		postRepo:   postRepo,
		authorRepo: authorRepo,
		markdown: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithParserOptions(parser.WithAutoHeadingID()),
		),
		rendered: make(map[models.PostID]template.HTML),
	}
}

// GetBlogPostByID returns the post with the given id, drafts included.
func (s *PostService) GetBlogPostByID(id models.PostID) (*models.Post, bool) {
	return s.postRepo.GetByID(id)
}

// GetPostByPath resolves a URL slug.
func (s *PostService) GetPostByPath(path string) (*models.Post, bool) {
	return s.postRepo.GetByPath(path)
}

// GetMostRecentPosts returns up to limit published posts, newest first
func (s *PostService) GetMostRecentPosts(limit int) []models.PostSummary {
	return s.postRepo.MostRecent(limit)
}

// GetFeaturedPosts returns up to limit featured posts, newest first
func (s *PostService) GetFeaturedPosts(limit int) []models.PostSummary {
	return s.postRepo.Featured(limit)
}

// GetPostsBySubject matches the query against post subjects
func (s *PostService) GetPostsBySubject(query string) []models.PostSummary {
	return s.postRepo.BySubject(query)
}

// GetPostsByKeyword ranks posts by weighted keyword relevance
func (s *PostService) GetPostsByKeyword(query string) []models.ScoredPost {
	return s.postRepo.ByKeyword(query)
}

// GetPostsUsingAuthor lists the published posts an author wrote
func (s *PostService) GetPostsUsingAuthor(id models.AuthorID) []models.PostSummary {
	return s.postRepo.ByAuthor(id)
}

// GetPostsByCategory lists published posts in a category
func (s *PostService) GetPostsByCategory(category string) []models.PostSummary {
	return s.postRepo.ByCategory(category)
}

// GetRelatedPosts resolves a post's related ids, skipping missing ones
func (s *PostService) GetRelatedPosts(id models.PostID) []models.PostSummary {
	return s.postRepo.Related(id)
}

// GetAuthor looks up an author
func (s *PostService) GetAuthor(id models.AuthorID) (*models.Author, bool) {
	if s.authorRepo == nil {
		return nil, false
	}
	return s.authorRepo.GetByID(id)
}

// ListPublished returns every published post, newest first
func (s *PostService) ListPublished() []models.Post {
	return s.postRepo.All()
}

// GetAllPosts summarizes every published post, newest first
func (s *PostService) GetAllPosts() []models.PostSummary {
	posts := s.postRepo.All()
	out := make([]models.PostSummary, len(posts))
	for i := range posts {
		out[i] = posts[i].Summary()
	}
	return out
}

// GetAuthors lists every author
func (s *PostService) GetAuthors() []models.Author {
	if s.authorRepo == nil {
		return []models.Author{}
	}
	return s.authorRepo.List()
}

// Categories returns the distinct categories of published posts
func (s *PostService) Categories() []string {
	return s.postRepo.Categories()
}

// Render converts the post body from Markdown to HTML. Output is cached
// per post id; posts are immutable for the life of the process.
func (s *PostService) Render(post *models.Post) (template.HTML, error) {
	if post == nil {
		return "", nil
	}

	s.mu.RLock()
	html, ok := s.rendered[post.ID]
	s.mu.RUnlock()
	if ok {
		return html, nil
	}

	var buf bytes.Buffer
	if err := s.markdown.Convert([]byte(post.Body), &buf); err != nil {
		return "", fmt.Errorf("render post %s: %w", post.ID, err)
	}
	html = template.HTML(buf.String())

	s.mu.Lock()
	s.rendered[post.ID] = html
	s.mu.Unlock()
	return html, nil
}
