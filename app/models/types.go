package models

import "time"

// PostID identifies a blog post. It is deliberately distinct from AuthorID so
// the two cannot be swapped without an explicit conversion.
type PostID string

// AuthorID identifies an author.
type AuthorID string

// SEOMeta holds optional overrides for search engine and social metadata.
type SEOMeta struct {
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	Image       string `json:"image,omitempty"`
	Canonical   string `json:"canonical,omitempty" validate:"omitempty,url"`
}

// Post represents a statically defined blog article.
type Post struct {
	ID             PostID    `json:"id" validate:"required"`
	Title          string    `json:"title" validate:"required,min=3,max=200"`
	Subtitle       string    `json:"subtitle,omitempty"`
	Excerpt        string    `json:"excerpt" validate:"max=500"`
	Image          string    `json:"image,omitempty"`
	Path           string    `json:"path" validate:"required,excludesall=/?#"`
	RelatedPostIDs []PostID  `json:"relatedPostIds,omitempty"`
	CreatedAt      time.Time `json:"createdAt" validate:"required"`
	ModifiedAt     time.Time `json:"modifiedAt" validate:"required"`
	Published      bool      `json:"published"`
	Featured       bool      `json:"featured"`
	AuthorID       AuthorID  `json:"authorId" validate:"required"`
	Subject        string    `json:"subject,omitempty"`
	Keywords       []string  `json:"keywords,omitempty"`
	Categories     []string  `json:"categories,omitempty"`
	Meta           *SEOMeta  `json:"meta,omitempty"`
	Body           string    `json:"-" validate:"-"`
}

// PostSummary is the lightweight projection of a Post used by listings.
type PostSummary struct {
	ID         PostID    `json:"id"`
	Title      string    `json:"title"`
	Subtitle   string    `json:"subtitle,omitempty"`
	Excerpt    string    `json:"excerpt"`
	Image      string    `json:"image,omitempty"`
	Path       string    `json:"path"`
	CreatedAt  time.Time `json:"createdAt"`
	ModifiedAt time.Time `json:"modifiedAt"`
	Featured   bool      `json:"featured"`
	AuthorID   AuthorID  `json:"authorId"`
	Categories []string  `json:"categories,omitempty"`
}

// Author represents the writer of one or more posts.
type Author struct {
	ID      AuthorID `json:"id" yaml:"id" validate:"required"`
	Name    string   `json:"name" yaml:"name" validate:"required,min=2,max=100"`
	Avatar  string   `json:"avatar,omitempty" yaml:"avatar"`
	Bio     string   `json:"bio,omitempty" yaml:"bio"`
	PostIDs []PostID `json:"postIds,omitempty" yaml:"posts"`
}

// ScoredPost is a search hit with its relevance score.
type ScoredPost struct {
	PostSummary
	Score float64 `json:"score"`
}
