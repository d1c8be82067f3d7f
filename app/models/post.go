package models

import (
	"errors"
	"slices"
	"strings"
)

// Validate checks if the post meets all validation requirements
func (p *Post) Validate() error {
	if err := validate.Struct(p); err != nil {
		return err
	}

	if p.ModifiedAt.Before(p.CreatedAt) {
		return errors.New("modified_at cannot precede created_at")
	}

	return nil
}

// Summary returns the listing projection of the post.
func (p *Post) Summary() PostSummary {
	return PostSummary{
		ID:         p.ID,
		Title:      p.Title,
		Subtitle:   p.Subtitle,
		Excerpt:    p.Excerpt,
		Image:      p.Image,
		Path:       p.Path,
		CreatedAt:  p.CreatedAt,
		ModifiedAt: p.ModifiedAt,
		Featured:   p.Featured,
		AuthorID:   p.AuthorID,
		Categories: slices.Clone(p.Categories),
	}
}

// Clone returns a deep copy of the post; no slice or pointer is shared.
func (p *Post) Clone() Post {
	cp := *p
	cp.RelatedPostIDs = slices.Clone(p.RelatedPostIDs)
	cp.Keywords = slices.Clone(p.Keywords)
	cp.Categories = slices.Clone(p.Categories)
	if p.Meta != nil {
		meta := *p.Meta
		cp.Meta = &meta
	}
	return cp
}

// URL returns the absolute address of the post below baseURL.
func (p *Post) URL(baseURL string) string {
	return strings.TrimRight(baseURL, "/") + "/blog/" + p.Path
}

// SEOTitle returns the SEO title override or the post title.
func (p *Post) SEOTitle() string {
	if p.Meta != nil && p.Meta.Title != "" {
		return p.Meta.Title
	}
	return p.Title
}

// SEODescription returns the SEO description override or the excerpt.
func (p *Post) SEODescription() string {
	if p.Meta != nil && p.Meta.Description != "" {
		return p.Meta.Description
	}
	return p.Excerpt
}

// HasCategory reports whether the post is filed under category, ignoring case.
func (p *Post) HasCategory(category string) bool {
	for _, c := range p.Categories {
		if strings.EqualFold(c, category) {
			return true
		}
	}
	return false
}
