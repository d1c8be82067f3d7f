// Package content holds the site's statically defined posts and authors.
//
// Posts live in posts/*.md as Markdown with a YAML front matter block and
// authors in authors.yaml. Both are embedded into the binary and parsed once
// at startup; the resulting Catalog is never mutated.
package content

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"strings"
	"time"

	"folio/app/models"

	"github.com/adrg/frontmatter"
	"gopkg.in/yaml.v3"
)

//go:embed posts/*.md authors.yaml
var embedded embed.FS

// ErrDuplicatePost is returned when two post files declare the same id.
var ErrDuplicatePost = errors.New("duplicate post id")

const dateLayout = "2006-01-02"

// Catalog is the full static data set.
type Catalog struct {
	Posts   []models.Post
	Authors []models.Author
}

type frontMatter struct {
	ID         models.PostID   `yaml:"id"`
	Title      string          `yaml:"title"`
	Subtitle   string          `yaml:"subtitle"`
	Excerpt    string          `yaml:"excerpt"`
	Image      string          `yaml:"image"`
	Path       string          `yaml:"path"`
	Related    []models.PostID `yaml:"related"`
	Created    string          `yaml:"created"`
	Modified   string          `yaml:"modified"`
	Published  *bool           `yaml:"published"`
	Featured   bool            `yaml:"featured"`
	Author     models.AuthorID `yaml:"author"`
	Subject    string          `yaml:"subject"`
	Keywords   []string        `yaml:"keywords"`
	Categories []string        `yaml:"categories"`
	Meta       *models.SEOMeta `yaml:"meta"`
}

// Load parses the embedded posts and authors.
func Load() (*Catalog, error) {
	return LoadFS(embedded)
}

// LoadFS parses posts/*.md and authors.yaml from fsys.
func LoadFS(fsys fs.FS) (*Catalog, error) {
	files, err := fs.Glob(fsys, "posts/*.md")
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}

	catalog := &Catalog{}
	seen := make(map[models.PostID]string, len(files))
	for _, name := range files {
		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", name, err)
		}
		post, err := parsePost(name, data)
		if err != nil {
			return nil, err
		}
		if prev, ok := seen[post.ID]; ok {
			return nil, fmt.Errorf("%w: %q in %s and %s", ErrDuplicatePost, post.ID, prev, name)
		}
		seen[post.ID] = name
		catalog.Posts = append(catalog.Posts, post)
	}

	authors, err := parseAuthors(fsys)
	if err != nil {
		return nil, err
	}
	catalog.Authors = authors

	return catalog, nil
}

func parsePost(name string, data []byte) (models.Post, error) {
	var fm frontMatter
	body, err := frontmatter.Parse(bytes.NewReader(data), &fm)
	if err != nil {
		return models.Post{}, fmt.Errorf("failed to parse front matter in %s: %w", name, err)
	}

	slug := strings.TrimSuffix(path.Base(name), path.Ext(name))
	if fm.ID == "" {
		fm.ID = models.PostID(slug)
	}
	if fm.Path == "" {
		fm.Path = slug
	}

	created, err := parseDate(fm.Created)
	if err != nil {
		return models.Post{}, fmt.Errorf("invalid created date in %s: %w", name, err)
	}
	modified := created
	if fm.Modified != "" {
		if modified, err = parseDate(fm.Modified); err != nil {
			return models.Post{}, fmt.Errorf("invalid modified date in %s: %w", name, err)
		}
	}

	published := true
	if fm.Published != nil {
		published = *fm.Published
	}

	post := models.Post{
		ID:             fm.ID,
		Title:          fm.Title,
		Subtitle:       fm.Subtitle,
		Excerpt:        strings.TrimSpace(fm.Excerpt),
		Image:          fm.Image,
		Path:           fm.Path,
		RelatedPostIDs: fm.Related,
		CreatedAt:      created,
		ModifiedAt:     modified,
		Published:      published,
		Featured:       fm.Featured,
		AuthorID:       fm.Author,
		Subject:        fm.Subject,
		Keywords:       fm.Keywords,
		Categories:     fm.Categories,
		Meta:           fm.Meta,
		Body:           strings.TrimSpace(string(body)),
	}
	if err := post.Validate(); err != nil {
		return models.Post{}, fmt.Errorf("invalid post %s: %w", name, err)
	}
	return post, nil
}

func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), nil
	}
	return time.Parse(dateLayout, s)
}

func parseAuthors(fsys fs.FS) ([]models.Author, error) {
	data, err := fs.ReadFile(fsys, "authors.yaml")
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read authors: %w", err)
	}

	var doc struct {
		Authors []models.Author `yaml:"authors"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse authors: %w", err)
	}
	for i := range doc.Authors {
		if err := doc.Authors[i].Validate(); err != nil {
			return nil, fmt.Errorf("invalid author %q: %w", doc.Authors[i].ID, err)
		}
	}
	return doc.Authors, nil
}

// Check reports references that do not resolve: related post ids, post
// authors and author post lists. None of these are fatal.
func (c *Catalog) Check() []string {
	posts := make(map[models.PostID]bool, len(c.Posts))
	for _, p := range c.Posts {
		posts[p.ID] = true
	}
	authors := make(map[models.AuthorID]bool, len(c.Authors))
	for _, a := range c.Authors {
		authors[a.ID] = true
	}

	var problems []string
	for _, p := range c.Posts {
		for _, rid := range p.RelatedPostIDs {
			if !posts[rid] {
				problems = append(problems, fmt.Sprintf("post %q: related post %q not found", p.ID, rid))
			}
		}
		if !authors[p.AuthorID] {
			problems = append(problems, fmt.Sprintf("post %q: author %q not found", p.ID, p.AuthorID))
		}
	}
	for _, a := range c.Authors {
		for _, pid := range a.PostIDs {
			if !posts[pid] {
				problems = append(problems, fmt.Sprintf("author %q: post %q not found", a.ID, pid))
			}
		}
	}
	return problems
}
