// Package feed renders the RSS channel and the sitemap for published posts.
package feed

import (
	"bytes"
	"encoding/hex"
	"encoding/xml"
	"fmt"
	"strings"
	"time"

	"folio/app/models"

	"golang.org/x/crypto/sha3"
)

// Site describes the site the documents are generated for.
type Site struct {
	Title       string
	Description string
	BaseURL     string
	Author      string
	Language    string
}

func (s Site) url(path string) string {
	return strings.TrimRight(s.BaseURL, "/") + path
}

type rss struct {
	XMLName xml.Name `xml:"rss"`
	Version string   `xml:"version,attr"`
	Channel channel  `xml:"channel"`
}

type channel struct {
	Title         string `xml:"title"`
	Link          string `xml:"link"`
	Description   string `xml:"description"`
	Language      string `xml:"language,omitempty"`
	LastBuildDate string `xml:"lastBuildDate,omitempty"`
	Items         []item `xml:"item"`
}

type item struct {
	Title       string   `xml:"title"`
	Link        string   `xml:"link"`
	GUID        guid     `xml:"guid"`
	PubDate     string   `xml:"pubDate"`
	Description string   `xml:"description,omitempty"`
	Categories  []string `xml:"category"`
}

type guid struct {
	IsPermaLink bool   `xml:"isPermaLink,attr"`
	Value       string `xml:",chardata"`
}

// RSS renders an RSS 2.0 document with one item per post, in the order
// given. lastBuildDate is the newest modification time among the posts.
func RSS(site Site, posts []models.Post) ([]byte, error) {
	ch := channel{
		Title:       site.Title,
		Link:        site.url("/"),
		Description: site.Description,
		Language:    site.Language,
		Items:       make([]item, 0, len(posts)),
	}

	var newest time.Time
	for _, p := range posts {
		if p.ModifiedAt.After(newest) {
			newest = p.ModifiedAt
		}
		link := p.URL(site.BaseURL)
		ch.Items = append(ch.Items, item{
			Title:       p.Title,
			Link:        link,
			GUID:        guid{IsPermaLink: true, Value: link},
			PubDate:     p.CreatedAt.UTC().Format(time.RFC1123Z),
			Description: p.Excerpt,
			Categories:  p.Categories,
		})
	}
	if !newest.IsZero() {
		ch.LastBuildDate = newest.UTC().Format(time.RFC1123Z)
	}

	return encode(rss{Version: "2.0", Channel: ch})
}

// Change frequencies and priorities used in the sitemap.
const (
	FreqDaily   = "daily"
	FreqWeekly  = "weekly"
	FreqMonthly = "monthly"
)

type urlset struct {
	XMLName xml.Name `xml:"urlset"`
	XMLNS   string   `xml:"xmlns,attr"`
	URLs    []URL    `xml:"url"`
}

// URL is one sitemap entry.
type URL struct {
	Loc        string  `xml:"loc"`
	LastMod    string  `xml:"lastmod,omitempty"`
	ChangeFreq string  `xml:"changefreq"`
	Priority   float64 `xml:"priority"`
}

// Entries lists the sitemap entries: the static pages followed by one
// entry per post.
func Entries(site Site, posts []models.Post) []URL {
	urls := []URL{
		{Loc: site.url("/"), ChangeFreq: FreqDaily, Priority: 1.0},
		{Loc: site.url("/about"), ChangeFreq: FreqMonthly, Priority: 0.5},
		{Loc: site.url("/blog"), ChangeFreq: FreqWeekly, Priority: 0.8},
	}
	for _, p := range posts {
		urls = append(urls, URL{
			Loc:        p.URL(site.BaseURL),
			LastMod:    p.ModifiedAt.UTC().Format("2006-01-02"),
			ChangeFreq: FreqMonthly,
			Priority:   0.7,
		})
	}
	return urls
}

// Sitemap renders the sitemap protocol document for Entries.
func Sitemap(site Site, posts []models.Post) ([]byte, error) {
	return encode(urlset{
		XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs:  Entries(site, posts),
	})
}

func encode(v any) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	enc := xml.NewEncoder(&buf)
	enc.Indent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, fmt.Errorf("encode xml: %w", err)
	}
	return buf.Bytes(), nil
}

// ETag returns a strong entity tag for body.
func ETag(body []byte) string {
	sum := sha3.Sum256(body)
	return `"` + hex.EncodeToString(sum[:16]) + `"`
}
