package search

import (
	"regexp"

	"folio/app/models"
)

// Field weights. Title matches dominate the ranking.
const (
	TitleWeight    = 3.0
	KeywordWeight  = 2.0
	CategoryWeight = 1.5
	ExcerptWeight  = 1.0
)

// Score sums the weighted match counts of re across the post's title,
// keywords, categories and excerpt. Every match counts, so a term that
// appears twice in a title contributes twice.
func Score(post *models.Post, re *regexp.Regexp) float64 {
	if post == nil || re == nil {
		return 0
	}

	score := TitleWeight * float64(count(post.Title, re))
	for _, k := range post.Keywords {
		score += KeywordWeight * float64(count(k, re))
	}
	for _, c := range post.Categories {
		score += CategoryWeight * float64(count(c, re))
	}
	score += ExcerptWeight * float64(count(post.Excerpt, re))
	return score
}

// Matches reports whether text contains re at least once.
func Matches(text string, re *regexp.Regexp) bool {
	return re != nil && re.MatchString(text)
}

func count(text string, re *regexp.Regexp) int {
	if text == "" {
		return 0
	}
	return len(re.FindAllStringIndex(text, -1))
}
