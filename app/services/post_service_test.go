package services

import (
	"strings"
	"testing"

	"folio/app/content"
	"folio/app/models"
	"folio/app/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupPostService(t *testing.T) *PostService {
	t.Helper()
	catalog, err := content.Load()
	require.NoError(t, err)
	authors := repositories.NewMemoryAuthorRepository(catalog.Authors)
	posts := repositories.NewMemoryPostRepository(catalog.Posts, authors)
	return NewPostService(posts, authors)
}

func ids(items []models.PostSummary) []models.PostID {
	out := make([]models.PostID, len(items))
	for i, item := range items {
		out[i] = item.ID
	}
	return out
}

func TestPostService(t *testing.T) {
	service := setupPostService(t)

	t.Run("get by id", func(t *testing.T) {
		post, ok := service.GetBlogPostByID("design-tokens-at-scale")
		require.True(t, ok)
		assert.Equal(t, "Design Tokens at Scale", post.Title)

		_, ok = service.GetBlogPostByID("does-not-exist")
		assert.False(t, ok)
	})

	t.Run("get by path", func(t *testing.T) {
		post, ok := service.GetPostByPath("layout-primitives")
		require.True(t, ok)
		assert.Equal(t, models.PostID("layout-primitives"), post.ID)
	})

	t.Run("most recent", func(t *testing.T) {
		assert.Equal(t, []models.PostID{
			"variants-appearance-paint",
			"design-tokens-at-scale",
			"data-attributes-as-api",
		}, ids(service.GetMostRecentPosts(3)))
		assert.Empty(t, service.GetMostRecentPosts(0))
	})

	t.Run("featured", func(t *testing.T) {
		assert.Equal(t, []models.PostID{
			"variants-appearance-paint",
			"design-tokens-at-scale",
		}, ids(service.GetFeaturedPosts(10)))
	})

	t.Run("drafts are not listed", func(t *testing.T) {
		for _, p := range service.ListPublished() {
			assert.NotEqual(t, models.PostID("theming-drafts"), p.ID)
		}
		_, ok := service.GetBlogPostByID("theming-drafts")
		assert.True(t, ok)
	})

	t.Run("all posts and authors", func(t *testing.T) {
		all := service.GetAllPosts()
		assert.Len(t, all, 5)
		assert.Equal(t, models.PostID("variants-appearance-paint"), all[0].ID)
		assert.Len(t, service.GetAuthors(), 2)
	})

	t.Run("by author", func(t *testing.T) {
		assert.Equal(t, []models.PostID{"accessible-color-contrast"}, ids(service.GetPostsUsingAuthor("sam")))
		assert.Empty(t, service.GetPostsUsingAuthor("nobody"))

		author, ok := service.GetAuthor("sam")
		require.True(t, ok)
		assert.Equal(t, "Sam Okafor", author.Name)
	})

	t.Run("by keyword", func(t *testing.T) {
		hits := service.GetPostsByKeyword("contrast")
		require.NotEmpty(t, hits)
		assert.Equal(t, models.PostID("accessible-color-contrast"), hits[0].ID)
		assert.Empty(t, service.GetPostsByKeyword(""))
	})

	t.Run("by subject", func(t *testing.T) {
		got := ids(service.GetPostsBySubject("layout"))
		assert.Equal(t, []models.PostID{"layout-primitives"}, got)
	})

	t.Run("by category", func(t *testing.T) {
		got := ids(service.GetPostsByCategory("css"))
		assert.ElementsMatch(t, []models.PostID{"layout-primitives", "data-attributes-as-api"}, got)
		assert.Contains(t, service.Categories(), "CSS")
	})

	t.Run("related skips missing ids", func(t *testing.T) {
		assert.Equal(t, []models.PostID{"variants-appearance-paint"}, ids(service.GetRelatedPosts("layout-primitives")))
		assert.Empty(t, service.GetRelatedPosts("does-not-exist"))
	})
}

func TestPostServiceRender(t *testing.T) {
	service := setupPostService(t)

	post := &models.Post{
		ID:   "render-me",
		Body: "# Hello World\n\n| a | b |\n|---|---|\n| 1 | 2 |\n\n<script>alert(1)</script>\n",
	}
	html, err := service.Render(post)
	require.NoError(t, err)
	out := string(html)
	assert.Contains(t, out, `<h1 id="hello-world">Hello World</h1>`)
	assert.Contains(t, out, "<table>")
	assert.NotContains(t, out, "<script>")

	// Rendered output is cached per id.
	post.Body = "changed"
	again, err := service.Render(post)
	require.NoError(t, err)
	assert.Equal(t, html, again)

	empty, err := service.Render(nil)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestRenderCatalogPosts(t *testing.T) {
	service := setupPostService(t)
	for _, post := range service.ListPublished() {
		post := post
		html, err := service.Render(&post)
		require.NoError(t, err, post.ID)
		assert.True(t, strings.Contains(string(html), "<h1") || strings.Contains(string(html), "<p>"), post.ID)
	}
}
