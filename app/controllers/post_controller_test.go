package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostController(t *testing.T) {
	router := setupRouter(t, &stubContact{})

	get := func(path, accept string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		if accept != "" {
			req.Header.Set("Accept", accept)
		}
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	t.Run("index lists published posts", func(t *testing.T) {
		w := get("/blog", "")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Layout Primitives")
		assert.NotContains(t, w.Body.String(), "Notes on Runtime Theming")
	})

	t.Run("index filters by category", func(t *testing.T) {
		w := get("/api/posts?category=accessibility", "")
		assert.Equal(t, http.StatusOK, w.Code)

		var response struct {
			Posts    []struct{ ID string } `json:"posts"`
			Category string                `json:"category"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		require.Len(t, response.Posts, 1)
		assert.Equal(t, "accessible-color-contrast", response.Posts[0].ID)
		assert.Equal(t, "accessibility", response.Category)
	})

	t.Run("show renders markdown", func(t *testing.T) {
		w := get("/blog/design-tokens-at-scale", "")
		assert.Equal(t, http.StatusOK, w.Code)
		body := w.Body.String()
		assert.Contains(t, body, "<title>Design Tokens at Scale | Morgan Reyes | Folio</title>")
		assert.Contains(t, body, `<h2 id="three-tiers">Three tiers</h2>`)
		assert.Contains(t, body, `href="/authors/morgan"`)
		assert.Contains(t, body, `data-post-id="design-tokens-at-scale"`)
		assert.Contains(t, body, `<link rel="canonical" href="https://example.com/blog/design-tokens-at-scale">`)
		assert.Contains(t, body, "Related posts")
	})

	t.Run("show json", func(t *testing.T) {
		w := get("/api/posts/layout-primitives", "")
		assert.Equal(t, http.StatusOK, w.Code)

		var response struct {
			Post    struct{ ID string }   `json:"post"`
			HTML    string                `json:"html"`
			Related []struct{ ID string } `json:"related"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, "layout-primitives", response.Post.ID)
		assert.Contains(t, response.HTML, "<h1")
		require.Len(t, response.Related, 1)
		assert.Equal(t, "variants-appearance-paint", response.Related[0].ID)
	})

	t.Run("unknown post is not found", func(t *testing.T) {
		assert.Equal(t, http.StatusNotFound, get("/blog/no-such-post", "").Code)

		w := get("/api/posts/no-such-post", "")
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.JSONEq(t, `{"error":"Post not found"}`, w.Body.String())
	})

	t.Run("drafts are not served", func(t *testing.T) {
		assert.Equal(t, http.StatusNotFound, get("/blog/theming-drafts", "").Code)
	})

	t.Run("keyword search", func(t *testing.T) {
		w := get("/search?q=contrast", "application/json")
		assert.Equal(t, http.StatusOK, w.Code)

		var response struct {
			Query   string `json:"query"`
			Results []struct {
				ID    string  `json:"id"`
				Score float64 `json:"score"`
			} `json:"results"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		require.NotEmpty(t, response.Results)
		assert.Equal(t, "accessible-color-contrast", response.Results[0].ID)
		assert.Greater(t, response.Results[0].Score, 0.0)
	})

	t.Run("subject search", func(t *testing.T) {
		w := get("/search?subject=layout", "")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Layout Primitives")
		assert.Contains(t, w.Body.String(), `value="layout"`)
	})

	t.Run("empty search", func(t *testing.T) {
		w := get("/search", "application/json")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"query":"","results":[]}`, w.Body.String())
	})

	t.Run("hostile search query", func(t *testing.T) {
		w := get("/search?q=%3Cscript%3E(.*", "")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.NotContains(t, w.Body.String(), "<script>(")
	})

	t.Run("by author", func(t *testing.T) {
		w := get("/authors/sam", "")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Accessible Color Contrast in Themes")

		assert.Equal(t, http.StatusNotFound, get("/authors/nobody", "").Code)
	})
}
