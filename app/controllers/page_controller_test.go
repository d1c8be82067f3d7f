package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPageController(t *testing.T) {
	router := setupRouter(t, &stubContact{})

	t.Run("home page", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		body := w.Body.String()
		assert.Contains(t, body, "<title>Folio</title>")
		assert.Contains(t, body, "Variants, Appearance and Paint")
		assert.Contains(t, body, `data-featured="true"`)
		assert.Contains(t, body, `data-variant="primary"`)
		assert.NotContains(t, body, "Notes on Runtime Theming")
	})

	t.Run("home json", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Accept", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		var response struct {
			Featured []map[string]any `json:"featured"`
			Recent   []map[string]any `json:"recent"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Len(t, response.Featured, 2)
		assert.Len(t, response.Recent, 5)
	})

	t.Run("about page", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/about", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		body := w.Body.String()
		assert.Contains(t, body, "<title>About | Folio</title>")
		assert.Contains(t, body, "Sam Okafor")
		assert.Contains(t, body, `data-testid="author-sam"`)
	})
}
