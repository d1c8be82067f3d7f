package controllers

import (
	"net/http"

	"folio/app/models"
	"folio/app/services"
)

const (
	homeFeaturedLimit = 3
	homeRecentLimit   = 5
)

// PageController serves the marketing pages
type PageController struct {
	Base
	postService *services.PostService
}

// NewPageController creates a new PageController
func NewPageController(base Base, postService *services.PostService) *PageController {
	return &PageController{Base: base, postService: postService}
}

// Home shows featured and recent posts
func (pc *PageController) Home(w http.ResponseWriter, r *http.Request) {
	featured := pc.postService.GetFeaturedPosts(homeFeaturedLimit)
	recent := pc.postService.GetMostRecentPosts(homeRecentLimit)

	if isAPIRequest(r) {
		pc.sendJSON(w, http.StatusOK, map[string]interface{}{
			"featured": featured,
			"recent":   recent,
		})
		return
	}

	data := struct {
		Page
		Featured []models.PostSummary
		Recent   []models.PostSummary
	}{
		Page:     pc.page("", ""),
		Featured: featured,
		Recent:   recent,
	}
	data.Canonical = pc.Site.BaseURL
	pc.render(w, r, http.StatusOK, "home", data)
}

// About shows the authors
func (pc *PageController) About(w http.ResponseWriter, r *http.Request) {
	authors := pc.postService.GetAuthors()

	if isAPIRequest(r) {
		pc.sendJSON(w, http.StatusOK, map[string]interface{}{"authors": authors})
		return
	}

	data := struct {
		Page
		Authors []models.Author
	}{
		Page:    pc.page("About", ""),
		Authors: authors,
	}
	pc.render(w, r, http.StatusOK, "about", data)
}
