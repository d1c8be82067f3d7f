package controllers

import (
	"html/template"
	"net/http"
	"strings"

	"folio/app/models"
	"folio/app/services"

	"github.com/gorilla/mux"
)

// PostController handles HTTP requests for blog posts
type PostController struct {
	Base
	postService *services.PostService
}

// NewPostController creates a new PostController
func NewPostController(base Base, postService *services.PostService) *PostController {
	return &PostController{Base: base, postService: postService}
}

// Index lists published posts, optionally filtered by ?category=
func (pc *PostController) Index(w http.ResponseWriter, r *http.Request) {
	category := strings.TrimSpace(r.URL.Query().Get("category"))

	var posts []models.PostSummary
	if category != "" {
		posts = pc.postService.GetPostsByCategory(category)
	} else {
		posts = pc.postService.GetAllPosts()
	}

	if isAPIRequest(r) {
		pc.sendJSON(w, http.StatusOK, map[string]interface{}{
			"posts":    posts,
			"category": category,
		})
		return
	}

	title := "Blog"
	if category != "" {
		title = category
	}
	data := struct {
		Page
		Posts      []models.PostSummary
		Category   string
		Categories []string
	}{
		Page:       pc.page(title, ""),
		Posts:      posts,
		Category:   category,
		Categories: pc.postService.Categories(),
	}
	pc.render(w, r, http.StatusOK, "posts/index", data)
}

// Show handles displaying a single post by its path
func (pc *PostController) Show(w http.ResponseWriter, r *http.Request) {
	path := mux.Vars(r)["path"]

	post, ok := pc.postService.GetPostByPath(path)
	if !ok || !post.Published {
		pc.sendError(w, r, "Post not found", http.StatusNotFound)
		return
	}

	body, err := pc.postService.Render(post)
	if err != nil {
		pc.Logger.WithError(err).WithField("post", post.ID).Error("Failed to render post")
		pc.sendError(w, r, "Failed to render post", http.StatusInternalServerError)
		return
	}
	related := pc.postService.GetRelatedPosts(post.ID)
	author, _ := pc.postService.GetAuthor(post.AuthorID)

	if isAPIRequest(r) {
		pc.sendJSON(w, http.StatusOK, map[string]interface{}{
			"post":    post,
			"html":    body,
			"author":  author,
			"related": related,
		})
		return
	}

	data := struct {
		Page
		Post    *models.Post
		Body    template.HTML
		Author  *models.Author
		Related []models.PostSummary
	}{
		Page:    pc.page(post.SEOTitle(), post.SEODescription()),
		Post:    post,
		Body:    body,
		Author:  author,
		Related: related,
	}
	data.Canonical = post.URL(pc.Site.BaseURL)
	if post.Meta != nil && post.Meta.Canonical != "" {
		data.Canonical = post.Meta.Canonical
	}
	pc.render(w, r, http.StatusOK, "posts/show", data)
}

// Search ranks posts by ?q= keyword relevance, or matches ?subject=
func (pc *PostController) Search(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	subject := strings.TrimSpace(r.URL.Query().Get("subject"))

	var results []models.ScoredPost
	switch {
	case query != "":
		results = pc.postService.GetPostsByKeyword(query)
	case subject != "":
		query = subject
		for _, p := range pc.postService.GetPostsBySubject(subject) {
			results = append(results, models.ScoredPost{PostSummary: p})
		}
	}
	if results == nil {
		results = []models.ScoredPost{}
	}

	if isAPIRequest(r) {
		pc.sendJSON(w, http.StatusOK, map[string]interface{}{
			"query":   query,
			"results": results,
		})
		return
	}

	data := struct {
		Page
		Results []models.ScoredPost
	}{
		Page:    pc.page("Search", ""),
		Results: results,
	}
	data.Query = query
	pc.render(w, r, http.StatusOK, "posts/search", data)
}

// ByAuthor lists an author's published posts
func (pc *PostController) ByAuthor(w http.ResponseWriter, r *http.Request) {
	id := models.AuthorID(mux.Vars(r)["id"])

	author, ok := pc.postService.GetAuthor(id)
	if !ok {
		pc.sendError(w, r, "Author not found", http.StatusNotFound)
		return
	}
	posts := pc.postService.GetPostsUsingAuthor(id)

	if isAPIRequest(r) {
		pc.sendJSON(w, http.StatusOK, map[string]interface{}{
			"author": author,
			"posts":  posts,
		})
		return
	}

	data := struct {
		Page
		Author *models.Author
		Posts  []models.PostSummary
	}{
		Page:   pc.page(author.Name, author.Bio),
		Author: author,
		Posts:  posts,
	}
	pc.render(w, r, http.StatusOK, "posts/author", data)
}
