package controllers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"folio/app/feed"
	"folio/app/services"
)

// FeedController serves the RSS feed and the sitemap
type FeedController struct {
	Base
	postService *services.PostService
	maxAge      time.Duration
}

// NewFeedController creates a new FeedController
func NewFeedController(base Base, postService *services.PostService, maxAge time.Duration) *FeedController {
	return &FeedController{Base: base, postService: postService, maxAge: maxAge}
}

// RSS serves /rss.xml
func (fc *FeedController) RSS(w http.ResponseWriter, r *http.Request) {
	body, err := feed.RSS(fc.Site, fc.postService.ListPublished())
	if err != nil {
		fc.Logger.WithError(err).Error("Failed to build RSS feed")
		fc.sendError(w, r, "Failed to build feed", http.StatusInternalServerError)
		return
	}
	fc.serveXML(w, r, "application/rss+xml; charset=utf-8", body)
}

// Sitemap serves /sitemap.xml
func (fc *FeedController) Sitemap(w http.ResponseWriter, r *http.Request) {
	body, err := feed.Sitemap(fc.Site, fc.postService.ListPublished())
	if err != nil {
		fc.Logger.WithError(err).Error("Failed to build sitemap")
		fc.sendError(w, r, "Failed to build sitemap", http.StatusInternalServerError)
		return
	}
	fc.serveXML(w, r, "application/xml; charset=utf-8", body)
}

func (fc *FeedController) serveXML(w http.ResponseWriter, r *http.Request, contentType string, body []byte) {
	etag := feed.ETag(body)
	w.Header().Set("Cache-Control", "public, max-age="+strconv.Itoa(int(fc.maxAge.Seconds())))
	w.Header().Set("ETag", etag)

	if match := r.Header.Get("If-None-Match"); match != "" {
		for _, candidate := range strings.Split(match, ",") {
			candidate = strings.TrimSpace(candidate)
			if candidate == etag || candidate == "*" || strings.TrimPrefix(candidate, "W/") == etag {
				w.WriteHeader(http.StatusNotModified)
				return
			}
		}
	}

	w.Header().Set("Content-Type", contentType)
	_, _ = w.Write(body)
}
