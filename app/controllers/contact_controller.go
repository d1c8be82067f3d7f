package controllers

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"strings"

	"folio/app/services"
)

// ContactSubmitter processes a contact form submission.
type ContactSubmitter interface {
	Submit(ctx context.Context, form services.ContactForm, remoteIP string) services.ContactState
}

// ContactController handles the contact form
type ContactController struct {
	Base
	contact ContactSubmitter
}

// NewContactController creates a new ContactController
func NewContactController(base Base, contact ContactSubmitter) *ContactController {
	return &ContactController{Base: base, contact: contact}
}

type contactView struct {
	Page
	Form   services.ContactForm
	State  *services.ContactState
	Errors map[string]string
}

// New displays the empty form
func (cc *ContactController) New(w http.ResponseWriter, r *http.Request) {
	cc.render(w, r, http.StatusOK, "contact/new", contactView{Page: cc.page("Contact", "")})
}

// Create handles a form post or a JSON submission
func (cc *ContactController) Create(w http.ResponseWriter, r *http.Request) {
	var form services.ContactForm
	if isAPIRequest(r) || strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		r.Body = http.MaxBytesReader(w, r.Body, 64<<10)
		if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
			cc.sendError(w, r, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
			return
		}
	} else {
		if err := r.ParseForm(); err != nil {
			cc.sendError(w, r, "Failed to parse form: "+err.Error(), http.StatusBadRequest)
			return
		}
		form.Name = r.FormValue("name")
		form.Email = r.FormValue("email")
		form.Message = r.FormValue("message")
	}

	state := cc.contact.Submit(r.Context(), form, remoteIP(r))
	status := statusCode(state.Status)

	if isAPIRequest(r) {
		cc.sendJSON(w, status, state)
		return
	}

	view := contactView{
		Page:   cc.page("Contact", ""),
		Form:   form,
		State:  &state,
		Errors: state.FieldErrors,
	}
	if state.Reset {
		view.Form = services.ContactForm{}
	}
	cc.render(w, r, status, "contact/new", view)
}

func statusCode(status services.ContactStatus) int {
	switch status {
	case services.ContactSuccess:
		return http.StatusOK
	case services.ContactValidationError:
		return http.StatusBadRequest
	default:
		return http.StatusBadGateway
	}
}

// remoteIP prefers proxy headers over the connection address.
func remoteIP(r *http.Request) string {
	if cfIP := r.Header.Get("CF-Connecting-IP"); cfIP != "" {
		return cfIP
	}

	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		parts := strings.Split(forwarded, ",")
		return strings.TrimSpace(parts[0])
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
