package services

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"html"
	"reflect"
	"strings"
	"time"

	"folio/app/mail"
	"folio/app/metrics"
	"folio/app/models"
	"folio/app/repositories"
	"folio/logging"

	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/sha3"
)

// ContactStatus is the outcome of a contact form submission.
type ContactStatus string

const (
	ContactSuccess         ContactStatus = "success"
	ContactError           ContactStatus = "error"
	ContactUnknownError    ContactStatus = "unknown_error"
	ContactValidationError ContactStatus = "validation_error"
)

// Messages shown to the visitor for each outcome.
const (
	MessageSuccess    = "Thanks for reaching out! I'll get back to you soon."
	MessageValidation = "Please correct the highlighted fields and try again."
	MessageError      = "Your message could not be sent."
	MessageUnknown    = "Something went wrong while sending your message. Please try again later."
)

// ContactForm is the visitor-supplied part of a submission.
type ContactForm struct {
	Name    string `json:"name" validate:"required,min=2,max=100"`
	Email   string `json:"email" validate:"required,email,max=254"`
	Message string `json:"message" validate:"required,min=10,max=5000"`
}

// ContactState is what the form renders after a submission. Reset tells
// the client to clear its inputs.
type ContactState struct {
	Status      ContactStatus     `json:"status"`
	Message     string            `json:"message"`
	FieldErrors map[string]string `json:"fieldErrors,omitempty"`
	Reset       bool              `json:"reset"`
	Reference   string            `json:"reference,omitempty"`
}

var formValidator = newFormValidator()

func newFormValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Normalize trims surrounding whitespace from every field.
func (f *ContactForm) Normalize() {
	f.Name = strings.TrimSpace(f.Name)
	f.Email = strings.TrimSpace(f.Email)
	f.Message = strings.TrimSpace(f.Message)
}

// Validate returns a message per invalid field, keyed by the field's form
// name. A valid form yields nil.
func (f ContactForm) Validate() map[string]string {
	err := formValidator.Struct(f)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return map[string]string{"form": err.Error()}
	}

	out := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		if _, seen := out[fe.Field()]; seen {
			continue
		}
		out[fe.Field()] = fieldMessage(fe)
	}
	return out
}

func fieldMessage(fe validator.FieldError) string {
	label := strings.ToUpper(fe.Field()[:1]) + fe.Field()[1:]
	switch fe.Tag() {
	case "required":
		return label + " is required"
	case "email":
		return "Enter a valid email address"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", label, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", label, fe.Param())
	default:
		return label + " is invalid"
	}
}

// Fingerprint identifies a normalized submission for duplicate detection.
func (f ContactForm) Fingerprint() string {
	sum := sha3.Sum256([]byte(strings.ToLower(f.Email) + "\x00" + f.Name + "\x00" + f.Message))
	return hex.EncodeToString(sum[:])
}

// ContactConfig holds the addressing and limits of the contact action
type ContactConfig struct {
	From          string
	To            []string
	SubjectPrefix string
	Timeout       time.Duration
	// DedupeWindow suppresses a second delivery of an identical submission
	// that was already delivered within the window. Zero disables it.
	DedupeWindow time.Duration
}

// ContactService forwards validated contact submissions to a mail provider
type ContactService struct {
	sender      mail.Sender
	submissions repositories.SubmissionRepository
	metrics     *metrics.Collector
	logger      logging.Logger
	config      ContactConfig
	now         func() time.Time
}

// NewContactService creates a new ContactService. submissions and collector
// may be nil.
func NewContactService(
	sender mail.Sender,
	submissions repositories.SubmissionRepository,
	collector *metrics.Collector,
	logger logging.Logger,
	config ContactConfig,
) *ContactService {
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}
	if config.Timeout <= 0 {
		config.Timeout = 10 * time.Second
	}
	if config.SubjectPrefix == "" {
		config.SubjectPrefix = "Contact form"
	}
	return &ContactService{
		sender:      sender,
		submissions: submissions,
		metrics:     collector,
		logger:      logger,
		config:      config,
		now:         time.Now,
	}
}

// Submit validates the form, forwards it to the provider once and maps the
// result to a ContactState. It never returns an error: every outcome is one
// of the ContactStatus values.
func (s *ContactService) Submit(ctx context.Context, form ContactForm, remoteIP string) ContactState {
	form.Normalize()
	fields := logging.Fields{
		"ip":    remoteIP,
		"name":  logging.RedactName(form.Name),
		"email": logging.RedactEmail(form.Email),
	}

	if fieldErrors := form.Validate(); len(fieldErrors) > 0 {
		s.metrics.IncContact(string(ContactValidationError))
		s.logger.WithFields(fields).WithField("errors", fieldErrors).Warn("Blocked submission")
		return ContactState{
			Status:      ContactValidationError,
			Message:     MessageValidation,
			FieldErrors: fieldErrors,
		}
	}

	fingerprint := form.Fingerprint()
	if dup := s.recentDelivery(fingerprint); dup != nil {
		s.metrics.IncContact("duplicate")
		s.logger.WithFields(fields).WithField("reference", dup.Reference).Info("Duplicate submission suppressed")
		return ContactState{Status: ContactSuccess, Message: MessageSuccess, Reset: true, Reference: dup.Reference}
	}

	submission := s.record(form, remoteIP, fingerprint, fields)

	ctx, cancel := context.WithTimeout(ctx, s.config.Timeout)
	defer cancel()

	receipt, err := s.send(ctx, s.buildMessage(form, remoteIP))

	var state ContactState
	switch pe, isProvider := mail.AsProviderError(err); {
	case err == nil:
		state = ContactState{Status: ContactSuccess, Message: MessageSuccess, Reset: true}
		s.updateStatus(submission, models.SubmissionDelivered, receipt.ID, "")
		s.logger.WithFields(fields).WithField("provider_id", receipt.ID).Info("Email sent successfully")
	case isProvider:
		msg := MessageError
		if pe.Message != "" {
			msg = pe.Message
		}
		state = ContactState{Status: ContactError, Message: msg}
		s.updateStatus(submission, models.SubmissionRejected, "", pe.Message)
		s.logger.WithFields(fields).WithError(err).Error("Provider rejected email")
	default:
		state = ContactState{Status: ContactUnknownError, Message: MessageUnknown}
		s.updateStatus(submission, models.SubmissionFailed, "", err.Error())
		s.logger.WithFields(fields).WithError(err).Error("Failed to send email")
	}

	if submission != nil {
		state.Reference = submission.Reference
	}
	s.metrics.IncContact(string(state.Status))
	return state
}

// send calls the provider, turning a panic into an error.
func (s *ContactService) send(ctx context.Context, msg mail.Message) (receipt mail.Receipt, err error) {
	if s.sender == nil {
		return mail.Receipt{}, errors.New("no mail sender configured")
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("mail sender panic: %v", r)
		}
	}()
	return s.sender.Send(ctx, msg)
}

func (s *ContactService) recentDelivery(fingerprint string) *models.Submission {
	if s.submissions == nil || s.config.DedupeWindow <= 0 {
		return nil
	}
	prev, err := s.submissions.FindByFingerprint(fingerprint)
	if err != nil {
		if !errors.Is(err, repositories.ErrNotFound) {
			s.logger.WithError(err).Warn("Duplicate lookup failed")
		}
		return nil
	}
	if prev.Status != models.SubmissionDelivered || s.now().Sub(prev.CreatedAt) > s.config.DedupeWindow {
		return nil
	}
	return prev
}

func (s *ContactService) record(form ContactForm, remoteIP, fingerprint string, fields logging.Fields) *models.Submission {
	if s.submissions == nil {
		return nil
	}
	submission := &models.Submission{
		Name:        form.Name,
		Email:       form.Email,
		Message:     form.Message,
		RemoteIP:    remoteIP,
		Fingerprint: fingerprint,
	}
	if err := s.submissions.Create(submission); err != nil {
		s.logger.WithFields(fields).WithError(err).Error("Failed to record submission")
		return nil
	}
	return submission
}

func (s *ContactService) updateStatus(submission *models.Submission, status models.SubmissionStatus, providerID, message string) {
	if submission == nil {
		return
	}
	if err := s.submissions.UpdateStatus(submission.ID, status, providerID, message); err != nil {
		s.logger.WithError(err).WithField("submission", submission.ID).Error("Failed to update submission status")
	}
}

func (s *ContactService) buildMessage(form ContactForm, remoteIP string) mail.Message {
	body := strings.ReplaceAll(html.EscapeString(form.Message), "\n", "<br>")
	htmlBody := fmt.Sprintf(`<h2>New contact form submission</h2>
<p><strong>Name:</strong> %s</p>
<p><strong>Email:</strong> %s</p>
<p><strong>Message:</strong></p>
<div style="background: #f5f5f5; padding: 15px; border-radius: 5px;">%s</div>
<hr>
<p><small>Submitted at: %s</small></p>
<p><small>IP: %s</small></p>`,
		html.EscapeString(form.Name),
		html.EscapeString(form.Email),
		body,
		s.now().UTC().Format(time.RFC3339),
		html.EscapeString(remoteIP),
	)

	return mail.Message{
		From:    s.config.From,
		To:      s.config.To,
		ReplyTo: form.Email,
		Subject: fmt.Sprintf("%s: %s", s.config.SubjectPrefix, form.Name),
		HTML:    htmlBody,
		Text:    fmt.Sprintf("Name: %s\nEmail: %s\n\n%s\n", form.Name, form.Email, form.Message),
	}
}
