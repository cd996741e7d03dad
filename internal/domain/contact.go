package domain

import (
	"context"
	"errors"
	"time"
)

// ErrSubmissionNotFound is returned when a submission id has no record.
var ErrSubmissionNotFound = errors.New("submission not found")

// Inquiry type codes accepted by the contact form. The set is closed at the
// validation boundary; display labels live in pkg/sanitize.
const (
	InquiryLesson    = "lesson"
	InquiryTechnical = "technical"
	InquiryVisit     = "visit"
	InquiryOther     = "other"
)

// Submission lifecycle statuses. A record starts as new and is only ever
// advanced by administrative action; records are never deleted.
const (
	StatusNew     = "new"
	StatusRead    = "read"
	StatusReplied = "replied"
)

// SubmissionSchemaVersion is stamped on every stored record so the read
// side can branch when the shape evolves.
const SubmissionSchemaVersion = 1

// ContactRequest represents a contact form submission.
// Length rules count runes, not bytes, since input is mostly Japanese.
type ContactRequest struct {
	Name        string `json:"name" binding:"required,max=50"`
	Furigana    string `json:"furigana"`
	Phone       string `json:"phone" binding:"required,phone_chars"`
	Email       string `json:"email" binding:"required,email"`
	InquiryType string `json:"inquiryType" binding:"required,oneof=lesson technical visit other"`
	Message     string `json:"message" binding:"required,min=10,max=1000"`
}

// StoredSubmission is the persisted form of an accepted submission.
// Free-text fields hold the sanitized (HTML-escaped) copy.
type StoredSubmission struct {
	ID            string    `json:"id"`
	SchemaVersion int       `json:"schemaVersion"`
	Name          string    `json:"name"`
	Furigana      string    `json:"furigana,omitempty"`
	Phone         string    `json:"phone"`
	Email         string    `json:"email"`
	InquiryType   string    `json:"inquiryType"`
	Message       string    `json:"message"`
	IP            string    `json:"ip,omitempty"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"createdAt"`
}

// ValidStatus reports whether s is a known lifecycle status.
func ValidStatus(s string) bool {
	switch s {
	case StatusNew, StatusRead, StatusReplied:
		return true
	}
	return false
}

// SubmissionRepository owns the submission log. No other component touches
// the underlying storage.
type SubmissionRepository interface {
	// Save appends req as a new record, newest first, and returns the
	// stored record with its derived fields filled in.
	Save(ctx context.Context, req ContactRequest, ip string) (*StoredSubmission, error)
	List(ctx context.Context) ([]StoredSubmission, error)
	UpdateStatus(ctx context.Context, id, status string) (*StoredSubmission, error)
}

// Mailer delivers submission notifications through the transactional email
// provider. IsConfigured reports whether sends are possible at all; when it
// is false the pipeline degrades to store-only.
type Mailer interface {
	IsConfigured() bool
	SendOperatorNotification(ctx context.Context, sub *StoredSubmission) error
	SendAutoReply(ctx context.Context, sub *StoredSubmission) error
}

// SubmitResult reports how an accepted submission was handled.
type SubmitResult struct {
	Submission *StoredSubmission
	Notified   bool
	Message    string
}

// ContactUsecase defines the contact form pipeline behind the HTTP handler.
type ContactUsecase interface {
	// SubmitContact sanitizes, persists, and then attempts to notify.
	// Once the record is persisted the submission succeeds regardless of
	// notification outcome.
	SubmitContact(ctx context.Context, req *ContactRequest, ip string) (*SubmitResult, error)
}
