// Package sanitize neutralizes HTML-significant characters in user-supplied
// text before it is embedded in notification emails or read back by the
// admin view. Escaping happens exactly once, here; downstream templates
// must not escape again.
package sanitize

import (
	"html"

	"go-tutoring-backend/internal/domain"
)

// inquiryLabels maps inquiry type codes to their Japanese display labels.
// The set is closed at the validation boundary, so the fallback to the raw
// code only triggers if the table and the validator ever drift apart.
var inquiryLabels = map[string]string{
	domain.InquiryLesson:    "レッスンについて",
	domain.InquiryTechnical: "パソコン・スマホのトラブル",
	domain.InquiryVisit:     "訪問サポート",
	domain.InquiryOther:     "その他",
}

// Submission returns a copy of req with the free-text fields HTML-escaped
// (& < > " '). Structured fields pass through unchanged. Pure; the input
// is never mutated.
func Submission(req domain.ContactRequest) domain.ContactRequest {
	out := req
	out.Name = html.EscapeString(req.Name)
	out.Furigana = html.EscapeString(req.Furigana)
	out.Message = html.EscapeString(req.Message)
	return out
}

// InquiryLabel maps an inquiry type code to its display label, falling back
// to the raw code when unmapped.
func InquiryLabel(code string) string {
	if label, ok := inquiryLabels[code]; ok {
		return label
	}
	return code
}
