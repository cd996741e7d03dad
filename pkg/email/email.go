package email

import (
	"bytes"
	"context"
	"fmt"
	"text/template"

	"go-tutoring-backend/config"
	"go-tutoring-backend/internal/domain"
	"go-tutoring-backend/pkg/sanitize"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// Service sends submission notifications through SendGrid. When no API key
// is configured, IsConfigured reports false and the pipeline degrades to
// store-only; the business never loses a lead over absent email config.
type Service struct {
	client   *sendgrid.Client
	apiKey   string
	fromName string
	fromAddr string
	toAddr   string
}

func NewService(cfg *config.Config) *Service {
	return &Service{
		client:   sendgrid.NewSendClient(cfg.SendGridAPIKey),
		apiKey:   cfg.SendGridAPIKey,
		fromName: cfg.EmailFromName,
		fromAddr: cfg.EmailFromAddr,
		toAddr:   cfg.ContactEmailTo,
	}
}

// IsConfigured reports whether sends are possible at all.
func (s *Service) IsConfigured() bool {
	return s.apiKey != "" && s.fromAddr != "" && s.toAddr != ""
}

// templateData carries a submission plus its display fields into the email
// bodies. Fields arrive already HTML-escaped from the sanitizer, so the
// templates are text/template on purpose: escaping again would corrupt the
// entities.
type templateData struct {
	*domain.StoredSubmission
	InquiryLabel string
	ReceivedAt   string
}

const operatorTemplate = `<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"><title>新しいお問い合わせ</title></head>
<body style="font-family: sans-serif; line-height: 1.6; color: #333;">
  <div style="max-width: 600px; margin: 0 auto; padding: 20px;">
    <h2 style="color: #2c3e50;">新しいお問い合わせが届きました</h2>
    <table style="width: 100%; border-collapse: collapse;">
      <tr><td style="padding: 6px; font-weight: bold;">お名前</td><td style="padding: 6px;">{{.Name}}{{if .Furigana}}（{{.Furigana}}）{{end}}</td></tr>
      <tr><td style="padding: 6px; font-weight: bold;">電話番号</td><td style="padding: 6px;">{{.Phone}}</td></tr>
      <tr><td style="padding: 6px; font-weight: bold;">メールアドレス</td><td style="padding: 6px;">{{.Email}}</td></tr>
      <tr><td style="padding: 6px; font-weight: bold;">お問い合わせ種別</td><td style="padding: 6px;">{{.InquiryLabel}}</td></tr>
      <tr><td style="padding: 6px; font-weight: bold;">受信日時</td><td style="padding: 6px;">{{.ReceivedAt}}</td></tr>
    </table>
    <div style="background: #f9f9f9; padding: 15px; border-left: 4px solid #3498db; margin-top: 15px;">{{.Message}}</div>
    <p style="color: #7f8c8d; font-size: 0.8em; margin-top: 20px;">このメールはサイトのお問い合わせフォームから自動送信されています。</p>
  </div>
</body>
</html>`

const autoReplyTemplate = `<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"><title>お問い合わせありがとうございます</title></head>
<body style="font-family: sans-serif; line-height: 1.6; color: #333;">
  <div style="max-width: 600px; margin: 0 auto; padding: 20px;">
    <h2 style="color: #2c3e50;">{{.Name}} 様</h2>
    <p>お問い合わせありがとうございます。以下の内容で受け付けました。</p>
    <p>担当者より2営業日以内にご連絡いたしますので、今しばらくお待ちください。</p>
    <table style="width: 100%; border-collapse: collapse;">
      <tr><td style="padding: 6px; font-weight: bold;">お問い合わせ種別</td><td style="padding: 6px;">{{.InquiryLabel}}</td></tr>
    </table>
    <div style="background: #f9f9f9; padding: 15px; border-left: 4px solid #3498db; margin-top: 15px;">{{.Message}}</div>
    <p style="color: #7f8c8d; font-size: 0.8em; margin-top: 20px;">このメールは自動返信です。心当たりがない場合は破棄してください。</p>
  </div>
</body>
</html>`

var (
	operatorTmpl  = template.Must(template.New("operator").Parse(operatorTemplate))
	autoReplyTmpl = template.Must(template.New("autoreply").Parse(autoReplyTemplate))
)

// SendOperatorNotification delivers the full submission to the operator
// inbox, with Reply-To set to the visitor so a reply goes straight back.
func (s *Service) SendOperatorNotification(ctx context.Context, sub *domain.StoredSubmission) error {
	body, err := render(operatorTmpl, sub)
	if err != nil {
		return fmt.Errorf("failed to render operator notification: %w", err)
	}

	from := mail.NewEmail(s.fromName, s.fromAddr)
	to := mail.NewEmail("", s.toAddr)
	subject := fmt.Sprintf("【お問い合わせ】%s", sanitize.InquiryLabel(sub.InquiryType))

	message := mail.NewSingleEmail(from, subject, to, "", body)
	message.SetReplyTo(mail.NewEmail(sub.Name, sub.Email))

	return s.send(ctx, message, "operator notification")
}

// SendAutoReply delivers the acknowledgment to the visitor.
func (s *Service) SendAutoReply(ctx context.Context, sub *domain.StoredSubmission) error {
	body, err := render(autoReplyTmpl, sub)
	if err != nil {
		return fmt.Errorf("failed to render auto-reply: %w", err)
	}

	from := mail.NewEmail(s.fromName, s.fromAddr)
	to := mail.NewEmail(sub.Name, sub.Email)
	subject := "お問い合わせを受け付けました"

	message := mail.NewSingleEmail(from, subject, to, "", body)

	return s.send(ctx, message, "auto-reply")
}

func (s *Service) send(ctx context.Context, message *mail.SGMailV3, kind string) error {
	response, err := s.client.SendWithContext(ctx, message)
	if err != nil {
		return fmt.Errorf("sendgrid %s send failed: %w", kind, err)
	}
	if response.StatusCode >= 300 {
		return fmt.Errorf("sendgrid %s send rejected: status %d: %s", kind, response.StatusCode, response.Body)
	}
	return nil
}

func render(tmpl *template.Template, sub *domain.StoredSubmission) (string, error) {
	var body bytes.Buffer
	data := templateData{
		StoredSubmission: sub,
		InquiryLabel:     sanitize.InquiryLabel(sub.InquiryType),
		ReceivedAt:       sub.CreatedAt.Local().Format("2006-01-02 15:04"),
	}
	if err := tmpl.Execute(&body, data); err != nil {
		return "", err
	}
	return body.String(), nil
}
