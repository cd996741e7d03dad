package usecase

import (
	"context"
	"fmt"
	"time"

	"go-tutoring-backend/internal/domain"
	"go-tutoring-backend/pkg/logger"
	"go-tutoring-backend/pkg/sanitize"

	"go.uber.org/zap"
)

// notifyTimeout bounds the SendGrid calls; provider latency is the dominant
// cost of a submission and must not hold the request open indefinitely.
const notifyTimeout = 10 * time.Second

const (
	msgReceived         = "お問い合わせを受け付けました。確認メールをお送りしましたのでご確認ください。"
	msgReceivedNoNotify = "お問い合わせを受け付けました。"
)

type contactUsecase struct {
	repo   domain.SubmissionRepository
	mailer domain.Mailer
}

// NewContactUsecase creates the contact form pipeline.
func NewContactUsecase(repo domain.SubmissionRepository, mailer domain.Mailer) domain.ContactUsecase {
	return &contactUsecase{
		repo:   repo,
		mailer: mailer,
	}
}

// SubmitContact runs sanitize → persist → notify. Persistence comes first:
// losing a durable record of a lead is worse than a delayed email, so once
// the record is stored the submission succeeds and notification failures
// are only logged.
func (uc *contactUsecase) SubmitContact(ctx context.Context, req *domain.ContactRequest, ip string) (*domain.SubmitResult, error) {
	clean := sanitize.Submission(*req)

	saved, err := uc.repo.Save(ctx, clean, ip)
	if err != nil {
		// Identifying fields only; the message body stays out of the logs.
		logger.Log.Error("failed to persist submission",
			zap.String("email", clean.Email),
			zap.String("inquiry_type", clean.InquiryType),
			zap.Error(err))
		return nil, fmt.Errorf("failed to persist submission: %w", err)
	}

	if !uc.mailer.IsConfigured() {
		logger.Log.Info("submission stored without notification, email provider not configured",
			zap.String("submission_id", saved.ID))
		return &domain.SubmitResult{
			Submission: saved,
			Notified:   false,
			Message:    msgReceivedNoNotify,
		}, nil
	}

	nctx, cancel := context.WithTimeout(ctx, notifyTimeout)
	defer cancel()

	notified := true
	if err := uc.mailer.SendOperatorNotification(nctx, saved); err != nil {
		logger.Log.Error("operator notification failed",
			zap.String("submission_id", saved.ID),
			zap.Error(err))
		notified = false
	}
	if err := uc.mailer.SendAutoReply(nctx, saved); err != nil {
		logger.Log.Error("auto-reply failed",
			zap.String("submission_id", saved.ID),
			zap.String("email", saved.Email),
			zap.Error(err))
		notified = false
	}

	message := msgReceived
	if !notified {
		message = msgReceivedNoNotify
	}

	return &domain.SubmitResult{
		Submission: saved,
		Notified:   notified,
		Message:    message,
	}, nil
}
