package usecase_test

import (
	"context"
	"errors"
	"os"
	"testing"

	"go-tutoring-backend/internal/domain"
	"go-tutoring-backend/internal/usecase"
	"go-tutoring-backend/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	logger.Init()
	os.Exit(m.Run())
}

// Mock Repositories

type MockSubmissionRepo struct {
	mock.Mock
}

func (m *MockSubmissionRepo) Save(ctx context.Context, req domain.ContactRequest, ip string) (*domain.StoredSubmission, error) {
	args := m.Called(ctx, req, ip)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StoredSubmission), args.Error(1)
}

func (m *MockSubmissionRepo) List(ctx context.Context) ([]domain.StoredSubmission, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StoredSubmission), args.Error(1)
}

func (m *MockSubmissionRepo) UpdateStatus(ctx context.Context, id, status string) (*domain.StoredSubmission, error) {
	args := m.Called(ctx, id, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StoredSubmission), args.Error(1)
}

type MockMailer struct {
	mock.Mock
}

func (m *MockMailer) IsConfigured() bool {
	return m.Called().Bool(0)
}

func (m *MockMailer) SendOperatorNotification(ctx context.Context, sub *domain.StoredSubmission) error {
	return m.Called(ctx, sub).Error(0)
}

func (m *MockMailer) SendAutoReply(ctx context.Context, sub *domain.StoredSubmission) error {
	return m.Called(ctx, sub).Error(0)
}

func contactRequest() *domain.ContactRequest {
	return &domain.ContactRequest{
		Name:        "山田太郎",
		Phone:       "090-1234-5678",
		Email:       "taro@example.com",
		InquiryType: domain.InquiryLesson,
		Message:     "体験レッスンについて教えてください",
	}
}

func storedFixture() *domain.StoredSubmission {
	return &domain.StoredSubmission{
		ID:          "sub-1",
		Name:        "山田太郎",
		Email:       "taro@example.com",
		InquiryType: domain.InquiryLesson,
		Status:      domain.StatusNew,
	}
}

func TestSubmitContactPersistsThenNotifies(t *testing.T) {
	repo := new(MockSubmissionRepo)
	mailer := new(MockMailer)
	uc := usecase.NewContactUsecase(repo, mailer)

	saved := storedFixture()
	repo.On("Save", mock.Anything, mock.AnythingOfType("domain.ContactRequest"), "203.0.113.7").Return(saved, nil)
	mailer.On("IsConfigured").Return(true)
	mailer.On("SendOperatorNotification", mock.Anything, saved).Return(nil)
	mailer.On("SendAutoReply", mock.Anything, saved).Return(nil)

	result, err := uc.SubmitContact(context.Background(), contactRequest(), "203.0.113.7")
	require.NoError(t, err)
	assert.True(t, result.Notified)
	assert.Equal(t, saved, result.Submission)

	repo.AssertExpectations(t)
	mailer.AssertExpectations(t)
}

func TestSubmitContactSanitizesBeforePersisting(t *testing.T) {
	repo := new(MockSubmissionRepo)
	mailer := new(MockMailer)
	uc := usecase.NewContactUsecase(repo, mailer)

	mailer.On("IsConfigured").Return(false)
	repo.On("Save", mock.Anything, mock.AnythingOfType("domain.ContactRequest"), "").
		Return(storedFixture(), nil).
		Run(func(args mock.Arguments) {
			persisted := args.Get(1).(domain.ContactRequest)
			assert.NotContains(t, persisted.Name, "<")
			assert.NotContains(t, persisted.Message, "<")
			assert.Contains(t, persisted.Name, "&lt;")
		})

	req := contactRequest()
	req.Name = "<b>山田</b>"
	req.Message = "<script>alert(1)</script> を直してほしい"

	_, err := uc.SubmitContact(context.Background(), req, "")
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestSubmitContactUnconfiguredMailerIsSoftSuccess(t *testing.T) {
	repo := new(MockSubmissionRepo)
	mailer := new(MockMailer)
	uc := usecase.NewContactUsecase(repo, mailer)

	repo.On("Save", mock.Anything, mock.Anything, mock.Anything).Return(storedFixture(), nil)
	mailer.On("IsConfigured").Return(false)

	result, err := uc.SubmitContact(context.Background(), contactRequest(), "")
	require.NoError(t, err)
	assert.False(t, result.Notified)
	assert.NotNil(t, result.Submission, "record must be persisted even without notification")

	mailer.AssertNotCalled(t, "SendOperatorNotification", mock.Anything, mock.Anything)
	mailer.AssertNotCalled(t, "SendAutoReply", mock.Anything, mock.Anything)
}

func TestSubmitContactNotificationFailureIsNonFatal(t *testing.T) {
	repo := new(MockSubmissionRepo)
	mailer := new(MockMailer)
	uc := usecase.NewContactUsecase(repo, mailer)

	saved := storedFixture()
	repo.On("Save", mock.Anything, mock.Anything, mock.Anything).Return(saved, nil)
	mailer.On("IsConfigured").Return(true)
	mailer.On("SendOperatorNotification", mock.Anything, saved).Return(errors.New("sendgrid 503"))
	mailer.On("SendAutoReply", mock.Anything, saved).Return(nil)

	result, err := uc.SubmitContact(context.Background(), contactRequest(), "")
	require.NoError(t, err, "submission must succeed once the record is stored")
	assert.False(t, result.Notified)
}

func TestSubmitContactPersistenceFailureIsFatal(t *testing.T) {
	repo := new(MockSubmissionRepo)
	mailer := new(MockMailer)
	uc := usecase.NewContactUsecase(repo, mailer)

	repo.On("Save", mock.Anything, mock.Anything, mock.Anything).Return(nil, errors.New("disk full"))

	_, err := uc.SubmitContact(context.Background(), contactRequest(), "")
	assert.Error(t, err)
	mailer.AssertNotCalled(t, "SendOperatorNotification", mock.Anything, mock.Anything)
	mailer.AssertNotCalled(t, "SendAutoReply", mock.Anything, mock.Anything)
}
