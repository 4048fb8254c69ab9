// Package messaging implements the provider-patient conversation channel.
// Each provider/patient pair has exactly one thread, created on first use.
package messaging

import (
	"context"
	"fmt"
	"time"

	messageRepo "praxis/database/repository/message"
	patientRepo "praxis/database/repository/patient"
	"praxis/models"
	"praxis/services/notification"

	"github.com/google/uuid"
)

const defaultMessagePage = 50

type MessagingService interface {
	SendAsProvider(ctx context.Context, providerID string, req models.SendMessageRequest) (*models.Message, error)
	SendAsPatient(ctx context.Context, patientID string, body string) (*models.Message, error)
	ListProviderThreads(ctx context.Context, providerID string) ([]models.MessageThread, error)
	ListPatientThreads(ctx context.Context, patientID string) ([]models.MessageThread, error)
	ListMessages(ctx context.Context, threadID, readerRole, readerID string, limit int64) ([]models.Message, error)
	CountUnread(ctx context.Context, threadID, readerRole string) (int64, error)
}

type DefaultMessagingService struct {
	Repo     messageRepo.MessageRepository
	Patients patientRepo.PatientRepository
	Notifier notification.NotificationService
}

func NewDefaultMessagingService(
	repo messageRepo.MessageRepository,
	patients patientRepo.PatientRepository,
	notifier notification.NotificationService,
) *DefaultMessagingService {
	return &DefaultMessagingService{Repo: repo, Patients: patients, Notifier: notifier}
}

func (s *DefaultMessagingService) SendAsProvider(ctx context.Context, providerID string, req models.SendMessageRequest) (*models.Message, error) {
	if req.PatientID == "" {
		return nil, fmt.Errorf("patientId is required")
	}
	pat, err := s.Patients.GetByID(ctx, req.PatientID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch patient: %w", err)
	}
	if pat == nil || pat.ProviderID != providerID {
		return nil, fmt.Errorf("patient not found")
	}

	thread, err := s.Repo.GetOrCreateThread(ctx, providerID, req.PatientID)
	if err != nil {
		return nil, fmt.Errorf("failed to open thread: %w", err)
	}
	msg, err := s.post(ctx, thread.ID, models.SenderProvider, providerID, req.Body)
	if err != nil {
		return nil, err
	}

	if s.Notifier != nil {
		_ = s.Notifier.SendPatientPush(context.Background(), req.PatientID,
			"New message from your psychologist", truncate(req.Body, 80),
			map[string]string{"type": "message", "threadId": thread.ID})
	}
	return msg, nil
}

func (s *DefaultMessagingService) SendAsPatient(ctx context.Context, patientID string, body string) (*models.Message, error) {
	pat, err := s.Patients.GetByID(ctx, patientID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch patient: %w", err)
	}
	if pat == nil {
		return nil, fmt.Errorf("patient not found")
	}

	thread, err := s.Repo.GetOrCreateThread(ctx, pat.ProviderID, patientID)
	if err != nil {
		return nil, fmt.Errorf("failed to open thread: %w", err)
	}
	msg, err := s.post(ctx, thread.ID, models.SenderPatient, patientID, body)
	if err != nil {
		return nil, err
	}

	if s.Notifier != nil {
		_ = s.Notifier.SendProviderPush(context.Background(), pat.ProviderID,
			fmt.Sprintf("New message from %s", pat.FullName), truncate(body, 80),
			map[string]string{"type": "message", "threadId": thread.ID})
	}
	return msg, nil
}

func (s *DefaultMessagingService) ListProviderThreads(ctx context.Context, providerID string) ([]models.MessageThread, error) {
	threads, err := s.Repo.ListThreadsByProvider(ctx, providerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list threads: %w", err)
	}
	return threads, nil
}

func (s *DefaultMessagingService) ListPatientThreads(ctx context.Context, patientID string) ([]models.MessageThread, error) {
	threads, err := s.Repo.ListThreadsByPatient(ctx, patientID)
	if err != nil {
		return nil, fmt.Errorf("failed to list threads: %w", err)
	}
	return threads, nil
}

// ListMessages returns the most recent messages in a thread the reader
// belongs to, marking the counterpart's messages read.
func (s *DefaultMessagingService) ListMessages(ctx context.Context, threadID, readerRole, readerID string, limit int64) ([]models.Message, error) {
	thread, err := s.Repo.GetThread(ctx, threadID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch thread: %w", err)
	}
	if thread == nil {
		return nil, fmt.Errorf("thread not found")
	}
	switch readerRole {
	case models.SenderProvider:
		if thread.ProviderID != readerID {
			return nil, fmt.Errorf("thread not found")
		}
	case models.SenderPatient:
		if thread.PatientID != readerID {
			return nil, fmt.Errorf("thread not found")
		}
	default:
		return nil, fmt.Errorf("invalid reader role %q", readerRole)
	}

	if limit <= 0 || limit > 200 {
		limit = defaultMessagePage
	}
	msgs, err := s.Repo.ListMessages(ctx, threadID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	if err := s.Repo.MarkThreadRead(ctx, threadID, readerRole); err != nil {
		return nil, fmt.Errorf("failed to mark thread read: %w", err)
	}
	return msgs, nil
}

func (s *DefaultMessagingService) CountUnread(ctx context.Context, threadID, readerRole string) (int64, error) {
	n, err := s.Repo.CountUnread(ctx, threadID, readerRole)
	if err != nil {
		return 0, fmt.Errorf("failed to count unread messages: %w", err)
	}
	return n, nil
}

func (s *DefaultMessagingService) post(ctx context.Context, threadID, senderRole, senderID, body string) (*models.Message, error) {
	if body == "" {
		return nil, fmt.Errorf("message body is required")
	}
	msg := &models.Message{
		ID:         uuid.New().String(),
		ThreadID:   threadID,
		SenderRole: senderRole,
		SenderID:   senderID,
		Body:       body,
		SentAt:     time.Now(),
	}
	if err := s.Repo.InsertMessage(ctx, msg); err != nil {
		return nil, fmt.Errorf("failed to send message: %w", err)
	}
	return msg, nil
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "…"
}
