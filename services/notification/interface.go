package notification

import (
	"context"
	"fmt"

	patientRepo "praxis/database/repository/patient"
	providerRepo "praxis/database/repository/provider"
	"praxis/utils"

	"firebase.google.com/go/v4/messaging"
	"go.uber.org/zap"
)

// NotificationService defines methods for sending FCM pushes to providers
// and portal patients.
type NotificationService interface {
	SendProviderPush(ctx context.Context, providerID, title, body string, data map[string]string) error
	SendPatientPush(ctx context.Context, patientID, title, body string, data map[string]string) error
}

// DefaultNotificationService is the production implementation.
type DefaultNotificationService struct {
	providers providerRepo.ProviderRepository
	patients  patientRepo.PatientRepository
}

func NewDefaultNotificationService(
	providers providerRepo.ProviderRepository,
	patients patientRepo.PatientRepository,
) (*DefaultNotificationService, error) {
	if providers == nil || patients == nil {
		return nil, fmt.Errorf("notification service initialization error: repository is nil")
	}
	return &DefaultNotificationService{providers: providers, patients: patients}, nil
}

func (s *DefaultNotificationService) SendProviderPush(
	ctx context.Context,
	providerID, title, body string,
	data map[string]string,
) error {
	prov, err := s.providers.GetByID(ctx, providerID)
	if err != nil {
		return fmt.Errorf("SendProviderPush: could not find provider %s: %w", providerID, err)
	}
	if data == nil {
		data = map[string]string{}
	}
	if _, ok := data["role"]; !ok {
		data["role"] = "provider"
	}
	return s.send(ctx, prov.FCMToken, title, body, data)
}

func (s *DefaultNotificationService) SendPatientPush(
	ctx context.Context,
	patientID, title, body string,
	data map[string]string,
) error {
	pat, err := s.patients.GetByID(ctx, patientID)
	if err != nil {
		return fmt.Errorf("SendPatientPush: could not find patient %s: %w", patientID, err)
	}
	if data == nil {
		data = map[string]string{}
	}
	if _, ok := data["role"]; !ok {
		data["role"] = "patient"
	}
	return s.send(ctx, pat.FCMToken, title, body, data)
}

func (s *DefaultNotificationService) send(ctx context.Context, token, title, body string, data map[string]string) error {
	logger := utils.GetLogger().With(zap.String("service", "notification"))

	if token == "" {
		logger.Debug("No FCM token registered, skipping push")
		return nil
	}
	if utils.FCMClient == nil {
		logger.Debug("FCM client not initialized, skipping push")
		return nil
	}

	msg := &messaging.Message{
		Token: token,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: data,
		Android: &messaging.AndroidConfig{
			Priority: "high",
			Notification: &messaging.AndroidNotification{
				ChannelID: "appointments",
				Sound:     "default",
			},
		},
		APNS: &messaging.APNSConfig{
			Headers: map[string]string{
				"apns-priority":  "10",
				"apns-push-type": "alert",
			},
			Payload: &messaging.APNSPayload{
				Aps: &messaging.Aps{Sound: "default"},
			},
		},
	}

	if _, err := utils.FCMClient.Send(ctx, msg); err != nil {
		return fmt.Errorf("failed to send FCM message: %w", err)
	}
	return nil
}
