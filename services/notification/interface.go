package notification

import (
	"context"
	"fmt"

	doctorRepo "medledger/database/repository/doctor"
	"medledger/models"
	"medledger/utils"

	"firebase.google.com/go/v4/messaging"
)

// NotificationService defines methods for sending FCM pushes to doctors.
type NotificationService interface {
	SendDoctorPushNotification(ctx context.Context, doctorID, title, body string, data map[string]string) error
	NotifySettlement(ctx context.Context, notice models.SettlementNotice) error
}

// DefaultNotificationService is the production implementation.
type DefaultNotificationService struct {
	Doctors doctorRepo.DoctorRepository
}

func NewDefaultNotificationService(doctors doctorRepo.DoctorRepository) (*DefaultNotificationService, error) {
	if doctors == nil {
		return nil, fmt.Errorf("notification service initialization error: doctor repository is nil")
	}
	return &DefaultNotificationService{Doctors: doctors}, nil
}

// SendDoctorPushNotification looks up a doctor's FCM token and sends a push.
func (s *DefaultNotificationService) SendDoctorPushNotification(
	ctx context.Context,
	doctorID, title, body string,
	data map[string]string,
) error {
	doctor, err := s.Doctors.GetByID(ctx, doctorID)
	if err != nil {
		return fmt.Errorf("SendDoctorPushNotification: could not find doctor %s: %w", doctorID, err)
	}
	if doctor.FCMToken == "" {
		return nil // fail silently if no push target
	}

	msg := &messaging.Message{
		Token: doctor.FCMToken,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: data,
	}

	if _, err := utils.FCMClient.Send(ctx, msg); err != nil {
		return fmt.Errorf("SendDoctorPushNotification: failed to send FCM message: %w", err)
	}
	return nil
}

// NotifySettlement tells a doctor their commission for an appointment was paid out.
func (s *DefaultNotificationService) NotifySettlement(ctx context.Context, notice models.SettlementNotice) error {
	title := "Commission settled"
	body := fmt.Sprintf(
		"Your commission of %.2f for the appointment with %s has been verified and paid.",
		notice.Amount,
		notice.PatientName,
	)
	return s.SendDoctorPushNotification(ctx, notice.DoctorID, title, body, map[string]string{
		"type":          "commission_settled",
		"appointmentId": notice.AppointmentID,
	})
}
