package service

import (
	"context"

	"robocamp/internal/domain/contact"
	"robocamp/internal/domain/enrollment"
	"robocamp/pkg/logger"

	"github.com/sirupsen/logrus"
)

// Notifier delivers outbound notifications. Email delivery is an external
// collaborator; the default implementation records the notification in the
// application log.
type Notifier interface {
	RegistrationConfirmed(ctx context.Context, reg *enrollment.Registration)
	RegistrationCancelled(ctx context.Context, reg *enrollment.Registration)
	ContactReceived(ctx context.Context, msg *contact.Message)
}

// LogNotifier writes notifications to the structured log.
type LogNotifier struct{}

// NewLogNotifier creates the log-backed notifier
func NewLogNotifier() *LogNotifier {
	return &LogNotifier{}
}

func (n *LogNotifier) RegistrationConfirmed(_ context.Context, reg *enrollment.Registration) {
	fields := logrus.Fields{
		"registration_id":     reg.ID,
		"confirmation_number": reg.ConfirmationNumber,
		"course_id":           reg.CourseID,
		"amount_paid":         reg.AmountPaid.StringFixed(2),
	}
	if reg.Course != nil {
		fields["course_title"] = reg.Course.Title
	}
	logger.WithFields(fields).Info("Registration confirmation notification queued")
}

func (n *LogNotifier) RegistrationCancelled(_ context.Context, reg *enrollment.Registration) {
	logger.WithFields(logrus.Fields{
		"registration_id":     reg.ID,
		"confirmation_number": reg.ConfirmationNumber,
	}).Info("Registration cancellation notification queued")
}

func (n *LogNotifier) ContactReceived(_ context.Context, msg *contact.Message) {
	logger.WithFields(logrus.Fields{
		"contact_message_id": msg.ID,
		"email":              msg.Email,
		"subject":            msg.Subject,
	}).Info("Contact message notification queued")
}
