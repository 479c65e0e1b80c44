package contact

import (
	"fmt"

	"github.com/runvoy/contactform/internal/api"
	"github.com/runvoy/contactform/internal/constants"
	"github.com/runvoy/contactform/internal/email"
)

const confirmationBody = `Hi %s,

Thank you for reaching out. We have received your message and will get back to you soon.

Best Regards,
Support Team`

// AdminNotification builds the new-submission notice sent to the administrator.
func AdminNotification(adminEmail string, sub *api.Submission) email.Message {
	return email.Message{
		To:      adminEmail,
		Subject: constants.AdminNotificationSubject,
		Body:    fmt.Sprintf("New message from %s (%s):\n\n%s", sub.Name, sub.Email, sub.Message),
	}
}

// Confirmation builds the thank-you message sent to the submitter.
func Confirmation(sub *api.Submission) email.Message {
	return email.Message{
		To:      sub.Email,
		Subject: constants.ConfirmationSubject,
		Body:    fmt.Sprintf(confirmationBody, sub.Name),
	}
}
