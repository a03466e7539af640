package mailer

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

type IEmailService interface {
	SendDecisionNotice(toEmail, subject, message string) error
}

type emailService struct {
	dialer      *gomail.Dialer
	senderEmail string
}

func NewEmailService(host string, port int, username, password, senderEmail string) IEmailService {
	d := gomail.NewDialer(host, port, username, password)

	return &emailService{
		dialer:      d,
		senderEmail: senderEmail,
	}
}

// SendDecisionNotice mirrors a lifecycle notification to the recipient's
// mailbox. The notification row is the record; this send is best-effort.
func (s *emailService) SendDecisionNotice(toEmail, subject, message string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.senderEmail)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", subject)

	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>%s</h2>
			<p>%s</p>
			<p>You can review the full details in your registry dashboard.</p>
		</div>
	`, subject, message)

	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		fmt.Printf("[MAILER ERROR] Failed to send notice to %s: %v\n", toEmail, err)
		return err
	}

	fmt.Printf("[MAILER] Notice sent to %s\n", toEmail)
	return nil
}
