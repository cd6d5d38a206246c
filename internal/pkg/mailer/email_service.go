package mailer

import (
	"fmt"
	"strings"

	"gopkg.in/gomail.v2"
)

type IEmailService interface {
	SendEscalationAlert(toEmail, riskTier, sessionId string, triggers []string) error
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

// SendEscalationAlert notifies the on-call clinician about an elevated risk
// escalation. The alert carries trigger descriptions only, never the user's
// raw message text.
func (s *emailService) SendEscalationAlert(toEmail, riskTier, sessionId string, triggers []string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.senderEmail)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", fmt.Sprintf("[%s] Safety escalation requires review", strings.ToUpper(riskTier)))

	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>Safety Escalation</h2>
			<p>Automated screening flagged a public-tier conversation.</p>
			<p><strong>Risk tier:</strong> %s</p>
			<p><strong>Session:</strong> %s</p>
			<p><strong>Triggers:</strong></p>
			<ul><li>%s</li></ul>
			<p>Please review in the governance console.</p>
		</div>
	`, riskTier, sessionId, strings.Join(triggers, "</li><li>"))

	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		fmt.Printf("[MAILER ERROR] Failed to send escalation alert to %s: %v\n", toEmail, err)
		return err
	}

	fmt.Printf("[MAILER] Escalation alert sent to %s\n", toEmail)
	return nil
}
