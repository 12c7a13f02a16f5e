package mailer

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

type IEmailService interface {
	SendCommissionInvite(toEmail, fromName string) error
}

type emailService struct {
	dialer      *gomail.Dialer
	senderEmail string
	senderName  string
	clientURL   string
}

func NewEmailService(host string, port int, username, password, senderName, clientURL string) IEmailService {
	d := gomail.NewDialer(host, port, username, password)

	return &emailService{
		dialer:      d,
		senderEmail: username,
		senderName:  senderName,
		clientURL:   clientURL,
	}
}

func (s *emailService) SendCommissionInvite(toEmail, fromName string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", m.FormatAddress(s.senderEmail, s.senderName))
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", fmt.Sprintf("%s wants to sit down with you", fromName))

	body := fmt.Sprintf(`
		<div style="font-family: Georgia, serif; padding: 20px; color: #333;">
			<h2>An Invitation to The Family</h2>
			<p><strong>%s</strong> has requested a commission contact with you.</p>
			<p>Sign in to accept or decline:</p>
			<a href="%s/contacts" style="background-color: #8B0000; color: white; padding: 10px 20px; text-decoration: none; border-radius: 5px; display: inline-block;">Open The Family</a>
			<p>If you don't know this person, you can safely ignore this email.</p>
		</div>
	`, fromName, s.clientURL)

	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		fmt.Printf("[MAILER ERROR] Failed to send invite to %s: %v\n", toEmail, err)
		return err
	}

	return nil
}
