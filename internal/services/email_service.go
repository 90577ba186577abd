package services

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"time"

	"gopkg.in/gomail.v2"
)

// Message is one outgoing HTML mail.
type Message struct {
	To       string
	Subject  string
	HTMLBody string
}

// Mailer is the outbound mail boundary.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

type smtpMailer struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTPMailer(smtpHost string, smtpPort int, smtpUser, smtpPassword, fromEmail string) Mailer {
	dialer := gomail.NewDialer(smtpHost, smtpPort, smtpUser, smtpPassword)
	return &smtpMailer{
		dialer: dialer,
		from:   fromEmail,
	}
}

func (m *smtpMailer) Send(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	gm := gomail.NewMessage()
	gm.SetHeader("From", m.from)
	gm.SetHeader("To", msg.To)
	gm.SetHeader("Subject", msg.Subject)
	gm.SetBody("text/html", msg.HTMLBody)

	if err := m.dialer.DialAndSend(gm); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", msg.To, err)
	}
	return nil
}

const invitationSubject = "TaskFlow - Team Invitation & Login Credentials"

var invitationTemplate = template.Must(template.New("invitation").Parse(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; border: 1px solid #eaeaeb; border-radius: 8px; overflow: hidden;">
  <div style="background-color: #2563eb; padding: 20px; text-align: center;">
    <h2 style="color: white; margin: 0;">Welcome to TaskFlow!</h2>
  </div>
  <div style="padding: 20px; background-color: #ffffff;">
    <p style="font-size: 16px; color: #333;">Hi {{.Name}},</p>
    <p style="font-size: 16px; color: #333;">You have been invited to join the team on TaskFlow. Here are your login credentials:</p>
    <div style="background-color: #f3f4f6; padding: 15px; border-radius: 6px; margin: 20px 0;">
      <p style="margin: 0 0 10px 0;"><strong>Login ID:</strong> {{.LoginID}}</p>
      <p style="margin: 0;"><strong>Password:</strong> {{.Password}}</p>
    </div>
    <p style="font-size: 16px; color: #333;">You can log in to the dashboard using these credentials.</p>
    <a href="{{.LoginURL}}" style="display: inline-block; background-color: #2563eb; color: white; padding: 12px 24px; text-decoration: none; border-radius: 6px; font-weight: bold; margin-top: 10px;">Go to Login</a>
  </div>
  <div style="background-color: #f9fafb; padding: 15px; text-align: center; font-size: 12px; color: #6b7280;">
    <p style="margin: 0;">&copy; {{.Year}} TaskFlow. All rights reserved.</p>
  </div>
</div>
`))

// Invitation holds what the welcome mail shows a new member.
type Invitation struct {
	Name     string
	Email    string
	LoginID  string
	Password string
	LoginURL string
}

// InvitationMessage renders the invitation mail.
func InvitationMessage(inv Invitation, now time.Time) (Message, error) {
	var buf bytes.Buffer
	data := struct {
		Invitation
		Year int
	}{inv, now.Year()}
	if err := invitationTemplate.Execute(&buf, data); err != nil {
		return Message{}, fmt.Errorf("render invitation: %w", err)
	}
	return Message{
		To:       inv.Email,
		Subject:  invitationSubject,
		HTMLBody: buf.String(),
	}, nil
}
