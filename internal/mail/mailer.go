package mail

import (
	"fmt"

	"github.com/J-A-Y2/Big-Money/internal/config"
	"gopkg.in/gomail.v2"
)

// Mailer sends the transactional messages the user module needs over SMTP.
type Mailer struct {
	cfg    *config.Config
	dialer *gomail.Dialer
}

func NewMailer(cfg *config.Config) *Mailer {
	return &Mailer{
		cfg:    cfg,
		dialer: gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword),
	}
}

// SendMemberJoinVerification mails the signup confirmation link. The token in
// the link completes registration and logs the account in.
func (m *Mailer) SendMemberJoinVerification(toEmail, verifyToken string) error {
	link := fmt.Sprintf("%s/api/v1/users/email-verify?signupVerifyToken=%s", m.cfg.BaseURL, verifyToken)

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.cfg.EmailFrom)
	msg.SetHeader("To", toEmail)
	msg.SetHeader("Subject", "Confirm your Big-Money account")
	msg.SetBody("text/html", fmt.Sprintf(
		`<p>Welcome to Big-Money.</p><p><a href=%q>Click here to verify your email and sign in.</a></p>`,
		link,
	))

	return m.dialer.DialAndSend(msg)
}
