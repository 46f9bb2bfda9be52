package service

import (
	"fmt"

	"github.com/spf13/viper"
	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

// Mailer sends the password reset mail. Handlers treat it as fire and
// forget, a send failure never changes the HTTP response.
type Mailer interface {
	SendPasswordReset(to, resetURL string) error
}

// NewMailer picks the implementation based on mail.dev_mode.
func NewMailer() Mailer {
	if viper.GetBool("mail.dev_mode") {
		return &LogMailer{}
	}

	return &SMTPMailer{
		Host:     viper.GetString("mail.host"),
		Port:     viper.GetInt("mail.port"),
		Sender:   viper.GetString("mail.sender"),
		Password: viper.GetString("mail.password"),
	}
}

// LogMailer logs the reset link instead of sending anything. Meant for
// local development where no SMTP credentials exist.
type LogMailer struct{}

func (m *LogMailer) SendPasswordReset(to, resetURL string) error {
	zap.L().Info("Password reset email (dev mode)",
		zap.String("to", to),
		zap.String("resetURL", resetURL),
	)
	return nil
}

// SMTPMailer sends the real mail through gomail.
type SMTPMailer struct {
	Host     string
	Port     int
	Sender   string
	Password string
}

func (s *SMTPMailer) SendPasswordReset(to, resetURL string) error {
	m := gomail.NewMessage()

	m.SetHeader("From", s.Sender)
	m.SetHeader("To", to)
	m.SetHeader("Subject", "Réinitialisation de votre mot de passe - Mon Garde-Manger")
	m.SetBody("text/html", fmt.Sprintf(
		"<p>Vous avez demandé à réinitialiser votre mot de passe.</p>"+
			"<p>Cliquez <a href='%v'>ici</a> pour définir un nouveau mot de passe.</p>"+
			"<p>Ce lien est valide pendant <strong>1 heure</strong>.</p>"+
			"<p>Si vous n'avez pas demandé cette réinitialisation, ignorez simplement cet email.</p>",
		resetURL))

	d := gomail.NewDialer(s.Host, s.Port, s.Sender, s.Password)

	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send reset mail: %w", err)
	}

	return nil
}
