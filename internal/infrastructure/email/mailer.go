// Package email implementa el correo transaccional del onboarding sobre SMTP.
// Sin servidor configurado opera en modo log: registra el envío y no falla,
// útil en desarrollo local.
package email

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"gopkg.in/gomail.v2"

	"github.com/tu-usuario/retail-pos/internal/application/auth"
	"github.com/tu-usuario/retail-pos/pkg/config"
)

var _ auth.Mailer = (*SMTPMailer)(nil)

// SMTPMailer implementa auth.Mailer (y la notificación de aprobación de
// cuentas) usando gomail.
type SMTPMailer struct {
	cfg config.SMTPConfig
}

// NewSMTPMailer construye el mailer con la configuración SMTP de la app.
func NewSMTPMailer(cfg config.SMTPConfig) *SMTPMailer {
	return &SMTPMailer{cfg: cfg}
}

// SendVerification envía el link de verificación de email a un usuario recién registrado.
func (m *SMTPMailer) SendVerification(to, name, verifyURL string) error {
	subject := "Verifica tu correo"
	body := fmt.Sprintf(`<p>Hola %s,</p>
<p>Gracias por registrarte. Para verificar tu correo haz clic en el siguiente enlace:</p>
<p><a href="%s">Verificar mi correo</a></p>
<p>El enlace expira en 48 horas. Después de verificar, un administrador debe aprobar tu cuenta antes de que puedas ingresar.</p>`,
		name, verifyURL)
	return m.send(to, subject, body)
}

// SendAccountApproved notifica que un administrador aprobó la cuenta.
func (m *SMTPMailer) SendAccountApproved(to, name string) error {
	subject := "Tu cuenta fue aprobada"
	body := fmt.Sprintf(`<p>Hola %s,</p>
<p>Tu cuenta fue aprobada y ya puedes iniciar sesión en el sistema.</p>`, name)
	return m.send(to, subject, body)
}

// SendAccountRejected notifica el rechazo de la cuenta con el motivo.
func (m *SMTPMailer) SendAccountRejected(to, name, reason string) error {
	subject := "Tu cuenta fue rechazada"
	body := fmt.Sprintf(`<p>Hola %s,</p>
<p>Tu solicitud de cuenta fue rechazada.</p>
<p>Motivo: %s</p>`, name, reason)
	return m.send(to, subject, body)
}

func (m *SMTPMailer) send(to, subject, htmlBody string) error {
	if !m.cfg.Enabled() {
		log.Info().Str("to", to).Str("subject", subject).
			Msg("SMTP no configurado: correo solo registrado en log")
		return nil
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.cfg.From)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", htmlBody)

	dialer := gomail.NewDialer(m.cfg.Host, m.cfg.Port, m.cfg.User, m.cfg.Password)
	if err := dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("enviar correo a %s: %w", to, err)
	}
	return nil
}
