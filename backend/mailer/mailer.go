package mailer

import (
	"crypto/tls"
	"fmt"
	"net/smtp"
	"strings"

	"fitnessfiend/backend/config"
)

// Mailer sends the daily plan emails over SMTP. A send failure is returned
// to the caller and must never be fatal for the surrounding loop.
type Mailer struct {
	cfg *config.Config
}

func New(cfg *config.Config) *Mailer {
	return &Mailer{cfg: cfg}
}

// SendPlan mails the rendered plan lines to the given address as a
// multipart message with a plain text and an HTML part.
func (m *Mailer) SendPlan(toEmail string, planLines []string) error {
	message := m.buildMessage(toEmail, planLines)
	addr := m.cfg.SMTPHost + ":" + m.cfg.SMTPPort

	// Локальный отладочный сервер: без авторизации и без TLS
	// (запускается как `python -m smtpd -n localhost:1025`)
	if m.cfg.MailDebug {
		return smtp.SendMail(addr, nil, m.cfg.SMTPSender, []string{toEmail}, message)
	}

	conn, err := tls.Dial("tcp", addr, &tls.Config{ServerName: m.cfg.SMTPHost})
	if err != nil {
		return fmt.Errorf("dial smtp: %w", err)
	}
	client, err := smtp.NewClient(conn, m.cfg.SMTPHost)
	if err != nil {
		conn.Close()
		return fmt.Errorf("smtp handshake: %w", err)
	}
	defer client.Close()

	auth := smtp.PlainAuth("", m.cfg.SMTPSender, m.cfg.SMTPPassword, m.cfg.SMTPHost)
	if err := client.Auth(auth); err != nil {
		return fmt.Errorf("smtp auth: %w", err)
	}
	if err := client.Mail(m.cfg.SMTPSender); err != nil {
		return err
	}
	if err := client.Rcpt(toEmail); err != nil {
		return err
	}
	writer, err := client.Data()
	if err != nil {
		return err
	}
	if _, err := writer.Write(message); err != nil {
		return err
	}
	if err := writer.Close(); err != nil {
		return err
	}
	return client.Quit()
}

const boundary = "fitnessfiend-plan"

func (m *Mailer) buildMessage(toEmail string, planLines []string) []byte {
	var sb strings.Builder

	sb.WriteString("From: " + m.cfg.SMTPSender + "\r\n")
	sb.WriteString("To: " + toEmail + "\r\n")
	sb.WriteString("Subject: Workout Plan\r\n")
	sb.WriteString("MIME-Version: 1.0\r\n")
	sb.WriteString("Content-Type: multipart/alternative; boundary=" + boundary + "\r\n")
	sb.WriteString("\r\n")

	// Почтовый клиент рендерит последнюю часть, которую умеет
	sb.WriteString("--" + boundary + "\r\n")
	sb.WriteString("Content-Type: text/plain; charset=utf-8\r\n\r\n")
	sb.WriteString("Hi,\r\nHere is your workout plan for the day!\r\n")
	for _, line := range planLines {
		sb.WriteString(line + "\r\n")
	}
	sb.WriteString("Let us know how the workout goes!\r\n")

	sb.WriteString("--" + boundary + "\r\n")
	sb.WriteString("Content-Type: text/html; charset=utf-8\r\n\r\n")
	sb.WriteString("<html><body><p>Hi!<br><br>Here is your workout plan for the day:</p><ul>")
	for _, line := range planLines {
		sb.WriteString("<li>" + line + "</li>")
	}
	sb.WriteString("</ul><p>Let us know how the workout goes!</p></body></html>\r\n")

	sb.WriteString("--" + boundary + "--\r\n")
	return []byte(sb.String())
}
