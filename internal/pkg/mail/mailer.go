package mail

import (
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2/log"
	"gopkg.in/gomail.v2"

	"github.com/RafaelMoura/SalonFlow/internal/pkg/env"
)

// SendMail delivers a single HTML email via the configured SMTP relay.
func SendMail(to, subject, body string) error {
	host := env.GetEnv("SMTP_HOST", "")
	port, err := strconv.Atoi(env.GetEnv("SMTP_PORT", "587"))
	if err != nil {
		port = 587
	}
	username := env.GetEnv("SMTP_USERNAME", "")
	password := env.GetEnv("SMTP_PASSWORD", "")
	sender := env.GetEnv("SMTP_SENDER", "")

	if sender == "" {
		sender = fmt.Sprintf("no-reply@%s", "localhost")
		log.Infof("SMTP_SENDER not set, using default sender: %s", sender)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", sender)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	d := gomail.NewDialer(host, port, username, password)
	if err := d.DialAndSend(m); err != nil {
		log.Errorf("SMTP send error: %v", err)
		return err
	}
	log.Infof("Email sent to %s via %s:%d", to, host, port)
	return nil
}
