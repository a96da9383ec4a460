package mail

import (
	"fmt"

	"github.com/gofiber/fiber/v2/log"

	"github.com/RafaelMoura/SalonFlow/app/models"
)

// Lifecycle notifications are best-effort: delivery failures are logged and
// never block or roll back the transition that triggered them. Callers fire
// these from a goroutine.

// SendWelcomeEmail greets a freshly signed-up merchant.
func SendWelcomeEmail(m *models.Merchant) {
	body := fmt.Sprintf(`
		<h2>Welcome to SalonFlow, %s!</h2>
		<p>Your salon <strong>%s</strong> is ready to be set up. Add your
		services, employees and working hours to start taking bookings.</p>`,
		m.Name, m.SalonName)
	if err := SendMail(m.Email, "Welcome to SalonFlow", body); err != nil {
		log.Warnf("[Mail] welcome email to merchant %d failed: %v", m.ID, err)
	}
}

// SendPaymentConfirmationEmail confirms a successful VIP plan payment.
func SendPaymentConfirmationEmail(m *models.Merchant) {
	until := ""
	if m.AccessEndDate != nil {
		until = m.AccessEndDate.Format("02/01/2006")
	}
	body := fmt.Sprintf(`
		<h2>Payment confirmed</h2>
		<p>Hi %s, your PIX payment was approved. Your VIP access for
		<strong>%s</strong> now runs until <strong>%s</strong>.</p>`,
		m.Name, m.SalonName, until)
	if err := SendMail(m.Email, "Your SalonFlow payment was approved", body); err != nil {
		log.Warnf("[Mail] payment confirmation email to merchant %d failed: %v", m.ID, err)
	}
}

// SendRenewalConfirmationEmail confirms a renewal and the new end date.
func SendRenewalConfirmationEmail(m *models.Merchant) {
	until := ""
	if m.AccessEndDate != nil {
		until = m.AccessEndDate.Format("02/01/2006")
	}
	body := fmt.Sprintf(`
		<h2>Subscription renewed</h2>
		<p>Hi %s, the subscription for <strong>%s</strong> was renewed and is
		valid until <strong>%s</strong>.</p>`,
		m.Name, m.SalonName, until)
	if err := SendMail(m.Email, "Your SalonFlow subscription was renewed", body); err != nil {
		log.Warnf("[Mail] renewal confirmation email to merchant %d failed: %v", m.ID, err)
	}
}

// SendPaymentReminderEmail warns a merchant about an upcoming payment.
func SendPaymentReminderEmail(m *models.Merchant) {
	due := ""
	if m.NextPaymentDue != nil {
		due = m.NextPaymentDue.Format("02/01/2006")
	}
	body := fmt.Sprintf(`
		<h2>Payment reminder</h2>
		<p>Hi %s, the next payment for <strong>%s</strong> is due on
		<strong>%s</strong>. Renew in time to keep your booking page open.</p>`,
		m.Name, m.SalonName, due)
	if err := SendMail(m.Email, "SalonFlow payment reminder", body); err != nil {
		log.Warnf("[Mail] payment reminder email to merchant %d failed: %v", m.ID, err)
	}
}
