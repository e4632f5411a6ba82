// services/notification.go
package services

import (
	"fmt"
	"html"
	"net/smtp"
	"os"
	"strings"
	"time"
)

// NotificationCustomer identifies the recipient.
type NotificationCustomer struct {
	Name  string
	Email string
}

// BookingNotification is the structured payload handed to the notifier.
// Formatting and delivery are the notifier's problem; failure is never
// fatal to the caller.
type BookingNotification struct {
	BookingID  uint
	Date       string
	BranchName string
	Notes      string
	Customer   NotificationCustomer
	Items      []LineBreakdown
	GrandTotal float64
	Currency   string
}

// BookingNotifier delivers booking confirmations.
type BookingNotifier interface {
	SendBookingConfirmation(n BookingNotification) error
}

// SMTPNotifier sends confirmation emails over plain SMTP.
type SMTPNotifier struct {
	Host string
	Port string
	User string
	Pass string
	From string
}

// NewSMTPNotifierFromEnv builds a notifier from SMTP_* environment
// variables. Returns nil when no host is configured, which disables
// email entirely.
func NewSMTPNotifierFromEnv() *SMTPNotifier {
	host := os.Getenv("SMTP_HOST")
	if host == "" {
		return nil
	}
	return &SMTPNotifier{
		Host: host,
		Port: getenvDefault("SMTP_PORT", "587"),
		User: os.Getenv("SMTP_USER"),
		Pass: os.Getenv("SMTP_PASS"),
		From: getenvDefault("SMTP_FROM", "bookings@joyaspa.net"),
	}
}

func getenvDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func (s *SMTPNotifier) SendBookingConfirmation(n BookingNotification) error {
	body := buildConfirmationHTML(n)

	var msg strings.Builder
	msg.WriteString("From: JOYA SPA <" + s.From + ">\r\n")
	msg.WriteString("To: " + n.Customer.Email + "\r\n")
	msg.WriteString(fmt.Sprintf("Subject: Booking Request Received (#%d)\r\n", n.BookingID))
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(body)

	var auth smtp.Auth
	if s.User != "" {
		auth = smtp.PlainAuth("", s.User, s.Pass, s.Host)
	}
	return smtp.SendMail(s.Host+":"+s.Port, auth, s.From, []string{n.Customer.Email}, []byte(msg.String()))
}

func formatMoney(amount float64, currency string) string {
	return fmt.Sprintf("%.2f %s", amount, currency)
}

func formatDate(date string) string {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return date
	}
	return t.Format("Mon, Jan 2, 2006")
}

func buildConfirmationHTML(n BookingNotification) string {
	name := n.Customer.Name
	if name == "" {
		name = "Valued Guest"
	}

	var rows strings.Builder
	for _, it := range n.Items {
		rows.WriteString(fmt.Sprintf(
			`<tr><td style="padding:12px 0;border-bottom:1px solid #e5e7eb;font-weight:600;">%s</td>`+
				`<td style="padding:12px 0;border-bottom:1px solid #e5e7eb;text-align:center;">%d</td>`+
				`<td style="padding:12px 0;border-bottom:1px solid #e5e7eb;text-align:right;">%s</td>`+
				`<td style="padding:12px 0;border-bottom:1px solid #e5e7eb;text-align:right;font-weight:700;">%s</td></tr>`,
			html.EscapeString(it.ServiceName), it.Quantity,
			formatMoney(it.UnitPrice, it.Currency), formatMoney(it.ItemTotal, it.Currency)))
	}

	notesBlock := ""
	if strings.TrimSpace(n.Notes) != "" {
		notesBlock = fmt.Sprintf(
			`<p style="margin:16px 0 0;color:#4b5563;font-size:14px;"><strong>Notes:</strong> %s</p>`,
			html.EscapeString(n.Notes))
	}

	return fmt.Sprintf(`<!DOCTYPE html>
<html lang="en">
<body style="margin:0;padding:0;background-color:#f9fafb;font-family:Helvetica,Arial,sans-serif;">
  <div style="max-width:640px;margin:0 auto;background:#ffffff;border-radius:12px;overflow:hidden;">
    <div style="background:linear-gradient(to right,#7c3aed,#6d28d9);padding:32px 40px;text-align:center;">
      <h1 style="margin:0;color:#ffffff;font-size:26px;font-weight:800;">JOYA SPA</h1>
      <p style="margin:6px 0 0;color:#e9d5ff;font-size:13px;text-transform:uppercase;letter-spacing:2px;">Booking Request Details</p>
    </div>
    <div style="padding:40px;">
      <h2 style="margin:0 0 16px;color:#111827;font-size:20px;">Hi %s,</h2>
      <p style="margin:0 0 20px;color:#4b5563;font-size:15px;">
        We have received your request for <strong>%s</strong> on <strong>%s</strong> (booking #%d).
      </p>
      <table style="width:100%%;border-collapse:collapse;font-size:14px;color:#1f2937;">
        <tr>
          <th style="text-align:left;padding-bottom:8px;color:#6b7280;">Service</th>
          <th style="text-align:center;padding-bottom:8px;color:#6b7280;">Qty</th>
          <th style="text-align:right;padding-bottom:8px;color:#6b7280;">Unit</th>
          <th style="text-align:right;padding-bottom:8px;color:#6b7280;">Total</th>
        </tr>
        %s
      </table>
      <p style="margin:24px 0 0;text-align:right;font-size:16px;color:#111827;">
        <strong>Grand total: %s</strong>
      </p>
      %s
    </div>
  </div>
</body>
</html>`,
		html.EscapeString(name), html.EscapeString(n.BranchName), formatDate(n.Date), n.BookingID,
		rows.String(), formatMoney(n.GrandTotal, n.Currency), notesBlock)
}
