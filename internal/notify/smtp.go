package notify

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/moneta-dev/moneta/internal/alert"
)

// SMTPNotifier delivers notifications as plain text mail through a
// single SMTP relay.
type SMTPNotifier struct {
	addr string
	from string
	auth smtp.Auth
}

func NewSMTPNotifier(host string, port int, username, password, from string) *SMTPNotifier {
	var auth smtp.Auth
	if username != "" {
		auth = smtp.PlainAuth("", username, password, host)
	}

	return &SMTPNotifier{
		addr: fmt.Sprintf("%s:%d", host, port),
		from: from,
		auth: auth,
	}
}

func (n *SMTPNotifier) SendBudgetAlert(ctx context.Context, email string, a alert.BudgetAlert) error {
	return n.send(email, budgetAlertSubject(a), BudgetAlertBody(a))
}

func (n *SMTPNotifier) SendBillReminder(ctx context.Context, email string, r BillReminder) error {
	return n.send(email, billReminderSubject(r), BillReminderBody(r))
}

func (n *SMTPNotifier) send(to, subject, body string) error {
	msg := strings.Join([]string{
		"From: " + n.from,
		"To: " + to,
		"Subject: " + subject,
		"MIME-Version: 1.0",
		`Content-Type: text/plain; charset="utf-8"`,
		"",
		body,
	}, "\r\n")

	if err := smtp.SendMail(n.addr, n.auth, n.from, []string{to}, []byte(msg)); err != nil {
		return fmt.Errorf("sending mail to %s: %w", to, err)
	}

	return nil
}
