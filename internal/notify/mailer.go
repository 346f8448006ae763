// Package notify delivers customer-facing messages. Delivery is best effort:
// callers treat every notifier as fire-and-forget.
package notify

import (
	"context"
	"fmt"
	"log"
	"net"
	"net/smtp"
	"os"

	"petstore-backend/internal/core"
)

// SMTPNotifier sends order emails over plain SMTP.
type SMTPNotifier struct {
	addr string // host:port
	from string
	auth smtp.Auth
}

// NewSMTPFromEnv builds an SMTPNotifier from SMTP_ADDR, SMTP_FROM, and the
// optional SMTP_USERNAME/SMTP_PASSWORD pair. Returns nil when SMTP_ADDR is
// unset so callers can fall back to a logging notifier.
func NewSMTPFromEnv() *SMTPNotifier {
	addr := os.Getenv("SMTP_ADDR")
	if addr == "" {
		return nil
	}
	from := os.Getenv("SMTP_FROM")
	if from == "" {
		from = "no-reply@chonkyboi.example"
	}
	n := &SMTPNotifier{addr: addr, from: from}
	if user := os.Getenv("SMTP_USERNAME"); user != "" {
		host, _, _ := net.SplitHostPort(addr)
		n.auth = smtp.PlainAuth("", user, os.Getenv("SMTP_PASSWORD"), host)
	}
	return n
}

func (n *SMTPNotifier) OrderReady(ctx context.Context, recipientEmail, recipientName string, order *core.Order) error {
	subject := fmt.Sprintf("Order #%s Ready for Pickup", order.OrderNumber)
	body := fmt.Sprintf(
		"Hello %s,\n\n"+
			"Your order #%s has been placed successfully and is ready to be picked up!\n\n"+
			"Pickup Location: %s Branch\n"+
			"Total Amount: %s\n\n"+
			"Please bring this order number when picking up your order.\n\n"+
			"Thank you for shopping with Chonky Boi Pet Store!\n",
		recipientName, order.OrderNumber, order.Branch, order.TotalPrice.StringFixed(2),
	)
	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s",
		n.from, recipientEmail, subject, body)

	if err := smtp.SendMail(n.addr, n.auth, n.from, []string{recipientEmail}, []byte(msg)); err != nil {
		return fmt.Errorf("failed to send order email to %s: %w", recipientEmail, err)
	}
	return nil
}

// LogNotifier writes notifications to the log instead of delivering them.
// Default when no SMTP transport is configured.
type LogNotifier struct {
	Logger *log.Logger
}

func (n *LogNotifier) OrderReady(ctx context.Context, recipientEmail, recipientName string, order *core.Order) error {
	n.Logger.Printf("notify %s: order %s ready for pickup at %s branch (total %s)",
		recipientEmail, order.OrderNumber, order.Branch, order.TotalPrice.StringFixed(2))
	return nil
}
