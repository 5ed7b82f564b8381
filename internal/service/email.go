package service

import (
	"fmt"
	"net"
	"net/smtp"
	"strings"
	"time"

	"github.com/niranjan1960/banos-dessert/internal/model"
)

type EmailService interface {
	Send(to, subject, body string) error
}

type SMTPConfig struct {
	Host, Port, From string
	// Timeout bounds the whole exchange with the relay. Defaults to 10s.
	Timeout time.Duration
}

type smtpEmail struct{ cfg SMTPConfig }

type noopEmail struct{}

func (noopEmail) Send(string, string, string) error { return nil }

// NewEmailService returns a sender that does nothing when no SMTP host
// is configured.
func NewEmailService(cfg SMTPConfig) EmailService {
	if cfg.Host == "" {
		return noopEmail{}
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	return &smtpEmail{cfg: cfg}
}

func (s *smtpEmail) Send(to, subject, body string) error {
	addr := net.JoinHostPort(s.cfg.Host, s.cfg.Port)

	msg := "From: " + s.cfg.From + "\r\n" +
		"To: " + to + "\r\n" +
		"Subject: " + subject + "\r\n" +
		"MIME-Version: 1.0\r\nContent-Type: text/plain; charset=utf-8\r\n\r\n" +
		body

	conn, err := net.DialTimeout("tcp", addr, s.cfg.Timeout)
	if err != nil {
		return err
	}
	if err := conn.SetDeadline(time.Now().Add(s.cfg.Timeout)); err != nil {
		conn.Close()
		return err
	}
	c, err := smtp.NewClient(conn, s.cfg.Host)
	if err != nil {
		conn.Close()
		return err
	}
	defer c.Close()

	// MailHog style relay, no auth
	if err := c.Mail(s.cfg.From); err != nil {
		return err
	}
	if err := c.Rcpt(to); err != nil {
		return err
	}
	w, err := c.Data()
	if err != nil {
		return err
	}
	if _, err := w.Write([]byte(msg)); err != nil {
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}
	return c.Quit()
}

func orderConfirmation(o model.Order, u model.User) (subject, body string) {
	var b strings.Builder
	fmt.Fprintf(&b, "Hi %s,\n\nThanks! Your order %s has been received.\n\n", u.Name, o.ID)
	for _, it := range o.Items {
		fmt.Fprintf(&b, "  %d x %s  $%s\n", it.Quantity, it.Name, it.LineTotal().StringFixed(2))
	}
	fmt.Fprintf(&b, "\nSubtotal: $%s\n", o.Subtotal.StringFixed(2))
	if o.DeliveryFee.IsZero() {
		b.WriteString("Delivery: Free\n")
	} else {
		fmt.Fprintf(&b, "Delivery: $%s\n", o.DeliveryFee.StringFixed(2))
	}
	fmt.Fprintf(&b, "Total: $%s\n\nDelivering to %s, %s %s.\n",
		o.Total.StringFixed(2), o.DeliveryInfo.Address, o.DeliveryInfo.City, o.DeliveryInfo.ZipCode)
	return "Order confirmation", b.String()
}
