// Package notify delivers verification codes to a claimed identity.
// Delivery runs outside the store's transactional boundary and is
// best-effort: a failed delivery never rolls back a committed claim.
package notify

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

// Sender delivers a verification code to an identity's channel.
type Sender interface {
	Deliver(ctx context.Context, email, code string) error
}

// Console logs the code instead of sending it. The development default.
type Console struct {
	logger *zap.Logger
}

// NewConsole constructs a console sender.
func NewConsole(logger *zap.Logger) *Console { return &Console{logger: logger} }

// Deliver writes the code to the log in the fixed [VERIFICATION] format.
func (c *Console) Deliver(_ context.Context, email, code string) error {
	c.logger.Info(fmt.Sprintf("[VERIFICATION] Email: %s Code: %s", email, code))
	return nil
}

// SMTP sends the code by mail through a gomail dialer.
type SMTP struct {
	dialer *gomail.Dialer
	from   string
	window time.Duration
}

// NewSMTP constructs an SMTP sender.
func NewSMTP(host string, port int, user, password, from string, window time.Duration) *SMTP {
	return &SMTP{
		dialer: gomail.NewDialer(host, port, user, password),
		from:   from,
		window: window,
	}
}

// Deliver sends the verification code to the address.
func (s *SMTP) Deliver(_ context.Context, email, code string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", email)
	m.SetHeader("Subject", "Your verification code")

	body := fmt.Sprintf(
		"Your verification code is %s.\n\nIt expires in %d seconds.\nIf you did not request it, ignore this message.\n",
		code, int(s.window.Seconds()),
	)
	m.SetBody("text/plain", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("send verification mail: %w", err)
	}
	return nil
}
