package mail

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	gomail "github.com/wneessen/go-mail"
)

const (
	DefaultHost = "smtp.gmail.com"
	DefaultPort = 465

	dialTimeout = 20 * time.Second
)

// Account holds the SMTP endpoint and credentials used for delivery.
type Account struct {
	Host        string
	Port        int
	From        string
	Password    string
	UseStartTLS bool
}

// DefaultAccount returns an account preset for implicit-TLS Gmail delivery.
// From and Password must still be filled in by the caller.
func DefaultAccount() Account {
	return Account{Host: DefaultHost, Port: DefaultPort}
}

type Attachment struct {
	Name string
	Data []byte
}

type Message struct {
	To          string
	Subject     string
	Body        string
	Attachments []Attachment
}

// InvoiceMessage composes the standard notification for a generated invoice.
func InvoiceMessage(to, invoiceNumber string, attachments []Attachment) Message {
	return Message{
		To:          to,
		Subject:     fmt.Sprintf("LEDES Invoice %s", invoiceNumber),
		Body:        fmt.Sprintf("Attached are the generated invoice files for %s.", invoiceNumber),
		Attachments: attachments,
	}
}

// Sender delivers invoice mail over SMTP. Send returns the transport mode
// that succeeded, e.g. "SSL" or "STARTTLS (fallback 587)".
type Sender interface {
	Send(ctx context.Context, acct Account, msg Message) (string, error)
}

type sender struct {
	logger  zerolog.Logger
	timeout time.Duration
}

func NewSender(logger zerolog.Logger) Sender {
	return &sender{logger: logger, timeout: dialTimeout}
}

// attempt is one delivery strategy: endpoint plus TLS negotiation style.
type attempt struct {
	host     string
	port     int
	startTLS bool
	mode     string
}

// attemptPlan returns the configured transport first, then the opposite
// negotiation style on its conventional port. Gmail and most relays accept
// one of the two even when the configured port is blocked.
func attemptPlan(acct Account) []attempt {
	if acct.UseStartTLS {
		return []attempt{
			{host: acct.Host, port: acct.Port, startTLS: true, mode: "STARTTLS"},
			{host: acct.Host, port: 465, startTLS: false, mode: "SSL (fallback 465)"},
		}
	}
	return []attempt{
		{host: acct.Host, port: acct.Port, startTLS: false, mode: "SSL"},
		{host: acct.Host, port: 587, startTLS: true, mode: "STARTTLS (fallback 587)"},
	}
}

func (s *sender) Send(ctx context.Context, acct Account, msg Message) (string, error) {
	if err := validate(acct, msg); err != nil {
		return "", err
	}

	m, err := buildMessage(acct, msg)
	if err != nil {
		return "", err
	}

	attempts := attemptPlan(acct)

	primary := attempts[0]
	primaryErr := s.deliver(ctx, acct, primary, m)
	if primaryErr == nil {
		return primary.mode, nil
	}
	s.logger.Warn().
		Err(primaryErr).
		Str("mode", primary.mode).
		Int("port", primary.port).
		Msg("smtp delivery failed, trying fallback transport")

	fallback := attempts[1]
	fallbackErr := s.deliver(ctx, acct, fallback, m)
	if fallbackErr == nil {
		return fallback.mode, nil
	}

	return "", fmt.Errorf("smtp delivery failed: %s attempt: %v; %s attempt: %w",
		primary.mode, primaryErr, fallback.mode, fallbackErr)
}

func (s *sender) deliver(ctx context.Context, acct Account, at attempt, m *gomail.Msg) error {
	opts := []gomail.Option{
		gomail.WithPort(at.port),
		gomail.WithTimeout(s.timeout),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(acct.From),
		gomail.WithPassword(acct.Password),
	}
	if at.startTLS {
		opts = append(opts, gomail.WithTLSPolicy(gomail.TLSMandatory))
	} else {
		opts = append(opts, gomail.WithSSL())
	}

	client, err := gomail.NewClient(at.host, opts...)
	if err != nil {
		return fmt.Errorf("failed to configure smtp client: %w", err)
	}
	return client.DialAndSendWithContext(ctx, m)
}

func buildMessage(acct Account, msg Message) (*gomail.Msg, error) {
	m := gomail.NewMsg()
	if err := m.From(acct.From); err != nil {
		return nil, fmt.Errorf("invalid sender address %q: %w", acct.From, err)
	}
	if err := m.To(msg.To); err != nil {
		return nil, fmt.Errorf("invalid recipient address %q: %w", msg.To, err)
	}
	m.Subject(msg.Subject)
	m.SetBodyString(gomail.TypeTextPlain, msg.Body)

	for _, att := range msg.Attachments {
		reader := bytes.NewReader(att.Data)
		if err := m.AttachReader(att.Name, reader, gomail.WithFileContentType(gomail.TypeAppOctetStream)); err != nil {
			return nil, fmt.Errorf("failed to attach %q: %w", att.Name, err)
		}
	}
	return m, nil
}

func validate(acct Account, msg Message) error {
	if strings.TrimSpace(acct.Host) == "" {
		return fmt.Errorf("smtp host is required")
	}
	if acct.Port <= 0 {
		return fmt.Errorf("smtp port must be positive, got %d", acct.Port)
	}
	if strings.TrimSpace(acct.From) == "" {
		return fmt.Errorf("sender address is required")
	}
	if acct.Password == "" {
		return fmt.Errorf("sender password is required")
	}
	if strings.TrimSpace(msg.To) == "" {
		return fmt.Errorf("recipient address is required")
	}
	return nil
}
