package email

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"net"
	"net/smtp"
	"strings"
	"time"

	"go-portfolio-backend/config"
)

// Option configures the SMTP service.
type Option func(*SMTPService)

// WithClock replaces the clock used for Date headers.
func WithClock(now func() time.Time) Option {
	return func(s *SMTPService) {
		if now != nil {
			s.now = now
		}
	}
}

// WithHelloName customises the EHLO identity presented to the server.
func WithHelloName(name string) Option {
	return func(s *SMTPService) {
		if strings.TrimSpace(name) != "" {
			s.helloName = strings.TrimSpace(name)
		}
	}
}

// SMTPService delivers mail through an authenticated SMTP relay (Gmail by default).
type SMTPService struct {
	host      string
	port      string
	username  string
	password  string
	timeout   time.Duration
	tlsConfig *tls.Config
	dialer    *net.Dialer
	now       func() time.Time
	helloName string
}

// NewSMTPService creates the mail service from the process configuration.
// SMTP_HELO_NAME is applied before opts.
func NewSMTPService(cfg *config.Config, opts ...Option) *SMTPService {
	timeout := time.Duration(cfg.SMTPTimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	s := &SMTPService{
		host:      cfg.SMTPHost,
		port:      cfg.SMTPPort,
		username:  cfg.EmailUser,
		password:  cfg.EmailAppPassword,
		timeout:   timeout,
		dialer:    &net.Dialer{Timeout: timeout},
		now:       time.Now,
		helloName: "localhost",
		tlsConfig: &tls.Config{
			ServerName: cfg.SMTPHost,
			MinVersion: tls.VersionTLS12,
		},
	}
	WithHelloName(cfg.SMTPHelloName)(s)
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// IsConfigured checks if both delivery credentials are present
func (s *SMTPService) IsConfigured() bool {
	return s.host != "" && s.username != "" && s.password != ""
}

// Sender returns the authenticated mailbox used as the From address.
func (s *SMTPService) Sender() string {
	return s.username
}

// Verify opens a session, negotiates TLS and authenticates, then quits.
func (s *SMTPService) Verify(ctx context.Context) error {
	return s.withSession(ctx, func(*smtp.Client) error { return nil })
}

// Send delivers one message in its own SMTP session.
func (s *SMTPService) Send(ctx context.Context, msg *Message) error {
	if msg == nil {
		return errors.New("email: message is required")
	}

	from, to, err := msg.Envelope()
	if err != nil {
		return err
	}

	raw, err := msg.Bytes(s.now(), domainOf(from))
	if err != nil {
		return err
	}

	return s.withSession(ctx, func(c *smtp.Client) error {
		if err := c.Mail(from); err != nil {
			return fmt.Errorf("email: mail from: %w", err)
		}
		if err := c.Rcpt(to); err != nil {
			return fmt.Errorf("email: rcpt to: %w", err)
		}
		w, err := c.Data()
		if err != nil {
			return fmt.Errorf("email: data: %w", err)
		}
		if _, err := w.Write(raw); err != nil {
			_ = w.Close()
			return fmt.Errorf("email: data write: %w", err)
		}
		if err := w.Close(); err != nil {
			return fmt.Errorf("email: data close: %w", err)
		}
		return nil
	})
}

func (s *SMTPService) withSession(ctx context.Context, fn func(*smtp.Client) error) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	addr := net.JoinHostPort(s.host, s.port)
	conn, err := s.dial(ctx, addr)
	if err != nil {
		return fmt.Errorf("email: dial %s: %w", addr, err)
	}
	defer conn.Close()

	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}

	// Unblock the SMTP client when the caller gives up.
	done := make(chan struct{})
	go func() {
		select {
		case <-ctx.Done():
			_ = conn.Close()
		case <-done:
		}
	}()
	defer close(done)

	client, err := smtp.NewClient(conn, s.host)
	if err != nil {
		return fmt.Errorf("email: new client: %w", err)
	}
	defer client.Close()

	if err := client.Hello(s.helloName); err != nil {
		return fmt.Errorf("email: hello: %w", err)
	}

	if !s.implicitTLS() && s.tlsConfig != nil {
		if ok, _ := client.Extension("STARTTLS"); ok {
			if err := client.StartTLS(s.sessionTLSConfig()); err != nil {
				return fmt.Errorf("email: starttls: %w", err)
			}
		}
	}

	if s.username != "" {
		if ok, _ := client.Extension("AUTH"); ok {
			auth := smtp.PlainAuth("", s.username, s.password, s.host)
			if err := client.Auth(auth); err != nil {
				return fmt.Errorf("email: auth: %w", err)
			}
		}
	}

	if err := fn(client); err != nil {
		return err
	}

	if err := client.Quit(); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("email: quit: %w", err)
	}
	return ctx.Err()
}

func (s *SMTPService) dial(ctx context.Context, addr string) (net.Conn, error) {
	if s.implicitTLS() {
		d := &tls.Dialer{NetDialer: s.dialer, Config: s.sessionTLSConfig()}
		return d.DialContext(ctx, "tcp", addr)
	}
	return s.dialer.DialContext(ctx, "tcp", addr)
}

// Port 465 speaks TLS from the first byte; everything else upgrades via STARTTLS.
func (s *SMTPService) implicitTLS() bool {
	return s.port == "465"
}

func (s *SMTPService) sessionTLSConfig() *tls.Config {
	if s.tlsConfig == nil {
		return &tls.Config{ServerName: s.host, MinVersion: tls.VersionTLS12}
	}
	cfg := s.tlsConfig.Clone()
	if cfg.ServerName == "" {
		cfg.ServerName = s.host
	}
	return cfg
}

func domainOf(address string) string {
	if i := strings.LastIndexByte(address, '@'); i >= 0 {
		return address[i+1:]
	}
	return ""
}
