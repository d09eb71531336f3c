package email

import (
	"bytes"
	"fmt"
	"mime"
	"mime/multipart"
	"mime/quotedprintable"
	"net/mail"
	"net/textproto"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
)

// Message is one outbound email with a plain-text and an HTML alternative.
type Message struct {
	From     string // RFC 5322 address, display name allowed
	To       string
	ReplyTo  string
	Subject  string
	HTMLBody string
	TextBody string
}

// Envelope resolves the bare MAIL FROM and RCPT TO addresses.
func (m *Message) Envelope() (from, to string, err error) {
	if from, err = EnvelopeAddress(m.From); err != nil {
		return "", "", fmt.Errorf("email: invalid from address: %w", err)
	}
	if to, err = EnvelopeAddress(m.To); err != nil {
		return "", "", fmt.Errorf("email: invalid recipient: %w", err)
	}
	return from, to, nil
}

// EnvelopeAddress returns the bare address of value. Values net/mail rejects
// (trailing dots, commas or quotes in the local part) are used verbatim as long
// as they are a single token holding exactly one "@".
func EnvelopeAddress(value string) (string, error) {
	if addr, err := mail.ParseAddress(value); err == nil {
		return addr.Address, nil
	}
	bare := strings.TrimSpace(value)
	if !isBareAddress(bare) {
		return "", fmt.Errorf("unusable address %q", value)
	}
	return bare, nil
}

func isBareAddress(s string) bool {
	at := strings.IndexByte(s, '@')
	if at <= 0 || at == len(s)-1 || strings.Count(s, "@") != 1 {
		return false
	}
	return !strings.ContainsFunc(s, func(r rune) bool {
		return unicode.IsSpace(r) || unicode.IsControl(r) || r == '<' || r == '>'
	})
}

// Bytes renders the message as multipart/alternative MIME.
func (m *Message) Bytes(now time.Time, domain string) ([]byte, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	if err := writePart(mw, "text/plain; charset=UTF-8", m.TextBody); err != nil {
		return nil, err
	}
	if err := writePart(mw, "text/html; charset=UTF-8", m.HTMLBody); err != nil {
		return nil, err
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("email: close multipart: %w", err)
	}

	if domain == "" {
		domain = "localhost"
	}

	var buf bytes.Buffer
	writeHeader(&buf, "From", m.From)
	writeHeader(&buf, "To", m.To)
	if m.ReplyTo != "" {
		writeHeader(&buf, "Reply-To", m.ReplyTo)
	}
	writeHeader(&buf, "Subject", mime.QEncoding.Encode("UTF-8", sanitizeHeaderValue(m.Subject)))
	writeHeader(&buf, "Date", now.Format(time.RFC1123Z))
	writeHeader(&buf, "Message-ID", fmt.Sprintf("<%s@%s>", uuid.NewString(), domain))
	writeHeader(&buf, "MIME-Version", "1.0")
	writeHeader(&buf, "Content-Type", fmt.Sprintf("multipart/alternative; boundary=%q", mw.Boundary()))
	buf.WriteString("\r\n")
	buf.Write(body.Bytes())

	return buf.Bytes(), nil
}

func writePart(mw *multipart.Writer, contentType, content string) error {
	header := textproto.MIMEHeader{}
	header.Set("Content-Type", contentType)
	header.Set("Content-Transfer-Encoding", "quoted-printable")

	w, err := mw.CreatePart(header)
	if err != nil {
		return fmt.Errorf("email: create part: %w", err)
	}
	qp := quotedprintable.NewWriter(w)
	if _, err := qp.Write([]byte(normalizeBody(content))); err != nil {
		return fmt.Errorf("email: encode part: %w", err)
	}
	return qp.Close()
}

func writeHeader(buf *bytes.Buffer, key, value string) {
	buf.WriteString(key)
	buf.WriteString(": ")
	buf.WriteString(sanitizeHeaderValue(value))
	buf.WriteString("\r\n")
}

func normalizeBody(body string) string {
	normalized := strings.ReplaceAll(body, "\r\n", "\n")
	normalized = strings.ReplaceAll(normalized, "\r", "\n")
	return strings.ReplaceAll(normalized, "\n", "\r\n")
}

// sanitizeHeaderValue folds CR/LF so submitted values cannot inject headers.
func sanitizeHeaderValue(value string) string {
	clean := strings.ReplaceAll(value, "\r", " ")
	clean = strings.ReplaceAll(clean, "\n", " ")
	return strings.TrimSpace(clean)
}
