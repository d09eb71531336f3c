package email

import (
	"bytes"
	"fmt"
	htmltemplate "html/template"
	"net/mail"
	"strings"
	texttemplate "text/template"
	"time"
)

// Profile is the static owner information carried by both templates.
type Profile struct {
	OwnerName   string
	OwnerTitle  string
	OwnerEmail  string // Inbox receiving notifications
	Sender      string // Authenticated mailbox used in From
	GitHubURL   string
	LinkedInURL string
}

// ContactEmailData holds one sanitized submission
type ContactEmailData struct {
	SenderName  string
	SenderEmail string
	Message     string
	SubmittedAt time.Time
}

func (d ContactEmailData) MessageLines() []string {
	return strings.Split(strings.ReplaceAll(d.Message, "\r\n", "\n"), "\n")
}

func (d ContactEmailData) Submitted() string {
	return d.SubmittedAt.Format("Jan 2, 2006 3:04:05 PM MST")
}

type templateData struct {
	ContactEmailData
	Profile
}

const notificationHTML = `<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px; background-color: #f9f9f9;">
  <div style="background-color: #ffffff; padding: 30px; border-radius: 10px; box-shadow: 0 2px 10px rgba(0,0,0,0.1);">
    <h2 style="color: #10b981; margin-bottom: 20px; border-bottom: 2px solid #10b981; padding-bottom: 10px;">New Contact Form Submission</h2>
    <div style="margin-bottom: 20px;">
      <h3 style="color: #374151; margin-bottom: 10px;">Contact Details:</h3>
      <p style="margin: 5px 0;"><strong>Name:</strong> {{.SenderName}}</p>
      <p style="margin: 5px 0;"><strong>Email:</strong> {{.SenderEmail}}</p>
      <p style="margin: 5px 0;"><strong>Submitted:</strong> {{.Submitted}}</p>
    </div>
    <div style="margin-bottom: 20px;">
      <h3 style="color: #374151; margin-bottom: 10px;">Message:</h3>
      <div style="background-color: #f3f4f6; padding: 15px; border-radius: 5px; border-left: 4px solid #10b981;">
        <p style="margin: 0; line-height: 1.6; color: #374151;">{{range $i, $line := .MessageLines}}{{if $i}}<br>{{end}}{{$line}}{{end}}</p>
      </div>
    </div>
    <div style="margin-top: 30px; padding-top: 20px; border-top: 1px solid #e5e7eb;">
      <p style="margin: 0; color: #6b7280; font-size: 14px;">This email was sent from your portfolio contact form.</p>
    </div>
  </div>
</div>`

const notificationText = `New Contact Form Submission

Name: {{.SenderName}}
Email: {{.SenderEmail}}
Submitted: {{.Submitted}}

Message:
{{.Message}}`

const autoReplyHTML = `<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px; background-color: #f9f9f9;">
  <div style="background-color: #ffffff; padding: 30px; border-radius: 10px; box-shadow: 0 2px 10px rgba(0,0,0,0.1);">
    <h2 style="color: #10b981; margin-bottom: 20px;">Hi {{.SenderName}}! 👋</h2>
    <p style="color: #374151; line-height: 1.6; margin-bottom: 20px;">Thank you for reaching out through my portfolio! I've received your message and really appreciate you taking the time to connect.</p>
    <div style="background-color: #f0fdf4; padding: 20px; border-radius: 8px; border-left: 4px solid #10b981; margin: 20px 0;">
      <p style="margin: 0; color: #166534; font-weight: 500;">📧 Your message has been received and I'll get back to you within 24-48 hours.</p>
    </div>
    <p style="color: #374151; line-height: 1.6; margin-bottom: 20px;">In the meantime, feel free to:</p>
    <ul style="color: #374151; line-height: 1.6; margin-bottom: 20px;">
      <li>Check out my latest projects on <a href="{{.GitHubURL}}" style="color: #10b981; text-decoration: none;">GitHub</a></li>
      <li>Connect with me on <a href="{{.LinkedInURL}}" style="color: #10b981; text-decoration: none;">LinkedIn</a></li>
      <li>Explore more of my work on my portfolio</li>
    </ul>
    <p style="color: #374151; line-height: 1.6; margin-bottom: 30px;">Looking forward to our conversation!</p>
    <div style="border-top: 1px solid #e5e7eb; padding-top: 20px;">
      <p style="margin: 0; color: #374151; font-weight: 500;">Best regards,</p>
      <p style="margin: 5px 0 0 0; color: #10b981; font-weight: 600; font-size: 18px;">{{.OwnerName}}</p>
      <p style="margin: 5px 0 0 0; color: #6b7280; font-size: 14px;">{{.OwnerTitle}}</p>
    </div>
  </div>
</div>`

const autoReplyText = `Hi {{.SenderName}}!

Thank you for reaching out through my portfolio! I've received your message and really appreciate you taking the time to connect.

Your message has been received and I'll get back to you within 24-48 hours.

In the meantime, feel free to:
- Check out my latest projects on GitHub: {{.GitHubURL}}
- Connect with me on LinkedIn: {{.LinkedInURL}}
- Explore more of my work on my portfolio

Looking forward to our conversation!

Best regards,
{{.OwnerName}}
{{.OwnerTitle}}`

var (
	notificationHTMLTmpl = htmltemplate.Must(htmltemplate.New("notification.html").Parse(notificationHTML))
	notificationTextTmpl = texttemplate.Must(texttemplate.New("notification.txt").Parse(notificationText))
	autoReplyHTMLTmpl    = htmltemplate.Must(htmltemplate.New("autoreply.html").Parse(autoReplyHTML))
	autoReplyTextTmpl    = texttemplate.Must(texttemplate.New("autoreply.txt").Parse(autoReplyText))
)

// NotificationMessage builds the owner notice carrying the full submission.
func (p Profile) NotificationMessage(data ContactEmailData) (*Message, error) {
	td := templateData{ContactEmailData: data, Profile: p}

	var html, text bytes.Buffer
	if err := notificationHTMLTmpl.Execute(&html, td); err != nil {
		return nil, fmt.Errorf("email: render notification html: %w", err)
	}
	if err := notificationTextTmpl.Execute(&text, td); err != nil {
		return nil, fmt.Errorf("email: render notification text: %w", err)
	}

	return &Message{
		From:     formatAddress("Portfolio Contact Form", p.Sender),
		To:       p.OwnerEmail,
		ReplyTo:  data.SenderEmail,
		Subject:  "New Portfolio Contact: " + data.SenderName,
		HTMLBody: html.String(),
		TextBody: text.String(),
	}, nil
}

// AutoReplyMessage builds the fixed thank-you note sent back to the submitter.
func (p Profile) AutoReplyMessage(data ContactEmailData) (*Message, error) {
	td := templateData{ContactEmailData: data, Profile: p}

	var html, text bytes.Buffer
	if err := autoReplyHTMLTmpl.Execute(&html, td); err != nil {
		return nil, fmt.Errorf("email: render auto-reply html: %w", err)
	}
	if err := autoReplyTextTmpl.Execute(&text, td); err != nil {
		return nil, fmt.Errorf("email: render auto-reply text: %w", err)
	}

	return &Message{
		From:     formatAddress(p.OwnerName, p.Sender),
		To:       data.SenderEmail,
		ReplyTo:  p.OwnerEmail,
		Subject:  "Thanks for reaching out! - " + p.OwnerName,
		HTMLBody: html.String(),
		TextBody: text.String(),
	}, nil
}

func formatAddress(name, address string) string {
	return (&mail.Address{Name: name, Address: address}).String()
}
