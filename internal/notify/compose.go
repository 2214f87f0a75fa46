package notify

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"time"

	"admissions/internal/logging"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

const timeLayout = "02 Jan 2006, 15:04 MST"

// Recipient is the applicant a message is about.
type Recipient struct {
	FirstName         string
	LastName          string
	Email             string
	Phone             string
	ApplicationNumber string
}

type templateData struct {
	Recipient
	Portal       string
	At           string
	Code         string
	ExpiresIn    string
	Reason       string
	DocumentType string
	FileName     string
	Amount       string
}

// Composer renders workflow emails. Admin copies are skipped when no admin
// address is configured.
type Composer struct {
	portal string
	admin  string
	loc    *time.Location
}

func NewComposer(portal, adminEmail string, loc *time.Location) *Composer {
	if loc == nil {
		loc = time.UTC
	}
	return &Composer{portal: portal, admin: adminEmail, loc: loc}
}

// Registered returns the verification code email and the admin registration notice.
func (c *Composer) Registered(r Recipient, code string, ttl time.Duration, at time.Time) []Message {
	d := c.data(r, at)
	d.Code = code
	d.ExpiresIn = fmt.Sprintf("%d minutes", int(ttl.Minutes()))
	return c.build(
		c.render(r.Email, "Verify Your Email", KindVerificationCode, "verification_code.html", d),
		c.render(c.admin, "New User Registration", KindAdminRegistration, "admin_registration.html", d),
	)
}

func (c *Composer) Submitted(r Recipient, at time.Time) []Message {
	d := c.data(r, at)
	return c.build(
		c.render(r.Email, "Application Submitted Successfully", KindApplicationSubmitted, "application_submitted.html", d),
		c.render(c.admin, "New Application Submitted", KindAdminSubmitted, "admin_submitted.html", d),
	)
}

func (c *Composer) Approved(r Recipient, at time.Time) []Message {
	d := c.data(r, at)
	return c.build(
		c.render(r.Email, "Application Approved", KindApplicationApproved, "application_approved.html", d),
		c.render(c.admin, "Application Approved", KindAdminApproved, "admin_approved.html", d),
	)
}

func (c *Composer) Rejected(r Recipient, reason string, at time.Time) []Message {
	d := c.data(r, at)
	d.Reason = reason
	return c.build(
		c.render(r.Email, "Application Status Update", KindApplicationRejected, "application_rejected.html", d),
		c.render(c.admin, "Application Rejected", KindAdminRejected, "admin_rejected.html", d),
	)
}

// DocumentUploaded notifies the admin only.
func (c *Composer) DocumentUploaded(r Recipient, documentType, fileName string, at time.Time) []Message {
	d := c.data(r, at)
	d.DocumentType = documentType
	d.FileName = fileName
	return c.build(c.render(c.admin, "New Document Uploaded", KindAdminDocument, "admin_document.html", d))
}

// PaymentReceived confirms a completed payment to the applicant.
func (c *Composer) PaymentReceived(r Recipient, amount string, at time.Time) []Message {
	d := c.data(r, at)
	if d.FirstName == "" {
		d.FirstName = "Student"
	}
	d.Amount = amount
	return c.build(c.render(r.Email, "Payment Received", KindPaymentReceived, "payment_received.html", d))
}

func (c *Composer) data(r Recipient, at time.Time) templateData {
	return templateData{
		Recipient: r,
		Portal:    c.portal,
		At:        at.In(c.loc).Format(timeLayout),
	}
}

func (c *Composer) render(to, subject string, kind Kind, name string, d templateData) *Message {
	if to == "" {
		return nil
	}
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, d); err != nil {
		logging.Error("notify", "render_failed", err, map[string]any{"template": name})
		return nil
	}
	return &Message{
		To:      to,
		Subject: subject + " - " + c.portal,
		HTML:    buf.String(),
		Kind:    kind,
	}
}

func (c *Composer) build(msgs ...*Message) []Message {
	out := make([]Message, 0, len(msgs))
	for _, m := range msgs {
		if m != nil {
			out = append(out, *m)
		}
	}
	return out
}
