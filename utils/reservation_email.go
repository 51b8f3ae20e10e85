package utils

import (
	"fmt"
	"log"
	"net/smtp"
	"strings"
)

// RoomInfo represents a room's number + type for emails / display
type RoomInfo struct {
	Number string // e.g. "101"
	Type   string // e.g. "Deluxe King"
}

// MailConfig holds SMTP settings. An incomplete config means mock send.
type MailConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	FromName string
}

func (m MailConfig) Configured() bool {
	return m.Host != "" && m.Port != "" && m.Username != "" && m.Password != ""
}

type ReservationEmail struct {
	To            string
	GuestName     string
	ReferenceCode string
	Rooms         []RoomInfo
	CheckIn       string
	CheckOut      string
	Link          string
}

// BuildReservationLink points the guest at their reservation in the frontend.
func BuildReservationLink(frontendURL, ref string) string {
	if frontendURL == "" {
		frontendURL = "http://localhost:3000"
	}
	return fmt.Sprintf("%s/reservations/%s", strings.TrimRight(frontendURL, "/"), ref)
}

// SendReservationConfirmationEmail sends an HTML + plain text confirmation.
func SendReservationConfirmationEmail(cfg MailConfig, e ReservationEmail) error {
	// DEV fallback -> mock send (log) when SMTP not configured
	if !cfg.Configured() {
		log.Printf("[MOCK EMAIL] to:%s reservation:%s stay:%s..%s rooms:%s",
			e.To, e.ReferenceCode, e.CheckIn, e.CheckOut, strings.TrimSpace(roomsListText(e.Rooms)))
		return nil
	}

	msg := buildConfirmationMessage(cfg, e)
	auth := smtp.PlainAuth("", cfg.Username, cfg.Password, cfg.Host)
	addr := fmt.Sprintf("%s:%s", cfg.Host, cfg.Port)

	if err := smtp.SendMail(addr, auth, cfg.Username, []string{e.To}, msg); err != nil {
		log.Printf("❌ Failed to send email to %s: %v", e.To, err)
		return err
	}

	log.Printf("📨 Email sent to %s (reservation %s)", e.To, e.ReferenceCode)
	return nil
}

func buildConfirmationMessage(cfg MailConfig, e ReservationEmail) []byte {
	// header injection
	safe := func(s string) string {
		s = strings.ReplaceAll(strings.TrimSpace(s), "\r", " ")
		return strings.ReplaceAll(s, "\n", " ")
	}

	guestName := safe(e.GuestName)
	ref := safe(e.ReferenceCode)
	link := safe(e.Link)
	if !(strings.HasPrefix(link, "http://") || strings.HasPrefix(link, "https://")) {
		link = "https://" + strings.TrimLeft(link, "/")
	}

	from := fmt.Sprintf("%s <%s>", safe(cfg.FromName), cfg.Username)
	subject := fmt.Sprintf("Reservation Confirmation - %s", ref)
	boundary := "----=_HOTEL_RESERVATION_BOUNDARY"

	plainBody := fmt.Sprintf(
		"Dear %s,\n\n"+
			"Your reservation is confirmed.\n\n"+
			"Reference: %s\n"+
			"Rooms:\n%s\n"+
			"Check-In: %s\n"+
			"Check-Out: %s\n\n"+
			"View your reservation: %s\n\n"+
			"Best regards,\n%s",
		guestName, ref, roomsListText(e.Rooms), safe(e.CheckIn), safe(e.CheckOut), link, cfg.FromName,
	)

	htmlBody := fmt.Sprintf(`<!doctype html>
<html>
<head><meta charset="utf-8"><title>Reservation Confirmation</title></head>
<body style="background:#f5f7fb;font-family:Arial,Helvetica,sans-serif;color:#222;">
  <div style="max-width:700px;margin:20px auto;background:#fff;border:1px solid #e6eef6;padding:24px;border-radius:8px;">
    <h2>Reservation Confirmation</h2>
    <p>Dear %s,</p>
    <p><b>Reference:</b> %s</p>
    <p><b>Rooms:</b> %s</p>
    <p><b>Check-In:</b> %s</p>
    <p><b>Check-Out:</b> %s</p>
    <a href="%s" target="_blank">View reservation</a>
    <p>Best regards,<br>%s</p>
  </div>
</body>
</html>`,
		htmlEscape(guestName), htmlEscape(ref), roomsListHTML(e.Rooms),
		htmlEscape(safe(e.CheckIn)), htmlEscape(safe(e.CheckOut)), htmlEscape(link), htmlEscape(cfg.FromName),
	)

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("From: %s\r\n", from))
	sb.WriteString(fmt.Sprintf("To: %s\r\n", safe(e.To)))
	sb.WriteString(fmt.Sprintf("Subject: %s\r\n", subject))
	sb.WriteString("MIME-Version: 1.0\r\n")
	sb.WriteString(fmt.Sprintf("Content-Type: multipart/alternative; boundary=\"%s\"\r\n\r\n", boundary))

	sb.WriteString(fmt.Sprintf("--%s\r\n", boundary))
	sb.WriteString("Content-Type: text/plain; charset=utf-8\r\n\r\n")
	sb.WriteString(plainBody + "\r\n")

	sb.WriteString(fmt.Sprintf("--%s\r\n", boundary))
	sb.WriteString("Content-Type: text/html; charset=utf-8\r\n\r\n")
	sb.WriteString(htmlBody + "\r\n")

	sb.WriteString(fmt.Sprintf("--%s--\r\n", boundary))
	return []byte(sb.String())
}

// helper: produce plain text list for rooms
func roomsListText(rooms []RoomInfo) string {
	if len(rooms) == 0 {
		return "N/A"
	}
	var b strings.Builder
	for _, r := range rooms {
		num := strings.TrimSpace(r.Number)
		typ := strings.TrimSpace(r.Type)
		if typ != "" {
			b.WriteString(fmt.Sprintf(" - %s (%s)\n", num, typ))
		} else {
			b.WriteString(fmt.Sprintf(" - %s\n", num))
		}
	}
	return b.String()
}

// helper: produce HTML list for rooms
func roomsListHTML(rooms []RoomInfo) string {
	if len(rooms) == 0 {
		return "<em>N/A</em>"
	}
	var b strings.Builder
	b.WriteString("<ul>")
	for _, r := range rooms {
		num := strings.TrimSpace(r.Number)
		typ := strings.TrimSpace(r.Type)
		if typ != "" {
			b.WriteString(fmt.Sprintf("<li>%s (%s)</li>", htmlEscape(num), htmlEscape(typ)))
		} else {
			b.WriteString(fmt.Sprintf("<li>%s</li>", htmlEscape(num)))
		}
	}
	b.WriteString("</ul>")
	return b.String()
}

// minimal html escaper for the small strings we use
func htmlEscape(s string) string {
	replacer := strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
		"'", "&#39;",
	)
	return replacer.Replace(s)
}
