// file: internals/mailer/mailer.go
package mailer

import (
	"fmt"
	"log"
	"net/smtp"
	"strings"

	"github.com/google/uuid"

	"labreserve_backend/internals/configs"
	"labreserve_backend/internals/features/reservations/dto"
)

// Mailer sends reservation notification mails. Without SMTP_HOST it runs
// in log-only mode so local and CI environments never try to connect.
type Mailer struct {
	Host     string
	Port     string
	Sender   string
	Password string
	Enabled  bool
}

func NewFromEnv() *Mailer {
	host := configs.GetEnv("SMTP_HOST")
	return &Mailer{
		Host:     host,
		Port:     configs.GetEnv("SMTP_PORT", "587"),
		Sender:   configs.GetEnv("SMTP_SENDER", "lab.reservation@campus.edu"),
		Password: configs.GetEnv("SMTP_PASSWORD"),
		Enabled:  host != "",
	}
}

func (m *Mailer) send(recipient, subject, body string) {
	if m == nil {
		return
	}
	if !m.Enabled {
		log.Printf("[MAIL] to=%s subject=%q\n%s", recipient, subject, body)
		return
	}
	msg := strings.Join([]string{
		"From: " + m.Sender,
		"To: " + recipient,
		"Subject: " + subject,
		"Message-ID: <" + uuid.NewString() + "@" + m.Host + ">",
		"",
		body,
	}, "\r\n")
	auth := smtp.PlainAuth("", m.Sender, m.Password, m.Host)
	if err := smtp.SendMail(m.Host+":"+m.Port, auth, m.Sender, []string{recipient}, []byte(msg)); err != nil {
		// notification failure never affects the arbitration outcome
		log.Printf("[MAIL] send to %s failed: %v", recipient, err)
	}
}

func (m *Mailer) SendApproval(email, labNumber, date, start, end string, reservationID int64) {
	m.send(email,
		fmt.Sprintf("Lab Reservation Approved - %s", labNumber),
		fmt.Sprintf("Your reservation #%d for %s on %s (%s-%s) is approved.",
			reservationID, labNumber, date, start, end))
}

func (m *Mailer) SendPending(email, labNumber, date, start, end string, alternatives *dto.AlternativesResponse) {
	body := fmt.Sprintf("Your reservation for %s on %s (%s-%s) is pending manual review.",
		labNumber, date, start, end)
	if alternatives != nil && len(alternatives.AlternativeLabs) > 0 {
		var labs []string
		for _, l := range alternatives.AlternativeLabs {
			labs = append(labs, fmt.Sprintf("%s (cap %d)", l.LabNumber, l.Capacity))
		}
		body += "\nFree right now at the same time: " + strings.Join(labs, ", ")
	}
	m.send(email, fmt.Sprintf("Lab Reservation Pending - %s", labNumber), body)
}

func (m *Mailer) SendResolution(email, labNumber, date, start, end string, approved bool) {
	verdict := "rejected after review"
	if approved {
		verdict = "approved after review"
	}
	m.send(email,
		fmt.Sprintf("Lab Reservation Update - %s", labNumber),
		fmt.Sprintf("Your reservation for %s on %s (%s-%s) was %s.",
			labNumber, date, start, end, verdict))
}

func (m *Mailer) SendCancellation(email, labNumber, date, start, end string) {
	m.send(email,
		fmt.Sprintf("Lab Reservation Cancelled - %s", labNumber),
		fmt.Sprintf("Your reservation for %s on %s (%s-%s) has been cancelled.",
			labNumber, date, start, end))
}
