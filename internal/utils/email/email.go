package email

import (
	"fmt"
	"net/smtp"
	"strings"

	"github.com/jordan-wright/email"
	"github.com/sirupsen/logrus"

	"github.com/Dan9191/rental-service/internal/config"
	"github.com/Dan9191/rental-service/internal/models"
)

// Sender handles sending emails via SMTP
type Sender struct {
	cfg    *config.Config
	logger *logrus.Logger
}

// NewSender creates a new email sender
func NewSender(cfg *config.Config, logger *logrus.Logger) *Sender {
	return &Sender{
		cfg:    cfg,
		logger: logger,
	}
}

// SendAlertDigest emails the given alerts as one message to the configured recipients
func (s *Sender) SendAlertDigest(alerts []models.Alert) error {
	if len(alerts) == 0 {
		return nil
	}

	e := email.NewEmail()
	e.From = s.cfg.SenderEmail
	e.To = recipients(s.cfg.AlertEmailTo)
	e.Subject = digestSubject(alerts)
	e.Text = []byte(DigestBody(alerts))

	addr := fmt.Sprintf("%s:%s", s.cfg.SMTPHost, s.cfg.SMTPPort)
	var auth smtp.Auth
	if s.cfg.SMTPUsername != "" {
		auth = smtp.PlainAuth("", s.cfg.SMTPUsername, s.cfg.SMTPPassword, s.cfg.SMTPHost)
	}
	if err := e.Send(addr, auth); err != nil {
		s.logger.Errorf("Failed to send alert digest to %v: %v", e.To, err)
		return fmt.Errorf("failed to send alert digest: %w", err)
	}

	s.logger.Infof("Alert digest sent to %v: %d alerts", e.To, len(alerts))
	return nil
}

func digestSubject(alerts []models.Alert) string {
	if len(alerts) == 1 {
		return "1 new rental alert"
	}
	return fmt.Sprintf("%d new rental alerts", len(alerts))
}

// DigestBody renders the plain text body of an alert digest, grouped by kind
func DigestBody(alerts []models.Alert) string {
	order := []models.AlertKind{
		models.AlertPaymentOverdue,
		models.AlertLeaseExpiry,
		models.AlertRentDue,
		models.AlertScheduledIncrease,
		models.AlertRenewalSuggested,
	}
	byKind := make(map[models.AlertKind][]models.Alert)
	for _, a := range alerts {
		byKind[a.Kind] = append(byKind[a.Kind], a)
	}

	var b strings.Builder
	b.WriteString("New alerts were generated for your leases.\n")
	for _, kind := range order {
		group := byKind[kind]
		if len(group) == 0 {
			continue
		}
		fmt.Fprintf(&b, "\n%s (%d)\n", headings[kind], len(group))
		for _, a := range group {
			fmt.Fprintf(&b, "  - lease %s: %s (%s)\n", a.LeaseID, a.Message, a.GeneratedAt.Format("2006-01-02 15:04"))
		}
	}
	b.WriteString("\nRental Service")
	return b.String()
}

var headings = map[models.AlertKind]string{
	models.AlertPaymentOverdue:    "Overdue payments",
	models.AlertLeaseExpiry:       "Leases expiring",
	models.AlertRentDue:           "Rent due",
	models.AlertScheduledIncrease: "Scheduled increases",
	models.AlertRenewalSuggested:  "Renewals to discuss",
}

func recipients(list string) []string {
	var out []string
	for _, r := range strings.Split(list, ",") {
		if r = strings.TrimSpace(r); r != "" {
			out = append(out, r)
		}
	}
	return out
}
