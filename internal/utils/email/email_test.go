package email

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/Dan9191/rental-service/internal/models"
)

func TestDigestBody_GroupsByKind(t *testing.T) {
	at := time.Date(2024, 3, 15, 8, 0, 0, 0, time.UTC)
	alerts := []models.Alert{
		{LeaseID: uuid.New(), Kind: models.AlertRentDue, Message: "Rent is due today.", GeneratedAt: at},
		{LeaseID: uuid.New(), Kind: models.AlertPaymentOverdue, Message: "Payment overdue for period 2024-02.", GeneratedAt: at},
		{LeaseID: uuid.New(), Kind: models.AlertPaymentOverdue, Message: "Payment overdue for period 2024-03.", GeneratedAt: at},
	}

	body := DigestBody(alerts)

	assert.Contains(t, body, "Overdue payments (2)")
	assert.Contains(t, body, "Rent due (1)")
	assert.NotContains(t, body, "Scheduled increases")
	assert.Less(t, strings.Index(body, "Overdue payments"), strings.Index(body, "Rent due"))
	assert.Contains(t, body, "2024-03-15 08:00")
}

func TestRecipients(t *testing.T) {
	assert.Equal(t, []string{"a@x.com", "b@x.com"}, recipients(" a@x.com, ,b@x.com "))
	assert.Nil(t, recipients(""))
}

func TestDigestSubject(t *testing.T) {
	assert.Equal(t, "1 new rental alert", digestSubject(make([]models.Alert, 1)))
	assert.Equal(t, "3 new rental alerts", digestSubject(make([]models.Alert, 3)))
}
