package arrears

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Dan9191/rental-service/internal/models"
)

// BuildStatement settles the payments collected for an owner between from and to inclusive.
// Lines outside the range are ignored; the rest are ordered by payment date.
func BuildStatement(owner models.Owner, lines []models.StatementLine, from, to time.Time, commissionRate decimal.Decimal, now time.Time) models.Statement {
	st := models.Statement{
		OwnerID:        owner.ID,
		OwnerName:      owner.Name,
		From:           from,
		To:             to,
		Lines:          make([]models.StatementLine, 0, len(lines)),
		TotalCollected: decimal.Zero,
		Expenses:       decimal.Zero,
		GeneratedAt:    now,
	}
	for _, l := range lines {
		if l.PaidOn.Before(from) || l.PaidOn.After(to) {
			continue
		}
		st.Lines = append(st.Lines, l)
		st.TotalCollected = st.TotalCollected.Add(l.Amount)
	}
	sort.SliceStable(st.Lines, func(i, j int) bool {
		return st.Lines[i].PaidOn.Before(st.Lines[j].PaidOn)
	})

	st.Commission = st.TotalCollected.Mul(commissionRate).Round(2)
	st.Net = st.TotalCollected.Sub(st.Commission).Sub(st.Expenses)
	return st
}
