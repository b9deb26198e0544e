package usecase

import (
	"fmt"
	"strings"
	"time"

	"lease-recert-bot/internal/domain"
)

// Stats serves the admin /stats view: recent sweep outcomes plus the
// upcoming reminder load for charting.
type Stats struct {
	leases domain.LeaseRepository
	stats  SweepStatRepository
}

func NewStats(leases domain.LeaseRepository, stats SweepStatRepository) *Stats {
	return &Stats{leases: leases, stats: stats}
}

func (u *Stats) Summary(n int) string {
	stats, err := u.stats.ListRecent(n)
	if err != nil || len(stats) == 0 {
		return "No sweep runs recorded yet"
	}
	var b strings.Builder
	b.WriteString("Recent reminder sweeps:\n")
	for i, s := range stats {
		fmt.Fprintf(&b, "%d) %s — due: %d, sent: %d, failed: %d\n", i+1, s.RunDate, s.Total, s.Sent, s.Failed)
	}
	return b.String()
}

// UpcomingLoad returns week labels and reminder counts for the next
// `weeks` weeks starting at from, for rendering as a bar chart.
func (u *Stats) UpcomingLoad(from time.Time, weeks int) ([]string, []int, error) {
	to := from.AddDate(0, 0, weeks*7)
	due, err := u.leases.ListDueBetween(from, to)
	if err != nil {
		return nil, nil, err
	}

	labels := make([]string, weeks)
	values := make([]int, weeks)
	for i := 0; i < weeks; i++ {
		labels[i] = from.AddDate(0, 0, i*7).Format("01-02")
	}
	for _, l := range due {
		idx := int(l.ReminderDate.Sub(from).Hours() / 24 / 7)
		if idx >= 0 && idx < weeks {
			values[idx]++
		}
	}
	return labels, values, nil
}
