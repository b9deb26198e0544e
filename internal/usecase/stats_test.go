package usecase_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lease-recert-bot/internal/infra/memory"
	"lease-recert-bot/internal/usecase"
)

func TestStatsSummary(t *testing.T) {
	repo := memory.NewLeaseRepo()
	statRepo := memory.NewSweepStatRepo()
	stats := usecase.NewStats(repo, statRepo)

	assert.Equal(t, "No sweep runs recorded yet", stats.Summary(5))

	require.NoError(t, statRepo.Save(usecase.SweepStat{RunDate: "2025-10-04", Total: 1, Sent: 1}))
	require.NoError(t, statRepo.Save(usecase.SweepStat{RunDate: "2025-10-05", Total: 3, Sent: 2, Failed: 1}))

	out := stats.Summary(5)
	assert.Contains(t, out, "Recent reminder sweeps:")
	assert.Contains(t, out, "1) 2025-10-05 — due: 3, sent: 2, failed: 1", "newest first")
	assert.Contains(t, out, "2) 2025-10-04 — due: 1, sent: 1, failed: 0")
}

func TestStatsUpcomingLoad(t *testing.T) {
	repo := memory.NewLeaseRepo()
	stats := usecase.NewStats(repo, memory.NewSweepStatRepo())

	// reminders: 2025-10-05, 2025-10-12, 2025-11-05
	for _, start := range []string{"2025-01-15", "2025-01-22", "2025-02-15"} {
		_, err := repo.Create(1, "T", "addr", start)
		require.NoError(t, err)
	}

	labels, values, err := stats.UpcomingLoad(day(t, "2025-10-05"), 4)
	require.NoError(t, err)
	require.Len(t, labels, 4)
	require.Len(t, values, 4)

	assert.Equal(t, []string{"10-05", "10-12", "10-19", "10-26"}, labels)
	assert.Equal(t, []int{1, 1, 0, 0}, values, "reminder past the window is excluded")
}
