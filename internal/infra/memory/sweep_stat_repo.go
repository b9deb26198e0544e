package memory

import (
	"sync"
	"time"

	"lease-recert-bot/internal/usecase"
)

type SweepStatRepo struct {
	mu    sync.RWMutex
	stats []usecase.SweepStat
}

func NewSweepStatRepo() *SweepStatRepo {
	return &SweepStatRepo{stats: make([]usecase.SweepStat, 0, 32)}
}

func (r *SweepStatRepo) Save(stat usecase.SweepStat) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stat.CreatedAt = time.Now()
	r.stats = append(r.stats, stat)
	return nil
}

// ListRecent returns the last n runs, newest first.
func (r *SweepStatRepo) ListRecent(n int) ([]usecase.SweepStat, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if n <= 0 || n > len(r.stats) {
		n = len(r.stats)
	}
	res := make([]usecase.SweepStat, 0, n)
	for i := len(r.stats) - 1; i >= 0 && len(res) < n; i-- {
		res = append(res, r.stats[i])
	}
	return res, nil
}
