package memory

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"lease-recert-bot/internal/domain"
)

// LeaseRepo is the in-memory LeaseRepository. Creation order is preserved
// so ListByOwner returns oldest-created first like the sqlite repo.
type LeaseRepo struct {
	mu     sync.RWMutex
	leases []domain.Lease
}

func NewLeaseRepo() *LeaseRepo {
	return &LeaseRepo{leases: make([]domain.Lease, 0, 32)}
}

func (r *LeaseRepo) Create(ownerChat int64, tenantName, propertyAddress, startDate string) (domain.Lease, error) {
	lease, err := domain.NewLease(ownerChat, tenantName, propertyAddress, startDate)
	if err != nil {
		return domain.Lease{}, err
	}
	lease.ID = uuid.NewString()
	lease.CreatedAt = time.Now()

	r.mu.Lock()
	defer r.mu.Unlock()
	r.leases = append(r.leases, lease)
	return lease, nil
}

func (r *LeaseRepo) ListByOwner(ownerChat int64) ([]domain.Lease, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	res := make([]domain.Lease, 0, len(r.leases))
	for _, l := range r.leases {
		if l.OwnerChat == ownerChat {
			res = append(res, l)
		}
	}
	return res, nil
}

func (r *LeaseRepo) ListDueOn(date time.Time) ([]domain.Lease, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	key := date.Format(domain.DateLayout)
	res := make([]domain.Lease, 0, 8)
	for _, l := range r.leases {
		if l.ReminderDate.Format(domain.DateLayout) == key {
			res = append(res, l)
		}
	}
	return res, nil
}

func (r *LeaseRepo) ListDueBetween(from, to time.Time) ([]domain.Lease, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	fromKey := from.Format(domain.DateLayout)
	toKey := to.Format(domain.DateLayout)
	res := make([]domain.Lease, 0, 8)
	for _, l := range r.leases {
		key := l.ReminderDate.Format(domain.DateLayout)
		if key >= fromKey && key < toKey {
			res = append(res, l)
		}
	}
	return res, nil
}

func (r *LeaseRepo) Delete(ownerChat int64, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, l := range r.leases {
		if l.ID == id && l.OwnerChat == ownerChat {
			r.leases = append(r.leases[:i], r.leases[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (r *LeaseRepo) DeleteAll(ownerChat int64) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	kept := r.leases[:0]
	count := 0
	for _, l := range r.leases {
		if l.OwnerChat == ownerChat {
			count++
			continue
		}
		kept = append(kept, l)
	}
	r.leases = kept
	return count, nil
}
