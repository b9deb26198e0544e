package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"lease-recert-bot/internal/domain"
)

type LeaseRepo struct {
	db *sql.DB
}

func NewLeaseRepo(dsn string) (*LeaseRepo, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err := migrate(db); err != nil {
		return nil, err
	}
	return &LeaseRepo{db: db}, nil
}

func migrate(db *sql.DB) error {
	_, err := db.Exec(`
CREATE TABLE IF NOT EXISTS leases (
    id TEXT PRIMARY KEY,
    chat_id INTEGER NOT NULL,
    tenant_name TEXT NOT NULL,
    property_address TEXT NOT NULL,
    lease_start_date TEXT NOT NULL,
    recert_date TEXT NOT NULL,
    reminder_date TEXT NOT NULL,
    created_at TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_leases_chat_id ON leases(chat_id);
CREATE INDEX IF NOT EXISTS idx_leases_reminder_date ON leases(reminder_date);
`)
	return err
}

func (r *LeaseRepo) Create(ownerChat int64, tenantName, propertyAddress, startDate string) (domain.Lease, error) {
	lease, err := domain.NewLease(ownerChat, tenantName, propertyAddress, startDate)
	if err != nil {
		return domain.Lease{}, err
	}
	lease.ID = uuid.NewString()
	lease.CreatedAt = time.Now()

	_, err = r.db.Exec(`INSERT INTO leases(id, chat_id, tenant_name, property_address, lease_start_date, recert_date, reminder_date, created_at)
VALUES(?,?,?,?,?,?,?,?)`,
		lease.ID,
		lease.OwnerChat,
		lease.TenantName,
		lease.PropertyAddress,
		lease.LeaseStartDate.Format(domain.DateLayout),
		lease.RecertDate.Format(domain.DateLayout),
		lease.ReminderDate.Format(domain.DateLayout),
		lease.CreatedAt,
	)
	if err != nil {
		return domain.Lease{}, fmt.Errorf("insert lease: %w", err)
	}
	return lease, nil
}

func (r *LeaseRepo) ListByOwner(ownerChat int64) ([]domain.Lease, error) {
	rows, err := r.db.Query(`SELECT id, chat_id, tenant_name, property_address, lease_start_date, recert_date, reminder_date, created_at
FROM leases WHERE chat_id = ? ORDER BY created_at ASC, rowid ASC`, ownerChat)
	if err != nil {
		return nil, err
	}
	return scanLeases(rows)
}

func (r *LeaseRepo) ListDueOn(date time.Time) ([]domain.Lease, error) {
	rows, err := r.db.Query(`SELECT id, chat_id, tenant_name, property_address, lease_start_date, recert_date, reminder_date, created_at
FROM leases WHERE reminder_date = ?`, date.Format(domain.DateLayout))
	if err != nil {
		return nil, err
	}
	return scanLeases(rows)
}

func (r *LeaseRepo) ListDueBetween(from, to time.Time) ([]domain.Lease, error) {
	rows, err := r.db.Query(`SELECT id, chat_id, tenant_name, property_address, lease_start_date, recert_date, reminder_date, created_at
FROM leases WHERE reminder_date >= ? AND reminder_date < ? ORDER BY reminder_date ASC`,
		from.Format(domain.DateLayout), to.Format(domain.DateLayout))
	if err != nil {
		return nil, err
	}
	return scanLeases(rows)
}

func (r *LeaseRepo) Delete(ownerChat int64, id string) (bool, error) {
	res, err := r.db.Exec(`DELETE FROM leases WHERE id = ? AND chat_id = ?`, id, ownerChat)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *LeaseRepo) DeleteAll(ownerChat int64) (int, error) {
	res, err := r.db.Exec(`DELETE FROM leases WHERE chat_id = ?`, ownerChat)
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	return int(n), nil
}

func (r *LeaseRepo) Close() error { return r.db.Close() }

func scanLeases(rows *sql.Rows) ([]domain.Lease, error) {
	defer rows.Close()
	leases := make([]domain.Lease, 0, 16)
	for rows.Next() {
		var l domain.Lease
		var start, recert, remind string
		if err := rows.Scan(&l.ID, &l.OwnerChat, &l.TenantName, &l.PropertyAddress, &start, &recert, &remind, &l.CreatedAt); err != nil {
			return nil, err
		}
		var err error
		if l.LeaseStartDate, err = time.Parse(domain.DateLayout, start); err != nil {
			return nil, fmt.Errorf("corrupt lease_start_date %q: %w", start, err)
		}
		if l.RecertDate, err = time.Parse(domain.DateLayout, recert); err != nil {
			return nil, fmt.Errorf("corrupt recert_date %q: %w", recert, err)
		}
		if l.ReminderDate, err = time.Parse(domain.DateLayout, remind); err != nil {
			return nil, fmt.Errorf("corrupt reminder_date %q: %w", remind, err)
		}
		leases = append(leases, l)
	}
	return leases, rows.Err()
}
