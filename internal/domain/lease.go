package domain

import (
	"errors"
	"strings"
	"time"
)

// DateLayout is the only accepted format for lease dates, both on input
// and in the persisted rows.
const DateLayout = "2006-01-02"

const (
	// RecertOffsetDays fixes the recertification deadline relative to the
	// lease start. Day counts, not calendar months, so derivation stays
	// exact across month lengths and leap years.
	RecertOffsetDays = 270
	// ReminderLeadDays is how long before the recertification deadline the
	// reminder fires.
	ReminderLeadDays = 7
)

var (
	ErrEmptyTenantName = errors.New("tenant name is empty")
	ErrEmptyAddress    = errors.New("property address is empty")
	ErrBadStartDate    = errors.New("invalid lease start date")
)

// IsValidation reports whether err is a user-input validation failure,
// as opposed to a storage or infrastructure error.
func IsValidation(err error) bool {
	return errors.Is(err, ErrEmptyTenantName) ||
		errors.Is(err, ErrEmptyAddress) ||
		errors.Is(err, ErrBadStartDate)
}

type Lease struct {
	ID              string
	OwnerChat       int64
	TenantName      string
	PropertyAddress string
	LeaseStartDate  time.Time
	RecertDate      time.Time
	ReminderDate    time.Time
	CreatedAt       time.Time
}

// DeriveDates computes the recertification and reminder dates for a lease
// start date. Pure and total for any calendar date.
func DeriveDates(start time.Time) (recert, reminder time.Time) {
	recert = start.AddDate(0, 0, RecertOffsetDays)
	reminder = recert.AddDate(0, 0, -ReminderLeadDays)
	return recert, reminder
}

// ParseStartDate parses a strict YYYY-MM-DD date. Impossible dates
// (2025-02-30) and non-canonical spellings (2025-2-3) are rejected.
func ParseStartDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, ErrBadStartDate
	}
	if t.Format(DateLayout) != s {
		return time.Time{}, ErrBadStartDate
	}
	return t, nil
}

// NewLease validates raw user input and builds an unpersisted lease with
// derived dates. ID and CreatedAt are assigned by the repository.
func NewLease(ownerChat int64, tenantName, propertyAddress, startDate string) (Lease, error) {
	tenantName = strings.TrimSpace(tenantName)
	if tenantName == "" {
		return Lease{}, ErrEmptyTenantName
	}
	propertyAddress = strings.TrimSpace(propertyAddress)
	if propertyAddress == "" {
		return Lease{}, ErrEmptyAddress
	}
	start, err := ParseStartDate(strings.TrimSpace(startDate))
	if err != nil {
		return Lease{}, err
	}
	recert, reminder := DeriveDates(start)
	return Lease{
		OwnerChat:       ownerChat,
		TenantName:      tenantName,
		PropertyAddress: propertyAddress,
		LeaseStartDate:  start,
		RecertDate:      recert,
		ReminderDate:    reminder,
	}, nil
}

type LeaseRepository interface {
	// Create validates the input, derives the recertification and reminder
	// dates, assigns ID and CreatedAt and commits before returning.
	Create(ownerChat int64, tenantName, propertyAddress, startDate string) (Lease, error)
	// ListByOwner returns the owner's leases oldest-created first.
	ListByOwner(ownerChat int64) ([]Lease, error)
	// ListDueOn returns every lease, across all owners, whose reminder
	// date equals the given date.
	ListDueOn(date time.Time) ([]Lease, error)
	// ListDueBetween returns leases with from <= reminder date < to.
	ListDueBetween(from, to time.Time) ([]Lease, error)
	// Delete removes the lease only if it belongs to ownerChat and reports
	// whether a row was removed.
	Delete(ownerChat int64, id string) (bool, error)
	// DeleteAll removes every lease owned by ownerChat and returns the count.
	DeleteAll(ownerChat int64) (int, error)
}

// Abstraction for sending messages (implemented by Telegram adapter)
type MessageSender interface {
	SendText(chatID int64, text string) error
}
