package webhook

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lease-recert-bot/internal/domain"
)

func testLease(t *testing.T) domain.Lease {
	t.Helper()
	l, err := domain.NewLease(42, "John Smith", "123 Main St", "2025-01-15")
	require.NoError(t, err)
	return l
}

func TestSendReminder(t *testing.T) {
	var got reminderPayload
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "secret")
	require.NoError(t, c.SendReminder(context.Background(), testLease(t)))

	assert.Equal(t, "John Smith", got.TenantName)
	assert.Equal(t, "123 Main St", got.PropertyAddress)
	assert.Equal(t, "2025-01-15", got.LeaseStartDate)
	assert.Equal(t, "2025-10-12", got.RecertDate)
	assert.Equal(t, "2025-10-05", got.ReminderDate)
	assert.NotZero(t, got.Time)
	assert.Len(t, got.Token, 32)
}

func TestSendReminderNon2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusBadGateway)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "secret")
	err := c.SendReminder(context.Background(), testLease(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}

func TestSendReminderRequiresURL(t *testing.T) {
	c := NewClient("  ", "secret")
	assert.Error(t, c.SendReminder(context.Background(), testLease(t)))
}
