package webhook

import (
	"bytes"
	"context"
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"lease-recert-bot/internal/domain"
)

// Client posts reminder events to an external HTTP endpoint (ticketing,
// property-management systems and the like).
type Client struct {
	URL        string
	Secret     string
	HTTPClient *http.Client
}

func NewClient(url, secret string, opts ...func(*Client)) *Client {
	c := &Client{
		URL:        url,
		Secret:     secret,
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func WithHTTPClient(hc *http.Client) func(*Client) {
	return func(c *Client) {
		if hc != nil {
			c.HTTPClient = hc
		}
	}
}

type reminderPayload struct {
	TenantName      string `json:"tenant_name"`
	PropertyAddress string `json:"property_address"`
	LeaseStartDate  string `json:"lease_start_date"`
	RecertDate      string `json:"recert_date"`
	ReminderDate    string `json:"reminder_date"`
	Time            int64  `json:"time"`
	Token           string `json:"token"`
}

// SendReminder posts one reminder event. The token is md5(time + secret),
// letting the receiver verify the sender without a shared TLS setup.
func (c *Client) SendReminder(ctx context.Context, lease domain.Lease) error {
	if c == nil {
		return errors.New("webhook client is nil")
	}
	if strings.TrimSpace(c.URL) == "" {
		return errors.New("webhook url is not set")
	}

	ts := time.Now().Unix()
	payload := reminderPayload{
		TenantName:      lease.TenantName,
		PropertyAddress: lease.PropertyAddress,
		LeaseStartDate:  lease.LeaseStartDate.Format(domain.DateLayout),
		RecertDate:      lease.RecertDate.Format(domain.DateLayout),
		ReminderDate:    lease.ReminderDate.Format(domain.DateLayout),
		Time:            ts,
		Token:           md5Hex(strconv.FormatInt(ts, 10) + c.Secret),
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.URL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("webhook non-2xx: %d: %s", resp.StatusCode, string(b))
	}
	return nil
}

func md5Hex(s string) string {
	sum := md5.Sum([]byte(s))
	return hex.EncodeToString(sum[:])
}
