package appointment

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"
)

var ErrBookingRequest = errors.New("booking API request failed")

// BookingClient fetches appointment records from the external booking API so
// they can be imported into the local store.
type BookingClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewBookingClient reads BOOKING_API_URL (required) and BOOKING_API_KEY
// (optional) from the environment.
func NewBookingClient() (*BookingClient, error) {
	baseURL := os.Getenv("BOOKING_API_URL")
	if baseURL == "" {
		return nil, errors.New("missing required BOOKING_API_URL configuration")
	}
	baseURL = strings.TrimSuffix(baseURL, "/")

	return &BookingClient{
		baseURL:    baseURL,
		apiKey:     os.Getenv("BOOKING_API_KEY"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}, nil
}

// FetchAppointments retrieves all appointments for a doctor from the booking
// API and maps them to local records, defaulting missing nested fields.
func (c *BookingClient) FetchAppointments(ctx context.Context, doctor string) ([]Record, error) {
	query := url.Values{"doctor": {doctor}}
	endpoint := fmt.Sprintf("%s/appointments?%s", c.baseURL, query.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create booking request: %w", err)
	}
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBookingRequest, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", ErrBookingRequest, resp.StatusCode)
	}

	return DecodeUpstreamList(resp.Body)
}
