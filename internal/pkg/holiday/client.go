package holiday

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// Source provides public holidays for a year and region as a map of
// YYYY-MM-DD date to holiday name.
type Source interface {
	Holidays(ctx context.Context, year int, state string) (map[string]string, error)
}

// Client fetches public holidays from an external API compatible with
// feiertage-api.de: GET ?jahr=<year>&nur_land=<state> returning
// {"<name>": {"datum": "YYYY-MM-DD", "hinweis": "..."}}.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

type apiHoliday struct {
	Datum   string `json:"datum"`
	Hinweis string `json:"hinweis"`
}

// Holidays implements Source. An empty state yields no holidays without
// touching the network.
func (c *Client) Holidays(ctx context.Context, year int, state string) (map[string]string, error) {
	if state == "" {
		return map[string]string{}, nil
	}

	q := url.Values{}
	q.Set("jahr", strconv.Itoa(year))
	q.Set("nur_land", state)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build holiday request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("holiday API request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("holiday API returned status %d", resp.StatusCode)
	}

	var payload map[string]apiHoliday
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode holiday response: %w", err)
	}

	out := make(map[string]string, len(payload))
	for name, h := range payload {
		if h.Datum != "" {
			out[h.Datum] = name
		}
	}
	return out, nil
}
