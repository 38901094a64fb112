// Package sessionize reads a published schedule from the Sessionize API.
package sessionize

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// DefaultBaseURL is the public Sessionize API root.
const DefaultBaseURL = "https://sessionize.com/api/v2"

// sessionize publishes local wall-clock times without a zone
const localLayout = "2006-01-02T15:04:05"

// localTime decodes Sessionize timestamps, with or without a zone offset.
type localTime struct {
	time.Time
}

func (t *localTime) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		return nil
	}
	parsed, err := time.Parse(localLayout, s)
	if err != nil {
		parsed, err = time.Parse(time.RFC3339, s)
		if err != nil {
			return fmt.Errorf("sessionize time %q: %w", s, err)
		}
	}
	t.Time = parsed
	return nil
}

// allResponse is the shape of the "All" view.
type allResponse struct {
	Sessions   []apiSession  `json:"sessions"`
	Speakers   []apiSpeaker  `json:"speakers"`
	Rooms      []apiRoom     `json:"rooms"`
	Categories []apiCategory `json:"categories"`
}

type apiSession struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	StartsAt      localTime `json:"startsAt"`
	EndsAt        localTime `json:"endsAt"`
	Speakers      []string  `json:"speakers"`
	CategoryItems []int     `json:"categoryItems"`
	RoomID        int       `json:"roomId"`
}

type apiSpeaker struct {
	ID       string `json:"id"`
	FullName string `json:"fullName"`
}

type apiRoom struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Sort int    `json:"sort"`
}

type apiCategoryItem struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type apiCategory struct {
	ID    int               `json:"id"`
	Title string            `json:"title"`
	Items []apiCategoryItem `json:"items"`
}

// Client calls the Sessionize API.
type Client struct {
	client  *http.Client
	baseURL string
}

// NewClient returns a Client. A nil http.Client uses http.DefaultClient and
// an empty baseURL uses DefaultBaseURL.
func NewClient(client *http.Client, baseURL string) *Client {
	if client == nil {
		client = http.DefaultClient
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{client: client, baseURL: strings.TrimSuffix(baseURL, "/")}
}

func (c *Client) fetchAll(ctx context.Context, sessionizeID string) (*allResponse, error) {
	url := fmt.Sprintf("%s/%s/view/All", c.baseURL, sessionizeID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch from sessionize: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("sessionize api returned status: %d", resp.StatusCode)
	}

	var data allResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("failed to decode sessionize response: %w", err)
	}
	return &data, nil
}
