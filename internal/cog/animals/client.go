package animals

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"seina-bot/pkg/retrylimit"
)

// Kinds lists the animal endpoints the API serves, in menu order.
var Kinds = []string{"cat", "dog", "fox", "bird", "panda", "koala", "raccoon", "kangaroo"}

// Result is one answer from the animal endpoint.
type Result struct {
	Image string `json:"image"`
	Fact  string `json:"fact"`
}

// Client talks to the Some Random API animal endpoints. Calls share an
// adaptive limiter so a throttling response slows every caller down.
type Client struct {
	http    *http.Client
	baseURL string
	limiter *retrylimit.AdaptiveLimiter
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		http:    &http.Client{Timeout: timeout},
		baseURL: baseURL,
		limiter: retrylimit.NewAdaptiveLimiter(2, 1, 5, 1, 0.5),
	}
}

// Animal fetches an image and fact for the given kind.
func (c *Client) Animal(ctx context.Context, kind string) (*Result, error) {
	var out Result
	err := retrylimit.WithRetryMax(ctx, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/animal/"+kind, nil)
		if err != nil {
			return &retrylimit.FatalError{Err: err}
		}
		resp, err := c.http.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		switch {
		case resp.StatusCode == http.StatusOK:
			return json.NewDecoder(resp.Body).Decode(&out)
		case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
			return &retrylimit.StatusError{Code: resp.StatusCode, Err: fmt.Errorf("animal %s", kind)}
		default:
			return &retrylimit.FatalError{Err: fmt.Errorf("animal %s: unexpected status %s", kind, resp.Status)}
		}
	}, c.limiter, 3)
	if err != nil {
		return nil, err
	}
	if out.Image == "" {
		return nil, fmt.Errorf("animal %s: empty response", kind)
	}
	return &out, nil
}
