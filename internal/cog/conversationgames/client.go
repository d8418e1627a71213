package conversationgames

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"seina-bot/pkg/retrylimit"
)

// Ratings the API accepts, in menu order.
var Ratings = []string{"PG", "PG13", "R"}

// DefaultRating is used when neither the invocation nor the guild pins one.
const DefaultRating = "PG"

// Question is one answer from a game endpoint.
type Question struct {
	ID       string `json:"id"`
	Type     string `json:"type"`
	Rating   string `json:"rating"`
	Question string `json:"question"`
}

// Client fetches questions from the Truth or Dare Bot API. All game commands
// share one client so its adaptive limiter sees every request.
type Client struct {
	http    *http.Client
	baseURL string
	limiter *retrylimit.AdaptiveLimiter
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		http:    &http.Client{Timeout: timeout},
		baseURL: baseURL,
		limiter: retrylimit.NewAdaptiveLimiter(3, 1, 8, 1, 0.5),
	}
}

// ValidRating reports whether the API knows this rating.
func ValidRating(rating string) bool {
	for _, r := range Ratings {
		if r == rating {
			return true
		}
	}
	return false
}

// Question fetches one question for the given game endpoint ("wyr", "nhie",
// "truth", "dare", "paranoia") and rating.
func (c *Client) Question(ctx context.Context, game, rating string) (*Question, error) {
	if !ValidRating(rating) {
		return nil, fmt.Errorf("unknown rating %q", rating)
	}

	var out Question
	err := retrylimit.WithRetryMax(ctx, func() error {
		endpoint := c.baseURL + "/" + game + "?rating=" + url.QueryEscape(rating)
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
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
			return &retrylimit.StatusError{Code: resp.StatusCode, Err: fmt.Errorf("%s %s", game, rating)}
		default:
			return &retrylimit.FatalError{Err: fmt.Errorf("%s %s: unexpected status %s", game, rating, resp.Status)}
		}
	}, c.limiter, 3)
	if err != nil {
		return nil, err
	}
	if out.Question == "" {
		return nil, fmt.Errorf("%s: empty question in response", game)
	}
	return &out, nil
}
