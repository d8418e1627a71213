package conversationgames

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientQuestion(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/truth", r.URL.Path)
		assert.Equal(t, "PG13", r.URL.Query().Get("rating"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"ABC123","type":"TRUTH","rating":"PG13","question":"What is your worst habit?"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second)
	q, err := c.Question(context.Background(), "truth", "PG13")
	require.NoError(t, err)
	assert.Equal(t, "ABC123", q.ID)
	assert.Equal(t, "What is your worst habit?", q.Question)
}

func TestClientQuestionRejectsUnknownRating(t *testing.T) {
	c := NewClient("http://unused.invalid", time.Second)
	_, err := c.Question(context.Background(), "truth", "NC17")
	assert.Error(t, err)
}

func TestClientQuestionRetriesServerErrors(t *testing.T) {
	attempts := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts < 2 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(`{"id":"X","type":"WYR","rating":"PG","question":"Left or right?"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second)
	q, err := c.Question(context.Background(), "wyr", "PG")
	require.NoError(t, err)
	assert.Equal(t, 2, attempts)
	assert.Equal(t, "Left or right?", q.Question)
}

func TestClientQuestionRejectsEmptyQuestion(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"id":"Y","type":"DARE","rating":"PG","question":""}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second)
	_, err := c.Question(context.Background(), "dare", "PG")
	assert.Error(t, err)
}

func TestValidRating(t *testing.T) {
	for _, r := range Ratings {
		assert.True(t, ValidRating(r))
	}
	assert.False(t, ValidRating("pg"))
	assert.False(t, ValidRating(""))
}
