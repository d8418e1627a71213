package animals

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientAnimal(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/animal/fox", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"image":"https://img.example/fox.png","fact":"Foxes scream."}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second)
	res, err := c.Animal(context.Background(), "fox")
	require.NoError(t, err)
	assert.Equal(t, "https://img.example/fox.png", res.Image)
	assert.Equal(t, "Foxes scream.", res.Fact)
}

func TestClientRetriesServerErrors(t *testing.T) {
	attempts := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte(`{"image":"https://img.example/cat.png","fact":""}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second)
	res, err := c.Animal(context.Background(), "cat")
	require.NoError(t, err)
	assert.Equal(t, 3, attempts)
	assert.Equal(t, "https://img.example/cat.png", res.Image)
}

func TestClientStopsOnClientError(t *testing.T) {
	attempts := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second)
	_, err := c.Animal(context.Background(), "dragon")
	require.Error(t, err)
	assert.Equal(t, 1, attempts, "4xx responses must not be retried")
}

func TestClientRejectsEmptyPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second)
	_, err := c.Animal(context.Background(), "cat")
	assert.Error(t, err)
}
