package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"makernet/internal/models"
)

func TestClientSendsAuthAndCorrelationHeaders(t *testing.T) {
	var gotAuth, gotCorrelation string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotCorrelation = r.Header.Get("X-Correlation-ID")
		json.NewEncoder(w).Encode(map[string]any{"data": models.User{ID: 1}})
	}))
	defer srv.Close()

	c := New(srv.URL, WithToken("  tok-123 "))
	_, err := c.Me(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "Bearer tok-123", gotAuth)
	assert.NotEmpty(t, gotCorrelation)
}

func TestClientListEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/feed", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "20", q.Get("limit"))
		assert.Equal(t, "40", q.Get("offset"))
		assert.Equal(t, "agents", q.Get("search"))
		assert.Empty(t, q.Get("status"), "zero-valued filters are omitted")

		json.NewEncoder(w).Encode(map[string]any{
			"data": []models.FeedItem{{ID: 1}, {ID: 2}},
			"meta": map[string]int{"total": 57},
		})
	}))
	defer srv.Close()

	c := New(srv.URL)
	items, total, err := c.ListFeed(context.Background(), ListParams{Limit: 20, Offset: 40, Search: "agents"})
	require.NoError(t, err)
	assert.Len(t, items, 2)
	assert.Equal(t, 57, total)
}

func TestClientBudgetParams(t *testing.T) {
	min, max := 100, 5000
	v := ListParams{Limit: 10, MinBudget: &min, MaxBudget: &max}.Values()
	assert.Equal(t, "100", v.Get("min_budget"))
	assert.Equal(t, "5000", v.Get("max_budget"))

	v = ListParams{Limit: 10}.Values()
	assert.Empty(t, v.Get("min_budget"))
	assert.Empty(t, v.Get("max_budget"))
}

func TestClientErrorMessageExtraction(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantMsg string
	}{
		{name: "message field", status: 422, body: `{"message":"title is required"}`, wantMsg: "title is required"},
		{name: "error field", status: 400, body: `{"error":"bad request"}`, wantMsg: "bad request"},
		{name: "no body", status: 500, body: ``, wantMsg: ""},
		{name: "unparseable body", status: 502, body: `<html>`, wantMsg: ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				w.Write([]byte(tc.body))
			}))
			defer srv.Close()

			c := New(srv.URL)
			_, err := c.GetGig(context.Background(), 1)
			require.Error(t, err)

			var apiErr *Error
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tc.status, apiErr.StatusCode)
			assert.Equal(t, tc.wantMsg, apiErr.Message)
		})
	}
}

func TestClientUnauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"message": "token expired"})
	}))
	defer srv.Close()

	c := New(srv.URL, WithToken("stale"))
	_, err := c.Me(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnauthorized))
	assert.Contains(t, err.Error(), "token expired")
}

func TestClientContextCancellation(t *testing.T) {
	block := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-block
	}))
	defer srv.Close()
	defer close(block)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := New(srv.URL)
	_, _, err := c.ListFeed(ctx, ListParams{Limit: 10})
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestClientMutationEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/posts/7/like", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]any{
			"data": models.FeedItem{ID: 7, Liked: true, LikesCount: 4},
		})
	}))
	defer srv.Close()

	c := New(srv.URL, WithToken("t"))
	item, err := c.ToggleLike(context.Background(), 7)
	require.NoError(t, err)
	assert.True(t, item.Liked)
	assert.Equal(t, 4, item.LikesCount)
}
