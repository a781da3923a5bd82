package clients

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-playground/assert/v2"

	"github.com/spacesedan/stockpulse/internal/news"
)

var testWindow = news.WindowFor(time.Date(2026, 10, 21, 9, 0, 0, 0, time.UTC))

func TestAlpacaFetchNews(t *testing.T) {
	var gotSymbols, gotKey, gotStart, gotEnd string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1beta1/news", r.URL.Path)
		gotSymbols = r.URL.Query().Get("symbols")
		gotKey = r.Header.Get("APCA-API-KEY-ID")
		gotStart = r.URL.Query().Get("start")
		gotEnd = r.URL.Query().Get("end")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"news":[
			{"id":101,"headline":"Acme beats estimates","summary":"s","author":"Jane Doe","url":"https://example.com/1","symbols":["ACME"],"created_at":"2026-10-21T07:30:00Z","updated_at":"2026-10-21T07:30:00Z"},
			{"id":102,"headline":"Acme raises guidance","author":"John Roe","symbols":["ACME"],"created_at":"2026-10-20T22:00:00Z","updated_at":"2026-10-20T22:00:00Z"}
		],"next_page_token":null}`))
	}))
	defer srv.Close()

	client := NewAlpacaNewsClient("key", "secret", srv.URL, 5*time.Second)
	items, err := client.FetchNews(context.Background(), "ACME", testWindow, 50)

	assert.Equal(t, nil, err)
	assert.Equal(t, "ACME", gotSymbols)
	assert.Equal(t, "key", gotKey)
	assert.Equal(t, "2026-10-20T00:00:00Z", gotStart)
	assert.Equal(t, "2026-10-21T23:59:59Z", gotEnd)
	assert.Equal(t, 2, len(items))
	assert.Equal(t, "Jane Doe", items[0].Source)
	assert.Equal(t, "Acme beats estimates", items[0].Headline)
	assert.Equal(t, "101", items[0].ID)
	assert.Equal(t, "Acme raises guidance", items[1].Headline)
}

func TestAlpacaFetchNewsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"message":"forbidden"}`))
	}))
	defer srv.Close()

	_, err := NewAlpacaNewsClient("bad", "bad", srv.URL, 5*time.Second).FetchNews(context.Background(), "ACME", testWindow, 50)

	assert.NotEqual(t, nil, err)
}

func TestFinnhubFetchNews(t *testing.T) {
	var gotFrom, gotTo, gotToken string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/company-news", r.URL.Path)
		assert.Equal(t, "ACME", r.URL.Query().Get("symbol"))
		gotFrom = r.URL.Query().Get("from")
		gotTo = r.URL.Query().Get("to")
		gotToken = r.Header.Get("X-Finnhub-Token")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"id":1,"headline":"First","datetime":1792573200,"related":"ACME","source":"Reuters"},
			{"id":2,"headline":"Second","related":""},
			{"id":3,"headline":"Third"}
		]`))
	}))
	defer srv.Close()

	client := NewFinnhubNewsClient("token", srv.URL, 5*time.Second)
	items, err := client.FetchNews(context.Background(), "ACME", testWindow, 2)

	assert.Equal(t, nil, err)
	assert.Equal(t, "2026-10-20", gotFrom)
	assert.Equal(t, "2026-10-21", gotTo)
	assert.Equal(t, "token", gotToken)
	assert.Equal(t, 2, len(items))
	assert.Equal(t, "First", items[0].Headline)
	assert.Equal(t, []string{"ACME"}, items[0].Symbols)
	assert.Equal(t, "Second", items[1].Headline)
	assert.Equal(t, []string{}, items[1].Symbols)
}

func TestFinnhubFetchNewsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":"Invalid API key"}`))
	}))
	defer srv.Close()

	_, err := NewFinnhubNewsClient("bad", srv.URL, 5*time.Second).FetchNews(context.Background(), "ACME", testWindow, 50)

	assert.NotEqual(t, nil, err)
}

func TestNewsAPIFetchNews(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, NEWS_API_EVERYTHING_PATH, r.URL.Path)
		assert.Equal(t, "ACME", q.Get("q"))
		assert.Equal(t, "2026-10-20", q.Get("from"))
		assert.Equal(t, "2026-10-21", q.Get("to"))
		assert.Equal(t, "10", q.Get("pageSize"))
		assert.Equal(t, "key", q.Get("apiKey"))
		_, _ = w.Write([]byte(`{"status":"ok","totalResults":2,"articles":[
			{"source":{"id":null,"name":"Reuters"},"title":"Acme soars","url":"https://example.com/a","publishedAt":"2026-10-21T06:00:00Z"},
			{"source":{"id":null,"name":"AP"},"title":"Acme dips","url":"https://example.com/b","publishedAt":"2026-10-20T23:00:00Z"}
		]}`))
	}))
	defer srv.Close()

	items, err := NewNewsAPIClient("key", srv.URL, 5*time.Second).FetchNews(context.Background(), "ACME", testWindow, 10)

	assert.Equal(t, nil, err)
	assert.Equal(t, 2, len(items))
	assert.Equal(t, "Acme soars", items[0].Headline)
	assert.Equal(t, "Reuters", items[0].Source)
	assert.Equal(t, time.Date(2026, 10, 21, 6, 0, 0, 0, time.UTC), items[0].PublishedAt)
	assert.Equal(t, "Acme dips", items[1].Headline)
}

func TestNewsAPIFetchNewsStatusErrors(t *testing.T) {
	for _, status := range []int{http.StatusBadRequest, http.StatusUnauthorized, http.StatusForbidden, http.StatusTooManyRequests, http.StatusInternalServerError} {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
			_, _ = w.Write([]byte(`{"status":"error","code":"x","message":"nope"}`))
		}))

		_, err := NewNewsAPIClient("key", srv.URL, 5*time.Second).FetchNews(context.Background(), "ACME", testWindow, 10)
		assert.NotEqual(t, nil, err)
		srv.Close()
	}
}

func TestNewsAPIFetchNewsMissingKey(t *testing.T) {
	_, err := NewNewsAPIClient("", "", time.Second).FetchNews(context.Background(), "ACME", testWindow, 10)

	assert.NotEqual(t, nil, err)
}
