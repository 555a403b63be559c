package carclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func listBody(cars []Car, totalCount int) []byte {
	b, _ := json.Marshal(map[string]interface{}{
		"success":    true,
		"data":       cars,
		"count":      len(cars),
		"totalCount": totalCount,
	})
	return b
}

func newTestClient(srv *httptest.Server) *Client {
	return &Client{
		BaseURL:     srv.URL,
		APIKey:      "test-key",
		HTTPClient:  srv.Client(),
		RetryDelay:  5 * time.Millisecond,
		MaxAttempts: 3,
	}
}

func TestFetchPage_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "dacia", r.URL.Query().Get("query"))
		assert.Equal(t, "1", r.URL.Query().Get("page"))
		assert.Equal(t, "20", r.URL.Query().Get("limit"))
		assert.Equal(t, "test-key", r.Header.Get("apikey"))
		w.Write(listBody([]Car{{ID: "1", Make: "Dacia", Model: "Logan"}}, 45))
	}))
	defer srv.Close()

	q, _ := BuildQuery("dacia", 1, 20)
	page, err := newTestClient(srv).FetchPage(context.Background(), q)
	require.NoError(t, err)
	require.Len(t, page.Cars, 1)
	assert.Equal(t, 45, page.TotalCount)
	assert.True(t, page.HasMore)
}

func TestFetchPage_LastPageHasMoreFalse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(listBody([]Car{{ID: "41"}}, 45))
	}))
	defer srv.Close()

	q, _ := BuildQuery("", 3, 20)
	page, err := newTestClient(srv).FetchPage(context.Background(), q)
	require.NoError(t, err)
	assert.False(t, page.HasMore)
}

// P6: two transient failures then success means exactly 3 attempts,
// with the backoff doubling between them.
func TestFetchPage_RetriesTransientThenSucceeds(t *testing.T) {
	var attempts int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := atomic.AddInt32(&attempts, 1)
		if n <= 2 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write(listBody([]Car{{ID: "1"}}, 1))
	}))
	defer srv.Close()

	c := newTestClient(srv)
	c.RetryDelay = 20 * time.Millisecond

	start := time.Now()
	q, _ := BuildQuery("", 1, 20)
	page, err := c.FetchPage(context.Background(), q)
	elapsed := time.Since(start)

	require.NoError(t, err)
	assert.Equal(t, int32(3), atomic.LoadInt32(&attempts))
	require.Len(t, page.Cars, 1)
	// waits 20ms then 40ms before the second and third attempts
	assert.GreaterOrEqual(t, elapsed, 60*time.Millisecond)
}

func TestFetchPage_RetriesOn429(t *testing.T) {
	var attempts int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&attempts, 1) == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.Write(listBody(nil, 0))
	}))
	defer srv.Close()

	q, _ := BuildQuery("", 1, 20)
	_, err := newTestClient(srv).FetchPage(context.Background(), q)
	require.NoError(t, err)
	assert.Equal(t, int32(2), atomic.LoadInt32(&attempts))
}

func TestFetchPage_UpstreamAfterRetriesExhausted(t *testing.T) {
	var attempts int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&attempts, 1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	q, _ := BuildQuery("", 1, 20)
	_, err := newTestClient(srv).FetchPage(context.Background(), q)
	assert.ErrorIs(t, err, ErrUpstream)
	assert.Equal(t, int32(3), atomic.LoadInt32(&attempts))
}

func TestFetchPage_ClientErrorNoRetry(t *testing.T) {
	var attempts int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&attempts, 1)
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	q, _ := BuildQuery("", 1, 20)
	_, err := newTestClient(srv).FetchPage(context.Background(), q)
	assert.ErrorIs(t, err, ErrUpstream)
	assert.Equal(t, int32(1), atomic.LoadInt32(&attempts))
}

func TestFetchPage_NetworkFailureAfterRetries(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // refuse all connections

	c := &Client{BaseURL: srv.URL, RetryDelay: time.Millisecond}
	q, _ := BuildQuery("", 1, 20)
	_, err := c.FetchPage(context.Background(), q)
	assert.ErrorIs(t, err, ErrNetwork)
}

func TestFetchPage_CancelDuringBackoffStopsRetrying(t *testing.T) {
	var attempts int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&attempts, 1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := newTestClient(srv)
	c.RetryDelay = 500 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	start := time.Now()
	q, _ := BuildQuery("", 1, 20)
	_, err := c.FetchPage(ctx, q)

	assert.ErrorIs(t, err, context.Canceled)
	assert.Less(t, time.Since(start), 400*time.Millisecond)
	assert.Equal(t, int32(1), atomic.LoadInt32(&attempts))
}

func TestFetchPage_InvalidResponseShape(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":true,"data":{"not":"a list"}}`))
	}))
	defer srv.Close()

	q, _ := BuildQuery("", 1, 20)
	_, err := newTestClient(srv).FetchPage(context.Background(), q)
	assert.ErrorIs(t, err, ErrInvalidResponse)
}

func TestFetchPage_NormalizesVideosAndSeller(t *testing.T) {
	playbackID := "a1B2c3D4e5F6g7H8i9J0k1L2m3N4o5P6q7R8s9T0"
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(listBody([]Car{{
			ID:     "1",
			Make:   "Dacia",
			Videos: []string{playbackID, "https://example.com/raw.mp4", "junk"},
		}}, 1))
	}))
	defer srv.Close()

	q, _ := BuildQuery("", 1, 20)
	page, err := newTestClient(srv).FetchPage(context.Background(), q)
	require.NoError(t, err)
	require.Len(t, page.Cars, 1)

	car := page.Cars[0]
	assert.Equal(t, []string{
		"https://stream.mux.com/" + playbackID + ".m3u8",
		"https://example.com/raw.mp4",
	}, car.Videos)

	require.NotNil(t, car.Seller)
	assert.Equal(t, "Autovad Demo", car.Seller.Name)
	assert.True(t, car.Seller.Verified)
}

func TestFetchCar_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/cars/42", r.URL.Path)
		b, _ := json.Marshal(map[string]interface{}{
			"success": true,
			"data":    Car{ID: "42", Make: "BMW"},
		})
		w.Write(b)
	}))
	defer srv.Close()

	car, err := newTestClient(srv).FetchCar(context.Background(), "42")
	require.NoError(t, err)
	assert.Equal(t, "BMW", car.Make)
}

func TestFetchCar_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := newTestClient(srv).FetchCar(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}
