package holiday

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Holidays(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "2026", r.URL.Query().Get("jahr"))
		assert.Equal(t, "BW", r.URL.Query().Get("nur_land"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"Neujahrstag": {"datum": "2026-01-01", "hinweis": ""}, "Karfreitag": {"datum": "2026-04-03", "hinweis": ""}}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	got, err := client.Holidays(context.Background(), 2026, "BW")

	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"2026-01-01": "Neujahrstag",
		"2026-04-03": "Karfreitag",
	}, got)
}

func TestClient_EmptyStateSkipsNetwork(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	got, err := client.Holidays(context.Background(), 2026, "")

	require.NoError(t, err)
	assert.Empty(t, got)
	assert.False(t, called)
}

func TestClient_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	_, err := client.Holidays(context.Background(), 2026, "BW")

	assert.Error(t, err)
}

// countingSource tracks how often the upstream is hit.
type countingSource struct {
	calls int
}

func (c *countingSource) Holidays(ctx context.Context, year int, state string) (map[string]string, error) {
	c.calls++
	return map[string]string{"2026-01-01": "New Year"}, nil
}

func TestCache_MemoizesPerStateAndYear(t *testing.T) {
	src := &countingSource{}
	cache := NewCache(src)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		got, err := cache.Holidays(ctx, 2026, "BW")
		require.NoError(t, err)
		assert.Len(t, got, 1)
	}
	assert.Equal(t, 1, src.calls)

	// Different key misses the cache.
	_, err := cache.Holidays(ctx, 2027, "BW")
	require.NoError(t, err)
	_, err = cache.Holidays(ctx, 2026, "BY")
	require.NoError(t, err)
	assert.Equal(t, 3, src.calls)
}
