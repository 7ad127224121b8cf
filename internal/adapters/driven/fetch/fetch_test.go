package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetch_Success(t *testing.T) {
	var gotAgent string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAgent = r.Header.Get("User-Agent")
		_, _ = w.Write([]byte("document bytes"))
	}))
	defer srv.Close()

	c := New()
	body, err := c.Fetch(context.Background(), srv.URL+"/doc.pdf")
	require.NoError(t, err)
	assert.Equal(t, "document bytes", string(body))
	assert.Contains(t, gotAgent, "convertd")
}

func TestFetch_NonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	c := New()
	_, err := c.Fetch(context.Background(), srv.URL+"/missing.pdf")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}

func TestFetch_BodyOverCapRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write(make([]byte, 64))
	}))
	defer srv.Close()

	c := New()
	c.maxBody = 16

	_, err := c.Fetch(context.Background(), srv.URL+"/big.pdf")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exceeds")
}

func TestFetch_BodyAtCapAccepted(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write(make([]byte, 16))
	}))
	defer srv.Close()

	c := New()
	c.maxBody = 16

	body, err := c.Fetch(context.Background(), srv.URL+"/ok.pdf")
	require.NoError(t, err)
	assert.Len(t, body, 16)
}

func TestFetch_RejectsNonHTTPScheme(t *testing.T) {
	c := New()
	_, err := c.Fetch(context.Background(), "ftp://example.com/doc.pdf")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "scheme")
}

func TestFetch_ContextCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := New()
	_, err := c.Fetch(ctx, srv.URL)
	assert.Error(t, err)
}
