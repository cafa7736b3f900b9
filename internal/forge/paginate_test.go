package forge

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestClient points a client at the given handler with keep-alives off so
// simulated connection drops are deterministic.
func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	hc := &http.Client{Transport: &http.Transport{DisableKeepAlives: true}}
	client := NewClient(log.New(io.Discard), WithBaseURL(server.URL), WithHTTPClient(hc))
	return client, server
}

// pageOf returns n records with globally increasing ids so tests can check
// that page order is preserved.
func pageOf(start, n int) []map[string]any {
	records := make([]map[string]any, 0, n)
	for i := 0; i < n; i++ {
		records = append(records, map[string]any{"id": float64(start + i)})
	}
	return records
}

func writeJSON(t *testing.T, w http.ResponseWriter, v any) {
	t.Helper()
	if err := json.NewEncoder(w).Encode(v); err != nil {
		t.Fatalf("encode response: %v", err)
	}
}

// pageNumber reads the page query param, defaulting to 1 for the first call.
func pageNumber(r *http.Request) int {
	raw := r.URL.Query().Get("page")
	if raw == "" {
		return 1
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 1
	}
	return n
}

func TestFetchAll_SingleShortPage(t *testing.T) {
	requests := 0
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		assert.Equal(t, "application/vnd.github.v3+json", r.Header.Get("Accept"))
		assert.Equal(t, "100", r.URL.Query().Get("per_page"))
		writeJSON(t, w, pageOf(0, 40))
	}))

	records, err := client.FetchAll(context.Background(), "/repos/foo/bar/contributors", "")
	require.NoError(t, err)
	assert.Equal(t, 1, requests, "a short first page must not trigger a second request")
	require.Len(t, records, 40)
	assert.Equal(t, float64(0), records[0]["id"])
	assert.Equal(t, float64(39), records[39]["id"])
}

func TestFetchAll_ConcatenatesPagesInOrder(t *testing.T) {
	requests := 0
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		page := pageNumber(r)
		if page <= 3 {
			writeJSON(t, w, pageOf((page-1)*PerPage, PerPage))
			return
		}
		writeJSON(t, w, pageOf((page-1)*PerPage, 40))
	}))

	records, err := client.FetchAll(context.Background(), "/repos/foo/bar/commits", "")
	require.NoError(t, err)
	assert.Equal(t, 4, requests)
	require.Len(t, records, 340)
	for i, rec := range records {
		require.Equal(t, float64(i), rec["id"], "records must stay in page order")
	}
}

func TestFetchAll_StopsAtPageCap(t *testing.T) {
	requests := 0
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		page := pageNumber(r)
		writeJSON(t, w, pageOf((page-1)*PerPage, PerPage))
	}))

	records, err := client.FetchAll(context.Background(), "/repos/foo/bar/forks", "")
	require.NoError(t, err)
	assert.Equal(t, MaxPages, requests, "an endless listing must stop at the page cap")
	assert.Len(t, records, PerPage*MaxPages)
}

func TestFetchAll_FirstPageConnectionErrorIsTotal(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // nothing is listening anymore

	client := NewClient(log.New(io.Discard), WithBaseURL(server.URL))
	records, err := client.FetchAll(context.Background(), "/repos/foo/bar/releases", "")
	require.Error(t, err)
	assert.Nil(t, records)
}

func TestFetchAll_LaterPageConnectionErrorKeepsPartialData(t *testing.T) {
	requests := 0
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		page := pageNumber(r)
		if page >= 3 {
			// Drop the connection without answering.
			hj, ok := w.(http.Hijacker)
			require.True(t, ok, "test server must support hijacking")
			conn, _, err := hj.Hijack()
			require.NoError(t, err)
			_ = conn.Close()
			return
		}
		writeJSON(t, w, pageOf((page-1)*PerPage, PerPage))
	}))

	records, err := client.FetchAll(context.Background(), "/repos/foo/bar/issues", "state=all")
	require.NoError(t, err, "a later-page connection failure is silent partial success")
	assert.Len(t, records, 2*PerPage)
	assert.Equal(t, 3, requests)
}

func TestFetchAll_ExtraParamsComeBeforePageSize(t *testing.T) {
	var gotQuery string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		writeJSON(t, w, pageOf(0, 1))
	}))

	_, err := client.FetchAll(context.Background(), "/repos/foo/bar/issues", "state=all")
	require.NoError(t, err)
	assert.Equal(t, "state=all&per_page=100", gotQuery)
}

func TestFetchAll_StatusCodeIsIgnored(t *testing.T) {
	// Known limitation kept on purpose: the status code is never checked, so
	// a non-2xx response with an array body is treated as data.
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		writeJSON(t, w, pageOf(0, 2))
	}))

	records, err := client.FetchAll(context.Background(), "/repos/foo/bar/forks", "")
	require.NoError(t, err)
	assert.Len(t, records, 2)
}

func TestFetchAll_NonArrayBodyIsAnError(t *testing.T) {
	// Rate-limit rejections look like {"message": ...}; they surface as a
	// decode error, not as records.
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		fmt.Fprint(w, `{"message":"API rate limit exceeded"}`)
	}))

	records, err := client.FetchAll(context.Background(), "/repos/foo/bar/commits", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode listing page")
	assert.Nil(t, records)
}
