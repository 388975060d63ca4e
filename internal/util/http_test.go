package util

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingLogger struct{ lines []string }

func (r *recordingLogger) Debugf(format string, _ ...any) {
	r.lines = append(r.lines, format)
}

func TestNewHTTPClient_SetsUserAgent(t *testing.T) {
	var gotUA, gotCookie string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		gotCookie = r.Header.Get("Cookie")
	}))
	defer srv.Close()

	log := &recordingLogger{}
	client, err := NewHTTPClient(HTTPClientOptions{
		Timeout:     5 * time.Second,
		UserAgent:   "storyd-test",
		DebugLogger: log,
	})
	require.NoError(t, err)

	resp, err := client.Get(srv.URL)
	require.NoError(t, err)
	_ = resp.Body.Close()

	assert.Equal(t, "storyd-test", gotUA)
	assert.Empty(t, gotCookie, "no credentials are ever sent")
	assert.Len(t, log.lines, 2, "init line plus one request line")
}

func TestPickUserAgent(t *testing.T) {
	assert.Equal(t, "custom", PickUserAgent("custom"))
	assert.Contains(t, PickUserAgent(""), "Mozilla/5.0")
}
