package fetcher

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/aleister1102/tixwatch/internal/common"
	"github.com/aleister1102/tixwatch/internal/config"
	"github.com/aleister1102/tixwatch/internal/httpclient"
	"github.com/aleister1102/tixwatch/internal/models"
	"github.com/go-rod/rod"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T) *httpclient.HTTPClient {
	t.Helper()
	client, err := httpclient.NewHTTPClientBuilder(zerolog.Nop()).WithHTTP2(false).Build()
	require.NoError(t, err)
	return client
}

func TestStaticFetcher_Fetch(t *testing.T) {
	var gotCacheControl string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotCacheControl = r.Header.Get("Cache-Control")
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(eventPage))
	}))
	defer server.Close()

	f := NewStaticFetcher(newTestClient(t), true, zerolog.Nop())
	snapshot, err := f.Fetch(context.Background(), server.URL)
	require.NoError(t, err)

	assert.Equal(t, "no-cache", gotCacheControl)
	assert.Equal(t, models.ModeStatic, snapshot.Mode)
	assert.Contains(t, snapshot.RawText, "立即訂購")
	assert.True(t, snapshot.HasStructure())
	assert.Equal(t, models.ModeStatic, f.Mode())
	assert.NoError(t, f.Close())
}

func TestStaticFetcher_RawTextOnly(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(eventPage))
	}))
	defer server.Close()

	f := NewStaticFetcher(newTestClient(t), false, zerolog.Nop())
	snapshot, err := f.Fetch(context.Background(), server.URL)
	require.NoError(t, err)
	assert.False(t, snapshot.HasStructure())
	assert.Equal(t, eventPage, snapshot.RawText)
}

func TestStaticFetcher_HTTPErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	f := NewStaticFetcher(newTestClient(t), true, zerolog.Nop())
	snapshot, err := f.Fetch(context.Background(), server.URL)
	require.Error(t, err)
	assert.Nil(t, snapshot)

	var fetchErr *common.FetchError
	require.True(t, errors.As(err, &fetchErr))
	assert.Equal(t, "static", fetchErr.Mode)
	assert.Equal(t, server.URL, fetchErr.URL)

	var httpErr *common.HTTPError
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, http.StatusServiceUnavailable, httpErr.StatusCode)
}

func TestStaticFetcher_ConnectionRefused(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	f := NewStaticFetcher(newTestClient(t), true, zerolog.Nop())
	_, err := f.Fetch(context.Background(), url)

	var fetchErr *common.FetchError
	assert.True(t, errors.As(err, &fetchErr))
}

// fakeSession stands in for a Chrome session
type fakeSession struct {
	startErr error
	starts   int
	closes   int
}

func (s *fakeSession) Start(ctx context.Context) error {
	s.starts++
	return s.startErr
}

func (s *fakeSession) Page() (*rod.Page, error) {
	return nil, common.ErrSessionClosed
}

func (s *fakeSession) Close() error {
	s.closes++
	return nil
}

func TestFactory_OpenStatic(t *testing.T) {
	f := NewFactory(config.NewDefaultGlobalConfig(), zerolog.Nop())

	fetcher, err := f.Open(context.Background(), models.ModeStatic)
	require.NoError(t, err)
	assert.Equal(t, models.ModeStatic, fetcher.Mode())
	assert.IsType(t, &StaticFetcher{}, fetcher)
}

func TestFactory_OpenScriptedFailure(t *testing.T) {
	tests := []struct {
		name     string
		startErr error
	}{
		{name: "session init error passes through", startErr: common.NewSessionInitError("launch", errors.New("no chrome"))},
		{name: "plain error is wrapped", startErr: errors.New("connection reset")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			session := &fakeSession{startErr: tt.startErr}
			f := NewFactory(config.NewDefaultGlobalConfig(), zerolog.Nop()).
				WithSessionConstructor(func() PageSession { return session })

			fetcher, err := f.Open(context.Background(), models.ModeScripted)
			assert.Nil(t, fetcher)

			var initErr *common.SessionInitError
			require.True(t, errors.As(err, &initErr))
			assert.Equal(t, 1, session.starts)
			assert.Equal(t, 1, session.closes, "failed session is released")
		})
	}
}

func TestFactory_OpenScriptedWithMissingChrome(t *testing.T) {
	cfg := config.NewDefaultGlobalConfig()
	cfg.BrowserConfig.ChromePath = filepath.Join(t.TempDir(), "no-such-chrome")
	f := NewFactory(cfg, zerolog.Nop())

	type result struct {
		fetcher Fetcher
		err     error
	}
	done := make(chan result, 1)
	go func() {
		fetcher, err := f.Open(context.Background(), models.ModeScripted)
		done <- result{fetcher, err}
	}()

	select {
	case res := <-done:
		assert.Nil(t, res.fetcher)
		var initErr *common.SessionInitError
		require.True(t, errors.As(res.err, &initErr))
		assert.Equal(t, "launch", initErr.Op)
	case <-time.After(15 * time.Second):
		t.Fatal("Open(scripted) did not return after a failed launch")
	}
}

func TestFactory_OpenScripted(t *testing.T) {
	session := &fakeSession{}
	f := NewFactory(config.NewDefaultGlobalConfig(), zerolog.Nop()).
		WithSessionConstructor(func() PageSession { return session })

	fetcher, err := f.Open(context.Background(), models.ModeScripted)
	require.NoError(t, err)
	assert.Equal(t, models.ModeScripted, fetcher.Mode())

	_, err = fetcher.Fetch(context.Background(), "https://example.test")
	var fetchErr *common.FetchError
	require.True(t, errors.As(err, &fetchErr))
	assert.Equal(t, "page", fetchErr.Op)
	assert.ErrorIs(t, err, common.ErrSessionClosed)

	require.NoError(t, fetcher.Close())
	assert.Equal(t, 1, session.closes)
}

func TestFactory_UnknownMode(t *testing.T) {
	f := NewFactory(config.NewDefaultGlobalConfig(), zerolog.Nop())
	_, err := f.Open(context.Background(), models.DetectionMode("carrier-pigeon"))
	assert.Error(t, err)
}
