package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/aleister1102/tixwatch/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want AppFlags
	}{
		{name: "empty", args: nil, want: AppFlags{}},
		{name: "long names", args: []string{"-config", "a.yaml", "-mode", "static", "-once", "-log-level", "debug"}, want: AppFlags{ConfigFile: "a.yaml", Mode: "static", Once: true, LogLevel: "debug"}},
		{name: "aliases", args: []string{"-c", "b.yaml", "-m", "scripted"}, want: AppFlags{ConfigFile: "b.yaml", Mode: "scripted"}},
		{name: "long wins over alias", args: []string{"-c", "b.yaml", "-config", "a.yaml"}, want: AppFlags{ConfigFile: "a.yaml"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseFlags(tt.args, io.Discard)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ParseFlags([]string{"-bogus"}, io.Discard)
	assert.Error(t, err)
}

func TestRun_CreatesDefaultConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	var stdout, stderr bytes.Buffer

	code := run(context.Background(), AppFlags{ConfigFile: path}, strings.NewReader(""), &stdout, &stderr)

	assert.Equal(t, exitOK, code)
	assert.FileExists(t, path)
	assert.Contains(t, stdout.String(), path)

	cfg, err := config.LoadGlobalConfig(path)
	require.NoError(t, err)
	assert.Equal(t, config.DefaultKeyword, cfg.MonitorConfig.Keyword)
}

func TestRun_InvalidConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("monitor:\n  target_url: \"\"\n"), 0644))
	var stdout, stderr bytes.Buffer

	code := run(context.Background(), AppFlags{ConfigFile: path}, strings.NewReader(""), &stdout, &stderr)

	assert.Equal(t, exitConfigError, code)
	assert.Contains(t, stderr.String(), "TargetURL")
}

func TestRun_InvalidModeFlag(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, config.WriteDefaultConfig(path))
	var stdout, stderr bytes.Buffer

	code := run(context.Background(), AppFlags{ConfigFile: path, Mode: "telepathy"}, strings.NewReader(""), &stdout, &stderr)
	assert.Equal(t, exitConfigError, code)
}

func TestRun_OnceAgainstStaticPage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html><body>sold out</body></html>"))
	}))
	defer server.Close()

	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	cfg := config.NewDefaultGlobalConfig()
	cfg.MonitorConfig.TargetURL = server.URL
	cfg.MonitorConfig.DetectionMode = "static"
	cfg.NotificationConfig.OpenBrowser = false
	cfg.NotificationConfig.BeepCount = 0
	cfg.LogConfig.LogFile = filepath.Join(dir, "tixwatch.log")
	data, err := config.MarshalYAML(cfg)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0644))

	var stdout, stderr bytes.Buffer
	code := run(context.Background(), AppFlags{ConfigFile: path, Once: true, LogLevel: "error"}, strings.NewReader(""), &stdout, &stderr)

	assert.Equal(t, exitOK, code, fmt.Sprintf("stderr: %s", stderr.String()))
}

func TestRun_ScriptedFallsBackToStatic(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		_, _ = w.Write([]byte("<html><body>sold out</body></html>"))
	}))
	defer server.Close()

	dir := t.TempDir()
	notChrome := filepath.Join(dir, "chrome")
	require.NoError(t, os.WriteFile(notChrome, []byte("not a browser"), 0644))

	path := filepath.Join(dir, "config.yaml")
	cfg := config.NewDefaultGlobalConfig()
	cfg.MonitorConfig.TargetURL = server.URL
	cfg.MonitorConfig.DetectionMode = "scripted"
	cfg.BrowserConfig.ChromePath = notChrome
	cfg.NotificationConfig.OpenBrowser = false
	cfg.NotificationConfig.BeepCount = 0
	cfg.LogConfig.LogFile = filepath.Join(dir, "tixwatch.log")
	data, err := config.MarshalYAML(cfg)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0644))

	var stdout, stderr bytes.Buffer
	done := make(chan int, 1)
	go func() {
		done <- run(context.Background(), AppFlags{ConfigFile: path, Once: true, LogLevel: "error"}, strings.NewReader(""), &stdout, &stderr)
	}()

	select {
	case code := <-done:
		assert.Equal(t, exitOK, code, fmt.Sprintf("stderr: %s", stderr.String()))
		assert.Equal(t, int32(1), hits.Load(), "static fallback polls the page")
	case <-time.After(30 * time.Second):
		t.Fatal("run did not return after the browser failed to launch")
	}
}
