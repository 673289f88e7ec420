package config

import (
	"os"
	"path/filepath"
	"reflect"
	"runtime"
	"strings"
	"testing"
	"time"
)

func TestDirRespectsXDGConfigHome(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("XDG_CONFIG_HOME is not used on Windows")
	}

	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg-test")
	dir, err := Dir()
	if err != nil {
		t.Fatalf("Dir: %v", err)
	}
	want := filepath.Join("/tmp/xdg-test", "mdns-client")
	if dir != want {
		t.Errorf("Dir = %q, want %q", dir, want)
	}
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("test relies on XDG_CONFIG_HOME")
	}
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Version != 1 {
		t.Errorf("Version = %d, want 1", cfg.Version)
	}
	if cfg.DefaultQuery != "" {
		t.Errorf("DefaultQuery = %q, want empty", cfg.DefaultQuery)
	}
	if cfg.ListenAddr != DefaultListenAddr {
		t.Errorf("ListenAddr = %q, want %q", cfg.ListenAddr, DefaultListenAddr)
	}
	if cfg.Window() != 0 {
		t.Errorf("Window = %v, want 0", cfg.Window())
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("test relies on XDG_CONFIG_HOME")
	}
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg := New()
	cfg.DefaultQuery = "_http._tcp.local"
	cfg.WindowSeconds = 7
	cfg.ListenAddr = "127.0.0.1:9999"
	cfg.RememberQuery("_http._tcp.local")
	cfg.RememberQuery("_ipp._tcp.local")

	if err := cfg.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}

	path, err := Path()
	if err != nil {
		t.Fatalf("Path: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read config file: %v", err)
	}
	if !strings.HasPrefix(string(data), "# mdns-client configuration.") {
		t.Errorf("config file lacks the header comment:\n%s", data)
	}

	loaded, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.DefaultQuery != cfg.DefaultQuery {
		t.Errorf("DefaultQuery = %q, want %q", loaded.DefaultQuery, cfg.DefaultQuery)
	}
	if loaded.WindowSeconds != 7 {
		t.Errorf("WindowSeconds = %d, want 7", loaded.WindowSeconds)
	}
	if loaded.Window() != 7*time.Second {
		t.Errorf("Window = %v, want 7s", loaded.Window())
	}
	if loaded.ListenAddr != "127.0.0.1:9999" {
		t.Errorf("ListenAddr = %q, want 127.0.0.1:9999", loaded.ListenAddr)
	}
	wantRecent := []string{"_ipp._tcp.local", "_http._tcp.local"}
	if !reflect.DeepEqual(loaded.RecentQueries, wantRecent) {
		t.Errorf("RecentQueries = %v, want %v", loaded.RecentQueries, wantRecent)
	}
}

func TestLoadAppliesEnvOverrides(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("test relies on XDG_CONFIG_HOME")
	}
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg := New()
	cfg.DefaultQuery = "_http._tcp.local"
	if err := cfg.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}

	t.Setenv("MDNS_CLIENT_QUERY", "_ssh._tcp.local")
	t.Setenv("MDNS_CLIENT_WINDOW_SECONDS", "12")

	loaded, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.DefaultQuery != "_ssh._tcp.local" {
		t.Errorf("DefaultQuery = %q, want env override _ssh._tcp.local", loaded.DefaultQuery)
	}
	if loaded.WindowSeconds != 12 {
		t.Errorf("WindowSeconds = %d, want env override 12", loaded.WindowSeconds)
	}
}

func TestLoadRejectsBadFiles(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("test relies on XDG_CONFIG_HOME")
	}

	tests := []struct {
		name    string
		content string
	}{
		{name: "malformed yaml", content: "version: [not\n  closed"},
		{name: "unsupported version", content: "version: 99\n"},
		{name: "negative window", content: "version: 1\nwindow_seconds: -3\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			base := t.TempDir()
			t.Setenv("XDG_CONFIG_HOME", base)
			dir := filepath.Join(base, "mdns-client")
			if err := os.MkdirAll(dir, 0700); err != nil {
				t.Fatalf("mkdir: %v", err)
			}
			if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(tt.content), 0600); err != nil {
				t.Fatalf("write: %v", err)
			}

			if _, err := Load(); err == nil {
				t.Error("Load succeeded, want error")
			}
		})
	}
}

func TestRememberQuery(t *testing.T) {
	tests := []struct {
		name    string
		initial []string
		add     []string
		want    []string
	}{
		{
			name: "prepends newest",
			add:  []string{"_a._tcp.local", "_b._tcp.local"},
			want: []string{"_b._tcp.local", "_a._tcp.local"},
		},
		{
			name:    "deduplicates",
			initial: []string{"_a._tcp.local", "_b._tcp.local"},
			add:     []string{"_b._tcp.local"},
			want:    []string{"_b._tcp.local", "_a._tcp.local"},
		},
		{
			name: "ignores blanks",
			add:  []string{"", "   "},
			want: nil,
		},
		{
			name: "caps the history",
			initial: []string{
				"q1", "q2", "q3", "q4", "q5", "q6", "q7", "q8", "q9", "q10",
			},
			add:  []string{"q11"},
			want: []string{"q11", "q1", "q2", "q3", "q4", "q5", "q6", "q7", "q8", "q9"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := New()
			cfg.RecentQueries = tt.initial
			for _, q := range tt.add {
				cfg.RememberQuery(q)
			}
			if !reflect.DeepEqual(cfg.RecentQueries, tt.want) {
				t.Errorf("RecentQueries = %v, want %v", cfg.RecentQueries, tt.want)
			}
		})
	}
}
