package fetch

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/vkotov/rulesmith/internal/config"
)

func testConfig(t *testing.T, tmpDir string) *config.Config {
	t.Helper()

	cfg := config.DefaultConfig()
	cfg.Sources = nil
	cfg.Categories = nil
	if err := cfg.SetConfigPath(filepath.Join(tmpDir, "rulesmith.toml")); err != nil {
		t.Fatal(err)
	}
	return cfg
}

func TestSourceURL(t *testing.T) {
	cfg := &config.Config{
		General: &config.GeneralConfig{
			URLTemplate: "https://example.com/release/{{name}}.txt",
		},
	}

	tests := []struct {
		name string
		src  *config.Source
		want string
	}{
		{"template expansion", &config.Source{Name: "direct"}, "https://example.com/release/direct.txt"},
		{"explicit URL wins", &config.Source{Name: "direct", URL: "https://other.example/d.txt"}, "https://other.example/d.txt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SourceURL(tt.src, cfg)
			if err != nil {
				t.Fatalf("SourceURL failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("SourceURL = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSourceURL_NoURLAndNoTemplate(t *testing.T) {
	cfg := &config.Config{General: &config.GeneralConfig{}}

	if _, err := SourceURL(&config.Source{Name: "direct"}, cfg); err == nil {
		t.Error("expected an error for a source without URL or template")
	}
}

func TestFetchSource_Success(t *testing.T) {
	tmpDir := t.TempDir()

	content := "payload:\n  - example.com\n"
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(content))
	}))
	defer server.Close()

	cfg := testConfig(t, tmpDir)
	src := &config.Source{Name: "direct", URL: server.URL}

	changed, err := FetchSource(src, cfg)
	if err != nil {
		t.Fatalf("FetchSource failed: %v", err)
	}
	if !changed {
		t.Error("expected first fetch to report changed")
	}

	got, err := os.ReadFile(cfg.SourceFilePath(src))
	if err != nil {
		t.Fatalf("failed to read fetched file: %v", err)
	}
	if string(got) != content {
		t.Errorf("fetched content = %q, want %q", got, content)
	}

	if _, err := os.Stat(cfg.SourceFilePath(src) + ".md5"); err != nil {
		t.Errorf("expected checksum sidecar: %v", err)
	}
}

func TestFetchSource_UnchangedSkipsWrite(t *testing.T) {
	tmpDir := t.TempDir()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("payload: []\n"))
	}))
	defer server.Close()

	cfg := testConfig(t, tmpDir)
	src := &config.Source{Name: "private", URL: server.URL}

	if _, err := FetchSource(src, cfg); err != nil {
		t.Fatalf("first fetch failed: %v", err)
	}

	changed, err := FetchSource(src, cfg)
	if err != nil {
		t.Fatalf("second fetch failed: %v", err)
	}
	if changed {
		t.Error("expected second fetch of identical content to report unchanged")
	}
}

func TestFetchSource_HTTPErrorIsFatal(t *testing.T) {
	tmpDir := t.TempDir()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer server.Close()

	cfg := testConfig(t, tmpDir)
	src := &config.Source{Name: "direct", URL: server.URL}

	if _, err := FetchSource(src, cfg); err == nil {
		t.Error("expected an error for a 404 response")
	}
}

func TestFetchAll_AbortsOnFirstFailure(t *testing.T) {
	tmpDir := t.TempDir()

	okServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("payload: []\n"))
	}))
	defer okServer.Close()

	badServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer badServer.Close()

	cfg := testConfig(t, tmpDir)
	cfg.Sources = []*config.Source{
		{Name: "bad", URL: badServer.URL},
		{Name: "good", URL: okServer.URL},
	}

	if err := FetchAll(cfg); err == nil {
		t.Fatal("expected FetchAll to fail")
	}

	if _, err := os.Stat(filepath.Join(cfg.GetAbsRulesDir(), "good.txt")); !os.IsNotExist(err) {
		t.Error("expected no fetch after the first failure")
	}
}
