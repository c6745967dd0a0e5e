// Package fetch retrieves the configured remote rule lists into the local
// rules directory, with MD5 change detection to skip unchanged rewrites.
package fetch

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/valyala/fasttemplate"

	"github.com/vkotov/rulesmith/internal/config"
	"github.com/vkotov/rulesmith/internal/log"
	"github.com/vkotov/rulesmith/internal/utils"
)

// SourceURL returns the URL a source is fetched from: the explicit URL if
// set, otherwise the expanded general.url_template.
func SourceURL(src *config.Source, cfg *config.Config) (string, error) {
	if src.URL != "" {
		return src.URL, nil
	}
	if cfg.General.URLTemplate == "" {
		return "", fmt.Errorf("source \"%s\" has no URL and no url_template is configured", src.Name)
	}

	t := fasttemplate.New(cfg.General.URLTemplate, "{{", "}}")
	return t.ExecuteString(map[string]interface{}{
		"name": src.Name,
	}), nil
}

// FetchSource downloads a single source list.
// Returns (changed, error) where changed indicates the file was updated.
func FetchSource(src *config.Source, cfg *config.Config) (bool, error) {
	url, err := SourceURL(src, cfg)
	if err != nil {
		return false, err
	}

	rulesDir := cfg.GetAbsRulesDir()
	if err := os.MkdirAll(rulesDir, 0755); err != nil {
		return false, fmt.Errorf("failed to create rules directory: %v", err)
	}

	log.Infof("Fetching list \"%s\" from URL: %s", src.Name, url)

	resp, err := http.Get(url)
	if err != nil {
		return false, fmt.Errorf("failed to fetch list \"%s\": %v", src.Name, err)
	}
	defer utils.CloseOrWarn(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return false, fmt.Errorf("failed to fetch list \"%s\": %s", src.Name, resp.Status)
	}

	body := newChecksumReader(resp.Body)
	content, err := io.ReadAll(body)
	if err != nil {
		return false, fmt.Errorf("failed to read response for list \"%s\": %v", src.Name, err)
	}

	filePath := filepath.Join(rulesDir, src.Name+".txt")
	checksum := body.Checksum()

	if !isFileChanged(checksum, filePath) {
		log.Infof("List \"%s\" is not changed, skipping write to disk", src.Name)
		return false, nil
	}

	if err := os.WriteFile(filePath, content, 0644); err != nil {
		return false, fmt.Errorf("failed to write list file to %s: %v", filePath, err)
	}
	if err := writeChecksum(checksum, filePath); err != nil {
		return false, fmt.Errorf("failed to write list checksum: %v", err)
	}

	log.Infof("List \"%s\" fetched successfully", src.Name)
	return true, nil
}

// FetchAll downloads every configured source. Any transport failure is
// fatal to the run: the first error aborts the remaining fetches.
func FetchAll(cfg *config.Config) error {
	for _, src := range cfg.Sources {
		if _, err := FetchSource(src, cfg); err != nil {
			return err
		}
	}
	return nil
}
