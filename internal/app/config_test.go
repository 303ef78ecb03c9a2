package app

import (
	"os"
	"path/filepath"
	"testing"
)

const sampleConfig = `
http:
  listen: ":8080"
sfmc:
  subdomain: "mc12345"
  auth:
    token_endpoint: "https://mc12345.auth.marketingcloudapis.com/v2/token"
    client_id: "cid"
    client_secret: "secret"
    account_id: "510001234"
  max_retries: 5
  base_delay_ms: 500
crawl:
  job_cron: "0 6 * * *"
  concurrency: 8
  crawl_on_start: true
neo4j:
  uri: "bolt://127.0.0.1:7687"
  username: "neo4j"
  password: "pass"
  batch_size: 200
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, sampleConfig))
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.SFMC.Subdomain != "mc12345" {
		t.Fatalf("unexpected subdomain %q", cfg.SFMC.Subdomain)
	}
	if cfg.SFMC.MaxRetries != 5 || cfg.SFMC.BaseDelayMs != 500 {
		t.Fatalf("unexpected retry config %+v", cfg.SFMC)
	}
	if cfg.Crawl.Concurrency != 8 || !cfg.Crawl.CrawlOnStart {
		t.Fatalf("unexpected crawl config %+v", cfg.Crawl)
	}
	if !cfg.ExportEnabled() {
		t.Fatalf("neo4j uri set, export must be enabled")
	}
}

func TestLoadConfigExportDisabled(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, "sfmc:\n  subdomain: mc1\n"))
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.ExportEnabled() {
		t.Fatalf("export must be disabled without neo4j uri")
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatalf("missing file must fail")
	}
}

func TestLoadConfigInvalidYAML(t *testing.T) {
	if _, err := LoadConfig(writeConfig(t, "sfmc: [broken")); err == nil {
		t.Fatalf("invalid yaml must fail")
	}
}
