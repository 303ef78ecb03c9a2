package app

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type HTTP struct {
	Listen string `yaml:"listen"`
}

type SFMCAuth struct {
	TokenEndpoint string `yaml:"token_endpoint"`
	ClientID      string `yaml:"client_id"`
	ClientSecret  string `yaml:"client_secret"`
	AccountID     string `yaml:"account_id"`
	StaticToken   string `yaml:"static_token"`
}

type SFMC struct {
	Subdomain     string   `yaml:"subdomain"`
	Auth          SFMCAuth `yaml:"auth"`
	MaxRetries    int      `yaml:"max_retries"`
	BaseDelayMs   int      `yaml:"base_delay_ms"`
	TimeoutSecond int      `yaml:"timeout_second"`
}

type Crawl struct {
	JobCron      string `yaml:"job_cron"`
	Concurrency  int    `yaml:"concurrency"`
	CrawlOnStart bool   `yaml:"crawl_on_start"`
}

type Neo4j struct {
	URI                  string `yaml:"uri"`
	Username             string `yaml:"username"`
	Password             string `yaml:"password"`
	Database             string `yaml:"database"`
	MaxConnectionPool    int    `yaml:"max_connections"`
	ConnectTimeoutSecond int    `yaml:"connect_timeout_second"`
	BatchSize            int    `yaml:"batch_size"`
}

type Config struct {
	HTTP  HTTP  `yaml:"http"`
	SFMC  SFMC  `yaml:"sfmc"`
	Crawl Crawl `yaml:"crawl"`
	Neo4j Neo4j `yaml:"neo4j"`
}

// ExportEnabled 返回是否配置了 Neo4j 导出目标。
func (c Config) ExportEnabled() bool {
	return c.Neo4j.URI != ""
}

// LoadConfig 从文件加载配置。
func LoadConfig(path string) (Config, error) {
	var cfg Config
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("读取配置失败: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("解析配置失败: %w", err)
	}
	return cfg, nil
}
