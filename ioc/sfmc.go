package ioc

import (
	"fmt"
	"time"

	"sfmc2graph/internal/app"
	"sfmc2graph/internal/crawler"
	"sfmc2graph/internal/sfmc"
)

// InitSFMCClient 构建 SFMC API 客户端。
func InitSFMCClient(cfg app.Config) (crawler.API, error) {
	var tokenSource sfmc.TokenSource
	switch {
	case cfg.SFMC.Auth.ClientID != "" && cfg.SFMC.Auth.ClientSecret != "":
		endpoint := cfg.SFMC.Auth.TokenEndpoint
		if endpoint == "" && cfg.SFMC.Subdomain != "" {
			endpoint = fmt.Sprintf("https://%s.auth.marketingcloudapis.com/v2/token", cfg.SFMC.Subdomain)
		}
		ts, err := sfmc.NewClientCredentialsTokenSource(sfmc.ClientCredentialsConfig{
			Endpoint:     endpoint,
			ClientID:     cfg.SFMC.Auth.ClientID,
			ClientSecret: cfg.SFMC.Auth.ClientSecret,
			AccountID:    cfg.SFMC.Auth.AccountID,
			Timeout:      10 * time.Second,
		})
		if err != nil {
			return nil, err
		}
		tokenSource = ts
	case cfg.SFMC.Auth.StaticToken != "":
		tokenSource = &sfmc.StaticTokenSource{Value: cfg.SFMC.Auth.StaticToken}
	default:
		return nil, fmt.Errorf("sfmc.auth 需要配置 client 凭证或 static_token")
	}

	return sfmc.NewClient(sfmc.Config{
		Subdomain:   cfg.SFMC.Subdomain,
		TokenSource: tokenSource,
		MaxRetries:  cfg.SFMC.MaxRetries,
		BaseDelay:   time.Duration(cfg.SFMC.BaseDelayMs) * time.Millisecond,
		Timeout:     time.Duration(cfg.SFMC.TimeoutSecond) * time.Second,
	})
}
