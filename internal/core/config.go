package core

import (
	"fmt"
	"time"

	"github.com/cristianoliveira/folio/internal/api"
	"github.com/cristianoliveira/folio/internal/config"
	"github.com/cristianoliveira/folio/internal/storage"
)

// APIConfigFromConfig returns the API connection settings of the loaded configuration.
func APIConfigFromConfig() api.Config {
	config.EnsureLoaded()
	return api.Config{
		BaseURL: config.Get("api_url", config.DefaultAPIURL),
		Token:   config.Get("api_token", ""),
		Timeout: time.Duration(config.GetInt("api_timeout", 10)) * time.Second,
	}
}

// NewFromConfig builds the API client, cache and Core from the loaded configuration.
func NewFromConfig() (*Core, *api.Client, error) {
	client, err := api.New(APIConfigFromConfig())
	if err != nil {
		return nil, nil, fmt.Errorf("create api client: %w", err)
	}
	c := New(client, storage.NewFromConfig(),
		WithTTL(time.Duration(config.GetInt("cache_ttl", 10))*time.Minute),
		WithPageSize(config.GetInt("page_size", DefaultPageSize)),
	)
	return c, client, nil
}
