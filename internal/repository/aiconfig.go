package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jmroz/inquiry-desk/internal/kvstore"
	"github.com/jmroz/inquiry-desk/internal/models"
)

// DefaultAIConfig is the built-in config served until the first write.
func DefaultAIConfig() models.AIConfig {
	return models.AIConfig{
		ConfidenceThreshold: 80,
		AutoResponse:        false,
		ResponseTemplate:    "",
		CompanyName:         "Pracownia Internetowa",
		ContactEmail:        "kontakt@pracownia.example.pl",
	}
}

// ConfigStore holds the single global AIConfig record.
type ConfigStore struct {
	store kvstore.Store
}

func NewConfigStore(store kvstore.Store) *ConfigStore {
	return &ConfigStore{store: store}
}

func (c *ConfigStore) Get(ctx context.Context) (models.AIConfig, error) {
	raw, err := c.store.Get(ctx, configKey)
	if errors.Is(err, kvstore.ErrNotFound) {
		return DefaultAIConfig(), nil
	}
	if err != nil {
		return models.AIConfig{}, err
	}

	var cfg models.AIConfig
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return models.AIConfig{}, fmt.Errorf("%w: %s: %v", ErrCorruptRecord, configKey, err)
	}
	return cfg, nil
}

// Set replaces the whole record. A partial config loses the omitted
// fields; callers must always supply every field.
func (c *ConfigStore) Set(ctx context.Context, cfg models.AIConfig) error {
	raw, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("error encoding config: %v", err)
	}
	return c.store.Set(ctx, configKey, raw)
}
