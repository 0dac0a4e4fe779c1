package config

import (
	"github.com/kelseyhightower/envconfig"
)

// IndexMigration holds the index migration job configuration.
type IndexMigration struct {
	Environment

	Elasticsearch
	Ledger
	Migrations
	Redis
	Kafka
}

// InitIndexMigrationConfig initializes the index migration configuration.
func InitIndexMigrationConfig() (*IndexMigration, error) {
	var cfg IndexMigration
	if err := envconfig.Process(envPrefix, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
