package config

import (
	"time"
)

const envPrefix = ""

// Environment holds the deployment environment.
type Environment struct {
	Env string `envconfig:"ENV" default:"development"`
}

// Elasticsearch holds the engine connection settings.
//
// Index and DocumentType are the connector-level defaults used when a component
// does not carry its own override.
type Elasticsearch struct {
	URLs            []string `envconfig:"ELASTICSEARCH_URLS" default:"http://localhost:9200"`
	Username        string   `envconfig:"ELASTICSEARCH_USERNAME"`
	Password        string   `envconfig:"ELASTICSEARCH_PASSWORD"`
	Index           string   `envconfig:"ELASTICSEARCH_INDEX" default:"migrations"`
	DocumentType    string   `envconfig:"ELASTICSEARCH_DOCUMENT_TYPE" default:"_doc"`
	IndexPrefix     string   `envconfig:"ELASTICSEARCH_INDEX_PREFIX"`
	IncludeTypeName bool     `envconfig:"ELASTICSEARCH_INCLUDE_TYPE_NAME" default:"true"`
	TLSEnabled      bool     `envconfig:"ELASTICSEARCH_TLS_ENABLED" default:"false"`
	TLSCAFile       string   `envconfig:"ELASTICSEARCH_TLS_CA_FILE"`
	TLSCertFile     string   `envconfig:"ELASTICSEARCH_TLS_CERT_FILE"`
	TLSKeyFile      string   `envconfig:"ELASTICSEARCH_TLS_KEY_FILE"`
}

// Settings returns the connector-level settings used as the resolution fallback.
func (e *Elasticsearch) Settings() Settings {
	return Settings{
		KeyIndex:        e.Index,
		KeyDocumentType: e.DocumentType,
		KeyIndexPrefix:  e.IndexPrefix,
	}
}

// Ledger holds the ledger storage overrides.
type Ledger struct {
	Index        string `envconfig:"LEDGER_INDEX"`
	DocumentType string `envconfig:"LEDGER_DOCUMENT_TYPE"`
}

// Settings returns the ledger-local settings.
func (l *Ledger) Settings() Settings {
	return Settings{
		KeyIndex:        l.Index,
		KeyDocumentType: l.DocumentType,
	}
}

// Migrations holds the migration definitions location and what the job does with them.
type Migrations struct {
	Dir string `envconfig:"MIGRATIONS_DIR" default:"migrations"`
	// Mode is "run" to apply pending migrations or "status" to report them.
	Mode string `envconfig:"MIGRATIONS_MODE" default:"run"`
	// Target restricts the job to a single logical target when set.
	Target string `envconfig:"MIGRATIONS_TARGET"`
}

// Redis holds the configuration for the target lease store.
type Redis struct {
	Enabled      bool          `envconfig:"REDIS_ENABLED" default:"false"`
	Host         string        `envconfig:"REDIS_HOST" default:"localhost"`
	Port         int           `envconfig:"REDIS_PORT" default:"6379"`
	Password     string        `envconfig:"REDIS_PASSWORD"`
	DB           int           `envconfig:"REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"REDIS_POOL_SIZE" default:"4"`
	MinIdleConns int           `envconfig:"REDIS_MIN_IDLE_CONNS" default:"1"`
	ReadTimeout  time.Duration `envconfig:"REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"REDIS_WRITE_TIMEOUT" default:"5s"`
	// LeaseTTL must outlast the longest single migration; the lease is renewed between migrations.
	LeaseTTL time.Duration `envconfig:"REDIS_LEASE_TTL" default:"30m"`
}

// Kafka holds the configuration for migration event publication.
type Kafka struct {
	Brokers []string `envconfig:"KAFKA_BROKERS"`
	Topic   string   `envconfig:"KAFKA_MIGRATIONS_TOPIC" default:"index-migrations"`
}
