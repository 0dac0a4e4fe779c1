package kafka

import (
	"context"
	"time"

	"github.com/twmb/franz-go/pkg/kgo"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const initTimeout time.Duration = 10 * time.Second

// Config represents the configuration for a Kafka producer client.
type Config struct {
	Brokers       []string
	ClientID      string
	ProduceTopic  string
	ProduceLinger time.Duration
}

// Option is a functional option type that allows us to configure the Kafka client.
type Option func(*Config)

// New creates a new Kafka client for producing records and checks that a broker answers.
func New(ctx context.Context, options ...Option) (*kgo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, initTimeout)
	defer cancel()

	c := &Config{}

	for _, opt := range options {
		opt(c)
	}

	if len(c.Brokers) == 0 {
		return nil, status.Errorf(codes.InvalidArgument, "failed to initialize Kafka client: missing brokers")
	}

	opts := []kgo.Opt{
		kgo.SeedBrokers(c.Brokers...),
		kgo.AllowAutoTopicCreation(),
		kgo.RequiredAcks(kgo.AllISRAcks()),
	}

	if c.ClientID != "" {
		opts = append(opts, kgo.ClientID(c.ClientID))
	}

	if c.ProduceTopic != "" {
		opts = append(opts, kgo.DefaultProduceTopic(c.ProduceTopic))
	}

	if c.ProduceLinger > 0 {
		opts = append(opts, kgo.ProducerLinger(c.ProduceLinger))
	}

	client, err := kgo.NewClient(opts...)
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "failed to initialize Kafka client: %v", err)
	}

	if err := client.Ping(ctx); err != nil {
		client.Close()
		return nil, status.Errorf(codes.Unavailable, "failed to reach Kafka brokers: %v", err)
	}

	return client, nil
}

// WithBrokers sets the Kafka brokers.
func WithBrokers(brokers ...string) Option {
	return func(c *Config) {
		c.Brokers = brokers
	}
}

// WithClientID sets the client ID reported to the brokers.
func WithClientID(id string) Option {
	return func(c *Config) {
		c.ClientID = id
	}
}

// WithProduceTopic sets the topic records without a topic are produced to.
func WithProduceTopic(topic string) Option {
	return func(c *Config) {
		c.ProduceTopic = topic
	}
}

// WithProduceLinger sets how long the producer waits to batch records.
func WithProduceLinger(linger time.Duration) Option {
	return func(c *Config) {
		c.ProduceLinger = linger
	}
}
