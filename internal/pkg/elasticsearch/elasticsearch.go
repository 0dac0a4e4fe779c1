package elasticsearch

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"net/http"
	"os"
	"time"

	"github.com/elastic/go-elasticsearch/v7"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/hitesh22rana/esmigrate/internal/config"
)

const (
	initTimeout time.Duration = 10 * time.Second

	// DefaultDocumentType is the single mapping type of typeless indices.
	DefaultDocumentType = "_doc"
)

// Config represents the configuration for the Elasticsearch client.
type Config struct {
	URLs            []string
	Username        string
	Password        string
	TLS             *tls.Config
	IncludeTypeName bool

	// err holds the first failure recorded by an option.
	err error
}

// Option is a functional option type that allows us to configure the Elasticsearch client.
type Option func(*Config)

// New creates a new Elasticsearch client and verifies the cluster is reachable.
func New(ctx context.Context, options ...Option) (*Client, error) {
	ctx, cancel := context.WithTimeout(ctx, initTimeout)
	defer cancel()

	c := &Config{}

	for _, opt := range options {
		opt(c)
	}

	if c.err != nil {
		return nil, c.err
	}

	if len(c.URLs) == 0 {
		return nil, status.Errorf(codes.InvalidArgument, "failed to initialize Elasticsearch client: missing urls")
	}

	esCfg := elasticsearch.Config{
		Addresses: c.URLs,
		Username:  c.Username,
		Password:  c.Password,
	}
	if c.TLS != nil {
		transport := http.DefaultTransport.(*http.Transport).Clone()
		transport.TLSClientConfig = c.TLS
		esCfg.Transport = transport
	}

	es, err := elasticsearch.NewClient(esCfg)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "failed to initialize Elasticsearch client: %v", err)
	}

	res, err := es.Info(es.Info.WithContext(ctx))
	if err != nil {
		return nil, status.Errorf(codes.Unavailable, "failed to connect to Elasticsearch: %v", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, status.Errorf(codes.Unavailable, "failed to connect to Elasticsearch: %s", res.String())
	}

	return &Client{
		es:              es,
		includeTypeName: c.IncludeTypeName,
	}, nil
}

// WithURLs sets the Elasticsearch node urls.
func WithURLs(urls []string) Option {
	return func(c *Config) {
		if len(urls) == 0 {
			return
		}

		c.URLs = urls
	}
}

// WithCredentials sets the basic auth credentials.
func WithCredentials(username, password string) Option {
	return func(c *Config) {
		if username == "" {
			return
		}

		c.Username = username
		c.Password = password
	}
}

// WithIncludeTypeName makes the client address mappings per document type.
func WithIncludeTypeName(include bool) Option {
	return func(c *Config) {
		c.IncludeTypeName = include
	}
}

// WithTLS sets the Elasticsearch TLS config.
func WithTLS(cfg *config.Elasticsearch) Option {
	return func(c *Config) {
		if !cfg.TLSEnabled {
			return
		}

		tlsConfig, err := newTLSConfig(cfg.TLSCertFile, cfg.TLSKeyFile, cfg.TLSCAFile)
		if err != nil {
			if c.err == nil {
				c.err = err
			}
			return
		}
		c.TLS = tlsConfig
	}
}

// newTLSConfig creates a new TLS config for the Elasticsearch client.
func newTLSConfig(certFile, keyFile, caFile string) (*tls.Config, error) {
	cert, err := tls.LoadX509KeyPair(certFile, keyFile)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "failed to load client key pair: %v", err)
	}

	caCert, err := os.ReadFile(caFile)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "failed to read CA certificate: %v", err)
	}

	caCertPool := x509.NewCertPool()
	if !caCertPool.AppendCertsFromPEM(caCert) {
		return nil, status.Errorf(codes.InvalidArgument, "failed to parse CA certificate %s", caFile)
	}

	return &tls.Config{
		Certificates: []tls.Certificate{cert},
		RootCAs:      caCertPool,
		MinVersion:   tls.VersionTLS12,
	}, nil
}
