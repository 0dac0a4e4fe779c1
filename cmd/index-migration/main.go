package main

import (
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/go-playground/validator/v10"
	_ "go.uber.org/automaxprocs"
	"go.uber.org/zap"

	"github.com/hitesh22rana/esmigrate/internal/app/indexmigration"
	"github.com/hitesh22rana/esmigrate/internal/config"
	"github.com/hitesh22rana/esmigrate/internal/migration"
	"github.com/hitesh22rana/esmigrate/internal/pkg/elasticsearch"
	"github.com/hitesh22rana/esmigrate/internal/pkg/kafka"
	loggerpkg "github.com/hitesh22rana/esmigrate/internal/pkg/logger"
	"github.com/hitesh22rana/esmigrate/internal/pkg/redis"
	svcpkg "github.com/hitesh22rana/esmigrate/internal/pkg/svc"
	eventsrepo "github.com/hitesh22rana/esmigrate/internal/repository/events"
	indexlifecyclerepo "github.com/hitesh22rana/esmigrate/internal/repository/indexlifecycle"
	leaserepo "github.com/hitesh22rana/esmigrate/internal/repository/lease"
	ledgerrepo "github.com/hitesh22rana/esmigrate/internal/repository/ledger"
	indexmigrationsvc "github.com/hitesh22rana/esmigrate/internal/service/indexmigration"
)

const (
	// ExitOk and ExitError are the exit codes.
	ExitOk = iota
	// ExitError is the exit code for errors.
	ExitError
)

const serviceName = "index-migration"

// version is set at build time.
var version = "dev"

func main() {
	os.Exit(run())
}

func run() int {
	svcpkg.SetName(serviceName)
	svcpkg.SetVersion(version)

	// Initialize the service with, all necessary components
	ctx, cancel := svcpkg.Init()
	defer cancel()

	// Handle OS signals for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	// Load the index migration job configuration
	cfg, err := config.InitIndexMigrationConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return ExitError
	}

	// Initialize the Elasticsearch client
	esClient, err := elasticsearch.New(
		ctx,
		elasticsearch.WithURLs(cfg.Elasticsearch.URLs),
		elasticsearch.WithCredentials(cfg.Elasticsearch.Username, cfg.Elasticsearch.Password),
		elasticsearch.WithIncludeTypeName(cfg.Elasticsearch.IncludeTypeName),
		elasticsearch.WithTLS(&cfg.Elasticsearch),
	)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return ExitError
	}

	// Load the migration definitions
	validate := validator.New()
	set, err := migration.NewLoader(validate, cfg.Elasticsearch.IndexPrefix).Load(os.DirFS(cfg.Migrations.Dir))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return ExitError
	}

	ledger, err := ledgerrepo.New(&ledgerrepo.Config{
		Settings:  cfg.Ledger.Settings(),
		Connector: cfg.Elasticsearch.Settings(),
		Catalog:   set.Catalog(),
	}, esClient)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return ExitError
	}

	// Serialize runs per target through Redis when enabled
	var locker indexmigrationsvc.Locker = leaserepo.Noop{}
	if cfg.Redis.Enabled {
		redisClient, err := redis.New(ctx, &redis.Config{
			Host:         cfg.Redis.Host,
			Port:         cfg.Redis.Port,
			Password:     cfg.Redis.Password,
			DB:           cfg.Redis.DB,
			PoolSize:     cfg.Redis.PoolSize,
			MinIdleConns: cfg.Redis.MinIdleConns,
			ReadTimeout:  cfg.Redis.ReadTimeout,
			WriteTimeout: cfg.Redis.WriteTimeout,
		})
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return ExitError
		}
		defer redisClient.Close()

		locker = leaserepo.New(redisClient, leaserepo.WithTTL(cfg.Redis.LeaseTTL))
	}

	// Publish applied migrations to Kafka when brokers are configured
	var publisher indexmigrationsvc.Publisher = eventsrepo.Noop{}
	if len(cfg.Kafka.Brokers) != 0 {
		topic := cfg.Kafka.Topic
		if topic == "" {
			topic = kafka.TopicIndexMigrations
		}

		kfk, err := kafka.New(
			ctx,
			kafka.WithBrokers(cfg.Kafka.Brokers...),
			kafka.WithClientID(serviceName),
			kafka.WithProduceTopic(topic),
		)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return ExitError
		}
		defer kfk.Close()

		publisher = eventsrepo.New(&eventsrepo.Config{ProducerTopic: topic}, kfk)
	}

	// Initialize the index migration components
	svc, err := indexmigrationsvc.New(
		validate,
		set,
		indexlifecyclerepo.New(esClient),
		ledger,
		locker,
		publisher,
	)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return ExitError
	}
	app := indexmigration.New(ctx, &indexmigration.Config{
		Mode:   cfg.Migrations.Mode,
		Target: cfg.Migrations.Target,
	}, svc)

	// Log the job information
	loggerpkg.FromContext(ctx).Info(
		"starting job",
		zap.String("name", svcpkg.Info().GetName()),
		zap.String("version", svcpkg.Info().GetVersion()),
		zap.String("environment", cfg.Environment.Env),
		zap.String("mode", cfg.Migrations.Mode),
		zap.Strings("targets", set.Targets()),
		zap.String("ledger_index", ledger.Index()),
		zap.Int("gomaxprocs", runtime.GOMAXPROCS(0)),
	)

	// Run the index migration job
	if err := app.Run(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return ExitError
	}

	return ExitOk
}
