package di

import (
	"context"
	"fmt"
	"net"
	"strconv"
	"time"

	"PricePulse/internal/domain/repository"
	domsvc "PricePulse/internal/domain/service"
	internalrepo "PricePulse/internal/repository"
	"PricePulse/internal/services/scoring"
	"PricePulse/internal/usecase"
	pkgcache "PricePulse/pkg/cache"
	pkgch "PricePulse/pkg/clickhouse"
	"PricePulse/pkg/config"
	pkgkafka "PricePulse/pkg/kafka"
	applogger "PricePulse/pkg/logger"
	"PricePulse/pkg/metrics"
	"PricePulse/pkg/server"
)

// ProvideLogger creates the application logger.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	format := "json"
	if cfg.Environment == "development" {
		format = "console"
	}
	return applogger.New(&applogger.Config{Level: "info", Format: format, Output: "stdout"})
}

// ProvideClickHouseClient creates a ClickHouse client.
func ProvideClickHouseClient(cfg *config.Config) (*pkgch.Client, error) {
	client, err := pkgch.NewClient(
		pkgch.WithHost(cfg.ClickHouse.Host),
		pkgch.WithPort(cfg.ClickHouse.Port),
		pkgch.WithDatabase(cfg.ClickHouse.Database),
		pkgch.WithCredentials(cfg.ClickHouse.User, cfg.ClickHouse.Password),
		pkgch.WithMaxConnections(10, 5),
		pkgch.WithHTTP(cfg.ClickHouse.UseHTTP),
		pkgch.WithAsyncInsert(cfg.ClickHouse.AsyncInsert, cfg.ClickHouse.WaitForAsync),
		pkgch.WithTimeouts(cfg.ClickHouse.DialTimeout, cfg.ClickHouse.ReadTimeout, cfg.ClickHouse.WriteTimeout),
		pkgch.WithMaxExecutionTime(cfg.ClickHouse.MaxExecutionTime),
	)
	if err != nil {
		return nil, fmt.Errorf("clickhouse client: %w", err)
	}

	// Initialize schema
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := client.InitSchema(ctx, []string{
		"CREATE DATABASE IF NOT EXISTS pricepulse",
		`CREATE TABLE IF NOT EXISTS pricepulse.pricing_history (
            id String,
            product_id String,
            product_name String,
            base_price Float64,
            category String,
            past_sales_volume Float64,
            discount Float64,
            expected_revenue Float64,
            final_price Float64,
            confidence String,
            created_at DateTime
        ) ENGINE=MergeTree ORDER BY (product_name, created_at)`,
		`CREATE TABLE IF NOT EXISTS pricepulse.churn_assessments (
            id String,
            customer_id String,
            risk Float64,
            prediction Int32,
            risk_level String,
            created_at DateTime
        ) ENGINE=MergeTree ORDER BY (customer_id, created_at)`,
		`CREATE TABLE IF NOT EXISTS pricepulse.customer_predictions (
            id String,
            total_orders Float64,
            purchase_frequency Float64,
            avg_order_value Float64,
            last_purchase_days_ago Float64,
            total_items_bought Float64,
            category String,
            probability Float64,
            category_code Int32,
            created_at DateTime
        ) ENGINE=MergeTree ORDER BY (created_at)`,
	}); err != nil {
		_ = client.Close() // cannot log here (DI layer no logger); propagate error
		return nil, fmt.Errorf("clickhouse schema: %w", err)
	}

	return client, nil
}

// ProvideKafkaProducer creates a Kafka producer.
func ProvideKafkaProducer(cfg *config.Config) (*pkgkafka.Producer, error) {
	if cfg.Backend.Type != "kafka" {
		return nil, nil
	}
	producer, err := pkgkafka.NewProducer(
		pkgkafka.WithBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithCompression(cfg.Kafka.Compression),
		pkgkafka.WithRequiredAcks(cfg.Kafka.RequiredAcks),
		pkgkafka.WithBatchSize(cfg.Kafka.Producer.BatchSize),
		pkgkafka.WithBatchBytes(cfg.Kafka.Producer.BatchBytes),
		pkgkafka.WithBatchTimeout(cfg.Kafka.Producer.Linger),
		pkgkafka.WithTimeouts(cfg.Kafka.Producer.WriteTimeout, cfg.Kafka.Producer.ReadTimeout),
		pkgkafka.WithMaxAttempts(cfg.Kafka.Producer.MaxAttempts),
		pkgkafka.WithAsync(cfg.Kafka.Producer.Async),
		pkgkafka.WithHashByKey(true),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}

	return producer, nil
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() repository.Metrics {
	return metrics.New()
}

// ProvideHistoryStore creates the ClickHouse history store.
func ProvideHistoryStore(chClient *pkgch.Client, l *applogger.Logger) repository.HistoryStore {
	store := internalrepo.NewCHHistoryStore(chClient)
	store.SetLogger(l)
	return store
}

// ProvideChurnStore creates the ClickHouse churn store.
func ProvideChurnStore(chClient *pkgch.Client, l *applogger.Logger) repository.ChurnStore {
	store := internalrepo.NewCHChurnStore(chClient)
	store.SetLogger(l)
	return store
}

// ProvideCustomerStore creates the ClickHouse customer store.
func ProvideCustomerStore(chClient *pkgch.Client, l *applogger.Logger) repository.CustomerStore {
	store := internalrepo.NewCHCustomerStore(chClient)
	store.SetLogger(l)
	return store
}

// ProvideHistoryPublisher creates the Kafka publisher for history records.
func ProvideHistoryPublisher(producer *pkgkafka.Producer, cfg *config.Config) repository.Publisher {
	if producer == nil {
		return nil
	}
	return internalrepo.NewKafkaPublisher(producer, cfg.Kafka.Topic)
}

// ProvideKafkaConsumer creates a Kafka consumer configured from YAML.
func ProvideKafkaConsumer(cfg *config.Config) (*pkgkafka.Consumer, error) {
	if cfg.Backend.Type != "kafka" {
		return nil, nil
	}
	consumer, err := pkgkafka.NewConsumer(
		pkgkafka.WithConsumerBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithConsumerGroupID(cfg.Kafka.Consumer.GroupID),
		pkgkafka.WithConsumerWorkers(cfg.Kafka.Consumer.Workers),
		pkgkafka.WithConsumerBufferSize(cfg.Kafka.Consumer.BufferSize),
		pkgkafka.WithConsumerRetry(cfg.Kafka.Consumer.RetryMax, cfg.Kafka.Consumer.BackoffMin, cfg.Kafka.Consumer.BackoffMax),
		pkgkafka.WithConsumerDLQ(cfg.Kafka.Consumer.DLQTopic),
		pkgkafka.WithConsumerFetch(cfg.Kafka.Consumer.MinBytes, cfg.Kafka.Consumer.MaxBytes),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka consumer: %w", err)
	}
	return consumer, nil
}

// ProvideKafkaHistoryHandler registers the handler for the history topic.
func ProvideKafkaHistoryHandler(store repository.HistoryStore, metrics repository.Metrics, cfg *config.Config) *usecase.KafkaHistoryHandler {
	return usecase.NewKafkaHistoryHandler(cfg.Kafka.Topic, store, metrics, cfg.Backend.BatchSize, cfg.Backend.BatchTimeout)
}

// ProvideCategoryEncoder loads the encoder artifact. Missing artifact is fatal.
func ProvideCategoryEncoder(cfg *config.Config) (domsvc.CategoryEncoder, error) {
	enc, err := scoring.LoadCategoryEncoder(cfg.Artifacts.EncoderPath)
	if err != nil {
		return nil, fmt.Errorf("category encoder: %w", err)
	}
	return enc, nil
}

// ProvideRevenueScorer creates the external model client, or a noop when no
// base URL is configured.
func ProvideRevenueScorer(cfg *config.Config) domsvc.RevenueScorer {
	if cfg.Scorer.BaseURL == "" {
		return scoring.NoopRevenueScorer{}
	}
	return scoring.NewHTTPRevenueScorer(cfg)
}

// ProvideChurnScorer creates the external churn model client.
func ProvideChurnScorer(cfg *config.Config) domsvc.ChurnScorer {
	return scoring.NewHTTPChurnScorer(cfg)
}

// ProvideStatsCache builds the layered cache for category statistics.
// Without Redis the memory layer alone is used.
func ProvideStatsCache(cfg *config.Config) pkgcache.Service {
	if !cfg.Cache.Redis.Enabled {
		return pkgcache.NewMemoryCache()
	}
	host, portStr, err := net.SplitHostPort(cfg.Cache.Redis.Addr)
	if err != nil {
		return pkgcache.NewMemoryCache()
	}
	port, _ := strconv.Atoi(portStr)
	redisCache, err := pkgcache.NewRedisCache(
		pkgcache.WithRedisHost(host),
		pkgcache.WithRedisPort(port),
		pkgcache.WithRedisPassword(cfg.Cache.Redis.Password),
		pkgcache.WithRedisDB(cfg.Cache.Redis.DB),
		pkgcache.WithRedisPrefix("pricepulse"),
	)
	if err != nil {
		return pkgcache.NewMemoryCache()
	}
	return pkgcache.NewLayeredCache(redisCache)
}

// ProvideHistoryStats creates the historical aggregator.
func ProvideHistoryStats(store repository.HistoryStore, c pkgcache.Service, cfg *config.Config, l *applogger.Logger) *usecase.HistoryStats {
	return usecase.NewHistoryStats(store, c, cfg.Cache.StatsTTL, l)
}

// ProvideHistoryRecorder creates the history write-path use case.
func ProvideHistoryRecorder(
	pub repository.Publisher,
	store repository.HistoryStore,
	metrics repository.Metrics,
	cfg *config.Config,
) *usecase.HistoryRecorder {
	return usecase.NewHistoryRecorder(
		pub,
		store,
		metrics,
		cfg.Backend.Type,
	)
}

// ProvideOptimizer creates the pricing optimizer use case.
func ProvideOptimizer(
	stats *usecase.HistoryStats,
	recorder *usecase.HistoryRecorder,
	scorer domsvc.RevenueScorer,
	encoder domsvc.CategoryEncoder,
	metrics repository.Metrics,
	l *applogger.Logger,
) *usecase.Optimizer {
	return usecase.NewOptimizer(stats, recorder, scorer, encoder, metrics, l)
}

// ProvideChurnAssessor creates the churn tiering use case.
func ProvideChurnAssessor(
	scorer domsvc.ChurnScorer,
	store repository.ChurnStore,
	metrics repository.Metrics,
	l *applogger.Logger,
) *usecase.ChurnAssessor {
	return usecase.NewChurnAssessor(scorer, store, metrics, l)
}

// ProvideCustomerClassifier creates the customer classification use case.
func ProvideCustomerClassifier(
	encoder domsvc.CategoryEncoder,
	store repository.CustomerStore,
	metrics repository.Metrics,
) *usecase.CustomerClassifier {
	return usecase.NewCustomerClassifier(encoder, store, metrics)
}

// ProvideApp creates the application server.
func ProvideApp(
	cfg *config.Config,
	l *applogger.Logger,
	optimizer *usecase.Optimizer,
	churn *usecase.ChurnAssessor,
	classifier *usecase.CustomerClassifier,
	recorder *usecase.HistoryRecorder,
	store repository.HistoryStore,
	encoder domsvc.CategoryEncoder,
	consumer *pkgkafka.Consumer,
	kh *usecase.KafkaHistoryHandler,
	chClient *pkgch.Client,
) *server.App {
	if consumer != nil {
		consumer.WithConsumerHook(pkgkafka.NoopHook{})
	}
	return server.New(cfg, l, optimizer, churn, classifier, recorder, store, encoder, consumer, kh, chClient)
}
