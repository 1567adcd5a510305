package di

import (
	"fmt"

	"FinBridge/internal/domain/repository"
	"FinBridge/internal/handler/api"
	internalrepo "FinBridge/internal/repository"
	"FinBridge/internal/service/banking"
	"FinBridge/internal/service/crypto"
	"FinBridge/internal/service/ratelimit"
	"FinBridge/internal/usecase"
	"FinBridge/pkg/config"
	xhttp "FinBridge/pkg/http"
	pkgkafka "FinBridge/pkg/kafka"
	"FinBridge/pkg/lock"
	"FinBridge/pkg/logger"
	"FinBridge/pkg/metrics"
	"FinBridge/pkg/server"
)

// ProvideLogger creates the application logger from the log section.
func ProvideLogger(cfg *config.Config) (*logger.Logger, error) {
	l, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	return l, nil
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics(cfg *config.Config) repository.Metrics {
	if !cfg.Metrics.Enabled {
		return metrics.Noop{}
	}
	return metrics.New()
}

// ProvideBankProviders builds the live or demo adapter of every bank.
func ProvideBankProviders(cfg *config.Config, l *logger.Logger) []repository.BankProvider {
	providers := banking.NewRegistry(cfg, banking.WithTimeout(2*cfg.Aggregator.CallTimeout))
	for _, p := range providers {
		l.Info("banking provider ready",
			logger.String("provider", string(p.ID())),
			logger.Bool("live", p.Configured()),
			logger.String("environment", p.ConfigStatus().Environment),
		)
	}
	return providers
}

// ProvideEventPublisher publishes transfer events to Kafka, or drops them
// when no brokers are configured.
func ProvideEventPublisher(cfg *config.Config, l *logger.Logger) (repository.EventPublisher, error) {
	if !cfg.KafkaEnabled() {
		l.Info("kafka disabled, transfer events are not published")
		return internalrepo.NoopPublisher{}, nil
	}
	producer, err := pkgkafka.NewProducer(
		pkgkafka.WithBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithTopic(cfg.Kafka.TransferTopic),
		pkgkafka.WithCompression(cfg.Kafka.Compression),
		pkgkafka.WithRequiredAcks(cfg.KafkaRequiredAcks()),
		pkgkafka.WithMaxAttempts(cfg.Kafka.MaxAttempts),
		pkgkafka.WithWriteTimeout(cfg.Kafka.WriteTimeout),
		pkgkafka.WithHashByKey(true),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}
	l.Info("kafka producer ready", logger.Strings("brokers", cfg.Kafka.Brokers), logger.String("topic", producer.Topic()))
	return internalrepo.NewKafkaPublisher(producer), nil
}

// ProvideLocker creates the transfer lock backend.
func ProvideLocker(cfg *config.Config) (repository.Locker, error) {
	if cfg.Lock.Backend != "redis" {
		return lock.NewMemoryLocker(), nil
	}
	l, err := lock.NewRedisLocker(
		lock.WithRedisHost(cfg.Lock.Host),
		lock.WithRedisPort(cfg.Lock.Port),
		lock.WithRedisPassword(cfg.Lock.Password),
		lock.WithRedisDB(cfg.Lock.DB),
		lock.WithRedisPrefix(cfg.Lock.Prefix),
	)
	if err != nil {
		return nil, fmt.Errorf("redis locker: %w", err)
	}
	return l, nil
}

func usecaseOptions(cfg *config.Config, m repository.Metrics, l *logger.Logger) []usecase.Option {
	return []usecase.Option{
		usecase.WithCallTimeout(cfg.Aggregator.CallTimeout),
		usecase.WithMetrics(m),
		usecase.WithLogger(l),
	}
}

// ProvideTransferRouter creates the transfer router use case.
func ProvideTransferRouter(
	cfg *config.Config,
	providers []repository.BankProvider,
	locker repository.Locker,
	publisher repository.EventPublisher,
	m repository.Metrics,
	l *logger.Logger,
) *usecase.TransferRouter {
	return usecase.NewTransferRouter(providers, locker, publisher, cfg.Lock.TTL, usecaseOptions(cfg, m, l)...)
}

// ProvideBankingAggregator creates the banking aggregator use case.
func ProvideBankingAggregator(
	cfg *config.Config,
	providers []repository.BankProvider,
	router *usecase.TransferRouter,
	m repository.Metrics,
	l *logger.Logger,
) *usecase.BankingAggregator {
	return usecase.NewBankingAggregator(providers, router, usecaseOptions(cfg, m, l)...)
}

// ProvideCryptoAggregator creates the crypto aggregator over the primary and fallback sources.
func ProvideCryptoAggregator(cfg *config.Config, m repository.Metrics, l *logger.Logger) *usecase.CryptoAggregator {
	primary := crypto.NewBinance(cfg.Crypto.Primary, cfg.Crypto.USDAEDRate, cfg.Crypto.Timeout)
	fallback := crypto.NewCoinGecko(cfg.Crypto.Fallback, cfg.Crypto.USDAEDRate, cfg.Crypto.Timeout)
	return usecase.NewCryptoAggregator(primary, fallback, usecaseOptions(cfg, m, l)...)
}

// ProvideStatusReporter creates the status reporter use case.
func ProvideStatusReporter(
	cfg *config.Config,
	providers []repository.BankProvider,
	agg *usecase.CryptoAggregator,
	m repository.Metrics,
	l *logger.Logger,
) *usecase.StatusReporter {
	return usecase.NewStatusReporter(providers, agg, usecaseOptions(cfg, m, l)...)
}

// ProvideTransferLimiter limits transfer submissions per client address.
func ProvideTransferLimiter(cfg *config.Config) *ratelimit.Limiter {
	return ratelimit.New(cfg.RateLimit.TransferRPS, cfg.RateLimit.TransferBurst, 0)
}

// ProvideHandlers collects every HTTP route group.
func ProvideHandlers(
	l *logger.Logger,
	bank *usecase.BankingAggregator,
	cryptoAgg *usecase.CryptoAggregator,
	reporter *usecase.StatusReporter,
	rl *ratelimit.Limiter,
) []xhttp.Handler {
	return []xhttp.Handler{
		api.NewBankingHandler(l, bank, reporter, rl),
		api.NewCryptoHandler(l, cryptoAgg),
		api.NewStatusHandler(reporter),
	}
}

// ProvideHTTPServer creates the Echo server.
func ProvideHTTPServer(cfg *config.Config, handlers []xhttp.Handler, l *logger.Logger) *xhttp.Server {
	metricsPath := ""
	if cfg.Metrics.Enabled {
		metricsPath = cfg.Metrics.Path
	}
	return xhttp.NewServer(handlers,
		xhttp.WithPort(cfg.Server.Port),
		xhttp.WithTimeouts(cfg.Server.ReadTimeout, cfg.Server.WriteTimeout, cfg.Server.ShutdownTimeout),
		xhttp.WithCORS(!cfg.Server.DisableCORS),
		xhttp.WithMetricsPath(metricsPath),
		xhttp.WithLogger(l),
	)
}

// ProvideApp creates the application server.
func ProvideApp(
	srv *xhttp.Server,
	publisher repository.EventPublisher,
	locker repository.Locker,
	l *logger.Logger,
) *server.App {
	return server.New(srv, l, publisher, locker)
}
