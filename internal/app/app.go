package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/hris-policy-engine/internal/config"
	"github.com/cmlabs-hris/hris-policy-engine/internal/domain/audit"
	"github.com/cmlabs-hris/hris-policy-engine/internal/domain/policy"
	"github.com/cmlabs-hris/hris-policy-engine/internal/pkg/database"
	"github.com/cmlabs-hris/hris-policy-engine/internal/pkg/storage"
	kafkaRepo "github.com/cmlabs-hris/hris-policy-engine/internal/repository/kafka"
	"github.com/cmlabs-hris/hris-policy-engine/internal/repository/postgresql"
	redisRepo "github.com/cmlabs-hris/hris-policy-engine/internal/repository/redis"
	auditService "github.com/cmlabs-hris/hris-policy-engine/internal/service/audit"
	reportService "github.com/cmlabs-hris/hris-policy-engine/internal/service/report"
	ruleService "github.com/cmlabs-hris/hris-policy-engine/internal/service/rule"
	goredis "github.com/redis/go-redis/v9"
)

const flushTimeout = 10 * time.Second

// App holds the long-lived collaborators shared by the API server and the CLI.
type App struct {
	DB          *database.DB
	Redis       *goredis.Client
	Kafka       *kafkaRepo.AuditTopicSink
	Policy      policy.Policy
	AuditLogger *auditService.Logger
	RuleService *ruleService.RuleService
	Storage     storage.FileStorage
	Exporter    *reportService.Exporter
}

func New(ctx context.Context, cfg *config.Config) (*App, error) {
	p, err := loadPolicy(cfg.Policy)
	if err != nil {
		return nil, err
	}

	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL())
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	a := &App{DB: db, Policy: p}

	sink, err := a.auditSink(ctx, cfg)
	if err != nil {
		a.Close()
		return nil, err
	}

	var loggerOpts []auditService.Option
	if sink != nil {
		loggerOpts = append(loggerOpts, auditService.WithSink(sink))
	}
	a.AuditLogger = auditService.NewLogger(cfg.Audit.LogCapacity, loggerOpts...)

	a.RuleService = ruleService.NewRuleService(
		postgresql.NewDataAccessor(db),
		p,
		a.AuditLogger,
		ruleService.WithConcurrency(cfg.Audit.Concurrency),
	)

	fileStorage, err := storage.NewLocalStorage(cfg.Storage.BasePath, cfg.Storage.BaseURL)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("initialize storage: %w", err)
	}
	a.Storage = fileStorage
	a.Exporter = reportService.NewExporter(fileStorage)

	return a, nil
}

func (a *App) auditSink(ctx context.Context, cfg *config.Config) (audit.Sink, error) {
	switch cfg.Audit.Sink {
	case config.AuditSinkPostgres:
		slog.Info("Audit log sink configured", "sink", cfg.Audit.Sink)
		return postgresql.NewAuditLogSink(a.DB), nil
	case config.AuditSinkRedis:
		client := goredis.NewClient(&goredis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			client.Close()
			return nil, fmt.Errorf("connect to redis at %s: %w", cfg.Redis.Addr, err)
		}
		a.Redis = client
		slog.Info("Audit log sink configured", "sink", cfg.Audit.Sink, "stream", cfg.Audit.RedisStream)
		return redisRepo.NewAuditStreamSink(client, cfg.Audit.RedisStream), nil
	case config.AuditSinkKafka:
		sink, err := kafkaRepo.NewAuditTopicSink(kafkaRepo.TopicConfig{
			Brokers: cfg.Kafka.Brokers,
			Topic:   cfg.Kafka.Topic,
		})
		if err != nil {
			return nil, fmt.Errorf("configure kafka audit sink: %w", err)
		}
		a.Kafka = sink
		slog.Info("Audit log sink configured", "sink", cfg.Audit.Sink, "topic", cfg.Kafka.Topic)
		return sink, nil
	default:
		return nil, nil
	}
}

// Close flushes pending audit entries and releases connections.
func (a *App) Close() {
	if a.AuditLogger != nil {
		ctx, cancel := context.WithTimeout(context.Background(), flushTimeout)
		if err := a.AuditLogger.Flush(ctx); err != nil {
			slog.Error("Final audit log flush failed", "error", err, "dropped", a.AuditLogger.Dropped())
		}
		cancel()
	}
	if a.Kafka != nil {
		if err := a.Kafka.Close(); err != nil {
			slog.Error("Failed to close kafka writer", "error", err)
		}
	}
	if a.Redis != nil {
		if err := a.Redis.Close(); err != nil {
			slog.Error("Failed to close redis client", "error", err)
		}
	}
	if a.DB != nil {
		a.DB.Close()
	}
}

func loadPolicy(cfg config.PolicyConfig) (policy.Policy, error) {
	if cfg.File == "" {
		slog.Info("Using built-in policy defaults")
		return policy.Default(), nil
	}
	p, err := policy.Load(cfg.File)
	if err != nil {
		return policy.Policy{}, fmt.Errorf("load policy %s: %w", cfg.File, err)
	}
	slog.Info("Policy loaded", "file", cfg.File)
	return p, nil
}
