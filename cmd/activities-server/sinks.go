// cmd/activities-server/sinks.go
package main

import (
	"context"
	"fmt"
	"time"

	"mergington-activities/internal/common/aws"
	"mergington-activities/internal/common/config"
	"mergington-activities/internal/common/database"
	"mergington-activities/internal/common/logger"
	"mergington-activities/internal/directory"
	"mergington-activities/internal/events"
)

const (
	connectRetries = 5
	connectDelay   = 2 * time.Second
)

// wiredSinks holds the backends behind the event dispatcher.
type wiredSinks struct {
	dispatcher *events.Dispatcher
	pg         *database.PostgresClient
	redis      *database.RedisClient
	es         *database.ElasticsearchClient
	checkers   []database.Checker
}

// connectSinks connects every enabled sink. A nil dispatcher is returned
// when no sink is enabled.
func connectSinks(ctx context.Context, cfg *config.Config, log logger.Logger) (*wiredSinks, error) {
	w := &wiredSinks{}
	var sinks []events.Sink

	if cfg.Events.Redis.Enabled {
		client, err := connectRedis(ctx, cfg.Database.Redis, log)
		if err != nil {
			w.Close()
			return nil, err
		}
		w.redis = client
		w.checkers = append(w.checkers, client)
		sinks = append(sinks, events.NewRedisSink(client.Client, cfg.Events.Redis.Channel))
	}

	if cfg.Events.Audit.Enabled {
		client, err := connectPostgres(ctx, cfg.Database.Postgres, log)
		if err != nil {
			w.Close()
			return nil, err
		}
		w.pg = client
		audit := events.NewAuditSink(client.DB)
		if err := audit.EnsureSchema(ctx); err != nil {
			w.Close()
			return nil, fmt.Errorf("audit schema: %w", err)
		}
		w.checkers = append(w.checkers, client)
		sinks = append(sinks, audit)
	}

	if cfg.Events.Elasticsearch.Enabled {
		client, err := connectElasticsearch(ctx, cfg.Database.Elasticsearch, log)
		if err != nil {
			w.Close()
			return nil, err
		}
		w.es = client
		index := cfg.Events.Elasticsearch.Index
		if err := client.EnsureIndex(ctx, index, events.RosterIndexMapping); err != nil {
			w.Close()
			return nil, err
		}
		w.checkers = append(w.checkers, client)
		sinks = append(sinks, events.NewSearchSink(client.Client, index))
	}

	awsCfg := cfg.Integrations.AWS
	if awsCfg.SES.Enabled || awsCfg.SNS.Enabled {
		sdkCfg, err := aws.LoadConfig(ctx, awsCfg.Region)
		if err != nil {
			w.Close()
			return nil, fmt.Errorf("aws config: %w", err)
		}
		if awsCfg.SES.Enabled {
			sinks = append(sinks, events.NewEmailSink(aws.NewSESClient(sdkCfg), awsCfg.SES.FromEmail))
		}
		if awsCfg.SNS.Enabled {
			sinks = append(sinks, events.NewTopicSink(aws.NewSNSClient(sdkCfg), awsCfg.SNS.TopicARN))
		}
	}

	if len(sinks) == 0 {
		log.Info("no event sinks enabled", nil)
		return w, nil
	}

	w.dispatcher = events.NewDispatcher(config.GetDuration(cfg.Events.Timeout), log, sinks...)
	log.Info("event sinks connected", map[string]interface{}{"sinks": w.dispatcher.Sinks()})
	return w, nil
}

// connectRedis retries until a client answers PING. A client whose ping
// failed is closed before the next attempt.
func connectRedis(ctx context.Context, cfg config.RedisConfig, log logger.Logger) (*database.RedisClient, error) {
	var client *database.RedisClient
	err := retryWithBackoff(ctx, func() error {
		c, err := database.NewRedis(cfg)
		if err != nil {
			return err
		}
		if err := c.Ping(ctx); err != nil {
			c.Close()
			return err
		}
		client = c
		return nil
	}, connectRetries, connectDelay, log, "Redis connection")
	return client, err
}

func connectPostgres(ctx context.Context, cfg config.PostgresConfig, log logger.Logger) (*database.PostgresClient, error) {
	var client *database.PostgresClient
	err := retryWithBackoff(ctx, func() error {
		c, err := database.NewPostgres(cfg)
		if err != nil {
			return err
		}
		if err := c.Ping(ctx); err != nil {
			c.Close()
			return err
		}
		client = c
		return nil
	}, connectRetries, connectDelay, log, "PostgreSQL connection")
	return client, err
}

func connectElasticsearch(ctx context.Context, cfg config.ElasticsearchConfig, log logger.Logger) (*database.ElasticsearchClient, error) {
	var client *database.ElasticsearchClient
	err := retryWithBackoff(ctx, func() error {
		c, err := database.NewElasticsearch(cfg)
		if err != nil {
			return err
		}
		if err := c.Ping(ctx); err != nil {
			return err
		}
		client = c
		return nil
	}, connectRetries, connectDelay, log, "Elasticsearch connection")
	return client, err
}

// Publisher returns the dispatcher, or nil when no sink is enabled.
func (w *wiredSinks) Publisher() directory.EventPublisher {
	if w.dispatcher == nil {
		return nil
	}
	return w.dispatcher
}

// Ready pings every connected backend.
func (w *wiredSinks) Ready(ctx context.Context) error {
	return database.CheckAll(ctx, w.checkers...)
}

func (w *wiredSinks) Close() {
	if w.redis != nil {
		w.redis.Close()
	}
	if w.pg != nil {
		w.pg.Close()
	}
}
