package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/samvad-hq/hero-client/internal/config"
	"github.com/samvad-hq/hero-client/internal/heroes"
	"github.com/samvad-hq/hero-client/internal/logger"
	"github.com/samvad-hq/hero-client/internal/storage"
	"github.com/samvad-hq/hero-client/pkg/httpclient"
	"github.com/samvad-hq/hero-client/pkg/notifiers"
)

// Console wires the hero client to its transport, message store and sinks.
type Console struct {
	Heroes   *heroes.Service
	Messages *notifiers.MessageService

	store storage.MessageStore
	log   logger.Logger
}

// NewConsole builds the runtime from config.
func NewConsole(ctx context.Context, cfg *config.Config, log logger.Logger) (*Console, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	if log == nil {
		log = &logger.NopLogger{}
	}
	if ctx == nil {
		ctx = context.Background()
	}

	storeOpts := storage.Options{
		MessageTTL:      cfg.MessageTTL,
		CleanupInterval: cfg.MessageCleanupInterval,
	}
	store, err := storage.NewStore(cfg.MessageStoreType, cfg.BBoltPath, storeOpts)
	if err != nil {
		return nil, fmt.Errorf("init message store: %w", err)
	}
	log.InfoObj("message store initialized", "storage_config", map[string]any{
		"type":                     cfg.MessageStoreType,
		"path":                     cfg.BBoltPath,
		"message_ttl_seconds":      int(cfg.MessageTTL.Seconds()),
		"cleanup_interval_seconds": int(cfg.MessageCleanupInterval.Seconds()),
	})

	sinks, err := buildSinks(ctx, cfg, log)
	if err != nil {
		store.Close()
		return nil, err
	}

	messages := notifiers.NewMessageService(store, notifiers.NewFanout(sinks), log,
		notifiers.WithSource(cfg.AppName),
		notifiers.WithDeliveryTimeout(cfg.NotifyTimeout),
	)

	transport := httpclient.NewRestyClient(cfg.APIBaseURL, cfg.RequestTimeout)
	heroSvc := heroes.NewService(transport, messages, log, heroes.WithBasePath(cfg.HeroesPath))
	log.InfoObj("hero client ready", "hero_client", map[string]any{
		"base_url":        cfg.APIBaseURL,
		"heroes_path":     cfg.HeroesPath,
		"request_timeout": cfg.RequestTimeout.String(),
		"sinks_count":     len(sinks),
	})

	return &Console{
		Heroes:   heroSvc,
		Messages: messages,
		store:    store,
		log:      log,
	}, nil
}

// buildSinks loads the optional notifiers file and builds the enabled sinks.
func buildSinks(ctx context.Context, cfg *config.Config, log logger.Logger) ([]notifiers.Sink, error) {
	if strings.TrimSpace(cfg.NotifiersFile) == "" {
		return nil, nil
	}

	reg, err := notifiers.LoadRegistry(cfg.NotifiersFile)
	if err != nil {
		return nil, fmt.Errorf("load notifiers registry: %w", err)
	}
	enabled := reg.Enabled()

	sinks, err := notifiers.BuildAll(ctx, notifiers.DefaultRegistry(), enabled, log)
	if err != nil {
		return nil, fmt.Errorf("build notifiers: %w", err)
	}

	summaries := make([]map[string]string, 0, len(enabled))
	for _, c := range enabled {
		summaries = append(summaries, map[string]string{"id": c.ID, "type": c.Type})
	}
	log.InfoObj("notifiers registry loaded", "notifiers_meta", map[string]any{
		"count": len(summaries),
		"sinks": summaries,
	})
	return sinks, nil
}

// Close releases sinks and the message store.
func (c *Console) Close() error {
	if c == nil {
		return nil
	}
	var errs []error
	if err := c.Messages.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close notifiers: %w", err))
	}
	if c.store != nil {
		if err := c.store.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close message store: %w", err))
		}
	}
	return errors.Join(errs...)
}
