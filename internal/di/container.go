package di

import (
	"context"

	feedurlService "github.com/teleflux/teleflux/internal/modules/feedurl/service"
	notifyService "github.com/teleflux/teleflux/internal/modules/notify/service"
	syncService "github.com/teleflux/teleflux/internal/modules/sync/service"
	"github.com/teleflux/teleflux/internal/shared/config"
	minifluxTransport "github.com/teleflux/teleflux/internal/transport/miniflux"
	telegramTransport "github.com/teleflux/teleflux/internal/transport/telegram"
	"github.com/samber/do/v2"
	"github.com/samber/oops"
)

// Setup initializes the dependency injection container
func Setup(configPath string) (do.Injector, error) {
	injector := do.New()

	// Register Config
	do.Provide(injector, func(i do.Injector) (*config.Config, error) {
		cfg, err := config.Load(configPath)
		if err != nil {
			return nil, oops.With("context", "failed to load config").Wrap(err)
		}
		return cfg, nil
	})

	// Register Feed URL Builder
	do.Provide(injector, func(i do.Injector) (*feedurlService.Builder, error) {
		cfg := do.MustInvoke[*config.Config](i)
		return feedurlService.New(cfg.RSSHub.BaseURL, cfg.Telegram.APIHash), nil
	})

	// Register Telegram Client (connects eagerly; a session that cannot
	// authorize should fail the run before any reader call is made)
	do.Provide(injector, func(i do.Injector) (*telegramTransport.Client, error) {
		cfg := do.MustInvoke[*config.Config](i)
		client := telegramTransport.New(cfg.Telegram)
		if err := client.Connect(context.Background()); err != nil {
			return nil, err
		}
		return client, nil
	})

	// Register Miniflux Client
	do.Provide(injector, func(i do.Injector) (*minifluxTransport.Client, error) {
		cfg := do.MustInvoke[*config.Config](i)
		return minifluxTransport.New(cfg.Miniflux), nil
	})

	// Register Sync Service
	do.Provide(injector, func(i do.Injector) (*syncService.Service, error) {
		cfg := do.MustInvoke[*config.Config](i)
		folders := do.MustInvoke[*telegramTransport.Client](i)
		reader := do.MustInvoke[*minifluxTransport.Client](i)
		urls := do.MustInvoke[*feedurlService.Builder](i)
		return syncService.New(cfg, folders, reader, reader, urls), nil
	})

	// Register Notifier
	do.Provide(injector, func(i do.Injector) (*notifyService.Notifier, error) {
		cfg := do.MustInvoke[*config.Config](i)
		if !cfg.Notifications.Enabled || cfg.Notifications.BotToken == "" {
			return notifyService.New(nil, false, false), nil
		}
		sender, err := telegramTransport.NewNotifier(cfg.Notifications)
		if err != nil {
			return nil, oops.With("context", "failed to create notifier").Wrap(err)
		}
		return notifyService.New(sender, true, cfg.Sync.NotifyNoChanges), nil
	})

	return injector, nil
}

// Shutdown gracefully shuts down all services
func Shutdown(injector do.Injector) error {
	// Close the telegram session if it was opened
	if client, err := do.Invoke[*telegramTransport.Client](injector); err == nil && client != nil {
		return client.Close()
	}
	return nil
}
