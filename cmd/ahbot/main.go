package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alejandrodnm/ahbot/config"
	"github.com/alejandrodnm/ahbot/internal/adapters/blizzard"
	"github.com/alejandrodnm/ahbot/internal/adapters/notify"
	"github.com/alejandrodnm/ahbot/internal/adapters/storage"
	"github.com/alejandrodnm/ahbot/internal/domain"
	"github.com/alejandrodnm/ahbot/internal/ports"
	"github.com/alejandrodnm/ahbot/internal/watcher"
)

func main() {
	configPath := flag.String("config", "config/config.yaml", "path to config file")
	once := flag.Bool("once", false, "run one watch cycle and exit")
	verbose := flag.Bool("verbose", false, "set log level to debug")
	logFormat := flag.String("format", "", "log format: text|json (overrides config)")
	table := flag.Bool("table", false, "print alerts as a full table (default: compact 1-line)")
	resolveSlug := flag.String("resolve", "", "resolve a connected realm by slug, persist it and exit")
	itemID := flag.Int64("item", 0, "fetch item metadata by id, persist it and exit")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "err", err, "path", *configPath)
		os.Exit(1)
	}

	if *verbose {
		cfg.Log.Level = "debug"
	}
	if *logFormat != "" {
		cfg.Log.Format = *logFormat
	}
	setupLogger(cfg.Log)

	if cfg.API.ClientID == "" || cfg.API.ClientSecret == "" {
		slog.Error("missing credentials: set BNET_CLIENT_ID and BNET_CLIENT_SECRET")
		os.Exit(1)
	}

	slog.Info("ahbot starting",
		"config", *configPath,
		"region", cfg.API.Region,
		"interval", cfg.WatchInterval(),
		"once", *once,
	)

	client := blizzard.NewClient(blizzard.Config{
		TokenURL:     cfg.API.TokenURL,
		APIBase:      cfg.API.DataURL,
		Region:       cfg.API.Region,
		ClientID:     cfg.API.ClientID,
		ClientSecret: cfg.API.ClientSecret,
	})

	store, err := storage.NewSQLiteStorage(cfg.Storage.DSN)
	if err != nil {
		slog.Error("failed to open storage", "err", err, "dsn", cfg.Storage.DSN)
		os.Exit(1)
	}
	defer store.Close()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if *resolveSlug != "" {
		runResolve(ctx, client, store, *resolveSlug)
		return
	}
	if *itemID != 0 {
		runItemLookup(ctx, client, store, *itemID)
		return
	}

	notifier := notify.NewConsole(*table)

	w := watcher.New(watcher.Config{
		Interval: cfg.WatchInterval(),
		Once:     *once,
	}, client, store, notifier, client)

	if err := w.Run(ctx); err != nil {
		slog.Error("watcher exited with error", "err", err)
		os.Exit(1)
	}

	slog.Info("ahbot stopped cleanly")
}

// runResolve resuelve un connected realm por slug y lo deja persistido — el
// paso previo a registrar reglas sobre ese realm.
func runResolve(ctx context.Context, resolver ports.RealmResolver, store ports.Storage, slug string) {
	realm, err := resolver.ResolveConnectedRealm(ctx, slug)
	if errors.Is(err, domain.ErrNotFound) {
		slog.Warn("no connected realm matches slug", "slug", slug)
		return
	}
	if err != nil {
		slog.Error("resolve failed", "slug", slug, "err", err)
		os.Exit(1)
	}

	if err := store.AddConnectedRealm(ctx, realm); err != nil {
		slog.Error("failed to persist connected realm", "err", err)
		os.Exit(1)
	}
	slog.Info("connected realm resolved", "id", realm.ID, "slug", realm.Slug, "name", realm.Name)
}

// runItemLookup busca la metadata de un item y la deja persistida.
func runItemLookup(ctx context.Context, items ports.ItemProvider, store ports.Storage, itemID int64) {
	item, err := items.FetchItem(ctx, itemID)
	if errors.Is(err, domain.ErrNotFound) {
		slog.Warn("item does not exist", "item_id", itemID)
		return
	}
	if err != nil {
		slog.Error("item lookup failed", "item_id", itemID, "err", err)
		os.Exit(1)
	}

	if err := store.AddItem(ctx, item); err != nil {
		slog.Error("failed to persist item", "err", err)
		os.Exit(1)
	}
	slog.Info("item resolved", "id", item.ID, "name", item.Name)
}

func setupLogger(cfg config.LogConfig) {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	slog.SetDefault(slog.New(handler))
}
