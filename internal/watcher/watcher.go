package watcher

// watcher.go — loop periódico de vigilancia de precios.
//
// Cada ciclo: cargar todas las reglas de notificación, agrupar los items
// vigilados por connected realm, bajar el snapshot de subastas realm a realm
// (secuencial — el core no hace fan-out) y evaluar cada regla contra su order
// book. Un realm que falla se salta sin tumbar el ciclo.

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/alejandrodnm/ahbot/internal/domain"
	"github.com/alejandrodnm/ahbot/internal/ports"
	"github.com/google/uuid"
)

// Config contiene la configuración del watcher.
type Config struct {
	Interval time.Duration
	Once     bool // ejecutar un solo ciclo y salir
}

// Watcher es el orquestador del loop de vigilancia.
type Watcher struct {
	cfg      Config
	auctions ports.AuctionProvider
	store    ports.Storage
	notifier ports.Notifier
	tokens   ports.TokenInvalidator // opcional: habilita el re-auth one-shot
}

// New crea un Watcher con todas las dependencias inyectadas. tokens puede ser
// nil si el provider no soporta invalidación de credenciales.
func New(cfg Config, auctions ports.AuctionProvider, store ports.Storage, notifier ports.Notifier, tokens ports.TokenInvalidator) *Watcher {
	return &Watcher{
		cfg:      cfg,
		auctions: auctions,
		store:    store,
		notifier: notifier,
		tokens:   tokens,
	}
}

// Run ejecuta el loop de vigilancia hasta que el contexto se cancele.
// Con cfg.Once, ejecuta un único ciclo y devuelve su error.
func (w *Watcher) Run(ctx context.Context) error {
	slog.Info("watcher starting", "interval", w.cfg.Interval, "once", w.cfg.Once)

	if err := w.runCycle(ctx); err != nil {
		slog.Error("watch cycle failed", "err", err)
		if w.cfg.Once {
			return err
		}
	}

	if w.cfg.Once {
		return nil
	}

	ticker := time.NewTicker(w.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("watcher stopped")
			return nil
		case <-ticker.C:
			if err := w.runCycle(ctx); err != nil {
				slog.Error("watch cycle failed", "err", err)
			}
		}
	}
}

// RunOnce ejecuta exactamente un ciclo y devuelve las alertas disparadas.
func (w *Watcher) RunOnce(ctx context.Context) ([]domain.Alert, error) {
	return w.cycle(ctx, uuid.NewString())
}

// runCycle ejecuta un ciclo completo y entrega las alertas al notifier.
func (w *Watcher) runCycle(ctx context.Context) error {
	start := time.Now()
	cycleID := uuid.NewString()

	alerts, err := w.cycle(ctx, cycleID)
	if err != nil {
		return err
	}

	if err := w.notifier.Notify(ctx, alerts); err != nil {
		slog.Warn("notifier error", "cycle", cycleID, "err", err)
	}

	slog.Info("watch cycle complete",
		"cycle", cycleID,
		"alerts", len(alerts),
		"duration", time.Since(start).Round(time.Millisecond),
	)
	return nil
}

// cycle carga las reglas, baja las subastas realm a realm y evalúa el matching.
func (w *Watcher) cycle(ctx context.Context, cycleID string) ([]domain.Alert, error) {
	notifs, err := w.store.GetNotifications(ctx)
	if err != nil {
		return nil, fmt.Errorf("watcher.cycle: load notifications: %w", err)
	}
	if len(notifs) == 0 {
		slog.Debug("no notification rules registered", "cycle", cycleID)
		return nil, nil
	}

	byRealm := groupByRealm(notifs)

	var alerts []domain.Alert
	for _, realmID := range sortedRealmIDs(byRealm) {
		rules := byRealm[realmID]

		books, err := w.fetchWithReauth(ctx, realmID, watchedItems(rules))
		if err != nil {
			// El realm falla entero, el ciclo continúa con los demás.
			slog.Warn("realm fetch failed, skipping",
				"cycle", cycleID, "realm", realmID, "err", err)
			continue
		}

		for _, rule := range rules {
			book, ok := books[rule.ItemID]
			if !ok {
				continue // sin listings activos — no es un error
			}
			if rule.Matches(book) {
				alerts = append(alerts, w.buildAlert(ctx, rule, book))
			}
		}
	}

	return alerts, nil
}

// fetchWithReauth baja las subastas de un realm. Si el provider devuelve
// AuthError (token remoto expirado), invalida el token y reintenta una única
// vez; cualquier otro fallo sube tal cual.
func (w *Watcher) fetchWithReauth(ctx context.Context, realmID int64, itemIDs map[int64]struct{}) (map[int64]domain.OrderBook, error) {
	books, err := w.auctions.FetchAuctions(ctx, realmID, itemIDs)
	if err == nil {
		return books, nil
	}

	var authErr *domain.AuthError
	if !errors.As(err, &authErr) || w.tokens == nil {
		return nil, err
	}

	slog.Info("auth error from data endpoint, re-authenticating", "realm", realmID, "status", authErr.Status)
	w.tokens.InvalidateToken()
	return w.auctions.FetchAuctions(ctx, realmID, itemIDs)
}

// buildAlert enriquece una regla disparada con la metadata del store. La
// metadata ausente no bloquea la alerta: el notifier tiene fallbacks.
func (w *Watcher) buildAlert(ctx context.Context, rule domain.Notification, book domain.OrderBook) domain.Alert {
	alert := domain.Alert{
		Notification: rule,
		BestPrice:    book.BestPrice(),
		Available:    book.QuantityAtOrBelow(rule.Price),
	}

	if realm, err := w.store.GetConnectedRealmByID(ctx, rule.ConnectedRealmID); err == nil {
		alert.Realm = realm
	} else {
		alert.Realm = domain.ConnectedRealm{ID: rule.ConnectedRealmID}
	}
	if item, err := w.store.GetItem(ctx, rule.ItemID); err == nil {
		alert.Item = item
	} else {
		alert.Item = domain.Item{ID: rule.ItemID}
	}

	return alert
}

// groupByRealm agrupa las reglas por connected realm.
func groupByRealm(notifs []domain.Notification) map[int64][]domain.Notification {
	byRealm := make(map[int64][]domain.Notification)
	for _, n := range notifs {
		byRealm[n.ConnectedRealmID] = append(byRealm[n.ConnectedRealmID], n)
	}
	return byRealm
}

// watchedItems extrae el set de item ids que vigilan las reglas de un realm.
func watchedItems(rules []domain.Notification) map[int64]struct{} {
	ids := make(map[int64]struct{}, len(rules))
	for _, r := range rules {
		ids[r.ItemID] = struct{}{}
	}
	return ids
}

// sortedRealmIDs devuelve los realm ids en orden estable para que los ciclos
// sean deterministas.
func sortedRealmIDs(byRealm map[int64][]domain.Notification) []int64 {
	ids := make([]int64, 0, len(byRealm))
	for id := range byRealm {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
