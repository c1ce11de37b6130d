package blizzard

// auctions.go — agregación de subastas por connected realm.
//
// El endpoint de auctions no soporta filtrado server-side por item: se baja el
// snapshot completo en un request (sin paginación) y se reduce aquí a un order
// book por item pedido.

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/alejandrodnm/ahbot/internal/domain"
)

// FetchAuctions descarga el snapshot de subastas del connected realm y lo
// agrega a un mapa item→OrderBook. La clave ausente significa "ese item no
// tiene listings activos ahora mismo", no un fallo. Cualquier error del
// endpoint invalida la llamada completa: nunca hay mapa a medio llenar.
func (c *Client) FetchAuctions(ctx context.Context, connectedRealmID int64, itemIDs map[int64]struct{}) (map[int64]domain.OrderBook, error) {
	u := fmt.Sprintf("%s"+auctionsPathFmt+"?namespace=%s&locale=%s",
		c.apiBase, connectedRealmID, c.namespace(nsDynamic), localeEnUS)

	var resp auctionsResponse
	if err := c.get(ctx, u, false, &resp); err != nil {
		return nil, fmt.Errorf("blizzard.FetchAuctions realm=%d: %w", connectedRealmID, err)
	}

	books := mapOrderBooks(resp, itemIDs)

	slog.Debug("auctions fetched",
		"realm", connectedRealmID,
		"listings", len(resp.Auctions),
		"watched_items", len(itemIDs),
		"books", len(books),
	)
	return books, nil
}
