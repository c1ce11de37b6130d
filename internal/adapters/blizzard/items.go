package blizzard

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/alejandrodnm/ahbot/internal/domain"
)

// FetchItem busca la metadata de un item por id numérico. Un 404 del endpoint
// significa "no existe ese item" y sale como domain.ErrNotFound; cualquier
// otro status no exitoso es un domain.RemoteError.
func (c *Client) FetchItem(ctx context.Context, itemID int64) (domain.Item, error) {
	u := fmt.Sprintf("%s"+itemPathFmt+"?namespace=%s&locale=%s",
		c.apiBase, itemID, c.namespace(nsStatic), localeEnUS)

	var resp itemResponse
	if err := c.get(ctx, u, true, &resp); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			slog.Info("item not found", "item_id", itemID)
		}
		return domain.Item{}, fmt.Errorf("blizzard.FetchItem %d: %w", itemID, err)
	}

	return domain.Item{ID: itemID, Name: resp.Name}, nil
}
