package blizzard

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"

	"github.com/alejandrodnm/ahbot/internal/domain"
)

// ResolveConnectedRealm busca el connected realm cuyo slug coincide y devuelve
// el primer candidato con id válido. El search devuelve 200 con lista vacía
// cuando no hay coincidencias — eso se mapea a domain.ErrNotFound, no a un
// fallo remoto.
func (c *Client) ResolveConnectedRealm(ctx context.Context, slug string) (domain.ConnectedRealm, error) {
	u := fmt.Sprintf("%s%s?namespace=%s&realms.slug=%s",
		c.apiBase, searchConnectedRealmPath, c.namespace(nsDynamic), url.QueryEscape(slug))

	var resp realmSearchResponse
	if err := c.get(ctx, u, false, &resp); err != nil {
		return domain.ConnectedRealm{}, fmt.Errorf("blizzard.ResolveConnectedRealm %q: %w", slug, err)
	}

	realm, ok := mapConnectedRealm(resp, slug)
	if !ok {
		slog.Info("no connected realm matches slug", "slug", slug)
		return domain.ConnectedRealm{}, fmt.Errorf("blizzard.ResolveConnectedRealm %q: %w", slug, domain.ErrNotFound)
	}

	slog.Debug("connected realm resolved", "slug", slug, "id", realm.ID, "name", realm.Name)
	return realm, nil
}
