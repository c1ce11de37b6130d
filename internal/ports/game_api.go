package ports

import (
	"context"

	"github.com/alejandrodnm/ahbot/internal/domain"
)

// RealmResolver resuelve un connected realm a partir de su slug.
type RealmResolver interface {
	// ResolveConnectedRealm busca el connected realm cuyo slug coincide.
	// Devuelve domain.ErrNotFound si el search no produce candidatos.
	ResolveConnectedRealm(ctx context.Context, slug string) (domain.ConnectedRealm, error)
}

// ItemProvider obtiene la metadata de un item por id numérico.
type ItemProvider interface {
	// FetchItem devuelve el item o domain.ErrNotFound si el id no existe.
	FetchItem(ctx context.Context, itemID int64) (domain.Item, error)
}

// AuctionProvider descarga y agrega las subastas activas de un connected realm.
type AuctionProvider interface {
	// FetchAuctions devuelve un order book por cada item pedido que tenga
	// listings activos. Un item sin listings no aparece en el mapa — eso no
	// es un error. Cualquier fallo del endpoint invalida la llamada entera:
	// nunca hay resultado parcial.
	FetchAuctions(ctx context.Context, connectedRealmID int64, itemIDs map[int64]struct{}) (map[int64]domain.OrderBook, error)
}

// TokenInvalidator permite al caller forzar una re-autenticación tras recibir
// un AuthError de un endpoint de datos (expiración del token remoto).
type TokenInvalidator interface {
	InvalidateToken()
}
